package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/anne-niyokwizerwa/ecommerce/internal/cart"
	"github.com/anne-niyokwizerwa/ecommerce/internal/models"
	"github.com/go-chi/chi/v5"
)

// SessionHeader carries the cart session id. When absent, a new
// session is created and the header is echoed back on the response.
const SessionHeader = "X-Cart-Session"

// CartHandler handles cart requests for the active session.
type CartHandler struct {
	sessions *cart.Sessions
	logger   *slog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(sessions *cart.Sessions, logger *slog.Logger) *CartHandler {
	return &CartHandler{sessions: sessions, logger: logger}
}

// CartResponse is the cart state returned by every cart endpoint.
// Totals are derived fresh on each request.
type CartResponse struct {
	Items      []cart.Item `json:"items"`
	TotalItems int         `json:"totalItems"`
	Subtotal   float64     `json:"subtotal"`
}

type addItemRequest struct {
	Product  models.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// manager resolves the session's cart manager, creating a session when
// the request carries none. Returns nil after writing an error
// response.
func (h *CartHandler) manager(w http.ResponseWriter, r *http.Request) *cart.Manager {
	id := r.Header.Get(SessionHeader)
	if id == "" {
		newID, m, err := h.sessions.New()
		if err != nil {
			h.logger.Error("failed to create cart session", "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error", h.logger)
			return nil
		}
		w.Header().Set(SessionHeader, newID)
		return m
	}

	m, err := h.sessions.Get(id)
	if errors.Is(err, cart.ErrInvalidSession) {
		writeError(w, http.StatusBadRequest, "Invalid cart session", h.logger)
		return nil
	}
	if err != nil {
		// Corrupt snapshots degrade to an empty cart; the session
		// stays usable.
		h.logger.Warn("cart snapshot unreadable, starting empty", "session", id, "error", err)
	}
	w.Header().Set(SessionHeader, id)
	return m
}

// GetCart handles GET /api/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	m := h.manager(w, r)
	if m == nil {
		return
	}
	h.writeState(w, m)
}

// AddItem handles POST /api/cart/items
// A duplicate product id merges by summing quantities. An omitted
// quantity defaults to 1.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}
	if req.Product.ID == "" {
		writeError(w, http.StatusBadRequest, "Product is required", h.logger)
		return
	}
	if req.Quantity < 0 {
		writeError(w, http.StatusBadRequest, "Quantity must be positive", h.logger)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	m := h.manager(w, r)
	if m == nil {
		return
	}
	if err := m.Add(req.Product, req.Quantity); err != nil {
		h.logger.Warn("failed to persist cart snapshot", "error", err)
	}
	h.writeState(w, m)
}

// UpdateQuantity handles PUT /api/cart/items/{productId}
// A quantity <= 0 removes the entry. An absent product id is a no-op.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	m := h.manager(w, r)
	if m == nil {
		return
	}
	if err := m.SetQuantity(productID, req.Quantity); err != nil {
		h.logger.Warn("failed to persist cart snapshot", "error", err)
	}
	h.writeState(w, m)
}

// RemoveItem handles DELETE /api/cart/items/{productId}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	m := h.manager(w, r)
	if m == nil {
		return
	}
	if err := m.Remove(productID); err != nil {
		h.logger.Warn("failed to persist cart snapshot", "error", err)
	}
	h.writeState(w, m)
}

// ClearCart handles DELETE /api/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	m := h.manager(w, r)
	if m == nil {
		return
	}
	if err := m.Clear(); err != nil {
		h.logger.Warn("failed to persist cart snapshot", "error", err)
	}
	h.writeState(w, m)
}

func (h *CartHandler) writeState(w http.ResponseWriter, m *cart.Manager) {
	items := m.Items()
	if items == nil {
		items = []cart.Item{}
	}
	writeJSON(w, http.StatusOK, CartResponse{
		Items:      items,
		TotalItems: m.TotalItems(),
		Subtotal:   m.Subtotal(),
	}, h.logger)
}
