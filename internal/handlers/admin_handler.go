package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/anne-niyokwizerwa/ecommerce/internal/models"
	"github.com/anne-niyokwizerwa/ecommerce/internal/repository"
	"github.com/anne-niyokwizerwa/ecommerce/internal/service"
	"github.com/go-chi/chi/v5"
)

// AdminHandler handles the back-office product, order and dashboard
// endpoints. The router guards it with the admin role middleware.
type AdminHandler struct {
	products  *service.ProductService
	orders    *service.OrderService
	dashboard *service.DashboardService
	logger    *slog.Logger
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(
	products *service.ProductService,
	orders *service.OrderService,
	dashboard *service.DashboardService,
	logger *slog.Logger,
) *AdminHandler {
	return &AdminHandler{
		products:  products,
		orders:    orders,
		dashboard: dashboard,
		logger:    logger,
	}
}

// ListProducts handles GET /api/admin/product
// Products are ordered by name ascending.
func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list products", "error", err)
		writeError(w, http.StatusServiceUnavailable, "Failed to load products", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, products, h.logger)
}

// CreateProduct handles POST /api/admin/product
func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var in service.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	created, err := h.products.Create(r.Context(), in)
	if err != nil {
		h.writeProductError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created, h.logger)
}

// UpdateProduct handles PUT /api/admin/product/{productId}
func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	var in service.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	updated, err := h.products.Update(r.Context(), productID, in)
	if err != nil {
		h.writeProductError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated, h.logger)
}

// DeleteProduct handles DELETE /api/admin/product/{productId}
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	if err := h.products.Delete(r.Context(), productID); err != nil {
		h.writeProductError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) writeProductError(w http.ResponseWriter, err error) {
	var verrs service.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": verrs}, h.logger)
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "Product not found", h.logger)
	default:
		h.logger.Error("product operation failed", "error", err)
		writeError(w, http.StatusServiceUnavailable, "Catalog unavailable", h.logger)
	}
}

// ListOrders handles GET /api/admin/order
// Orders are returned newest first.
func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list orders", "error", err)
		writeError(w, http.StatusServiceUnavailable, "Failed to load orders", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, orders, h.logger)
}

type updateStatusRequest struct {
	Status models.OrderStatus `json:"status"`
}

// UpdateOrderStatus handles PUT /api/admin/order/{orderId}/status
func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	order, err := h.orders.UpdateStatus(r.Context(), orderID, req.Status)
	switch {
	case errors.Is(err, service.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, "Unknown order status", h.logger)
		return
	case errors.Is(err, service.ErrInvalidTransition):
		writeError(w, http.StatusConflict, "Status transition not allowed", h.logger)
		return
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "Order not found", h.logger)
		return
	case err != nil:
		h.logger.Error("failed to update order status", "orderId", orderID, "error", err)
		writeError(w, http.StatusServiceUnavailable, "Failed to update order", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, order, h.logger)
}

// Dashboard handles GET /api/admin/dashboard
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.dashboard.Metrics(r.Context())
	if err != nil {
		h.logger.Error("failed to compute dashboard metrics", "error", err)
		writeError(w, http.StatusServiceUnavailable, "Failed to load dashboard", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, metrics, h.logger)
}
