package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/anne-niyokwizerwa/ecommerce/internal/catalog"
	"github.com/anne-niyokwizerwa/ecommerce/internal/models"
	"github.com/anne-niyokwizerwa/ecommerce/internal/repository"
	"github.com/go-chi/chi/v5"
)

// ProductHandler handles storefront catalog requests.
type ProductHandler struct {
	catalog *catalog.Service
	logger  *slog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(catalog *catalog.Service, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{catalog: catalog, logger: logger}
}

// ListProducts handles GET /api/product
// Optional query params: category (id or "all"), search (free text
// applied after category filtering).
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	categoryID := r.URL.Query().Get("category")
	term := r.URL.Query().Get("search")

	products, err := h.catalog.FetchByCategory(ctx, categoryID)
	if err != nil {
		h.logger.Error("failed to list products", "category", categoryID, "error", err)
		writeError(w, http.StatusServiceUnavailable, "Failed to load products. Please try again later.", h.logger)
		return
	}

	products = catalog.ApplyTextFilter(products, term)
	writeJSON(w, http.StatusOK, products, h.logger)
}

// GetProduct handles GET /api/product/{productId}
// A missing product is always a 404 with a JSON body, never an empty
// detail response.
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	productID := chi.URLParam(r, "productId")

	product, err := h.catalog.FetchByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.logger.Info("product not found", "productId", productID)
			writeError(w, http.StatusNotFound, "Product not found", h.logger)
			return
		}
		h.logger.Error("failed to get product", "productId", productID, "error", err)
		writeError(w, http.StatusServiceUnavailable, "Failed to load product. Please try again later.", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product, h.logger)
}

// GetRelated handles GET /api/product/{productId}/related
// Returns same-category products excluding the product itself,
// truncated to the limit query param (default 3).
func (h *ProductHandler) GetRelated(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	productID := chi.URLParam(r, "productId")

	product, err := h.catalog.FetchByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Product not found", h.logger)
			return
		}
		h.logger.Error("failed to get product", "productId", productID, "error", err)
		writeError(w, http.StatusServiceUnavailable, "Failed to load product. Please try again later.", h.logger)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}

	related, err := h.catalog.FetchRelated(ctx, product.Category, product.ID, limit)
	if err != nil {
		h.logger.Error("failed to get related products", "productId", productID, "error", err)
		writeError(w, http.StatusServiceUnavailable, "Failed to load products. Please try again later.", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, related, h.logger)
}

// ListCategories handles GET /api/category
func (h *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.Categories, h.logger)
}
