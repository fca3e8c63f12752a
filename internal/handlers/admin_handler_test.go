package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anne-niyokwizerwa/ecommerce/internal/models"
	"github.com/anne-niyokwizerwa/ecommerce/internal/repository"
	"github.com/anne-niyokwizerwa/ecommerce/internal/service"
	"github.com/anne-niyokwizerwa/ecommerce/pkg/logger"
	"github.com/go-chi/chi/v5"
)

func newAdminRouter() chi.Router {
	products := repository.NewSeededProductStore()
	orders := repository.NewInMemoryOrderStore(repository.NewDemoOrders(time.Now().UTC())...)
	log := logger.New("error")

	handler := NewAdminHandler(
		service.NewProductService(products, nil),
		service.NewOrderService(orders),
		service.NewDashboardService(products, orders),
		log,
	)

	r := chi.NewRouter()
	r.Get("/api/admin/product", handler.ListProducts)
	r.Post("/api/admin/product", handler.CreateProduct)
	r.Put("/api/admin/product/{productId}", handler.UpdateProduct)
	r.Delete("/api/admin/product/{productId}", handler.DeleteProduct)
	r.Get("/api/admin/order", handler.ListOrders)
	r.Put("/api/admin/order/{orderId}/status", handler.UpdateOrderStatus)
	r.Get("/api/admin/dashboard", handler.Dashboard)
	return r
}

func TestAdminListProducts_OrderedByName(t *testing.T) {
	r := newAdminRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/admin/product", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var products []models.Product
	if err := json.NewDecoder(w.Body).Decode(&products); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	for i := 1; i < len(products); i++ {
		if products[i-1].Name > products[i].Name {
			t.Errorf("products out of order: %q before %q", products[i-1].Name, products[i].Name)
		}
	}
}

func TestAdminCreateProduct_ValidationErrors(t *testing.T) {
	r := newAdminRouter()

	body := []byte(`{"name":"X","description":"short","price":0,"image":"bad","category":"","stock":-1}`)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/product", bytes.NewReader(body))
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}

	var resp struct {
		Errors map[string]string `json:"errors"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	for _, field := range []string{"name", "description", "price", "image", "category", "stock"} {
		if resp.Errors[field] == "" {
			t.Errorf("expected inline error for field %q", field)
		}
	}
}

func TestAdminCreateProduct_Success(t *testing.T) {
	r := newAdminRouter()

	body := []byte(`{"name":"Desk Mat","description":"Large vegan leather desk mat.","price":19.99,"image":"https://example.com/mat.jpg","category":"accessories","stock":40}`)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/product", bytes.NewReader(body))
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", w.Code)
	}

	var created models.Product
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if created.ID == "" {
		t.Error("expected a store-assigned id")
	}
}

func TestAdminDeleteProduct_NotFound(t *testing.T) {
	r := newAdminRouter()

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/product/999", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func TestAdminUpdateOrderStatus_TransitionConflict(t *testing.T) {
	r := newAdminRouter()

	// Demo order a1 is pending; pending -> completed is not allowed.
	body := []byte(`{"status":"completed"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/admin/order/a1/status", bytes.NewReader(body))
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected status 409, got %d", w.Code)
	}
}

func TestAdminUpdateOrderStatus_Success(t *testing.T) {
	r := newAdminRouter()

	body := []byte(`{"status":"processing"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/admin/order/a1/status", bytes.NewReader(body))
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var order models.Order
	if err := json.NewDecoder(w.Body).Decode(&order); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if order.Status != models.StatusProcessing {
		t.Errorf("expected status processing, got %s", order.Status)
	}
}

func TestAdminDashboard(t *testing.T) {
	r := newAdminRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var m service.Metrics
	if err := json.NewDecoder(w.Body).Decode(&m); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if m.TotalOrders != 3 {
		t.Errorf("expected 3 orders, got %d", m.TotalOrders)
	}
	if m.TotalProducts != 8 {
		t.Errorf("expected 8 products, got %d", m.TotalProducts)
	}
}
