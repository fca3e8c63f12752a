package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anne-niyokwizerwa/ecommerce/internal/cart"
	"github.com/anne-niyokwizerwa/ecommerce/internal/catalog"
	"github.com/anne-niyokwizerwa/ecommerce/internal/config"
	"github.com/anne-niyokwizerwa/ecommerce/internal/handlers"
	"github.com/anne-niyokwizerwa/ecommerce/internal/middleware"
	"github.com/anne-niyokwizerwa/ecommerce/internal/repository"
	"github.com/anne-niyokwizerwa/ecommerce/internal/service"
	"github.com/anne-niyokwizerwa/ecommerce/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting storefront api server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"log_level", cfg.LogLevel,
	)

	// Initialize the catalog store: postgres when a DSN is
	// configured, the seeded in-memory store otherwise.
	var (
		productStore repository.ProductStore
		orderStore   repository.OrderStore
		profileStore repository.ProfileStore
	)
	if cfg.Storage.DSN != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		pg, err := repository.NewPostgresStore(ctx, cfg.Storage.DSN)
		cancel()
		if err != nil {
			log.Error("failed to connect to catalog store", "error", err)
			os.Exit(1)
		}
		defer pg.Close()
		productStore = pg
		orderStore = pg.Orders()
		profileStore = pg
		log.Info("using postgres catalog store")
	} else {
		productStore = repository.NewSeededProductStore()
		orderStore = repository.NewInMemoryOrderStore(repository.NewDemoOrders(time.Now().UTC())...)
		profileStore = repository.NewStaticProfileStore(cfg.Auth.AdminRole, cfg.Auth.AdminTokens)
		log.Info("using in-memory catalog store with demo data")
	}

	// Initialize core services
	catalogService := catalog.NewService(productStore)
	cartSessions := cart.NewSessions(cfg.Storage.SnapshotDir)
	productService := service.NewProductService(productStore, catalogService)
	orderService := service.NewOrderService(orderStore)
	dashboardService := service.NewDashboardService(productStore, orderStore)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(log)
	productHandler := handlers.NewProductHandler(catalogService, log)
	cartHandler := handlers.NewCartHandler(cartSessions, log)
	adminHandler := handlers.NewAdminHandler(productService, orderService, dashboardService, log)

	// Create router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", handlers.SessionHeader},
		ExposedHeaders:   []string{handlers.SessionHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Register health check endpoint
	r.Get("/health", healthHandler.ServeHTTP)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Storefront catalog endpoints
		r.Get("/product", productHandler.ListProducts)
		r.Get("/product/{productId}", productHandler.GetProduct)
		r.Get("/product/{productId}/related", productHandler.GetRelated)
		r.Get("/category", productHandler.ListCategories)

		// Cart endpoints
		r.Get("/cart", cartHandler.GetCart)
		r.Delete("/cart", cartHandler.ClearCart)
		r.Post("/cart/items", cartHandler.AddItem)
		r.Put("/cart/items/{productId}", cartHandler.UpdateQuantity)
		r.Delete("/cart/items/{productId}", cartHandler.RemoveItem)

		// Admin back-office endpoints, role-guarded at the router
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireRole(profileStore, cfg.Auth.AdminRole, log))

			r.Get("/product", adminHandler.ListProducts)
			r.Post("/product", adminHandler.CreateProduct)
			r.Put("/product/{productId}", adminHandler.UpdateProduct)
			r.Delete("/product/{productId}", adminHandler.DeleteProduct)

			r.Get("/order", adminHandler.ListOrders)
			r.Put("/order/{orderId}/status", adminHandler.UpdateOrderStatus)

			r.Get("/dashboard", adminHandler.Dashboard)
		})
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}
