package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/javiersolis/bookstore-admin-gateway/internal/api/handlers"
	"github.com/javiersolis/bookstore-admin-gateway/internal/api/middleware"
	"github.com/javiersolis/bookstore-admin-gateway/internal/config"
	"github.com/javiersolis/bookstore-admin-gateway/internal/enrich"
	"github.com/javiersolis/bookstore-admin-gateway/internal/gateway"
	"github.com/javiersolis/bookstore-admin-gateway/internal/health"
	"github.com/javiersolis/bookstore-admin-gateway/internal/metrics"
	repository "github.com/javiersolis/bookstore-admin-gateway/internal/repository/redis"
	service "github.com/javiersolis/bookstore-admin-gateway/internal/services"
	"github.com/javiersolis/bookstore-admin-gateway/pkg/sendgrid"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Redis setup
	redisRepo, err := repository.NewRedisRepo(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", "error", err.Error())
		os.Exit(1)
	}

	jwtKey := []byte(cfg.Security.JWTKey)

	// Upstream gateway clients
	catalogClient := gateway.NewCatalogClient(cfg.Upstreams.CatalogURL, cfg.Upstreams.Timeout)
	authorClient := gateway.NewAuthorClient(cfg.Upstreams.AuthorsURL, cfg.Upstreams.Timeout)
	cartClient := gateway.NewCartClient(cfg.Upstreams.CartURL, cfg.Upstreams.Timeout)
	identityClient := gateway.NewIdentityClient(cfg.Upstreams.IdentityURL, cfg.Upstreams.Timeout)

	sendGridClient := sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)

	authorIndex := enrich.NewAuthorIndex(authorClient)

	cartService := service.NewCartService(cartClient, catalogClient)
	cartHandler := handlers.NewCartHandler(cartService)
	checkoutService := service.NewCheckoutService(cartService, sendGridClient)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	historyService := service.NewHistoryService(cartClient, cartService.Titles(), authorIndex)
	historyHandler := handlers.NewHistoryHandler(historyService)
	catalogService := service.NewCatalogService(catalogClient)
	bookHandler := handlers.NewBookHandler(catalogService)
	authorService := service.NewAuthorService(authorClient)
	authorHandler := handlers.NewAuthorHandler(authorService)
	userService := service.NewUserService(identityClient, redisRepo)
	authHandler := handlers.NewAuthHandler(userService)
	authMiddleware := middleware.NewAuthMiddleware(jwtKey)

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("❌ Error building the health checks", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("gateway initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("POST /api/v1/auth/login", authHandler.Login())
	routerMux.HandleFunc("POST /api/v1/auth/register", authHandler.Register())
	routerMux.HandleFunc("POST /api/v1/auth/recovery/question", authHandler.RecoveryQuestion())
	routerMux.HandleFunc("POST /api/v1/auth/recovery/answer", authHandler.RecoveryAnswer())
	routerMux.HandleFunc("GET /api/v1/books", authMiddleware.Authenticate(bookHandler.ListBooks()))
	routerMux.HandleFunc("GET /api/v1/books/{id}", authMiddleware.Authenticate(bookHandler.GetBook()))
	routerMux.HandleFunc("POST /api/v1/books", authMiddleware.Authenticate(bookHandler.CreateBook()))
	routerMux.HandleFunc("GET /api/v1/authors", authMiddleware.Authenticate(authorHandler.ListAuthors()))
	routerMux.HandleFunc("GET /api/v1/authors/search", authMiddleware.Authenticate(authorHandler.SearchAuthors()))
	routerMux.HandleFunc("GET /api/v1/authors/{id}", authMiddleware.Authenticate(authorHandler.GetAuthor()))
	routerMux.HandleFunc("POST /api/v1/authors", authMiddleware.Authenticate(authorHandler.CreateAuthor()))
	routerMux.HandleFunc("GET /api/v1/cart", authMiddleware.Authenticate(cartHandler.GetCart()))
	routerMux.HandleFunc("PUT /api/v1/cart/items", authMiddleware.Authenticate(cartHandler.SetQuantity()))
	routerMux.HandleFunc("DELETE /api/v1/cart/items/{id}", authMiddleware.Authenticate(cartHandler.RemoveItem()))
	routerMux.HandleFunc("DELETE /api/v1/cart", authMiddleware.Authenticate(cartHandler.ClearCart()))
	routerMux.HandleFunc("POST /api/v1/checkout", authMiddleware.Authenticate(checkoutHandler.Submit()))
	routerMux.HandleFunc("GET /api/v1/purchases", authMiddleware.Authenticate(historyHandler.ListPurchases()))
	routerMux.HandleFunc("GET /api/v1/purchases/search", authMiddleware.Authenticate(historyHandler.SearchPurchase()))
	routerMux.HandleFunc("GET /api/v1/purchases/{id}", authMiddleware.Authenticate(historyHandler.GetPurchase()))
	routerMux.HandleFunc("GET /api/v1/purchases/{id}/receipt", authMiddleware.Authenticate(historyHandler.GetReceipt()))
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthHandler.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {

		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

}
