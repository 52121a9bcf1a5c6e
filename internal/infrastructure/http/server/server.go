package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mkravets/storefront-service/internal/application/commands"
	"github.com/mkravets/storefront-service/internal/application/use_cases"
	"github.com/mkravets/storefront-service/internal/config"
	"github.com/mkravets/storefront-service/internal/infrastructure/commerce"
	"github.com/mkravets/storefront-service/internal/infrastructure/http/handlers"
	"github.com/mkravets/storefront-service/internal/infrastructure/persistence/postgres"
	"github.com/mkravets/storefront-service/internal/infrastructure/persistence/redis"
	"github.com/mkravets/storefront-service/internal/pkg/generator"
	"github.com/mkravets/storefront-service/internal/pkg/logger"
)

type Server struct {
	server          *http.Server
	logger          *logger.Logger
	healthHandler   *handlers.HealthHandler
	cartHandler     *handlers.CartHandler
	checkoutHandler *handlers.CheckoutHandler
	authHandler     *handlers.AuthHandler
	catalogHandler  *handlers.CatalogHandler
	ordersHandler   *handlers.OrdersHandler
}

func NewServer(cfg *config.Config, db *postgres.Connection, redisConn *redis.Connection, log *logger.Logger) *Server {
	commerceClient := commerce.NewClient(cfg.Commerce, log)

	cartStore := redis.NewCartStore(redisConn, log, cfg.Cart.TTL())
	catalogCache := redis.NewCatalogCache(redisConn, commerceClient, log, cfg.Cart.CatalogCacheTTL())
	attemptLog := postgres.NewAttemptLog(db)

	sessionResolver := use_cases.NewSessionResolver(commerceClient, log)
	orderUseCase := use_cases.NewOrderUseCase(commerceClient, commerceClient, log, cfg.Commerce.SessionKind)

	cartCommands := commands.NewCartHandler(cartStore, log)
	checkoutCommands := commands.NewCheckoutHandler(
		cartStore,
		sessionResolver,
		orderUseCase,
		attemptLog,
		log,
		cfg.Commerce.FormIdentifier,
		cfg.Commerce.PaymentAccount,
		cfg.Cart.CheckoutLockTTL(),
	)

	cartHandler := handlers.NewCartHandler(cartCommands, generator.NewCartIDGenerator(), log)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutCommands, log)
	authHandler := handlers.NewAuthHandler(commerceClient, sessionResolver, log)
	catalogHandler := handlers.NewCatalogHandler(catalogCache, log)
	ordersHandler := handlers.NewOrdersHandler(commerceClient, attemptLog, sessionResolver, log)
	healthHandler := handlers.NewHealthHandler(db.GetDB(), redisConn.GetClient(), log)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		server:          server,
		logger:          log,
		healthHandler:   healthHandler,
		cartHandler:     cartHandler,
		checkoutHandler: checkoutHandler,
		authHandler:     authHandler,
		catalogHandler:  catalogHandler,
		ordersHandler:   ordersHandler,
	}
}

func (s *Server) ListenAndServe() error {
	s.server.Handler = s.setupRoutes()

	s.logger.Info("Starting HTTP server", "address", s.server.Addr)

	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
