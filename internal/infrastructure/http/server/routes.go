package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mkravets/storefront-service/internal/infrastructure/http/middleware"
	"github.com/mkravets/storefront-service/internal/infrastructure/monitoring"
)

func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/health", s.healthHandler.HandleHealth())

	mux.HandleFunc("/cart", s.cartHandler.HandleCart)
	mux.HandleFunc("/cart/items", s.cartHandler.HandleAddItem)
	mux.HandleFunc("/cart/items/", s.cartHandler.HandleItemRoutes)

	mux.HandleFunc("/checkout", s.checkoutHandler.HandleCheckout())

	mux.HandleFunc("/products/search", s.catalogHandler.HandleSearch)
	mux.HandleFunc("/products/", s.catalogHandler.HandleProductRoutes)

	mux.HandleFunc("/auth/sign-up", s.authHandler.HandleSignUp())
	mux.HandleFunc("/auth/sign-in", s.authHandler.HandleSignIn())
	mux.HandleFunc("/auth/logout", s.authHandler.HandleLogout())
	mux.HandleFunc("/auth/form", s.authHandler.HandleGetForm())
	mux.HandleFunc("/auth/session", s.authHandler.HandleSession())

	mux.HandleFunc("/orders", s.ordersHandler.HandleListOrders())
	mux.HandleFunc("/admin/checkout-attempts", s.ordersHandler.HandleListAttempts())

	handler := middleware.NewRecoveryMiddleware(s.logger)(mux)
	handler = middleware.NewLoggingMiddleware(s.logger)(handler)
	handler = monitoring.WrapHandler(handler)
	handler = s.corsMiddleware(handler)
	handler = s.timeoutMiddleware(handler)

	return handler
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type, X-CSRF-Token")
		w.Header().Set("Access-Control-Expose-Headers", "Link")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Max-Age", "300")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) timeoutMiddleware(next http.Handler) http.Handler {
	return http.TimeoutHandler(next, 90*time.Second, "Request timeout")
}
