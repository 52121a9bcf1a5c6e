package handlers

import (
	"net/http"
	"strconv"

	"github.com/mkravets/storefront-service/internal/application/ports"
	"github.com/mkravets/storefront-service/internal/application/use_cases"
	"github.com/mkravets/storefront-service/internal/domain/errors"
	"github.com/mkravets/storefront-service/internal/domain/order"
	"github.com/mkravets/storefront-service/internal/infrastructure/http/response"
	"github.com/mkravets/storefront-service/internal/pkg/logger"
)

type OrdersHandler struct {
	orders   ports.OrderGateway
	attempts ports.AttemptLog
	resolver *use_cases.SessionResolver
	log      *logger.Logger
}

func NewOrdersHandler(
	orders ports.OrderGateway,
	attempts ports.AttemptLog,
	resolver *use_cases.SessionResolver,
	log *logger.Logger,
) *OrdersHandler {
	return &OrdersHandler{
		orders:   orders,
		attempts: attempts,
		resolver: resolver,
		log:      log,
	}
}

func (h *OrdersHandler) HandleListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		cred := credentialFromRequest(r)
		resolution := h.resolver.Resolve(r.Context(), cred)
		if !resolution.Authenticated() {
			response.WriteDomainError(w, errors.ErrLoginRequired)
			return
		}

		orders, err := h.orders.GetOrders(r.Context(), cred.AccessToken)
		if err != nil {
			h.log.Error("Failed to list orders", "error", err.Error(), "user_id", resolution.User.ID)
			response.WriteDomainError(w, err)
			return
		}

		response.WriteSuccess(w, orders)
	}
}

// HandleListAttempts exposes the checkout attempt log for diagnostics,
// most usefully outcome=payment_failed: orders that exist remotely but
// were never paid.
func (h *OrdersHandler) HandleListAttempts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		outcome := r.URL.Query().Get("outcome")
		if outcome == "" {
			outcome = order.OutcomePaymentFailed
		}

		limit := 100
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				response.WriteValidationError(w, "Invalid limit", map[string]string{"limit": "must be a positive integer"})
				return
			}
			limit = parsed
		}

		attempts, err := h.attempts.ListByOutcome(r.Context(), outcome, limit)
		if err != nil {
			h.log.Error("Failed to list checkout attempts", "error", err.Error(), "outcome", outcome)
			response.WriteDomainError(w, err)
			return
		}

		response.WriteSuccess(w, attempts)
	}
}
