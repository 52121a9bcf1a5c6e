package handlers

import (
	"net/http"

	"github.com/mkravets/storefront-service/internal/application/commands"
	"github.com/mkravets/storefront-service/internal/domain/errors"
	"github.com/mkravets/storefront-service/internal/infrastructure/http/response"
	"github.com/mkravets/storefront-service/internal/infrastructure/monitoring"
	"github.com/mkravets/storefront-service/internal/pkg/logger"
)

type CheckoutHandler struct {
	checkout *commands.CheckoutHandler
	log      *logger.Logger
}

func NewCheckoutHandler(checkout *commands.CheckoutHandler, log *logger.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		log:      log,
	}
}

func (h *CheckoutHandler) HandleCheckout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		cartCookie, err := r.Cookie(cartCookieName)
		if err != nil || cartCookie.Value == "" {
			response.WriteDomainError(w, errors.ErrCartEmpty)
			return
		}

		cmd := commands.CheckoutCommand{
			CartID:     cartCookie.Value,
			Credential: credentialFromRequest(r),
		}

		metrics := monitoring.NewCheckoutMetrics(cmd.CartID)
		metrics.RecordAttempt()

		resp, err := h.checkout.Handle(r.Context(), cmd)
		if err != nil {
			h.log.Error("Checkout failed",
				"cart_id", cmd.CartID,
				"error", err.Error(),
			)
			metrics.RecordFailure(err.Error())
			response.WriteDomainError(w, err)
			return
		}

		h.log.Info("Checkout redirecting",
			"cart_id", cmd.CartID,
			"order_id", resp.OrderID,
		)
		metrics.RecordSuccess()
		response.WriteSuccess(w, resp)
	}
}
