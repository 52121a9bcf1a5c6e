package commands

import (
	"context"
	"time"

	"github.com/mkravets/storefront-service/internal/application/ports"
	"github.com/mkravets/storefront-service/internal/application/use_cases"
	"github.com/mkravets/storefront-service/internal/domain/errors"
	"github.com/mkravets/storefront-service/internal/domain/order"
	"github.com/mkravets/storefront-service/internal/domain/session"
	"github.com/mkravets/storefront-service/internal/pkg/logger"
)

type CheckoutCommand struct {
	CartID     string
	Credential session.Credential
}

type CheckoutResponse struct {
	OrderID    int    `json:"order_id"`
	PaymentURL string `json:"payment_url"`
}

// CheckoutHandler is the only place cart clearing and remote order creation
// are sequenced. The cart is cleared if and only if the orchestrator
// succeeded; every failure leaves the cart exactly as it was. A per-cart
// lock rejects a second checkout while one is in flight.
type CheckoutHandler struct {
	carts    ports.CartStore
	resolver *use_cases.SessionResolver
	orders   *use_cases.OrderUseCase
	attempts ports.AttemptLog
	log      *logger.Logger

	formIdentifier string
	paymentAccount string
	lockTimeout    time.Duration
}

func NewCheckoutHandler(
	carts ports.CartStore,
	resolver *use_cases.SessionResolver,
	orders *use_cases.OrderUseCase,
	attempts ports.AttemptLog,
	log *logger.Logger,
	formIdentifier string,
	paymentAccount string,
	lockTimeout time.Duration,
) *CheckoutHandler {
	return &CheckoutHandler{
		carts:          carts,
		resolver:       resolver,
		orders:         orders,
		attempts:       attempts,
		log:            log,
		formIdentifier: formIdentifier,
		paymentAccount: paymentAccount,
		lockTimeout:    lockTimeout,
	}
}

func (h *CheckoutHandler) Handle(ctx context.Context, cmd CheckoutCommand) (*CheckoutResponse, error) {
	cart, err := h.carts.Get(ctx, cmd.CartID)
	if err != nil {
		h.log.Error("Failed to load cart", "error", err, "cart_id", cmd.CartID)
		return nil, err
	}

	if cart.IsEmpty() {
		h.record(ctx, cmd.CartID, 0, order.OutcomeEmptyCart, 0, "")
		return nil, errors.ErrCartEmpty
	}

	resolution := h.resolver.Resolve(ctx, cmd.Credential)
	if !resolution.Authenticated() {
		h.record(ctx, cmd.CartID, 0, order.OutcomeRequiresLogin, 0, resolution.State.String())
		return nil, errors.ErrLoginRequired
	}

	userID := resolution.User.ID

	locked, err := h.carts.AcquireCheckoutLock(ctx, cmd.CartID, h.lockTimeout)
	if err != nil {
		h.log.Error("Failed to acquire checkout lock", "error", err, "cart_id", cmd.CartID)
		return nil, err
	}
	if !locked {
		h.record(ctx, cmd.CartID, userID, order.OutcomeConflict, 0, "")
		return nil, errors.ErrCheckoutInProgress
	}
	defer func() {
		if err := h.carts.ReleaseCheckoutLock(ctx, cmd.CartID); err != nil {
			h.log.Error("Failed to release checkout lock", "error", err, "cart_id", cmd.CartID)
		}
	}()

	req, err := order.NewRequest(cart, h.formIdentifier, h.paymentAccount)
	if err != nil {
		return nil, err
	}

	result, err := h.orders.CreateOrder(ctx, cmd.Credential, req)
	if err != nil {
		outcome := order.OutcomeOrderFailed
		orderID := 0
		if result != nil {
			// Order exists remotely but is unpaid. The cart stays intact so
			// the user can retry; a retry creates a new order.
			outcome = order.OutcomePaymentFailed
			orderID = result.OrderID
		}
		h.record(ctx, cmd.CartID, userID, outcome, orderID, err.Error())
		return nil, err
	}

	if err := h.carts.Delete(ctx, cmd.CartID); err != nil {
		h.log.Error("Order placed but cart slot not cleared",
			"error", err,
			"cart_id", cmd.CartID,
			"order_id", result.OrderID,
		)
	}

	h.record(ctx, cmd.CartID, userID, order.OutcomeRedirected, result.OrderID, "")

	h.log.Info("Checkout completed",
		"cart_id", cmd.CartID,
		"user_id", userID,
		"order_id", result.OrderID,
	)

	return &CheckoutResponse{
		OrderID:    result.OrderID,
		PaymentURL: result.PaymentURL,
	}, nil
}

func (h *CheckoutHandler) record(ctx context.Context, cartID string, userID int, outcome string, orderID int, detail string) {
	attempt := order.CheckoutAttempt{
		CartID:    cartID,
		UserID:    userID,
		Outcome:   outcome,
		OrderID:   orderID,
		Detail:    detail,
		CreatedAt: time.Now().UTC(),
	}

	if err := h.attempts.Record(ctx, attempt); err != nil {
		h.log.Error("Failed to record checkout attempt", "error", err, "cart_id", cartID, "outcome", outcome)
	}
}
