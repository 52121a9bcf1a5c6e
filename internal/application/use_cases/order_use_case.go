package use_cases

import (
	"context"

	"github.com/mkravets/storefront-service/internal/application/ports"
	"github.com/mkravets/storefront-service/internal/domain/errors"
	"github.com/mkravets/storefront-service/internal/domain/order"
	"github.com/mkravets/storefront-service/internal/domain/session"
	"github.com/mkravets/storefront-service/internal/infrastructure/monitoring"
	"github.com/mkravets/storefront-service/internal/pkg/logger"
)

// OrderUseCase runs the strict two-phase order sequence: create the remote
// order, then create a payment session for it. There is no rollback path:
// a phase-two failure leaves the order existing unpaid on the remote side,
// and no retry is attempted here. Cart clearing is the caller's job.
type OrderUseCase struct {
	orders      ports.OrderGateway
	payments    ports.PaymentGateway
	log         *logger.Logger
	sessionKind string
}

func NewOrderUseCase(
	orders ports.OrderGateway,
	payments ports.PaymentGateway,
	log *logger.Logger,
	sessionKind string,
) *OrderUseCase {
	return &OrderUseCase{
		orders:      orders,
		payments:    payments,
		log:         log,
		sessionKind: sessionKind,
	}
}

// CreateOrder returns the payment redirect URL on success. On
// ErrPaymentSessionFailed the returned result is non-nil and carries the
// created order id so the caller can record the unpaid remote order.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, cred session.Credential, req *order.Request) (*order.Result, error) {
	if !cred.Present() {
		return nil, errors.ErrLoginRequired
	}

	if req == nil || len(req.Products) == 0 {
		return nil, errors.ErrCartEmpty
	}

	orderID, err := uc.orders.CreateOrder(ctx, cred.AccessToken, req)
	if err != nil || orderID == 0 {
		uc.log.Error("Order creation failed", "error", err)
		monitoring.RecordOrderCreationFailure()
		return nil, errors.ErrOrderCreationFailed
	}

	monitoring.RecordOrderCreated()

	paymentURL, err := uc.payments.CreateSession(ctx, orderID, uc.sessionKind)
	if err != nil || paymentURL == "" {
		uc.log.Error("Payment session creation failed, order exists unpaid",
			"error", err,
			"order_id", orderID,
		)
		monitoring.RecordPaymentSessionFailure()
		return &order.Result{OrderID: orderID}, errors.ErrPaymentSessionFailed
	}

	return &order.Result{
		OrderID:    orderID,
		PaymentURL: paymentURL,
	}, nil
}
