package commands

import (
	"context"
	goerrors "errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkravets/storefront-service/internal/application/use_cases"
	"github.com/mkravets/storefront-service/internal/domain/cart"
	"github.com/mkravets/storefront-service/internal/domain/errors"
	"github.com/mkravets/storefront-service/internal/domain/order"
	"github.com/mkravets/storefront-service/internal/domain/session"
	"github.com/mkravets/storefront-service/internal/pkg/logger"
)

type fakeIdentity struct {
	user *session.User
	err  error
}

func (f *fakeIdentity) GetUser(ctx context.Context, accessToken string) (*session.User, error) {
	return f.user, f.err
}

type fakeOrderGateway struct {
	orderID int
	err     error
	calls   int
	gotReq  *order.Request
}

func (f *fakeOrderGateway) CreateOrder(ctx context.Context, accessToken string, req *order.Request) (int, error) {
	f.calls++
	f.gotReq = req
	return f.orderID, f.err
}

func (f *fakeOrderGateway) GetOrders(ctx context.Context, accessToken string) ([]order.Order, error) {
	return nil, nil
}

type fakePaymentGateway struct {
	url   string
	err   error
	calls int
}

func (f *fakePaymentGateway) CreateSession(ctx context.Context, orderID int, sessionKind string) (string, error) {
	f.calls++
	return f.url, f.err
}

type fakeAttemptLog struct {
	attempts []order.CheckoutAttempt
}

func (f *fakeAttemptLog) Record(ctx context.Context, attempt order.CheckoutAttempt) error {
	f.attempts = append(f.attempts, attempt)
	return nil
}

func (f *fakeAttemptLog) ListByOutcome(ctx context.Context, outcome string, limit int) ([]order.CheckoutAttempt, error) {
	return f.attempts, nil
}

func (f *fakeAttemptLog) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

func (f *fakeAttemptLog) lastOutcome(t *testing.T) order.CheckoutAttempt {
	t.Helper()
	if len(f.attempts) == 0 {
		t.Fatal("expected at least one recorded attempt")
	}
	return f.attempts[len(f.attempts)-1]
}

type checkoutFixture struct {
	store    *fakeCartStore
	orders   *fakeOrderGateway
	payments *fakePaymentGateway
	attempts *fakeAttemptLog
	handler  *CheckoutHandler
}

func newCheckoutFixture(identity *fakeIdentity, orders *fakeOrderGateway, payments *fakePaymentGateway) *checkoutFixture {
	log := logger.NewLogger()
	store := newFakeCartStore()
	attempts := &fakeAttemptLog{}

	resolver := use_cases.NewSessionResolver(identity, log)
	orderUC := use_cases.NewOrderUseCase(orders, payments, log, "session")

	return &checkoutFixture{
		store:    store,
		orders:   orders,
		payments: payments,
		attempts: attempts,
		handler:  NewCheckoutHandler(store, resolver, orderUC, attempts, log, "order-form", "stripe-payment", 30*time.Second),
	}
}

func (fx *checkoutFixture) seedCart(t *testing.T, cartID string) {
	t.Helper()
	c := cart.New(cartID)
	c.AddItem(cart.LineItem{ProductID: 10, Name: "Product", Price: decimal.RequireFromString("19.99"), Quantity: 2})
	fx.store.carts[cartID] = c
}

func authedIdentity() *fakeIdentity {
	return &fakeIdentity{user: &session.User{ID: 42, Email: "a@b.c"}}
}

func checkoutCmd() CheckoutCommand {
	return CheckoutCommand{
		CartID:     "cart-1",
		Credential: session.Credential{AccessToken: "access", RefreshToken: "refresh"},
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	fx := newCheckoutFixture(authedIdentity(), &fakeOrderGateway{}, &fakePaymentGateway{})

	_, err := fx.handler.Handle(context.Background(), checkoutCmd())

	if !goerrors.Is(err, errors.ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty, got %v", err)
	}
	if fx.orders.calls != 0 || fx.payments.calls != 0 {
		t.Fatal("expected no gateway calls for empty cart")
	}
	if got := fx.attempts.lastOutcome(t); got.Outcome != order.OutcomeEmptyCart {
		t.Fatalf("expected empty_cart attempt, got %s", got.Outcome)
	}
}

func TestCheckoutWithoutSession(t *testing.T) {
	cases := []struct {
		name     string
		identity *fakeIdentity
		cmd      CheckoutCommand
		detail   string
	}{
		{
			name:     "anonymous",
			identity: authedIdentity(),
			cmd:      CheckoutCommand{CartID: "cart-1"},
			detail:   "anonymous",
		},
		{
			name:     "expired token",
			identity: &fakeIdentity{err: errors.ErrUnauthorized},
			cmd:      checkoutCmd(),
			detail:   "expired",
		},
		{
			name:     "identity backend down",
			identity: &fakeIdentity{err: goerrors.New("connection refused")},
			cmd:      checkoutCmd(),
			detail:   "unknown",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fx := newCheckoutFixture(tc.identity, &fakeOrderGateway{}, &fakePaymentGateway{})
			fx.seedCart(t, "cart-1")

			_, err := fx.handler.Handle(context.Background(), tc.cmd)

			if !goerrors.Is(err, errors.ErrLoginRequired) {
				t.Fatalf("expected ErrLoginRequired, got %v", err)
			}
			if fx.orders.calls != 0 {
				t.Fatal("order gateway must not be called without a session")
			}
			if _, ok := fx.store.carts["cart-1"]; !ok {
				t.Fatal("cart must stay intact")
			}

			got := fx.attempts.lastOutcome(t)
			if got.Outcome != order.OutcomeRequiresLogin {
				t.Fatalf("expected requires_login attempt, got %s", got.Outcome)
			}
			if got.Detail != tc.detail {
				t.Fatalf("expected detail %s, got %s", tc.detail, got.Detail)
			}
		})
	}
}

func TestCheckoutConflictWhileLocked(t *testing.T) {
	fx := newCheckoutFixture(authedIdentity(), &fakeOrderGateway{}, &fakePaymentGateway{})
	fx.seedCart(t, "cart-1")
	fx.store.locked = true

	_, err := fx.handler.Handle(context.Background(), checkoutCmd())

	if !goerrors.Is(err, errors.ErrCheckoutInProgress) {
		t.Fatalf("expected ErrCheckoutInProgress, got %v", err)
	}
	if fx.orders.calls != 0 {
		t.Fatal("order gateway must not be called while another checkout holds the lock")
	}
	if got := fx.attempts.lastOutcome(t); got.Outcome != order.OutcomeConflict {
		t.Fatalf("expected conflict attempt, got %s", got.Outcome)
	}
}

func TestCheckoutOrderCreationFailureKeepsCart(t *testing.T) {
	fx := newCheckoutFixture(authedIdentity(), &fakeOrderGateway{err: goerrors.New("boom")}, &fakePaymentGateway{})
	fx.seedCart(t, "cart-1")

	_, err := fx.handler.Handle(context.Background(), checkoutCmd())

	if !goerrors.Is(err, errors.ErrOrderCreationFailed) {
		t.Fatalf("expected ErrOrderCreationFailed, got %v", err)
	}
	if fx.payments.calls != 0 {
		t.Fatal("payment gateway must not be called after order failure")
	}
	if _, ok := fx.store.carts["cart-1"]; !ok {
		t.Fatal("cart must stay intact after order failure")
	}
	if fx.store.unlockCall != 1 {
		t.Fatalf("expected lock released once, got %d", fx.store.unlockCall)
	}

	got := fx.attempts.lastOutcome(t)
	if got.Outcome != order.OutcomeOrderFailed {
		t.Fatalf("expected order_failed attempt, got %s", got.Outcome)
	}
	if got.UserID != 42 {
		t.Fatalf("expected user id 42 on attempt, got %d", got.UserID)
	}
}

func TestCheckoutPaymentFailureKeepsCartAndRecordsOrderID(t *testing.T) {
	fx := newCheckoutFixture(authedIdentity(), &fakeOrderGateway{orderID: 99}, &fakePaymentGateway{err: goerrors.New("boom")})
	fx.seedCart(t, "cart-1")

	_, err := fx.handler.Handle(context.Background(), checkoutCmd())

	if !goerrors.Is(err, errors.ErrPaymentSessionFailed) {
		t.Fatalf("expected ErrPaymentSessionFailed, got %v", err)
	}
	if _, ok := fx.store.carts["cart-1"]; !ok {
		t.Fatal("cart must stay intact after payment failure")
	}

	got := fx.attempts.lastOutcome(t)
	if got.Outcome != order.OutcomePaymentFailed {
		t.Fatalf("expected payment_failed attempt, got %s", got.Outcome)
	}
	if got.OrderID != 99 {
		t.Fatalf("expected unpaid order id 99 on attempt, got %d", got.OrderID)
	}
}

func TestCheckoutSuccessClearsCartAndReturnsRedirect(t *testing.T) {
	fx := newCheckoutFixture(authedIdentity(), &fakeOrderGateway{orderID: 99}, &fakePaymentGateway{url: "https://pay.example.com/99"})
	fx.seedCart(t, "cart-1")

	resp, err := fx.handler.Handle(context.Background(), checkoutCmd())

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.OrderID != 99 || resp.PaymentURL != "https://pay.example.com/99" {
		t.Fatalf("unexpected response %+v", resp)
	}

	if _, ok := fx.store.carts["cart-1"]; ok {
		t.Fatal("cart slot must be cleared after success")
	}
	if fx.store.unlockCall != 1 {
		t.Fatalf("expected lock released once, got %d", fx.store.unlockCall)
	}

	got := fx.attempts.lastOutcome(t)
	if got.Outcome != order.OutcomeRedirected {
		t.Fatalf("expected redirected attempt, got %s", got.Outcome)
	}
	if got.OrderID != 99 {
		t.Fatalf("expected order id 99 on attempt, got %d", got.OrderID)
	}
}

func TestCheckoutProductsMirrorCartLines(t *testing.T) {
	orders := &fakeOrderGateway{orderID: 99}
	fx := newCheckoutFixture(authedIdentity(), orders, &fakePaymentGateway{url: "https://pay.example.com/99"})

	c := cart.New("cart-1")
	c.AddItem(cart.LineItem{ProductID: 30, Price: decimal.RequireFromString("1.00"), Quantity: 1})
	c.AddItem(cart.LineItem{ProductID: 10, Price: decimal.RequireFromString("19.99"), Quantity: 3})
	fx.store.carts["cart-1"] = c

	if _, err := fx.handler.Handle(context.Background(), checkoutCmd()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := orders.gotReq
	if req == nil {
		t.Fatal("expected order request to be sent")
	}
	if req.FormIdentifier != "order-form" || req.PaymentAccountIdentifier != "stripe-payment" {
		t.Fatalf("unexpected identifiers in request %+v", req)
	}
	if len(req.Products) != 2 || req.Products[0].ProductID != 10 || req.Products[0].Quantity != 3 {
		t.Fatalf("unexpected products %+v", req.Products)
	}
}

func TestCheckoutLockErrorSurfaced(t *testing.T) {
	lockErr := goerrors.New("redis down")
	fx := newCheckoutFixture(authedIdentity(), &fakeOrderGateway{}, &fakePaymentGateway{})
	fx.seedCart(t, "cart-1")
	fx.store.lockErr = lockErr

	_, err := fx.handler.Handle(context.Background(), checkoutCmd())

	if !goerrors.Is(err, lockErr) {
		t.Fatalf("expected lock error surfaced, got %v", err)
	}
	if fx.orders.calls != 0 {
		t.Fatal("order gateway must not be called when locking fails")
	}
}
