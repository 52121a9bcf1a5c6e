package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkravets/storefront-service/internal/application/commands"
	"github.com/mkravets/storefront-service/internal/application/ports"
	"github.com/mkravets/storefront-service/internal/application/use_cases"
	"github.com/mkravets/storefront-service/internal/domain/cart"
	"github.com/mkravets/storefront-service/internal/domain/order"
	"github.com/mkravets/storefront-service/internal/domain/session"
	"github.com/mkravets/storefront-service/internal/pkg/logger"
)

type stubIdentity struct {
	user *session.User
	err  error
}

func (s *stubIdentity) GetUser(ctx context.Context, accessToken string) (*session.User, error) {
	return s.user, s.err
}

type stubOrderGateway struct {
	orderID int
	err     error
}

func (s *stubOrderGateway) CreateOrder(ctx context.Context, accessToken string, req *order.Request) (int, error) {
	return s.orderID, s.err
}

func (s *stubOrderGateway) GetOrders(ctx context.Context, accessToken string) ([]order.Order, error) {
	return nil, nil
}

type stubPaymentGateway struct {
	url string
	err error
}

func (s *stubPaymentGateway) CreateSession(ctx context.Context, orderID int, sessionKind string) (string, error) {
	return s.url, s.err
}

type noopAttemptLog struct{}

func (noopAttemptLog) Record(ctx context.Context, attempt order.CheckoutAttempt) error { return nil }
func (noopAttemptLog) ListByOutcome(ctx context.Context, outcome string, limit int) ([]order.CheckoutAttempt, error) {
	return nil, nil
}
func (noopAttemptLog) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

func newCheckoutHandler(store ports.CartStore, identity *stubIdentity, orders *stubOrderGateway, payments *stubPaymentGateway) *CheckoutHandler {
	log := logger.NewLogger()

	resolver := use_cases.NewSessionResolver(identity, log)
	orderUC := use_cases.NewOrderUseCase(orders, payments, log, "session")
	cmd := commands.NewCheckoutHandler(store, resolver, orderUC, noopAttemptLog{}, log, "order-form", "stripe-payment", 30*time.Second)

	return NewCheckoutHandler(cmd, log)
}

func checkoutRequest(cookies ...*http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

func authCookies(cartID string) []*http.Cookie {
	return []*http.Cookie{
		{Name: cartCookieName, Value: cartID},
		{Name: accessCookieName, Value: "access"},
		{Name: refreshCookieName, Value: "refresh"},
	}
}

func TestHandleCheckoutWithoutCartCookie(t *testing.T) {
	h := newCheckoutHandler(newMemoryCartStore(), &stubIdentity{}, &stubOrderGateway{}, &stubPaymentGateway{})

	rec := httptest.NewRecorder()
	h.HandleCheckout()(rec, checkoutRequest())

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing cart cookie, got %d", rec.Code)
	}
}

func TestHandleCheckoutAnonymous(t *testing.T) {
	store := newMemoryCartStore()
	c := cart.New("cart-1")
	c.AddItem(cart.LineItem{ProductID: 10, Name: "Product", Price: decimal.RequireFromString("19.99"), Quantity: 1})
	store.carts["cart-1"] = c

	h := newCheckoutHandler(store, &stubIdentity{}, &stubOrderGateway{}, &stubPaymentGateway{})

	rec := httptest.NewRecorder()
	h.HandleCheckout()(rec, checkoutRequest(cartCookie("cart-1")))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for anonymous checkout, got %d", rec.Code)
	}
}

func TestHandleCheckoutSuccess(t *testing.T) {
	store := newMemoryCartStore()
	c := cart.New("cart-1")
	c.AddItem(cart.LineItem{ProductID: 10, Name: "Product", Price: decimal.RequireFromString("19.99"), Quantity: 1})
	store.carts["cart-1"] = c

	identity := &stubIdentity{user: &session.User{ID: 42}}
	h := newCheckoutHandler(store, identity, &stubOrderGateway{orderID: 99}, &stubPaymentGateway{url: "https://pay.example.com/99"})

	rec := httptest.NewRecorder()
	h.HandleCheckout()(rec, checkoutRequest(authCookies("cart-1")...))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp commands.CheckoutResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.OrderID != 99 || resp.PaymentURL != "https://pay.example.com/99" {
		t.Fatalf("unexpected response %+v", resp)
	}

	if _, ok := store.carts["cart-1"]; ok {
		t.Fatal("expected cart slot cleared after checkout")
	}
}

func TestHandleCheckoutPaymentFailure(t *testing.T) {
	store := newMemoryCartStore()
	c := cart.New("cart-1")
	c.AddItem(cart.LineItem{ProductID: 10, Name: "Product", Price: decimal.RequireFromString("19.99"), Quantity: 1})
	store.carts["cart-1"] = c

	identity := &stubIdentity{user: &session.User{ID: 42}}
	h := newCheckoutHandler(store, identity, &stubOrderGateway{orderID: 99}, &stubPaymentGateway{url: ""})

	rec := httptest.NewRecorder()
	h.HandleCheckout()(rec, checkoutRequest(authCookies("cart-1")...))

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	if _, ok := store.carts["cart-1"]; !ok {
		t.Fatal("expected cart to stay intact after payment failure")
	}
}
