package commerce

import (
	"context"
	"encoding/json"
	goerrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mkravets/storefront-service/internal/config"
	"github.com/mkravets/storefront-service/internal/domain/errors"
	"github.com/mkravets/storefront-service/internal/domain/order"
	"github.com/mkravets/storefront-service/internal/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.CommerceConfig{
		BaseURL:        srv.URL,
		APIToken:       "app-token",
		Language:       "en",
		TimeoutSeconds: 5,
	}

	return NewClient(cfg, logger.NewLogger())
}

func TestGetUserSendsHeaders(t *testing.T) {
	var gotAppToken, gotAuth string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/me" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		gotAppToken = r.Header.Get("x-app-token")
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]interface{}{"id": 42, "email": "a@b.c", "name": "A"})
	})

	user, err := client.GetUser(context.Background(), "access-token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.ID != 42 || user.Email != "a@b.c" {
		t.Fatalf("unexpected user %+v", user)
	}
	if gotAppToken != "app-token" {
		t.Fatalf("expected installation token header, got %q", gotAppToken)
	}
	if gotAuth != "Bearer access-token" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
}

func TestGetUserUnauthorized(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.GetUser(context.Background(), "stale-token")

	if !goerrors.Is(err, errors.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestGetProductNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetProduct(context.Background(), 123)

	if !goerrors.Is(err, errors.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestCreateOrderPostsFormPath(t *testing.T) {
	var gotPath string
	var gotBody order.Request

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]int{"id": 99})
	})

	req := &order.Request{
		FormIdentifier:           "order-form",
		PaymentAccountIdentifier: "stripe-payment",
		Products:                 []order.ProductOrder{{ProductID: 10, Quantity: 2}},
	}

	orderID, err := client.CreateOrder(context.Background(), "access-token", req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if orderID != 99 {
		t.Fatalf("expected order id 99, got %d", orderID)
	}
	if gotPath != "/orders/order-form" {
		t.Fatalf("unexpected path %s", gotPath)
	}
	if len(gotBody.Products) != 1 || gotBody.Products[0].ProductID != 10 {
		t.Fatalf("unexpected body %+v", gotBody)
	}
}

func TestCreateSession(t *testing.T) {
	var gotPath string
	var gotBody map[string]string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{"paymentUrl": "https://pay.example.com/99"})
	})

	url, err := client.CreateSession(context.Background(), 99, "session")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if url != "https://pay.example.com/99" {
		t.Fatalf("unexpected payment url %s", url)
	}
	if gotPath != "/payments/orders/99/session" {
		t.Fatalf("unexpected path %s", gotPath)
	}
	if gotBody["type"] != "session" {
		t.Fatalf("expected session kind in body, got %+v", gotBody)
	}
}

func TestServerErrorMessageSurfaced(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]interface{}{"statusCode": 502, "message": "upstream exploded"})
	})

	_, err := client.GetOrders(context.Background(), "access-token")

	if err == nil {
		t.Fatal("expected error")
	}
	if got := err.Error(); got != "commerce backend: upstream exploded (status 502)" {
		t.Fatalf("unexpected error message %q", got)
	}
}

func TestCircuitBreakerOpensAfterRepeatedFailures(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	// Trip the breaker, then expect fast failure without hitting the server.
	var lastErr error
	for i := 0; i < 10; i++ {
		_, lastErr = client.GetOrders(context.Background(), "access-token")
	}

	if !goerrors.Is(lastErr, errors.ErrCommerceUnavailable) {
		t.Fatalf("expected ErrCommerceUnavailable once breaker is open, got %v", lastErr)
	}
}
