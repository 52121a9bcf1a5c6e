package response

import (
	"errors"
	"net/http"
	"testing"

	domainErrors "github.com/mkravets/storefront-service/internal/domain/errors"
)

func TestMapDomainError(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{domainErrors.ErrCartEmpty, http.StatusBadRequest},
		{domainErrors.ErrCartNotFound, http.StatusNotFound},
		{domainErrors.ErrLoginRequired, http.StatusUnauthorized},
		{domainErrors.ErrUnauthorized, http.StatusUnauthorized},
		{domainErrors.ErrSessionUnavailable, http.StatusServiceUnavailable},
		{domainErrors.ErrCheckoutInProgress, http.StatusConflict},
		{domainErrors.ErrOrderCreationFailed, http.StatusBadGateway},
		{domainErrors.ErrPaymentSessionFailed, http.StatusBadGateway},
		{domainErrors.ErrProductNotFound, http.StatusNotFound},
		{domainErrors.ErrCommerceUnavailable, http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			status, resp := MapDomainError(tc.err)
			if status != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, status)
			}
			if resp == nil {
				t.Fatal("expected error response")
			}
		})
	}
}

func TestMapDomainErrorWrapped(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), domainErrors.ErrCheckoutInProgress)

	status, _ := MapDomainError(wrapped)
	if status != http.StatusConflict {
		t.Fatalf("expected 409 for wrapped error, got %d", status)
	}
}

func TestMapDomainErrorUnknown(t *testing.T) {
	status, resp := MapDomainError(errors.New("anything"))
	if status != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", status)
	}
	if resp.Message != "Internal server error" {
		t.Fatalf("expected generic message, got %+v", resp)
	}
}
