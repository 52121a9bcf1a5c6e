package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/mkravets/storefront-service/internal/config"
	"github.com/mkravets/storefront-service/internal/domain/errors"
	"github.com/mkravets/storefront-service/internal/infrastructure/monitoring"
	"github.com/mkravets/storefront-service/internal/pkg/logger"
)

// Client is the HTTP client for the remote commerce backend. All calls go
// through a shared circuit breaker so a dead backend fails fast instead of
// stacking up blocked checkouts.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiToken   string
	language   string
	cb         *gobreaker.CircuitBreaker
	log        *logger.Logger
}

func NewClient(cfg config.CommerceConfig, log *logger.Logger) *Client {
	st := gobreaker.Settings{
		Name:        "CommerceBackend",
		MaxRequests: 5,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.Requests >= 5 && float64(counts.TotalFailures)/float64(counts.Requests) >= 0.5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn("Circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout()},
		baseURL:    cfg.BaseURL,
		apiToken:   cfg.APIToken,
		language:   cfg.Language,
		cb:         gobreaker.NewCircuitBreaker(st),
		log:        log,
	}
}

type apiError struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

// do issues one request against the backend. accessToken is optional; the
// installation API token always goes along. A 401 maps to ErrUnauthorized,
// a 404 to ErrProductNotFound, an open breaker to ErrCommerceUnavailable.
func (c *Client) do(ctx context.Context, method, path, accessToken string, body, out interface{}) error {
	end := monitoring.TimeCommerceRequest(method, path)
	defer end()

	_, err := c.cb.Execute(func() (interface{}, error) {
		var reader io.Reader
		if body != nil {
			payload, err := json.Marshal(body)
			if err != nil {
				return nil, err
			}
			reader = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return nil, err
		}

		req.Header.Set("Accept", "application/json")
		req.Header.Set("x-app-token", c.apiToken)
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if accessToken != "" {
			req.Header.Set("Authorization", "Bearer "+accessToken)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusUnauthorized {
			return nil, errors.ErrUnauthorized
		}
		if resp.StatusCode == http.StatusNotFound {
			return nil, errors.ErrProductNotFound
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			var apiErr apiError
			if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Message != "" {
				return nil, fmt.Errorf("commerce backend: %s (status %d)", apiErr.Message, resp.StatusCode)
			}
			return nil, fmt.Errorf("commerce backend: unexpected status %d", resp.StatusCode)
		}

		if out != nil {
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return nil, fmt.Errorf("commerce backend: decode response: %w", err)
			}
		}

		return nil, nil
	})

	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		return errors.ErrCommerceUnavailable
	}

	return err
}
