package commerce

import (
	"context"
	"fmt"
	"net/http"
)

type createSessionRequest struct {
	Type string `json:"type"`
}

type createSessionResponse struct {
	PaymentURL string `json:"paymentUrl"`
}

func (c *Client) CreateSession(ctx context.Context, orderID int, sessionKind string) (string, error) {
	path := fmt.Sprintf("/payments/orders/%d/session", orderID)

	var resp createSessionResponse
	if err := c.do(ctx, http.MethodPost, path, "", createSessionRequest{Type: sessionKind}, &resp); err != nil {
		return "", err
	}

	return resp.PaymentURL, nil
}
