package commerce

import (
	"context"
	"net/http"

	"github.com/mkravets/storefront-service/internal/domain/order"
)

type createOrderResponse struct {
	ID int `json:"id"`
}

func (c *Client) CreateOrder(ctx context.Context, accessToken string, req *order.Request) (int, error) {
	var resp createOrderResponse
	if err := c.do(ctx, http.MethodPost, "/orders/"+req.FormIdentifier, accessToken, req, &resp); err != nil {
		return 0, err
	}

	return resp.ID, nil
}

type listOrdersResponse struct {
	Items []order.Order `json:"items"`
}

func (c *Client) GetOrders(ctx context.Context, accessToken string) ([]order.Order, error) {
	var resp listOrdersResponse
	if err := c.do(ctx, http.MethodGet, "/orders", accessToken, nil, &resp); err != nil {
		return nil, err
	}

	return resp.Items, nil
}
