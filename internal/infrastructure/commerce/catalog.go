package commerce

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mkravets/storefront-service/internal/domain/catalog"
)

func (c *Client) GetProduct(ctx context.Context, productID int) (*catalog.Product, error) {
	path := fmt.Sprintf("/products/%d?lang=%s", productID, c.language)

	var product catalog.Product
	if err := c.do(ctx, http.MethodGet, path, "", nil, &product); err != nil {
		return nil, err
	}

	return &product, nil
}

type productListResponse struct {
	Items []catalog.Product `json:"items"`
}

func (c *Client) SearchProducts(ctx context.Context, query string) ([]catalog.Product, error) {
	path := fmt.Sprintf("/products/search?q=%s&lang=%s", url.QueryEscape(query), c.language)

	var resp productListResponse
	if err := c.do(ctx, http.MethodGet, path, "", nil, &resp); err != nil {
		return nil, err
	}

	return resp.Items, nil
}

func (c *Client) GetRelatedProducts(ctx context.Context, productID int) ([]catalog.Product, error) {
	path := fmt.Sprintf("/products/%d/related?lang=%s", productID, c.language)

	var resp productListResponse
	if err := c.do(ctx, http.MethodGet, path, "", nil, &resp); err != nil {
		return nil, err
	}

	return resp.Items, nil
}
