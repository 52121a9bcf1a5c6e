package commerce

import (
	"context"
	"net/http"

	"github.com/mkravets/storefront-service/internal/domain/session"
)

func (c *Client) GetUser(ctx context.Context, accessToken string) (*session.User, error) {
	var user session.User
	if err := c.do(ctx, http.MethodGet, "/users/me", accessToken, nil, &user); err != nil {
		return nil, err
	}

	return &user, nil
}
