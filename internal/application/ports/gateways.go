package ports

import (
	"context"

	"github.com/mkravets/storefront-service/internal/domain/catalog"
	"github.com/mkravets/storefront-service/internal/domain/order"
	"github.com/mkravets/storefront-service/internal/domain/session"
)

// IdentityGateway resolves the current user from a bearer access token.
// An invalid or expired token yields errors.ErrUnauthorized.
type IdentityGateway interface {
	GetUser(ctx context.Context, accessToken string) (*session.User, error)
}

type OrderGateway interface {
	CreateOrder(ctx context.Context, accessToken string, req *order.Request) (int, error)
	GetOrders(ctx context.Context, accessToken string) ([]order.Order, error)
}

type PaymentGateway interface {
	CreateSession(ctx context.Context, orderID int, sessionKind string) (string, error)
}

type CatalogGateway interface {
	GetProduct(ctx context.Context, productID int) (*catalog.Product, error)
	SearchProducts(ctx context.Context, query string) ([]catalog.Product, error)
	GetRelatedProducts(ctx context.Context, productID int) ([]catalog.Product, error)
}

type SignUpData struct {
	Email    string
	Password string
	Name     string
}

type FormAttribute struct {
	Marker string `json:"marker"`
	Type   string `json:"type"`
	Title  string `json:"title"`
}

type AuthGateway interface {
	SignUp(ctx context.Context, data SignUpData) error
	SignIn(ctx context.Context, email, password string) (session.Credential, error)
	Logout(ctx context.Context, cred session.Credential) error
	GetFormAttributes(ctx context.Context, marker string) ([]FormAttribute, error)
}
