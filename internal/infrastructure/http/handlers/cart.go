package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mkravets/storefront-service/internal/application/commands"
	"github.com/mkravets/storefront-service/internal/infrastructure/http/response"
	"github.com/mkravets/storefront-service/internal/infrastructure/monitoring"
	"github.com/mkravets/storefront-service/internal/pkg/generator"
	"github.com/mkravets/storefront-service/internal/pkg/logger"
)

type CartHandler struct {
	cart  *commands.CartHandler
	idGen *generator.CartIDGenerator
	log   *logger.Logger
}

func NewCartHandler(cart *commands.CartHandler, idGen *generator.CartIDGenerator, log *logger.Logger) *CartHandler {
	return &CartHandler{
		cart:  cart,
		idGen: idGen,
		log:   log,
	}
}

// cartID reads the cart cookie, minting a new id (and setting the cookie)
// on first contact.
func (h *CartHandler) cartID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(cartCookieName); err == nil && c.Value != "" {
		return c.Value
	}

	id := h.idGen.NewCartID()
	http.SetCookie(w, &http.Cookie{
		Name:     cartCookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   60 * 60 * 24 * 30,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return id
}

func (h *CartHandler) HandleCart(w http.ResponseWriter, r *http.Request) {
	cartID := h.cartID(w, r)

	switch r.Method {
	case http.MethodGet:
		view, err := h.cart.Get(r.Context(), cartID)
		if err != nil {
			response.WriteDomainError(w, err)
			return
		}
		response.WriteSuccess(w, view)

	case http.MethodDelete:
		if err := h.cart.Clear(r.Context(), cartID); err != nil {
			response.WriteDomainError(w, err)
			return
		}
		monitoring.RecordCartOperation("clear")
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

type addItemRequest struct {
	ProductID int             `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	ImageURL  string          `json:"image_url"`
}

func (h *CartHandler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	cartID := h.cartID(w, r)

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteValidationError(w, "Invalid request body", nil)
		return
	}

	errors := make(map[string]string)
	if req.ProductID <= 0 {
		errors["product_id"] = "product_id is required"
	}
	if req.Name == "" {
		errors["name"] = "name is required"
	}
	if req.Price.IsNegative() {
		errors["price"] = "price cannot be negative"
	}
	if len(errors) > 0 {
		response.WriteValidationError(w, "Validation failed", errors)
		return
	}

	view, err := h.cart.AddItem(r.Context(), commands.AddItemCommand{
		CartID:    cartID,
		ProductID: req.ProductID,
		Name:      req.Name,
		Price:     req.Price,
		Quantity:  req.Quantity,
		ImageURL:  req.ImageURL,
	})
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	monitoring.RecordCartOperation("add")
	response.WriteSuccess(w, view)
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// HandleItemRoutes serves /cart/items/{productID} for quantity updates and
// removals.
func (h *CartHandler) HandleItemRoutes(w http.ResponseWriter, r *http.Request) {
	cartID := h.cartID(w, r)

	idPart := strings.TrimPrefix(r.URL.Path, "/cart/items/")
	productID, err := strconv.Atoi(idPart)
	if err != nil || productID <= 0 {
		response.WriteValidationError(w, "Invalid product id", map[string]string{"product_id": "must be a positive integer"})
		return
	}

	switch r.Method {
	case http.MethodPut:
		var req updateQuantityRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.WriteValidationError(w, "Invalid request body", nil)
			return
		}

		view, err := h.cart.UpdateQuantity(r.Context(), commands.UpdateQuantityCommand{
			CartID:    cartID,
			ProductID: productID,
			Quantity:  req.Quantity,
		})
		if err != nil {
			response.WriteDomainError(w, err)
			return
		}

		monitoring.RecordCartOperation("update_quantity")
		response.WriteSuccess(w, view)

	case http.MethodDelete:
		view, err := h.cart.RemoveItem(r.Context(), cartID, productID)
		if err != nil {
			response.WriteDomainError(w, err)
			return
		}

		monitoring.RecordCartOperation("remove")
		response.WriteSuccess(w, view)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
