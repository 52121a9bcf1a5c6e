package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/mkravets/storefront-service/internal/application/ports"
	"github.com/mkravets/storefront-service/internal/infrastructure/http/response"
	"github.com/mkravets/storefront-service/internal/pkg/logger"
)

type CatalogHandler struct {
	catalog ports.CatalogGateway
	log     *logger.Logger
}

func NewCatalogHandler(catalog ports.CatalogGateway, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		log:     log,
	}
}

func (h *CatalogHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		response.WriteValidationError(w, "Validation failed", map[string]string{"q": "q is required"})
		return
	}

	products, err := h.catalog.SearchProducts(r.Context(), query)
	if err != nil {
		h.log.Error("Product search failed", "error", err.Error(), "query", query)
		response.WriteDomainError(w, err)
		return
	}

	response.WriteSuccess(w, products)
}

// HandleProductRoutes serves /products/{id} and /products/{id}/related.
func (h *CatalogHandler) HandleProductRoutes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/products/")
	parts := strings.Split(path, "/")

	productID, err := strconv.Atoi(parts[0])
	if err != nil || productID <= 0 {
		response.WriteValidationError(w, "Invalid product id", map[string]string{"product_id": "must be a positive integer"})
		return
	}

	if len(parts) == 1 {
		product, err := h.catalog.GetProduct(r.Context(), productID)
		if err != nil {
			response.WriteDomainError(w, err)
			return
		}
		response.WriteSuccess(w, product)
		return
	}

	if len(parts) == 2 && parts[1] == "related" {
		products, err := h.catalog.GetRelatedProducts(r.Context(), productID)
		if err != nil {
			response.WriteDomainError(w, err)
			return
		}
		response.WriteSuccess(w, products)
		return
	}

	http.NotFound(w, r)
}
