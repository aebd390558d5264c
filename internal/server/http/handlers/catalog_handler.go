package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/greenmandi/storefront/internal/domain/errors"
	"github.com/greenmandi/storefront/internal/domain/model"
	"github.com/greenmandi/storefront/internal/server/http/dto"
)

// CatalogHandler serves public catalog endpoints.
type CatalogHandler struct {
	facade CatalogFacade
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// Categories handles GET /api/catalog/categories.
func (h *CatalogHandler) Categories(c *gin.Context) {
	categories, err := h.facade.Categories(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		response = append(response, dto.CategoryResponse{ID: category.ID, Name: category.Name, Slug: category.Slug})
	}
	c.JSON(http.StatusOK, response)
}

// Products handles GET /api/catalog/products?category=.
func (h *CatalogHandler) Products(c *gin.Context) {
	categoryID, err := strconv.ParseInt(c.Query("category"), 10, 64)
	if err != nil || categoryID <= 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	products, err := h.facade.Products(c.Request.Context(), categoryID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, toProductResponses(products))
}

// Product handles GET /api/catalog/products/:id.
func (h *CatalogHandler) Product(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	product, err := h.facade.Product(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(*product))
}

// Suggest handles GET /api/catalog/suggest?q=.
func (h *CatalogHandler) Suggest(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	products, err := h.facade.Search(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, toProductResponses(products))
}

// Pincode handles GET /api/catalog/pincode/:code.
func (h *CatalogHandler) Pincode(c *gin.Context) {
	pincode, err := h.facade.CheckPincode(c.Request.Context(), c.Param("code"))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidPincode):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, dto.PincodeResponse{
		Code:         pincode.Code,
		Area:         pincode.Area,
		DeliveryDays: pincode.DeliveryDays,
	})
}

func toProductResponses(products []model.Product) []dto.ProductResponse {
	response := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		response = append(response, toProductResponse(p))
	}
	return response
}

func toProductResponse(p model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:         p.ID,
		CategoryID: p.CategoryID,
		Name:       p.Name,
		Unit:       p.Unit,
		Price:      p.Price,
		InStock:    p.Stock > 0,
	}
}
