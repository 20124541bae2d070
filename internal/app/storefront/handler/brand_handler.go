package handler

import (
	"errors"
	"net/http"
	"strconv"

	"growshop/internal/app/storefront/entity"
	"growshop/internal/app/storefront/service"

	"github.com/gin-gonic/gin"
)

// BrandHandler обрабатывает HTTP запросы марок
type BrandHandler struct {
	catalogService service.CatalogServiceInterface
}

func NewBrandHandler(catalogService service.CatalogServiceInterface) *BrandHandler {
	return &BrandHandler{catalogService: catalogService}
}

// GetBrands обрабатывает GET /api/brands
func (h *BrandHandler) GetBrands(c *gin.Context) {
	brands, err := h.catalogService.GetBrands(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to get brands")
		return
	}

	c.JSON(http.StatusOK, entity.BrandListResponse{Data: brands, Total: len(brands)})
}

// GetBrandProducts обрабатывает GET /api/brands/:id/products
// Параметр source уточняет источник марки (manufacturer или category),
// без него матчится любой
func (h *BrandHandler) GetBrandProducts(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid brand ID"})
		return
	}

	source := entity.BrandSource(c.Query("source"))
	switch source {
	case "", entity.BrandSourceManufacturer, entity.BrandSourceCategory:
	default:
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid brand source"})
		return
	}

	var q entity.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: formatValidationError(err)})
		return
	}

	brand, err := h.catalogService.FindBrand(c.Request.Context(), id, source)
	if err != nil {
		if errors.Is(err, service.ErrBrandNotFound) {
			c.JSON(http.StatusNotFound, entity.ErrorResponse{Error: "Brand not found"})
			return
		}
		respondServiceError(c, err, "Failed to get brand")
		return
	}

	products, total, err := h.catalogService.GetProductsByBrand(c.Request.Context(), *brand, q)
	if err != nil {
		respondServiceError(c, err, "Failed to get brand products")
		return
	}

	c.JSON(http.StatusOK, entity.ProductListResponse{Data: products, Total: total})
}
