package handler

import (
	"errors"
	"net/http"
	"strconv"

	"growshop/internal/app/storefront/entity"
	"growshop/internal/app/storefront/service"

	"github.com/gin-gonic/gin"
)

// CatalogHandler обрабатывает HTTP запросы каталога с использованием Gin
// Канал ошибок единый: успех - 200 с {data, total}, любая ошибка -
// не-200 с {error}
type CatalogHandler struct {
	catalogService service.CatalogServiceInterface
}

// NewCatalogHandler создает новый обработчик каталога
func NewCatalogHandler(catalogService service.CatalogServiceInterface) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// GetProducts обрабатывает GET /api/products
func (h *CatalogHandler) GetProducts(c *gin.Context) {
	var q entity.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: formatValidationError(err)})
		return
	}

	products, total, err := h.catalogService.GetProducts(c.Request.Context(), q)
	if err != nil {
		respondServiceError(c, err, "Failed to get products")
		return
	}

	c.JSON(http.StatusOK, entity.ProductListResponse{Data: products, Total: total})
}

// GetFeaturedProducts обрабатывает GET /api/products/featured
func (h *CatalogHandler) GetFeaturedProducts(c *gin.Context) {
	limit := parseLimit(c, 8)

	products, err := h.catalogService.GetFeaturedProducts(c.Request.Context(), limit)
	if err != nil {
		respondServiceError(c, err, "Failed to get featured products")
		return
	}

	c.JSON(http.StatusOK, entity.ProductListResponse{Data: products, Total: len(products)})
}

// GetOnSaleProducts обрабатывает GET /api/products/on-sale
func (h *CatalogHandler) GetOnSaleProducts(c *gin.Context) {
	limit := parseLimit(c, 8)

	products, err := h.catalogService.GetOnSaleProducts(c.Request.Context(), limit)
	if err != nil {
		respondServiceError(c, err, "Failed to get on-sale products")
		return
	}

	c.JSON(http.StatusOK, entity.ProductListResponse{Data: products, Total: len(products)})
}

// GetProduct обрабатывает GET /api/product/:slug
// Слаг несёт id в префиксе, обращения к upstream ради резолва нет
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	slug := c.Param("slug")

	product, err := h.catalogService.GetProductBySlug(c.Request.Context(), slug)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidSlug):
			c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid product slug"})
		case errors.Is(err, service.ErrProductNotFound):
			c.JSON(http.StatusNotFound, entity.ErrorResponse{Error: "Product not found"})
		default:
			respondServiceError(c, err, "Failed to get product")
		}
		return
	}

	c.JSON(http.StatusOK, entity.ProductResponse{Data: *product})
}

// GetCategories обрабатывает GET /api/category (с кешированием)
func (h *CatalogHandler) GetCategories(c *gin.Context) {
	categories, err := h.catalogService.GetCategories(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to get categories")
		return
	}

	c.JSON(http.StatusOK, entity.CategoryListResponse{Data: categories, Total: len(categories)})
}

// GetCategory обрабатывает GET /api/category/:slug
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	slug := c.Param("slug")

	category, err := h.catalogService.GetCategoryBySlug(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, entity.ErrorResponse{Error: "Category not found"})
			return
		}
		respondServiceError(c, err, "Failed to get category")
		return
	}

	c.JSON(http.StatusOK, entity.CategoryResponse{Data: *category})
}

// GetCategoryProducts обрабатывает GET /api/categories/:id/products
func (h *CatalogHandler) GetCategoryProducts(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid category ID"})
		return
	}

	var q entity.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: formatValidationError(err)})
		return
	}

	products, total, err := h.catalogService.GetProductsByCategory(c.Request.Context(), id, q)
	if err != nil {
		respondServiceError(c, err, "Failed to get category products")
		return
	}

	c.JSON(http.StatusOK, entity.ProductListResponse{Data: products, Total: total})
}

// GetSubcategories обрабатывает GET /api/categories/:id/subcategories
func (h *CatalogHandler) GetSubcategories(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid category ID"})
		return
	}

	subcategories, err := h.catalogService.GetSubcategories(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, entity.ErrorResponse{Error: "Category not found"})
			return
		}
		respondServiceError(c, err, "Failed to get subcategories")
		return
	}

	c.JSON(http.StatusOK, entity.CategoryListResponse{Data: subcategories, Total: len(subcategories)})
}

func parseLimit(c *gin.Context, fallback int) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(fallback)))
	if err != nil || limit <= 0 || limit > 100 {
		return fallback
	}
	return limit
}
