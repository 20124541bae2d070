package handler

import (
	"net/http"

	"growshop/internal/app/storefront/entity"
	"growshop/internal/app/storefront/service"

	"github.com/gin-gonic/gin"
)

// SearchHandler обрабатывает HTTP запросы поиска
type SearchHandler struct {
	searchService service.SearchServiceInterface
}

func NewSearchHandler(searchService service.SearchServiceInterface) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// Search обрабатывает GET /api/search
func (h *SearchHandler) Search(c *gin.Context) {
	var q entity.SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: formatValidationError(err)})
		return
	}

	products, err := h.searchService.SearchProducts(c.Request.Context(), q.Q, q.Limit)
	if err != nil {
		respondServiceError(c, err, "Failed to search products")
		return
	}

	c.JSON(http.StatusOK, entity.ProductListResponse{Data: products, Total: len(products)})
}

// Suggestions обрабатывает GET /api/search/suggestions
// Контекст запроса идёт насквозь до upstream: отменённый браузером
// запрос (следующее нажатие клавиши) отменяет и наши походы наружу
func (h *SearchHandler) Suggestions(c *gin.Context) {
	var q entity.SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: formatValidationError(err)})
		return
	}

	suggestions, err := h.searchService.GetSuggestions(c.Request.Context(), q.Q, q.Limit)
	if err != nil {
		respondServiceError(c, err, "Failed to get suggestions")
		return
	}

	c.JSON(http.StatusOK, suggestions)
}
