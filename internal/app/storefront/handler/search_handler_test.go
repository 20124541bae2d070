package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"growshop/internal/app/storefront/entity"
	"growshop/internal/app/storefront/service/mocks"
)

func TestSearch_Success(t *testing.T) {
	// Arrange
	router := setupTestRouter()

	search := new(mocks.MockSearchService)
	search.On("SearchProducts", mock.Anything, "fertilizante", 24).
		Return([]entity.Product{{ID: 1, Name: "Fertilizante"}}, nil)

	h := NewSearchHandler(search)
	router.GET("/api/search", h.Search)

	// Act
	w := performRequest(router, http.MethodGet, "/api/search?q=fertilizante")

	// Assert
	require.Equal(t, http.StatusOK, w.Code)

	var resp entity.ProductListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)
}

func TestSearch_QueryTooShort(t *testing.T) {
	// Arrange: минимум 2 символа
	router := setupTestRouter()
	h := NewSearchHandler(new(mocks.MockSearchService))
	router.GET("/api/search", h.Search)

	// Act
	w := performRequest(router, http.MethodGet, "/api/search?q=a")

	// Assert
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearch_QueryMissing(t *testing.T) {
	router := setupTestRouter()
	h := NewSearchHandler(new(mocks.MockSearchService))
	router.GET("/api/search", h.Search)

	w := performRequest(router, http.MethodGet, "/api/search")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSuggestions_Success(t *testing.T) {
	// Arrange
	router := setupTestRouter()

	search := new(mocks.MockSearchService)
	search.On("GetSuggestions", mock.Anything, "lampara", 24).
		Return(&entity.SuggestionsResponse{
			Query:       "lampara",
			Suggestions: []entity.Suggestion{{ID: 1, Name: "Lámpara LED", Type: "product"}},
		}, nil)

	h := NewSearchHandler(search)
	router.GET("/api/search/suggestions", h.Suggestions)

	// Act
	w := performRequest(router, http.MethodGet, "/api/search/suggestions?q=lampara")

	// Assert
	require.Equal(t, http.StatusOK, w.Code)

	var resp entity.SuggestionsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Suggestions, 1)
	assert.Equal(t, "product", resp.Suggestions[0].Type)
}

func TestGetBrandProducts_InvalidSource(t *testing.T) {
	// Arrange
	router := setupTestRouter()
	h := NewBrandHandler(new(mocks.MockCatalogService))
	router.GET("/api/brands/:id/products", h.GetBrandProducts)

	// Act
	w := performRequest(router, http.MethodGet, "/api/brands/5/products?source=unknown")

	// Assert
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetBrandProducts_BranchesOnSource(t *testing.T) {
	// Arrange: уточнённый source доходит до сервиса как есть
	router := setupTestRouter()

	catalog := new(mocks.MockCatalogService)
	brand := &entity.Brand{ID: 5, Name: "BioGrow", Source: entity.BrandSourceManufacturer}
	catalog.On("FindBrand", mock.Anything, 5, entity.BrandSourceManufacturer).
		Return(brand, nil)
	catalog.On("GetProductsByBrand", mock.Anything, *brand, mock.Anything).
		Return([]entity.Product{{ID: 301}}, 1, nil)

	h := NewBrandHandler(catalog)
	router.GET("/api/brands/:id/products", h.GetBrandProducts)

	// Act
	w := performRequest(router, http.MethodGet, "/api/brands/5/products?source=manufacturer")

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	catalog.AssertExpectations(t)
}

func TestGetCODFee_InvalidTotal(t *testing.T) {
	router := setupTestRouter()
	h := NewCheckoutHandler(new(mocks.MockCheckoutService))
	router.GET("/api/checkout/cod-fee", h.GetCODFee)

	w := performRequest(router, http.MethodGet, "/api/checkout/cod-fee?total=abc")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetCODFee_Success(t *testing.T) {
	// Arrange
	router := setupTestRouter()

	checkout := new(mocks.MockCheckoutService)
	checkout.On("CalculateCODFee", 200.0).
		Return(entity.CODFee{Fee: 7.00, Type: "percentage", Percentage: 3.5})

	h := NewCheckoutHandler(checkout)
	router.GET("/api/checkout/cod-fee", h.GetCODFee)

	// Act
	w := performRequest(router, http.MethodGet, "/api/checkout/cod-fee?total=200")

	// Assert
	require.Equal(t, http.StatusOK, w.Code)

	var resp entity.CODFee
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 7.00, resp.Fee)
}
