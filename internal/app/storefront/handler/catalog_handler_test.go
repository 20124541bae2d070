package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"growshop/internal/app/storefront/entity"
	"growshop/internal/app/storefront/service"
	"growshop/internal/app/storefront/service/mocks"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func performRequest(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetProducts_Success(t *testing.T) {
	// Arrange
	router := setupTestRouter()

	catalog := new(mocks.MockCatalogService)
	catalog.On("GetProducts", mock.Anything, mock.Anything).
		Return([]entity.Product{{ID: 1, Name: "Fertilizante", Slug: "1-fertilizante"}}, 1, nil)

	h := NewCatalogHandler(catalog)
	router.GET("/api/products", h.GetProducts)

	// Act
	w := performRequest(router, http.MethodGet, "/api/products?limit=24")

	// Assert: список в конверте {data, total}
	require.Equal(t, http.StatusOK, w.Code)

	var resp entity.ProductListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "1-fertilizante", resp.Data[0].Slug)
}

func TestGetProducts_InvalidLimit(t *testing.T) {
	// Arrange
	router := setupTestRouter()
	h := NewCatalogHandler(new(mocks.MockCatalogService))
	router.GET("/api/products", h.GetProducts)

	// Act: limit за пределами валидации
	w := performRequest(router, http.MethodGet, "/api/products?limit=100000")

	// Assert
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp entity.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Error)
}

func TestGetProducts_ServiceErrorSingleChannel(t *testing.T) {
	// Ошибка всегда идёт не-200 кодом с телом {error},
	// канала "200 с ошибкой внутри" нет
	router := setupTestRouter()

	catalog := new(mocks.MockCatalogService)
	catalog.On("GetProducts", mock.Anything, mock.Anything).
		Return(nil, 0, errors.New("upstream exploded"))

	h := NewCatalogHandler(catalog)
	router.GET("/api/products", h.GetProducts)

	w := performRequest(router, http.MethodGet, "/api/products")

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp entity.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Error)
}

func TestGetProduct_NotFound(t *testing.T) {
	// Arrange
	router := setupTestRouter()

	catalog := new(mocks.MockCatalogService)
	catalog.On("GetProductBySlug", mock.Anything, "999-inexistente").
		Return(nil, service.ErrProductNotFound)

	h := NewCatalogHandler(catalog)
	router.GET("/api/product/:slug", h.GetProduct)

	// Act
	w := performRequest(router, http.MethodGet, "/api/product/999-inexistente")

	// Assert
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetProduct_InvalidSlug(t *testing.T) {
	// Arrange
	router := setupTestRouter()

	catalog := new(mocks.MockCatalogService)
	catalog.On("GetProductBySlug", mock.Anything, "sin-prefijo").
		Return(nil, service.ErrInvalidSlug)

	h := NewCatalogHandler(catalog)
	router.GET("/api/product/:slug", h.GetProduct)

	// Act
	w := performRequest(router, http.MethodGet, "/api/product/sin-prefijo")

	// Assert
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetCategoryProducts_InvalidID(t *testing.T) {
	// Arrange
	router := setupTestRouter()
	h := NewCatalogHandler(new(mocks.MockCatalogService))
	router.GET("/api/categories/:id/products", h.GetCategoryProducts)

	// Act
	w := performRequest(router, http.MethodGet, "/api/categories/abc/products")

	// Assert
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetSubcategories_Success(t *testing.T) {
	// Arrange
	router := setupTestRouter()

	catalog := new(mocks.MockCatalogService)
	catalog.On("GetSubcategories", mock.Anything, 2).
		Return([]entity.Category{{ID: 3, Name: "Hijo"}}, nil)

	h := NewCatalogHandler(catalog)
	router.GET("/api/categories/:id/subcategories", h.GetSubcategories)

	// Act
	w := performRequest(router, http.MethodGet, "/api/categories/2/subcategories")

	// Assert
	require.Equal(t, http.StatusOK, w.Code)

	var resp entity.CategoryListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)
}
