package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"growshop/internal/app/storefront/cache"
	"growshop/internal/app/storefront/service/mocks"
	"growshop/internal/app/storefront/upstream"
)

func TestResolveImagePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"товар с шардированием по цифрам", "2/6/3/9/5/26395-large_default.jpg", "img/p/2/6/3/9/5/26395-large_default.jpg"},
		{"категория", "categories/12-category_default.jpg", "img/c/12-category_default.jpg"},
		{"марка", "manufacturers/5.jpg", "img/m/5.jpg"},
		{"общие картинки", "general/logo.png", "img/logo.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, resolveImagePath(tt.path))
		})
	}
}

func TestGetImage_Success(t *testing.T) {
	// Arrange
	router := setupTestRouter()

	client := new(mocks.MockUpstreamClient)
	client.On("FetchImage", mock.Anything, "img/p/2/6/26-large_default.jpg").
		Return([]byte{0xFF, 0xD8}, "image/jpeg", nil)

	h := NewImageHandler(client)
	router.GET("/api/images/*path", h.GetImage)

	// Act
	w := performRequest(router, http.MethodGet, "/api/images/2/6/26-large_default.jpg")

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/jpeg", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Header().Get("Cache-Control"))
}

func TestGetImage_NotFound(t *testing.T) {
	// Arrange
	router := setupTestRouter()

	client := new(mocks.MockUpstreamClient)
	client.On("FetchImage", mock.Anything, mock.Anything).
		Return(nil, "", upstream.ErrNotFound)

	h := NewImageHandler(client)
	router.GET("/api/images/*path", h.GetImage)

	// Act
	w := performRequest(router, http.MethodGet, "/api/images/9/9/99-large_default.jpg")

	// Assert
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCacheClear_All(t *testing.T) {
	// Arrange
	router := setupTestRouter()

	c := cache.NewMemoryCache("handler-test")
	c.Set(context.Background(), "products:page1", "x", time.Minute)
	h := NewCacheHandler(c)
	router.POST("/api/cache/clear", h.Clear)

	// Act
	w := performRequest(router, http.MethodPost, "/api/cache/clear")

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, c.Len(context.Background()))
}

func TestCacheClear_ByPrefix(t *testing.T) {
	// Arrange
	router := setupTestRouter()

	c := cache.NewMemoryCache("handler-test")
	c.Set(context.Background(), "products:page1", "x", time.Minute)
	c.Set(context.Background(), "categories:", "y", time.Minute)
	h := NewCacheHandler(c)
	router.POST("/api/cache/clear", h.Clear)

	// Act
	w := performRequest(router, http.MethodPost, "/api/cache/clear?prefix=products")

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, c.Len(context.Background()))
}
