package handler

import (
	"net/http"

	"growshop/internal/app/storefront/cache"
	"growshop/pkg/logger"

	"github.com/gin-gonic/gin"
)

// CacheHandler - административные операции над кешем
type CacheHandler struct {
	cache cache.Cache
}

func NewCacheHandler(c cache.Cache) *CacheHandler {
	return &CacheHandler{cache: c}
}

// Clear обрабатывает POST /api/cache/clear
// Без параметра prefix сбрасывает кеш целиком, с ним - только ключи
// с этим префиксом (например prefix=products после импорта каталога)
func (h *CacheHandler) Clear(c *gin.Context) {
	prefix := c.Query("prefix")

	if prefix == "" {
		h.cache.Clear(c.Request.Context())
		logger.Info().Msg("cache cleared")
	} else {
		h.cache.DeletePrefix(c.Request.Context(), prefix)
		logger.Info().Str("prefix", prefix).Msg("cache prefix cleared")
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"entries": h.cache.Len(c.Request.Context()),
	})
}
