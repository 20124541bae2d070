package handler

import (
	"errors"
	"net/http"
	"strings"

	"growshop/internal/app/storefront/entity"
	"growshop/internal/app/storefront/service"
	"growshop/internal/app/storefront/upstream"

	"github.com/gin-gonic/gin"
)

// ImageHandler проксирует картинки со стороны upstream.
// Прямые ссылки на магазин не отдаются фронтенду: проксирование
// прячет учётные данные webservice и снимает CORS ограничения браузера
type ImageHandler struct {
	client service.UpstreamClient
}

func NewImageHandler(client service.UpstreamClient) *ImageHandler {
	return &ImageHandler{client: client}
}

// GetImage обрабатывает GET /api/images/*path
func (h *ImageHandler) GetImage(c *gin.Context) {
	path := strings.TrimPrefix(c.Param("path"), "/")
	if path == "" {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Image path required"})
		return
	}

	data, contentType, err := h.client.FetchImage(c.Request.Context(), resolveImagePath(path))
	if err != nil {
		if errors.Is(err, upstream.ErrNotFound) {
			c.JSON(http.StatusNotFound, entity.ErrorResponse{Error: "Image not found"})
			return
		}
		respondServiceError(c, err, "Failed to fetch image")
		return
	}

	// Картинки статичны, браузер может кешировать их надолго
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, contentType, data)
}

// resolveImagePath переводит публичный путь картинки в путь хранилища
// upstream. Тип определяется по первому сегменту:
//
//	categories/12-category_default.jpg -> img/c/12-category_default.jpg
//	manufacturers/5.jpg                -> img/m/5.jpg
//	general/logo.png                   -> img/logo.png
//	2/6/3/9/5/26395-large_default.jpg  -> img/p/2/6/3/9/5/...  (товары)
func resolveImagePath(path string) string {
	switch {
	case strings.HasPrefix(path, "categories/"):
		return "img/c/" + strings.TrimPrefix(path, "categories/")
	case strings.HasPrefix(path, "manufacturers/"):
		return "img/m/" + strings.TrimPrefix(path, "manufacturers/")
	case strings.HasPrefix(path, "general/"):
		return "img/" + strings.TrimPrefix(path, "general/")
	default:
		return "img/p/" + path
	}
}
