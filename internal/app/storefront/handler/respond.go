package handler

import (
	"errors"
	"net/http"

	"growshop/internal/app/storefront/entity"
	"growshop/internal/app/storefront/upstream"
	"growshop/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// respondServiceError переводит ошибки upstream в HTTP статусы.
// Детали внутренних ошибок уходят в лог, а не клиенту
func respondServiceError(c *gin.Context, err error, message string) {
	logger.Error().Err(err).Str("path", c.FullPath()).Msg(message)

	switch {
	case errors.Is(err, upstream.ErrEdgeBlocked), errors.Is(err, upstream.ErrInvalidAPIKey):
		c.JSON(http.StatusBadGateway, entity.ErrorResponse{Error: "Upstream service is unavailable"})
	case errors.Is(err, upstream.ErrTimeout):
		c.JSON(http.StatusGatewayTimeout, entity.ErrorResponse{Error: "Upstream request timed out"})
	default:
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Error: message})
	}
}

// formatValidationError форматирует ошибки валидации
func formatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fieldError := range validationErrors {
			return fieldError.Field() + " is " + fieldError.Tag()
		}
	}
	return "Validation failed"
}
