package handler

import (
	"errors"
	"net/http"
	"strconv"

	"growshop/internal/app/storefront/entity"
	"growshop/internal/app/storefront/service"

	"github.com/gin-gonic/gin"
)

// CheckoutHandler обрабатывает HTTP запросы корзины и заказов.
// Тела запросов уходят в upstream как есть, без нормализации
type CheckoutHandler struct {
	checkoutService service.CheckoutServiceInterface
}

func NewCheckoutHandler(checkoutService service.CheckoutServiceInterface) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// CreateCart обрабатывает POST /api/cart
func (h *CheckoutHandler) CreateCart(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid request body"})
		return
	}

	result, err := h.checkoutService.CreateCart(c.Request.Context(), payload)
	if err != nil {
		respondServiceError(c, err, "Failed to create cart")
		return
	}

	c.JSON(http.StatusCreated, result)
}

// GetCart обрабатывает GET /api/cart/:id
func (h *CheckoutHandler) GetCart(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid cart ID"})
		return
	}

	result, err := h.checkoutService.GetCart(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCartNotFound) {
			c.JSON(http.StatusNotFound, entity.ErrorResponse{Error: "Cart not found"})
			return
		}
		respondServiceError(c, err, "Failed to get cart")
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpdateCart обрабатывает PUT /api/cart/:id
func (h *CheckoutHandler) UpdateCart(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid cart ID"})
		return
	}

	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid request body"})
		return
	}

	result, err := h.checkoutService.UpdateCart(c.Request.Context(), id, payload)
	if err != nil {
		if errors.Is(err, service.ErrCartNotFound) {
			c.JSON(http.StatusNotFound, entity.ErrorResponse{Error: "Cart not found"})
			return
		}
		respondServiceError(c, err, "Failed to update cart")
		return
	}

	c.JSON(http.StatusOK, result)
}

// CreateOrder обрабатывает POST /api/orders
func (h *CheckoutHandler) CreateOrder(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid request body"})
		return
	}

	result, err := h.checkoutService.CreateOrder(c.Request.Context(), payload)
	if err != nil {
		respondServiceError(c, err, "Failed to create order")
		return
	}

	c.JSON(http.StatusCreated, result)
}

// GetOrders обрабатывает GET /api/orders
func (h *CheckoutHandler) GetOrders(c *gin.Context) {
	result, err := h.checkoutService.GetOrders(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to get orders")
		return
	}

	c.JSON(http.StatusOK, result)
}

// RegisterCustomer обрабатывает POST /api/customers
func (h *CheckoutHandler) RegisterCustomer(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid request body"})
		return
	}

	result, err := h.checkoutService.RegisterCustomer(c.Request.Context(), payload)
	if err != nil {
		respondServiceError(c, err, "Failed to register customer")
		return
	}

	c.JSON(http.StatusCreated, result)
}

// GetCODFee обрабатывает GET /api/checkout/cod-fee
func (h *CheckoutHandler) GetCODFee(c *gin.Context) {
	total, err := strconv.ParseFloat(c.Query("total"), 64)
	if err != nil || total < 0 {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid order total"})
		return
	}

	c.JSON(http.StatusOK, h.checkoutService.CalculateCODFee(total))
}

// GetShopInfo обрабатывает GET /api/shop/info
func (h *CheckoutHandler) GetShopInfo(c *gin.Context) {
	result, err := h.checkoutService.GetShopInfo(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to get shop info")
		return
	}

	c.JSON(http.StatusOK, result)
}
