package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"growshop/internal/app/storefront/cache"
	"growshop/internal/app/storefront/service/mocks"
	"growshop/internal/app/storefront/upstream"
)

func newTestCheckoutService(client UpstreamClient) *CheckoutService {
	return NewCheckoutService(client, cache.NewMemoryCache("checkout-test"), testTTL())
}

func TestCheckoutService_CalculateCODFee_FixedTier(t *testing.T) {
	svc := newTestCheckoutService(new(mocks.MockUpstreamClient))

	// До порога включительно - фиксированная наценка
	fee := svc.CalculateCODFee(50)
	assert.Equal(t, 3.50, fee.Fee)
	assert.Equal(t, "fixed", fee.Type)

	fee = svc.CalculateCODFee(100)
	assert.Equal(t, 3.50, fee.Fee)
	assert.Equal(t, "fixed", fee.Type)
}

func TestCheckoutService_CalculateCODFee_PercentageTier(t *testing.T) {
	svc := newTestCheckoutService(new(mocks.MockUpstreamClient))

	// Выше порога - процент, округлённый до цента
	fee := svc.CalculateCODFee(200)
	assert.Equal(t, 7.00, fee.Fee)
	assert.Equal(t, "percentage", fee.Type)
	assert.Equal(t, 3.5, fee.Percentage)

	fee = svc.CalculateCODFee(123.45)
	assert.Equal(t, 4.32, fee.Fee)
}

func TestCheckoutService_GetCart_CachedShortly(t *testing.T) {
	// Arrange
	ctx := context.Background()
	client := new(mocks.MockUpstreamClient)
	client.On("Get", mock.Anything, "/carts/7", mock.Anything).
		Return(map[string]any{"cart": map[string]any{"id": 7.0}}, nil).Once()

	svc := newTestCheckoutService(client)

	// Act: второй вызов приходит из кеша
	_, err1 := svc.GetCart(ctx, 7)
	_, err2 := svc.GetCart(ctx, 7)

	// Assert
	require.NoError(t, err1)
	require.NoError(t, err2)
	client.AssertNumberOfCalls(t, "Get", 1)
}

func TestCheckoutService_GetCart_NotFound(t *testing.T) {
	// Arrange
	ctx := context.Background()
	client := new(mocks.MockUpstreamClient)
	client.On("Get", mock.Anything, "/carts/999", mock.Anything).
		Return(nil, upstream.ErrNotFound)

	svc := newTestCheckoutService(client)

	// Act
	_, err := svc.GetCart(ctx, 999)

	// Assert
	assert.ErrorIs(t, err, ErrCartNotFound)
}

func TestCheckoutService_UpdateCart_InvalidatesCache(t *testing.T) {
	// Arrange: после записи чтение обязано уйти в upstream заново
	ctx := context.Background()
	client := new(mocks.MockUpstreamClient)
	client.On("Get", mock.Anything, "/carts/7", mock.Anything).
		Return(map[string]any{"cart": map[string]any{"id": 7.0}}, nil).Twice()
	client.On("Put", mock.Anything, "/carts/7", mock.Anything, mock.Anything).
		Return(map[string]any{"cart": map[string]any{"id": 7.0}}, nil).Once()

	svc := newTestCheckoutService(client)

	// Act
	_, err1 := svc.GetCart(ctx, 7)
	_, err2 := svc.UpdateCart(ctx, 7, map[string]any{"id_currency": 1})
	_, err3 := svc.GetCart(ctx, 7)

	// Assert
	require.NoError(t, err1)
	require.NoError(t, err2)
	require.NoError(t, err3)
	client.AssertExpectations(t)
}

func TestCheckoutService_CreateOrder_Passthrough(t *testing.T) {
	// Arrange: тело уходит в upstream как есть, без нормализации
	ctx := context.Background()
	payload := map[string]any{"id_cart": 7, "payment": "cod"}

	client := new(mocks.MockUpstreamClient)
	client.On("Post", mock.Anything, "/orders", payload, mock.Anything).
		Return(map[string]any{"order": map[string]any{"id": 1.0}}, nil).Once()

	svc := newTestCheckoutService(client)

	// Act
	result, err := svc.CreateOrder(ctx, payload)

	// Assert
	require.NoError(t, err)
	assert.NotNil(t, result)
	client.AssertExpectations(t)
}
