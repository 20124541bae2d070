package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"growshop/internal/app/storefront/cache"
	"growshop/internal/app/storefront/config"
	"growshop/internal/app/storefront/entity"
	"growshop/internal/app/storefront/upstream"
)

// Наценка за наложенный платёж: фиксированная сумма на мелких заказах,
// процент на крупных
const (
	codFixedFee       = 3.50
	codPercentage     = 3.5
	codFixedThreshold = 100.0
)

// TTL для shop info: конфигурация магазина практически статична
const shopInfoTTL = 12 * time.Hour

// CheckoutService проксирует операции корзины и заказов в upstream
// без нормализации: фронтенд оформления заказа работает с нативным
// форматом платформы. Кешируются только чтения корзины, и очень коротко -
// корзина близка к реальному времени
type CheckoutService struct {
	client UpstreamClient
	cache  cache.Cache
	ttl    config.TTLConfig
}

func NewCheckoutService(client UpstreamClient, c cache.Cache, ttl config.TTLConfig) *CheckoutService {
	return &CheckoutService{
		client: client,
		cache:  c,
		ttl:    ttl,
	}
}

func (s *CheckoutService) CreateCart(ctx context.Context, payload map[string]any) (any, error) {
	result, err := s.client.Post(ctx, "/carts", payload, upstream.Params{})
	if err != nil {
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}
	return result, nil
}

func (s *CheckoutService) GetCart(ctx context.Context, id int) (any, error) {
	key := cache.GenerateKey("cart", map[string]any{"id": id})

	var cached any
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	result, err := s.client.Get(ctx, "/carts/"+strconv.Itoa(id), upstream.Params{
		Display: upstream.DisplayFull,
	})
	if err != nil {
		if errors.Is(err, upstream.ErrNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to fetch cart %d: %w", id, err)
	}

	s.cache.Set(ctx, key, result, s.ttl.Cart)
	return result, nil
}

// UpdateCart обновляет корзину и инвалидирует её кеш
func (s *CheckoutService) UpdateCart(ctx context.Context, id int, payload map[string]any) (any, error) {
	result, err := s.client.Put(ctx, "/carts/"+strconv.Itoa(id), payload, upstream.Params{})
	if err != nil {
		if errors.Is(err, upstream.ErrNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to update cart %d: %w", id, err)
	}

	s.cache.Delete(ctx, cache.GenerateKey("cart", map[string]any{"id": id}))
	return result, nil
}

func (s *CheckoutService) CreateOrder(ctx context.Context, payload map[string]any) (any, error) {
	result, err := s.client.Post(ctx, "/orders", payload, upstream.Params{})
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return result, nil
}

func (s *CheckoutService) GetOrders(ctx context.Context) (any, error) {
	result, err := s.client.Get(ctx, "/orders", upstream.Params{
		Display: upstream.DisplayFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	return result, nil
}

func (s *CheckoutService) RegisterCustomer(ctx context.Context, payload map[string]any) (any, error) {
	result, err := s.client.Post(ctx, "/customers", payload, upstream.Params{})
	if err != nil {
		return nil, fmt.Errorf("failed to register customer: %w", err)
	}
	return result, nil
}

// CalculateCODFee считает наценку за наложенный платёж:
// до 100 включительно - фиксированные 3.50, выше - 3.5% от суммы,
// округлённые до цента
func (s *CheckoutService) CalculateCODFee(orderTotal float64) entity.CODFee {
	if orderTotal <= codFixedThreshold {
		return entity.CODFee{
			Fee:  codFixedFee,
			Type: "fixed",
		}
	}

	fee := math.Round(orderTotal*codPercentage) / 100
	return entity.CODFee{
		Fee:        fee,
		Type:       "percentage",
		Percentage: codPercentage,
	}
}

// GetShopInfo возвращает базовую информацию о магазине с длинным TTL
func (s *CheckoutService) GetShopInfo(ctx context.Context) (any, error) {
	key := "shop_info:"

	var cached any
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	result, err := s.client.Get(ctx, "/shops", upstream.Params{
		Display: upstream.DisplayFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shop info: %w", err)
	}

	s.cache.Set(ctx, key, result, shopInfoTTL)
	return result, nil
}
