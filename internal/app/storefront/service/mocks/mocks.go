package mocks

import (
	"context"

	"growshop/internal/app/storefront/entity"
	"growshop/internal/app/storefront/upstream"

	"github.com/stretchr/testify/mock"
)

// MockUpstreamClient мок для UpstreamClient
type MockUpstreamClient struct {
	mock.Mock
}

func (m *MockUpstreamClient) Get(ctx context.Context, endpoint string, params upstream.Params) (any, error) {
	args := m.Called(ctx, endpoint, params)
	return args.Get(0), args.Error(1)
}

func (m *MockUpstreamClient) Post(ctx context.Context, endpoint string, body any, params upstream.Params) (any, error) {
	args := m.Called(ctx, endpoint, body, params)
	return args.Get(0), args.Error(1)
}

func (m *MockUpstreamClient) Put(ctx context.Context, endpoint string, body any, params upstream.Params) (any, error) {
	args := m.Called(ctx, endpoint, body, params)
	return args.Get(0), args.Error(1)
}

func (m *MockUpstreamClient) Delete(ctx context.Context, endpoint string, params upstream.Params) (any, error) {
	args := m.Called(ctx, endpoint, params)
	return args.Get(0), args.Error(1)
}

func (m *MockUpstreamClient) FetchImage(ctx context.Context, path string) ([]byte, string, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

// MockCatalogService мок для CatalogServiceInterface
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) GetProducts(ctx context.Context, q entity.ListQuery) ([]entity.Product, int, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]entity.Product), args.Int(1), args.Error(2)
}

func (m *MockCatalogService) GetProductBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockCatalogService) GetProductByID(ctx context.Context, id int) (*entity.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockCatalogService) GetFeaturedProducts(ctx context.Context, limit int) ([]entity.Product, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Product), args.Error(1)
}

func (m *MockCatalogService) GetOnSaleProducts(ctx context.Context, limit int) ([]entity.Product, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Product), args.Error(1)
}

func (m *MockCatalogService) GetCategories(ctx context.Context) ([]entity.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Category), args.Error(1)
}

func (m *MockCatalogService) GetCategoryBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

func (m *MockCatalogService) GetSubcategories(ctx context.Context, parentID int) ([]entity.Category, error) {
	args := m.Called(ctx, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Category), args.Error(1)
}

func (m *MockCatalogService) GetProductsByCategory(ctx context.Context, categoryID int, q entity.ListQuery) ([]entity.Product, int, error) {
	args := m.Called(ctx, categoryID, q)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]entity.Product), args.Int(1), args.Error(2)
}

func (m *MockCatalogService) GetBrands(ctx context.Context) ([]entity.Brand, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Brand), args.Error(1)
}

func (m *MockCatalogService) GetProductsByBrand(ctx context.Context, brand entity.Brand, q entity.ListQuery) ([]entity.Product, int, error) {
	args := m.Called(ctx, brand, q)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]entity.Product), args.Int(1), args.Error(2)
}

func (m *MockCatalogService) FindBrand(ctx context.Context, id int, source entity.BrandSource) (*entity.Brand, error) {
	args := m.Called(ctx, id, source)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Brand), args.Error(1)
}

// MockSearchService мок для SearchServiceInterface
type MockSearchService struct {
	mock.Mock
}

func (m *MockSearchService) SearchProducts(ctx context.Context, query string, limit int) ([]entity.Product, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Product), args.Error(1)
}

func (m *MockSearchService) GetSuggestions(ctx context.Context, query string, limit int) (*entity.SuggestionsResponse, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.SuggestionsResponse), args.Error(1)
}

// MockCheckoutService мок для CheckoutServiceInterface
type MockCheckoutService struct {
	mock.Mock
}

func (m *MockCheckoutService) CreateCart(ctx context.Context, payload map[string]any) (any, error) {
	args := m.Called(ctx, payload)
	return args.Get(0), args.Error(1)
}

func (m *MockCheckoutService) GetCart(ctx context.Context, id int) (any, error) {
	args := m.Called(ctx, id)
	return args.Get(0), args.Error(1)
}

func (m *MockCheckoutService) UpdateCart(ctx context.Context, id int, payload map[string]any) (any, error) {
	args := m.Called(ctx, id, payload)
	return args.Get(0), args.Error(1)
}

func (m *MockCheckoutService) CreateOrder(ctx context.Context, payload map[string]any) (any, error) {
	args := m.Called(ctx, payload)
	return args.Get(0), args.Error(1)
}

func (m *MockCheckoutService) GetOrders(ctx context.Context) (any, error) {
	args := m.Called(ctx)
	return args.Get(0), args.Error(1)
}

func (m *MockCheckoutService) RegisterCustomer(ctx context.Context, payload map[string]any) (any, error) {
	args := m.Called(ctx, payload)
	return args.Get(0), args.Error(1)
}

func (m *MockCheckoutService) CalculateCODFee(orderTotal float64) entity.CODFee {
	args := m.Called(orderTotal)
	return args.Get(0).(entity.CODFee)
}

func (m *MockCheckoutService) GetShopInfo(ctx context.Context) (any, error) {
	args := m.Called(ctx)
	return args.Get(0), args.Error(1)
}
