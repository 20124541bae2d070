package service

import (
	"context"

	"growshop/internal/app/storefront/entity"
	"growshop/internal/app/storefront/upstream"
)

// UpstreamClient - протокол доступа к webservice коммерческой платформы
// Замокан в тестах сервисов
type UpstreamClient interface {
	Get(ctx context.Context, endpoint string, params upstream.Params) (any, error)
	Post(ctx context.Context, endpoint string, body any, params upstream.Params) (any, error)
	Put(ctx context.Context, endpoint string, body any, params upstream.Params) (any, error)
	Delete(ctx context.Context, endpoint string, params upstream.Params) (any, error)
	FetchImage(ctx context.Context, path string) ([]byte, string, error)
}

type CatalogServiceInterface interface {
	GetProducts(ctx context.Context, q entity.ListQuery) ([]entity.Product, int, error)
	GetProductBySlug(ctx context.Context, slug string) (*entity.Product, error)
	GetProductByID(ctx context.Context, id int) (*entity.Product, error)
	GetFeaturedProducts(ctx context.Context, limit int) ([]entity.Product, error)
	GetOnSaleProducts(ctx context.Context, limit int) ([]entity.Product, error)

	GetCategories(ctx context.Context) ([]entity.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*entity.Category, error)
	GetSubcategories(ctx context.Context, parentID int) ([]entity.Category, error)
	GetProductsByCategory(ctx context.Context, categoryID int, q entity.ListQuery) ([]entity.Product, int, error)

	GetBrands(ctx context.Context) ([]entity.Brand, error)
	GetProductsByBrand(ctx context.Context, brand entity.Brand, q entity.ListQuery) ([]entity.Product, int, error)
	FindBrand(ctx context.Context, id int, source entity.BrandSource) (*entity.Brand, error)
}

type SearchServiceInterface interface {
	SearchProducts(ctx context.Context, query string, limit int) ([]entity.Product, error)
	GetSuggestions(ctx context.Context, query string, limit int) (*entity.SuggestionsResponse, error)
}

type CheckoutServiceInterface interface {
	CreateCart(ctx context.Context, payload map[string]any) (any, error)
	GetCart(ctx context.Context, id int) (any, error)
	UpdateCart(ctx context.Context, id int, payload map[string]any) (any, error)
	CreateOrder(ctx context.Context, payload map[string]any) (any, error)
	GetOrders(ctx context.Context) (any, error)
	RegisterCustomer(ctx context.Context, payload map[string]any) (any, error)
	CalculateCODFee(orderTotal float64) entity.CODFee
	GetShopInfo(ctx context.Context) (any, error)
}
