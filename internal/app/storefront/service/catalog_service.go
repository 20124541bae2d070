package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"growshop/internal/app/storefront/cache"
	"growshop/internal/app/storefront/config"
	"growshop/internal/app/storefront/entity"
	"growshop/internal/app/storefront/transform"
	"growshop/internal/app/storefront/upstream"
	"growshop/pkg/logger"
)

// CatalogService обрабатывает бизнес-логику каталога товаров
// Координирует upstream клиент, TTL кеш и нормализатор.
//
// Стратегия ошибок двухуровневая: точечные запросы (товар по id,
// категория по slug) пробрасывают ошибку вызывающему, а fallback-пути
// (скан окна товаров, ручной подбор) глотают ошибки и возвращают
// пустой результат - деградация каталога лучше 500 на витрине
type CatalogService struct {
	client UpstreamClient
	cache  cache.Cache
	ttl    config.TTLConfig
	policy config.CatalogConfig

	// Коалесцирование конкурентных промахов кеша: дорогие общие выборки
	// (окно товаров, список категорий) при наплыве запросов уходят
	// к upstream один раз
	group singleflight.Group
}

// NewCatalogService создает новый сервис каталога с внедрением зависимостей
func NewCatalogService(client UpstreamClient, c cache.Cache, ttl config.TTLConfig, policy config.CatalogConfig) *CatalogService {
	return &CatalogService{
		client: client,
		cache:  c,
		ttl:    ttl,
		policy: policy,
	}
}

// === PRODUCTS ===

// GetProducts возвращает страницу каталога
func (s *CatalogService) GetProducts(ctx context.Context, q entity.ListQuery) ([]entity.Product, int, error) {
	key := cache.GenerateKey("products", map[string]any{
		"limit":  q.Limit,
		"offset": q.Offset,
		"sort":   q.Sort,
	})

	var cached []entity.Product
	if s.cache.Get(ctx, key, &cached) {
		return cached, len(cached), nil
	}

	raw, err := s.client.Get(ctx, "/products", upstream.Params{
		Display: upstream.DisplayFull,
		Filter:  map[string]string{"active": "1"},
		Sort:    q.Sort,
		Limit:   q.Limit,
		Offset:  q.Offset,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	products := transform.Products(raw)
	s.cache.Set(ctx, key, products, s.ttl.Products)

	return products, len(products), nil
}

// GetProductByID получает один товар. Детали кешируются отдельно от
// списков, чтобы батчевые выборки по id переиспользовали их
func (s *CatalogService) GetProductByID(ctx context.Context, id int) (*entity.Product, error) {
	key := cache.GenerateKey("product_detail", map[string]any{"id": id})

	var cached entity.Product
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	raw, err := s.client.Get(ctx, "/products/"+strconv.Itoa(id), upstream.Params{
		Display: upstream.DisplayFull,
	})
	if err != nil {
		if errors.Is(err, upstream.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to fetch product %d: %w", id, err)
	}

	product := transform.Product(unwrapSingle(raw, "product"))
	if product.ID == 0 {
		return nil, ErrProductNotFound
	}

	s.cache.Set(ctx, key, product, s.ttl.ProductDetail)
	return &product, nil
}

// GetProductBySlug восстанавливает id из префикса слага "{id}-{slug}"
// и загружает товар. Поход к upstream ради резолва слага не нужен
func (s *CatalogService) GetProductBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	id := transform.ProductIDFromSlug(slug)
	if id == 0 {
		return nil, ErrInvalidSlug
	}
	return s.GetProductByID(ctx, id)
}

// GetFeaturedProducts возвращает первые N активных товаров каталога
func (s *CatalogService) GetFeaturedProducts(ctx context.Context, limit int) ([]entity.Product, error) {
	window, err := s.productWindow(ctx)
	if err != nil {
		return nil, err
	}

	featured := make([]entity.Product, 0, limit)
	for _, p := range window {
		if !p.Active {
			continue
		}
		featured = append(featured, p)
		if len(featured) >= limit {
			break
		}
	}
	return featured, nil
}

// GetOnSaleProducts возвращает товары со скидкой. Скидка вычисляется
// нормализатором из пары цен, поэтому фильтруем после нормализации,
// а не на стороне upstream
func (s *CatalogService) GetOnSaleProducts(ctx context.Context, limit int) ([]entity.Product, error) {
	window, err := s.productWindow(ctx)
	if err != nil {
		return nil, err
	}

	onSale := make([]entity.Product, 0, limit)
	for _, p := range window {
		if !p.IsSaleEnable || !p.Active {
			continue
		}
		onSale = append(onSale, p)
		if len(onSale) >= limit {
			break
		}
	}
	return onSale, nil
}

// productWindow загружает первые ScanWindow товаров каталога - общую
// выборку для fallback-поиска по категории, featured и on-sale списков.
// Выборка дорогая, поэтому кешируется и коалесцируется через singleflight
func (s *CatalogService) productWindow(ctx context.Context) ([]entity.Product, error) {
	key := "products:window"

	var cached []entity.Product
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	result, err, _ := s.group.Do(key, func() (any, error) {
		raw, err := s.client.Get(ctx, "/products", upstream.Params{
			Display: upstream.DisplayFull,
			Limit:   s.policy.ScanWindow,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch product window: %w", err)
		}

		products := transform.Products(raw)
		s.cache.Set(ctx, key, products, s.ttl.Products)
		return products, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]entity.Product), nil
}

// getProductsByIDs загружает товары батчами ограниченной ширины.
// Упавшие единичные загрузки пропускаются: частичная страница каталога
// полезнее пустой
func (s *CatalogService) getProductsByIDs(ctx context.Context, ids []int) []entity.Product {
	results := make([]*entity.Product, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.policy.BatchWidth)

	for i, id := range ids {
		g.Go(func() error {
			product, err := s.GetProductByID(gctx, id)
			if err != nil {
				logger.Warn().Err(err).Int("product_id", id).Msg("skipping product in batch fetch")
				return nil
			}
			results[i] = product
			return nil
		})
	}
	_ = g.Wait()

	products := make([]entity.Product, 0, len(ids))
	for _, p := range results {
		if p != nil {
			products = append(products, *p)
		}
	}
	return products
}

// === CATEGORIES ===

// GetCategories возвращает полный список категорий с кешированием.
// Лимит выборки ограничен: на очень больших display=full выборках
// upstream отваливается по таймауту
func (s *CatalogService) GetCategories(ctx context.Context) ([]entity.Category, error) {
	key := "categories:"

	var cached []entity.Category
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	result, err, _ := s.group.Do(key, func() (any, error) {
		raw, err := s.client.Get(ctx, "/categories", upstream.Params{
			Display: upstream.DisplayFull,
			Filter:  map[string]string{"active": "1"},
			Limit:   s.policy.CategoriesLimit,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch categories: %w", err)
		}

		categories := transform.Categories(raw)
		s.cache.Set(ctx, key, categories, s.ttl.Categories)
		return categories, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]entity.Category), nil
}

// GetCategoryBySlug ищет категорию сначала точным фильтром upstream
// по link_rewrite, затем сканом кешированного списка: фильтр по
// локализованному полю работает не на всех версиях платформы
func (s *CatalogService) GetCategoryBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	raw, err := s.client.Get(ctx, "/categories", upstream.Params{
		Display: upstream.DisplayFull,
		Filter:  map[string]string{"link_rewrite": slug},
		Limit:   1,
	})
	if err == nil {
		if categories := transform.Categories(raw); len(categories) > 0 {
			return &categories[0], nil
		}
	} else {
		logger.Warn().Err(err).Str("slug", slug).Msg("slug filter failed, falling back to category list scan")
	}

	categories, err := s.GetCategories(ctx)
	if err != nil {
		return nil, err
	}
	for i := range categories {
		if categories[i].Slug == slug {
			return &categories[i], nil
		}
	}

	return nil, ErrCategoryNotFound
}

// getCategoryByID получает одну категорию, сначала из кешированного
// списка, затем точечным запросом
func (s *CatalogService) getCategoryByID(ctx context.Context, id int) (*entity.Category, error) {
	if categories, err := s.GetCategories(ctx); err == nil {
		for i := range categories {
			if categories[i].ID == id {
				return &categories[i], nil
			}
		}
	}

	raw, err := s.client.Get(ctx, "/categories/"+strconv.Itoa(id), upstream.Params{
		Display: upstream.DisplayFull,
	})
	if err != nil {
		if errors.Is(err, upstream.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to fetch category %d: %w", id, err)
	}

	category := transform.Category(unwrapSingle(raw, "category"))
	if category.ID == 0 {
		return nil, ErrCategoryNotFound
	}
	return &category, nil
}

// GetSubcategories возвращает прямых детей категории.
// Дерево upstream бывает повреждено: ребёнок может ссылаться на родителя,
// находясь на неправильной глубине. Такие аномалии отфильтровываются
// проверкой level_depth == глубина родителя + 1
func (s *CatalogService) GetSubcategories(ctx context.Context, parentID int) ([]entity.Category, error) {
	parent, err := s.getCategoryByID(ctx, parentID)
	if err != nil {
		return nil, err
	}

	categories, err := s.GetCategories(ctx)
	if err != nil {
		return nil, err
	}

	var children []entity.Category
	for _, c := range categories {
		if c.ParentID == nil || *c.ParentID != parentID {
			continue
		}
		if c.LevelDepth != parent.LevelDepth+1 {
			continue
		}
		if !c.Active {
			continue
		}
		children = append(children, c)
	}

	return children, nil
}

// GetProductsByCategory возвращает страницу товаров категории.
// Список id и раскрытые товары кешируются раздельно: повторные страницы
// переиспользуют список id, а товары - кеш деталей
func (s *CatalogService) GetProductsByCategory(ctx context.Context, categoryID int, q entity.ListQuery) ([]entity.Product, int, error) {
	ids, err := s.categoryProductIDs(ctx, categoryID)
	if err != nil {
		return nil, 0, err
	}

	page := paginateIDs(ids, q.Offset, q.Limit)
	if len(page) == 0 {
		return []entity.Product{}, len(ids), nil
	}

	return s.getProductsByIDs(ctx, page), len(ids), nil
}

// categoryProductIDs собирает id товаров категории: сначала из
// ассоциаций самой категории, при пустом результате - fallback-сканом
// окна товаров по id_category_default и ассоциациям категорий.
// Ошибки обоих путей глотаются до пустого списка
func (s *CatalogService) categoryProductIDs(ctx context.Context, categoryID int) ([]int, error) {
	key := cache.GenerateKey("category_products", map[string]any{"category": categoryID})

	var cached []int
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	ids := s.idsFromCategoryAssociations(ctx, categoryID)

	if len(ids) == 0 {
		ids = s.idsFromWindowScan(ctx, categoryID)
	}

	s.cache.Set(ctx, key, ids, s.ttl.Products)
	return ids, nil
}

func (s *CatalogService) idsFromCategoryAssociations(ctx context.Context, categoryID int) []int {
	raw, err := s.client.Get(ctx, "/categories/"+strconv.Itoa(categoryID), upstream.Params{
		Display: upstream.DisplayFull,
	})
	if err != nil {
		logger.Warn().Err(err).Int("category_id", categoryID).Msg("category associations unavailable, will scan product window")
		return nil
	}

	category := unwrapSingle(raw, "category")
	if category == nil {
		return nil
	}

	associations := transform.AsMap(category["associations"])
	if associations == nil {
		return nil
	}

	items := transform.Maps(transform.Collection(associations["products"], "products", "product"))
	ids := make([]int, 0, len(items))
	for _, item := range items {
		if id := transform.Int(item["id"]); id > 0 {
			ids = append(ids, id)
		}
	}
	return ids
}

func (s *CatalogService) idsFromWindowScan(ctx context.Context, categoryID int) []int {
	window, err := s.productWindow(ctx)
	if err != nil {
		logger.Warn().Err(err).Int("category_id", categoryID).Msg("product window scan failed, returning empty category")
		return nil
	}

	var ids []int
	for _, p := range window {
		if productInCategory(p, categoryID) {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

func productInCategory(p entity.Product, categoryID int) bool {
	if p.DefaultCategory == categoryID {
		return true
	}
	for _, ref := range p.Categories {
		if ref.ID == categoryID {
			return true
		}
	}
	return false
}

// === BRANDS ===

// GetBrands возвращает список марок. Upstream моделирует марки двумя
// способами: настоящими manufacturers либо подкатегориями выделенной
// родительской категории. Приоритет у manufacturers, категорийный путь
// включается только при полностью пустом списке
func (s *CatalogService) GetBrands(ctx context.Context) ([]entity.Brand, error) {
	key := "brands:"

	var cached []entity.Brand
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	brands, err := s.manufacturerBrands(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("manufacturers unavailable, trying brand categories")
	}

	if len(brands) == 0 {
		brands, err = s.categoryBrands(ctx)
		if err != nil {
			return nil, err
		}
	}

	s.cache.Set(ctx, key, brands, s.ttl.Brands)
	return brands, nil
}

func (s *CatalogService) manufacturerBrands(ctx context.Context) ([]entity.Brand, error) {
	raw, err := s.client.Get(ctx, "/manufacturers", upstream.Params{
		Display: upstream.DisplayFull,
		Filter:  map[string]string{"active": "1"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch manufacturers: %w", err)
	}

	manufacturers := transform.Manufacturers(raw)
	brands := make([]entity.Brand, 0, len(manufacturers))
	for _, m := range manufacturers {
		brands = append(brands, entity.Brand{
			ID:     m.ID,
			Name:   m.Name,
			Slug:   m.Slug,
			Image:  m.Image,
			Source: entity.BrandSourceManufacturer,
		})
	}
	return brands, nil
}

func (s *CatalogService) categoryBrands(ctx context.Context) ([]entity.Brand, error) {
	children, err := s.GetSubcategories(ctx, s.policy.BrandsParentCategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch brand categories: %w", err)
	}

	brands := make([]entity.Brand, 0, len(children))
	for _, c := range children {
		brands = append(brands, entity.Brand{
			ID:            c.ID,
			Name:          c.Name,
			Slug:          c.Slug,
			Image:         c.Image,
			ProductsCount: c.ProductsCount,
			Source:        entity.BrandSourceCategory,
		})
	}
	return brands, nil
}

// FindBrand ищет марку по id. Пустой source матчит любой источник
func (s *CatalogService) FindBrand(ctx context.Context, id int, source entity.BrandSource) (*entity.Brand, error) {
	brands, err := s.GetBrands(ctx)
	if err != nil {
		return nil, err
	}

	for i := range brands {
		if brands[i].ID != id {
			continue
		}
		if source != "" && brands[i].Source != source {
			continue
		}
		return &brands[i], nil
	}

	return nil, ErrBrandNotFound
}

// GetProductsByBrand возвращает страницу товаров марки.
// Путь зависит от источника марки: manufacturer фильтруется нативно,
// категорийная марка идёт через выборку товаров категории
func (s *CatalogService) GetProductsByBrand(ctx context.Context, brand entity.Brand, q entity.ListQuery) ([]entity.Product, int, error) {
	if brand.Source == entity.BrandSourceCategory {
		return s.GetProductsByCategory(ctx, brand.ID, q)
	}

	ids, err := s.brandProductIDs(ctx, brand.ID)
	if err != nil {
		return nil, 0, err
	}

	page := paginateIDs(ids, q.Offset, q.Limit)
	if len(page) == 0 {
		return []entity.Product{}, len(ids), nil
	}

	return s.getProductsByIDs(ctx, page), len(ids), nil
}

func (s *CatalogService) brandProductIDs(ctx context.Context, manufacturerID int) ([]int, error) {
	key := cache.GenerateKey("brand_products", map[string]any{"brand": manufacturerID})

	var cached []int
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	raw, err := s.client.Get(ctx, "/products", upstream.Params{
		Display: "id",
		Filter: map[string]string{
			"id_manufacturer": strconv.Itoa(manufacturerID),
			"active":          "1",
		},
		Limit: s.policy.ScanWindow,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch brand products: %w", err)
	}

	items := transform.Maps(transform.Collection(raw, "products", "product"))
	ids := make([]int, 0, len(items))
	for _, item := range items {
		if id := transform.Int(item["id"]); id > 0 {
			ids = append(ids, id)
		}
	}

	s.cache.Set(ctx, key, ids, s.ttl.Products)
	return ids, nil
}

// === HELPERS ===

// unwrapSingle снимает обёртку одиночного ресурса {"product": {...}}
// Некоторые версии платформы отдают объект без обёртки
func unwrapSingle(raw any, key string) map[string]any {
	m := transform.AsMap(raw)
	if m == nil {
		return nil
	}
	if inner := transform.AsMap(m[key]); inner != nil {
		return inner
	}
	return m
}

func paginateIDs(ids []int, offset, limit int) []int {
	if offset >= len(ids) {
		return nil
	}
	end := offset + limit
	if end > len(ids) {
		end = len(ids)
	}
	return ids[offset:end]
}
