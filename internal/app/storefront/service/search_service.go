package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"growshop/internal/app/storefront/cache"
	"growshop/internal/app/storefront/config"
	"growshop/internal/app/storefront/entity"
	"growshop/internal/app/storefront/search"
	"growshop/internal/app/storefront/transform"
	"growshop/internal/app/storefront/upstream"
	"growshop/pkg/logger"
)

// Количество вариантов запроса (оригинал + синонимы), по которым
// подсказки ходят к upstream параллельно
const suggestionTerms = 3

// SearchService обрабатывает поиск товаров и подсказки.
// Нативный поиск upstream капризен: на части версий платформы он
// отдаёт пустоту или ошибку на валидных запросах, поэтому за ним
// стоит ручной fallback с подстрочным совпадением
type SearchService struct {
	client  UpstreamClient
	cache   cache.Cache
	catalog CatalogServiceInterface
	ttl     config.TTLConfig
	policy  config.CatalogConfig
}

func NewSearchService(client UpstreamClient, c cache.Cache, catalog CatalogServiceInterface, ttl config.TTLConfig, policy config.CatalogConfig) *SearchService {
	return &SearchService{
		client:  client,
		cache:   c,
		catalog: catalog,
		ttl:     ttl,
		policy:  policy,
	}
}

// SearchProducts ищет товары: сначала нативным поиском upstream,
// при пустом ответе или ошибке - ручным сканом с подстрочным
// совпадением. Ошибки fallback-пути глотаются до пустого результата
func (s *SearchService) SearchProducts(ctx context.Context, query string, limit int) ([]entity.Product, error) {
	query = strings.TrimSpace(query)
	key := cache.GenerateKey("search", map[string]any{"q": strings.ToLower(query), "limit": limit})

	var cached []entity.Product
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	products, err := s.nativeSearch(ctx, query, limit)
	if err != nil {
		logger.Warn().Err(err).Str("query", query).Msg("native search failed, falling back to manual scan")
	}

	if len(products) == 0 {
		products = s.manualSearch(ctx, query, limit)
	}

	s.cache.Set(ctx, key, products, s.ttl.Search)
	return products, nil
}

// nativeSearch - поисковый endpoint upstream. Отвечает голым массивом,
// а не обычной обёрткой коллекции
func (s *SearchService) nativeSearch(ctx context.Context, query string, limit int) ([]entity.Product, error) {
	raw, err := s.client.Get(ctx, "/search/products", upstream.Params{
		Display: upstream.DisplayFull,
		Query:   query,
		Limit:   limit,
	})
	if err != nil {
		return nil, fmt.Errorf("native search: %w", err)
	}

	return transform.Products(raw), nil
}

// manualSearch сканирует каталог батчами ограниченного размера и ищет
// подстроку запроса в имени, артикуле, штрихкодах и кратком описании.
// Количество батчей ограничено политикой: полный скан большого каталога
// на каждый запрос недопустим
func (s *SearchService) manualSearch(ctx context.Context, query string, limit int) []entity.Product {
	needle := strings.ToLower(query)
	matched := make([]entity.Product, 0, limit)

	for batch := 0; batch < s.policy.SearchMaxBatches; batch++ {
		raw, err := s.client.Get(ctx, "/products", upstream.Params{
			Display: upstream.DisplayFull,
			Filter:  map[string]string{"active": "1"},
			Limit:   s.policy.SearchBatchSize,
			Offset:  batch * s.policy.SearchBatchSize,
		})
		if err != nil {
			logger.Warn().Err(err).Int("batch", batch).Str("query", query).Msg("manual search batch failed")
			break
		}

		products := transform.Products(raw)
		for _, p := range products {
			if matchesQuery(p, needle) {
				matched = append(matched, p)
				if len(matched) >= limit {
					return matched
				}
			}
		}

		// Каталог закончился раньше лимита батчей
		if len(products) < s.policy.SearchBatchSize {
			break
		}
	}

	return matched
}

func matchesQuery(p entity.Product, needle string) bool {
	if strings.Contains(strings.ToLower(p.Name), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Reference), needle) {
		return true
	}
	if p.EAN13 != "" && strings.Contains(p.EAN13, needle) {
		return true
	}
	if p.UPC != "" && strings.Contains(p.UPC, needle) {
		return true
	}
	return strings.Contains(strings.ToLower(p.ShortDescription), needle)
}

// GetSuggestions строит выпадающие подсказки: запрос расширяется
// синонимами домена, первые варианты опрашиваются параллельно,
// дубликаты схлопываются по id. Ничего не нашлось - пробуем исправить
// опечатку по словарю и перезапросить.
// Контекст запроса пробрасывается насквозь: отменённый при следующем
// нажатии клавиши запрос отменяет и походы к upstream
func (s *SearchService) GetSuggestions(ctx context.Context, query string, limit int) (*entity.SuggestionsResponse, error) {
	query = strings.TrimSpace(query)
	resp := &entity.SuggestionsResponse{Query: query, Suggestions: []entity.Suggestion{}}

	products := s.searchTerms(ctx, search.ExpandWithSynonyms(query), limit)

	if len(products) == 0 {
		if correction := search.SuggestCorrection(query); correction != "" {
			if corrected, err := s.SearchProducts(ctx, correction, limit); err == nil && len(corrected) > 0 {
				products = corrected
				resp.Correction = correction
			}
		}
	}

	for _, p := range products {
		suggestion := entity.Suggestion{
			ID:    p.ID,
			Name:  p.Name,
			Slug:  p.Slug,
			Price: p.SalePrice,
			Type:  "product",
		}
		if p.Thumbnail != nil {
			suggestion.Image = p.Thumbnail.ThumbnailURL
		}
		resp.Suggestions = append(resp.Suggestions, suggestion)
		if len(resp.Suggestions) >= limit {
			break
		}
	}

	s.appendCategorySuggestions(ctx, resp, query, limit)

	return resp, nil
}

// searchTerms опрашивает первые варианты запроса параллельно
// и схлопывает дубликаты товаров по id, сохраняя порядок вариантов
func (s *SearchService) searchTerms(ctx context.Context, terms []string, limit int) []entity.Product {
	if len(terms) > suggestionTerms {
		terms = terms[:suggestionTerms]
	}

	results := make([][]entity.Product, len(terms))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for i, term := range terms {
		g.Go(func() error {
			products, err := s.SearchProducts(gctx, term, limit)
			if err != nil {
				logger.Warn().Err(err).Str("term", term).Msg("suggestion term search failed")
				return nil
			}
			mu.Lock()
			results[i] = products
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	seen := make(map[int]struct{})
	var merged []entity.Product
	for _, batch := range results {
		for _, p := range batch {
			if _, ok := seen[p.ID]; ok {
				continue
			}
			seen[p.ID] = struct{}{}
			merged = append(merged, p)
		}
	}
	return merged
}

// appendCategorySuggestions добавляет совпавшие по имени категории
// в хвост подсказок. Категории берутся из кешированного списка,
// его недоступность подсказки не ломает
func (s *SearchService) appendCategorySuggestions(ctx context.Context, resp *entity.SuggestionsResponse, query string, limit int) {
	if len(resp.Suggestions) >= limit {
		return
	}

	categories, err := s.catalog.GetCategories(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("categories unavailable for suggestions")
		return
	}

	needle := strings.ToLower(query)
	for _, c := range categories {
		if !c.Active || !strings.Contains(strings.ToLower(c.Name), needle) {
			continue
		}
		resp.Suggestions = append(resp.Suggestions, entity.Suggestion{
			ID:    c.ID,
			Name:  c.Name,
			Slug:  c.Slug,
			Image: c.Image,
			Type:  "category",
		})
		if len(resp.Suggestions) >= limit {
			return
		}
	}
}
