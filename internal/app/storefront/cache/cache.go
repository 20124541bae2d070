package cache

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"
)

// Cache - TTL кеш типа ключ/значение
// Значения сериализуются в JSON, поэтому memory и redis реализации
// взаимозаменяемы за одним интерфейсом.
//
// Get работает по принципу fail-open: истёкшая запись, ошибка бэкенда или
// несовпадение типа трактуются как промах, не как ошибка. Set работает
// по принципу last-write-wins, конкурирующие записи по одному ключу не
// координируются - для read-through кеша каталога это приемлемо.
type Cache interface {
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, value any, ttl time.Duration)
	Delete(ctx context.Context, key string)
	DeletePrefix(ctx context.Context, prefix string)
	Clear(ctx context.Context)
	// Cleanup удаляет истёкшие записи и возвращает их количество
	// Вызывается по расписанию, чтобы ключи "записал и забыл" не копились
	Cleanup(ctx context.Context) int
	Len(ctx context.Context) int
}

// GenerateKey детерминированно собирает ключ кеша из префикса и параметров.
// Имена параметров сортируются, поэтому семантически одинаковые вызовы
// дают один и тот же ключ независимо от порядка ключей в map
func GenerateKey(prefix string, params map[string]any) string {
	if len(params) == 0 {
		return prefix + ":"
	}

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		value, err := json.Marshal(params[name])
		if err != nil {
			// Несериализуемых параметров в запросах каталога не бывает,
			// но ключ обязан получиться детерминированным в любом случае
			value = []byte(`null`)
		}
		parts = append(parts, name+":"+string(value))
	}

	return prefix + ":" + strings.Join(parts, "|")
}

// KeyPrefix возвращает префикс ключа до первого разделителя
// Используется как label кеш-метрик, чтобы не раздувать кардинальность
func KeyPrefix(key string) string {
	if i := strings.IndexByte(key, ':'); i >= 0 {
		return key[:i]
	}
	return key
}
