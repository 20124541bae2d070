package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config содержит все настройки приложения Storefront Service
// Включает конфигурацию HTTP сервера, upstream API, кеша и каталога
type Config struct {
	Server   ServerConfig
	Upstream UpstreamConfig
	Cache    CacheConfig
	Catalog  CatalogConfig
	Log      LogConfig
}

// ServerConfig - настройки HTTP сервера
type ServerConfig struct {
	Host string // Адрес хоста (по умолчанию 0.0.0.0)
	Port string // Порт сервера (по умолчанию 8080)
}

// UpstreamConfig - настройки подключения к webservice коммерческой платформы
// API key передаётся как username в HTTP Basic Auth с пустым паролем
type UpstreamConfig struct {
	BaseURL      string        // Базовый URL API (например https://shop.example.com/api)
	ImageBaseURL string        // Базовый URL для картинок (обычно корень магазина)
	APIKey       string        // API key для webservice
	ReadTimeout  time.Duration // Таймаут GET запросов (интерактивные чтения)
	WriteTimeout time.Duration // Таймаут POST/PUT запросов (большие ответы)
	EdgeRealm    string        // Realm в WWW-Authenticate при блокировке на уровне edge/.htaccess
	APIRealm     string        // Realm в WWW-Authenticate при отказе самого webservice
	RateLimit    float64       // Запросов в секунду к upstream (0 = без ограничения)
	RateBurst    int           // Burst для rate limiter
}

// CacheConfig - настройки TTL кеша
// TTL разделены по волатильности данных: почти статичные данные живут долго,
// данные близкие к реальному времени - коротко
type CacheConfig struct {
	Backend       string        // memory или redis
	RedisHost     string        // Хост Redis (только для backend=redis)
	RedisPort     string        // Порт Redis
	RedisPassword string        // Пароль Redis (опционально)
	RedisDB       int           // Номер БД Redis (0-15)
	SweepInterval time.Duration // Период фоновой очистки истёкших записей
	TTL           TTLConfig
}

// TTLConfig - время жизни кеша по типам данных
type TTLConfig struct {
	Products      time.Duration // Списки товаров
	ProductDetail time.Duration // Детали одного товара
	Categories    time.Duration // Дерево категорий
	Brands        time.Duration // Марки (manufacturers)
	Search        time.Duration // Результаты поиска
	Cart          time.Duration // Корзина и стоки (почти реальное время)
}

// CatalogConfig - параметры каталога и fallback стратегий
type CatalogConfig struct {
	BrandsParentCategoryID int // Категория, чьи дети используются как марки при пустом списке manufacturers
	ScanWindow             int // Максимум товаров, сканируемых при fallback поиске по категории
	BatchWidth             int // Ширина батча параллельных запросов к upstream
	SearchBatchSize        int // Размер страницы при ручном поиске
	SearchMaxBatches       int // Максимум страниц при ручном поиске
	CategoriesLimit        int // Лимит загрузки списка категорий (upstream таймаутит на больших выборках)
}

// LogConfig - настройки логирования
type LogConfig struct {
	Level string // debug/info/warn/error
}

// Load загружает конфигурацию из переменных окружения
// Возвращает ошибку, если не удалось распарсить значения
func Load() (*Config, error) {
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB value: %w", err)
	}

	rateLimit, err := strconv.ParseFloat(getEnv("UPSTREAM_RATE_LIMIT", "10"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid UPSTREAM_RATE_LIMIT value: %w", err)
	}

	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8080"),
		},
		Upstream: UpstreamConfig{
			BaseURL:      getEnv("UPSTREAM_API_URL", "http://localhost:9000/api"),
			ImageBaseURL: getEnv("UPSTREAM_IMAGE_URL", "http://localhost:9000"),
			APIKey:       getEnv("UPSTREAM_API_KEY", ""),
			ReadTimeout:  getEnvDuration("UPSTREAM_READ_TIMEOUT", 60*time.Second),
			WriteTimeout: getEnvDuration("UPSTREAM_WRITE_TIMEOUT", 120*time.Second),
			// Realm в WWW-Authenticate позволяет отличить блокировку на уровне
			// сервера (.htaccess) от отказа самого webservice
			EdgeRealm: getEnv("UPSTREAM_EDGE_REALM", "Restricted Area"),
			APIRealm:  getEnv("UPSTREAM_API_REALM", "Webservice"),
			RateLimit: rateLimit,
			RateBurst: getEnvInt("UPSTREAM_RATE_BURST", 5),
		},
		Cache: CacheConfig{
			Backend:       getEnv("CACHE_BACKEND", "memory"),
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
			SweepInterval: getEnvDuration("CACHE_SWEEP_INTERVAL", 10*time.Minute),
			TTL: TTLConfig{
				Products:      getEnvDuration("CACHE_TTL_PRODUCTS", 30*time.Minute),
				ProductDetail: getEnvDuration("CACHE_TTL_PRODUCT_DETAIL", 15*time.Minute),
				Categories:    getEnvDuration("CACHE_TTL_CATEGORIES", 60*time.Minute),
				Brands:        getEnvDuration("CACHE_TTL_BRANDS", 60*time.Minute),
				Search:        getEnvDuration("CACHE_TTL_SEARCH", 10*time.Minute),
				Cart:          getEnvDuration("CACHE_TTL_CART", 1*time.Minute),
			},
		},
		Catalog: CatalogConfig{
			BrandsParentCategoryID: getEnvInt("BRANDS_PARENT_CATEGORY_ID", 11),
			ScanWindow:             getEnvInt("CATALOG_SCAN_WINDOW", 500),
			BatchWidth:             getEnvInt("CATALOG_BATCH_WIDTH", 10),
			SearchBatchSize:        getEnvInt("SEARCH_BATCH_SIZE", 100),
			SearchMaxBatches:       getEnvInt("SEARCH_MAX_BATCHES", 3),
			CategoriesLimit:        getEnvInt("CATALOG_CATEGORIES_LIMIT", 200),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

// Address возвращает адрес сервера в формате host:port для HTTP сервера
func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

// RedisAddress возвращает адрес Redis в формате host:port для подключения
func (c *CacheConfig) RedisAddress() string {
	return c.RedisHost + ":" + c.RedisPort
}

// getEnv получает значение переменной окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
