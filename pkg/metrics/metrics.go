package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// HTTP Метрики
// =============================================================================

// HttpRequestsTotal - счётчик всех HTTP запросов
// Labels: service, method, path, status
// Пример запроса PromQL: rate(http_requests_total{service="storefront"}[5m])
var HttpRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"service", "method", "path", "status"},
)

// HttpRequestDuration - гистограмма времени ответа
// Пример: histogram_quantile(0.95, rate(http_request_duration_seconds_bucket[5m]))
var HttpRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name: "http_request_duration_seconds",
		Help: "Duration of HTTP requests in seconds",
		// Бакеты с запасом сверху: ответы зависят от медленного upstream API
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	},
	[]string{"service", "method", "path"},
)

// HttpRequestsInFlight - текущее количество обрабатываемых запросов
var HttpRequestsInFlight = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "Current number of HTTP requests being processed",
	},
	[]string{"service"},
)

// =============================================================================
// Cache Метрики
// =============================================================================

// CacheHits - попадания в кеш
var CacheHits = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "cache_hits_total",
		Help: "Total number of cache hits",
	},
	[]string{"service", "key_prefix"},
)

// CacheMisses - промахи кеша (каждый промах это потенциальный запрос к upstream)
var CacheMisses = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "cache_misses_total",
		Help: "Total number of cache misses",
	},
	[]string{"service", "key_prefix"},
)

// CacheEvictions - записи, удалённые фоновой очисткой по истечении TTL
var CacheEvictions = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "cache_evictions_total",
		Help: "Total number of expired cache entries evicted",
	},
	[]string{"service"},
)

// CacheEntries - текущее количество записей в кеше
var CacheEntries = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "cache_entries",
		Help: "Current number of entries in the cache",
	},
	[]string{"service"},
)

// =============================================================================
// Upstream Метрики (запросы к коммерческой платформе)
// =============================================================================

// UpstreamRequestsTotal - счётчик запросов к upstream API
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "upstream_requests_total",
		Help: "Total number of requests to the upstream commerce API",
	},
	[]string{"service", "method", "endpoint", "status"},
)

// UpstreamRequestDuration - время ответа upstream API
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "upstream_request_duration_seconds",
		Help:    "Duration of upstream API requests in seconds",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
	},
	[]string{"service", "method", "endpoint"},
)

// UpstreamErrors - ошибки upstream API (таймауты, отказ авторизации и т.д.)
var UpstreamErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "upstream_errors_total",
		Help: "Total number of upstream API errors",
	},
	[]string{"service", "endpoint", "reason"},
)
