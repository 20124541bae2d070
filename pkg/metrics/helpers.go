package metrics

import (
	"strconv"
	"time"
)

func RecordCacheHit(service, keyPrefix string) {
	CacheHits.WithLabelValues(service, keyPrefix).Inc()
}

func RecordCacheMiss(service, keyPrefix string) {
	CacheMisses.WithLabelValues(service, keyPrefix).Inc()
}

func RecordCacheEvictions(service string, count int) {
	CacheEvictions.WithLabelValues(service).Add(float64(count))
}

func SetCacheEntries(service string, count int) {
	CacheEntries.WithLabelValues(service).Set(float64(count))
}

func RecordUpstreamError(service, endpoint, reason string) {
	UpstreamErrors.WithLabelValues(service, endpoint, reason).Inc()
}

// UpstreamTimer измеряет длительность одного запроса к upstream API
type UpstreamTimer struct {
	service  string
	method   string
	endpoint string
	start    time.Time
}

func NewUpstreamTimer(service, method, endpoint string) *UpstreamTimer {
	return &UpstreamTimer{
		service:  service,
		method:   method,
		endpoint: endpoint,
		start:    time.Now(),
	}
}

// Observe записывает метрики завершённого запроса
// status == 0 означает транспортную ошибку (запрос не дошёл до сервера)
func (ut *UpstreamTimer) Observe(status int) {
	duration := time.Since(ut.start).Seconds()

	statusLabel := "error"
	if status > 0 {
		statusLabel = strconv.Itoa(status)
	}

	UpstreamRequestsTotal.WithLabelValues(ut.service, ut.method, ut.endpoint, statusLabel).Inc()
	UpstreamRequestDuration.WithLabelValues(ut.service, ut.method, ut.endpoint).Observe(duration)
}
