package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/time/rate"

	"growshop/internal/app/storefront/config"
	"growshop/pkg/logger"
	"growshop/pkg/metrics"
)

const serviceName = "storefront"

var (
	// ErrEdgeBlocked - 401 с realm уровня edge/.htaccess. Повтор с другими
	// учётными данными не поможет, проблему решает только конфигурация
	// сервера, поэтому вызов падает сразу без ретраев
	ErrEdgeBlocked = errors.New("upstream edge blocks API access: server misconfiguration")

	// ErrInvalidAPIKey - сам webservice отклонил API key
	ErrInvalidAPIKey = errors.New("upstream rejected API key: invalid or missing permissions")

	// ErrTimeout - запрос не уложился в бюджет времени
	ErrTimeout = errors.New("upstream request timed out")

	// ErrNotFound - upstream ответил 404 на конкретный ресурс
	ErrNotFound = errors.New("upstream resource not found")
)

// Client выполняет аутентифицированные HTTP запросы к webservice
// коммерческой платформы. API key передаётся как username в Basic Auth
// с пустым паролем. Ретраев нет: упавший вызов падает один раз,
// fallback стратегия - ответственность вызывающего
type Client struct {
	baseURL      string
	imageBaseURL string
	apiKey       string
	edgeRealm    string
	apiRealm     string

	// Отдельные бюджеты времени: короткий для интерактивных чтений,
	// длинный для записей и больших выборок
	readClient  *http.Client
	writeClient *http.Client

	// Upstream сам ограничивает частоту запросов, поэтому душим себя
	// на клиенте, чтобы не ловить 429 на батчевых операциях
	limiter *rate.Limiter
}

func NewClient(cfg config.UpstreamConfig) *Client {
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}

	return &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		imageBaseURL: strings.TrimRight(cfg.ImageBaseURL, "/"),
		apiKey:       cfg.APIKey,
		edgeRealm:    cfg.EdgeRealm,
		apiRealm:     cfg.APIRealm,
		readClient:   &http.Client{Timeout: cfg.ReadTimeout},
		writeClient:  &http.Client{Timeout: cfg.WriteTimeout},
		limiter:      rate.NewLimiter(limit, cfg.RateBurst),
	}
}

// Get выполняет GET запрос и возвращает декодированный JSON
// Ответ может быть как объектом, так и массивом (поисковый endpoint),
// поэтому возвращается any
func (c *Client) Get(ctx context.Context, endpoint string, params Params) (any, error) {
	return c.request(ctx, c.readClient, http.MethodGet, endpoint, params, nil)
}

func (c *Client) Post(ctx context.Context, endpoint string, body any, params Params) (any, error) {
	return c.request(ctx, c.writeClient, http.MethodPost, endpoint, params, body)
}

func (c *Client) Put(ctx context.Context, endpoint string, body any, params Params) (any, error) {
	return c.request(ctx, c.writeClient, http.MethodPut, endpoint, params, body)
}

func (c *Client) Delete(ctx context.Context, endpoint string, params Params) (any, error) {
	return c.request(ctx, c.readClient, http.MethodDelete, endpoint, params, nil)
}

func (c *Client) request(ctx context.Context, httpClient *http.Client, method, endpoint string, params Params, body any) (any, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter interrupted: %w", err)
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	reqURL := c.baseURL + endpoint + "?" + params.Encode().Encode()

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.apiKey, "")

	timer := metrics.NewUpstreamTimer(serviceName, method, metricEndpoint(endpoint))

	resp, err := httpClient.Do(req)
	if err != nil {
		timer.Observe(0)
		if isTimeout(err) {
			metrics.RecordUpstreamError(serviceName, metricEndpoint(endpoint), "timeout")
			return nil, fmt.Errorf("%w: %s %s", ErrTimeout, method, endpoint)
		}
		metrics.RecordUpstreamError(serviceName, metricEndpoint(endpoint), "transport")
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	timer.Observe(resp.StatusCode)

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, c.classifyAuthFailure(resp, endpoint)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, endpoint)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		metrics.RecordUpstreamError(serviceName, metricEndpoint(endpoint), "http_status")
		return nil, fmt.Errorf("upstream returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	// Пустое тело (например DELETE или пустая выборка) - не ошибка
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("failed to unmarshal upstream response: %w", err)
	}

	return decoded, nil
}

// classifyAuthFailure разбирает 401 по заголовку WWW-Authenticate
// Edge-блокировка и отказ webservice требуют разных действий от оператора,
// поэтому различаются на уровне ошибки
func (c *Client) classifyAuthFailure(resp *http.Response, endpoint string) error {
	wwwAuth := resp.Header.Get("WWW-Authenticate")

	switch {
	case strings.Contains(wwwAuth, c.edgeRealm):
		logger.Error().
			Str("endpoint", endpoint).
			Str("www_authenticate", wwwAuth).
			Msg("edge-level auth is blocking the API key; the server must be configured to let webservice auth through")
		metrics.RecordUpstreamError(serviceName, metricEndpoint(endpoint), "edge_blocked")
		return ErrEdgeBlocked
	case strings.Contains(wwwAuth, c.apiRealm):
		logger.Error().
			Str("endpoint", endpoint).
			Msg("webservice rejected the API key; verify the key and its permissions in the admin panel")
		metrics.RecordUpstreamError(serviceName, metricEndpoint(endpoint), "invalid_api_key")
		return ErrInvalidAPIKey
	default:
		metrics.RecordUpstreamError(serviceName, metricEndpoint(endpoint), "unauthorized")
		return fmt.Errorf("upstream returned 401 with unrecognized WWW-Authenticate %q", wwwAuth)
	}
}

// FetchImage загружает картинку с сервера платформы
// Возвращает содержимое и content type для передачи через image proxy
func (c *Client) FetchImage(ctx context.Context, path string) ([]byte, string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, "", fmt.Errorf("rate limiter interrupted: %w", err)
	}

	reqURL := c.imageBaseURL + "/" + strings.TrimLeft(path, "/")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.apiKey, "")

	timer := metrics.NewUpstreamTimer(serviceName, http.MethodGet, "/img")

	resp, err := c.readClient.Do(req)
	if err != nil {
		timer.Observe(0)
		if isTimeout(err) {
			return nil, "", fmt.Errorf("%w: image %s", ErrTimeout, path)
		}
		return nil, "", fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	timer.Observe(resp.StatusCode)

	if resp.StatusCode == http.StatusNotFound {
		return nil, "", fmt.Errorf("%w: image %s", ErrNotFound, path)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("upstream returned status %d for image %s", resp.StatusCode, path)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image body: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	return data, contentType, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// metricEndpoint схлопывает численные ID в пути, чтобы не раздувать
// кардинальность метрик: /products/123 -> /products/:id
func metricEndpoint(endpoint string) string {
	parts := strings.Split(endpoint, "/")
	for i, part := range parts {
		if part == "" {
			continue
		}
		if _, err := strconv.Atoi(part); err == nil {
			parts[i] = ":id"
		}
	}
	return strings.Join(parts, "/")
}
