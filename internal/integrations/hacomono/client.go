package hacomono

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

var tracer = otel.Tracer("reservation.internal.integrations.hacomono")

const (
	defaultReadRPS    = 10
	defaultWriteRPS   = 2
	defaultRetryAfter = time.Second
	maxErrorBody      = 8192
	pageLength        = 100
)

// Config параметры подключения к Admin API
type Config struct {
	BaseURL      string // https://{brand}.admin.egw.hacomono.app/api/v2
	TokenURL     string // https://{admin_domain}/api/oauth/token
	ClientID     string
	ClientSecret string
	AccessToken  string
	RefreshToken string
	Timeout      time.Duration
	ReadRPS      float64 // GET
	WriteRPS     float64 // POST/PUT/DELETE
	Location     *time.Location
}

// Client клиент hacomono Admin API v2
type Client struct {
	baseURL    string
	tokenURL   string
	httpClient *http.Client
	location   *time.Location

	clientID     string
	clientSecret string

	mu           sync.RWMutex
	accessToken  string
	refreshToken string

	readLimiter  *rate.Limiter
	writeLimiter *rate.Limiter

	// sleep ожидание перед повтором после 429
	sleep func(ctx context.Context, d time.Duration) error

	metrics MetricsRecorder
	log     Logger
}

// NewClient создает новый экземпляр клиента hacomono
func NewClient(cfg Config, metrics MetricsRecorder, log Logger) *Client {
	readRPS, writeRPS := cfg.ReadRPS, cfg.WriteRPS
	if readRPS <= 0 {
		readRPS = defaultReadRPS
	}
	if writeRPS <= 0 {
		writeRPS = defaultWriteRPS
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}

	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		tokenURL: cfg.TokenURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		location:     loc,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		accessToken:  cfg.AccessToken,
		refreshToken: cfg.RefreshToken,
		readLimiter:  rate.NewLimiter(rate.Limit(readRPS), 1),
		writeLimiter: rate.NewLimiter(rate.Limit(writeRPS), 1),
		sleep:        sleepContext,
		metrics:      metrics,
		log:          log,
	}
}

// Location часовой пояс студий
func (c *Client) Location() *time.Location {
	return c.location
}

// request описание одного вызова; route используется как метка метрик без id
type request struct {
	method string
	path   string
	route  string
	query  url.Values
	body   interface{}
}

type response struct {
	status int
	header http.Header
	body   []byte
}

// do выполняет запрос с ограничением частоты, одним повтором после обновления токена (401)
// или после ожидания Retry-After (429), и декодирует data в out
func (c *Client) do(ctx context.Context, req request, out map[string]interface{}) error {
	ctx, span := tracer.Start(ctx, "hacomono "+req.method+" "+req.route, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("http.method", req.method),
		attribute.String("hacomono.route", req.route),
	)

	retried := false
	for {
		resp, err := c.send(ctx, req)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "transport error")
			return err
		}
		span.SetAttributes(attribute.Int("http.status_code", resp.status))

		switch {
		case resp.status == http.StatusUnauthorized:
			if !retried && c.canRefresh() {
				retried = true
				if err := c.refreshAccessToken(ctx); err != nil {
					span.RecordError(err)
					return err
				}
				continue
			}
			return c.apiError(resp, ErrUnauthorized)

		case resp.status == http.StatusTooManyRequests:
			if !retried {
				retried = true
				wait := retryAfter(resp.header)
				c.log.Warn("hacomono rate limit on %s %s, retry after %s", req.method, req.route, wait)
				if err := c.sleep(ctx, wait); err != nil {
					return fmt.Errorf("%w: %v", ErrRateLimited, err)
				}
				continue
			}
			return c.apiError(resp, ErrRateLimited)

		case resp.status == http.StatusNotFound:
			return c.apiError(resp, ErrNotFound)

		case resp.status >= 500:
			apiErr := c.apiError(resp, ErrUnavailable)
			span.RecordError(apiErr)
			span.SetStatus(codes.Error, "upstream unavailable")
			return apiErr

		case resp.status >= 400:
			return c.apiError(resp, ErrRejected)
		}

		return decodeData(resp.body, out)
	}
}

// send один HTTP вызов
func (c *Client) send(ctx context.Context, req request) (*response, error) {
	limiter := c.writeLimiter
	if req.method == http.MethodGet {
		limiter = c.readLimiter
	}
	if err := limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limiter: %v", ErrInternal, err)
	}

	endpoint := c.baseURL + req.path
	if len(req.query) > 0 {
		endpoint += "?" + req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		payload, err := json.Marshal(req.body)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	c.mu.RLock()
	token := c.accessToken
	c.mu.RUnlock()

	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("X-Requested-With", "XMLHttpRequest")
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.metrics.ObserveUpstreamRequest(req.method, req.route, 0, time.Since(start))
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	c.metrics.ObserveUpstreamRequest(req.method, req.route, resp.StatusCode, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrInvalidResponse, err)
	}

	c.log.Debug("hacomono %s %s -> %d (%s)", req.method, req.route, resp.StatusCode, time.Since(start))

	return &response{status: resp.StatusCode, header: resp.Header, body: data}, nil
}

func (c *Client) canRefresh() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.refreshToken != "" && c.clientID != "" && c.clientSecret != "" && c.tokenURL != ""
}

// refreshAccessToken обновляет access token по refresh token
func (c *Client) refreshAccessToken(ctx context.Context) error {
	c.mu.RLock()
	payload := map[string]string{
		"grant_type":    "refresh_token",
		"refresh_token": c.refreshToken,
		"client_id":     c.clientID,
		"client_secret": c.clientSecret,
	}
	c.mu.RUnlock()

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal token request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create token request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: token refresh: %v", ErrUnauthorized, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%w: failed to refresh token: status %d: %s", ErrUnauthorized, resp.StatusCode, string(msg))
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil || token.AccessToken == "" {
		return fmt.Errorf("%w: invalid token response: %v", ErrUnauthorized, err)
	}

	c.mu.Lock()
	c.accessToken = token.AccessToken
	if token.RefreshToken != "" {
		c.refreshToken = token.RefreshToken
	}
	c.mu.Unlock()

	c.log.Info("hacomono access token refreshed")
	return nil
}

// apiError разбирает тело ошибки; сообщение платформы сохраняется без изменений
func (c *Client) apiError(resp *response, kind error) *APIError {
	apiErr := &APIError{StatusCode: resp.status, kind: kind}

	body := resp.body
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}

	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		switch {
		case len(parsed.Errors) > 0:
			apiErr.Code = parsed.Errors[0].Code
			apiErr.Message = parsed.Errors[0].Message
		default:
			apiErr.Code = parsed.Code
			apiErr.Message = parsed.Message
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(body))
	}
	return apiErr
}

// decodeData раскладывает поля data по out: ключ -> указатель на значение
func decodeData(body []byte, out map[string]interface{}) error {
	if len(out) == 0 {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	for key, dst := range out {
		raw, ok := env.Data[key]
		if !ok {
			return fmt.Errorf("%w: missing data.%s", ErrInvalidResponse, key)
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			return fmt.Errorf("%w: failed to decode data.%s: %v", ErrInvalidResponse, key, err)
		}
	}
	return nil
}

// fetchAll читает все страницы списка data.<key>
func fetchAll[T any](ctx context.Context, c *Client, path, route, key string, query map[string]interface{}) ([]T, error) {
	params := url.Values{}
	params.Set("length", strconv.Itoa(pageLength))
	if len(query) > 0 {
		q, err := json.Marshal(query)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to marshal query: %v", ErrInternal, err)
		}
		params.Set("query", string(q))
	}

	result := make([]T, 0)
	for page := 1; ; page++ {
		if page > 1 {
			params.Set("page", strconv.Itoa(page))
		}

		var p listPage[T]
		err := c.do(ctx, request{method: http.MethodGet, path: path, route: route, query: params}, map[string]interface{}{key: &p})
		if err != nil {
			return nil, err
		}
		result = append(result, p.List...)

		if page >= p.TotalPage {
			return result, nil
		}
	}
}

func retryAfter(h http.Header) time.Duration {
	v := strings.TrimSpace(h.Get("Retry-After"))
	if v == "" {
		return defaultRetryAfter
	}
	if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil {
		if d := time.Until(at); d > 0 {
			return d
		}
		return 0
	}
	return defaultRetryAfter
}

type nopMetrics struct{}

func (nopMetrics) ObserveUpstreamRequest(string, string, int, time.Duration) {}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
