// Package client provides the HTTP transport for the Chute API: route
// expansion, envelope decoding, error classification and request metrics.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Sternrassler/chute-client/pkg/logging"
	"github.com/Sternrassler/chute-client/pkg/pagination"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// Prometheus metrics for API requests.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chute_requests_total",
		Help: "Total Chute API requests by route and status",
	}, []string{"route", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "chute_request_duration_seconds",
		Help:    "Chute API request duration in seconds by route",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	}, []string{"route"})

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chute_errors_total",
		Help: "Total Chute API errors by class",
	}, []string{"class"})
)

// HeaderRequestID carries the per-request correlation id.
const HeaderRequestID = "X-Request-Id"

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// Client is the Chute API client.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	config     Config
	logger     zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// BaseURL of the API, e.g. "https://api.getchute.com/v2" (REQUIRED)
	BaseURL string

	// User-Agent header sent with every request
	UserAgent string

	// Timeout per request, 0 disables it
	Timeout time.Duration

	// HTTPClient overrides the default HTTP client (Timeout is then ignored)
	HTTPClient *http.Client
}

// DefaultConfig returns a default configuration for the given API base URL.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:   baseURL,
		UserAgent: "chute-client/0.1.0",
		Timeout:   30 * time.Second,
	}
}

// New creates a new API client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base url is required")
	}

	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("base url must be http or https (got %q)", base.Scheme)
	}
	if base.Host == "" {
		return nil, fmt.Errorf("base url has no host")
	}

	if cfg.UserAgent == "" {
		return nil, fmt.Errorf("user-agent is required")
	}

	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("timeout must not be negative (got %s)", cfg.Timeout)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	base.Path = strings.TrimRight(base.Path, "/")

	return &Client{
		httpClient: httpClient,
		baseURL:    base,
		config:     cfg,
		logger:     logging.NewLogger(logging.ComponentClient),
	}, nil
}

// Do performs a single HTTP request. Responses with an error status are
// returned as-is; only transport failures produce an error.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	route := routeLabel(req)

	startTime := time.Now()
	defer func() {
		requestDuration.WithLabelValues(route).Observe(time.Since(startTime).Seconds())
	}()

	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")
	if req.Header.Get(HeaderRequestID) == "" {
		req.Header.Set(HeaderRequestID, uuid.NewString())
	}

	c.logger.Debug().
		Str("route", route).
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Str("request_id", req.Header.Get(HeaderRequestID)).
		Msg("Executing API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		class := c.classifyError(nil, err)
		errorsTotal.WithLabelValues(string(class)).Inc()
		requestsTotal.WithLabelValues(route, "network_error").Inc()
		c.logger.Error().Err(err).Str("route", route).Msg("HTTP request failed")
		return nil, &APIError{ErrorClass: class, Message: "request failed", Err: err}
	}

	requestsTotal.WithLabelValues(route, strconv.Itoa(resp.StatusCode)).Inc()
	if resp.StatusCode >= 400 {
		class := c.classifyError(resp, nil)
		errorsTotal.WithLabelValues(string(class)).Inc()
		c.logger.Warn().
			Str("route", route).
			Int("status", resp.StatusCode).
			Str("error_class", string(class)).
			Msg("API request error")
	}

	return resp, nil
}

// Call expands route with params, performs the request and decodes the
// response envelope. Parameters not consumed by the route are sent as query
// string.
func (c *Client) Call(ctx context.Context, method string, route Route, params pagination.Params) (*Envelope, error) {
	path, query := route.Expand(params)

	u, err := url.Parse(c.baseURL.String() + path)
	if err != nil {
		return nil, fmt.Errorf("build url: %w", err)
	}
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(withRoute(ctx, route), method, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, c.statusError(resp)
	}

	env := &Envelope{Header: resp.Header.Clone(), StatusCode: resp.StatusCode}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		errorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		return nil, &APIError{StatusCode: resp.StatusCode, ErrorClass: ErrorClassNetwork, Message: "read body", Err: err}
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return env, nil
	}
	if err := json.Unmarshal(body, env); err != nil {
		errorsTotal.WithLabelValues(string(ErrorClassDecode)).Inc()
		return nil, &APIError{StatusCode: resp.StatusCode, ErrorClass: ErrorClassDecode, Message: "decode envelope", Err: err}
	}

	return env, nil
}

// Fetch performs a GET list request and splits the "data" array into records.
func (c *Client) Fetch(ctx context.Context, route Route, params pagination.Params) (*pagination.Response, error) {
	env, err := c.Call(ctx, http.MethodGet, route, params)
	if err != nil {
		return nil, err
	}

	records, err := env.Records()
	if err != nil {
		errorsTotal.WithLabelValues(string(ErrorClassDecode)).Inc()
		return nil, &APIError{StatusCode: env.StatusCode, ErrorClass: ErrorClassDecode, Message: "decode records", Err: err}
	}

	return &pagination.Response{
		Records:    records,
		Header:     env.Header,
		Pagination: env.Pagination,
	}, nil
}

// Bind returns a pagination.Fetcher issuing list requests against route.
func (c *Client) Bind(route Route) pagination.Fetcher {
	return pagination.FetcherFunc(func(ctx context.Context, params pagination.Params) (*pagination.Response, error) {
		return c.Fetch(ctx, route, params)
	})
}

// statusError builds an APIError from an error response.
func (c *Client) statusError(resp *http.Response) error {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		ErrorClass: c.classifyError(resp, nil),
		Message:    resp.Status,
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err == nil && len(body) > 0 {
		var payload struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &payload) == nil {
			switch {
			case payload.Error != "":
				apiErr.Message = payload.Error
			case payload.Message != "":
				apiErr.Message = payload.Message
			}
		}
	}

	return apiErr
}

// classifyError categorizes an error for observability and handling.
func (c *Client) classifyError(resp *http.Response, err error) ErrorClass {
	if err != nil {
		return ErrorClassNetwork
	}

	switch {
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return ErrorClassClient
	case resp.StatusCode >= 500:
		return ErrorClassServer
	default:
		return ""
	}
}

// BaseURL returns the API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

type routeKey struct{}

func withRoute(ctx context.Context, route Route) context.Context {
	return context.WithValue(ctx, routeKey{}, route)
}

// routeLabel keeps metric cardinality bounded by labelling with the route
// template instead of the expanded path.
func routeLabel(req *http.Request) string {
	if route, ok := req.Context().Value(routeKey{}).(Route); ok {
		return string(route)
	}
	return req.URL.Path
}
