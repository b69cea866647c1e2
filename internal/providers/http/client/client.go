package client

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"strings"

	"github.com/GriffinCanCode/appwrite-go/internal/infrastructure/config"
	"github.com/GriffinCanCode/appwrite-go/internal/infrastructure/logging"
	"github.com/GriffinCanCode/appwrite-go/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/appwrite-go/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/appwrite-go/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/appwrite-go/internal/shared/types"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Caller executes one logical call against the service. *Client implements
// it; the upload engine and services depend only on this interface.
type Caller interface {
	Call(ctx context.Context, method, path string, headers map[string]string, params map[string]any) (*Response, error)
}

var methods = map[string]bool{
	http.MethodGet:     true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodPatch:   true,
	http.MethodDelete:  true,
	http.MethodHead:    true,
	http.MethodOptions: true,
}

// Client is the transport. Default headers are fixed at construction and
// the client is safe for concurrent use.
type Client struct {
	resty    *resty.Client
	endpoint string
	headers  map[string]string
	accept   string

	limiter *rate.Limiter
	breaker *resilience.Breaker
	metrics *monitoring.Metrics
	logger  *zap.Logger
}

// Option configures a Client
type Option func(*Client)

// WithLogger sets the logger. Calls log at debug, failures at warn.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithMetrics records call metrics
func WithMetrics(metrics *monitoring.Metrics) Option {
	return func(c *Client) {
		c.metrics = metrics
	}
}

// New creates a transport from cfg. A nil cfg uses config.Default().
func New(cfg *config.Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		headers:  cfg.Headers(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = logging.OrNop(c.logger)

	// pooled transport shared by every request of this client
	pooled := retryablehttp.NewClient().HTTPClient.Transport

	r := resty.New().
		SetBaseURL(c.endpoint).
		SetTransport(pooled).
		SetLogger(c.logger.Sugar())

	if cfg.SelfSigned {
		r.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true}) //nolint:gosec
	}
	if cfg.Timeout > 0 {
		r.SetTimeout(cfg.Timeout.Std())
	}

	for key, value := range c.headers {
		// content-type negotiates the response shape; it never goes out verbatim
		if strings.EqualFold(key, "content-type") {
			c.accept = value
			continue
		}
		r.SetHeader(key, value)
	}

	applyRetry(r, RetryPolicy{
		MaxRetries: cfg.Retry.MaxRetries,
		MinWait:    cfg.Retry.MinWait.Std(),
		MaxWait:    cfg.Retry.MaxWait.Std(),
	}, c.metrics.IncRetries)
	c.resty = r

	if rps := cfg.RateLimit.RequestsPerSecond; rps > 0 {
		burst := cfg.RateLimit.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}

	if cfg.Breaker.Enabled {
		c.breaker = newBreaker(cfg.Breaker, c.logger, c.metrics)
	}

	return c, nil
}

func newBreaker(cfg config.BreakerConfig, logger *zap.Logger, metrics *monitoring.Metrics) *resilience.Breaker {
	threshold := cfg.ConsecutiveFailures
	if threshold == 0 {
		threshold = 5
	}

	return resilience.New("appwrite", resilience.Settings{
		Timeout: cfg.Timeout.Std(),
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		// a 4xx is a caller problem, the service itself is healthy
		IsSuccessful: func(err error) bool {
			return err == nil || IsClientError(err)
		},
		OnStateChange: func(name string, from, to resilience.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to))
			metrics.SetBreakerState(name, int(to))
		},
	})
}

// Endpoint returns the base URL every path is resolved against
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Headers returns a copy of the default header set
func (c *Client) Headers() map[string]string {
	headers := make(map[string]string, len(c.headers))
	for k, v := range c.headers {
		headers[k] = v
	}
	return headers
}

// BreakerState returns the breaker state, or closed when no breaker is
// configured.
func (c *Client) BreakerState() resilience.State {
	if c.breaker == nil {
		return resilience.StateClosed
	}
	return c.breaker.State()
}

// Call executes one request. GET sends params as a query string; other
// methods send a JSON body, or a multipart body when the effective
// content-type is multipart/form-data. Call headers override defaults.
func (c *Client) Call(ctx context.Context, method, path string, headers map[string]string, params map[string]any) (*Response, error) {
	verb := strings.ToUpper(strings.TrimSpace(method))
	if !methods[verb] {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMethod, method)
	}

	span, ctx := tracing.StartSpan(ctx, verb+" "+path)
	log := c.logger.With(span.Fields()...)

	req, err := c.newRequest(ctx, verb, headers, params)
	if err != nil {
		return nil, err
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &TransportError{Method: verb, Path: path, Err: err}
		}
	}

	var (
		status int
		out    *Response
	)
	execute := func() error {
		raw, err := req.Execute(verb, path)
		if err != nil {
			return &TransportError{Method: verb, Path: path, Err: err}
		}
		status = raw.StatusCode()
		out, err = classify(status, raw.Header(), raw.Body())
		return err
	}

	timer := monitoring.NewTimer(c.metrics, verb)
	if c.breaker != nil {
		err = c.breaker.Do(execute)
		if err == resilience.ErrCircuitOpen || err == resilience.ErrTooManyRequests {
			err = &TransportError{Method: verb, Path: path, Err: err}
		}
	} else {
		err = execute()
	}
	timer.Stop(status)
	elapsed := span.Finish(status, err)

	if err != nil {
		log.Warn("Call failed",
			zap.String("method", verb),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", elapsed),
			zap.Error(err))
		return nil, err
	}

	log.Debug("Call completed",
		zap.String("method", verb),
		zap.String("path", path),
		zap.Int("status", status),
		zap.Duration("duration", elapsed),
		zap.Stringer("payload", out.Kind))
	return out, nil
}

func (c *Client) newRequest(ctx context.Context, verb string, headers map[string]string, params map[string]any) (*resty.Request, error) {
	req := c.resty.R().SetContext(ctx)

	contentType := c.accept
	for key, value := range headers {
		if strings.EqualFold(key, "content-type") {
			contentType = value
			continue
		}
		req.SetHeader(key, value)
	}
	if contentType != "" {
		req.SetHeader("Accept", contentType)
	}

	if verb == http.MethodGet {
		req.SetQueryParamsFromValues(queryValues(params))
		return req, nil
	}

	var (
		body *encodedBody
		err  error
	)
	if isMultipart(contentType) {
		body, err = multipartBody(params)
	} else {
		body, err = jsonBody(params)
	}
	if err != nil {
		return nil, err
	}

	req.SetHeader("Content-Type", body.contentType).SetBody(body.data)
	return req, nil
}

func isMultipart(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), mimeMultipart)
}

// CallAs runs Call and converts the JSON payload with convert. A response
// without a JSON payload is reported as a DecodeError.
func CallAs[T any](ctx context.Context, c Caller, method, path string, headers map[string]string, params map[string]any, convert func(types.Object) (T, error)) (T, error) {
	var zero T

	resp, err := c.Call(ctx, method, path, headers, params)
	if err != nil {
		return zero, err
	}
	if !resp.IsJSON() {
		return zero, &DecodeError{
			ContentType: resp.Header.Get("Content-Type"),
			Err:         fmt.Errorf("expected a JSON object, got %s payload", resp.Kind),
		}
	}
	return convert(resp.Object)
}
