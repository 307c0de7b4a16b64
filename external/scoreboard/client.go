package scoreboard

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/cricket-live/internal/domain/livematch"
	"github.com/riskibarqy/cricket-live/internal/domain/match"
	"github.com/riskibarqy/cricket-live/internal/platform/logging"
	"github.com/riskibarqy/cricket-live/internal/platform/resilience"
	"github.com/riskibarqy/cricket-live/internal/usecase"
	"github.com/valyala/fasthttp"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL      = "http://localhost:8084"
	defaultTimeout      = 5 * time.Second
	maxResponseBodySize = 6 << 20
	maxConnsPerHost     = 64
)

type ClientConfig struct {
	HTTPClient *fasthttp.Client
	BaseURL    string
	Timeout    time.Duration
	// RateLimit is requests per second across all endpoints. Zero disables limiting.
	RateLimit      float64
	RateBurst      int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads live feeds, fixtures and results from the scoreboard backend.
// It never retries: the caller's refresh cadence is the retry policy.
type Client struct {
	httpClient *fasthttp.Client
	baseURL    string
	timeout    time.Duration
	limiter    *rate.Limiter
	breaker    *resilience.CircuitBreaker
	logger     *logging.Logger
}

// statusError is a non-2xx answer from the backend.
type statusError struct {
	Code int
	Body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("backend status=%d body=%s", e.Code, e.Body)
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			Name:                "cricket-live",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxConnsPerHost:     maxConnsPerHost,
			MaxResponseBodySize: maxResponseBodySize,
		}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 1
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		timeout:    timeout,
		limiter:    rate.NewLimiter(limit, burst),
		breaker:    resilience.NewCircuitBreaker(resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)),
		logger:     logger.Named("scoreboard"),
	}
}

// CircuitState exposes the breaker state for health reporting.
func (c *Client) CircuitState() resilience.CircuitState {
	return c.breaker.State()
}

func (c *Client) FetchBallByBall(ctx context.Context, matchID livematch.MatchID) (livematch.MatchSnapshot, error) {
	var out ballByBallEnvelope
	if err := c.doJSON(ctx, "/ballByBall/"+url.PathEscape(matchID.String()), &out); err != nil {
		return livematch.MatchSnapshot{}, fmt.Errorf("ball by ball match_id=%s: %w", matchID, err)
	}
	return out.toDomain(), nil
}

func (c *Client) FetchBattingScore(ctx context.Context, matchID livematch.MatchID) (livematch.BattingCard, error) {
	var out battingEnvelope
	if err := c.doJSON(ctx, "/battingScore/"+url.PathEscape(matchID.String()), &out); err != nil {
		return livematch.BattingCard{}, fmt.Errorf("batting score match_id=%s: %w", matchID, err)
	}
	return out.toDomain(), nil
}

func (c *Client) FetchBowlingScore(ctx context.Context, matchID livematch.MatchID) (livematch.BowlingCard, error) {
	var out bowlingEnvelope
	if err := c.doJSON(ctx, "/bowlingScore/"+url.PathEscape(matchID.String()), &out); err != nil {
		return livematch.BowlingCard{}, fmt.Errorf("bowling score match_id=%s: %w", matchID, err)
	}
	return out.toDomain(), nil
}

func (c *Client) ListMatchesByStatus(ctx context.Context, status string) ([]match.Match, error) {
	var items []matchPayload
	if err := c.doJSON(ctx, "/match/status/"+url.PathEscape(status), &items); err != nil {
		return nil, fmt.Errorf("list matches status=%s: %w", status, err)
	}

	out := make([]match.Match, 0, len(items))
	for _, item := range items {
		out = append(out, item.toDomain())
	}
	return out, nil
}

func (c *Client) GetMatchResult(ctx context.Context, matchID string) (match.Result, error) {
	var out resultPayload
	err := c.doJSON(ctx, "/matchResult/getResultById/"+url.PathEscape(matchID), &out)
	if err != nil {
		var statusErr *statusError
		if crerr.As(err, &statusErr) && statusErr.Code == http.StatusNotFound {
			return match.Result{}, fmt.Errorf("%w: no result for match %s", usecase.ErrNotFound, matchID)
		}
		return match.Result{}, fmt.Errorf("match result match_id=%s: %w", matchID, err)
	}
	return out.toDomain(matchID), nil
}

// doJSON performs one rate limited, circuit guarded GET and decodes the body into target.
// Every failure it returns is marked usecase.ErrTransientFetch.
func (c *Client) doJSON(ctx context.Context, path string, target any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return usecase.MarkTransient(fmt.Errorf("wait for rate limiter: %w", err))
	}

	var raw []byte
	err := c.breaker.Execute(func() error {
		body, reqErr := c.get(ctx, path)
		raw = body
		return reqErr
	}, isCircuitFailure)
	if err != nil {
		if crerr.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "scoreboard circuit breaker rejected request", "path", path, "state", string(c.breaker.State()))
			return usecase.MarkTransient(fmt.Errorf("%w: scoreboard backend is temporarily unavailable", usecase.ErrDependencyUnavailable))
		}
		c.logger.DebugContext(ctx, "scoreboard request failed", "path", path, "error", err)
		return usecase.MarkTransient(err)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return usecase.MarkTransient(fmt.Errorf("decode %s payload: %w", path, err))
	}
	return nil
}

type getResult struct {
	body []byte
	err  error
}

// get runs the request on its own goroutine so ctx cancellation returns at once.
// The goroutine owns the pooled request and response objects.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	fullURL := c.baseURL + path
	done := make(chan getResult, 1)
	go func() {
		req := fasthttp.AcquireRequest()
		resp := fasthttp.AcquireResponse()
		defer fasthttp.ReleaseRequest(req)
		defer fasthttp.ReleaseResponse(resp)

		req.SetRequestURI(fullURL)
		req.Header.SetMethod(fasthttp.MethodGet)
		req.Header.Set(fasthttp.HeaderAccept, "application/json")

		if err := c.httpClient.DoDeadline(req, resp, deadline); err != nil {
			done <- getResult{err: fmt.Errorf("send request: %w", err)}
			return
		}

		code := resp.StatusCode()
		body := append([]byte(nil), resp.Body()...)
		if code < fasthttp.StatusOK || code >= fasthttp.StatusMultipleChoices {
			done <- getResult{err: &statusError{Code: code, Body: abbreviateBody(body)}}
			return
		}
		done <- getResult{body: body}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case out := <-done:
		return out.body, out.err
	}
}

// isCircuitFailure reports whether err says the backend itself is unhealthy.
func isCircuitFailure(err error) bool {
	if err == nil || crerr.Is(err, context.Canceled) {
		return false
	}
	var statusErr *statusError
	if crerr.As(err, &statusErr) {
		return statusErr.Code == http.StatusTooManyRequests || statusErr.Code >= http.StatusInternalServerError
	}
	return true
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
