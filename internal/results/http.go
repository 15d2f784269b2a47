package results

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/fifapredict/scorecast/internal/models"
)

// HTTPConfig holds configuration for the live-score HTTP provider
type HTTPConfig struct {
	BaseURL           string
	Timeout           time.Duration
	MaxRetries        int
	RetryWaitMin      time.Duration
	RetryWaitMax      time.Duration
	RateLimit         float64 // requests per second
	CircuitBreakerMax int     // consecutive failures before the circuit opens
}

// DefaultHTTPConfig returns recommended defaults
func DefaultHTTPConfig(baseURL string) HTTPConfig {
	return HTTPConfig{
		BaseURL:           baseURL,
		Timeout:           10 * time.Second,
		MaxRetries:        3,
		RetryWaitMin:      100 * time.Millisecond,
		RetryWaitMax:      5 * time.Second,
		RateLimit:         5.0,
		CircuitBreakerMax: 5,
	}
}

// HTTPProvider fetches match states from a live-score API with retries, rate
// limiting and a consecutive-failure circuit breaker.
type HTTPProvider struct {
	client            *retryablehttp.Client
	limiter           *rate.Limiter
	baseURL           string
	circuitBreakerMax int
	logger            *logrus.Logger

	mu                sync.Mutex
	consecutiveErrors int
	isOpen            bool
	lastError         error
}

// matchResponse is the upstream wire shape
type matchResponse struct {
	Status        string `json:"status"`
	FinalScore    string `json:"final_score"`
	CurrentScore  string `json:"current_score"`
	Minute        int    `json:"minute"`
	HalftimeScore string `json:"halftime_score"`
}

// NewHTTPProvider creates a provider against the configured base URL
func NewHTTPProvider(cfg HTTPConfig, logger *logrus.Logger) *HTTPProvider {
	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient.Timeout = cfg.Timeout
	retryClient.RetryMax = cfg.MaxRetries
	retryClient.RetryWaitMin = cfg.RetryWaitMin
	retryClient.RetryWaitMax = cfg.RetryWaitMax
	retryClient.CheckRetry = lookupRetryPolicy()
	retryClient.Logger = nil

	return &HTTPProvider{
		client:            retryClient,
		limiter:           rate.NewLimiter(rate.Limit(cfg.RateLimit), 1),
		baseURL:           cfg.BaseURL,
		circuitBreakerMax: cfg.CircuitBreakerMax,
		logger:            logger,
	}
}

// Lookup queries the upstream match endpoint
func (p *HTTPProvider) Lookup(ctx context.Context, home, away string, kickoff time.Time) (models.MatchResult, error) {
	errResult := models.MatchResult{Status: models.StatusError}

	p.mu.Lock()
	open := p.isOpen
	lastErr := p.lastError
	p.mu.Unlock()
	if open {
		return errResult, &models.LookupError{Provider: "http", Err: fmt.Errorf("circuit breaker open: %v", lastErr)}
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return errResult, &models.LookupError{Provider: "http", Err: err}
	}

	endpoint := fmt.Sprintf("%s/matches?home=%s&away=%s&kickoff=%d",
		p.baseURL, url.QueryEscape(home), url.QueryEscape(away), kickoff.Unix())

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errResult, &models.LookupError{Provider: "http", Err: err}
	}

	resp, err := p.client.Do(req)
	if err != nil {
		p.recordFailure(err)
		return errResult, &models.LookupError{Provider: "http", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("unexpected status %d", resp.StatusCode)
		p.recordFailure(err)
		return errResult, &models.LookupError{Provider: "http", Err: err}
	}
	p.recordSuccess()

	var payload matchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return errResult, &models.LookupError{Provider: "http", Err: err}
	}

	return mapResponse(payload), nil
}

// Close releases idle connections
func (p *HTTPProvider) Close() error {
	p.client.HTTPClient.CloseIdleConnections()
	return nil
}

func (p *HTTPProvider) recordFailure(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.consecutiveErrors++
	p.lastError = err
	if p.consecutiveErrors >= p.circuitBreakerMax && !p.isOpen {
		p.isOpen = true
		if p.logger != nil {
			p.logger.WithField("consecutive_errors", p.consecutiveErrors).
				Warnf("Result lookup circuit breaker opened: %v", err)
		}
	}
}

func (p *HTTPProvider) recordSuccess() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.consecutiveErrors = 0
	p.isOpen = false
}

// mapResponse converts the wire shape to a MatchResult. Unknown statuses are
// reported as StatusError so the engine falls back gracefully.
func mapResponse(payload matchResponse) models.MatchResult {
	switch models.MatchStatus(payload.Status) {
	case models.StatusScheduled, models.StatusLive, models.StatusFinished:
		return models.MatchResult{
			Status:        models.MatchStatus(payload.Status),
			FinalScore:    payload.FinalScore,
			CurrentScore:  payload.CurrentScore,
			Minute:        payload.Minute,
			HalftimeScore: payload.HalftimeScore,
		}
	default:
		return models.MatchResult{Status: models.StatusError}
	}
}

// lookupRetryPolicy retries network errors, 429 and 5xx responses
func lookupRetryPolicy() retryablehttp.CheckRetry {
	return func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		if err != nil {
			return true, err
		}
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return true, nil
		}
		return false, nil
	}
}
