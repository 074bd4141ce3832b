package nytimes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker"
)

const DefaultBaseURL = "https://api.nytimes.com/svc/books/v3/reviews.json"

var (
	// ErrUpstream means the review service answered badly or not at all.
	ErrUpstream = errors.New("review service error")
	// ErrUnavailable means the circuit breaker is refusing calls.
	ErrUnavailable = errors.New("review service unavailable")
)

var ReviewRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "review_upstream_requests_total",
		Help: "The total number of calls to the book review API by outcome",
	},
	[]string{"outcome"},
)

// StatusError carries a non-200 upstream status.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.Code)
}

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	cb         *gobreaker.CircuitBreaker
	logger     *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	cbSettings := gobreaker.Settings{
		Name:        "nytimes-reviews",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// A 4xx answer or a caller hanging up says nothing about the health
		// of the service.
		IsSuccessful: func(err error) bool {
			if errors.Is(err, context.Canceled) {
				return true
			}
			var statusErr *StatusError
			if errors.As(err, &statusErr) {
				return statusErr.Code < 500 && statusErr.Code != http.StatusTooManyRequests
			}
			return err == nil
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("CircuitBreaker state changed", "name", name, "from", from, "to", to)
		},
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		cb:      gobreaker.NewCircuitBreaker(cbSettings),
		logger:  logger,
	}
}

// ReviewsResponse is the decoded reviews.json body. Raw holds the whole
// object exactly as the service returned it.
type ReviewsResponse struct {
	Raw        map[string]any
	Results    []map[string]any
	NumResults int
}

// Reviews looks up reviews for a title and author.
func (c *Client) Reviews(ctx context.Context, title, author string) (*ReviewsResponse, error) {
	u, err := c.buildURL(title, author)
	if err != nil {
		return nil, err
	}

	out, err := c.cb.Execute(func() (interface{}, error) {
		return c.get(ctx, u)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			ReviewRequests.WithLabelValues("unavailable").Inc()
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		ReviewRequests.WithLabelValues("upstream_error").Inc()
		c.logger.Warn("review lookup failed",
			slog.String("title", title),
			slog.String("author", author),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	ReviewRequests.WithLabelValues("ok").Inc()
	return out.(*ReviewsResponse), nil
}

func (c *Client) buildURL(title, author string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	q := u.Query()
	q.Set("title", title)
	q.Set("author", author)
	q.Set("api-key", c.apiKey)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *Client) get(ctx context.Context, u string) (*ReviewsResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{Code: resp.StatusCode}
	}

	var raw map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode reviews: %w", err)
	}
	return decodeReviews(raw), nil
}

func decodeReviews(raw map[string]any) *ReviewsResponse {
	out := &ReviewsResponse{Raw: raw, Results: []map[string]any{}}

	if items, ok := raw["results"].([]any); ok {
		for _, item := range items {
			if m, ok := item.(map[string]any); ok {
				out.Results = append(out.Results, m)
			}
		}
	}

	if n, ok := raw["num_results"].(float64); ok {
		out.NumResults = int(n)
	} else {
		out.NumResults = len(out.Results)
	}
	return out
}
