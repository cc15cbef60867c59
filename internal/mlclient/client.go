// Package mlclient is the typed client for the remote scoring delegate.
package mlclient

import (
	"context"
	"errors"
	"fmt"

	"github.com/AdadaEdu/ClassificadorDeEmaisComHuggingFace/internal/mltransport"
	"golang.org/x/time/rate"
)

// ErrUnavailable indicates the scoring delegate is unreachable.
var ErrUnavailable = errors.New("scoring delegate unavailable")

// ErrRateLimited is returned when the call context ends while waiting for
// the client-side rate limiter.
var ErrRateLimited = errors.New("scoring delegate rate limit exceeded")

// Client is an HTTP client for the scoring delegate.
type Client struct {
	baseURL string
	limiter *rate.Limiter
}

// ClassifyResponse is the response body from /classify. Category is a raw
// token; callers validate it against the closed category set.
type ClassifyResponse struct {
	Category      string             `json:"category"`
	Confidence    float64            `json:"confidence"`
	Rationale     string             `json:"rationale"`
	Tier          string             `json:"tier"`
	Probabilities map[string]float64 `json:"probabilities,omitempty"`
}

// Option configures a Client.
type Option func(*Client)

// WithRateLimit caps outgoing classify calls at rps with the given burst.
// A non-positive rps disables limiting; a non-positive burst defaults to rps.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst <= 0 {
			burst = max(int(rps), 1)
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// NewClient creates a new delegate client.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{baseURL: baseURL}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the delegate address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Classify sends the raw text to the delegate.
func (c *Client) Classify(ctx context.Context, text string) (*ClassifyResponse, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRateLimited, err)
		}
	}

	req := &mltransport.ClassifyRequest{Text: text}
	var result ClassifyResponse
	if _, _, err := mltransport.DoClassify(ctx, c.baseURL, req, &result); err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}
	return &result, nil
}

// Health checks if the delegate is healthy.
func (c *Client) Health(ctx context.Context) error {
	reachable, _, _, err := mltransport.DoHealth(ctx, c.baseURL)
	if err != nil {
		if !reachable {
			return fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		return err
	}
	return nil
}
