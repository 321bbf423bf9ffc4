package schema

import (
	"context"
	"fmt"
	"time"

	"github.com/Karpman-Consulting/DOE2-229RPDGenerator-sub000/internal/infrastructure/resilience"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"
)

// ClientConfig tunes remote schema retrieval.
type ClientConfig struct {
	Timeout   time.Duration
	Retries   int
	MinWait   time.Duration
	MaxWait   time.Duration
	RPS       float64 // <= 0 is unlimited
	UserAgent string

	// A host that fails BreakerFailures times in a row is not contacted
	// again for BreakerCooldown.
	BreakerFailures int
	BreakerCooldown time.Duration
}

// DefaultClientConfig returns the settings used by Load.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Timeout:   30 * time.Second,
		Retries:   3,
		MinWait:   1 * time.Second,
		MaxWait:   30 * time.Second,
		UserAgent: "rpdgen-schema/1.0",

		BreakerFailures: 3,
		BreakerCooldown: time.Minute,
	}
}

// Client fetches schema documents over HTTP.
type Client struct {
	resty   *resty.Client
	limiter *rate.Limiter
	breaker *resilience.Breaker
}

// NewClient builds a resty client on a retrying transport.
func NewClient(cfg ClientConfig) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.Retries
	retryClient.RetryWaitMin = cfg.MinWait
	retryClient.RetryWaitMax = cfg.MaxWait
	retryClient.Logger = nil

	// Retries happen in the transport; resty only shapes requests.
	restyClient := resty.New()
	restyClient.
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "application/json")
	restyClient.SetTransport(retryClient.StandardClient().Transport)

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RPS), max(1, int(cfg.RPS)))
	}
	breaker := resilience.New("schema", resilience.Settings{
		Failures: cfg.BreakerFailures,
		Cooldown: cfg.BreakerCooldown,
	})
	return &Client{resty: restyClient, limiter: limiter, breaker: breaker}
}

// Get returns the body of url. Non-2xx responses are errors.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit error: %w", err)
	}
	var body []byte
	err := c.breaker.Do(func() error {
		resp, err := c.resty.R().SetContext(ctx).Get(url)
		if err != nil {
			return err
		}
		if resp.IsError() {
			return fmt.Errorf("status %d", resp.StatusCode())
		}
		body = resp.Body()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	return body, nil
}
