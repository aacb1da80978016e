// Package price fetches fiat quotes from CoinGecko.
package price

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/goodnatureofminers/blockinsight7000-herald/internal/herald/model"
	"go.uber.org/zap"
)

const (
	defaultTimeout         = 10 * time.Second
	defaultMaxRetries      = 3
	defaultInitialInterval = 500 * time.Millisecond
)

// Client queries the simple price API.
type Client struct {
	httpClient      *http.Client
	metrics         Metrics
	logger          *zap.Logger
	maxRetries      uint64
	initialInterval time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithRetry sets how often and how soon failed requests are retried.
func WithRetry(maxRetries uint64, initialInterval time.Duration) Option {
	return func(cl *Client) {
		cl.maxRetries = maxRetries
		cl.initialInterval = initialInterval
	}
}

// NewClient constructs a price Client.
func NewClient(metrics Metrics, logger *zap.Logger, opts ...Option) (*Client, error) {
	if metrics == nil {
		return nil, fmt.Errorf("price metrics is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		httpClient:      &http.Client{Timeout: defaultTimeout},
		metrics:         metrics,
		logger:          logger.Named("price"),
		maxRetries:      defaultMaxRetries,
		initialInterval: defaultInitialInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// GetPrices returns one quote per configured crypto, XEC first. Missing or
// zero quotes fail the whole call.
func (c *Client) GetPrices(ctx context.Context, cfg Config) (prices []model.Price, err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe(err, started)
	}()

	if len(cfg.Cryptos) == 0 {
		return nil, fmt.Errorf("%w: no cryptos configured", ErrPriceUnavailable)
	}
	fiat := strings.ToLower(cfg.Fiat)
	apiURL, err := quoteURL(cfg, fiat)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPriceUnavailable, err)
	}

	var data map[string]map[string]float64
	op := func() error {
		var opErr error
		data, opErr = c.fetch(ctx, apiURL)
		return opErr
	}
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = c.initialInterval
	if err = backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(exp, c.maxRetries), ctx)); err != nil {
		c.logger.Warn("price request failed", zap.String("url", apiURL), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrPriceUnavailable, err)
	}

	prices = make([]model.Price, 0, len(cfg.Cryptos))
	for _, crypto := range cfg.Cryptos {
		quote := data[crypto.Slug][fiat]
		if quote <= 0 {
			return nil, fmt.Errorf("%w: no %s quote for %s", ErrPriceUnavailable, fiat, crypto.Slug)
		}
		p := model.Price{Fiat: fiat, Price: quote, Ticker: crypto.Ticker}
		if crypto.Ticker == "XEC" {
			prices = append([]model.Price{p}, prices...)
			continue
		}
		prices = append(prices, p)
	}
	return prices, nil
}

func quoteURL(cfg Config, fiat string) (string, error) {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	slugs := make([]string, 0, len(cfg.Cryptos))
	for _, crypto := range cfg.Cryptos {
		slugs = append(slugs, crypto.Slug)
	}
	q := u.Query()
	q.Set("ids", strings.Join(slugs, ","))
	q.Set("vs_currencies", fiat)
	q.Set("precision", strconv.Itoa(cfg.Precision))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *Client) fetch(ctx context.Context, apiURL string) (map[string]map[string]float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, backoff.Permanent(err)
		}
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, fmt.Errorf("retryable status %d", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, backoff.Permanent(fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var data map[string]map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("decode response: %w", err))
	}
	return data, nil
}
