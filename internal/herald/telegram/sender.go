// Package telegram delivers HTML messages through the Telegram Bot API.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the Bot API root.
	DefaultBaseURL = "https://api.telegram.org"
	// DefaultMessagesPerMinute stays under the per-chat limit of 20 messages a minute.
	DefaultMessagesPerMinute = 20

	defaultTimeout         = 15 * time.Second
	defaultMaxRetries      = 3
	defaultInitialInterval = time.Second
)

// DeliveryResult is the outcome of one message.
type DeliveryResult struct {
	Index     int
	MessageID int64
	// Err wraps ErrDeliveryFailed, or is nil on success.
	Err error
}

// Failed counts results with an error.
func Failed(results []DeliveryResult) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

// Sender posts messages with sendMessage, paced by a rate limiter.
type Sender struct {
	httpClient      *http.Client
	baseURL         string
	token           string
	limiter         ratelimit.Limiter
	metrics         Metrics
	logger          *zap.Logger
	maxRetries      uint64
	initialInterval time.Duration
}

// Option configures a Sender.
type Option func(*Sender)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Sender) {
		s.httpClient = c
	}
}

// WithBaseURL points the sender at another Bot API server.
func WithBaseURL(u string) Option {
	return func(s *Sender) {
		s.baseURL = strings.TrimSuffix(u, "/")
	}
}

// WithLimiter replaces the per-minute limiter.
func WithLimiter(l ratelimit.Limiter) Option {
	return func(s *Sender) {
		s.limiter = l
	}
}

// WithRetry sets how often and how soon failed sends are retried.
func WithRetry(maxRetries uint64, initialInterval time.Duration) Option {
	return func(s *Sender) {
		s.maxRetries = maxRetries
		s.initialInterval = initialInterval
	}
}

// NewSender constructs a Sender for the bot identified by token.
func NewSender(token string, messagesPerMinute int, metrics Metrics, logger *zap.Logger, opts ...Option) (*Sender, error) {
	if token == "" {
		return nil, errors.New("telegram bot token is required")
	}
	if metrics == nil {
		return nil, errors.New("telegram metrics is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if messagesPerMinute <= 0 {
		messagesPerMinute = DefaultMessagesPerMinute
	}
	s := &Sender{
		httpClient:      &http.Client{Timeout: defaultTimeout},
		baseURL:         DefaultBaseURL,
		token:           token,
		limiter:         ratelimit.New(messagesPerMinute, ratelimit.Per(time.Minute)),
		metrics:         metrics,
		logger:          logger.Named("telegram"),
		maxRetries:      defaultMaxRetries,
		initialInterval: defaultInitialInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

type sendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
	ErrorCode   int    `json:"error_code"`
	Result      struct {
		MessageID int64 `json:"message_id"`
	} `json:"result"`
	Parameters struct {
		RetryAfter int `json:"retry_after"`
	} `json:"parameters"`
}

// Send delivers msgs to chatID in order. A failed message does not stop the
// rest; once ctx is done the remaining messages fail with its error.
func (s *Sender) Send(ctx context.Context, chatID string, msgs []string) []DeliveryResult {
	results := make([]DeliveryResult, len(msgs))
	for i, msg := range msgs {
		results[i].Index = i
		if err := ctx.Err(); err != nil {
			results[i].Err = fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
			continue
		}
		s.limiter.Take()

		started := time.Now()
		id, err := s.sendWithRetry(ctx, chatID, msg)
		s.metrics.Observe(err, started)
		if err != nil {
			s.logger.Warn("message delivery failed",
				zap.String("chat_id", chatID), zap.Int("index", i), zap.Error(err))
			results[i].Err = fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
			continue
		}
		results[i].MessageID = id
	}
	return results
}

func (s *Sender) sendWithRetry(ctx context.Context, chatID, text string) (int64, error) {
	body, err := json.Marshal(sendMessageRequest{
		ChatID:                chatID,
		Text:                  text,
		ParseMode:             "HTML",
		DisableWebPagePreview: true,
	})
	if err != nil {
		return 0, fmt.Errorf("marshal message: %w", err)
	}

	var id int64
	op := func() error {
		var opErr error
		id, opErr = s.send(ctx, body)
		return opErr
	}
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = s.initialInterval
	if err := backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(exp, s.maxRetries), ctx)); err != nil {
		return 0, err
	}
	return id, nil
}

func (s *Sender) send(ctx context.Context, body []byte) (int64, error) {
	endpoint := s.baseURL + "/bot" + s.token + "/sendMessage"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, backoff.Permanent(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return 0, backoff.Permanent(err)
		}
		// The request URL carries the bot token.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return 0, fmt.Errorf("do request: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	var res apiResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&res)

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return 0, fmt.Errorf("retryable status %d: %s", resp.StatusCode, res.Description)
	case resp.StatusCode != http.StatusOK:
		return 0, backoff.Permanent(fmt.Errorf("status %d: %s", resp.StatusCode, res.Description))
	case decodeErr != nil:
		return 0, backoff.Permanent(fmt.Errorf("decode response: %w", decodeErr))
	case !res.OK:
		return 0, backoff.Permanent(fmt.Errorf("api error %d: %s", res.ErrorCode, res.Description))
	}
	return res.Result.MessageID, nil
}
