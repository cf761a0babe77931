package ton

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
)

// LogSender only logs requests. Used when no bridge is configured.
type LogSender struct {
	logger *zap.Logger
}

// NewLogSender creates a dry-run sender.
func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger.Named("dry_run")}
}

// Send logs every message of the request.
func (s *LogSender) Send(_ context.Context, req *TransferRequest) error {
	for _, msg := range req.Messages {
		fields := []zap.Field{
			zap.String("request_id", req.ID),
			zap.String("from", req.From),
			zap.String("to", msg.Address),
			zap.String("amount_nano", msg.Amount),
		}
		if msg.Payload != nil {
			fields = append(fields,
				zap.String("op", msg.Payload.Op),
				zap.String("jetton_amount", msg.Payload.JettonAmount))
		}
		s.logger.Info("Transfer request (dry run)", fields...)
	}
	return nil
}

// RetryOptions tunes retries of HTTP calls.
type RetryOptions struct {
	MaxTries        uint
	InitialInterval time.Duration
	MaxElapsedTime  time.Duration
}

func (o RetryOptions) withDefaults() RetryOptions {
	if o.MaxTries == 0 {
		o.MaxTries = 3
	}
	if o.InitialInterval <= 0 {
		o.InitialInterval = 500 * time.Millisecond
	}
	if o.MaxElapsedTime <= 0 {
		o.MaxElapsedTime = 15 * time.Second
	}
	return o
}

func (o RetryOptions) retryOpts(notify backoff.Notify) []backoff.RetryOption {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = o.InitialInterval
	policy.MaxInterval = o.InitialInterval * 10

	return []backoff.RetryOption{
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(o.MaxTries),
		backoff.WithMaxElapsedTime(o.MaxElapsedTime),
		backoff.WithNotify(notify),
	}
}

// BridgeSender posts transfer requests as JSON to a wallet bridge endpoint.
type BridgeSender struct {
	url    string
	client *http.Client
	retry  RetryOptions
	logger *zap.Logger
}

// NewBridgeSender creates a sender for the given bridge URL.
func NewBridgeSender(url string, retry RetryOptions, logger *zap.Logger) *BridgeSender {
	return &BridgeSender{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
		retry:  retry.withDefaults(),
		logger: logger.Named("bridge"),
	}
}

// Send delivers req, retrying network errors, 429 and 5xx responses.
func (s *BridgeSender) Send(ctx context.Context, req *TransferRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal transfer request: %w", err)
	}

	notify := func(err error, d time.Duration) {
		s.logger.Warn("Bridge request failed, retrying",
			zap.String("request_id", req.ID),
			zap.Error(err),
			zap.Duration("backoff", d))
	}

	op := func() (struct{}, error) {
		return struct{}{}, s.post(ctx, body)
	}

	if _, err := backoff.Retry(ctx, op, s.retry.retryOpts(notify)...); err != nil {
		return fmt.Errorf("failed to deliver transfer request %s: %w", req.ID, err)
	}

	s.logger.Info("Transfer request delivered",
		zap.String("request_id", req.ID),
		zap.Int("messages", len(req.Messages)))
	return nil
}

func (s *BridgeSender) post(ctx context.Context, body []byte) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return backoff.Permanent(fmt.Errorf("failed to build request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return checkStatus(resp)
}

// checkStatus turns a non-2xx response into an error, permanent unless the
// status is worth retrying.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	err := fmt.Errorf("unexpected status %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return err
	}
	return backoff.Permanent(err)
}
