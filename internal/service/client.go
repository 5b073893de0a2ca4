package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pageza/nutriscope/backend/internal/metrics"
	"go.uber.org/zap"
)

// Upstream names used in errors, logs and metrics
const (
	UpstreamNutrition    = "nutrition"
	UpstreamAutocomplete = "autocomplete"
	UpstreamRecommend    = "recommend"
	UpstreamFilter       = "filter"
)

// maxErrorBody bounds how much of a failed response body is kept
const maxErrorBody = 2048

// NewHTTPClient returns the client shared by every upstream call
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// upstreamClient sends one request, records metrics and turns failures into *UpstreamError
type upstreamClient struct {
	http    *http.Client
	metrics *metrics.Metrics
	log     *zap.Logger
}

func newUpstreamClient(client *http.Client, m *metrics.Metrics, log *zap.Logger) upstreamClient {
	if client == nil {
		client = http.DefaultClient
	}
	if m == nil {
		m = metrics.NewNop()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return upstreamClient{http: client, metrics: m, log: log}
}

// do sends req and returns the body of a 2xx response. Failures are counted
// here; the caller counts the outcome of decoding a 2xx body with ok or malformed.
func (c upstreamClient) do(upstream string, req *http.Request) ([]byte, error) {
	start := time.Now()
	defer func() {
		c.metrics.UpstreamDuration.WithLabelValues(upstream).Observe(time.Since(start).Seconds())
	}()

	resp, err := c.http.Do(req)
	if err != nil {
		outcome := metrics.OutcomeTransport
		if errors.Is(err, context.Canceled) {
			outcome = metrics.OutcomeCanceled
		}
		c.metrics.UpstreamRequests.WithLabelValues(upstream, outcome).Inc()
		return nil, &UpstreamError{Upstream: upstream, Err: fmt.Errorf("failed to send request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.metrics.UpstreamRequests.WithLabelValues(upstream, metrics.OutcomeHTTPError).Inc()
		c.log.Error("Upstream request failed",
			zap.String("upstream", upstream),
			zap.String("url", req.URL.Redacted()),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
		)
		return nil, &UpstreamError{Upstream: upstream, StatusCode: resp.StatusCode, Body: string(body)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.UpstreamRequests.WithLabelValues(upstream, metrics.OutcomeTransport).Inc()
		return nil, &UpstreamError{Upstream: upstream, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	return body, nil
}

func (c upstreamClient) ok(upstream string) {
	c.metrics.UpstreamRequests.WithLabelValues(upstream, metrics.OutcomeOK).Inc()
}

func (c upstreamClient) malformed(upstream string, cause error) error {
	c.metrics.UpstreamRequests.WithLabelValues(upstream, metrics.OutcomeMalformed).Inc()
	if cause == nil {
		return fmt.Errorf("%s: %w", upstream, ErrMalformedResponse)
	}
	return fmt.Errorf("%s: %w: %v", upstream, ErrMalformedResponse, cause)
}
