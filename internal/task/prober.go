package task

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/phrazzld/boundq/internal/redact"
)

// ErrUnexpectedStatus is matched by a *StatusError.
var ErrUnexpectedStatus = errors.New("unexpected status code")

// StatusError reports a probe whose response status was at or above the
// configured threshold.
type StatusError struct {
	StatusCode int
	Threshold  int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d (expected below %d)", ErrUnexpectedStatus, e.StatusCode, e.Threshold)
}

// Is lets errors.Is match ErrUnexpectedStatus.
func (e *StatusError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}

// ProbeResult is the outcome of a successful probe.
type ProbeResult struct {
	StatusCode int   `json:"status_code"`
	LatencyMS  int64 `json:"latency_ms"`
}

// ProberConfig holds the request settings of a Prober.
type ProberConfig struct {
	Method            string
	Timeout           time.Duration
	UserAgent         string
	ExpectStatusBelow int
}

// DefaultProberConfig returns a ProberConfig with reasonable defaults
func DefaultProberConfig() ProberConfig {
	return ProberConfig{
		Method:            http.MethodHead,
		Timeout:           10 * time.Second,
		UserAgent:         "boundq-probe/1.0",
		ExpectStatusBelow: 400,
	}
}

// Prober checks that a task's target answers an HTTP request with an
// acceptable status. Probe has the signature of a queue worker.
type Prober struct {
	client *http.Client
	config ProberConfig
	logger *slog.Logger
}

// NewProber creates a Prober. A nil client uses a new http.Client; the
// per-request timeout is applied through the request context.
func NewProber(config ProberConfig, client *http.Client, logger *slog.Logger) *Prober {
	if client == nil {
		client = &http.Client{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	if config.Method == "" {
		config.Method = http.MethodHead
	}
	return &Prober{
		client: client,
		config: config,
		logger: logger.With("component", "prober"),
	}
}

// Probe issues one request to task.Target.
func (p *Prober) Probe(ctx context.Context, task Task) (ProbeResult, error) {
	if p.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.config.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, p.config.Method, task.Target, nil)
	if err != nil {
		return ProbeResult{}, fmt.Errorf("failed to build probe request: %w", err)
	}
	if p.config.UserAgent != "" {
		req.Header.Set("User-Agent", p.config.UserAgent)
	}

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		return ProbeResult{}, fmt.Errorf("probe request failed: %w", err)
	}
	defer resp.Body.Close()
	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	result := ProbeResult{
		StatusCode: resp.StatusCode,
		LatencyMS:  time.Since(start).Milliseconds(),
	}

	p.logger.Debug("probe completed",
		"task_id", task.ID,
		"target", redact.URL(task.Target),
		"status_code", result.StatusCode,
		"latency_ms", result.LatencyMS)

	if p.config.ExpectStatusBelow > 0 && resp.StatusCode >= p.config.ExpectStatusBelow {
		return result, &StatusError{StatusCode: resp.StatusCode, Threshold: p.config.ExpectStatusBelow}
	}
	return result, nil
}

// FailureMessage renders err for a task record or a published event. Transport
// errors drop the request URL, and the remainder is redacted.
func FailureMessage(err error) string {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return redact.String(fmt.Sprintf("probe request failed: %v", urlErr.Err))
	}
	return redact.Error(err)
}
