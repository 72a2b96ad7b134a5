package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/GoSim-25-26J-441/chat-gateway/internal/gateway/domain"
)

// InferenceClient forwards prompts to the downstream inference service.
// It holds no per-request state and is safe for concurrent use.
type InferenceClient struct {
	baseURL    string
	httpClient *http.Client
	logger     Logger
	metrics    *Metrics
}

type Option func(*InferenceClient)

// WithTimeout replaces the default 60s call timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *InferenceClient) {
		hc := *c.httpClient
		hc.Timeout = d
		c.httpClient = &hc
	}
}

// WithHTTPClient replaces the underlying HTTP client entirely.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *InferenceClient) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func WithLogger(l Logger) Option {
	return func(c *InferenceClient) {
		if l != nil {
			c.logger = l
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(c *InferenceClient) {
		c.metrics = m
	}
}

// NewInferenceClient creates a client for the service at baseURL.
func NewInferenceClient(baseURL string, opts ...Option) *InferenceClient {
	c := &InferenceClient{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{
			Timeout: DownstreamTimeout,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		logger: NopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Timeout is the bound applied to each downstream call.
func (c *InferenceClient) Timeout() time.Duration {
	return c.httpClient.Timeout
}

// RunURL is the full URL prompts are posted to.
func (c *InferenceClient) RunURL() string {
	return c.baseURL + RunPath
}

// Run posts prompt to the inference service and returns its JSON reply.
// Failures are one of *domain.DownstreamStatusError, *domain.TransportError
// or *domain.UnexpectedError.
func (c *InferenceClient) Run(ctx context.Context, prompt string) (json.RawMessage, error) {
	const op = "run"
	c.logger.LogInfo(ctx, op, "received prompt", "prompt", prompt)

	start := time.Now()
	data, outcome, err := c.run(ctx, op, prompt)
	c.metrics.recordDownstreamCall(time.Since(start), outcome)
	if err != nil {
		c.logger.LogError(ctx, op, err, "outcome", outcome)
		return nil, err
	}
	return data, nil
}

func (c *InferenceClient) run(ctx context.Context, op, prompt string) (json.RawMessage, string, error) {
	url := c.RunURL()

	payload, err := json.Marshal(domain.RunRequest{Prompt: prompt})
	if err != nil {
		return nil, OutcomeUnexpectedError, &domain.UnexpectedError{Err: fmt.Errorf("marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, OutcomeUnexpectedError, &domain.UnexpectedError{Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, OutcomeTransportError, &domain.TransportError{URL: url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.LogInfo(ctx, op, "downstream response status", "status", resp.StatusCode)

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, OutcomeTransportError, &domain.TransportError{URL: url, Err: fmt.Errorf("read response body: %w", err)}
	}
	if len(body) > maxBodyBytes {
		return nil, OutcomeUnexpectedError, &domain.UnexpectedError{
			Err: fmt.Errorf("response body from %s exceeds %d MiB (status %d)", url, maxBodyBytes>>20, resp.StatusCode),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, OutcomeDownstreamError, &domain.DownstreamStatusError{
			StatusCode: resp.StatusCode,
			URL:        url,
			Body:       string(body),
		}
	}

	var data json.RawMessage
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, OutcomeUnexpectedError, &domain.UnexpectedError{Err: fmt.Errorf("decode response: %w", err)}
	}
	c.logger.LogInfo(ctx, op, "downstream response data", "data", data)

	return data, OutcomeSuccess, nil
}
