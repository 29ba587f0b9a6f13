package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"hermes/internal/adapters/config"
	"hermes/internal/metrics"
	"hermes/pkg/errors"
	"hermes/pkg/logger"
)

const chatCompletionsPath = "/chat/completions"

// Ensure Client implements Generator
var _ Generator = (*Client)(nil)

// Client is a thin request/response mapper to the GLM chat-completions API.
// It performs one call per invocation with a bounded timeout; all retry
// policy lives with the caller (there is none in this system).
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	pacer      *rate.Limiter
	log        *logger.Logger
}

// NewClient creates a GLM API client from configuration.
func NewClient(cfg config.GLMConfig, log *logger.Logger) *Client {
	// Pace outbound calls below the provider limit, burst of 10%
	rps := float64(cfg.ReqPerMinute) / 60.0
	burst := cfg.ReqPerMinute / 10
	if burst < 1 {
		burst = 1
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		pacer:      rate.NewLimiter(rate.Limit(rps), burst),
		log:        log.With("component", "glm_client"),
	}
}

// GenerateText sends one chat completion request and returns the first
// choice's content, trimmed of surrounding whitespace.
func (c *Client) GenerateText(ctx context.Context, req ChatRequest) (content string, err error) {
	start := time.Now()
	defer func() { metrics.RecordUpstreamCall(req.Model, time.Since(start), err) }()

	if c.apiKey == "" {
		return "", errors.Wrap(errors.ErrUpstreamAuth, "GLM API key not configured")
	}

	if err := c.pacer.Wait(ctx); err != nil {
		return "", errors.Wrap(err, "outbound pacing wait cancelled")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", errors.Wrap(err, "marshal chat request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+chatCompletionsPath, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "create HTTP request")
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", classifyTransportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "read chat response")
	}

	if resp.StatusCode != http.StatusOK {
		return "", classifyStatusError(resp.StatusCode, respBody)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", errors.Wrap(err, "unmarshal chat response")
	}

	if len(chatResp.Choices) == 0 {
		return "", errors.Wrap(errors.ErrUpstream, "no content in API response")
	}

	content = strings.TrimSpace(chatResp.Choices[0].Message.Content)
	if content == "" {
		return "", errors.Wrap(errors.ErrUpstream, "no content in API response")
	}

	c.log.Debugw("chat completion succeeded",
		"model", req.Model,
		"prompt_tokens", chatResp.Usage.PromptTokens,
		"completion_tokens", chatResp.Usage.CompletionTokens,
	)

	return content, nil
}

// TestConnection issues a minimal generation call to validate reachability
// and credentials. Failure is a degradation, not a startup error.
func (c *Client) TestConnection(ctx context.Context) error {
	_, err := c.GenerateText(ctx, ChatRequest{
		Model: ModelChat,
		Messages: []Message{
			{Role: RoleUser, Content: "ping"},
		},
		MaxTokens:   5,
		Temperature: 0,
	})
	return err
}

// classifyStatusError maps an upstream HTTP status to the error taxonomy,
// carrying the provider's message when it can be parsed.
func classifyStatusError(status int, body []byte) error {
	detail := string(body)
	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		detail = errResp.Error.Message
	}

	switch {
	case status == http.StatusUnauthorized:
		return errors.Wrapf(errors.ErrUpstreamAuth, "GLM API error (%d): %s", status, detail)
	case status == http.StatusTooManyRequests:
		return errors.Wrapf(errors.ErrUpstreamRateLimited, "GLM API error (%d): %s", status, detail)
	case status >= 500:
		return errors.Wrapf(errors.ErrUpstreamServer, "GLM API error (%d): %s", status, detail)
	default:
		return errors.Wrapf(errors.ErrUpstream, "GLM API error (%d): %s", status, detail)
	}
}

// classifyTransportError distinguishes timeouts from other transport failures.
func classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return errors.Wrap(errors.ErrTimeout, "GLM API call timed out")
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return errors.Wrap(errors.ErrTimeout, "GLM API call timed out")
	}

	return errors.Wrapf(errors.ErrUpstream, "send GLM request: %v", err)
}
