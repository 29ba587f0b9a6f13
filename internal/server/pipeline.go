package server

import (
	"context"
	"time"

	"github.com/google/uuid"

	"hermes/internal/adapters/ai"
	"hermes/internal/metrics"
	"hermes/internal/ratelimit"
	"hermes/internal/tools"
	"hermes/pkg/errors"
	"hermes/pkg/logger"
)

// Pipeline orchestrates one tool invocation: admission, resolution,
// validation, sanitization, dispatch, and output redaction, strictly in
// that order, short-circuiting on the first failure. It owns the limiter,
// the registry, and the upstream client; there are no package-level
// singletons.
type Pipeline struct {
	limiter    *ratelimit.SlidingWindow
	registry   *tools.Registry
	client     ai.Generator
	redactions []RedactionRule
	log        *logger.Logger
}

// NewPipeline wires the pipeline with its owned collaborators.
func NewPipeline(limiter *ratelimit.SlidingWindow, registry *tools.Registry, client ai.Generator, log *logger.Logger) *Pipeline {
	return &Pipeline{
		limiter:    limiter,
		registry:   registry,
		client:     client,
		redactions: DefaultRedactionRules(),
		log:        log.With("component", "pipeline"),
	}
}

// Tools returns the registered tools in registration order.
func (p *Pipeline) Tools() []tools.Tool {
	return p.registry.List()
}

// CallTool runs the full request pipeline for one invocation and returns
// the sanitized response text. Every failure is classified; no failure
// escapes a single request.
func (p *Pipeline) CallTool(ctx context.Context, name string, rawArgs interface{}) (text string, err error) {
	start := time.Now()
	log := p.log.With("request_id", uuid.NewString(), "tool", name)

	defer func() {
		if r := recover(); r != nil {
			err = errors.Wrapf(errors.ErrInternal, "panic in tool %s: %v", name, r)
		}
		metrics.RecordToolCall(name, statusLabel(err), time.Since(start))
		if err != nil {
			log.Warnw("tool call failed", "status", statusLabel(err), "error", err)
		} else {
			log.Infow("tool call succeeded", "duration_ms", time.Since(start).Milliseconds())
		}
	}()

	// Admission
	if !p.limiter.Allow() {
		metrics.RateLimitDenials.Inc()
		return "", errors.Wrapf(errors.ErrRateLimited,
			"try again in %s", p.limiter.TimeUntilReset().Round(time.Second))
	}

	// Resolution
	tool, ok := p.registry.Get(name)
	if !ok {
		return "", errors.Wrapf(errors.ErrNotFound, "unknown tool %q", name)
	}

	// Shape check before schema validation
	args, ok := rawArgs.(map[string]interface{})
	if rawArgs == nil || !ok {
		return "", errors.Wrap(errors.ErrInvalidInput, "arguments must be an object")
	}

	// Schema validation, all violations enumerated
	validated, err := tool.Schema().Validate(args)
	if err != nil {
		return "", err
	}

	// Input sanitization, uniform across tools
	sanitized := sanitizeArgs(validated)

	// Dispatch
	result, err := tool.Run(ctx, sanitized, p.client)
	if err != nil {
		return "", classifyToolError(err)
	}

	// Output redaction
	return redact(result, p.redactions), nil
}

// classifyToolError keeps taxonomy errors as-is and folds anything
// unclassified into the generic internal failure.
func classifyToolError(err error) error {
	for _, sentinel := range []error{
		errors.ErrUpstreamAuth,
		errors.ErrUpstreamRateLimited,
		errors.ErrUpstreamServer,
		errors.ErrUpstream,
		errors.ErrTimeout,
		errors.ErrInvalidInput,
	} {
		if errors.Is(err, sentinel) {
			return err
		}
	}
	return errors.Wrapf(errors.ErrInternal, "%v", err)
}

// statusLabel maps a pipeline outcome to a metrics label.
func statusLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, errors.ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, errors.ErrNotFound):
		return "not_found"
	case errors.Is(err, errors.ErrInvalidInput):
		return "invalid_params"
	default:
		return "error"
	}
}
