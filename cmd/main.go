package main

import (
	"context"
	"net/http"
	"time"

	"hermes/internal/adapters/ai"
	"hermes/internal/adapters/config"
	"hermes/internal/adapters/errors/noop"
	"hermes/internal/adapters/errors/sentry"
	"hermes/internal/metrics"
	"hermes/internal/ratelimit"
	"hermes/internal/server"
	"hermes/internal/tools"
	"hermes/pkg/errors"
	"hermes/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger
	if err := logger.Init(cfg.App.LogLevel, cfg.App.Env); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	defer logger.Sync()

	log := logger.Get()
	log.Infof("Starting %s in %s mode", cfg.App.Name, cfg.App.Env)

	// Initialize error tracker
	errorTracker := initErrorTracker(cfg, log)
	logger.SetErrorTracker(errorTracker)
	defer errorTracker.Flush(context.Background())

	// Metrics exposition is opt-in; stdio deployments usually run without it
	metrics.Init()
	if cfg.Metrics.Addr != "" {
		startMetricsListener(cfg.Metrics.Addr, log)
	}

	// Upstream client; a missing key degrades per-request instead of failing startup
	if cfg.GLM.APIKey == "" {
		log.Warn("GLM_API_KEY is not set; tool calls will fail until it is configured")
	}
	client := ai.NewClient(cfg.GLM, log)

	if cfg.GLM.APIKey != "" {
		probeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := client.TestConnection(probeCtx); err != nil {
			log.Warnf("GLM API connection test failed, continuing in degraded mode: %v", err)
		} else {
			log.Info("GLM API connection verified")
		}
		cancel()
	}

	// Request pipeline and MCP server
	limiter := ratelimit.NewSlidingWindow(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window)
	log.Infof("Rate limit: %d requests per %s", cfg.RateLimit.MaxRequests, cfg.RateLimit.Window)

	pipeline := server.NewPipeline(limiter, tools.NewDefaultRegistry(), client, log)

	srv, err := server.New(cfg.App, pipeline, log)
	if err != nil {
		log.Fatalf("Failed to construct MCP server: %v", err)
	}

	// Serve blocks until the client disconnects or the process is signalled
	if err := srv.Serve(); err != nil {
		log.Fatalf("MCP server terminated: %v", err)
	}

	log.Info("Shutdown complete")
}

// initErrorTracker initializes error tracking (Sentry or no-op)
func initErrorTracker(cfg *config.Config, log *logger.Logger) errors.Tracker {
	if !cfg.ErrorTracking.Enabled || cfg.ErrorTracking.SentryDSN == "" {
		log.Info("Error tracking disabled")
		return noop.New()
	}

	tracker, err := sentry.New(cfg.ErrorTracking.SentryDSN, cfg.ErrorTracking.Environment)
	if err != nil {
		log.Warnf("Failed to initialize Sentry: %v", err)
		return noop.New()
	}

	log.Info("Error tracking initialized (Sentry)")
	return tracker
}

// startMetricsListener serves Prometheus metrics on addr in the background
func startMetricsListener(addr string, log *logger.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())

	go func() {
		log.Infof("Metrics listening on %s", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Warnf("Metrics listener stopped: %v", err)
		}
	}()
}
