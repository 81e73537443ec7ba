package api

import "log/slog"

// RequestEvent records metadata about a single API request.
type RequestEvent struct {
	Method    string
	Path      string
	Status    int
	LatencyMs int64
	Success   bool
	ErrorCode string
}

// Observer receives events about API requests for logging and debugging.
type Observer interface {
	OnRequestComplete(event RequestEvent)
}

// SlogObserver writes request events through a structured logger.
type SlogObserver struct {
	log *slog.Logger
}

// NewSlogObserver creates an Observer that logs events to log.
func NewSlogObserver(log *slog.Logger) *SlogObserver {
	return &SlogObserver{log: log}
}

func (o *SlogObserver) OnRequestComplete(event RequestEvent) {
	if event.Success {
		o.log.Debug("api request",
			"method", event.Method,
			"path", event.Path,
			"status", event.Status,
			"latency_ms", event.LatencyMs)
		return
	}
	o.log.Warn("api request failed",
		"method", event.Method,
		"path", event.Path,
		"status", event.Status,
		"latency_ms", event.LatencyMs,
		"error", event.ErrorCode)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnRequestComplete(RequestEvent) {}
