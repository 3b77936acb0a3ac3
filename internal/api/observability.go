package api

import (
	"io"
	"log/slog"
	"time"
)

// RequestEvent records one backend call.
type RequestEvent struct {
	Method    string
	Path      string
	Status    int
	Latency   time.Duration
	RequestID string
	Err       error
}

// Observer receives an event after every request, successful or not.
type Observer interface {
	OnRequest(event RequestEvent)
}

// LogObserver writes request events as slog text lines.
type LogObserver struct {
	logger *slog.Logger
}

func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{logger: slog.New(slog.NewTextHandler(w, nil))}
}

func (o *LogObserver) OnRequest(event RequestEvent) {
	attrs := []any{
		"method", event.Method,
		"path", event.Path,
		"status", event.Status,
		"latency_ms", event.Latency.Milliseconds(),
		"request_id", event.RequestID,
	}
	if event.Err != nil {
		o.logger.Warn("api_request", append(attrs, "error", event.Err.Error())...)
		return
	}
	o.logger.Info("api_request", attrs...)
}

// NoopObserver discards all events.
type NoopObserver struct{}

func (NoopObserver) OnRequest(RequestEvent) {}
