package providers

import (
	"context"
	"time"

	"github.com/factybot/facty/pkg/metrics"
)

// MetricsWrapper decorates a Completer to record request metrics.
type MetricsWrapper struct {
	Completer
}

// WithMetrics wraps a completer with metrics collection.
func WithMetrics(c Completer) Completer {
	return &MetricsWrapper{c}
}

func (w *MetricsWrapper) Complete(ctx context.Context, req Request) (string, error) {
	start := time.Now()
	text, err := w.Completer.Complete(ctx, req)
	duration := time.Since(start)

	status := "success"
	if err != nil {
		status = "error"
		metrics.DefaultRecorder().RecordModelError(w.Backend(), ErrorKind(err))
	}
	metrics.DefaultRecorder().RecordModelCall(w.Backend(), status, duration)

	return text, err
}
