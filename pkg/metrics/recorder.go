package metrics

import (
	"time"
)

// Recorder provides high-level methods for recording metrics.
type Recorder struct {
	startTime time.Time
}

var defaultRecorder = &Recorder{startTime: time.Now()}

// DefaultRecorder returns the singleton recorder instance.
func DefaultRecorder() *Recorder {
	return defaultRecorder
}

// RecordModelCall records duration and outcome of one completion request.
func (r *Recorder) RecordModelCall(backend, status string, duration time.Duration) {
	llmRequests.WithLabelValues(backend, status).Inc()
	llmRequestDuration.WithLabelValues(backend, status).Observe(duration.Seconds())
}

// RecordModelError records a completion request error with its kind.
func (r *Recorder) RecordModelError(backend, errorKind string) {
	llmErrors.WithLabelValues(backend, errorKind).Inc()
}

// RecordSafetyVerdict records one safety classification outcome.
func (r *Recorder) RecordSafetyVerdict(severity, tier string, allowed bool) {
	allowedStr := "false"
	if allowed {
		allowedStr = "true"
	}
	safetyVerdicts.WithLabelValues(severity, tier, allowedStr).Inc()
}

// RecordIntentVerdict records one intent classification outcome.
func (r *Recorder) RecordIntentVerdict(verdict string) {
	intentVerdicts.WithLabelValues(verdict).Inc()
}

// RecordMessage records a message crossing a front-end boundary.
func (r *Recorder) RecordMessage(channel, direction string) {
	messagesTotal.WithLabelValues(channel, direction).Inc()
}

// SetSessionsActive updates the live session gauge.
func (r *Recorder) SetSessionsActive(n int) {
	sessionsActive.Set(float64(n))
}

// RecordOnboardingCompleted records a session reaching the ready state.
func (r *Recorder) RecordOnboardingCompleted(tier string) {
	onboardingCompleted.WithLabelValues(tier).Inc()
}

// UpdateUptime updates the application uptime metric.
func (r *Recorder) UpdateUptime() {
	uptimeGauge.Set(time.Since(r.startTime).Seconds())
}
