// Package providers implements the gateway to the remote completion service.
// Two wire shapes are supported behind one interface so switching backends
// never touches classifier or prompt logic.
package providers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/factybot/facty/pkg/config"
)

// Sampling settings shared by both backends. Temperature is kept low to
// reduce variance between runs of the same question.
const (
	Temperature = 0.3
	TopP        = 0.85
)

// Request is one completion call: the rendered system instructions, the
// user's message, and the tier's output-token budget.
type Request struct {
	System      string
	UserMessage string
	MaxTokens   int
}

// Completer sends a request to the completion service and returns the
// trimmed reply text. Each call is at-most-once; no retries.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
	Backend() string
}

// Gateway error kinds. Callers map these to tier-appropriate canned
// messages; the raw detail is only for operator logging.
var (
	ErrTimeout   = errors.New("model request timed out")
	ErrMalformed = errors.New("malformed model response")
)

// UpstreamError is a non-success response from the completion service.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error (%d): %s", e.Status, e.Body)
}

// ErrorKind classifies a gateway error for logging and metrics labels.
func ErrorKind(err error) string {
	var upstream *UpstreamError
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.As(err, &upstream):
		return "upstream"
	case errors.Is(err, ErrMalformed):
		return "malformed"
	default:
		return "other"
	}
}

// Create builds the configured backend and decorates it with the outbound
// rate cap and metrics recording.
func Create(cfg *config.Config) (Completer, error) {
	timeout := time.Duration(cfg.Model.TimeoutSeconds) * time.Second

	var base Completer
	switch cfg.Model.Backend {
	case config.BackendChat:
		base = NewChatCompleter(cfg.Model.TogetherAPIKey, cfg.Model.ChatBaseURL, cfg.Model.Name, timeout)
	case config.BackendInference:
		base = NewInferenceCompleter(cfg.Model.HFAPIToken, cfg.Model.InferenceURL, timeout)
	default:
		return nil, fmt.Errorf("unknown model backend %q", cfg.Model.Backend)
	}

	return WithMetrics(WithRateLimit(base, cfg.Model.CallsPerSecond)), nil
}
