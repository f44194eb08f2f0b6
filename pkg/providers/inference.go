package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// InferenceCompleter speaks the Hugging Face text-inference shape: a single
// instruction-wrapped prompt in, a "generated_text" payload out. The prompt
// wrapping follows the Mixtral instruct format.
type InferenceCompleter struct {
	apiToken string
	url      string
	client   *http.Client
}

func NewInferenceCompleter(apiToken, url string, timeout time.Duration) *InferenceCompleter {
	return &InferenceCompleter{
		apiToken: apiToken,
		url:      url,
		client:   &http.Client{Timeout: timeout},
	}
}

func (c *InferenceCompleter) Backend() string { return "inference" }

type inferenceRequest struct {
	Inputs     string              `json:"inputs"`
	Parameters inferenceParameters `json:"parameters"`
}

type inferenceParameters struct {
	Temperature  float64 `json:"temperature"`
	MaxNewTokens int     `json:"max_new_tokens"`
	TopP         float64 `json:"top_p"`
}

type inferenceResult struct {
	GeneratedText string `json:"generated_text"`
}

func (c *InferenceCompleter) Complete(ctx context.Context, req Request) (string, error) {
	payload := inferenceRequest{
		Inputs: fmt.Sprintf("<s>[INST] %s\n%s [/INST]", req.System, req.UserMessage),
		Parameters: inferenceParameters{
			Temperature:  Temperature,
			MaxNewTokens: req.MaxTokens,
			TopP:         TopP,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encoding inference request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building inference request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiToken)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return "", ErrTimeout
		}
		return "", fmt.Errorf("inference request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading inference response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &UpstreamError{Status: resp.StatusCode, Body: string(respBody)}
	}

	var results []inferenceResult
	if err := json.Unmarshal(respBody, &results); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(results) == 0 {
		return "", fmt.Errorf("%w: empty result array", ErrMalformed)
	}

	text := results[0].GeneratedText
	// The model echoes the instruction-wrapped prompt; keep what follows the
	// closing instruction marker.
	if idx := strings.LastIndex(text, "[/INST]"); idx >= 0 {
		text = text[idx+len("[/INST]"):]
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: empty generated text", ErrMalformed)
	}
	return text, nil
}

func isTimeout(err error) bool {
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
