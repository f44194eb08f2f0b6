package providers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// ChatCompleter speaks the OpenAI-compatible chat-completions shape used by
// Together. The system instructions and the user message are sent as two
// ordered turns.
type ChatCompleter struct {
	client  openai.Client
	model   string
	timeout time.Duration
}

func NewChatCompleter(apiKey, baseURL, model string, timeout time.Duration) *ChatCompleter {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &ChatCompleter{
		client:  openai.NewClient(opts...),
		model:   model,
		timeout: timeout,
	}
}

func (c *ChatCompleter) Backend() string { return "chat" }

func (c *ChatCompleter) Complete(ctx context.Context, req Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			openai.UserMessage(req.UserMessage),
		},
		Temperature: openai.Float(Temperature),
		TopP:        openai.Float(TopP),
		MaxTokens:   openai.Int(int64(req.MaxTokens)),
	})
	if err != nil {
		return "", mapChatError(err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", ErrMalformed)
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("%w: empty completion text", ErrMalformed)
	}
	return text, nil
}

func mapChatError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	var apierr *openai.Error
	if errors.As(err, &apierr) {
		return &UpstreamError{Status: apierr.StatusCode, Body: apierr.Error()}
	}
	return fmt.Errorf("chat completion: %w", err)
}
