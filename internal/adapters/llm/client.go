// Package llm wraps an OpenAI-compatible chat completion endpoint behind
// the single Complete surface the domain packages depend on.
package llm

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/okian/moniker/pkg/metrics"
)

// Default client configuration constants.
const (
	defaultModel       = "gpt-4.1-nano"
	defaultMaxTokens   = 300
	defaultTemperature = 0.8
	apiKeyEnv          = "OPENAI_API_KEY" //nolint:gosec // env var name, not a credential
)

// Client issues chat completion requests against a configurable base URL
// and model. Without an API key the client is disabled and every call
// returns ErrDisabled, which callers treat as a signal to use their
// offline fallbacks.
type Client struct {
	api         openai.Client
	model       string
	baseURL     string
	apiKey      string
	maxTokens   int64
	temperature float64
	disabled    bool
}

// New creates a chat completion client with configuration options.
func New(opts ...Option) *Client {
	c := &Client{
		model:       defaultModel,
		apiKey:      os.Getenv(apiKeyEnv),
		maxTokens:   defaultMaxTokens,
		temperature: defaultTemperature,
	}

	// Apply all options
	for _, opt := range opts {
		opt(c)
	}

	if c.apiKey == "" {
		c.disabled = true
		return c
	}

	reqOpts := []option.RequestOption{option.WithAPIKey(c.apiKey)}
	if c.baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(c.baseURL))
	}
	c.api = openai.NewClient(reqOpts...)

	return c
}

// Enabled reports whether the client holds an API key.
func (c *Client) Enabled() bool {
	return !c.disabled
}

// Complete sends prompt as a single user message and returns the raw
// model output.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if c.disabled {
		return "", ErrDisabled
	}

	start := time.Now()
	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		MaxTokens:   openai.Int(c.maxTokens),
		Temperature: openai.Float(c.temperature),
	})
	metrics.RecordLLMRequest(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordLLMError()
		return "", fmt.Errorf("%w: %v", ErrCompletion, err)
	}
	if len(resp.Choices) == 0 {
		metrics.RecordLLMError()
		return "", fmt.Errorf("%w: empty choices", ErrCompletion)
	}

	return resp.Choices[0].Message.Content, nil
}
