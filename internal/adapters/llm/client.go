// Package llm wraps the generative-text service used for team summaries.
package llm

import (
	"context"
	"fmt"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// systemPrompt frames every summary request.
const systemPrompt = `You are an NFL analytics assistant writing concise scouting reports
for coaches and analysts. Your tone should be clear, neutral, and
tactically focused. Avoid fluff. Max 2-3 short paragraphs.`

// Client produces free text from a prompt. Implementations may fail or
// return empty text; callers fall back to templated summaries.
type Client interface {
	Summarize(ctx context.Context, prompt string) (string, error)
}

// OpenAI implements Client against the OpenAI chat-completion API.
type OpenAI struct {
	client      *openai.Client
	apiKey      string
	baseURL     string
	model       string
	temperature float32
	maxTokens   int
}

// NewOpenAI builds a client. The API key comes from the OPENAI_API_KEY
// environment variable unless overridden; keys are never read from
// config files.
func NewOpenAI(opts ...Option) (*OpenAI, error) {
	c := &OpenAI{
		apiKey:      os.Getenv("OPENAI_API_KEY"),
		model:       openai.GPT4oMini,
		temperature: 0.4,
		maxTokens:   400,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	cfg := openai.DefaultConfig(c.apiKey)
	if c.baseURL != "" {
		cfg.BaseURL = c.baseURL
	}
	c.client = openai.NewClientWithConfig(cfg)
	return c, nil
}

// Summarize sends one chat-completion request and returns the text.
func (o *OpenAI) Summarize(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Temperature: o.temperature,
		MaxTokens:   o.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCompletion, err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}
