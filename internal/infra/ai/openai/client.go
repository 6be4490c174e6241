package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/bryanwahyu/lexguard/internal/domain/ai"
	"github.com/bryanwahyu/lexguard/internal/infra/ai/prompt"
)

const (
	maxTokens    = 2048
	defaultModel = "gemini-1.5-flash"
)

// Client talks to any OpenAI-compatible chat completion API. With a Gemini
// key and base URL it reaches Gemini's OpenAI endpoint.
type Client struct {
	*openai.Client
	Model string
}

// NewClient builds a client; timeout <= 0 leaves requests bounded only by their context.
func NewClient(apiKey, baseURL, model string, timeout time.Duration) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if timeout > 0 {
		cfg.HTTPClient = &http.Client{Timeout: timeout}
	}
	return &Client{Client: openai.NewClientWithConfig(cfg), Model: model}
}

func (c *Client) model() string {
	if c.Model == "" {
		return defaultModel
	}
	return c.Model
}

// Generate implements ai.Generator.
func (c *Client) Generate(ctx context.Context, text string) (string, error) {
	req := c.request([]openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: text},
	})
	return c.complete(ctx, req)
}

// Analyze implements analysis.Analyzer; it returns the raw JSON text.
func (c *Client) Analyze(ctx context.Context, documentText string) (string, error) {
	req := c.request([]openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: prompt.GetSystemPrompt()},
		{Role: openai.ChatMessageRoleUser, Content: prompt.GetUserPrompt(documentText)},
	})
	req.ResponseFormat = &openai.ChatCompletionResponseFormat{
		Type: openai.ChatCompletionResponseFormatTypeJSONObject,
	}
	return c.complete(ctx, req)
}

func (c *Client) request(messages []openai.ChatCompletionMessage) openai.ChatCompletionRequest {
	model := c.model()
	req := openai.ChatCompletionRequest{Model: model, Messages: messages}
	// For reasoning models (o1/o3/o4/gpt-5*) use MaxCompletionTokens instead of MaxTokens
	if strings.HasPrefix(model, "o1") || strings.HasPrefix(model, "o3") || strings.HasPrefix(model, "o4") || strings.HasPrefix(model, "gpt-5") {
		req.MaxCompletionTokens = maxTokens
	} else {
		req.MaxTokens = maxTokens
	}
	return req
}

func (c *Client) complete(ctx context.Context, req openai.ChatCompletionRequest) (string, error) {
	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
			return "", fmt.Errorf("%w: %v", ai.ErrQuotaExceeded, err)
		}
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
