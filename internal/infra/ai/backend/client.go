package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/bryanwahyu/lexguard/internal/domain/ai"
)

// Client calls a remote thin backend exposing /api/generate and /api/analyze.
type Client struct {
	client *resty.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	c := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)
	return &Client{client: c}
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	GeneratedText string `json:"generated_text"`
}

type analyzeRequest struct {
	DocumentText string `json:"document_text"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Generate implements ai.Generator.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	var out generateResponse
	var fail errorResponse
	res, err := c.client.R().
		SetContext(ctx).
		SetBody(generateRequest{Prompt: prompt}).
		SetResult(&out).
		SetError(&fail).
		Post("/api/generate")
	if err != nil {
		return "", fmt.Errorf("generate request: %w", err)
	}
	if err := statusError(res, fail); err != nil {
		return "", err
	}
	if out.GeneratedText == "" {
		return "", errors.New("generate response has no generated_text")
	}
	return out.GeneratedText, nil
}

// Analyze implements analysis.Analyzer. The body is returned unparsed.
func (c *Client) Analyze(ctx context.Context, documentText string) (string, error) {
	var fail errorResponse
	res, err := c.client.R().
		SetContext(ctx).
		SetBody(analyzeRequest{DocumentText: documentText}).
		SetError(&fail).
		Post("/api/analyze")
	if err != nil {
		return "", fmt.Errorf("analyze request: %w", err)
	}
	if err := statusError(res, fail); err != nil {
		return "", err
	}
	return res.String(), nil
}

func statusError(res *resty.Response, fail errorResponse) error {
	if !res.IsError() {
		return nil
	}
	if res.StatusCode() == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %s", ai.ErrQuotaExceeded, fail.Error)
	}
	msg := fail.Error
	if msg == "" {
		msg = res.Status()
	}
	return fmt.Errorf("backend %s returned %d: %s", res.Request.URL, res.StatusCode(), msg)
}
