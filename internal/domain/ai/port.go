package ai

import (
	"context"
	"errors"
)

// ErrQuotaExceeded indicates the AI provider rejected the call with a quota or rate limit (HTTP 429).
var ErrQuotaExceeded = errors.New("ai quota exceeded")

// Generator turns a prompt into generated text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
