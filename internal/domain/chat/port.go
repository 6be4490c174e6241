package chat

import (
	"context"
	"errors"

	"github.com/bryanwahyu/lexguard/internal/domain/analysis"
)

var (
	// ErrEmptyUtterance is returned for blank submissions; nothing is appended.
	ErrEmptyUtterance = errors.New("utterance is empty")
	// ErrPending is returned while an earlier submission is still waiting for
	// its reply. Submissions are rejected, not queued.
	ErrPending = errors.New("a reply is still pending")
)

// Request is what a Responder gets for one user turn. Analysis is nil when no
// document has been analyzed in the session.
type Request struct {
	Utterance string
	Analysis  *analysis.Result
}

// Responder maps an utterance to reply text.
type Responder interface {
	Respond(ctx context.Context, req Request) (string, error)
}

// ResponderFunc adapts a function to a Responder.
type ResponderFunc func(ctx context.Context, req Request) (string, error)

func (f ResponderFunc) Respond(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}
