package chat

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/bryanwahyu/lexguard/internal/application"
	"github.com/bryanwahyu/lexguard/internal/domain/analysis"
	domain "github.com/bryanwahyu/lexguard/internal/domain/chat"
)

// FallbackReply is appended whenever the responder fails for any reason.
const FallbackReply = "Sorry, I am having trouble connecting to the AI. Please try again later."

// Controller runs the conversation of one session: it appends the user turn,
// asks the responder, and appends the reply or the fallback. At most one
// responder call is in flight per Controller.
type Controller struct {
	log       *domain.Log
	holder    *analysis.Holder
	responder domain.Responder
	clock     application.Clock
	timeout   time.Duration

	pending atomic.Bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithTimeout bounds each responder call. Zero means no extra bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) { c.timeout = d }
}

// WithClock overrides the clock used for message timestamps.
func WithClock(clock application.Clock) Option {
	return func(c *Controller) { c.clock = clock }
}

func NewController(log *domain.Log, holder *analysis.Holder, responder domain.Responder, opts ...Option) *Controller {
	c := &Controller{
		log:       log,
		holder:    holder,
		responder: responder,
		clock:     application.SystemClock{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Turn is the pair of messages produced by one accepted submission.
type Turn struct {
	User  domain.Message `json:"user"`
	Reply domain.Message `json:"reply"`
	// Failed is true when Reply is the fallback message.
	Failed bool `json:"failed"`
}

// Submit handles one user utterance. Blank utterances and submissions made
// while a reply is pending are rejected without touching the log.
func (c *Controller) Submit(ctx context.Context, utterance string) (Turn, error) {
	if strings.TrimSpace(utterance) == "" {
		return Turn{}, domain.ErrEmptyUtterance
	}
	if !c.pending.CompareAndSwap(false, true) {
		return Turn{}, domain.ErrPending
	}
	defer c.pending.Store(false)

	user := c.log.Append(domain.Message{
		Role:      domain.RoleUser,
		Text:      utterance,
		CreatedAt: c.clock.Now(),
	})

	req := domain.Request{Utterance: utterance}
	if current, ok := c.holder.Current(); ok {
		req.Analysis = &current
	}

	text, err := c.respond(ctx, req)
	failed := err != nil
	if failed {
		slog.Warn("responder failed, using fallback reply", "error", err)
		text = FallbackReply
	}

	reply := c.log.Append(domain.Message{
		Role:      domain.RoleAssistant,
		Text:      text,
		CreatedAt: c.clock.Now(),
	})
	return Turn{User: user, Reply: reply, Failed: failed}, nil
}

func (c *Controller) respond(ctx context.Context, req domain.Request) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	text, err := c.responder.Respond(ctx, req)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", errEmptyReply
	}
	return text, nil
}

// Pending reports whether a reply is being waited for.
func (c *Controller) Pending() bool { return c.pending.Load() }

// Messages returns the session's log in display order.
func (c *Controller) Messages() []domain.Message { return c.log.All() }
