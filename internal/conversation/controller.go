package conversation

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/csheth/buildvision/internal/atlas"
)

// Controller runs the chat state machine: Idle, then Pending while one
// request is outstanding, then Idle again. Safe for concurrent use; the
// in-flight flag guarantees a single outstanding request.
type Controller struct {
	client    atlas.Client
	log       *zap.Logger
	now       func() time.Time
	errorText string

	mu       sync.Mutex
	messages []Message
	pending  bool
	turn     uint64
	errText  string
	input    string
	subs     map[int]func(State)
	nextSub  int
}

// Option customizes a Controller.
type Option func(*Controller)

// WithLogger attaches a logger for turn outcomes.
func WithLogger(log *zap.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

// WithErrorText replaces the generic failure message.
func WithErrorText(text string) Option {
	return func(c *Controller) {
		if strings.TrimSpace(text) != "" {
			c.errorText = text
		}
	}
}

// WithClock overrides the timestamp source for appended messages.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// New returns an idle controller with an empty transcript.
func New(client atlas.Client, opts ...Option) *Controller {
	c := &Controller{
		client:    client,
		log:       zap.NewNop(),
		now:       time.Now,
		errorText: DefaultErrorText,
		subs:      map[int]func(State){},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

// Pending reports whether a request is in flight.
func (c *Controller) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// SetInput stores the pending composer text.
func (c *Controller) SetInput(text string) State {
	c.mu.Lock()
	c.input = text
	state := c.stateLocked()
	c.mu.Unlock()
	c.publish(state)
	return state
}

// Subscribe registers fn to receive every new state. The returned func
// removes the subscription.
func (c *Controller) Subscribe(fn func(State)) func() {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// Begin moves the controller to Pending for text. It reports false, and
// changes nothing, when text is blank or a request is already in flight.
func (c *Controller) Begin(text string) (Turn, bool) {
	question := strings.TrimSpace(text)
	if question == "" {
		return Turn{}, false
	}

	c.mu.Lock()
	if c.pending {
		c.mu.Unlock()
		c.log.Debug("send ignored while a request is in flight")
		return Turn{}, false
	}
	c.turn++
	turn := Turn{ID: c.turn, Question: question}
	c.errText = ""
	c.input = ""
	c.pending = true
	c.messages = append(c.messages, Message{Role: RoleUser, Content: question, At: c.now()})
	state := c.stateLocked()
	c.mu.Unlock()

	c.publish(state)
	return turn, true
}

// Settle applies the endpoint outcome for turn and returns to Idle. On
// failure the turn's question is rolled back and the error text is set.
// A response whose success flag is unset counts as a failure.
func (c *Controller) Settle(turn Turn, resp atlas.Response, err error) State {
	if err == nil && !resp.OK {
		err = atlas.ErrRejected
	}
	c.mu.Lock()
	if !c.pending || turn.ID != c.turn {
		state := c.stateLocked()
		c.mu.Unlock()
		c.log.Warn("settle for unknown turn ignored", zap.Uint64("turn", turn.ID))
		return state
	}
	if err != nil {
		c.rollbackLocked()
		c.errText = c.errorText
		c.log.Warn("chat turn failed", zap.Uint64("turn", turn.ID), zap.Error(err))
	} else {
		sources := resp.Sources
		if sources == nil {
			sources = []atlas.Source{}
		}
		manufacturers := resp.ManufacturersReferenced
		if manufacturers == nil {
			manufacturers = []string{}
		}
		c.messages = append(c.messages, Message{
			Role:          RoleAssistant,
			Content:       resp.Answer,
			Sources:       sources,
			Manufacturers: manufacturers,
			At:            c.now(),
		})
		c.log.Info("chat turn answered",
			zap.Uint64("turn", turn.ID),
			zap.Int("sources", len(sources)),
			zap.Int("manufacturers", len(manufacturers)),
		)
	}
	c.pending = false
	state := c.stateLocked()
	c.mu.Unlock()

	c.publish(state)
	return state
}

// Send runs a whole turn on the calling goroutine. It reports false when
// the guard rejected text; the returned state is current either way.
func (c *Controller) Send(ctx context.Context, text string) (State, bool) {
	turn, ok := c.Begin(text)
	if !ok {
		return c.Snapshot(), false
	}
	resp, err := c.client.Chat(ctx, turn.Question)
	return c.Settle(turn, resp, err), true
}

// Ask performs the endpoint call for a turn started with Begin. Front ends
// that schedule work themselves call Ask off the UI loop, then Settle.
func (c *Controller) Ask(ctx context.Context, turn Turn) (atlas.Response, error) {
	return c.client.Chat(ctx, turn.Question)
}

// rollbackLocked drops the most recent message when it is the pending
// user question.
func (c *Controller) rollbackLocked() {
	n := len(c.messages)
	if n == 0 || c.messages[n-1].Role != RoleUser {
		return
	}
	c.messages = c.messages[:n-1]
}

func (c *Controller) stateLocked() State {
	return State{
		Messages: append([]Message(nil), c.messages...),
		Pending:  c.pending,
		Err:      c.errText,
		Input:    c.input,
	}
}

func (c *Controller) publish(state State) {
	c.mu.Lock()
	subs := make([]func(State), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.mu.Unlock()
	for _, fn := range subs {
		fn(state)
	}
}
