package chatbot

import (
	"errors"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Sender identifies who wrote a chat message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// ChatMessage is one entry of a conversation. Messages are never modified
// after they are appended.
type ChatMessage struct {
	ID        int       `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// WelcomeMessage opens every conversation.
const WelcomeMessage = "¡Hola! Soy el asistente virtual de InmoMax. ¿En qué puedo ayudarte hoy?"

// Reply delay bounds of the simulated typing.
const (
	DefaultMinDelay = time.Second
	DefaultMaxDelay = 2 * time.Second
)

var (
	// ErrEmptyMessage is returned for blank input.
	ErrEmptyMessage = errors.New("empty message")
	// ErrTyping is returned while the bot reply to the previous message is pending.
	ErrTyping = errors.New("bot is typing")
)

// QuickReplies are offered before the user writes anything.
var QuickReplies = []string{
	"¿Tienen propiedades en alquiler?",
	"¿Cuáles son sus horarios?",
	"¿Cómo puedo contactarlos?",
	"¿Qué zonas cubren?",
}

// ScheduleFunc runs f after d and returns a function that cancels it.
type ScheduleFunc func(d time.Duration, f func()) (cancel func())

func afterFunc(d time.Duration, f func()) func() {
	t := time.AfterFunc(d, f)
	return func() { t.Stop() }
}

// Conversation is the state of one chat widget session: visibility, the
// append-only message list and the pending bot reply.
//
// Closing the widget does not cancel a pending reply; it is appended while
// the widget is hidden. Shutdown discards pending replies.
type Conversation struct {
	id       string
	table    *Table
	now      func() time.Time
	delay    func() time.Duration
	schedule ScheduleFunc
	notify   func(ChatMessage)

	mu       sync.Mutex
	messages []ChatMessage
	nextID   int
	open     bool
	typing   bool
	closed   bool
	pending  uint64 // sequence number of the latest scheduled reply
	cancel   func()
}

// Option configures a Conversation.
type Option func(*Conversation)

// WithClock sets the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(c *Conversation) { c.now = now }
}

// WithDelay sets the typing delay source.
func WithDelay(delay func() time.Duration) Option {
	return func(c *Conversation) { c.delay = delay }
}

// WithDelayRange draws typing delays uniformly from [min, max).
func WithDelayRange(min, max time.Duration) Option {
	return func(c *Conversation) { c.delay = uniformDelay(min, max) }
}

// WithScheduler sets how delayed replies are run. f may run inline.
func WithScheduler(s ScheduleFunc) Option {
	return func(c *Conversation) { c.schedule = s }
}

// WithNotify registers a callback invoked after every appended message,
// outside the conversation lock.
func WithNotify(fn func(ChatMessage)) Option {
	return func(c *Conversation) { c.notify = fn }
}

// NewConversation starts a session with the welcome message.
func NewConversation(table *Table, opts ...Option) *Conversation {
	c := &Conversation{
		id:       uuid.NewString(),
		table:    table,
		now:      time.Now,
		delay:    uniformDelay(DefaultMinDelay, DefaultMaxDelay),
		schedule: afterFunc,
		nextID:   1,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.appendLocked(WelcomeMessage, SenderBot)
	return c
}

func uniformDelay(min, max time.Duration) func() time.Duration {
	return func() time.Duration {
		if max <= min {
			return min
		}
		return min + rand.N(max-min)
	}
}

// ID identifies the conversation.
func (c *Conversation) ID() string { return c.id }

// Open shows the widget.
func (c *Conversation) Open() {
	c.mu.Lock()
	c.open = true
	c.mu.Unlock()
}

// Close hides the widget. Pending replies still land.
func (c *Conversation) Close() {
	c.mu.Lock()
	c.open = false
	c.mu.Unlock()
}

// IsOpen reports whether the widget is visible.
func (c *Conversation) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// IsTyping reports whether a bot reply is pending.
func (c *Conversation) IsTyping() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.typing
}

// Messages returns a copy of the conversation in order.
func (c *Conversation) Messages() []ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]ChatMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

// QuickReplies returns the suggested first questions, or nil once the user
// has written or a reply is pending.
func (c *Conversation) QuickReplies() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.messages) != 1 || c.typing {
		return nil
	}
	return QuickReplies
}

// Send appends the user's message and schedules the bot reply.
func (c *Conversation) Send(text string) (ChatMessage, error) {
	if strings.TrimSpace(text) == "" {
		return ChatMessage{}, ErrEmptyMessage
	}

	c.mu.Lock()
	if c.typing {
		c.mu.Unlock()
		return ChatMessage{}, ErrTyping
	}
	if c.closed {
		c.mu.Unlock()
		return ChatMessage{}, errors.New("conversation is shut down")
	}
	msg := c.appendLocked(text, SenderUser)
	c.typing = true
	c.pending++
	seq := c.pending
	reply := c.table.Match(text)
	delay := c.delay()
	c.mu.Unlock()

	c.notifyMessage(msg)

	cancel := c.schedule(delay, func() { c.deliver(seq, reply) })
	c.mu.Lock()
	switch {
	case c.closed:
		cancel()
	case c.typing && c.pending == seq:
		c.cancel = cancel
	}
	c.mu.Unlock()

	return msg, nil
}

func (c *Conversation) deliver(seq uint64, text string) {
	c.mu.Lock()
	if c.closed || !c.typing || c.pending != seq {
		c.mu.Unlock()
		return
	}
	msg := c.appendLocked(text, SenderBot)
	c.typing = false
	c.cancel = nil
	c.mu.Unlock()

	c.notifyMessage(msg)
}

// Shutdown discards any pending reply. The conversation accepts no more input.
func (c *Conversation) Shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.typing = false
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Conversation) appendLocked(text string, sender Sender) ChatMessage {
	msg := ChatMessage{
		ID:        c.nextID,
		Text:      text,
		Sender:    sender,
		Timestamp: c.now(),
	}
	c.nextID++
	c.messages = append(c.messages, msg)
	return msg
}

func (c *Conversation) notifyMessage(msg ChatMessage) {
	if c.notify != nil {
		c.notify(msg)
	}
}
