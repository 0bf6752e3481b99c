package assistant

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/hanoivivu/assistant/internal/model/chat"
	"github.com/hanoivivu/assistant/internal/model/place"
	"github.com/hanoivivu/assistant/internal/store"
)

// maxSuggestions caps how many place cards one assistant turn may carry.
const maxSuggestions = 3

var (
	// ErrEmptyMessage rejects input that is blank after trimming.
	ErrEmptyMessage = errors.New("message text is empty")
	// ErrSendInFlight rejects a send while another one is outstanding.
	ErrSendInFlight = errors.New("a send is already in flight")
)

// State is the controller's send-cycle phase.
type State int

const (
	// StateIdle means the controller is waiting for user input.
	StateIdle State = iota
	// StateSending means a remote call is outstanding; further sends are
	// rejected until it completes.
	StateSending
)

// Listener receives a state snapshot after every controller mutation.
type Listener func(Snapshot)

// Snapshot is an immutable view of the controller state handed to
// subscribers and transports.
type Snapshot struct {
	State          State          `json:"state"`
	Messages       []chat.Message `json:"messages"`
	ConversationID string         `json:"conversationId,omitempty"`
}

// Controller is the single source of truth for one live conversation. It
// mediates between user input, the assistant service, and the local
// fallback responder, and persists every mutation through the session
// store.
type Controller struct {
	mu         sync.Mutex
	store      *store.SessionStore
	client     Client
	state      State
	session    *chat.Session
	generation int
	listeners  []Listener
}

// NewController restores the persisted session if one is still valid, or
// starts fresh from the greeting.
func NewController(sessions *store.SessionStore, client Client) *Controller {
	c := &Controller{store: sessions, client: client, state: StateIdle}
	if restored, ok := sessions.Load(); ok {
		c.session = restored
	} else {
		c.session = chat.NewSession(time.Now())
	}
	return c
}

// SendMessage appends the user's turn, asks the assistant service for a
// reply, and appends exactly one assistant turn whatever the remote
// outcome: a genuine reply on success, a canned fallback on any failure.
// Empty input and concurrent sends are rejected with the sentinel errors
// above; callers treat both as no-ops.
func (c *Controller) SendMessage(ctx context.Context, text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ErrEmptyMessage
	}

	c.mu.Lock()
	if c.state == StateSending {
		c.mu.Unlock()
		return ErrSendInFlight
	}
	c.state = StateSending
	generation := c.generation
	c.session.Append(chat.Message{Text: trimmed, IsUser: true, Timestamp: time.Now()})
	// Persist before the remote call so a restart mid-flight keeps the
	// outbound message.
	c.persistLocked()
	conversationID := c.session.ConversationID
	c.mu.Unlock()
	c.notify()

	reply, err := c.client.Send(ctx, trimmed, conversationID)

	c.mu.Lock()
	msg := chat.Message{Timestamp: time.Now()}
	if err != nil {
		log.Printf("[assistant] remote send failed, falling back: %v", err)
		msg.Text = FallbackReply(trimmed)
	} else {
		msg.Text = reply.BotResponse
		msg.SuggestedPlaces = clampSuggestions(reply.SuggestedPlaces)
		// A reply that raced a reset belongs to a conversation the
		// service no longer shares with this session, so the stale
		// continuity token is not adopted. The message itself is still
		// shown; the widget is not safety critical.
		if generation == c.generation && reply.ConversationID != "" {
			c.session.ConversationID = reply.ConversationID
		}
	}
	c.session.Append(msg)
	c.persistLocked()
	c.state = StateIdle
	c.mu.Unlock()
	c.notify()

	return nil
}

// Reset discards the persisted and in-memory conversation and starts over
// from the greeting. Safe to call while a send is in flight; the pending
// call is not cancelled and its late reply lands on the fresh session.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.store.Clear()
	c.session = chat.NewSession(time.Now())
	c.generation++
	c.mu.Unlock()
	c.notify()
}

// Subscribe registers a listener and immediately delivers the current
// snapshot so new transports can render without waiting for a mutation.
func (c *Controller) Subscribe(listener Listener) {
	c.mu.Lock()
	c.listeners = append(c.listeners, listener)
	c.mu.Unlock()
	listener(c.Current())
}

// Current returns a snapshot of the live state.
func (c *Controller) Current() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	messages := make([]chat.Message, len(c.session.Messages))
	copy(messages, c.session.Messages)
	return Snapshot{
		State:          c.state,
		Messages:       messages,
		ConversationID: c.session.ConversationID,
	}
}

// persistLocked writes the session through the store. Sessions holding
// only the greeting are skipped so a first render never writes.
func (c *Controller) persistLocked() {
	if len(c.session.Messages) <= 1 {
		return
	}
	c.store.Save(c.session)
}

func (c *Controller) notify() {
	snapshot := c.Current()
	c.mu.Lock()
	listeners := append([]Listener(nil), c.listeners...)
	c.mu.Unlock()
	for _, listener := range listeners {
		listener(snapshot)
	}
}

// clampSuggestions keeps at most maxSuggestions well-formed entries,
// coercing a missing or malformed list to none at all.
func clampSuggestions(places []place.Compact) []place.Compact {
	if len(places) == 0 {
		return nil
	}
	if len(places) > maxSuggestions {
		places = places[:maxSuggestions]
	}
	kept := make([]place.Compact, 0, len(places))
	for _, p := range places {
		if p.ID == 0 || p.Name == "" {
			continue
		}
		kept = append(kept, p)
	}
	if len(kept) == 0 {
		return nil
	}
	return kept
}
