package store

import (
	"encoding/json"
	"log"
	"time"

	"github.com/hanoivivu/assistant/internal/model/chat"
)

const (
	// DefaultKey matches the storage key the web widget has always used.
	DefaultKey = "hanoivivu_chat_history"
	// DefaultTTL is how long an idle conversation stays resumable.
	DefaultTTL = 15 * time.Minute
)

// Config carries the knobs that used to live as module-level constants in
// the widget: the storage key and the idle expiry.
type Config struct {
	Key string
	TTL time.Duration
}

// SessionStore is a durable, expiring cache of one conversation.
type SessionStore struct {
	storage Storage
	cfg     Config
}

// NewSessionStore wires a SessionStore to the given storage backend,
// filling defaults for zero-value config fields.
func NewSessionStore(storage Storage, cfg Config) *SessionStore {
	if cfg.Key == "" {
		cfg.Key = DefaultKey
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	return &SessionStore{storage: storage, cfg: cfg}
}

// Load returns the persisted session, or false when no usable session
// exists. Expired and corrupt entries are deleted so the next visit
// restarts from the greeting instead of crashing on bad local state.
func (s *SessionStore) Load() (*chat.Session, bool) {
	raw, ok, err := s.storage.Get(s.cfg.Key)
	if err != nil {
		log.Printf("[store] failed to read session: %v", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var session chat.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		log.Printf("[store] discarding corrupt session: %v", err)
		s.Clear()
		return nil, false
	}

	if time.Since(session.LastMessageTime) > s.cfg.TTL {
		s.Clear()
		return nil, false
	}

	return &session, true
}

// Save stamps the session's last-activity time and persists it. Storage
// failures are logged and swallowed: losing one write must never
// interrupt the conversation.
func (s *SessionStore) Save(session *chat.Session) {
	session.LastMessageTime = time.Now()

	data, err := json.Marshal(session)
	if err != nil {
		log.Printf("[store] failed to serialize session: %v", err)
		return
	}
	if err := s.storage.Set(s.cfg.Key, string(data)); err != nil {
		log.Printf("[store] failed to persist session: %v", err)
	}
}

// Clear deletes the persisted session unconditionally.
func (s *SessionStore) Clear() {
	if err := s.storage.Remove(s.cfg.Key); err != nil {
		log.Printf("[store] failed to clear session: %v", err)
	}
}
