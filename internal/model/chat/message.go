package chat

import (
	"time"

	"github.com/hanoivivu/assistant/internal/model/place"
)

// Message is a single conversation turn inside a widget session. The JSON
// shape doubles as the persisted storage layout, so tag names follow the
// widget's storage contract rather than Go conventions.
type Message struct {
	ID              int             `json:"id"`
	Text            string          `json:"text"`
	IsUser          bool            `json:"isUser"`
	Timestamp       time.Time       `json:"timestamp"`
	SuggestedPlaces []place.Compact `json:"suggestedPlaces,omitempty"`
}
