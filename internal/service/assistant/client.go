package assistant

import (
	"context"

	"github.com/hanoivivu/assistant/internal/model/place"
)

// Reply is the assistant service's answer to one user turn.
type Reply struct {
	BotResponse     string          `json:"bot_response"`
	ConversationID  string          `json:"conversation_id,omitempty"`
	SuggestedPlaces []place.Compact `json:"suggested_places,omitempty"`
}

// Client sends one user turn to the assistant service. conversationID is
// empty on the first turn; the service returns the id to carry on
// subsequent calls so it can keep contextual memory.
type Client interface {
	Send(ctx context.Context, message, conversationID string) (Reply, error)
}

// ClientFunc adapts a plain function to the Client interface.
type ClientFunc func(ctx context.Context, message, conversationID string) (Reply, error)

// Send calls f.
func (f ClientFunc) Send(ctx context.Context, message, conversationID string) (Reply, error) {
	return f(ctx, message, conversationID)
}
