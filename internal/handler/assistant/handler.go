package assistant

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	assistantService "github.com/hanoivivu/assistant/internal/service/assistant"
	"github.com/hanoivivu/assistant/pkg/utils"
)

// Responder produces one assistant reply per user turn.
type Responder interface {
	Respond(ctx context.Context, message, conversationID string) (assistantService.Reply, error)
}

// Handler exposes the assistant service contract consumed by the widget.
type Handler struct {
	responder Responder
}

// New creates an assistant handler. responder may be nil when no chat
// model is configured; the endpoint then reports unavailability and the
// widget side falls back to canned replies.
func New(responder Responder) *Handler {
	return &Handler{responder: responder}
}

// RegisterRoutes registers assistant routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/assistant/messages", h.handleSendMessage)
}

func (h *Handler) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Message        string `json:"message"`
		ConversationID string `json:"conversation_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	message := strings.TrimSpace(payload.Message)
	if message == "" {
		utils.RespondError(w, http.StatusBadRequest, "message is required")
		return
	}

	if h.responder == nil {
		utils.RespondError(w, http.StatusServiceUnavailable, "assistant unavailable")
		return
	}

	reply, err := h.responder.Respond(r.Context(), message, payload.ConversationID)
	if err != nil {
		log.Printf("[assistant] failed to generate reply: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to generate reply")
		return
	}

	utils.RespondJSON(w, http.StatusOK, reply)
}
