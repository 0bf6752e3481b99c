package widget

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/hanoivivu/assistant/internal/service/assistant"
	"github.com/hanoivivu/assistant/internal/store"
)

// Handler hosts one full widget core per WebSocket connection: a session
// store keyed by the caller's client id, a conversation controller wired
// to the assistant client, and state pushes on every mutation.
type Handler struct {
	storage  store.Storage
	sessions store.Config
	client   assistant.Client
	upgrader websocket.Upgrader
}

// New creates a widget WebSocket handler.
func New(storage store.Storage, sessions store.Config, client assistant.Client) *Handler {
	return &Handler{
		storage:  storage,
		sessions: sessions,
		client:   client,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes registers the widget WebSocket route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/widget/ws/{clientID}", h.handleWebSocket)
}

type inboundMessage struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type outgoingMessage struct {
	Type      string             `json:"type"`
	Data      assistant.Snapshot `json:"data"`
	Timestamp int64              `json:"timestamp"`
}

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientID")
	if clientID == "" {
		clientID = uuid.NewString()
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[widget] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	log.Printf("[widget] new connection for client: %s", clientID)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	sessions := store.NewSessionStore(h.storage, store.Config{
		Key: h.sessions.Key + "-" + clientID,
		TTL: h.sessions.TTL,
	})
	ctrl := assistant.NewController(sessions, h.client)

	// gorilla/websocket allows one concurrent writer, and snapshots
	// arrive from the send goroutines as well as this one.
	var writeMu sync.Mutex
	push := func(snapshot assistant.Snapshot) {
		writeMu.Lock()
		defer writeMu.Unlock()
		msg := outgoingMessage{Type: "state", Data: snapshot, Timestamp: time.Now().UnixMilli()}
		if err := conn.WriteJSON(msg); err != nil {
			log.Printf("[widget] write failed for client %s: %v", clientID, err)
		}
	}
	ctrl.Subscribe(push)

	for {
		select {
		case <-ctx.Done():
			return
		default:
			var msg inboundMessage
			if err := conn.ReadJSON(&msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
					log.Printf("[widget] read error: %v", err)
				}
				return
			}
			h.handleMessage(ctx, ctrl, &msg)
		}
	}
}

// handleMessage dispatches one inbound frame. Precondition violations
// from the controller (empty text, send already in flight) are silent
// no-ops; subscribers simply receive no new state.
func (h *Handler) handleMessage(ctx context.Context, ctrl *assistant.Controller, msg *inboundMessage) {
	switch msg.Type {
	case "message":
		go func() {
			if err := ctrl.SendMessage(ctx, msg.Text); err != nil {
				log.Printf("[widget] send rejected: %v", err)
			}
		}()
	case "reset":
		ctrl.Reset()
	default:
		log.Printf("[widget] unknown message type: %q", msg.Type)
	}
}
