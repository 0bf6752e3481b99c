package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/hanoivivu/assistant/internal/model/place"
	assistantService "github.com/hanoivivu/assistant/internal/service/assistant"
)

type stubResponder struct {
	reply assistantService.Reply
	err   error
}

func (s stubResponder) Respond(context.Context, string, string) (assistantService.Reply, error) {
	return s.reply, s.err
}

func setupRouter(responder Responder) *chi.Mux {
	r := chi.NewRouter()
	New(responder).RegisterRoutes(r)
	return r
}

func postMessage(r http.Handler, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/assistant/messages", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestSendMessageSuccess(t *testing.T) {
	r := setupRouter(stubResponder{reply: assistantService.Reply{
		BotResponse:     "Phở Bát Đàn mở từ 6h sáng.",
		ConversationID:  "conv-1",
		SuggestedPlaces: []place.Compact{{ID: 3, Name: "Phố cổ Hà Nội"}},
	}})

	payload, _ := json.Marshal(map[string]string{"message": "ăn phở ở đâu?"})
	resp := postMessage(r, payload)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var reply assistantService.Reply
	if err := json.Unmarshal(resp.Body.Bytes(), &reply); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if reply.ConversationID != "conv-1" || len(reply.SuggestedPlaces) != 1 {
		t.Fatalf("unexpected reply: %+v", reply)
	}
}

func TestSendMessageEmptyText(t *testing.T) {
	r := setupRouter(stubResponder{})

	payload, _ := json.Marshal(map[string]string{"message": "   "})
	if resp := postMessage(r, payload); resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestSendMessageInvalidBody(t *testing.T) {
	r := setupRouter(stubResponder{})

	if resp := postMessage(r, []byte("{not json")); resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestSendMessageResponderError(t *testing.T) {
	r := setupRouter(stubResponder{err: errors.New("model timeout")})

	payload, _ := json.Marshal(map[string]string{"message": "xin chào"})
	if resp := postMessage(r, payload); resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
}

func TestSendMessageNoResponder(t *testing.T) {
	r := setupRouter(nil)

	payload, _ := json.Marshal(map[string]string{"message": "xin chào"})
	if resp := postMessage(r, payload); resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
}
