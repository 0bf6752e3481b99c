package assistant_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/hanoivivu/assistant/internal/model/place"
	"github.com/hanoivivu/assistant/internal/service/assistant"
	"github.com/hanoivivu/assistant/internal/store"
)

type fakeClient struct {
	mu      sync.Mutex
	calls   int
	reply   assistant.Reply
	err     error
	release chan struct{} // when set, Send blocks until closed
}

func (f *fakeClient) Send(_ context.Context, _, _ string) (assistant.Reply, error) {
	f.mu.Lock()
	f.calls++
	release := f.release
	f.mu.Unlock()

	if release != nil {
		<-release
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reply, f.err
}

func (f *fakeClient) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newController(client assistant.Client) (*assistant.Controller, *store.MemoryStorage) {
	storage := store.NewMemoryStorage()
	sessions := store.NewSessionStore(storage, store.Config{})
	return assistant.NewController(sessions, client), storage
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestSendMessageSuccess(t *testing.T) {
	client := &fakeClient{reply: assistant.Reply{
		BotResponse:     "Hồ Gươm rất đẹp vào sáng sớm.",
		ConversationID:  "conv-1",
		SuggestedPlaces: []place.Compact{{ID: 5, Name: "Hồ Gươm"}},
	}}
	ctrl, _ := newController(client)

	if err := ctrl.SendMessage(context.Background(), "hồ gươm có gì?"); err != nil {
		t.Fatalf("SendMessage err: %v", err)
	}

	snap := ctrl.Current()
	if snap.State != assistant.StateIdle {
		t.Fatal("controller must return to idle")
	}
	if len(snap.Messages) != 3 {
		t.Fatalf("message count: got %d want 3", len(snap.Messages))
	}
	user, bot := snap.Messages[1], snap.Messages[2]
	if !user.IsUser || user.ID != 2 {
		t.Fatalf("unexpected user turn: %+v", user)
	}
	if bot.IsUser || bot.ID != 3 {
		t.Fatalf("unexpected assistant turn: %+v", bot)
	}
	if bot.Text != client.reply.BotResponse {
		t.Fatalf("assistant text: got %q", bot.Text)
	}
	if len(bot.SuggestedPlaces) != 1 || bot.SuggestedPlaces[0].ID != 5 {
		t.Fatalf("unexpected suggestions: %+v", bot.SuggestedPlaces)
	}
	if snap.ConversationID != "conv-1" {
		t.Fatalf("conversation id not adopted: %q", snap.ConversationID)
	}
}

func TestSendMessageClampsSuggestions(t *testing.T) {
	client := &fakeClient{reply: assistant.Reply{
		BotResponse: "Một vài gợi ý cho bạn.",
		SuggestedPlaces: []place.Compact{
			{ID: 1, Name: "Hồ Gươm"},
			{ID: 0, Name: "thiếu id"},
			{ID: 3, Name: "Phố cổ"},
			{ID: 4, Name: "Hồ Tây"},
			{ID: 5, Name: "Nhà hát Lớn"},
		},
	}}
	ctrl, _ := newController(client)

	if err := ctrl.SendMessage(context.Background(), "gợi ý chỗ chơi"); err != nil {
		t.Fatalf("SendMessage err: %v", err)
	}

	snap := ctrl.Current()
	got := snap.Messages[len(snap.Messages)-1].SuggestedPlaces
	if len(got) != 2 {
		t.Fatalf("suggestion count: got %d want 2 (cap 3, malformed dropped)", len(got))
	}
	for _, p := range got {
		if p.ID == 0 {
			t.Fatalf("malformed suggestion kept: %+v", p)
		}
	}
}

func TestSendMessageFallbackOnFailure(t *testing.T) {
	client := &fakeClient{err: errors.New("connection refused")}
	ctrl, _ := newController(client)

	const input = "chợ đồng xuân ở đâu"
	if err := ctrl.SendMessage(context.Background(), input); err != nil {
		t.Fatalf("remote failure must not surface: %v", err)
	}

	snap := ctrl.Current()
	if snap.State != assistant.StateIdle {
		t.Fatal("controller must return to idle after failure")
	}
	if len(snap.Messages) != 3 {
		t.Fatalf("message count: got %d want 3", len(snap.Messages))
	}
	bot := snap.Messages[2]
	if bot.Text != assistant.FallbackReply(input) {
		t.Fatalf("expected canned reply, got %q", bot.Text)
	}
	if len(bot.SuggestedPlaces) != 0 {
		t.Fatal("fallback reply must carry no suggestions")
	}
	if snap.ConversationID != "" {
		t.Fatal("fallback must not alter the conversation id")
	}
}

func TestSendMessageRejectsEmptyInput(t *testing.T) {
	client := &fakeClient{}
	ctrl, _ := newController(client)

	if err := ctrl.SendMessage(context.Background(), "   "); !errors.Is(err, assistant.ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
	if got := len(ctrl.Current().Messages); got != 1 {
		t.Fatalf("empty input appended messages: %d", got)
	}
	if client.callCount() != 0 {
		t.Fatal("empty input must not reach the service")
	}
}

func TestSendMessageRejectsConcurrentSend(t *testing.T) {
	client := &fakeClient{
		reply:   assistant.Reply{BotResponse: "ok"},
		release: make(chan struct{}),
	}
	ctrl, _ := newController(client)

	done := make(chan error, 1)
	go func() {
		done <- ctrl.SendMessage(context.Background(), "câu hỏi thứ nhất")
	}()
	waitFor(t, func() bool { return ctrl.Current().State == assistant.StateSending })

	if err := ctrl.SendMessage(context.Background(), "câu hỏi thứ hai"); !errors.Is(err, assistant.ErrSendInFlight) {
		t.Fatalf("expected ErrSendInFlight, got %v", err)
	}
	if client.callCount() != 1 {
		t.Fatalf("second call reached the service: %d calls", client.callCount())
	}

	close(client.release)
	if err := <-done; err != nil {
		t.Fatalf("first send err: %v", err)
	}
	if got := len(ctrl.Current().Messages); got != 3 {
		t.Fatalf("message count: got %d want 3", got)
	}
}

func TestResetMidSendAppliesLateReplyToFreshSession(t *testing.T) {
	client := &fakeClient{
		reply:   assistant.Reply{BotResponse: "trả lời muộn", ConversationID: "stale"},
		release: make(chan struct{}),
	}
	ctrl, storage := newController(client)

	done := make(chan error, 1)
	go func() {
		done <- ctrl.SendMessage(context.Background(), "câu hỏi cũ")
	}()
	waitFor(t, func() bool { return ctrl.Current().State == assistant.StateSending })

	ctrl.Reset()

	if _, ok, _ := storage.Get(store.DefaultKey); ok {
		t.Fatal("reset must clear storage immediately")
	}
	snap := ctrl.Current()
	if len(snap.Messages) != 1 || snap.Messages[0].ID != 1 {
		t.Fatalf("reset must leave only the greeting, got %d messages", len(snap.Messages))
	}

	close(client.release)
	if err := <-done; err != nil {
		t.Fatalf("late send err: %v", err)
	}

	snap = ctrl.Current()
	if len(snap.Messages) != 2 {
		t.Fatalf("late reply handling: got %d messages want 2", len(snap.Messages))
	}
	for _, msg := range snap.Messages {
		if msg.Text == "câu hỏi cũ" {
			t.Fatal("reset session must not resurrect prior messages")
		}
	}
	if snap.ConversationID != "" {
		t.Fatal("stale conversation id must not attach to the fresh session")
	}
}

func TestControllerPersistsAcrossRestarts(t *testing.T) {
	client := &fakeClient{reply: assistant.Reply{BotResponse: "đã lưu", ConversationID: "conv-7"}}
	storage := store.NewMemoryStorage()
	sessions := store.NewSessionStore(storage, store.Config{})

	ctrl := assistant.NewController(sessions, client)
	if _, ok, _ := storage.Get(store.DefaultKey); ok {
		t.Fatal("greeting-only session must not be persisted")
	}
	if err := ctrl.SendMessage(context.Background(), "lưu lại nhé"); err != nil {
		t.Fatalf("SendMessage err: %v", err)
	}

	restored := assistant.NewController(store.NewSessionStore(storage, store.Config{}), client)
	snap := restored.Current()
	if len(snap.Messages) != 3 {
		t.Fatalf("restored message count: got %d want 3", len(snap.Messages))
	}
	if snap.ConversationID != "conv-7" {
		t.Fatalf("restored conversation id: got %q", snap.ConversationID)
	}
}

func TestSubscribeDeliversSnapshots(t *testing.T) {
	client := &fakeClient{reply: assistant.Reply{BotResponse: "chào bạn"}}
	ctrl, _ := newController(client)

	var mu sync.Mutex
	var states []assistant.State
	ctrl.Subscribe(func(snap assistant.Snapshot) {
		mu.Lock()
		states = append(states, snap.State)
		mu.Unlock()
	})

	if err := ctrl.SendMessage(context.Background(), "xin chào"); err != nil {
		t.Fatalf("SendMessage err: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(states) < 3 {
		t.Fatalf("expected initial + sending + idle notifications, got %d", len(states))
	}
	if states[0] != assistant.StateIdle {
		t.Fatal("initial snapshot must be idle")
	}
	sawSending := false
	for _, s := range states {
		if s == assistant.StateSending {
			sawSending = true
		}
	}
	if !sawSending {
		t.Fatal("subscriber never observed the sending state")
	}
	if states[len(states)-1] != assistant.StateIdle {
		t.Fatal("final snapshot must be idle")
	}
}
