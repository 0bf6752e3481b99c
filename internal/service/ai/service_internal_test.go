package ai

import (
	"testing"

	"github.com/cloudwego/eino/schema"

	"github.com/hanoivivu/assistant/internal/model/place"
)

func newBareService() *Service {
	return &Service{
		places:  place.NewMemoryStore(place.Seed()),
		history: make(map[string][]*schema.Message),
	}
}

func TestSuggestPlacesMatchesKeywords(t *testing.T) {
	svc := newBareService()

	got := svc.suggestPlaces("Hồ Gươm đi buổi tối được không?")
	if len(got) != 1 {
		t.Fatalf("suggestion count: got %d want 1", len(got))
	}
	if got[0].Name != "Hồ Gươm" {
		t.Fatalf("unexpected suggestion: %+v", got[0])
	}
}

func TestSuggestPlacesCap(t *testing.T) {
	svc := newBareService()

	got := svc.suggestPlaces("hồ gươm, văn miếu, phố cổ, lăng bác và hồ tây trong một ngày?")
	if len(got) != maxSuggestions {
		t.Fatalf("suggestion count: got %d want %d", len(got), maxSuggestions)
	}
}

func TestSuggestPlacesNoMatch(t *testing.T) {
	svc := newBareService()

	if got := svc.suggestPlaces("thời tiết hôm nay thế nào?"); len(got) != 0 {
		t.Fatalf("expected no suggestions, got %+v", got)
	}
}

func TestRememberTrimsHistory(t *testing.T) {
	svc := newBareService()

	for i := 0; i < historyCap; i++ {
		svc.remember("conv-1", "hỏi", "đáp")
	}

	if got := len(svc.history["conv-1"]); got != historyCap {
		t.Fatalf("stored history: got %d want %d", got, historyCap)
	}
	if got := len(svc.historyFor("conv-1")); got != historyWindow {
		t.Fatalf("window: got %d want %d", got, historyWindow)
	}
}

func TestHistoryForUnknownConversation(t *testing.T) {
	svc := newBareService()

	if got := svc.historyFor("unknown"); got != nil {
		t.Fatalf("expected nil history, got %d entries", len(got))
	}
}
