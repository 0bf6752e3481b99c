package ai

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"

	"github.com/hanoivivu/assistant/internal/config"
	"github.com/hanoivivu/assistant/internal/model/place"
	"github.com/hanoivivu/assistant/internal/service/assistant"
)

const systemPrompt = `Bạn là trợ lý du lịch thân thiện của HanoiVivu, chuyên về Hà Nội.
Trả lời ngắn gọn bằng tiếng Việt, có thể dùng markdown để nhấn mạnh.
Chỉ tư vấn về địa điểm tham quan, ẩm thực, chỗ nghỉ và lịch trình ở Hà Nội.
Nếu câu hỏi nằm ngoài chủ đề, hãy lịch sự hướng người dùng quay lại chủ đề du lịch.`

const (
	// historyWindow is how many stored turns accompany each model call.
	historyWindow = 10
	// historyCap bounds per-conversation memory.
	historyCap = 40
	// maxSuggestions matches the widget's card limit.
	maxSuggestions = 3
)

// Service answers widget turns with a Hanoi tour-guide persona. It owns
// the per-conversation context the widget references by conversation id.
type Service struct {
	chain  compose.Runnable[map[string]any, *schema.Message]
	places place.Store

	mu      sync.RWMutex
	history map[string][]*schema.Message
}

// NewService builds the prompt/model chain from configuration.
func NewService(ctx context.Context, places place.Store, cfg config.AIConfig) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	return &Service{
		chain:   runnable,
		places:  places,
		history: make(map[string][]*schema.Message),
	}, nil
}

// Respond handles one widget turn: it issues a conversation id on the
// first call, runs the chain with the remembered context, and enriches
// the reply with matching catalog suggestions. Satisfies the widget
// client contract via assistant.ClientFunc.
func (s *Service) Respond(ctx context.Context, message, conversationID string) (assistant.Reply, error) {
	if conversationID == "" {
		conversationID = uuid.NewString()
	}

	response, err := s.chain.Invoke(ctx, map[string]any{
		"system":  systemPrompt,
		"history": s.historyFor(conversationID),
		"query":   message,
	})
	if err != nil {
		return assistant.Reply{}, fmt.Errorf("failed to run assistant chain: %w", err)
	}

	s.remember(conversationID, message, response.Content)
	log.Printf("[ai] generated reply for conversation=%s length=%d", conversationID, len(response.Content))

	return assistant.Reply{
		BotResponse:     response.Content,
		ConversationID:  conversationID,
		SuggestedPlaces: s.suggestPlaces(message),
	}, nil
}

// historyFor returns the most recent turns of the conversation.
func (s *Service) historyFor(conversationID string) []*schema.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.history[conversationID]
	if len(stored) == 0 {
		return nil
	}

	startIdx := 0
	if len(stored) > historyWindow {
		startIdx = len(stored) - historyWindow
	}
	return append([]*schema.Message(nil), stored[startIdx:]...)
}

// remember appends the exchanged turns and trims old context.
func (s *Service) remember(conversationID, userMessage, botResponse string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := append(s.history[conversationID],
		schema.UserMessage(userMessage),
		schema.AssistantMessage(botResponse, nil),
	)
	if len(stored) > historyCap {
		stored = stored[len(stored)-historyCap:]
	}
	s.history[conversationID] = stored
}

// suggestPlaces matches the user text against catalog keywords and
// returns up to three card references.
func (s *Service) suggestPlaces(message string) []place.Compact {
	lowered := strings.ToLower(message)

	var matches []place.Compact
	for _, p := range s.places.List() {
		for _, keyword := range p.Keywords {
			if keyword != "" && strings.Contains(lowered, keyword) {
				matches = append(matches, p.Compact())
				break
			}
		}
		if len(matches) == maxSuggestions {
			break
		}
	}
	return matches
}
