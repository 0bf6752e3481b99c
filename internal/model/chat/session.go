package chat

import "time"

// Greeting opens every fresh session as message id 1.
const Greeting = "Xin chào! Mình là trợ lý du lịch HanoiVivu. Bạn muốn khám phá địa điểm, ẩm thực hay chỗ nghỉ nào ở Hà Nội?"

// Session is the persisted unit of one ongoing conversation between a
// visitor and the assistant.
type Session struct {
	Messages        []Message `json:"messages"`
	ConversationID  string    `json:"conversationId"`
	LastMessageTime time.Time `json:"lastMessageTime"`

	// nextID is the sequence counter for message ids. It is deliberately
	// not derived from len(Messages) at append time, and is rebuilt from
	// the last stored id after rehydration.
	nextID int
}

// NewSession returns a fresh session opened with the greeting.
func NewSession(now time.Time) *Session {
	s := &Session{}
	s.Append(Message{Text: Greeting, Timestamp: now})
	return s
}

// Append stamps the message with the next sequence id and records it.
func (s *Session) Append(msg Message) Message {
	msg.ID = s.nextMessageID()
	s.Messages = append(s.Messages, msg)
	return msg
}

// nextMessageID returns the next sequence id, recovering the counter when
// the session came back from storage without it.
func (s *Session) nextMessageID() int {
	if s.nextID == 0 {
		if n := len(s.Messages); n > 0 {
			s.nextID = s.Messages[n-1].ID + 1
		} else {
			s.nextID = 1
		}
	}
	id := s.nextID
	s.nextID++
	return id
}
