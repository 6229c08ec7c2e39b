package server

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/vowswap-chat/internal/chat"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrNotParticipant       = errors.New("user is not a participant of this conversation")
	ErrEmptyMessage         = errors.New("message text is empty")
)

// Conversation is a stored conversation between exactly two users
type Conversation struct {
	ID           string
	Type         chat.ConversationType
	Participants [2]string
	CreatedAt    time.Time
}

// HasParticipant reports whether userID takes part in the conversation
func (c Conversation) HasParticipant(userID string) bool {
	return c.Participants[0] == userID || c.Participants[1] == userID
}

// Counterpart returns the other participant, or "" if userID is not a participant
func (c Conversation) Counterpart(userID string) string {
	switch userID {
	case c.Participants[0]:
		return c.Participants[1]
	case c.Participants[1]:
		return c.Participants[0]
	}
	return ""
}

// StoredMessage represents a stored chat message
type StoredMessage struct {
	ID             string
	ConversationID string
	SenderID       string
	Text           string
	SentAt         time.Time
}

// ConversationStore keeps conversations and their messages in memory
type ConversationStore struct {
	conversations map[string]*Conversation
	byUser        map[string][]string        // userID -> conversation IDs, oldest first
	messages      map[string][]StoredMessage // conversationID -> messages, oldest first
	historyLimit  int
	now           func() time.Time
	mu            sync.RWMutex
}

// NewConversationStore creates a store keeping at most historyLimit messages per conversation
func NewConversationStore(historyLimit int) *ConversationStore {
	return &ConversationStore{
		conversations: make(map[string]*Conversation),
		byUser:        make(map[string][]string),
		messages:      make(map[string][]StoredMessage),
		historyLimit:  historyLimit,
		now:           time.Now,
	}
}

// CreateConversation stores a new conversation between two users
func (s *ConversationStore) CreateConversation(convType chat.ConversationType, userA, userB string) Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := &Conversation{
		ID:           uuid.New().String(),
		Type:         convType,
		Participants: [2]string{userA, userB},
		CreatedAt:    s.now(),
	}
	s.conversations[conv.ID] = conv
	s.byUser[userA] = append(s.byUser[userA], conv.ID)
	if userB != userA {
		s.byUser[userB] = append(s.byUser[userB], conv.ID)
	}
	return *conv
}

// Get returns a conversation by ID
func (s *ConversationStore) Get(conversationID string) (Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv, ok := s.conversations[conversationID]
	if !ok {
		return Conversation{}, ErrConversationNotFound
	}
	return *conv, nil
}

// ConversationsFor returns the user's conversations, oldest first
func (s *ConversationStore) ConversationsFor(userID string) []Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byUser[userID]
	result := make([]Conversation, 0, len(ids))
	for _, id := range ids {
		result = append(result, *s.conversations[id])
	}
	return result
}

// Append stores a message from senderID. Whitespace-only text is rejected.
func (s *ConversationStore) Append(conversationID, senderID, text string) (StoredMessage, error) {
	return s.AppendAt(conversationID, senderID, text, s.now())
}

// AppendAt is Append with an explicit timestamp
func (s *ConversationStore) AppendAt(conversationID, senderID, text string, at time.Time) (StoredMessage, error) {
	if strings.TrimSpace(text) == "" {
		return StoredMessage{}, ErrEmptyMessage
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.conversations[conversationID]
	if !ok {
		return StoredMessage{}, ErrConversationNotFound
	}
	if !conv.HasParticipant(senderID) {
		return StoredMessage{}, ErrNotParticipant
	}

	msg := StoredMessage{
		ID:             uuid.New().String(),
		ConversationID: conversationID,
		SenderID:       senderID,
		Text:           text,
		SentAt:         at,
	}
	s.messages[conversationID] = append(s.messages[conversationID], msg)

	// Keep only the most recent messages
	if n := len(s.messages[conversationID]); n > s.historyLimit {
		s.messages[conversationID] = s.messages[conversationID][n-s.historyLimit:]
	}

	return msg, nil
}

// History returns a copy of the conversation's messages for one of its participants
func (s *ConversationStore) History(conversationID, userID string) ([]StoredMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv, ok := s.conversations[conversationID]
	if !ok {
		return nil, ErrConversationNotFound
	}
	if !conv.HasParticipant(userID) {
		return nil, ErrNotParticipant
	}

	messages := s.messages[conversationID]
	result := make([]StoredMessage, len(messages))
	copy(result, messages)
	return result, nil
}
