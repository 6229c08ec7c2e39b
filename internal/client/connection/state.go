package connection

import (
	"sync"

	"github.com/yourusername/vowswap-chat/internal/protocol"
)

// State caches what the server told us about our conversations
type State struct {
	conversations []protocol.Conversation
	messages      map[string][]protocol.ChatMessage // conversationID -> messages, oldest first
	mu            sync.RWMutex
}

// NewState creates an empty state
func NewState() *State {
	return &State{
		messages: make(map[string][]protocol.ChatMessage),
	}
}

// SetConversations replaces the conversation list
func (s *State) SetConversations(convs []protocol.Conversation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversations = append([]protocol.Conversation(nil), convs...)
}

// Conversations returns a copy of the conversation list
func (s *State) Conversations() []protocol.Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]protocol.Conversation(nil), s.conversations...)
}

// SetHistory replaces a conversation's messages
func (s *State) SetHistory(conversationID string, messages []protocol.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[conversationID] = append([]protocol.ChatMessage(nil), messages...)
}

// AppendMessage adds a message unless one with the same ID is already known.
// It reports whether the message was added.
func (s *State) AppendMessage(msg protocol.ChatMessage) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.messages[msg.ConversationID] {
		if existing.ID == msg.ID {
			return false
		}
	}
	s.messages[msg.ConversationID] = append(s.messages[msg.ConversationID], msg)
	return true
}

// Messages returns a copy of a conversation's messages
func (s *State) Messages(conversationID string) []protocol.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]protocol.ChatMessage(nil), s.messages[conversationID]...)
}

// SetPresence updates every conversation with userID as counterpart.
// It reports whether any conversation changed.
func (s *State) SetPresence(userID, status string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := false
	for i := range s.conversations {
		if s.conversations[i].CounterpartID == userID && s.conversations[i].Status != status {
			s.conversations[i].Status = status
			changed = true
		}
	}
	return changed
}
