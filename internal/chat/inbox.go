package chat

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Inbox is an in-memory Directory and MessageSender. The offline client
// runs on it; every sent message is stored as Sent.
type Inbox struct {
	conversations []Conversation
	messages      map[string][]Message
	now           func() time.Time
	mu            sync.RWMutex
}

// NewInbox creates an inbox holding conversations, in order, with no messages.
func NewInbox(conversations []Conversation) *Inbox {
	convs := make([]Conversation, len(conversations))
	copy(convs, conversations)
	return &Inbox{
		conversations: convs,
		messages:      make(map[string][]Message),
		now:           time.Now,
	}
}

// NewSampleInbox creates an inbox seeded with the sample conversations and
// their messages.
func NewSampleInbox() *Inbox {
	inbox := NewInbox(SampleConversations())
	for _, conv := range inbox.conversations {
		inbox.messages[conv.ID] = SampleMessages(conv.ID)
	}
	return inbox
}

// Conversations returns a copy of all conversations.
func (in *Inbox) Conversations() []Conversation {
	in.mu.RLock()
	defer in.mu.RUnlock()

	result := make([]Conversation, len(in.conversations))
	copy(result, in.conversations)
	return result
}

// Messages returns a copy of a conversation's messages in chronological order.
func (in *Inbox) Messages(conversationID string) []Message {
	in.mu.RLock()
	defer in.mu.RUnlock()

	messages := in.messages[conversationID]
	result := make([]Message, len(messages))
	copy(result, messages)
	return result
}

// Send appends text to the conversation as a sent message.
func (in *Inbox) Send(ctx context.Context, conversationID, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return ErrEmptyMessage
	}

	in.mu.Lock()
	defer in.mu.Unlock()

	if !in.hasConversationLocked(conversationID) {
		return ErrConversationNotFound
	}

	in.messages[conversationID] = append(in.messages[conversationID], Message{
		ID:             uuid.New().String(),
		ConversationID: conversationID,
		Text:           text,
		Timestamp:      FormatTimestamp(in.now()),
		Direction:      Sent,
	})
	return nil
}

func (in *Inbox) hasConversationLocked(id string) bool {
	for _, conv := range in.conversations {
		if conv.ID == id {
			return true
		}
	}
	return false
}
