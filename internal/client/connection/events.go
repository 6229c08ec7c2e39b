package connection

import "github.com/yourusername/vowswap-chat/internal/chat"

// Event represents events from the connection manager
type Event interface {
	isEvent()
}

// ConnectedEvent is sent when connection is established
type ConnectedEvent struct{}

func (ConnectedEvent) isEvent() {}

// DisconnectedEvent is sent when connection is lost
type DisconnectedEvent struct {
	Error error
}

func (DisconnectedEvent) isEvent() {}

// ErrorEvent is sent when the server reports an error not tied to a send
type ErrorEvent struct {
	Message string
}

func (ErrorEvent) isEvent() {}

// ConversationsEvent is sent when the conversation list changed
type ConversationsEvent struct{}

func (ConversationsEvent) isEvent() {}

// MessagesEvent is sent when a conversation's messages changed
type MessagesEvent struct {
	ConversationID string
}

func (MessagesEvent) isEvent() {}

// PresenceEvent is sent when a counterpart goes online or offline
type PresenceEvent struct {
	UserID string
	Status chat.PresenceStatus
}

func (PresenceEvent) isEvent() {}
