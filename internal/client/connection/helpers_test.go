package connection_test

import "github.com/yourusername/vowswap-chat/internal/protocol"

func wireMessage(id, conversationID string) protocol.ChatMessage {
	return protocol.ChatMessage{
		ID:             id,
		ConversationID: conversationID,
		SenderID:       "jane",
		Text:           "hi",
		SentAt:         1,
	}
}

func wireConversations() []protocol.Conversation {
	return []protocol.Conversation{
		{ID: "c1", Name: "Jane", Status: "offline", Type: "buyer", CounterpartID: "jane"},
		{ID: "c2", Name: "The Grand Estate", Status: "offline", Type: "venue", CounterpartID: "grand-estate"},
	}
}
