package protocol //handles communication protocol between client and server
// WebSocket message types and payloads
import "encoding/json"

// MessageType defines the type of WebSocket message
type MessageType string

const (
	// Client -> Server
	MsgIdentify            MessageType = "identify"
	MsgListConversations   MessageType = "list_conversations"
	MsgConversationHistory MessageType = "conversation_history"
	MsgSendMessage         MessageType = "send_message"

	// Server -> Client
	MsgConversations MessageType = "conversations"
	MsgHistory       MessageType = "history"
	MsgMessageSent   MessageType = "message_sent" // ack for send_message, carries request_id
	MsgNewMessage    MessageType = "new_message"  // delivered to the counterpart
	MsgPresence      MessageType = "presence"
	MsgError         MessageType = "error"
)

// Message is the wrapper for all WebSocket messages
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// IdentifyPayload is sent once after connecting
type IdentifyPayload struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
}

// ConversationHistoryPayload requests the messages of one conversation
type ConversationHistoryPayload struct {
	ConversationID string `json:"conversation_id"`
}

// SendMessagePayload asks the server to store and deliver a message
type SendMessagePayload struct {
	RequestID      string `json:"request_id"`
	ConversationID string `json:"conversation_id"`
	Text           string `json:"text"`
}

// Conversation is a conversation as seen by one participant
type Conversation struct {
	ID            string `json:"id"`
	Name          string `json:"name"` // counterpart display name
	Status        string `json:"status"`
	Type          string `json:"type"`
	CounterpartID string `json:"counterpart_id"`
}

// ChatMessage is a stored message
type ChatMessage struct {
	ID             string `json:"id"`
	ConversationID string `json:"conversation_id"`
	SenderID       string `json:"sender_id"`
	Text           string `json:"text"`
	SentAt         int64  `json:"sent_at"` // unix seconds
}

type ConversationsPayload struct {
	Conversations []Conversation `json:"conversations"`
}

type HistoryPayload struct {
	ConversationID string        `json:"conversation_id"`
	Messages       []ChatMessage `json:"messages"`
}

// MessageSentPayload acknowledges a send_message request
type MessageSentPayload struct {
	RequestID string      `json:"request_id"`
	Message   ChatMessage `json:"message"`
}

type NewMessagePayload struct {
	Message ChatMessage `json:"message"`
}

// PresencePayload announces a user going online or offline
type PresencePayload struct {
	UserID string `json:"user_id"`
	Status string `json:"status"`
}

// ErrorPayload contains error information. RequestID is set when the error
// answers a send_message request.
type ErrorPayload struct {
	RequestID string `json:"request_id,omitempty"`
	Message   string `json:"message"`
}

// EncodeMessage encodes a message with its payload
func EncodeMessage(msgType MessageType, payload interface{}) ([]byte, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	msg := Message{
		Type:    msgType,
		Payload: payloadBytes,
	}

	return json.Marshal(msg)
}

// DecodeMessage decodes a message
func DecodeMessage(data []byte) (*Message, error) {
	var msg Message
	err := json.Unmarshal(data, &msg)
	return &msg, err
}
