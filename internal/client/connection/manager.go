package connection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/yourusername/vowswap-chat/internal/chat"
	"github.com/yourusername/vowswap-chat/internal/protocol"
)

var (
	ErrNotConnected     = errors.New("not connected to the messaging server")
	ErrConnectionClosed = errors.New("connection closed before the server answered")
)

// ServerError is an error reported by the server for one of our requests
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string {
	return "server: " + e.Message
}

// Manager manages the WebSocket connection to the messaging server.
// It is the client's chat.MessageSender and chat.Directory.
type Manager struct {
	serverURL     string
	userID        string
	displayName   string
	conn          *websocket.Conn
	state         *State
	eventCallback func(Event)
	connected     bool
	pending       map[string]chan error // request_id -> waiting Send
	mu            sync.RWMutex
	writeMu       sync.Mutex // gorilla allows one concurrent writer
	done          chan struct{}
}

// NewManager creates a new connection manager for the given viewer
func NewManager(serverURL, userID, displayName string) *Manager {
	return &Manager{
		serverURL:   serverURL,
		userID:      userID,
		displayName: displayName,
		state:       NewState(),
		connected:   false,
		pending:     make(map[string]chan error),
		done:        make(chan struct{}),
	}
}

// OnEvent sets the callback for events
func (m *Manager) OnEvent(callback func(Event)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventCallback = callback
}

// UserID returns the viewer's user ID
func (m *Manager) UserID() string {
	return m.userID
}

// Connect establishes a WebSocket connection and identifies the viewer
func (m *Manager) Connect() error {
	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}

	conn, _, err := dialer.Dial(m.serverURL, nil)
	if err != nil {
		m.sendEvent(DisconnectedEvent{Error: err})
		return err
	}

	m.mu.Lock()
	m.conn = conn
	m.connected = true
	// Fresh done channel per connection so reconnects work
	m.done = make(chan struct{})
	m.mu.Unlock()

	go m.readPump()

	if err := m.sendMessage(protocol.MsgIdentify, protocol.IdentifyPayload{
		UserID:      m.userID,
		DisplayName: m.displayName,
	}); err != nil {
		m.Disconnect()
		return fmt.Errorf("identify: %w", err)
	}

	m.sendEvent(ConnectedEvent{})
	return nil
}

// Disconnect closes the WebSocket connection
func (m *Manager) Disconnect() {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Only disconnect if we're currently connected
	if !m.connected {
		return
	}

	m.connected = false
	m.closeDoneLocked()

	if m.conn != nil {
		m.conn.Close()
	}
}

// IsConnected returns whether the manager is connected
func (m *Manager) IsConnected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.connected
}

//// FROM CLIENT -> SERVER MESSAGES ////

// RefreshConversations asks the server for the conversation list
func (m *Manager) RefreshConversations() error {
	return m.sendMessage(protocol.MsgListConversations, struct{}{})
}

// LoadHistory asks the server for a conversation's messages. The answer
// arrives as a MessagesEvent.
func (m *Manager) LoadHistory(conversationID string) error {
	return m.sendMessage(protocol.MsgConversationHistory, protocol.ConversationHistoryPayload{
		ConversationID: conversationID,
	})
}

// Send delivers text to a conversation and waits for the server's answer
func (m *Manager) Send(ctx context.Context, conversationID, text string) error {
	requestID := uuid.New().String()
	result := make(chan error, 1)

	m.mu.Lock()
	if !m.connected {
		m.mu.Unlock()
		return ErrNotConnected
	}
	m.pending[requestID] = result
	done := m.done
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		delete(m.pending, requestID)
		m.mu.Unlock()
	}()

	err := m.sendMessage(protocol.MsgSendMessage, protocol.SendMessagePayload{
		RequestID:      requestID,
		ConversationID: conversationID,
		Text:           text,
	})
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return ErrConnectionClosed
	}
}

////////////////////////////////////////////

// Conversations returns the cached conversation list
func (m *Manager) Conversations() []chat.Conversation {
	convs := m.state.Conversations()
	result := make([]chat.Conversation, len(convs))
	for i, c := range convs {
		result[i] = chat.Conversation{
			ID:     c.ID,
			Name:   c.Name,
			Status: chat.ParsePresenceStatus(c.Status),
			Type:   chat.ParseConversationType(c.Type),
		}
	}
	return result
}

// Messages returns the cached messages of a conversation as seen by the viewer
func (m *Manager) Messages(conversationID string) []chat.Message {
	wire := m.state.Messages(conversationID)
	result := make([]chat.Message, len(wire))
	for i, msg := range wire {
		direction := chat.Received
		if msg.SenderID == m.userID {
			direction = chat.Sent
		}
		result[i] = chat.Message{
			ID:             msg.ID,
			ConversationID: msg.ConversationID,
			Text:           msg.Text,
			Timestamp:      chat.FormatTimestamp(time.Unix(msg.SentAt, 0)),
			Direction:      direction,
		}
	}
	return result
}

// sendMessage sends a message to the server
func (m *Manager) sendMessage(msgType protocol.MessageType, payload interface{}) error {
	m.mu.RLock()
	conn := m.conn
	connected := m.connected
	m.mu.RUnlock()

	if !connected || conn == nil {
		return ErrNotConnected
	}

	msg, err := protocol.EncodeMessage(msgType, payload)
	if err != nil {
		return err
	}

	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return conn.WriteMessage(websocket.TextMessage, msg)
}

// readPump reads messages from the WebSocket connection
func (m *Manager) readPump() {
	m.mu.RLock()
	conn := m.conn
	done := m.done
	m.mu.RUnlock()

	var readErr error
	defer func() {
		m.mu.Lock()
		// A reconnect may already have replaced conn and done
		if m.conn == conn {
			m.connected = false
		}
		select {
		case <-done:
		default:
			close(done)
		}
		m.mu.Unlock()
		conn.Close()
		m.sendEvent(DisconnectedEvent{Error: readErr})
	}()

	for {
		select {
		case <-done:
			return
		default:
			_, message, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Printf("WebSocket error: %v", err)
					readErr = err
				}
				return
			}

			m.handleMessage(message)
		}
	}
}

// handleMessage processes incoming messages
func (m *Manager) handleMessage(data []byte) {
	msg, err := protocol.DecodeMessage(data)
	if err != nil {
		log.Printf("Error decoding message: %v", err)
		return
	}

	switch msg.Type {
	case protocol.MsgConversations:
		var payload protocol.ConversationsPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			log.Printf("Error unmarshaling conversations: %v", err)
			return
		}
		m.state.SetConversations(payload.Conversations)
		m.sendEvent(ConversationsEvent{})

	case protocol.MsgHistory:
		var payload protocol.HistoryPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			log.Printf("Error unmarshaling history: %v", err)
			return
		}
		m.state.SetHistory(payload.ConversationID, payload.Messages)
		m.sendEvent(MessagesEvent{ConversationID: payload.ConversationID})

	case protocol.MsgMessageSent:
		var payload protocol.MessageSentPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			log.Printf("Error unmarshaling message sent: %v", err)
			return
		}
		// Store before resolving so the sender sees its message on refresh
		m.state.AppendMessage(payload.Message)
		m.resolve(payload.RequestID, nil)
		m.sendEvent(MessagesEvent{ConversationID: payload.Message.ConversationID})

	case protocol.MsgNewMessage:
		var payload protocol.NewMessagePayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			log.Printf("Error unmarshaling new message: %v", err)
			return
		}
		if m.state.AppendMessage(payload.Message) {
			m.sendEvent(MessagesEvent{ConversationID: payload.Message.ConversationID})
		}

	case protocol.MsgPresence:
		var payload protocol.PresencePayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			log.Printf("Error unmarshaling presence: %v", err)
			return
		}
		status := chat.ParsePresenceStatus(payload.Status)
		if m.state.SetPresence(payload.UserID, string(status)) {
			m.sendEvent(PresenceEvent{UserID: payload.UserID, Status: status})
		}

	case protocol.MsgError:
		var payload protocol.ErrorPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			log.Printf("Error unmarshaling error payload: %v", err)
			return
		}
		if payload.RequestID != "" && m.resolve(payload.RequestID, &ServerError{Message: payload.Message}) {
			return
		}
		m.sendEvent(ErrorEvent{Message: payload.Message})
		log.Printf("Server error: %s", payload.Message)

	default:
		log.Printf("Unhandled message type: %s", msg.Type)
	}
}

// resolve hands err to the Send waiting on requestID, if any
func (m *Manager) resolve(requestID string, err error) bool {
	m.mu.RLock()
	result, ok := m.pending[requestID]
	m.mu.RUnlock()

	if !ok {
		return false
	}

	select {
	case result <- err:
	default:
	}
	return true
}

func (m *Manager) closeDoneLocked() {
	select {
	case <-m.done:
		// Already closed
	default:
		close(m.done)
	}
}

// sendEvent sends an event to the callback if set
func (m *Manager) sendEvent(event Event) {
	m.mu.RLock()
	callback := m.eventCallback
	m.mu.RUnlock()

	if callback != nil {
		callback(event)
	}
}
