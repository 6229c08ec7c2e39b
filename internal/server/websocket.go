package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/yourusername/vowswap-chat/internal/chat"
	"github.com/yourusername/vowswap-chat/internal/protocol"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second    //time allowed to read the next pong message from client
	pingPeriod     = (pongWait * 9) / 10 //send pings to client with this period. must be less than pongWait
	maxMessageSize = 8192
)

var (
	errNotIdentified = errors.New("identify before sending requests")
	errServerStopped = errors.New("server is shutting down")
)

var upgrader = websocket.Upgrader{ //upgrade HTTP connections to WebSocket connections
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for now
	},
}

// Client represents one WebSocket connection of a user
type Client struct {
	ID     string // connection ID
	UserID string // empty until identify
	conn   *websocket.Conn
	send   chan []byte
}

// Server represents the messaging backend
type Server struct {
	hub   *Hub
	store *ConversationStore
	users *UserDirectory
}

// NewServer creates a messaging backend keeping historyLimit messages per conversation
func NewServer(historyLimit int) *Server {
	store := NewConversationStore(historyLimit)
	return &Server{
		hub:   NewHub(store),
		store: store,
		users: NewUserDirectory(),
	}
}

// Run runs the hub until ctx is done
func (s *Server) Run(ctx context.Context) {
	s.hub.Run(ctx)
}

// HandleWebSocket handles WebSocket connections
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Upgrade error:", err)
		return
	}

	client := &Client{
		ID:   uuid.New().String(),
		conn: conn,
		send: make(chan []byte, 256),
	}

	go client.writePump()
	go client.readPump(s)
}

// readPump pumps messages from the WebSocket connection to the server
func (c *Client) readPump(s *Server) {
	defer func() {
		if c.UserID != "" {
			s.hub.Unregister(c)
		} else {
			close(c.send)
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		c.handleMessage(s, message)
	}
}

// writePump pumps queued messages to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			// One envelope per frame
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// reply encodes and queues a message for this connection only
func (c *Client) reply(msgType protocol.MessageType, payload interface{}) {
	msg, err := protocol.EncodeMessage(msgType, payload)
	if err != nil {
		log.Printf("Error encoding %s: %v", msgType, err)
		return
	}

	select {
	case c.send <- msg:
	default:
		log.Printf("Dropping %s for %s: send buffer full", msgType, c.ID)
	}
}

func (c *Client) replyError(requestID string, err error) {
	c.reply(protocol.MsgError, protocol.ErrorPayload{
		RequestID: requestID,
		Message:   err.Error(),
	})
}

// handleMessage handles incoming messages from the client
func (c *Client) handleMessage(s *Server, data []byte) {
	msg, err := protocol.DecodeMessage(data)
	if err != nil {
		log.Printf("Error decoding message: %v", err)
		return
	}

	if msg.Type != protocol.MsgIdentify && c.UserID == "" {
		c.replyError(requestIDOf(msg), errNotIdentified)
		return
	}

	switch msg.Type {
	case protocol.MsgIdentify:
		var payload protocol.IdentifyPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			log.Printf("Error unmarshaling identify payload: %v", err)
			return
		}
		s.handleIdentify(c, payload)

	case protocol.MsgListConversations:
		c.reply(protocol.MsgConversations, s.conversationsPayload(c.UserID))

	case protocol.MsgConversationHistory:
		var payload protocol.ConversationHistoryPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			log.Printf("Error unmarshaling history payload: %v", err)
			return
		}

		history, err := s.store.History(payload.ConversationID, c.UserID)
		if err != nil {
			c.replyError("", err)
			return
		}

		messages := make([]protocol.ChatMessage, len(history))
		for i, m := range history {
			messages[i] = toWire(m)
		}
		c.reply(protocol.MsgHistory, protocol.HistoryPayload{
			ConversationID: payload.ConversationID,
			Messages:       messages,
		})

	case protocol.MsgSendMessage:
		var payload protocol.SendMessagePayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			log.Printf("Error unmarshaling send payload: %v", err)
			return
		}
		s.handleSend(c, payload)

	default:
		log.Printf("Unhandled message type: %s", msg.Type)
	}
}

func (s *Server) handleIdentify(c *Client, payload protocol.IdentifyPayload) {
	userID := strings.TrimSpace(payload.UserID)
	if userID == "" {
		c.replyError("", errors.New("user_id is required"))
		return
	}
	if c.UserID != "" {
		c.replyError("", errors.New("connection already identified"))
		return
	}

	_, known := s.users.Register(userID, strings.TrimSpace(payload.DisplayName))
	if !known && len(s.store.ConversationsFor(userID)) == 0 {
		s.seedSampleConversations(userID)
		log.Printf("Seeded sample conversations for %s", userID)
	}

	c.UserID = userID
	if !s.hub.Register(c) {
		c.UserID = ""
		c.replyError("", errServerStopped)
		return
	}

	c.reply(protocol.MsgConversations, s.conversationsPayload(userID))
}

func (s *Server) handleSend(c *Client, payload protocol.SendMessagePayload) {
	stored, err := s.store.Append(payload.ConversationID, c.UserID, payload.Text)
	if err != nil {
		c.replyError(payload.RequestID, err)
		return
	}

	wire := toWire(stored)
	c.reply(protocol.MsgMessageSent, protocol.MessageSentPayload{
		RequestID: payload.RequestID,
		Message:   wire,
	})

	conv, err := s.store.Get(payload.ConversationID)
	if err != nil {
		return
	}

	delivered, err := protocol.EncodeMessage(protocol.MsgNewMessage, protocol.NewMessagePayload{Message: wire})
	if err != nil {
		return
	}
	// The sender's other connections get the message too
	s.hub.Deliver(c.UserID, delivered, c)
	if other := conv.Counterpart(c.UserID); other != "" && other != c.UserID {
		s.hub.Deliver(other, delivered, nil)
	}
}

// conversationsPayload lists userID's conversations from their point of view
func (s *Server) conversationsPayload(userID string) protocol.ConversationsPayload {
	convs := s.store.ConversationsFor(userID)
	result := make([]protocol.Conversation, len(convs))
	for i, conv := range convs {
		other := conv.Counterpart(userID)
		status := chat.StatusOffline
		if s.hub.IsOnline(other) {
			status = chat.StatusOnline
		}

		result[i] = protocol.Conversation{
			ID:            conv.ID,
			Name:          s.users.DisplayName(other),
			Status:        string(status),
			Type:          string(conv.Type),
			CounterpartID: other,
		}
	}
	return protocol.ConversationsPayload{Conversations: result}
}

func toWire(m StoredMessage) protocol.ChatMessage {
	return protocol.ChatMessage{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Text:           m.Text,
		SentAt:         m.SentAt.Unix(),
	}
}

// requestIDOf extracts request_id from payloads that carry one
func requestIDOf(msg *protocol.Message) string {
	var payload struct {
		RequestID string `json:"request_id"`
	}
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return ""
	}
	return payload.RequestID
}
