package server

import (
	"context"
	"log"
	"sync"

	"github.com/yourusername/vowswap-chat/internal/chat"
	"github.com/yourusername/vowswap-chat/internal/protocol"
)

type delivery struct {
	userID string
	data   []byte
	except *Client // skipped, e.g. the connection that sent the message
}

// Hub tracks connected clients per user and routes messages to them
type Hub struct {
	clients map[string]map[*Client]bool // userID -> open connections
	store   *ConversationStore

	mu         sync.RWMutex
	deliver    chan delivery
	register   chan *Client
	unregister chan *Client
	done       chan struct{} // closed when Run returns
}

// NewHub creates a hub that announces presence to the counterparts found in store
func NewHub(store *ConversationStore) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		store:      store,
		deliver:    make(chan delivery, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's main loop. It returns when ctx is done.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case client := <-h.register:
			h.handleRegister(client)

		case client := <-h.unregister:
			h.handleUnregister(client)

		case d := <-h.deliver:
			h.handleDeliver(d)

		case <-ctx.Done():
			return
		}
	}
}

// Register adds client under its UserID. It returns false once the hub
// has stopped.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Unregister removes client and closes its send channel
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
		// Nothing delivers any more, the write pump can stop
		close(client.send)
	}
}

// Deliver queues data for every connection of userID except the given one
func (h *Hub) Deliver(userID string, data []byte, except *Client) {
	select {
	case h.deliver <- delivery{userID: userID, data: data, except: except}:
	case <-h.done:
	}
}

// IsOnline reports whether userID has at least one open connection
func (h *Hub) IsOnline(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID]) > 0
}

func (h *Hub) handleRegister(client *Client) {
	h.mu.Lock()
	conns := h.clients[client.UserID]
	if conns == nil {
		conns = make(map[*Client]bool)
		h.clients[client.UserID] = conns
	}
	conns[client] = true
	first := len(conns) == 1
	h.mu.Unlock()

	log.Printf("User %s connected (%s)", client.UserID, client.ID)

	if first {
		h.announcePresence(client.UserID, chat.StatusOnline)
	}
}

func (h *Hub) handleUnregister(client *Client) {
	h.mu.Lock()
	conns, ok := h.clients[client.UserID]
	if !ok || !conns[client] {
		h.mu.Unlock()
		return
	}
	delete(conns, client)
	close(client.send)
	last := len(conns) == 0
	if last {
		delete(h.clients, client.UserID)
	}
	h.mu.Unlock()

	log.Printf("User %s disconnected (%s)", client.UserID, client.ID)

	if last {
		h.announcePresence(client.UserID, chat.StatusOffline)
	}
}

func (h *Hub) handleDeliver(d delivery) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[d.userID] {
		if client == d.except {
			continue
		}
		select {
		case client.send <- d.data:
		default:
			log.Printf("Dropping message for %s: send buffer full", client.ID)
		}
	}
}

// announcePresence tells every counterpart of userID about its new status
func (h *Hub) announcePresence(userID string, status chat.PresenceStatus) {
	msg, err := protocol.EncodeMessage(protocol.MsgPresence, protocol.PresencePayload{
		UserID: userID,
		Status: string(status),
	})
	if err != nil {
		return
	}

	notified := make(map[string]bool)
	for _, conv := range h.store.ConversationsFor(userID) {
		other := conv.Counterpart(userID)
		if other == "" || other == userID || notified[other] {
			continue
		}
		notified[other] = true
		h.handleDeliver(delivery{userID: other, data: msg})
	}
}
