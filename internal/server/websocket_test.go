package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/yourusername/vowswap-chat/internal/chat"
	"github.com/yourusername/vowswap-chat/internal/protocol"
	"github.com/yourusername/vowswap-chat/internal/server"
)

type wsPeer struct {
	conn *websocket.Conn
}

func dial(url string) *wsPeer {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	Expect(err).NotTo(HaveOccurred())
	DeferCleanup(func() { conn.Close() })
	return &wsPeer{conn: conn}
}

func (p *wsPeer) send(msgType protocol.MessageType, payload interface{}) {
	data, err := protocol.EncodeMessage(msgType, payload)
	Expect(err).NotTo(HaveOccurred())
	Expect(p.conn.WriteMessage(websocket.TextMessage, data)).To(Succeed())
}

// expect reads until a message of msgType arrives and decodes its payload into out
func (p *wsPeer) expect(msgType protocol.MessageType, out interface{}) {
	deadline := time.Now().Add(2 * time.Second)
	for {
		Expect(p.conn.SetReadDeadline(deadline)).To(Succeed())
		_, data, err := p.conn.ReadMessage()
		Expect(err).NotTo(HaveOccurred(), "waiting for %s", msgType)

		msg, err := protocol.DecodeMessage(data)
		Expect(err).NotTo(HaveOccurred())
		if msg.Type == msgType {
			Expect(json.Unmarshal(msg.Payload, out)).To(Succeed())
			return
		}
	}
}

func (p *wsPeer) identify(userID, name string) protocol.ConversationsPayload {
	p.send(protocol.MsgIdentify, protocol.IdentifyPayload{UserID: userID, DisplayName: name})
	var convs protocol.ConversationsPayload
	p.expect(protocol.MsgConversations, &convs)
	return convs
}

var _ = Describe("Server", func() {
	var (
		srv *server.Server
		url string
	)

	BeforeEach(func() {
		srv = server.NewServer(100)
		ctx, cancel := context.WithCancel(context.Background())
		DeferCleanup(cancel)
		go srv.Run(ctx)

		ts := httptest.NewServer(http.HandlerFunc(srv.HandleWebSocket))
		DeferCleanup(ts.Close)
		url = "ws" + strings.TrimPrefix(ts.URL, "http")
	})

	It("seeds the sample inbox for a new user", func() {
		convs := dial(url).identify("seller-1", "Seller").Conversations
		Expect(convs).To(HaveLen(3))

		Expect(convs[0].Name).To(Equal("Jane"))
		Expect(convs[0].Type).To(Equal(string(chat.TypeBuyer)))
		Expect(convs[0].Status).To(Equal(string(chat.StatusOffline)))
		Expect(convs[1].Type).To(Equal(string(chat.TypeVenue)))
		Expect(convs[2].Type).To(Equal(string(chat.TypeSupport)))
	})

	It("returns the seeded history", func() {
		peer := dial(url)
		convs := peer.identify("seller-1", "Seller").Conversations

		peer.send(protocol.MsgConversationHistory, protocol.ConversationHistoryPayload{ConversationID: convs[0].ID})
		var history protocol.HistoryPayload
		peer.expect(protocol.MsgHistory, &history)

		Expect(history.Messages).To(HaveLen(2))
		Expect(history.Messages[0].SenderID).To(Equal("jane"))
		Expect(history.Messages[1].SenderID).To(Equal("seller-1"))
	})

	It("acknowledges sends with the request id", func() {
		peer := dial(url)
		convs := peer.identify("seller-1", "Seller").Conversations

		peer.send(protocol.MsgSendMessage, protocol.SendMessagePayload{
			RequestID:      "req-1",
			ConversationID: convs[0].ID,
			Text:           "Hello",
		})

		var ack protocol.MessageSentPayload
		peer.expect(protocol.MsgMessageSent, &ack)
		Expect(ack.RequestID).To(Equal("req-1"))
		Expect(ack.Message.Text).To(Equal("Hello"))
		Expect(ack.Message.SenderID).To(Equal("seller-1"))
		Expect(ack.Message.SentAt).To(BeNumerically(">", 0))
	})

	It("answers blank sends with an error for that request", func() {
		peer := dial(url)
		convs := peer.identify("seller-1", "Seller").Conversations

		peer.send(protocol.MsgSendMessage, protocol.SendMessagePayload{
			RequestID:      "req-2",
			ConversationID: convs[0].ID,
			Text:           "   ",
		})

		var errPayload protocol.ErrorPayload
		peer.expect(protocol.MsgError, &errPayload)
		Expect(errPayload.RequestID).To(Equal("req-2"))
		Expect(errPayload.Message).To(Equal(server.ErrEmptyMessage.Error()))
	})

	It("delivers a sent message to the sender's other connections", func() {
		laptop := dial(url)
		convs := laptop.identify("seller-1", "Seller").Conversations
		phone := dial(url)
		phone.identify("seller-1", "Seller")

		laptop.send(protocol.MsgSendMessage, protocol.SendMessagePayload{
			RequestID:      "req-5",
			ConversationID: convs[0].ID,
			Text:           "From the laptop",
		})

		var ack protocol.MessageSentPayload
		laptop.expect(protocol.MsgMessageSent, &ack)

		var delivered protocol.NewMessagePayload
		phone.expect(protocol.MsgNewMessage, &delivered)
		Expect(delivered.Message.ID).To(Equal(ack.Message.ID))
		Expect(delivered.Message.Text).To(Equal("From the laptop"))
	})

	It("lists conversations on request", func() {
		peer := dial(url)
		first := peer.identify("seller-1", "Seller").Conversations

		peer.send(protocol.MsgListConversations, struct{}{})
		var listed protocol.ConversationsPayload
		peer.expect(protocol.MsgConversations, &listed)
		Expect(listed.Conversations).To(Equal(first))
	})

	It("rejects requests before identify", func() {
		peer := dial(url)
		peer.send(protocol.MsgSendMessage, protocol.SendMessagePayload{RequestID: "req-3", ConversationID: "x", Text: "hi"})

		var errPayload protocol.ErrorPayload
		peer.expect(protocol.MsgError, &errPayload)
		Expect(errPayload.RequestID).To(Equal("req-3"))
	})

	It("delivers messages and presence to the counterpart", func() {
		seller := dial(url)
		convs := seller.identify("seller-1", "Seller").Conversations

		jane := dial(url)
		janeConvs := jane.identify("jane", "Jane").Conversations
		Expect(janeConvs).To(HaveLen(1))
		Expect(janeConvs[0].Name).To(Equal("Seller"))
		Expect(janeConvs[0].Status).To(Equal(string(chat.StatusOnline)))

		var presence protocol.PresencePayload
		seller.expect(protocol.MsgPresence, &presence)
		Expect(presence.UserID).To(Equal("jane"))
		Expect(presence.Status).To(Equal(string(chat.StatusOnline)))

		seller.send(protocol.MsgSendMessage, protocol.SendMessagePayload{
			RequestID:      "req-4",
			ConversationID: convs[0].ID,
			Text:           "Is Saturday fine?",
		})

		var delivered protocol.NewMessagePayload
		jane.expect(protocol.MsgNewMessage, &delivered)
		Expect(delivered.Message.Text).To(Equal("Is Saturday fine?"))
		Expect(delivered.Message.SenderID).To(Equal("seller-1"))

		Expect(jane.conn.Close()).To(Succeed())
		seller.expect(protocol.MsgPresence, &presence)
		Expect(presence.UserID).To(Equal("jane"))
		Expect(presence.Status).To(Equal(string(chat.StatusOffline)))
	})
})
