package connection_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/yourusername/vowswap-chat/internal/chat"
	"github.com/yourusername/vowswap-chat/internal/client/connection"
	"github.com/yourusername/vowswap-chat/internal/server"
)

var _ = Describe("Manager", func() {
	var (
		mgr    *connection.Manager
		events chan connection.Event
		ctx    context.Context
	)

	waitFor := func(match func(connection.Event) bool) {
		Eventually(events).WithTimeout(2 * time.Second).Should(Receive(Satisfy(match)))
	}

	isConversations := func(e connection.Event) bool {
		_, ok := e.(connection.ConversationsEvent)
		return ok
	}

	BeforeEach(func() {
		ctx = context.Background()

		srv := server.NewServer(100)
		runCtx, cancel := context.WithCancel(ctx)
		DeferCleanup(cancel)
		go srv.Run(runCtx)

		ts := httptest.NewServer(http.HandlerFunc(srv.HandleWebSocket))
		DeferCleanup(ts.Close)

		mgr = connection.NewManager("ws"+strings.TrimPrefix(ts.URL, "http"), "seller-1", "Seller")
		events = make(chan connection.Event, 64)
		mgr.OnEvent(func(e connection.Event) { events <- e })

		Expect(mgr.Connect()).To(Succeed())
		DeferCleanup(mgr.Disconnect)
		waitFor(isConversations)
	})

	It("exposes the conversation list as domain types", func() {
		convs := mgr.Conversations()
		Expect(convs).To(HaveLen(3))
		Expect(convs[0].Name).To(Equal("Jane"))
		Expect(convs[0].Type).To(Equal(chat.TypeBuyer))
		Expect(convs[0].Status).To(Equal(chat.StatusOffline))
		Expect(convs[1].Type).To(Equal(chat.TypeVenue))
		Expect(convs[2].Type).To(Equal(chat.TypeSupport))
	})

	It("refreshes the conversation list on request", func() {
		Expect(mgr.RefreshConversations()).To(Succeed())
		waitFor(isConversations)
		Expect(mgr.Conversations()).To(HaveLen(3))
		Expect(mgr.UserID()).To(Equal("seller-1"))
	})

	It("loads history with directions relative to the viewer", func() {
		buyer := mgr.Conversations()[0]
		Expect(mgr.LoadHistory(buyer.ID)).To(Succeed())
		waitFor(func(e connection.Event) bool {
			me, ok := e.(connection.MessagesEvent)
			return ok && me.ConversationID == buyer.ID
		})

		messages := mgr.Messages(buyer.ID)
		Expect(messages).To(HaveLen(2))
		Expect(messages[0].Direction).To(Equal(chat.Received))
		Expect(messages[0].Timestamp).To(Equal("10:30 AM"))
		Expect(messages[1].Direction).To(Equal(chat.Sent))
	})

	It("sends and caches the acknowledged message", func() {
		buyer := mgr.Conversations()[0]
		Expect(mgr.Send(ctx, buyer.ID, "Hello")).To(Succeed())

		messages := mgr.Messages(buyer.ID)
		Expect(messages).NotTo(BeEmpty())
		last := messages[len(messages)-1]
		Expect(last.Text).To(Equal("Hello"))
		Expect(last.Direction).To(Equal(chat.Sent))
	})

	It("returns the server's rejection", func() {
		err := mgr.Send(ctx, "missing", "Hello")
		var serverErr *connection.ServerError
		Expect(errors.As(err, &serverErr)).To(BeTrue())
		Expect(serverErr.Message).To(Equal(server.ErrConversationNotFound.Error()))
	})

	It("fails fast when disconnected", func() {
		mgr.Disconnect()
		Expect(mgr.IsConnected()).To(BeFalse())
		Expect(mgr.Send(ctx, "any", "Hello")).To(MatchError(connection.ErrNotConnected))
	})

	It("honours context cancellation", func() {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		err := mgr.Send(cancelled, mgr.Conversations()[0].ID, "Hello")
		// The ack may win the race; either outcome is a completed call
		if err != nil {
			Expect(err).To(MatchError(context.Canceled))
		}
	})
})

var _ = Describe("State", func() {
	It("ignores duplicate messages", func() {
		state := connection.NewState()
		msg := wireMessage("m1", "c1")
		Expect(state.AppendMessage(msg)).To(BeTrue())
		Expect(state.AppendMessage(msg)).To(BeFalse())
		Expect(state.Messages("c1")).To(HaveLen(1))
	})

	It("applies presence to matching counterparts", func() {
		state := connection.NewState()
		state.SetConversations(wireConversations())

		Expect(state.SetPresence("jane", "online")).To(BeTrue())
		Expect(state.SetPresence("jane", "online")).To(BeFalse())
		Expect(state.Conversations()[0].Status).To(Equal("online"))
		Expect(state.Conversations()[1].Status).To(Equal("offline"))
	})
})
