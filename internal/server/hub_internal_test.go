package server

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Hub", func() {
	var (
		hub    *Hub
		cancel context.CancelFunc
		exited chan struct{}
	)

	newClient := func(id, userID string) *Client {
		return &Client{ID: id, UserID: userID, send: make(chan []byte, 8)}
	}

	BeforeEach(func() {
		hub = NewHub(NewConversationStore(10))
		var ctx context.Context
		ctx, cancel = context.WithCancel(context.Background())
		DeferCleanup(cancel)

		exited = make(chan struct{})
		go func() {
			hub.Run(ctx)
			close(exited)
		}()
	})

	It("skips the excluded connection when delivering", func() {
		first, second := newClient("c1", "seller-1"), newClient("c2", "seller-1")
		Expect(hub.Register(first)).To(BeTrue())
		Expect(hub.Register(second)).To(BeTrue())

		hub.Deliver("seller-1", []byte("hello"), first)
		Eventually(second.send).Should(Receive(Equal([]byte("hello"))))
		Consistently(first.send, 100*time.Millisecond).ShouldNot(Receive())
	})

	It("does not block callers once stopped", func() {
		cancel()
		Eventually(exited).Should(BeClosed())

		client := newClient("c1", "seller-1")
		Expect(hub.Register(client)).To(BeFalse())

		hub.Deliver("seller-1", []byte("hello"), nil)
		hub.Unregister(client)
		Expect(client.send).To(BeClosed())
	})

	It("closes the send channel of unregistered clients", func() {
		client := newClient("c1", "seller-1")
		Expect(hub.Register(client)).To(BeTrue())

		hub.Unregister(client)
		Eventually(client.send).Should(BeClosed())
		Expect(hub.IsOnline("seller-1")).To(BeFalse())
	})
})
