package chat_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/yourusername/vowswap-chat/internal/chat"
)

var _ = Describe("Inbox", func() {
	var (
		inbox *chat.Inbox
		ctx   context.Context
	)

	BeforeEach(func() {
		inbox = chat.NewSampleInbox()
		ctx = context.Background()
	})

	It("lists the sample conversations in order", func() {
		convs := inbox.Conversations()
		Expect(convs).To(HaveLen(3))
		Expect(convs[0].Name).To(Equal("Jane"))
		Expect(convs[0].Type).To(Equal(chat.TypeBuyer))
		Expect(convs[1].Type).To(Equal(chat.TypeVenue))
		Expect(convs[2].Type).To(Equal(chat.TypeSupport))
	})

	It("seeds the sample exchange", func() {
		messages := inbox.Messages(chat.SampleBuyerID)
		Expect(messages).To(HaveLen(2))
		Expect(messages[0].Direction).To(Equal(chat.Received))
		Expect(messages[0].Timestamp).To(Equal("10:30 AM"))
		Expect(messages[1].IsSent()).To(BeTrue())
		Expect(messages[1].Timestamp).To(Equal("10:35 AM"))
	})

	It("appends sent messages after existing ones", func() {
		Expect(inbox.Send(ctx, chat.SampleBuyerID, "Hello")).To(Succeed())

		messages := inbox.Messages(chat.SampleBuyerID)
		Expect(messages).To(HaveLen(3))
		last := messages[2]
		Expect(last.Text).To(Equal("Hello"))
		Expect(last.Direction).To(Equal(chat.Sent))
		Expect(last.ID).NotTo(BeEmpty())
		Expect(last.Timestamp).NotTo(BeEmpty())
	})

	It("rejects unknown conversations", func() {
		err := inbox.Send(ctx, "missing", "Hello")
		Expect(err).To(MatchError(chat.ErrConversationNotFound))
	})

	It("rejects blank text", func() {
		Expect(inbox.Send(ctx, chat.SampleBuyerID, "  ")).To(MatchError(chat.ErrEmptyMessage))
		Expect(inbox.Messages(chat.SampleBuyerID)).To(HaveLen(2))
	})

	It("honours a cancelled context", func() {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		Expect(inbox.Send(cancelled, chat.SampleBuyerID, "Hello")).To(MatchError(context.Canceled))
	})

	It("returns copies", func() {
		messages := inbox.Messages(chat.SampleBuyerID)
		messages[0].Text = "changed"
		Expect(inbox.Messages(chat.SampleBuyerID)[0].Text).NotTo(Equal("changed"))
	})
})
