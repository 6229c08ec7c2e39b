package chat

// Sample conversation ids used by the offline inbox and server seeding.
const (
	SampleBuyerID   = "sample-buyer"
	SampleVenueID   = "sample-venue"
	SampleSupportID = "sample-support"
)

// SampleConversations returns one conversation of each notice-bearing type
// plus a buyer thread.
func SampleConversations() []Conversation {
	return []Conversation{
		{ID: SampleBuyerID, Name: "Jane", Status: StatusOnline, Type: TypeBuyer},
		{ID: SampleVenueID, Name: "The Grand Estate", Status: StatusOffline, Type: TypeVenue},
		{ID: SampleSupportID, Name: "VowSwap Support", Status: StatusOnline, Type: TypeSupport},
	}
}

// SampleMessage is sample content before it is bound to a conversation.
type SampleMessage struct {
	Text      string
	Timestamp string
	Direction Direction
}

// SampleThread is the opening exchange of the sample buyer conversation.
var SampleThread = []SampleMessage{
	{
		Text:      "Hi, I'm interested in your September 24th wedding date. Is it still available?",
		Timestamp: "10:30 AM",
		Direction: Received,
	},
	{
		Text:      "Yes, it's still available! The venue is The Grand Estate and includes full catering package.",
		Timestamp: "10:35 AM",
		Direction: Sent,
	},
}

// SampleMessages returns the sample thread bound to conversationID.
func SampleMessages(conversationID string) []Message {
	messages := make([]Message, len(SampleThread))
	for i, s := range SampleThread {
		messages[i] = Message{
			ID:             conversationID + "-sample-" + string(rune('a'+i)),
			ConversationID: conversationID,
			Text:           s.Text,
			Timestamp:      s.Timestamp,
			Direction:      s.Direction,
		}
	}
	return messages
}
