package server

import (
	"log"
	"time"

	"github.com/yourusername/vowswap-chat/internal/chat"
)

// sampleCounterparts maps each sample conversation to the user on the other side
var sampleCounterparts = map[string]string{
	chat.SampleBuyerID:   "jane",
	chat.SampleVenueID:   "grand-estate",
	chat.SampleSupportID: "vowswap-support",
}

// seedSampleConversations gives a new user the sample inbox. The sample
// thread goes into the buyer conversation.
func (s *Server) seedSampleConversations(userID string) {
	for _, sample := range chat.SampleConversations() {
		counterpartID := sampleCounterparts[sample.ID]
		s.users.Register(counterpartID, sample.Name)

		conv := s.store.CreateConversation(sample.Type, userID, counterpartID)
		if sample.Type != chat.TypeBuyer {
			continue
		}

		for _, m := range chat.SampleThread {
			sender := counterpartID
			if m.Direction == chat.Sent {
				sender = userID
			}
			if _, err := s.store.AppendAt(conv.ID, sender, m.Text, sampleTime(m.Timestamp)); err != nil {
				log.Printf("Error seeding sample message: %v", err)
			}
		}
	}
}

// sampleTime places a display timestamp such as "10:30 AM" on today's date
func sampleTime(display string) time.Time {
	now := time.Now()
	clock, err := time.Parse(chat.TimestampLayout, display)
	if err != nil {
		return now
	}
	return time.Date(now.Year(), now.Month(), now.Day(), clock.Hour(), clock.Minute(), 0, 0, time.Local)
}
