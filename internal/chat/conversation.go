package chat

import "time"

// ConversationType is the category of a conversation. It decides which
// header actions and notice banner the panel shows.
type ConversationType string

const (
	TypeBuyer   ConversationType = "buyer"
	TypeVenue   ConversationType = "venue"
	TypeSupport ConversationType = "support"
	TypeOther   ConversationType = "other"
)

// ParseConversationType maps wire values onto the closed set of types.
// Anything unrecognised is TypeOther.
func ParseConversationType(s string) ConversationType {
	switch t := ConversationType(s); t {
	case TypeBuyer, TypeVenue, TypeSupport, TypeOther:
		return t
	default:
		return TypeOther
	}
}

// PresenceStatus is the counterpart's presence.
type PresenceStatus string

const (
	StatusOnline  PresenceStatus = "online"
	StatusOffline PresenceStatus = "offline"
)

// ParsePresenceStatus is a binary mapping: only "online" is online.
func ParsePresenceStatus(s string) PresenceStatus {
	if PresenceStatus(s) == StatusOnline {
		return StatusOnline
	}
	return StatusOffline
}

// IsOnline reports whether the status renders as online.
func (s PresenceStatus) IsOnline() bool {
	return s == StatusOnline
}

// Conversation is a thread with one counterpart.
type Conversation struct {
	ID     string
	Name   string
	Status PresenceStatus
	Type   ConversationType
}

// HasCallAction reports whether the header offers a call action.
func (c Conversation) HasCallAction() bool {
	switch c.Type {
	case TypeBuyer:
		return true
	case TypeVenue, TypeSupport, TypeOther:
		return false
	default:
		return false
	}
}

// Direction marks whether the viewer sent or received a message.
type Direction int

const (
	Received Direction = iota
	Sent
)

// Message is a single chat entry. Timestamp is display text.
type Message struct {
	ID             string
	ConversationID string
	Text           string
	Timestamp      string
	Direction      Direction
}

// IsSent reports whether the viewer wrote the message.
func (m Message) IsSent() bool {
	return m.Direction == Sent
}

// TimestampLayout is the display format for message times, e.g. "10:30 AM".
const TimestampLayout = "3:04 PM"

// FormatTimestamp renders t for the message list.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}
