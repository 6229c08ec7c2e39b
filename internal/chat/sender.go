package chat

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrEmptyMessage         = errors.New("message is empty")
)

// MessageSender dispatches a message to the messaging backend.
type MessageSender interface {
	Send(ctx context.Context, conversationID, text string) error
}

// Directory is the read side the panel renders from.
type Directory interface {
	Conversations() []Conversation
	Messages(conversationID string) []Message
}

// SubmitPolicy decides what a submission sends and how failures are
// surfaced in the composer.
type SubmitPolicy struct {
	// TrimOutgoing sends the trimmed draft instead of the raw draft. The
	// emptiness check always trims.
	TrimOutgoing bool
	// RestoreDraftOnFailure puts the attempted text back into an empty
	// draft when the send fails.
	RestoreDraftOnFailure bool
}

// DefaultSubmitPolicy sends the draft as typed and restores it on failure.
func DefaultSubmitPolicy() SubmitPolicy {
	return SubmitPolicy{TrimOutgoing: false, RestoreDraftOnFailure: true}
}

// Outgoing returns the text to send for draft. ok is false when the draft
// is empty or whitespace only, in which case nothing should be sent.
func (p SubmitPolicy) Outgoing(draft string) (text string, ok bool) {
	trimmed := strings.TrimSpace(draft)
	if trimmed == "" {
		return "", false
	}
	if p.TrimOutgoing {
		return trimmed, true
	}
	return draft, true
}
