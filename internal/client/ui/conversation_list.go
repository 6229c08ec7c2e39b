package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yourusername/vowswap-chat/internal/chat"
)

// ConversationList is the left-hand list the viewer picks a conversation from
type ConversationList struct {
	items  []chat.Conversation
	cursor int
	width  int
	height int
}

// SetItems replaces the list, keeping the cursor on the same conversation
// when it is still present
func (l *ConversationList) SetItems(items []chat.Conversation) {
	var currentID string
	if c, ok := l.Current(); ok {
		currentID = c.ID
	}

	l.items = items
	if i := l.Index(currentID); i >= 0 {
		l.cursor = i
		return
	}
	l.cursor = min(l.cursor, max(len(items)-1, 0))
}

func (l *ConversationList) SetSize(width, height int) {
	l.width = width
	l.height = height
}

func (l ConversationList) Items() []chat.Conversation {
	return l.items
}

func (l *ConversationList) MoveUp() {
	if l.cursor > 0 {
		l.cursor--
	}
}

func (l *ConversationList) MoveDown() {
	if l.cursor < len(l.items)-1 {
		l.cursor++
	}
}

// Current returns the conversation under the cursor
func (l ConversationList) Current() (chat.Conversation, bool) {
	if l.cursor < 0 || l.cursor >= len(l.items) {
		return chat.Conversation{}, false
	}
	return l.items[l.cursor], true
}

// Find returns the conversation with id
func (l ConversationList) Find(id string) (chat.Conversation, bool) {
	if i := l.Index(id); i >= 0 {
		return l.items[i], true
	}
	return chat.Conversation{}, false
}

// Index returns the position of id, or -1
func (l ConversationList) Index(id string) int {
	if id == "" {
		return -1
	}
	for i, c := range l.items {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// View renders the list. selectedID is the open conversation.
func (l ConversationList) View(selectedID string, focused bool) string {
	title := lipgloss.NewStyle().
		Foreground(accentColor).
		Bold(true).
		Width(l.width).
		Align(lipgloss.Center).
		Render("MESSAGES")

	if len(l.items) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, mutedStyle.Render(" No conversations yet"))
	}

	lines := make([]string, 0, len(l.items))
	for i, c := range l.items {
		marker := "  "
		if focused && i == l.cursor {
			marker = cursorStyle.Render("> ")
		}

		dot := lipgloss.NewStyle().Foreground(offlineColor).Render("○")
		if c.Status.IsOnline() {
			dot = lipgloss.NewStyle().Foreground(onlineColor).Render("●")
		}

		style := listItemStyle
		if c.ID == selectedID {
			style = selectedItemStyle
		}

		line := marker + dot + style.Render(c.Name) + mutedStyle.Render(typeTag(c.Type))
		lines = append(lines, lipgloss.NewStyle().MaxWidth(l.width).Render(line))
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, "", strings.Join(lines, "\n"))
}

func typeTag(t chat.ConversationType) string {
	switch t {
	case chat.TypeBuyer:
		return "buyer"
	case chat.TypeVenue:
		return "venue"
	case chat.TypeSupport:
		return "support"
	case chat.TypeOther:
		return ""
	default:
		return ""
	}
}
