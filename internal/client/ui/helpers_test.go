package ui_test

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

type sendCall struct {
	ConversationID string
	Text           string
}

// fakeSender records sends and answers with SendFunc when set
type fakeSender struct {
	SendFunc func(ctx context.Context, conversationID, text string) error

	mu    sync.Mutex
	calls []sendCall
}

func (f *fakeSender) Send(ctx context.Context, conversationID, text string) error {
	f.mu.Lock()
	f.calls = append(f.calls, sendCall{ConversationID: conversationID, Text: text})
	f.mu.Unlock()

	if f.SendFunc != nil {
		return f.SendFunc(ctx, conversationID, text)
	}
	return nil
}

func (f *fakeSender) Calls() []sendCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sendCall(nil), f.calls...)
}

var (
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	escKey   = tea.KeyMsg{Type: tea.KeyEsc}
	tabKey   = tea.KeyMsg{Type: tea.KeyTab}
	downKey  = tea.KeyMsg{Type: tea.KeyDown}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
