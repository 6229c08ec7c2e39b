package ui

import (
	"context"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yourusername/vowswap-chat/internal/chat"
	"github.com/yourusername/vowswap-chat/internal/client/connection"
)

// connectionSuccessMsg is sent when connection is established
type connectionSuccessMsg struct{}

// connectionErrorMsg is sent when connection fails
type connectionErrorMsg struct {
	err error
}

// connectionEventMsg wraps events from the connection manager
type connectionEventMsg struct {
	event connection.Event
}

// retryMsg fires when the backoff delay before a reconnect has passed
type retryMsg struct{}

// requestErrorMsg is sent when a request could not be written to the server
type requestErrorMsg struct {
	request string
	err     error
}

// tickMsg is sent periodically for animations
type tickMsg time.Time

// SendResultMsg reports the outcome of a submission. Text is what was sent.
type SendResultMsg struct {
	ConversationID string
	Text           string
	Err            error
}

// ActionMsg is emitted when a header or composer action is activated.
// The host page decides what the action does.
type ActionMsg struct {
	Action         Action
	ConversationID string
}

// connectCmd attempts to connect to the server
func connectCmd(mgr *connection.Manager) tea.Cmd {
	return func() tea.Msg {
		if err := mgr.Connect(); err != nil {
			return connectionErrorMsg{err: err}
		}
		return connectionSuccessMsg{}
	}
}

// retryConnectCmd waits before the next connection attempt (exponential backoff)
func retryConnectCmd(attempt int) tea.Cmd {
	delay := time.Duration(1<<uint(attempt-1)) * time.Second
	if delay > 16*time.Second {
		delay = 16 * time.Second
	}
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return retryMsg{}
	})
}

// listenForEventsCmd waits for the next connection event
func listenForEventsCmd(eventChan <-chan connection.Event) tea.Cmd {
	return func() tea.Msg {
		return connectionEventMsg{event: <-eventChan}
	}
}

// loadHistoryCmd asks the server for a conversation's messages
func loadHistoryCmd(mgr *connection.Manager, conversationID string) tea.Cmd {
	return func() tea.Msg {
		if err := mgr.LoadHistory(conversationID); err != nil {
			return requestErrorMsg{request: "history of " + conversationID, err: err}
		}
		return nil
	}
}

// refreshConversationsCmd asks the server for the conversation list again
func refreshConversationsCmd(mgr *connection.Manager) tea.Cmd {
	return func() tea.Msg {
		if err := mgr.RefreshConversations(); err != nil {
			return requestErrorMsg{request: "conversation list", err: err}
		}
		return nil
	}
}

// sendCmd dispatches text through sender, bounded by timeout when positive
func sendCmd(sender chat.MessageSender, timeout time.Duration, conversationID, text string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		err := sender.Send(ctx, conversationID, text)
		if err != nil {
			log.Printf("Send to %s failed: %v", conversationID, err)
		}
		return SendResultMsg{ConversationID: conversationID, Text: text, Err: err}
	}
}

// actionCmd emits an ActionMsg
func actionCmd(action Action, conversationID string) tea.Cmd {
	return func() tea.Msg {
		return ActionMsg{Action: action, ConversationID: conversationID}
	}
}

// tickCmd returns a command that sends tick messages for animations
func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
