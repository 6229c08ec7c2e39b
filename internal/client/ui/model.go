package ui

import (
	"errors"
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yourusername/vowswap-chat/internal/chat"
	"github.com/yourusername/vowswap-chat/internal/client/connection"
)

// ViewState represents the current view in the TUI
type ViewState int

const (
	ViewLoading ViewState = iota
	ViewInbox
)

// Focus is the part of the inbox that receives keys
type Focus int

const (
	FocusList Focus = iota
	FocusComposer
)

// Options configures the page. With a nil Conn the page runs offline on
// Directory and Sender alone.
type Options struct {
	Directory     chat.Directory
	Sender        chat.MessageSender
	Conn          *connection.Manager
	Policy        chat.SubmitPolicy
	SendTimeout   time.Duration
	MaxDraft      int
	MaxReconnects int
	ViewerName    string
	ServerURL     string
}

// Model is the main Bubble Tea model: a conversation list next to the
// selected conversation
type Model struct {
	viewState ViewState
	connMgr   *connection.Manager   // nil when offline
	eventChan chan connection.Event // Channel for connection events
	directory chat.Directory

	draft      *Draft
	list       ConversationList
	chat       ConversationView
	selectedID string
	focus      Focus

	viewerName string
	serverURL  string
	width      int
	height     int
	err        error
	lastAction string

	// Loading screen
	loadingDots      int
	reconnectAttempt int  // Current reconnection attempt
	maxReconnects    int  // Maximum reconnection attempts
	waitingToRetry   bool // True when waiting for retry delay
}

// NewModel creates the page
func NewModel(opts Options) Model {
	draft := NewDraft()
	maxReconnects := opts.MaxReconnects
	if maxReconnects <= 0 {
		maxReconnects = 5
	}

	m := Model{
		viewState:  ViewInbox,
		connMgr:    opts.Conn,
		directory:  opts.Directory,
		draft:      draft,
		focus:      FocusList,
		viewerName: opts.ViewerName,
		serverURL:  opts.ServerURL,
		chat: NewConversationView(draft, ViewConfig{
			Sender:      opts.Sender,
			Policy:      opts.Policy,
			SendTimeout: opts.SendTimeout,
			MaxDraft:    opts.MaxDraft,
		}),
		width:         80,
		height:        24,
		maxReconnects: maxReconnects,
	}

	if opts.Conn != nil {
		m.viewState = ViewLoading
		// Create event channel for connection events
		m.eventChan = make(chan connection.Event, 64)
		eventChan := m.eventChan
		// Set up event callback - when server sends events, push to channel
		opts.Conn.OnEvent(func(event connection.Event) {
			eventChan <- event
		})
	}

	m.resize()
	m.refresh()
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	// Start connection attempt on loading screen using the existing connection manager
	if m.viewState == ViewLoading && m.connMgr != nil {
		return tea.Batch(
			connectCmd(m.connMgr),           // Connect to server
			tickCmd(),                       // Tick for animations
			listenForEventsCmd(m.eventChan), // Listen for server events
		)
	}
	return nil
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.Disconnect()
			return m, tea.Quit
		}

		// Route to appropriate screen update handler
		switch m.viewState {
		case ViewLoading:
			return m.updateLoading(msg)
		case ViewInbox:
			return m.updateInbox(msg)
		}

	case connectionSuccessMsg:
		m.reconnectAttempt = 0 // Reset retry counter
		m.waitingToRetry = false
		m.err = nil
		m.viewState = ViewInbox
		m.refresh()
		return m, m.loadSelectedHistory()

	case connectionErrorMsg:
		// Connection failed
		m.err = msg.err
		m.reconnectAttempt++

		// Retry if we haven't exceeded max attempts
		if m.reconnectAttempt < m.maxReconnects {
			m.waitingToRetry = true
			return m, tea.Batch(
				tickCmd(),
				retryConnectCmd(m.reconnectAttempt),
			)
		}

		// Max retries exceeded, stay on loading screen with error
		m.waitingToRetry = false
		return m, nil

	case retryMsg:
		// Time to retry connection after delay
		if m.viewState == ViewLoading && m.reconnectAttempt < m.maxReconnects {
			m.waitingToRetry = false
			return m, connectCmd(m.connMgr)
		}
		return m, nil

	case connectionEventMsg:
		return m.handleConnectionEvent(msg.event)

	case requestErrorMsg:
		log.Printf("Request %s failed: %v", msg.request, msg.err)
		m.err = msg.err
		return m, nil

	case SendResultMsg:
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(msg)
		switch {
		case msg.Err == nil:
			m.err = nil
		case msg.ConversationID != m.selectedID:
			// The composer of another conversation shows it when reopened
			m.err = fmt.Errorf("message to %s not sent: %w", m.conversationName(msg.ConversationID), msg.Err)
		}
		m.refresh()
		return m, cmd

	case ActionMsg:
		// Calls, reports and attachments are handled outside the inbox
		log.Printf("Action %s requested for %s", msg.Action, msg.ConversationID)
		m.lastAction = string(msg.Action)
		return m, nil

	case tickMsg:
		// Update loading animation
		if m.viewState == ViewLoading {
			m.loadingDots = (m.loadingDots + 1) % 4
			return m, tickCmd()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.chat, cmd = m.chat.Update(msg)
	return m, cmd
}

// View renders the current view
func (m Model) View() string {
	switch m.viewState {
	case ViewLoading:
		return m.viewLoading()
	case ViewInbox:
		return m.viewInbox()
	}
	return ""
}

// Disconnect safely disconnects the connection manager
func (m *Model) Disconnect() {
	if m.connMgr != nil {
		m.connMgr.Disconnect()
	}
}

// SelectedID returns the open conversation, or ""
func (m Model) SelectedID() string {
	return m.selectedID
}

// Draft returns the composer text
func (m Model) Draft() string {
	return m.draft.Text()
}

// ChatLayout returns what the conversation panel currently shows
func (m Model) ChatLayout() Layout {
	return m.chat.Layout()
}

// Add new event handlers below when you add new event types in connection/events.go
func (m Model) handleConnectionEvent(event connection.Event) (tea.Model, tea.Cmd) {
	listen := listenForEventsCmd(m.eventChan)

	switch e := event.(type) {
	case connection.ConnectedEvent:
		// Handled by connectionSuccessMsg
		return m, listen

	case connection.DisconnectedEvent:
		m.err = e.Error
		if m.err == nil {
			m.err = connection.ErrConnectionClosed
		}
		// Failed dials are retried by connectionErrorMsg
		if m.viewState == ViewLoading {
			return m, listen
		}

		// Lost connection - go back to loading screen and reconnect
		m.viewState = ViewLoading
		m.reconnectAttempt = 0
		return m, tea.Batch(connectCmd(m.connMgr), tickCmd(), listen)

	case connection.ErrorEvent:
		// Server sent error - show it but stay on current screen
		m.err = errors.New(e.Message)
		return m, listen

	case connection.ConversationsEvent, connection.PresenceEvent:
		m.refresh()
		return m, listen

	case connection.MessagesEvent:
		if e.ConversationID == m.selectedID {
			m.refresh()
		}
		return m, listen

	default:
		// Unknown event type - just keep listening
		return m, listen
	}
}

// refresh reloads the list and the open conversation from the directory
func (m *Model) refresh() {
	if m.directory == nil {
		return
	}

	m.list.SetItems(m.directory.Conversations())
	if m.selectedID == "" {
		return
	}

	conv, ok := m.list.Find(m.selectedID)
	if !ok {
		m.clearSelection()
		return
	}
	m.chat.SetConversation(&conv, m.directory.Messages(conv.ID))
}

// selectCurrent opens the conversation under the list cursor
func (m *Model) selectCurrent() tea.Cmd {
	conv, ok := m.list.Current()
	if !ok {
		return nil
	}

	m.selectedID = conv.ID
	m.chat.SetConversation(&conv, m.directory.Messages(conv.ID))
	m.focus = FocusComposer

	return tea.Batch(m.chat.Focus(), m.loadSelectedHistory())
}

func (m Model) conversationName(id string) string {
	if conv, ok := m.list.Find(id); ok {
		return conv.Name
	}
	return id
}

func (m *Model) clearSelection() {
	m.selectedID = ""
	m.chat.SetConversation(nil, nil)
	m.chat.Blur()
	m.focus = FocusList
}

func (m Model) loadSelectedHistory() tea.Cmd {
	if m.connMgr == nil || m.selectedID == "" {
		return nil
	}
	return loadHistoryCmd(m.connMgr, m.selectedID)
}

// resize splits the screen: list on the left, conversation on the right
func (m *Model) resize() {
	listWidth, chatWidth, contentHeight := m.panelSizes()
	m.list.SetSize(listWidth, contentHeight)
	m.chat.SetSize(chatWidth, contentHeight)
}

func (m Model) panelSizes() (listWidth, chatWidth, contentHeight int) {
	listWidth = max(m.width*3/10, 20)
	chatWidth = max(m.width-listWidth-4, 30) // two bordered boxes
	contentHeight = max(m.height-4, 10)      // borders and status bar
	return listWidth, chatWidth, contentHeight
}
