package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/yourusername/vowswap-chat/internal/chat"
)

// Action is a control offered by the header or the composer.
type Action string

const (
	ActionCall   Action = "call"
	ActionReport Action = "report"
	ActionAttach Action = "attach"
	ActionSend   Action = "send"
)

// NoticeKind identifies which banner sits above the message list.
type NoticeKind int

const (
	NoticeVenue NoticeKind = iota + 1
	NoticeSupport
)

const (
	venueNoticeText   = "This is an official communication channel with your venue. All messages are recorded for verification purposes."
	supportNoticeText = "You're chatting with VowSwap Support. We're here to help with any questions or concerns."

	composerPlaceholder = "Type your message..."
	emptyTitle          = "Select a conversation"
	emptySubtitle       = "Choose a conversation from the list to start messaging"
)

// Layout is the render tree of the panel as data. View draws it.
type Layout struct {
	// Empty is set when no conversation is selected. Nothing else is then set.
	Empty    bool
	Header   *Header
	Notice   *Notice
	Messages []chat.Message
	Composer *Composer
}

// Header is the top bar: counterpart name, presence and actions.
type Header struct {
	Name     string
	Presence Presence
	Actions  []Action
}

// Presence is the counterpart's status as shown next to the name.
type Presence struct {
	Online bool
	Label  string
}

// Notice is the banner between the header and the messages.
type Notice struct {
	Kind NoticeKind
	Text string
}

// Composer is the input row under the messages.
type Composer struct {
	Draft       string
	Placeholder string
	Actions     []Action
	// Error is the last failed send, cleared by the next edit or send.
	Error string
}

// ViewConfig wires a ConversationView to the rest of the client.
type ViewConfig struct {
	Sender      chat.MessageSender
	Policy      chat.SubmitPolicy
	SendTimeout time.Duration
	MaxDraft    int
}

// ConversationView is the right-hand panel: header, notice, messages and
// composer for the selected conversation, or the empty state.
type ConversationView struct {
	conversation *chat.Conversation
	messages     []chat.Message

	draft       DraftBinding
	sender      chat.MessageSender
	policy      chat.SubmitPolicy
	sendTimeout time.Duration

	input    textinput.Model
	viewport viewport.Model
	focused  bool
	sendErr  error

	// Failures that arrived while another conversation was open, by
	// conversation ID. Shown again when that conversation is reopened.
	unsent map[string]SendResultMsg

	width  int
	height int
}

// NewConversationView creates an empty panel bound to draft
func NewConversationView(draft DraftBinding, cfg ViewConfig) ConversationView {
	input := textinput.New()
	input.Placeholder = composerPlaceholder
	input.Prompt = ""
	if cfg.MaxDraft > 0 {
		input.CharLimit = cfg.MaxDraft
	}
	input.SetValue(draft.Text())

	v := ConversationView{
		draft:       draft,
		sender:      cfg.Sender,
		policy:      cfg.Policy,
		sendTimeout: cfg.SendTimeout,
		input:       input,
		unsent:      make(map[string]SendResultMsg),
		viewport:    viewport.New(80, 10),
		width:       80,
		height:      20,
	}
	v.refreshViewport(true)
	return v
}

// SetConversation shows conv with its messages. A nil conv shows the empty state.
func (v *ConversationView) SetConversation(conv *chat.Conversation, messages []chat.Message) {
	if conv == nil {
		v.conversation = nil
		v.messages = nil
		v.sendErr = nil
		v.refreshViewport(true)
		return
	}

	switched := v.conversation == nil || v.conversation.ID != conv.ID
	c := *conv
	v.conversation = &c
	v.messages = append([]chat.Message(nil), messages...)
	if switched {
		v.sendErr = nil
		v.restoreUnsent(conv.ID)
	}
	v.refreshViewport(switched)
}

// Conversation returns the conversation shown, if any
func (v ConversationView) Conversation() (chat.Conversation, bool) {
	if v.conversation == nil {
		return chat.Conversation{}, false
	}
	return *v.conversation, true
}

// SetSize sets the outer size of the panel
func (v *ConversationView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.refreshViewport(false)
}

// Focus lets the composer take key input
func (v *ConversationView) Focus() tea.Cmd {
	v.focused = true
	return v.input.Focus()
}

// Blur stops the composer from taking key input
func (v *ConversationView) Blur() {
	v.focused = false
	v.input.Blur()
}

// Focused reports whether the composer takes key input
func (v ConversationView) Focused() bool {
	return v.focused
}

// Layout returns what the panel shows for the current state
func (v ConversationView) Layout() Layout {
	if v.conversation == nil {
		return Layout{Empty: true}
	}

	conv := *v.conversation
	composer := &Composer{
		Draft:       v.draft.Text(),
		Placeholder: composerPlaceholder,
		Actions:     []Action{ActionAttach, ActionSend},
	}
	if v.sendErr != nil {
		composer.Error = v.sendErr.Error()
	}

	return Layout{
		Header: &Header{
			Name:     conv.Name,
			Presence: presenceFor(conv.Status),
			Actions:  headerActions(conv),
		},
		Notice:   noticeFor(conv.Type),
		Messages: append([]chat.Message(nil), v.messages...),
		Composer: composer,
	}
}

// Update handles key input for the composer and send outcomes
func (v ConversationView) Update(msg tea.Msg) (ConversationView, tea.Cmd) {
	switch msg := msg.(type) {
	case SendResultMsg:
		v.handleSendResult(msg)
		return v, nil

	case tea.KeyMsg:
		if v.conversation == nil || !v.focused {
			return v, nil
		}

		switch msg.String() {
		case "enter", "ctrl+s":
			cmd := v.Submit()
			return v, cmd
		case "ctrl+p":
			if v.conversation.HasCallAction() {
				return v, actionCmd(ActionCall, v.conversation.ID)
			}
			return v, nil
		case "ctrl+r":
			return v, actionCmd(ActionReport, v.conversation.ID)
		case "ctrl+a":
			return v, actionCmd(ActionAttach, v.conversation.ID)
		case "pgup", "pgdown":
			var cmd tea.Cmd
			v.viewport, cmd = v.viewport.Update(msg)
			return v, cmd
		}

		v.syncInput()
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		if value := v.input.Value(); value != v.draft.Text() {
			v.draft.Set(value)
			v.sendErr = nil
		}
		return v, cmd
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// Submit sends the draft when it has non-whitespace content. The draft is
// cleared before the send completes; the returned command yields a
// SendResultMsg.
func (v *ConversationView) Submit() tea.Cmd {
	if v.conversation == nil {
		return nil
	}

	text, ok := v.policy.Outgoing(v.draft.Text())
	if !ok {
		return nil
	}

	v.draft.Set("")
	v.input.SetValue("")
	v.sendErr = nil

	if v.sender == nil {
		return nil
	}
	return sendCmd(v.sender, v.sendTimeout, v.conversation.ID, text)
}

func (v *ConversationView) handleSendResult(msg SendResultMsg) {
	if msg.Err == nil {
		return
	}
	if v.conversation == nil || v.conversation.ID != msg.ConversationID {
		v.unsent[msg.ConversationID] = msg
		return
	}
	v.showFailure(msg)
}

// restoreUnsent shows a failure kept for conversationID, if any
func (v *ConversationView) restoreUnsent(conversationID string) {
	msg, ok := v.unsent[conversationID]
	if !ok {
		return
	}
	delete(v.unsent, conversationID)
	v.showFailure(msg)
}

func (v *ConversationView) showFailure(msg SendResultMsg) {
	v.sendErr = msg.Err
	// Never overwrite what the user typed since submitting
	if v.policy.RestoreDraftOnFailure && v.draft.Text() == "" {
		v.draft.Set(msg.Text)
		v.input.SetValue(msg.Text)
		v.input.CursorEnd()
	}
}

// syncInput pulls in draft changes made by the owner
func (v *ConversationView) syncInput() {
	if text := v.draft.Text(); v.input.Value() != text {
		v.input.SetValue(text)
		v.input.CursorEnd()
	}
}

func headerActions(conv chat.Conversation) []Action {
	actions := make([]Action, 0, 2)
	if conv.HasCallAction() {
		actions = append(actions, ActionCall)
	}
	return append(actions, ActionReport)
}

func presenceFor(status chat.PresenceStatus) Presence {
	if status.IsOnline() {
		return Presence{Online: true, Label: "Online"}
	}
	return Presence{Online: false, Label: "Offline"}
}

func noticeFor(t chat.ConversationType) *Notice {
	switch t {
	case chat.TypeVenue:
		return &Notice{Kind: NoticeVenue, Text: venueNoticeText}
	case chat.TypeSupport:
		return &Notice{Kind: NoticeSupport, Text: supportNoticeText}
	case chat.TypeBuyer, chat.TypeOther:
		return nil
	default:
		return nil
	}
}
