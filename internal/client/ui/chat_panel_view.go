package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yourusername/vowswap-chat/internal/chat"
)

// View renders the panel
func (v ConversationView) View() string {
	layout := v.Layout()
	if layout.Empty {
		return renderEmptyState(v.width, v.height)
	}

	// The draft may have been changed by its owner since the last key
	input := v.input
	if input.Value() != layout.Composer.Draft {
		input.SetValue(layout.Composer.Draft)
		input.CursorEnd()
	}

	sections := []string{renderHeader(*layout.Header, v.width)}
	if layout.Notice != nil {
		sections = append(sections, renderNotice(*layout.Notice, v.width))
	}
	sections = append(sections,
		v.viewport.View(),
		renderComposer(*layout.Composer, input.View(), v.width),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// refreshViewport sizes the message list to the space left by the other
// sections. It follows the newest message when follow is set or the list
// was already scrolled to the bottom.
func (v *ConversationView) refreshViewport(follow bool) {
	v.input.Width = composerInputWidth(v.width) - 3

	layout := v.Layout()
	if layout.Empty {
		v.viewport.SetContent("")
		return
	}

	used := lipgloss.Height(renderHeader(*layout.Header, v.width)) +
		lipgloss.Height(renderComposer(*layout.Composer, "", v.width))
	if layout.Notice != nil {
		used += lipgloss.Height(renderNotice(*layout.Notice, v.width))
	}

	atBottom := v.viewport.AtBottom()
	v.viewport.Width = v.width
	v.viewport.Height = max(v.height-used, 3)
	v.viewport.SetContent(renderMessages(layout.Messages, v.width))
	if follow || atBottom {
		v.viewport.GotoBottom()
	}
}

func renderEmptyState(width, height int) string {
	content := lipgloss.JoinVertical(
		lipgloss.Center,
		emptyIconStyle.Render("✉"),
		emptyTitleStyle.Render(emptyTitle),
		mutedStyle.Render(emptySubtitle),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func renderHeader(h Header, width int) string {
	dot := lipgloss.NewStyle().Foreground(offlineColor).Render("●")
	if h.Presence.Online {
		dot = lipgloss.NewStyle().Foreground(onlineColor).Render("●")
	}

	title := lipgloss.JoinVertical(
		lipgloss.Left,
		nameStyle.Render(h.Name),
		dot+" "+mutedStyle.Render(h.Presence.Label),
	)
	left := lipgloss.JoinHorizontal(lipgloss.Center, avatarStyle.Render(initial(h.Name)), title)

	labels := make([]string, len(h.Actions))
	for i, a := range h.Actions {
		labels[i] = actionStyle.Render(actionLabel(a))
	}
	actions := lipgloss.JoinHorizontal(lipgloss.Center, labels...)

	gap := max(width-lipgloss.Width(left)-lipgloss.Width(actions)-2, 1)
	row := lipgloss.JoinHorizontal(lipgloss.Center, left, strings.Repeat(" ", gap), actions)

	return headerStyle.Width(width).Render(row)
}

func renderNotice(n Notice, width int) string {
	icon := "◈"
	if n.Kind == NoticeSupport {
		icon = "✦"
	}
	return noticeStyle.Width(max(width-2, 10)).Render(icon + " " + n.Text)
}

func renderMessages(messages []chat.Message, width int) string {
	if len(messages) == 0 {
		return mutedStyle.Render("No messages yet. Say hello!")
	}

	bubbleWidth := max(width*4/5, 10)
	blocks := make([]string, len(messages))
	for i, msg := range messages {
		blocks[i] = renderBubble(msg, width, bubbleWidth)
	}
	return strings.Join(blocks, "\n\n")
}

// renderBubble draws one message: sent on the right in dark, received on the
// left in light, timestamp under the text
func renderBubble(msg chat.Message, width, maxWidth int) string {
	bubble, timeStyle, align := receivedBubbleStyle, receivedTimeStyle, lipgloss.Left
	if msg.IsSent() {
		bubble, timeStyle, align = sentBubbleStyle, sentTimeStyle, lipgloss.Right
	}

	// +2 for the bubble's horizontal padding
	w := min(max(lipgloss.Width(msg.Text), lipgloss.Width(msg.Timestamp))+2, maxWidth)
	stamp := timeStyle.Background(bubble.GetBackground()).Render(msg.Timestamp)
	body := bubble.Width(w).Render(msg.Text + "\n" + stamp)

	return lipgloss.PlaceHorizontal(width, align, body)
}

func renderComposer(c Composer, inputView string, width int) string {
	attach := actionStyle.Render(actionLabel(ActionAttach))
	send := sendButtonStyle.Render(actionLabel(ActionSend))

	box := inputBoxStyle.Width(composerInputWidth(width)).Render(inputView)
	row := lipgloss.JoinHorizontal(lipgloss.Center, attach, box, " ", send)

	var errLine string
	if c.Error != "" {
		errLine = errorStyle.Render("✗ Couldn't send: " + c.Error)
	}

	return composerStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, row, errLine))
}

// composerInputWidth is the width of the input box between the attach and
// send controls
func composerInputWidth(width int) int {
	controls := lipgloss.Width(actionStyle.Render(actionLabel(ActionAttach))) +
		lipgloss.Width(sendButtonStyle.Render(actionLabel(ActionSend))) + 1
	// composer padding and input border
	return max(width-controls-4, 10)
}

func actionLabel(a Action) string {
	switch a {
	case ActionCall:
		return "☎ Call ^P"
	case ActionReport:
		return "⚑ Report ^R"
	case ActionAttach:
		return "+ Attach ^A"
	case ActionSend:
		return "Send ⏎"
	default:
		return string(a)
	}
}

func initial(name string) string {
	for _, r := range name {
		return strings.ToUpper(string(r))
	}
	return "?"
}
