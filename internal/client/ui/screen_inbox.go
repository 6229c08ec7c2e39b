package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// updateInbox handles the list and the composer
func (m Model) updateInbox(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.focus == FocusComposer {
		switch msg.String() {
		case "esc", "tab":
			m.chat.Blur()
			m.focus = FocusList
			return m, nil
		}

		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "up", "k":
		m.list.MoveUp()
	case "down", "j":
		m.list.MoveDown()
	case "enter":
		cmd := m.selectCurrent()
		return m, cmd
	case "esc":
		m.clearSelection()
	case "tab":
		if m.selectedID != "" {
			m.focus = FocusComposer
			cmd := m.chat.Focus()
			return m, cmd
		}
	case "r":
		if m.connMgr != nil {
			return m, refreshConversationsCmd(m.connMgr)
		}
		m.refresh()
	case "q":
		m.Disconnect()
		return m, tea.Quit
	}
	return m, nil
}

// viewInbox renders the list next to the open conversation
func (m Model) viewInbox() string {
	listWidth, chatWidth, contentHeight := m.panelSizes()

	listStyle, chatStyle := listBoxStyle, chatBoxStyle
	if m.focus == FocusList {
		listStyle = listStyle.BorderForeground(focusedBorderColor)
	} else {
		chatStyle = chatStyle.BorderForeground(focusedBorderColor)
	}

	listBox := listStyle.
		Width(listWidth).
		Height(contentHeight).
		Render(m.list.View(m.selectedID, m.focus == FocusList))

	chatBox := chatStyle.
		Width(chatWidth).
		Height(contentHeight).
		Render(m.chat.View())

	mainContent := lipgloss.JoinHorizontal(lipgloss.Top, listBox, chatBox)

	return lipgloss.JoinVertical(lipgloss.Left, mainContent, m.renderStatusBar())
}

// renderStatusBar renders the bottom status bar
func (m Model) renderStatusBar() string {
	viewer := lipgloss.NewStyle().
		Foreground(successColor).
		Bold(true).
		Render("Signed in as " + m.viewerName)
	if m.connMgr == nil {
		viewer += mutedStyle.Render(" (offline)")
	} else {
		viewer += mutedStyle.Render(" (" + m.connMgr.UserID() + ")")
	}

	var controls string
	if m.focus == FocusComposer {
		controls = mutedStyle.Render("ENTER: Send  •  ^P/^R/^A: Call/Report/Attach  •  ESC: List")
	} else {
		controls = mutedStyle.Render("↑/↓: Move  •  ENTER: Open  •  ESC: Close  •  R: Refresh  •  Q: Quit")
	}

	status := viewer + "  •  " + controls
	if m.lastAction != "" {
		status += "  " + highlightStyle.Render(m.lastAction+" requested")
	}
	if m.err != nil {
		status += "  " + errorStyle.Render("✗ "+m.err.Error())
	}

	return lipgloss.NewStyle().
		Foreground(fgColor).
		Width(m.width).
		MaxHeight(1).
		Render(status)
}
