package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// updateLoading handles loading screen updates
func (m Model) updateLoading(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.Disconnect()
		return m, tea.Quit
	}
	return m, nil
}

// viewLoading renders the loading/connection screen
func (m Model) viewLoading() string {
	// Title
	title := titleStyle.Render("💬 VOWSWAP MESSAGES")
	subtitle := subtitleStyle.Render("Connecting to your inbox...")

	// Animated loading dots
	dots := strings.Repeat(".", m.loadingDots)
	frames := []rune("◐◓◑◒")
	spinner := spinnerStyle.Render(string(frames[m.loadingDots%len(frames)]))

	text := "Establishing connection" + dots
	if m.waitingToRetry {
		text = fmt.Sprintf("Retrying (attempt %d of %d)%s", m.reconnectAttempt+1, m.maxReconnects, dots)
	}
	loadingText := lipgloss.NewStyle().
		Foreground(mutedColor).
		Render(text)

	// Error message if connection failed
	var errorMsg string
	if m.err != nil {
		errorMsg = errorStyle.Render("\n\n✗ Connection failed: " + m.err.Error())
		if m.reconnectAttempt >= m.maxReconnects {
			errorMsg += mutedStyle.Render("\nGave up reconnecting. Press ESC to quit")
		}
	}

	// Main content
	mainContent := lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		subtitle,
		"\n\n",
		spinner+" "+loadingText,
		errorMsg,
	)

	// Instructions at bottom
	instructions := instructionStyle.Render(
		mutedStyle.Render("Connecting to ") + highlightStyle.Render(m.serverURL) + "  •  " +
			mutedStyle.Render("ESC to quit"))

	// Layout
	centeredMain := lipgloss.Place(m.width, m.height-5, lipgloss.Center, lipgloss.Center, mainContent)
	bottomInstructions := lipgloss.Place(m.width, 3, lipgloss.Center, lipgloss.Bottom, instructions)

	return centeredMain + "\n" + bottomInstructions
}
