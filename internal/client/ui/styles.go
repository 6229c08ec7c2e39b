package ui

import "github.com/charmbracelet/lipgloss"

// Color palette - Earthy tones (lighter for dark backgrounds)
var (
	primaryColor   = lipgloss.Color("#E8C4A0") // Light warm beige
	secondaryColor = lipgloss.Color("#7EBB81") // Light forest green
	accentColor    = lipgloss.Color("#A8C9A4") // Soft sage green
	successColor   = lipgloss.Color("#B5D99C") // Bright sage
	mutedColor     = lipgloss.Color("#B8A890") // Light taupe
	fgColor        = lipgloss.Color("#F5F3ED") // Warm white
	inkColor       = lipgloss.Color("#2B2620") // Near black, sent bubbles
	paperColor     = lipgloss.Color("#E9E4DA") // Light gray, received bubbles
	onlineColor    = lipgloss.Color("#5FBF6A") // Presence dot
	offlineColor   = lipgloss.Color("#8A8378")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			Padding(1, 2).
			Align(lipgloss.Center)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Italic(true).
			Align(lipgloss.Center)

	highlightStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	instructionStyle = lipgloss.NewStyle().
				Foreground(mutedColor).
				Italic(true).
				Margin(1, 0)

	listBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor)

	chatBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor)

	focusedBorderColor = successColor

	spinnerStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E07B7B")).
			Bold(true)

	// Conversation panel
	headerStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(mutedColor).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(fgColor).
			Bold(true)

	avatarStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Padding(0, 1)

	actionStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Padding(0, 1)

	noticeStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(secondaryColor).
			Foreground(fgColor).
			Padding(0, 1)

	sentBubbleStyle = lipgloss.NewStyle().
			Background(inkColor).
			Foreground(fgColor).
			Padding(0, 1)

	receivedBubbleStyle = lipgloss.NewStyle().
				Background(paperColor).
				Foreground(inkColor).
				Padding(0, 1)

	sentTimeStyle = lipgloss.NewStyle().
			Foreground(paperColor)

	receivedTimeStyle = lipgloss.NewStyle().
				Foreground(mutedColor)

	composerStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(mutedColor).
			Padding(0, 1)

	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(0, 1)

	sendButtonStyle = lipgloss.NewStyle().
			Background(inkColor).
			Foreground(fgColor).
			Bold(true).
			Padding(0, 1)

	emptyTitleStyle = lipgloss.NewStyle().
			Foreground(fgColor).
			Bold(true).
			MarginBottom(1)

	emptyIconStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(0, 1).
			MarginBottom(1)

	// Conversation list
	listItemStyle = lipgloss.NewStyle().
			Foreground(fgColor).
			Padding(0, 1)

	selectedItemStyle = lipgloss.NewStyle().
				Foreground(successColor).
				Bold(true).
				Padding(0, 1)

	cursorStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)
)
