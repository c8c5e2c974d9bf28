package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Layout constants
const (
	// Textarea
	MinTextareaHeight    = 3
	MaxTextareaHeight    = 10
	DefaultTextareaWidth = 80
	TextAreaPaddingLeft  = 1

	// Viewport
	MinViewportHeight = 1

	// Sidebar
	SidebarWidth = 28

	// Layout
	InputBorderHeight  = 2
	HeaderHeight       = 2
	MessagePaddingLeft = 2

	// Truncation
	TruncateLength       = 24
	TruncateSuffix       = "..."
	TruncateSuffixLength = 3
)

// Color palette
var (
	PrimaryColor   = lipgloss.Color("#7C3AED") // Purple
	SecondaryColor = lipgloss.Color("#06B6D4") // Cyan
	AccentColor    = lipgloss.Color("#F59E0B") // Amber
	ErrorColor     = lipgloss.Color("#EF4444") // Red
	MutedColor     = lipgloss.Color("#6B7280") // Gray
	TextColor      = lipgloss.Color("#F9FAFB") // Light gray
	DimTextColor   = lipgloss.Color("#9CA3AF") // Dim gray
	BorderColor    = lipgloss.Color("#4B5563")
)

// Title bar
var (
	TitleStyle = lipgloss.NewStyle().
		Background(PrimaryColor).
		Foreground(TextColor).
		Bold(true)
)

// Sidebar
var (
	SidebarStyle = lipgloss.NewStyle().
			Width(SidebarWidth).
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(BorderColor).
			PaddingRight(1)

	SidebarItemStyle = lipgloss.NewStyle().
				Foreground(DimTextColor)

	SidebarSelectedStyle = lipgloss.NewStyle().
				Foreground(TextColor).
				Background(PrimaryColor).
				Bold(true)

	SidebarLoadingStyle = lipgloss.NewStyle().
				Foreground(MutedColor).
				Italic(true)
)

// Messages.
var (
	messageStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder())

	UserMessageStyle = lipgloss.NewStyle().
				Inherit(messageStyle).
				BorderForeground(PrimaryColor).
				MarginLeft(10)

	AIMessageStyle = lipgloss.NewStyle().
			Inherit(messageStyle).
			BorderForeground(SecondaryColor).
			MarginRight(10)
)

// Error
var (
	ErrorStyle = lipgloss.NewStyle().
		Foreground(ErrorColor).
		Bold(true)
)

// Input area
var (
	TextAreaStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(PrimaryColor).
		PaddingLeft(TextAreaPaddingLeft)
)

// Spinner
var (
	SpinnerStyle = lipgloss.NewStyle().
		Foreground(SecondaryColor)
)

// Help text
var (
	HelpStyle = lipgloss.NewStyle().
		Foreground(MutedColor).
		Italic(true)
)

// Viewport
var (
	ViewportStyle = lipgloss.NewStyle().Margin(0).Padding(0)
)

// MessageHorizontalFrameSize returns the horizontal frame size of AI messages.
func MessageHorizontalFrameSize() int {
	return AIMessageStyle.GetHorizontalFrameSize()
}

// Truncate truncates a string to the specified length with a suffix.
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-TruncateSuffixLength]) + TruncateSuffix
}
