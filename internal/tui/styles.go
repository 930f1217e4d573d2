package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.Color("#8B5CF6")
	blue   = lipgloss.Color("#3B82F6")
	muted  = lipgloss.Color("#9CA3AF")
	good   = lipgloss.Color("#22C55E")
	bad    = lipgloss.Color("#EF4444")

	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(accent)
	mutedStyle     = lipgloss.NewStyle().Foreground(muted)
	activeTabStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(accent).Padding(0, 2)
	tabStyle       = lipgloss.NewStyle().Foreground(muted).Padding(0, 2)
	balanceStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF"))
	cardStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(blue).Padding(1, 3)
	sheetStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accent).Padding(1, 2)
	successStyle   = lipgloss.NewStyle().Bold(true).Foreground(good)
	errorStyle     = lipgloss.NewStyle().Bold(true).Foreground(bad)
	phraseStyle    = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(muted).Padding(0, 1)
)
