package tui

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor   = lipgloss.Color("#A78BFA") // violet
	secondaryColor = lipgloss.Color("#10B981") // green
	warningColor   = lipgloss.Color("#F59E0B") // amber
	errorColor     = lipgloss.Color("#F87171") // red
	mutedColor     = lipgloss.Color("#9CA3AF")
	borderColor    = lipgloss.Color("#6B7280")
	highlightColor = lipgloss.Color("#FBBF24") // yellow
	targetColor    = lipgloss.Color("#60A5FA") // blue
	textColor      = lipgloss.Color("#F9FAFB")
	surfaceColor   = lipgloss.Color("#1F2937")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Width(8)

	cellStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Padding(0, 1)

	placedCellStyle = cellStyle.
			Foreground(mutedColor)

	currentCellStyle = cellStyle.
				Bold(true).
				Foreground(surfaceColor).
				Background(highlightColor)

	sortedCellStyle = cellStyle.
			Bold(true).
			Foreground(secondaryColor)

	pileStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1).
			MarginRight(1)

	targetPileStyle = pileStyle.
			BorderForeground(targetColor)

	pileTopStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(highlightColor)

	codeStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)

	codeLineStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	codeActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(surfaceColor).
			Background(primaryColor)

	statusStyle = lipgloss.NewStyle().
			Foreground(textColor)

	flagStyle = lipgloss.NewStyle().
			Foreground(targetColor)

	historyStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	noticeStyle = lipgloss.NewStyle().
			Foreground(warningColor)
)
