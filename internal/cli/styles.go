package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/oguzb/momentum/internal/metrics"
)

var (
	colorNone     = lipgloss.Color("#414868")
	colorVeryLow  = lipgloss.Color("#E74C3C")
	colorLow      = lipgloss.Color("#F39C12")
	colorMedium   = lipgloss.Color("#E0AF68")
	colorHigh     = lipgloss.Color("#2EC4B6")
	colorVeryHigh = lipgloss.Color("#2ECC71")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7AA2F7"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))

	barStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7AA2F7"))
)

func tierColor(t metrics.Tier) lipgloss.Color {
	switch t {
	case metrics.TierVeryLow:
		return colorVeryLow
	case metrics.TierLow:
		return colorLow
	case metrics.TierMedium:
		return colorMedium
	case metrics.TierHigh:
		return colorHigh
	case metrics.TierVeryHigh:
		return colorVeryHigh
	default:
		return colorNone
	}
}

func tierCell(t metrics.Tier, label string) string {
	return lipgloss.NewStyle().Foreground(tierColor(t)).Render(label)
}
