package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/qcviz/internal/dist"
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(44)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)

	SparkHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
	SparkMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	SparkLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
)

// ProgressBar renders a meter of width cells for a value in [0, 1].
// Values above high render in red, above mid in yellow.
func ProgressBar(value float64, width int, mid, high float64) string {
	filled := int(math.Round(value * float64(width)))
	filled = max(0, min(width, filled))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	switch {
	case value > high:
		return SparkHigh.Render(bar)
	case value > mid:
		return SparkMid.Render(bar)
	}
	return SparkLow.Render(bar)
}

// Bars renders one horizontal probability bar per label.
func Bars(d dist.Distribution, labels []string, width int, c lipgloss.Color) string {
	style := lipgloss.NewStyle().Foreground(c)
	var b strings.Builder
	for _, l := range labels {
		p := math.Max(0, math.Min(1, d.Get(l)))
		filled := int(math.Round(p * float64(width)))
		b.WriteString(fmt.Sprintf("|%s⟩ ", l))
		b.WriteString(style.Render(strings.Repeat("█", filled)))
		b.WriteString(strings.Repeat("·", width-filled))
		b.WriteString(fmt.Sprintf(" %.3f\n", p))
	}
	return b.String()
}

func Separator(width int) string {
	mid := width / 2
	left := strings.Repeat("─", max(0, mid-3))
	right := strings.Repeat("─", max(0, width-mid-3))
	return helpStyle.Render(left + " ◆ " + right)
}
