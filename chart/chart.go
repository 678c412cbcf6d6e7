// Package chart renders the dashboard's chart series as terminal sparklines.
package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/xtrack/xtracktui/dashboard"
)

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// Styles holds the lipgloss styles for the chart widget.
type Styles struct {
	TitleStyle     lipgloss.Style
	BalanceStyle   lipgloss.Style
	GainStyle      lipgloss.Style
	LossStyle      lipgloss.Style
	AxisStyle      lipgloss.Style
	NoDataStyle    lipgloss.Style
	ContainerStyle lipgloss.Style
}

func defaultStyles() Styles {
	return Styles{
		TitleStyle:     lipgloss.NewStyle().Bold(true),
		BalanceStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("#6366f1")),
		GainStyle:      lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff00")),
		LossStyle:      lipgloss.NewStyle().Foreground(lipgloss.Color("#ff0000")),
		AxisStyle:      lipgloss.NewStyle().Foreground(lipgloss.Color("#828282")),
		NoDataStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("#828282")).Italic(true),
		ContainerStyle: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2),
	}
}

// Model is the chart widget state.
type Model struct {
	Styles Styles
	width  int
	series []dashboard.SeriesPoint
}

// New creates a chart widget with default styles.
func New() Model {
	return Model{
		Styles: defaultStyles(),
		width:  60,
	}
}

// SetSeries replaces the rendered series. The input is expected ascending by
// timestamp; the widget does not reorder it.
func (m *Model) SetSeries(series []dashboard.SeriesPoint) {
	m.series = series
}

// SetWidth bounds how many samples are shown; the most recent ones win.
func (m *Model) SetWidth(width int) {
	if width > 0 {
		m.width = width
	}
}

// View renders the equity curve and P/L sparklines with their range labels.
func (m Model) View() string {
	if len(m.series) == 0 {
		return m.Styles.NoDataStyle.Render("No data available for selected range")
	}

	visible := m.series
	if len(visible) > m.width {
		visible = visible[len(visible)-m.width:]
	}

	balances := make([]float64, len(visible))
	pls := make([]float64, len(visible))
	for i, p := range visible {
		balances[i] = p.Balance
		pls[i] = p.PL
	}

	var b strings.Builder

	b.WriteString(m.Styles.TitleStyle.Render("Equity Curve"))
	b.WriteString("\n")
	b.WriteString(m.Styles.BalanceStyle.Render(Sparkline(balances)))
	b.WriteString("\n")
	lo, hi := bounds(balances)
	b.WriteString(m.Styles.AxisStyle.Render(fmt.Sprintf("%.2f … %.2f", lo, hi)))
	b.WriteString("\n\n")

	b.WriteString(m.Styles.TitleStyle.Render("P/L Performance"))
	b.WriteString("\n")
	b.WriteString(m.renderPL(pls))
	b.WriteString("\n")
	b.WriteString(m.Styles.AxisStyle.Render(
		fmt.Sprintf("%s → %s", visible[0].Label, visible[len(visible)-1].Label),
	))

	return m.Styles.ContainerStyle.Render(b.String())
}

// renderPL colors each sample by sign so losses stand out in the sparkline.
func (m Model) renderPL(values []float64) string {
	levels := sparklineRunes(values)

	var b strings.Builder
	for i, r := range levels {
		cell := string(r)
		if values[i] < 0 {
			b.WriteString(m.Styles.LossStyle.Render(cell))
		} else {
			b.WriteString(m.Styles.GainStyle.Render(cell))
		}
	}
	return b.String()
}

// Sparkline maps values onto a single row of block glyphs. A flat series
// renders at the midpoint level.
func Sparkline(values []float64) string {
	return string(sparklineRunes(values))
}

func sparklineRunes(values []float64) []rune {
	if len(values) == 0 {
		return nil
	}

	lo, hi := bounds(values)
	span := hi - lo

	out := make([]rune, len(values))
	for i, v := range values {
		if span == 0 {
			out[i] = sparkLevels[len(sparkLevels)/2]
			continue
		}
		level := int(math.Round((v - lo) / span * float64(len(sparkLevels)-1)))
		out[i] = sparkLevels[level]
	}
	return out
}

func bounds(values []float64) (float64, float64) {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}
