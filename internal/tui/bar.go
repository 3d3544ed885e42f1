package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mabhi256/jprobe/internal/meta"
	"github.com/mabhi256/jprobe/utils"
)

const (
	DefaultLabelWidth = 16
	MinBarWidth       = 1
)

// BarData represents a single bar in the chart
type BarData struct {
	Label string
	Count int
	Total int
	Style lipgloss.Style
}

func (b BarData) Percentage() float64 {
	if b.Total == 0 {
		return 0
	}
	return float64(b.Count) * 100 / float64(b.Total)
}

// CreateHorizontalBar renders "Label │████▱▱▱│ 3 (42.9%)".
func CreateHorizontalBar(data BarData, barAreaWidth int) string {
	barWidth := 0
	if data.Count > 0 {
		barWidth = max(MinBarWidth, int(data.Percentage()*float64(barAreaWidth)/100))
	}
	emptyWidth := max(0, barAreaWidth-barWidth)

	bar := strings.Repeat("█", barWidth) + strings.Repeat("▱", emptyWidth)
	return fmt.Sprintf("%-*s │%s│ %d (%4.1f%%)",
		DefaultLabelWidth, data.Label, data.Style.Render(bar), data.Count, data.Percentage())
}

// accessBreakdown counts the declared members of c per visibility, in the
// order public, protected, package, private.
func accessBreakdown(c *meta.Class) []BarData {
	var mods []meta.Modifier
	for _, f := range c.DeclaredFields() {
		mods = append(mods, f.Modifiers)
	}
	for _, m := range c.DeclaredMethods() {
		mods = append(mods, m.Modifiers)
	}
	for _, ctor := range c.DeclaredConstructors() {
		mods = append(mods, ctor.Modifiers)
	}

	bars := []BarData{
		{Label: "public", Style: utils.GetAccessStyle(meta.Public)},
		{Label: "protected", Style: utils.GetAccessStyle(meta.Protected)},
		{Label: "package-private", Style: utils.GetAccessStyle(0)},
		{Label: "private", Style: utils.GetAccessStyle(meta.Private)},
	}
	for _, m := range mods {
		switch {
		case m.IsPublic():
			bars[0].Count++
		case m.IsProtected():
			bars[1].Count++
		case m.IsPrivate():
			bars[3].Count++
		default:
			bars[2].Count++
		}
	}
	for i := range bars {
		bars[i].Total = len(mods)
	}
	return bars
}
