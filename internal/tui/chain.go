package tui

import (
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
	"github.com/mabhi256/jprobe/internal/meta"
	"github.com/mabhi256/jprobe/utils"
)

const chartHeight = 12

var (
	fieldBarStyle  = lipgloss.NewStyle().Foreground(utils.InfoColor)
	methodBarStyle = lipgloss.NewStyle().Foreground(utils.GoodColor)
	ctorBarStyle   = lipgloss.NewStyle().Foreground(utils.WarningColor)
)

// chainBars stacks declared fields, methods and constructors for each class
// of the lineage, root first.
func chainBars(c *meta.Class) []barchart.BarData {
	lineage := meta.Lineage(c)
	data := make([]barchart.BarData, 0, len(lineage))
	for _, k := range lineage {
		data = append(data, barchart.BarData{
			Label: k.SimpleName(),
			Values: []barchart.BarValue{
				{Name: "fields", Value: float64(len(k.DeclaredFields())), Style: fieldBarStyle},
				{Name: "methods", Value: float64(len(k.DeclaredMethods())), Style: methodBarStyle},
				{Name: "constructors", Value: float64(len(k.DeclaredConstructors())), Style: ctorBarStyle},
			},
		})
	}
	return data
}

func RenderChainTab(c *meta.Class, chain string, width int) string {
	if c == nil {
		return utils.MutedStyle.Render("No class loaded")
	}

	lines := []string{
		utils.TitleStyle.Render("Inheritance chain"),
		"  " + chain,
		"",
	}

	for _, k := range meta.Ancestors(c) {
		ifaces := k.Interfaces()
		if len(ifaces) == 0 {
			continue
		}
		names := make([]string, len(ifaces))
		for i, iface := range ifaces {
			names[i] = iface.Name()
		}
		lines = append(lines, utils.FormatKeyValue(k.SimpleName()+" implements", strings.Join(names, ", "), 28))
	}

	chart := barchart.New(max(20, min(width-4, 80)), chartHeight)
	chart.PushAll(chainBars(c))
	chart.Draw()

	legend := strings.Join([]string{
		fieldBarStyle.Render("█ fields"),
		methodBarStyle.Render("█ methods"),
		ctorBarStyle.Render("█ constructors"),
	}, "  ")

	lines = append(lines, "", utils.TitleStyle.Render("Declared members per class"), chart.View(), legend)
	return strings.Join(lines, "\n")
}
