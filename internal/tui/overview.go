package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mabhi256/jprobe/internal/investigator"
	"github.com/mabhi256/jprobe/internal/meta"
	"github.com/mabhi256/jprobe/utils"
)

const keyWidth = 22

func RenderOverviewTab(s *investigator.Summary, c *meta.Class, width int) string {
	if s == nil || c == nil {
		return utils.MutedStyle.Render("No class loaded")
	}

	parent := utils.MutedStyle.Render("(root only)")
	if s.Extending {
		parent = s.Parent
		if s.ParentAbstract {
			parent += " (abstract)"
		}
	}

	interfaces := "none"
	if len(s.Interfaces) > 0 {
		interfaces = strings.Join(s.Interfaces, ", ")
	}

	rows := []string{
		utils.FormatKeyValue("Class", s.Class, keyWidth),
		utils.FormatKeyValue("Kind", c.Kind().String(), keyWidth),
		utils.FormatKeyValue("Modifiers", s.Modifiers, keyWidth),
		utils.FormatKeyValue("Parent", parent, keyWidth),
		utils.FormatKeyValue("Interfaces", interfaces, keyWidth),
		"",
		utils.FormatKeyValue("Methods", strconv.Itoa(s.MethodCount), keyWidth),
		utils.FormatKeyValue("Static methods", strconv.Itoa(s.StaticMethodCount), keyWidth),
		utils.FormatKeyValue("Constructors", strconv.Itoa(s.ConstructorCount), keyWidth),
		utils.FormatKeyValue("Fields", strconv.Itoa(s.FieldCount), keyWidth),
		utils.FormatKeyValue("Constant fields", strconv.Itoa(s.ConstantFieldCount), keyWidth),
		utils.FormatKeyValue("Fields across chain", fmt.Sprintf("%d (%s)", len(s.ChainFields), strings.Join(s.ChainFields, ", ")), keyWidth),
	}
	summary := utils.BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))

	barAreaWidth := max(10, min(40, width-DefaultLabelWidth-20))
	var bars []string
	bars = append(bars, utils.TitleStyle.Render("Declared members by visibility"), "")
	for _, b := range accessBreakdown(c) {
		bars = append(bars, CreateHorizontalBar(b, barAreaWidth))
	}

	return lipgloss.JoinVertical(lipgloss.Left, summary, "", strings.Join(bars, "\n"))
}
