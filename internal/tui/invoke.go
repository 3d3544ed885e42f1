package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mabhi256/jprobe/internal/meta"
	"github.com/mabhi256/jprobe/internal/values"
	"github.com/mabhi256/jprobe/utils"
)

func (m *Model) handleInvokeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.selectedMethod > 0 {
			m.selectedMethod--
		}
	case key.Matches(msg, keys.Down):
		if m.selectedMethod < len(m.methods)-1 {
			m.selectedMethod++
		}
	case key.Matches(msg, keys.Enter):
		m.invokeSelected()
	}
	return m, nil
}

// invokeSelected calls the selected zero-argument method with visibility
// elevation and records the outcome.
func (m *Model) invokeSelected() {
	if m.selectedMethod >= len(m.methods) {
		return
	}
	method := m.methods[m.selectedMethod]
	result, err := m.inv.ElevateAndInvoke(method.Name, nil)
	if err != nil {
		m.results[method.Signature()] = "error: " + err.Error()
		return
	}
	m.results[method.Signature()] = values.Format(result)
}

func RenderInvokeTab(methods []*meta.Method, selected int, results map[string]string) string {
	if len(methods) == 0 {
		return utils.MutedStyle.Render("No zero-argument methods declared")
	}

	lines := []string{
		utils.TitleStyle.Render("Zero-argument methods (enter invokes, visibility elevated)"),
		"",
	}
	for i, method := range methods {
		cursor := "  "
		if i == selected {
			cursor = utils.InfoStyle.Render("▶ ")
		}
		line := cursor + utils.GetAccessStyle(method.Modifiers).Render(method.String())
		if result, ok := results[method.Signature()]; ok {
			style := utils.GoodStyle
			if strings.HasPrefix(result, "error: ") {
				style = utils.CriticalStyle
			}
			line += fmt.Sprintf("  →  %s", style.Render(result))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
