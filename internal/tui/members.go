package tui

import (
	"fmt"
	"strings"

	"github.com/mabhi256/jprobe/internal/meta"
	"github.com/mabhi256/jprobe/utils"
)

func RenderMembersTab(c *meta.Class) string {
	if c == nil {
		return utils.MutedStyle.Render("No class loaded")
	}

	var lines []string
	section := func(title string, n int) {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, utils.TitleStyle.Render(fmt.Sprintf("%s (%d)", title, n)))
		if n == 0 {
			lines = append(lines, utils.MutedStyle.Render("  none"))
		}
	}

	fields := c.DeclaredFields()
	section("Fields", len(fields))
	for _, f := range fields {
		line := "  " + f.String()
		if f.Initial != nil {
			line += utils.MutedStyle.Render(fmt.Sprintf(" = %v", f.Initial))
		}
		lines = append(lines, utils.GetAccessStyle(f.Modifiers).Render(line))
	}

	methods := c.DeclaredMethods()
	section("Methods", len(methods))
	for _, m := range methods {
		line := "  " + m.String()
		if m.Body == nil && !m.Modifiers.IsAbstract() {
			line += utils.MutedStyle.Render(" (no body)")
		}
		lines = append(lines, utils.GetAccessStyle(m.Modifiers).Render(line))
	}

	ctors := c.DeclaredConstructors()
	section("Constructors", len(ctors))
	for _, ctor := range ctors {
		lines = append(lines, utils.GetAccessStyle(ctor.Modifiers).Render("  "+ctor.String()))
	}

	return strings.Join(lines, "\n")
}
