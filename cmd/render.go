package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mabhi256/jprobe/internal/config"
	"github.com/mabhi256/jprobe/internal/investigator"
	"github.com/mabhi256/jprobe/internal/meta"
	"github.com/mabhi256/jprobe/utils"
	"github.com/spf13/cobra"
)

const keyWidth = 22

var outputFormat string

func addOutputFlag(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&outputFormat, "output", "o", "", "Output format: cli or json (default from config)")
	cmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{string(config.OutputCLI), string(config.OutputJSON)}, cobra.ShellCompDirectiveNoFileComp
	})
}

// resolveOutput prefers the --output flag over the configured format.
func resolveOutput(cmd *cobra.Command) (config.OutputFormat, error) {
	if !cmd.Flags().Changed("output") {
		return appConfig.Output, nil
	}
	format := config.OutputFormat(outputFormat)
	switch format {
	case config.OutputCLI, config.OutputJSON:
		return format, nil
	default:
		return "", fmt.Errorf("%w: %q", config.ErrInvalidOutput, outputFormat)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderSummary(s *investigator.Summary, c *meta.Class) string {
	var b strings.Builder

	title := fmt.Sprintf("%s %s", utils.GetKindIcon(c.Kind()), s.Class)
	b.WriteString(utils.TitleStyle.Render(title) + "\n\n")

	parent := "(none)"
	if s.Extending {
		parent = s.Parent
		if s.ParentAbstract {
			parent += " (abstract)"
		}
	}
	interfaces := "(none)"
	if len(s.Interfaces) > 0 {
		interfaces = strings.Join(s.Interfaces, ", ")
	}

	rows := [][2]string{
		{"Modifiers", s.Modifiers},
		{"Chain", strings.Join(s.Chain, " -> ")},
		{"Parent", parent},
		{"Interfaces", interfaces},
		{"Methods", strconv.Itoa(s.MethodCount)},
		{"Static methods", strconv.Itoa(s.StaticMethodCount)},
		{"Constructors", strconv.Itoa(s.ConstructorCount)},
		{"Fields", strconv.Itoa(s.FieldCount)},
		{"Constant fields", strconv.Itoa(s.ConstantFieldCount)},
		{"Fields across chain", strings.Join(s.ChainFields, ", ")},
	}
	for _, row := range rows {
		b.WriteString(utils.FormatKeyValue(row[0], row[1], keyWidth) + "\n")
	}

	public, total := publicShare(c)
	if total > 0 {
		pct := float64(public) / float64(total)
		b.WriteString(utils.FormatKeyValue("Public members",
			fmt.Sprintf("%s %d/%d", utils.CreateProgressBar(pct, 20, utils.GoodColor), public, total), keyWidth) + "\n")
	}

	sections := []struct {
		title string
		items []string
	}{
		{"Fields", s.Fields},
		{"Methods", s.Methods},
		{"Constructors", s.Constructors},
	}
	for _, sec := range sections {
		if len(sec.items) == 0 {
			continue
		}
		lines := make([]string, len(sec.items))
		for i, item := range sec.items {
			lines[i] = "  " + item
		}
		b.WriteString("\n" + utils.InfoStyle.Render(sec.title) + "\n")
		b.WriteString(lipgloss.JoinVertical(lipgloss.Left, lines...) + "\n")
	}

	return b.String()
}

func publicShare(c *meta.Class) (public, total int) {
	count := func(m meta.Modifier) {
		total++
		if m.IsPublic() {
			public++
		}
	}
	for _, f := range c.DeclaredFields() {
		count(f.Modifiers)
	}
	for _, m := range c.DeclaredMethods() {
		count(m.Modifiers)
	}
	for _, ctor := range c.DeclaredConstructors() {
		count(ctor.Modifiers)
	}
	return public, total
}
