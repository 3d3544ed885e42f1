package cmd

import (
	"fmt"
	"strings"

	"github.com/mabhi256/jprobe/internal/config"
	"github.com/mabhi256/jprobe/internal/registry"
	"github.com/mabhi256/jprobe/utils"
	"github.com/spf13/cobra"
)

var (
	sourceFilter string
	showAll      bool
)

type classRow struct {
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Source string `json:"source"`
}

var classesCmd = &cobra.Command{
	Use:   "classes",
	Short: "List registered classes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := resolveOutput(cmd)
		if err != nil {
			return err
		}

		infos := classes.GetAllClasses()
		if sourceFilter != "" {
			infos = classes.GetClassesBySource(sourceFilter)
		}

		var rows []classRow
		for _, info := range infos {
			if !showAll && info.Source == registry.SourceBuiltin {
				continue
			}
			rows = append(rows, classRow{
				Name:   info.Class.Name(),
				Kind:   info.Class.Kind().String(),
				Source: info.Source,
			})
		}

		if format == config.OutputJSON {
			if rows == nil {
				rows = []classRow{}
			}
			return writeJSON(cmd.OutOrStdout(), rows)
		}

		out := cmd.OutOrStdout()
		if len(rows) == 0 {
			fmt.Fprintln(out, utils.MutedStyle.Render("No classes registered"))
			return nil
		}
		header := utils.PadRight("CLASS", 48) + utils.PadRight("KIND", 11) + "SOURCE"
		fmt.Fprintln(out, utils.InfoStyle.Render(header))
		for _, row := range rows {
			fmt.Fprintln(out, strings.TrimRight(
				utils.PadRight(utils.TruncateString(row.Name, 46), 48)+utils.PadRight(row.Kind, 11)+row.Source, " "))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(classesCmd)

	addOutputFlag(classesCmd)
	classesCmd.Flags().StringVar(&sourceFilter, "source", "", "Only list classes from this source (samples, a catalog path, an imported dir)")
	classesCmd.Flags().BoolVarP(&showAll, "all", "a", false, "Include builtin classes")
}
