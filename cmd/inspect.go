package cmd

import (
	"fmt"

	"github.com/mabhi256/jprobe/internal/config"
	"github.com/mabhi256/jprobe/internal/investigator"
	"github.com/mabhi256/jprobe/internal/meta"
	"github.com/mabhi256/jprobe/internal/values"
	"github.com/spf13/cobra"
)

var (
	ctorArgs  []string
	delimiter string
)

var inspectCmd = &cobra.Command{
	Use:               "inspect [class]",
	Short:             "Summarize the declared structure of a class",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeClassArg,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := resolveOutput(cmd)
		if err != nil {
			return err
		}
		inv, err := probe(cmd, args[0])
		if err != nil {
			return err
		}
		summary, err := inv.Summarize()
		if err != nil {
			return err
		}

		if format == config.OutputJSON {
			return writeJSON(cmd.OutOrStdout(), summary)
		}
		fmt.Fprint(cmd.OutOrStdout(), renderSummary(summary, inv.Class()))
		return nil
	},
}

var chainCmd = &cobra.Command{
	Use:               "chain [class]",
	Short:             "Print the inheritance chain from the root to the class",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeClassArg,
	RunE: func(cmd *cobra.Command, args []string) error {
		inv, err := probe(cmd, args[0])
		if err != nil {
			return err
		}
		d := appConfig.Delimiter
		if cmd.Flags().Changed("delimiter") {
			d = delimiter
		}
		fmt.Fprintln(cmd.OutOrStdout(), inv.InheritanceChain(d))
		return nil
	},
}

// probe resolves className and loads an instance of it. --ctor-args, when
// the command has it and it was given, builds the instance through a
// constructor.
func probe(cmd *cobra.Command, className string) (*investigator.Investigator, error) {
	class, err := classes.Lookup(className)
	if err != nil {
		return nil, err
	}

	var args []meta.Value
	if f := cmd.Flags().Lookup("ctor-args"); f != nil && f.Changed {
		if args, err = values.ParseAll(ctorArgs); err != nil {
			return nil, err
		}
	}
	return investigator.Probe(class, args, investigator.WithLogger(logger))
}

func addCtorArgsFlag(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&ctorArgs, "ctor-args", nil,
		"Build the target through the public constructor taking these arguments (comma separated)")
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(chainCmd)

	addOutputFlag(inspectCmd)
	addCtorArgsFlag(inspectCmd)

	chainCmd.Flags().StringVarP(&delimiter, "delimiter", "d", "", "Separator between class names (default from config)")
}
