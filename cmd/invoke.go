package cmd

import (
	"fmt"

	"github.com/mabhi256/jprobe/internal/values"
	"github.com/spf13/cobra"
)

var paramTypes []string

var invokeCmd = &cobra.Command{
	Use:   "invoke [class] [method] [args...]",
	Short: "Invoke a public method and print its integer result",
	Long: `Invoke a public method declared on the class and print its result as an integer.

Arguments are inferred from their syntax (42, 4.2, true, "text", null) or typed
with a prefix such as long:5 or String:42.`,
	Args:              cobra.MinimumNArgs(2),
	ValidArgsFunction: completeClassArg,
	RunE: func(cmd *cobra.Command, args []string) error {
		inv, err := probe(cmd, args[0])
		if err != nil {
			return err
		}
		callArgs, err := values.ParseAll(args[2:])
		if err != nil {
			return err
		}

		n, err := inv.InvokeInt(args[1], callArgs...)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), n)
		return nil
	},
}

var elevateCmd = &cobra.Command{
	Use:   "elevate [class] [method] [args...]",
	Short: "Invoke a method whatever its visibility",
	Long: `Resolve a declared method by exact name and parameter types and invoke it even
when it is private, protected or package-private.

Parameter types come from --params, or are inferred from the arguments.`,
	Args:              cobra.MinimumNArgs(2),
	ValidArgsFunction: completeClassArg,
	RunE: func(cmd *cobra.Command, args []string) error {
		inv, err := probe(cmd, args[0])
		if err != nil {
			return err
		}
		callArgs, err := values.ParseAll(args[2:])
		if err != nil {
			return err
		}

		var names []string
		if cmd.Flags().Changed("params") {
			names = append([]string{}, paramTypes...)
		}
		params, err := values.ParamTypes(classes, names, callArgs)
		if err != nil {
			return err
		}

		result, err := inv.ElevateAndInvoke(args[1], params, callArgs...)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), values.Format(result))
		return nil
	},
}

var createCmd = &cobra.Command{
	Use:               "create [class] [args...]",
	Short:             "Create an instance through the public constructor matching the argument count",
	Args:              cobra.MinimumNArgs(1),
	ValidArgsFunction: completeClassArg,
	RunE: func(cmd *cobra.Command, args []string) error {
		inv, err := probe(cmd, args[0])
		if err != nil {
			return err
		}
		newArgs, err := values.ParseAll(args[1:])
		if err != nil {
			return err
		}

		obj, err := inv.CreateInstance(len(newArgs), newArgs...)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), obj)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(invokeCmd)
	rootCmd.AddCommand(elevateCmd)
	rootCmd.AddCommand(createCmd)

	addCtorArgsFlag(invokeCmd)
	addCtorArgsFlag(elevateCmd)

	elevateCmd.Flags().StringSliceVar(&paramTypes, "params", nil, "Parameter types, comma separated (e.g. int,long,String)")
}
