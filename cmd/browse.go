package cmd

import (
	"context"

	"github.com/mabhi256/jprobe/internal/config"
	"github.com/mabhi256/jprobe/internal/mcpserver"
	"github.com/mabhi256/jprobe/internal/tui"
	"github.com/mabhi256/jprobe/internal/workspace"
	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:               "browse [class]",
	Short:             "Browse classes interactively",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeClassArg,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := tui.Options{
			Delimiter: appConfig.Delimiter,
			Logger:    logger,
		}
		if len(args) == 1 {
			opts.Class = args[0]
		}
		return tui.StartTUI(classes, opts)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the investigator as MCP tools over stdio",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := mcpserver.New(classes,
			mcpserver.WithLogger(logger),
			mcpserver.WithDelimiter(appConfig.Delimiter),
			mcpserver.WithReloader(reloadClasses),
		)
		return s.ServeStdio()
	},
}

// reloadClasses re-reads the config file and rebuilds the shared registry.
func reloadClasses(ctx context.Context) error {
	cfg, _, err := config.Load(config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := workspace.Reload(ctx, classes, cfg, logger); err != nil {
		return err
	}
	appConfig = cfg
	return nil
}

func init() {
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(serveCmd)
}
