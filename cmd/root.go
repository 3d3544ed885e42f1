package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mabhi256/jprobe/internal/config"
	"github.com/mabhi256/jprobe/internal/registry"
	"github.com/mabhi256/jprobe/internal/workspace"
	"github.com/mabhi256/jprobe/utils"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	logLevel string

	appConfig *config.Config
	logger    *log.Logger
	classes   *registry.ClassRegistry
)

var rootCmd = &cobra.Command{
	Use:   "jprobe",
	Short: "Inspect and invoke class descriptors",
	Long: `jprobe investigates class descriptors: it reports declared members, walks
inheritance chains, and invokes methods and constructors by name, including
non-public ones.

Classes come from the built-in samples, TOML catalogs and imported Go packages.`,
	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if skipsSetup(cmd) {
			return nil
		}

		if isatty.IsTerminal(os.Stdout.Fd()) && isShellSupported() && !completionsExist() {
			fmt.Println("🔧 First run detected, setting up jprobe...")
			if installCompletions(cmd.Root()) == nil {
				fmt.Println("✅ Shell completions installed")
				fmt.Println("💡 Restart your shell to enable tab completion")
			} else {
				fmt.Println("⚠️  Auto-setup failed. Run 'jprobe install' to try again.")
			}
		}

		return setup(cmd.Context())
	},
}

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install shell completions",
	Run: func(cmd *cobra.Command, args []string) {
		if !isInPath() {
			printPathInstructions()
			return
		}

		if !isShellSupported() {
			fmt.Printf("❌ Shell completion not supported for: %s\n", detectShell())
			fmt.Println("Supported shells: bash, zsh, fish, powershell")
			return
		}

		if completionsExist() {
			fmt.Println("✅ Already configured!")
			return
		}

		fmt.Println("📦 Installing completions...")
		if err := installCompletions(cmd.Root()); err != nil {
			fmt.Printf("❌ Failed: %v\n", err)
		} else {
			fmt.Println("✅ Done! Restart your shell to enable tab completion.")
		}
	},
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, utils.CriticalStyle.Render("Error:"), err)
		os.Exit(1)
	}
}

func GetRootCmd() *cobra.Command {
	return rootCmd
}

func skipsSetup(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "install", "version", "help", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return true
	}
	return false
}

// setup loads configuration, builds the logger and assembles the class
// registry. It runs once per process.
func setup(ctx context.Context) error {
	if classes != nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, path, err := config.Load(config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	level, _ := cfg.Level()

	logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: config.AppName, Level: level})
	if path != "" {
		logger.Debug("config loaded", "file", path)
	}

	reg, err := workspace.Load(ctx, cfg, logger)
	if err != nil {
		return err
	}

	appConfig = cfg
	classes = reg
	return nil
}

// classNames feeds shell completion. Setup errors only mean no suggestions.
func classNames() []string {
	if err := setup(context.Background()); err != nil {
		return nil
	}
	var names []string
	for _, info := range classes.GetAllClasses() {
		if !info.Class.IsPrimitive() {
			names = append(names, info.Class.Name())
		}
	}
	return names
}

var completeClassArg = utils.CompleteClassNames(classNames)

func completionsExist() bool {
	home, _ := os.UserHomeDir()

	paths := map[string]string{
		"bash":       filepath.Join(home, ".local/share/bash-completion/completions/jprobe"),
		"zsh":        filepath.Join(home, ".zsh/completions/_jprobe"),
		"fish":       filepath.Join(home, ".config/fish/completions/jprobe.fish"),
		"powershell": filepath.Join(home, "jprobe_completion.ps1"),
	}

	path := paths[detectShell()]
	_, err := os.Stat(path)
	return err == nil
}

func isShellSupported() bool {
	shell := detectShell()
	return shell == "bash" || shell == "zsh" || shell == "fish" || shell == "powershell"
}

func detectShell() string {
	if runtime.GOOS == "windows" {
		return "powershell"
	}

	shell := filepath.Base(os.Getenv("SHELL"))
	if shell == "" || shell == "." {
		return "bash"
	}
	return shell
}

type completionConfig struct {
	dir         string
	file        string
	genFunc     func(io.Writer) error
	activateCmd string
}

func installCompletions(rootCmd *cobra.Command) error {
	home, _ := os.UserHomeDir()
	shell := detectShell()

	configs := map[string]completionConfig{
		"bash": {
			dir:     filepath.Join(home, ".local/share/bash-completion/completions"),
			file:    "jprobe",
			genFunc: rootCmd.GenBashCompletion,
			activateCmd: fmt.Sprintf("source %s",
				filepath.Join(home, ".local/share/bash-completion/completions/jprobe")),
		},
		"zsh": {
			dir:     filepath.Join(home, ".zsh/completions"),
			file:    "_jprobe",
			genFunc: rootCmd.GenZshCompletion,
			activateCmd: fmt.Sprintf("fpath=(%s $fpath) && autoload -U compinit && compinit",
				filepath.Join(home, ".zsh/completions")),
		},
		"fish": {
			dir:         filepath.Join(home, ".config/fish/completions"),
			file:        "jprobe.fish",
			genFunc:     func(w io.Writer) error { return rootCmd.GenFishCompletion(w, true) },
			activateCmd: "complete --do-complete=jprobe",
		},
		"powershell": {
			dir:     home,
			file:    "jprobe_completion.ps1",
			genFunc: rootCmd.GenPowerShellCompletionWithDesc,
			activateCmd: fmt.Sprintf(". %s",
				filepath.Join(home, "jprobe_completion.ps1")),
		},
	}

	cc, ok := configs[shell]
	if !ok {
		return fmt.Errorf("unsupported shell: %s", shell)
	}

	if err := os.MkdirAll(cc.dir, 0755); err != nil {
		return err
	}

	file, err := os.Create(filepath.Join(cc.dir, cc.file))
	if err != nil {
		return err
	}
	defer file.Close()

	if err := cc.genFunc(file); err != nil {
		return err
	}

	fmt.Printf("🔄 Running this command to enable auto-completions:\n")
	fmt.Printf("   %s\n", cc.activateCmd)

	return nil
}

func isInPath() bool {
	execPath, err := os.Executable()
	if err != nil {
		return false
	}

	pathEnv := os.Getenv("PATH")
	paths := strings.Split(pathEnv, string(os.PathListSeparator))
	execDir := filepath.Dir(execPath)

	return slices.Contains(paths, execDir)
}

func printPathInstructions() {
	execPath, _ := os.Executable()
	execDir := filepath.Dir(execPath)

	fmt.Printf("❌ jprobe not in PATH. Binary location: %s\n\n", execPath)

	if runtime.GOOS == "windows" {
		fmt.Printf("Add to PATH: %s\n", execDir)
	} else {
		fmt.Printf("Add to shell profile: export PATH=\"%s:$PATH\"\n", execDir)
		fmt.Printf("Or copy to: /usr/local/bin\n")
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default searches ./jprobe.toml and the user config dir)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.RegisterFlagCompletionFunc("config", utils.CompleteFilesByExtension(".toml"))
	rootCmd.RegisterFlagCompletionFunc("log-level", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(installCmd)
}
