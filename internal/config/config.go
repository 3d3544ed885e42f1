// Package config loads jprobe settings from jprobe.toml and JPROBE_*
// environment variables using Viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

const (
	AppName        = "jprobe"
	ConfigFileName = "jprobe"
	ConfigFileExt  = "toml"
	EnvPrefix      = "JPROBE"
)

type OutputFormat string

const (
	OutputCLI  OutputFormat = "cli"
	OutputJSON OutputFormat = "json"
)

var (
	ErrInvalidOutput   = errors.New("invalid output format")
	ErrInvalidLogLevel = errors.New("invalid log level")
)

type GoImportConfig struct {
	// Dir is the module directory to import from; empty disables the importer.
	Dir      string   `mapstructure:"dir"`
	Patterns []string `mapstructure:"patterns"`
}

type Config struct {
	LogLevel  string         `mapstructure:"log_level"`
	Delimiter string         `mapstructure:"delimiter"`
	Output    OutputFormat   `mapstructure:"output"`
	Catalogs  []string       `mapstructure:"catalogs"`
	Samples   bool           `mapstructure:"samples"`
	GoImport  GoImportConfig `mapstructure:"go_import"`
}

// LoadOptions override where configuration is searched for.
type LoadOptions struct {
	// ConfigFilePath is used exclusively when set (the --config flag).
	ConfigFilePath string
	// ConfigDirPath replaces the platform config directory.
	ConfigDirPath string
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel:  "info",
		Delimiter: "->",
		Output:    OutputCLI,
		Catalogs:  []string{},
		Samples:   true,
		GoImport: GoImportConfig{
			Patterns: []string{"./..."},
		},
	}
}

// ConfigDir returns $XDG_CONFIG_HOME/jprobe, defaulting to ~/.config/jprobe.
func ConfigDir() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, AppName), nil
}

// Load resolves the configuration. It returns the path of the file that was
// read, or "" when only defaults and environment were used.
func Load(opts LoadOptions) (*Config, string, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("delimiter", defaults.Delimiter)
	v.SetDefault("output", string(defaults.Output))
	v.SetDefault("catalogs", defaults.Catalogs)
	v.SetDefault("samples", defaults.Samples)
	v.SetDefault("go_import.dir", defaults.GoImport.Dir)
	v.SetDefault("go_import.patterns", defaults.GoImport.Patterns)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigType(ConfigFileExt)

	resolvedPath, err := findConfigFile(opts)
	if err != nil {
		return nil, "", err
	}
	if resolvedPath != "" {
		v.SetConfigFile(resolvedPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, "", fmt.Errorf("failed to read config %s: %w", resolvedPath, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("invalid config %s: %w", resolvedPath, err)
	}

	return &cfg, resolvedPath, nil
}

// findConfigFile prefers an explicit path, then the config directory, then
// the current directory. A missing explicit file is an error; otherwise no
// file means defaults.
func findConfigFile(opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return "", fmt.Errorf("config file not found: %s", opts.ConfigFilePath)
		}
		return opts.ConfigFilePath, nil
	}

	cfgDir := opts.ConfigDirPath
	if cfgDir == "" {
		dir, err := ConfigDir()
		if err != nil {
			return "", err
		}
		cfgDir = dir
	}

	name := ConfigFileName + "." + ConfigFileExt
	for _, candidate := range []string{filepath.Join(cfgDir, name), name} {
		if fileExists(candidate) {
			return candidate, nil
		}
	}
	return "", nil
}

func (c *Config) Validate() error {
	switch c.Output {
	case OutputCLI, OutputJSON:
	default:
		return fmt.Errorf("%w: %q (want %s or %s)", ErrInvalidOutput, c.Output, OutputCLI, OutputJSON)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel for charmbracelet/log.
func (c *Config) Level() (log.Level, error) {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	return level, nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
