package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Default values
	DefaultLogLevel      = "info"
	DefaultMaxFileSize   = 50 * 1024 * 1024 // 50MB
	DefaultTerminalLevel = "L19"

	// Directory permissions
	DefaultDirPerm = 0o750
)

// Config holds all configuration for the roster continuity server
type Config struct {
	// Roster configuration
	RosterDirectory string
	TerminalLevel   string // normalized level of graduating students

	// Application configuration
	Version     string
	ServerName  string
	LogLevel    string
	MaxFileSize int64 // Maximum PDF file size in bytes
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		currentDir = "."
	}

	return &Config{
		RosterDirectory: currentDir,
		TerminalLevel:   DefaultTerminalLevel,
		Version:         "1.0.0",
		ServerName:      "continuidad",
		LogLevel:        DefaultLogLevel,
		MaxFileSize:     DefaultMaxFileSize,
	}
}

// LoadFromFlags parses command line flags and returns a configuration
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	populateConfigFromViper(cfg)

	if cfg.RosterDirectory != "" {
		if expandedPath, err := filepath.Abs(cfg.RosterDirectory); err == nil {
			cfg.RosterDirectory = expandedPath
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("CONTINUIDAD")
	viper.AutomaticEnv()

	viper.SetDefault("dir", cfg.RosterDirectory)
	viper.SetDefault("terminallevel", cfg.TerminalLevel)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("dir", cfg.RosterDirectory, "Directory containing roster PDF files")
	pflag.String("terminallevel", cfg.TerminalLevel, "Normalized level of graduating students (excluded from continuity)")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum PDF file size in bytes")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	_ = viper.BindPFlag("dir", pflag.Lookup("dir"))
	_ = viper.BindPFlag("terminallevel", pflag.Lookup("terminallevel"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nContinuidad - an MCP server for enrollment roster continuity analysis\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                              # serve over stdio, current directory\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --dir=/path/to/rosters       # custom roster directory\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --terminallevel=L20          # different graduation level\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  CONTINUIDAD_DIR            Roster PDF directory\n")
		fmt.Fprintf(os.Stderr, "  CONTINUIDAD_TERMINALLEVEL  Graduation level\n")
		fmt.Fprintf(os.Stderr, "  CONTINUIDAD_LOGLEVEL       Log level\n")
		fmt.Fprintf(os.Stderr, "  CONTINUIDAD_MAXFILESIZE    Maximum file size\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.RosterDirectory = viper.GetString("dir")
	cfg.TerminalLevel = viper.GetString("terminallevel")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.RosterDirectory == "" {
		return errors.New("roster directory cannot be empty")
	}

	// Check if roster directory exists, create if it doesn't
	if _, err := os.Stat(c.RosterDirectory); os.IsNotExist(err) {
		if err := os.MkdirAll(c.RosterDirectory, DefaultDirPerm); err != nil {
			return fmt.Errorf("cannot create roster directory %s: %w", c.RosterDirectory, err)
		}
	} else if err != nil {
		return fmt.Errorf("cannot access roster directory %s: %w", c.RosterDirectory, err)
	}

	if c.TerminalLevel == "" {
		return errors.New("terminal level cannot be empty")
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{RosterDirectory: %s, TerminalLevel: %s, LogLevel: %s, MaxFileSize: %d}",
		c.RosterDirectory, c.TerminalLevel, c.LogLevel, c.MaxFileSize)
}
