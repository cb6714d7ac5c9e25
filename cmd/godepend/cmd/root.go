package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// CLI flags that override config file values
var (
	cfgFile       string
	logLevel      string
	logFormat     string
	direction     string
	includeSystem bool
)

var rootCmd = &cobra.Command{
	Use:   "godepend",
	Short: "MySQL Schema-Object Dependency Resolver",
	Long: `A CLI tool for discovering the schema-object dependencies of MySQL
database objects and emitting them in a safe creation order.

Features:
  - Transitive dependency discovery across tables, views, routines, triggers
  - Both directions: dependents (who needs me) and dependencies (what I need)
  - Deduplicated, causally ordered output suitable for script generation
  - Normalized creation scripts in creatable order`,
	Version: Version,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Config file flag
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "godepend.yaml",
		"Path to configuration file")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")

	// Resolution overrides
	rootCmd.PersistentFlags().StringVar(&direction, "direction", "",
		"Override discovery direction (dependents, dependencies)")
	rootCmd.PersistentFlags().BoolVar(&includeSystem, "include-system", false,
		"Include system schema objects in discovery")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// CLIOverrides contains flag values that override config file settings
type CLIOverrides struct {
	LogLevel      string
	LogFormat     string
	Direction     string
	IncludeSystem bool
}

// GetCLIOverrides returns the CLI flag override values
func GetCLIOverrides() CLIOverrides {
	return CLIOverrides{
		LogLevel:      logLevel,
		LogFormat:     logFormat,
		Direction:     direction,
		IncludeSystem: includeSystem,
	}
}
