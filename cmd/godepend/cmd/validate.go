package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/godepend/internal/config"
	"github.com/dbsmedya/godepend/internal/database"
)

var validateConnect bool

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and server connectivity",
	Long: `Validate checks the configuration file and, optionally, verifies that
the configured server is reachable.

Checks performed:
  - Configuration syntax and required fields
  - Server connectivity (with --connect)

Example:
  godepend validate --config godepend.yaml --connect`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateConnect, "connect", false,
		"Also verify server connectivity")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile := GetConfigFile()

	// Load configuration
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Apply CLI overrides
	overrides := GetCLIOverrides()
	cfg.ApplyOverrides(overrides.LogLevel, overrides.LogFormat,
		overrides.Direction, overrides.IncludeSystem)

	if err := cfg.Validate(); err != nil {
		return err
	}

	cmd.Printf("Config file: %s\n", configFile)
	cmd.Printf("Server: %s:%d\n", cfg.Server.Host, cfg.Server.Port)
	cmd.Printf("Direction: %s\n", cfg.Resolve.Direction)
	cmd.Println("Configuration is valid")

	if !validateConnect {
		return nil
	}

	ctx := context.Background()
	dbManager := database.NewManager(cfg)
	if err := dbManager.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to server: %w", err)
	}
	defer dbManager.Close()

	if err := dbManager.Ping(ctx); err != nil {
		return fmt.Errorf("server connection failed: %w", err)
	}

	cmd.Println("Server connection OK")
	return nil
}
