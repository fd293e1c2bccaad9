package cli

import (
	"fmt"
	"net/url"
	"os"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/colonybot/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage colonybot configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (CB_* prefix)
2. Config file (config.yaml)
3. Default values

User preferences (default colony and world) are stored in
~/.colonybot/config.json

Examples:
  colonybot config show
  colonybot config set-colony W1N1
  colonybot config set-world ./world.yaml`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetColonyCommand())
	cmd.AddCommand(newConfigSetWorldCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long: `Display the current configuration settings.

Shows both system configuration and user preferences.

Example:
  colonybot config show`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Printf("Warning: Failed to load config: %v\n", err)
				fmt.Println("Using default configuration.")
				cfg = config.LoadConfigOrDefault("")
			}

			userConfigHandler, err := config.NewUserConfigHandler(userConfigDir)
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			userCfg, err := userConfigHandler.Load()
			if err != nil {
				fmt.Printf("Warning: Failed to load user config: %v\n\n", err)
				userCfg = &config.UserConfig{}
			}

			fmt.Println("Colonybot Configuration")
			fmt.Println("=======================")

			fmt.Println("User Preferences:")
			fmt.Printf("  Config file:      %s\n", userConfigHandler.GetConfigPath())
			fmt.Printf("  Default Colony:   %s\n", orNotSet(userCfg.DefaultColony))
			fmt.Printf("  Default World:    %s\n", orNotSet(userCfg.DefaultWorld))

			fmt.Println("\nDatabase:")
			fmt.Printf("  Type:             %s\n", cfg.Database.Type)
			switch {
			case cfg.Database.Type == "sqlite":
				fmt.Printf("  Path:             %s\n", cfg.Database.Path)
			case cfg.Database.URL != "":
				fmt.Printf("  URL:              %s\n", maskPassword(cfg.Database.URL))
			default:
				fmt.Printf("  Host:             %s\n", cfg.Database.Host)
				fmt.Printf("  Port:             %d\n", cfg.Database.Port)
				fmt.Printf("  Database:         %s\n", cfg.Database.Name)
				fmt.Printf("  User:             %s\n", cfg.Database.User)
				fmt.Printf("  Max Connections:  %d\n", cfg.Database.Pool.MaxOpen)
			}

			fmt.Println("\nEconomy:")
			fmt.Printf("  Relaxation:       %g\n", cfg.Economy.RelaxationFactor)
			fmt.Printf("  Path Check:       1 in %d cycles\n", cfg.Economy.PathCheckOneIn)
			fmt.Printf("  Reserve Above:    %d energy capacity\n", cfg.Economy.ReservationEnergyThreshold)
			fmt.Printf("  Abandon Jitter:   %d\n", cfg.Economy.AbandonJitter)

			fmt.Println("\nSpawning:")
			fmt.Printf("  Max Body Size:    %d\n", cfg.Spawning.MaxBodySize)
			fmt.Printf("  Group Threshold:  %g\n", cfg.Spawning.DefaultThreshold)

			fmt.Println("\nCycle:")
			fmt.Printf("  Rate:             %g/s (burst: %d)\n", cfg.Cycle.Rate, cfg.Cycle.Burst)
			fmt.Printf("  Start Tick:       %d\n", cfg.Cycle.StartTick)
			fmt.Printf("  Lock File:        %s\n", cfg.Cycle.LockFile)

			fmt.Println("\nMetrics:")
			fmt.Printf("  Enabled:          %t\n", cfg.Metrics.Enabled)
			if cfg.Metrics.Enabled {
				fmt.Printf("  Endpoint:         %s:%d%s\n", cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path)
			}

			fmt.Println("\nLogging:")
			fmt.Printf("  Level:            %s\n", cfg.Logging.Level)
			fmt.Printf("  Format:           %s\n", cfg.Logging.Format)
			fmt.Printf("  Output:           %s\n", cfg.Logging.Output)

			return nil
		},
	}

	return cmd
}

// newConfigSetColonyCommand creates the config set-colony subcommand
func newConfigSetColonyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-colony <colony>",
		Short: "Set default colony",
		Long: `Set the colony used when --colony is not given.

Example:
  colonybot config set-colony W1N1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userConfigHandler, err := config.NewUserConfigHandler(userConfigDir)
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			if err := userConfigHandler.Update(func(c *config.UserConfig) {
				c.DefaultColony = args[0]
			}); err != nil {
				return fmt.Errorf("failed to set default colony: %w", err)
			}

			fmt.Println("✓ Default colony set successfully")
			fmt.Printf("  Colony: %s\n", args[0])
			fmt.Printf("\nOverride with the --colony flag.\n")

			return nil
		},
	}

	return cmd
}

// newConfigSetWorldCommand creates the config set-world subcommand
func newConfigSetWorldCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-world <snapshot>",
		Short: "Set default world snapshot",
		Long: `Set the world snapshot used when --world is not given.

The file must exist; it is read again on every command.

Example:
  colonybot config set-world ./world.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); err != nil {
				return fmt.Errorf("world snapshot %s: %w", args[0], err)
			}

			userConfigHandler, err := config.NewUserConfigHandler(userConfigDir)
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			if err := userConfigHandler.Update(func(c *config.UserConfig) {
				c.DefaultWorld = args[0]
			}); err != nil {
				return fmt.Errorf("failed to set default world: %w", err)
			}

			fmt.Println("✓ Default world set successfully")
			fmt.Printf("  Snapshot: %s\n", args[0])

			return nil
		},
	}

	return cmd
}

func orNotSet(v string) string {
	if v == "" {
		return "(not set)"
	}
	return v
}

// maskPassword hides the password of a connection URL for display
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); !ok {
		return raw
	}
	u.User = url.UserPassword(u.User.Username(), "xxxxx")
	return u.String()
}
