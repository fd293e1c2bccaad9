package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath    string
	colonyName    string
	worldPath     string
	userConfigDir string
	verbose       bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "colonybot",
		Short: "Colonybot - remote outpost economy and spawn planning",
		Long: `Colonybot tracks the economy of a colony's remote outposts and turns
their demand into production requests for the spawn queue.

Each cycle runs a prepare pass over the outpost ledgers, credits the
cycle's deliveries, settles the ledgers into worker needs and builds
cost-bounded bodies for every missing capability.

Examples:
  colonybot outpost register W1N2 --colony W1N1 --nodes 2 --path-length 40
  colonybot cycle run --colony W1N1 --world world.yaml
  colonybot cycle run --count 100 --rate 2
  colonybot outpost list
  colonybot queue list
  colonybot config set-colony W1N1`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: search ./config.yaml, ./configs, /etc/colonybot)")
	rootCmd.PersistentFlags().StringVar(&colonyName, "colony", "",
		"Colony name (defaults to the user config default colony)")
	rootCmd.PersistentFlags().StringVar(&worldPath, "world", "",
		"Path to world snapshot YAML (defaults to the user config default world)")
	rootCmd.PersistentFlags().StringVar(&userConfigDir, "user-config-dir", "",
		"Directory holding user preferences (default: ~/.colonybot)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	// Add command groups
	rootCmd.AddCommand(NewCycleCommand())
	rootCmd.AddCommand(NewOutpostCommand())
	rootCmd.AddCommand(NewQueueCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
