// Package main is the entry point for the dungeon service and its tools
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-dungeon/internal/config"
	"github.com/KirkDiggler/rpg-dungeon/internal/logging"
)

var (
	configPath string
	logLevel   string

	// cfg is loaded before any subcommand runs
	cfg *config.File
)

var rootCmd = &cobra.Command{
	Use:   "dungeon",
	Short: "Procedural dungeon service",
	Long: `dungeon generates roguelike dungeons, tracks player runs through them over gRPC
and simulates enemy state machines.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		loaded, err := loadConfig()
		if err != nil {
			return err
		}
		cfg = loaded

		if cmd.Flags().Changed("log-level") {
			cfg.Logging.Level = logLevel
		}
		logCfg := cfg.Logging
		logCfg.Output = os.Stderr
		logging.Init(logCfg)
		return nil
	},
}

func loadConfig() (*config.File, error) {
	if configPath == "" {
		return config.Defaults(), nil
	}
	return config.NewLoader().LoadFile(configPath)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML or JSON config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")

	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(clientCmd)
}
