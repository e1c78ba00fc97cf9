package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/ucanfire/internal/config"
	"github.com/aretw0/ucanfire/internal/logging"
	"github.com/spf13/cobra"
)

var (
	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "ucanfire",
	Short: "U CAN FIRE tells you which financial stage you are in",
	Long: `U CAN FIRE walks you through six yes/no questions and places you in one
of six financial stages, from "Stabilize Your Base" to "Long-Term Freedom & FI Basics".`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envFile, _ := cmd.Flags().GetString("env-file")
		var files []string
		if envFile != "" {
			files = append(files, envFile)
		}

		var err error
		cfg, err = config.Load(files...)
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
		}
		if cmd.Flags().Changed("store") {
			cfg.Store, _ = cmd.Flags().GetString("store")
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		level, err := logging.ParseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		logger = logging.NewWithWriter(os.Stderr, logging.Format(cfg.LogFormat), level)
		slog.SetDefault(logger)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("env-file", "", "Load environment variables from this file (default .env)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (overrides UCANFIRE_LOG_LEVEL)")
	rootCmd.PersistentFlags().String("store", "", "Session store: memory, file or redis (overrides UCANFIRE_STORE)")
}
