package main

import (
	"github.com/spf13/cobra"

	"toptop/internal/config"
	"toptop/internal/logger"
)

// loadConfig is swapped in tests.
var loadConfig = config.LoadConfig

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "toptopctl",
		Short:         "Operator tools for the toptop backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.AddCommand(newMigrateCommand())
	rootCmd.AddCommand(newTokenCommand())

	return rootCmd
}

func loadConfigWithLogging() (*config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	return cfg, nil
}
