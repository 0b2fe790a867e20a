package main

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"cineseek/pkg/config"
	"cineseek/pkg/version"
)

const defaultConfigPath = "configs/cineseek.yaml"

func newRootCommand() *cobra.Command {
	var configFlag string

	rootCmd := &cobra.Command{
		Use:           "cineseek",
		Short:         "Resolve noisy movie release names into ranked movie records",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// A missing .env is the normal case
			_ = godotenv.Load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", defaultConfigPath, "Configuration file path")

	rootCmd.AddCommand(newServeCommand(&configFlag))
	rootCmd.AddCommand(newSearchCommand(&configFlag))
	rootCmd.AddCommand(newInitConfigCommand(&configFlag))

	return rootCmd
}

func newInitConfigCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "init-config",
		Short: "Generate a default config file and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.GenerateDefault(*configPath); err != nil {
				return fmt.Errorf("failed to generate config: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Config file generated:", *configPath)
			return nil
		},
	}
}
