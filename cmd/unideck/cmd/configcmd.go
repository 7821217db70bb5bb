package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/unideck/unideck/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a starter config file",
	Long: `Write a starter config file with the default settings.

Without a path the file is written as unideck.yaml in the current
directory. Fails if the file already exists.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := "unideck.yaml"
	if len(args) == 1 {
		path = args[0]
	}
	if err := config.WriteDefault(path); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	if used := config.ConfigFileUsed(); used != "" {
		fmt.Printf("config file: %s\n", used)
	} else {
		fmt.Println("config file: (none, defaults and environment only)")
	}
	fmt.Printf("api.base_url:       %s\n", cfg.API.BaseURL)
	fmt.Printf("api.timeout:        %s\n", cfg.API.Timeout)
	fmt.Printf("catalog.page_limit: %d\n", cfg.Catalog.PageLimit)
	fmt.Printf("data_dir:           %s\n", cfg.DataDir)
	fmt.Printf("log_level:          %s\n", cfg.LogLevel)
	return nil
}
