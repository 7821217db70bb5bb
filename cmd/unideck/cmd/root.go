// Package cmd provides the CLI commands for unideck.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/unideck/unideck/internal/config"
)

var cfgFile string
var dataDir string
var showStats bool

var rootCmd = &cobra.Command{
	Use:   "unideck",
	Short: "unideck - university course catalog browser",
	Long: `unideck browses a university course catalog from the terminal.

It fetches courses from a remote catalog API, keeps your session,
favourites, and preferences on disk, and can serve the last fetched
listing while offline.

Quick start:
  1. (Optional) Create a config file: unideck config init
  2. Browse:   unideck courses list
  3. Sign in:  unideck login -u <username> -p <password>

Configuration:
  Config is loaded from unideck.yaml in the current directory,
  $HOME/.unideck/, or /etc/unideck/.

  Environment variables can override config values with the UNIDECK_ prefix.
  Example: UNIDECK_API_BASE_URL=https://dummyjson.com

Commands:
  courses     List, show, and search courses
  favourites  Manage saved courses
  login       Sign in to the catalog
  logout      Sign out and forget the session
  register    Create a local account
  whoami      Show the signed-in user
  theme       Show or toggle the dark-mode preference
  config      Manage the configuration file
  version     Print version information`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./unideck.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default: $HOME/.unideck)")
	rootCmd.PersistentFlags().BoolVar(&showStats, "stats", false, "print request statistics after the command")
}

func initConfig() {
	config.InitViper(cfgFile)
	if dataDir != "" {
		viper.Set("data_dir", dataDir)
	}
}
