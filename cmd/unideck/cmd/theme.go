package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var themeCmd = &cobra.Command{
	Use:   "theme [dark|light]",
	Short: "Show or set the dark-mode preference",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTheme,
}

var themeToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Flip the dark-mode preference",
	Args:  cobra.NoArgs,
	RunE:  runThemeToggle,
}

func init() {
	themeCmd.AddCommand(themeToggleCmd)
	rootCmd.AddCommand(themeCmd)
}

func runTheme(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if len(args) == 1 {
		switch args[0] {
		case "dark":
			a.store.SetTheme(true)
		case "light":
			a.store.SetTheme(false)
		default:
			return fmt.Errorf("unknown theme %q, want dark or light", args[0])
		}
		fmt.Printf("theme set to %s\n", args[0])
		return nil
	}

	fmt.Println(themeName(a.store.Theme()))
	return nil
}

func runThemeToggle(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	fmt.Printf("theme set to %s\n", themeName(a.store.ToggleTheme()))
	return nil
}

func themeName(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}
