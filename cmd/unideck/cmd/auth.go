package cmd

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/unideck/unideck/internal/domain/validation"
)

var loginForm validation.LoginForm
var registerForm validation.RegisterForm

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the catalog",
	Long: `Sign in to the catalog.

Locally registered accounts are checked first; anything else is
authenticated against the remote API. The session is persisted so later
commands stay signed in.`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the session",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a local account",
	Long: `Create a local account and sign in with it.

The account lives on this machine only; its password is stored as an
argon2id hash in the data directory.`,
	Args: cobra.NoArgs,
	RunE: runRegister,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

func init() {
	loginCmd.Flags().StringVarP(&loginForm.Username, "username", "u", "", "username")
	loginCmd.Flags().StringVarP(&loginForm.Password, "password", "p", "", "password")

	registerCmd.Flags().StringVar(&registerForm.FirstName, "first-name", "", "first name")
	registerCmd.Flags().StringVar(&registerForm.LastName, "last-name", "", "last name")
	registerCmd.Flags().StringVar(&registerForm.Email, "email", "", "email address")
	registerCmd.Flags().StringVarP(&registerForm.Username, "username", "u", "", "username")
	registerCmd.Flags().StringVarP(&registerForm.Password, "password", "p", "", "password")
	registerCmd.Flags().StringVar(&registerForm.ConfirmPassword, "confirm-password", "", "password, repeated")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(whoamiCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.store.Auth.Login(cmd.Context(), loginForm); err != nil {
		return formError(err)
	}
	snap := a.store.Auth.Snapshot()
	fmt.Printf("signed in as %s\n", snap.User.Username)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	a.store.Auth.Logout()
	fmt.Println("signed out")
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.store.Auth.Register(registerForm); err != nil {
		return formError(err)
	}
	snap := a.store.Auth.Snapshot()
	fmt.Printf("account created, signed in as %s\n", snap.User.Username)
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	snap := a.store.Auth.CheckSession()
	if !snap.IsAuthenticated() {
		fmt.Println("not signed in")
		return nil
	}
	u := snap.User
	fmt.Printf("%s", u.Username)
	if u.FirstName != "" || u.LastName != "" {
		fmt.Printf(" (%s %s)", u.FirstName, u.LastName)
	}
	fmt.Println()
	if u.Email != "" {
		fmt.Printf("  Email: %s\n", u.Email)
	}
	return nil
}

// formError renders per-field validation failures one per line; other
// errors pass through unchanged.
func formError(err error) error {
	var vErr *validation.Error
	if !errors.As(err, &vErr) {
		return err
	}
	fields := make([]string, 0, len(vErr.Fields))
	for field := range vErr.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	msg := "invalid input:"
	for _, field := range fields {
		msg += fmt.Sprintf("\n  %s: %s", field, vErr.Fields[field])
	}
	return errors.New(msg)
}
