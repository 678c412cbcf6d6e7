package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xtrack/xtracktui/session"
	"github.com/xtrack/xtracktui/xtrack"
)

// loginCmd represents the login command.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate against the X-Track service",
	Long:  `Authenticate with username and password and persist the session in the system credential store.`,
	RunE:  loginRun,
}

// logoutCmd represents the logout command.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the saved session",
	Long:  `Remove the saved session from the system credential store.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		if err := session.Clear(); err != nil {
			return fmt.Errorf("failed to clear session: %w", err)
		}

		fmt.Println("Logged out.")
		return nil
	},
}

func init() {
	loginCmd.Flags().StringP("username", "u", "", "X-Track username")
	loginCmd.Flags().StringP("password", "p", "", "X-Track password")
	_ = loginCmd.MarkFlagRequired("username")
	_ = loginCmd.MarkFlagRequired("password")
}

func loginRun(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	username, _ := cmd.Flags().GetString("username")
	password, _ := cmd.Flags().GetString("password")

	resp, err := client.Login(ctx, username, password)
	if err != nil {
		return fmt.Errorf("login failed: %s", xtrack.ErrorMessage(err))
	}

	if err := session.Save(&session.Session{Token: resp.Token, User: resp.User}); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	fmt.Printf("Logged in as %s (%s).\n", resp.User.Username, resp.User.Role)
	return nil
}
