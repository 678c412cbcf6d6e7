package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/xtrack/xtracktui/xtrack"
)

// usersCmd represents the users command. All subcommands need the admin role.
var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "User management commands (admin)",
	Long:  `Commands for managing X-Track users. The service rejects them for non-admin sessions.`,
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all users",
	RunE:  usersListRun,
}

var usersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user",
	RunE:  usersCreateRun,
}

var usersUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a user's password or role",
	Args:  cobra.ExactArgs(1),
	RunE:  usersUpdateRun,
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a user",
	Args:  cobra.ExactArgs(1),
	RunE:  usersDeleteRun,
}

func init() {
	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersCreateCmd)
	usersCmd.AddCommand(usersUpdateCmd)
	usersCmd.AddCommand(usersDeleteCmd)

	usersListCmd.Flags().StringP("output", "o", tableOutputFormat, "Output format: table or json")

	usersCreateCmd.Flags().String("username", "", "username for the new user")
	usersCreateCmd.Flags().String("password", "", "password for the new user")
	usersCreateCmd.Flags().String("role", xtrack.RoleUser, "role: user or admin")
	_ = usersCreateCmd.MarkFlagRequired("username")
	_ = usersCreateCmd.MarkFlagRequired("password")

	usersUpdateCmd.Flags().String("password", "", "replacement password")
	usersUpdateCmd.Flags().String("role", "", "replacement role: user or admin")
}

func usersListRun(cmd *cobra.Command, _ []string) error {
	if err := requireSession(); err != nil {
		return err
	}

	outputFormat, err := validateOutputFormat(cmd)
	if err != nil {
		return err
	}

	users, err := client.GetUsers(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to fetch users: %s", xtrack.ErrorMessage(err))
	}

	switch outputFormat {
	case jsonOutputFormat:
		return outputJSON(users)
	case tableOutputFormat:
		return outputUsersTable(users)
	default:
		return errors.New("unsupported output format")
	}
}

func usersCreateRun(cmd *cobra.Command, _ []string) error {
	if err := requireSession(); err != nil {
		return err
	}

	username, _ := cmd.Flags().GetString("username")
	password, _ := cmd.Flags().GetString("password")
	role, _ := cmd.Flags().GetString("role")

	if err := validateRole(role); err != nil {
		return err
	}

	user, err := client.CreateUser(cmd.Context(), xtrack.UserParams{
		Username: username,
		Password: password,
		Role:     role,
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %s", xtrack.ErrorMessage(err))
	}

	fmt.Printf("Created user %d (%s, %s)\n", user.ID, user.Username, user.Role)
	return nil
}

func usersUpdateRun(cmd *cobra.Command, args []string) error {
	if err := requireSession(); err != nil {
		return err
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid user id: %s", args[0])
	}

	password, _ := cmd.Flags().GetString("password")
	role, _ := cmd.Flags().GetString("role")

	if password == "" && role == "" {
		return errors.New("nothing to update (set --password or --role)")
	}
	if role != "" {
		if err := validateRole(role); err != nil {
			return err
		}
	}

	user, err := client.UpdateUser(cmd.Context(), id, xtrack.UserParams{
		Password: password,
		Role:     role,
	})
	if err != nil {
		return fmt.Errorf("failed to update user: %s", xtrack.ErrorMessage(err))
	}

	fmt.Printf("Updated user %d (%s, %s)\n", user.ID, user.Username, user.Role)
	return nil
}

func usersDeleteRun(cmd *cobra.Command, args []string) error {
	if err := requireSession(); err != nil {
		return err
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid user id: %s", args[0])
	}

	if err := client.DeleteUser(cmd.Context(), id); err != nil {
		return fmt.Errorf("failed to delete user: %s", xtrack.ErrorMessage(err))
	}

	fmt.Printf("Deleted user %d\n", id)
	return nil
}

func validateRole(role string) error {
	if role != xtrack.RoleUser && role != xtrack.RoleAdmin {
		return fmt.Errorf("invalid role: %s (must be %s or %s)", role, xtrack.RoleUser, xtrack.RoleAdmin)
	}
	return nil
}

func outputUsersTable(users []xtrack.User) error {
	t := createStyledTable("ID", "USERNAME", "ROLE", "CREATED")

	for _, user := range users {
		t.Row(
			strconv.FormatInt(user.ID, 10),
			user.Username,
			user.Role,
			user.CreatedAt.Format("2006-01-02"),
		)
	}

	fmt.Println(t)

	return nil
}
