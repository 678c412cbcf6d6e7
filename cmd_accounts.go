package main

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/xtrack/xtracktui/xtrack"
)

// accountRow is the flattened form of an account used for CLI output.
type accountRow struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Owner   string `json:"owner"`
	Token   string `json:"api_token"`
	Created string `json:"created"`
}

func accountToRow(account xtrack.Account) accountRow {
	owner := "-"
	if account.User != nil {
		owner = account.User.Username
	}

	return accountRow{
		ID:      account.ID,
		Name:    account.Name,
		Owner:   owner,
		Token:   account.APIToken,
		Created: account.CreatedAt.Format("2006-01-02"),
	}
}

// accountsCmd represents the accounts command.
var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Portfolio management commands",
	Long:  `Commands for managing X-Track portfolios and their API tokens.`,
}

// accountsListCmd represents the accounts list command.
var accountsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List portfolios",
	Long:  `List your portfolios with their IDs and API tokens. With --all an admin sees every portfolio.`,
	RunE:  accountsListRun,
}

var accountsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a portfolio",
	Long:  `Create a new portfolio. The service issues a fresh API token for it.`,
	RunE:  accountsCreateRun,
}

var accountsRenameCmd = &cobra.Command{
	Use:   "rename <id>",
	Short: "Rename a portfolio",
	Args:  cobra.ExactArgs(1),
	RunE:  accountsRenameRun,
}

var accountsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a portfolio",
	Long:  `Delete a portfolio and all of its records. This cannot be undone.`,
	Args:  cobra.ExactArgs(1),
	RunE:  accountsDeleteRun,
}

var accountsRegenerateCmd = &cobra.Command{
	Use:   "regenerate-token <id>",
	Short: "Rotate a portfolio's API token",
	Long:  `Issue a replacement API token for the portfolio. The previous token stops working immediately.`,
	Args:  cobra.ExactArgs(1),
	RunE:  accountsRegenerateRun,
}

func init() {
	accountsCmd.AddCommand(accountsListCmd)
	accountsCmd.AddCommand(accountsCreateCmd)
	accountsCmd.AddCommand(accountsRenameCmd)
	accountsCmd.AddCommand(accountsDeleteCmd)
	accountsCmd.AddCommand(accountsRegenerateCmd)

	accountsListCmd.Flags().StringP("output", "o", tableOutputFormat, "Output format: table or json")
	accountsListCmd.Flags().Bool("all", false, "list every portfolio (admin only)")
	accountsCreateCmd.Flags().String("name", "", "name for the new portfolio")
	_ = accountsCreateCmd.MarkFlagRequired("name")
	accountsRenameCmd.Flags().String("name", "", "new name for the portfolio")
	_ = accountsRenameCmd.MarkFlagRequired("name")
	accountsDeleteCmd.Flags().Bool("yes", false, "skip the confirmation prompt")
}

func accountsListRun(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if err := requireSession(); err != nil {
		return err
	}

	outputFormat, err := validateOutputFormat(cmd)
	if err != nil {
		return err
	}

	all, _ := cmd.Flags().GetBool("all")

	var accounts []xtrack.Account
	if all {
		accounts, err = client.GetAllAccounts(ctx)
	} else {
		accounts, err = client.GetMyAccounts(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to fetch portfolios: %s", xtrack.ErrorMessage(err))
	}

	rows := make([]accountRow, len(accounts))
	for i, account := range accounts {
		rows[i] = accountToRow(account)
	}

	// Sort by name for consistent output
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Name < rows[j].Name
	})

	switch outputFormat {
	case jsonOutputFormat:
		return outputJSON(rows)
	case tableOutputFormat:
		return outputAccountsTable(rows)
	default:
		return errors.New("unsupported output format")
	}
}

func accountsCreateRun(cmd *cobra.Command, _ []string) error {
	if err := requireSession(); err != nil {
		return err
	}

	name, _ := cmd.Flags().GetString("name")

	account, err := client.CreateAccount(cmd.Context(), name, sess.User.ID)
	if err != nil {
		return fmt.Errorf("failed to create portfolio: %s", xtrack.ErrorMessage(err))
	}

	fmt.Printf("Created portfolio %d (%s)\nAPI token: %s\n", account.ID, account.Name, account.APIToken)
	return nil
}

func accountsRenameRun(cmd *cobra.Command, args []string) error {
	if err := requireSession(); err != nil {
		return err
	}

	id, err := parseAccountID(args[0])
	if err != nil {
		return err
	}

	name, _ := cmd.Flags().GetString("name")

	account, err := client.UpdateAccount(cmd.Context(), id, name)
	if err != nil {
		return fmt.Errorf("failed to rename portfolio: %s", xtrack.ErrorMessage(err))
	}

	fmt.Printf("Renamed portfolio %d to %s\n", account.ID, account.Name)
	return nil
}

func accountsDeleteRun(cmd *cobra.Command, args []string) error {
	if err := requireSession(); err != nil {
		return err
	}

	id, err := parseAccountID(args[0])
	if err != nil {
		return err
	}

	// Deleting a portfolio also deletes its records, so require an
	// explicit confirmation before touching the service.
	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		confirmed, err := confirmAccountDeletion(id)
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := client.DeleteAccount(cmd.Context(), id); err != nil {
		return fmt.Errorf("failed to delete portfolio: %s", xtrack.ErrorMessage(err))
	}

	fmt.Printf("Deleted portfolio %d\n", id)
	return nil
}

func accountsRegenerateRun(cmd *cobra.Command, args []string) error {
	if err := requireSession(); err != nil {
		return err
	}

	id, err := parseAccountID(args[0])
	if err != nil {
		return err
	}

	account, err := client.RegenerateToken(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to regenerate token: %s", xtrack.ErrorMessage(err))
	}

	fmt.Printf("New API token for portfolio %d: %s\n", account.ID, account.APIToken)
	return nil
}

func parseAccountID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid portfolio id: %s", raw)
	}
	return id, nil
}

func outputAccountsTable(rows []accountRow) error {
	t := createStyledTable("ID", "NAME", "OWNER", "API TOKEN", "CREATED")

	for _, row := range rows {
		t.Row(
			strconv.FormatInt(row.ID, 10),
			row.Name,
			row.Owner,
			maskToken(row.Token),
			row.Created,
		)
	}

	fmt.Println(t)

	return nil
}
