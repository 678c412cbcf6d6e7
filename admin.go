package main

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/xtrack/xtracktui/xtrack"
)

// newAdminTables builds the users and accounts tables for the admin view.
func newAdminTables(theme Theme) (table.Model, table.Model) {
	tableStyle := table.DefaultStyles()
	tableStyle.Selected = tableStyle.Selected.Foreground(theme.Primary)

	usersTable := table.New(
		table.WithColumns([]table.Column{
			{Title: "ID", Width: 6},
			{Title: "Username", Width: 24},
			{Title: "Role", Width: 10},
			{Title: "Created", Width: 12},
		}),
		table.WithHeight(8),
	)
	usersTable.SetStyles(tableStyle)

	accountsTable := table.New(
		table.WithColumns([]table.Column{
			{Title: "ID", Width: 6},
			{Title: "Name", Width: 24},
			{Title: "Owner", Width: 24},
			{Title: "Created", Width: 12},
		}),
		table.WithHeight(8),
	)
	accountsTable.SetStyles(tableStyle)

	return usersTable, accountsTable
}

func userRows(users []xtrack.User) []table.Row {
	rows := make([]table.Row, len(users))
	for i, u := range users {
		rows[i] = table.Row{
			strconv.FormatInt(u.ID, 10),
			u.Username,
			u.Role,
			u.CreatedAt.Format("2006-01-02"),
		}
	}
	return rows
}

func adminAccountRows(accounts []xtrack.Account) []table.Row {
	rows := make([]table.Row, len(accounts))
	for i, a := range accounts {
		owner := "-"
		if a.User != nil {
			owner = a.User.Username
		}
		rows[i] = table.Row{
			strconv.FormatInt(a.ID, 10),
			a.Name,
			owner,
			a.CreatedAt.Format("2006-01-02"),
		}
	}
	return rows
}

func adminView(m model) string {
	users := lipgloss.JoinVertical(
		lipgloss.Left,
		m.styles.cardLabel.Render("Users"),
		m.usersTable.View(),
	)

	accounts := lipgloss.JoinVertical(
		lipgloss.Left,
		m.styles.cardLabel.Render("All Portfolios"),
		m.adminAccountsTable.View(),
	)

	return lipgloss.JoinVertical(lipgloss.Left, users, "", accounts)
}
