package main

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/xtrack/xtracktui/dashboard"
	"github.com/xtrack/xtracktui/xtrack"
)

var titleCaser = cases.Title(language.English)

func (m model) View() string {
	var b strings.Builder

	b.WriteString(m.renderTitle())
	b.WriteString("\n\n")

	switch m.sessionState {
	case loginState:
		b.WriteString(loginView(m))
	case createAccountState:
		b.WriteString(m.createForm.View())
	case deleteAccountState:
		b.WriteString(m.deleteForm.View())
	case dashboardState:
		b.WriteString(dashboardView(m))
	case adminState:
		b.WriteString(adminView(m))
	case configState:
		b.WriteString(m.configView.View())
	case loading:
		b.WriteString(fmt.Sprintf("%s Loading data...", m.loadingSpinner.View()))
	case errorState:
		b.WriteString(m.styles.errorStyle.Render(fmt.Sprintf("%s - 'q' to quit", m.errorMsg)))
		return m.styles.docStyle.Render(b.String())
	}

	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))

	return m.styles.docStyle.Render(b.String())
}

func (m model) renderTitle() string {
	title := fmt.Sprintf("xtracktui | %s", titleCaser.String(m.sessionState.String()))

	if m.sessionState == dashboardState {
		title = fmt.Sprintf("%s | %s", title, m.coord.Filter().Label())
	}

	return m.styles.titleStyle.Render(title)
}

func loginView(m model) string {
	var b strings.Builder

	if m.errorMsg != "" {
		b.WriteString(m.styles.errorStyle.Render(m.errorMsg))
		b.WriteString("\n\n")
	}

	b.WriteString(m.loginForm.View())
	return b.String()
}

func dashboardView(m model) string {
	if m.errorMsg != "" {
		return m.styles.errorStyle.Render(m.errorMsg) + "\n\n" + dashboardBody(m)
	}

	return dashboardBody(m)
}

func dashboardBody(m model) string {
	main := lipgloss.JoinVertical(
		lipgloss.Left,
		summaryCards(m),
		"",
		m.chart.View(),
		"",
		recentRecordsView(m),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebarView(m), " ", main)
}

// sidebarView lists the portfolios with the selected one highlighted.
func sidebarView(m model) string {
	var b strings.Builder

	b.WriteString(m.styles.cardLabel.Render("Portfolios"))
	b.WriteString("\n\n")

	accounts := m.coord.Accounts()
	if len(accounts) == 0 {
		b.WriteString(m.styles.mutedStyle.Render("none yet ('n' to add)"))
	}

	for i, a := range accounts {
		if i > 0 {
			b.WriteString("\n")
		}
		if a.ID == m.coord.SelectedID() {
			b.WriteString(m.styles.selectedStyle.Render("> " + a.Name))
		} else {
			b.WriteString("  " + a.Name)
		}
	}

	if selected := m.coord.SelectedAccount(); selected != nil {
		b.WriteString("\n\n")
		b.WriteString(m.styles.tokenStyle.Render("token " + maskToken(selected.APIToken)))
	}

	return m.styles.sidebarStyle.Width(sidebarWidth).Render(b.String())
}

func summaryCards(m model) string {
	cards := []string{
		m.renderCard("Today P/L", m.todayPLValue(), m.coord.TodayError()),
		m.renderCard("Balance", m.balanceValue(), m.coord.OverallError()),
		m.renderCard("Trades Today", m.tradesValue(), m.coord.TodayError()),
		m.renderCard("Net P/L", m.netPLValue(), m.coord.RecordsError()),
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m model) renderCard(label, value, errMsg string) string {
	var body string
	switch {
	case errMsg != "":
		body = m.styles.errorStyle.Render("unavailable")
	case value == "":
		body = m.styles.mutedStyle.Render("-")
	default:
		body = value
	}

	return m.styles.cardStyle.Render(
		m.styles.cardLabel.Render(label) + "\n" + body,
	)
}

func (m model) todayPLValue() string {
	today := m.coord.Today()
	if today == nil {
		return ""
	}
	return m.signedMoney(today.DailyPL)
}

func (m model) balanceValue() string {
	overall := m.coord.Overall()
	if overall == nil || !overall.HasData {
		return ""
	}
	return formatMoney(overall.CurrentBalance)
}

func (m model) tradesValue() string {
	today := m.coord.Today()
	if today == nil {
		return ""
	}
	return fmt.Sprintf("%d", today.TradesToday)
}

func (m model) netPLValue() string {
	records := m.coord.Records()
	if len(records) == 0 {
		return ""
	}
	return m.signedMoney(dashboard.NetProfit(records))
}

// signedMoney colors a P/L amount by its sign.
func (m model) signedMoney(amount float64) string {
	formatted := formatMoney(amount)
	if amount < 0 {
		return m.styles.lossStyle.Render(formatted)
	}
	return m.styles.gainStyle.Render(formatted)
}

func formatMoney(amount float64) string {
	return money.NewFromFloat(amount, money.USD).Display()
}

func recentRecordsView(m model) string {
	if errMsg := m.coord.RecordsError(); errMsg != "" {
		return m.styles.errorStyle.Render("Records: " + errMsg)
	}

	if len(m.coord.Records()) == 0 {
		return m.styles.mutedStyle.Render("No records for the selected range")
	}

	return m.recordsTable.View()
}

func maskToken(token string) string {
	const visible = 8
	if len(token) <= visible {
		return token
	}
	return token[:visible] + "…"
}

// statisticValues is shared between the dashboard table and the CLI output.
func statisticValues(s xtrack.Statistic) []string {
	return []string{
		s.Timestamp.Format("2006-01-02 15:04"),
		formatMoney(s.DailyPL),
		fmt.Sprintf("%d", s.TradesToday),
		formatMoney(s.TotalBalance),
	}
}

func statisticRow(s xtrack.Statistic) table.Row {
	return table.Row(statisticValues(s))
}
