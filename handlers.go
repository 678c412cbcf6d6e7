package main

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/xtrack/xtracktui/dashboard"
	"github.com/xtrack/xtracktui/xtrack"
)

// Message types for different API responses.
type (
	getAccountsMsg struct {
		accounts []xtrack.Account
		err      error
	}

	// The three dashboard slices arrive independently, each tagged with the
	// generation of the plan that launched it.
	todaySummaryMsg struct {
		gen     uint64
		summary *xtrack.TodaySummary
		errMsg  string
	}

	overallSummaryMsg struct {
		gen     uint64
		summary *xtrack.OverallSummary
		errMsg  string
	}

	recordsMsg struct {
		gen     uint64
		records []xtrack.Statistic
		errMsg  string
	}

	loginResultMsg struct {
		resp *xtrack.AuthResponse
		err  error
	}

	accountCreatedMsg struct {
		account *xtrack.Account
		err     error
	}

	accountDeletedMsg struct {
		id  int64
		err error
	}

	tokenRotatedMsg struct {
		account *xtrack.Account
		err     error
	}

	adminDataMsg struct {
		users    []xtrack.User
		accounts []xtrack.Account
		err      error
	}

	authErrorMsg struct {
		err error
	}
)

// Message handlers.
func (m model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width

	h, _ := m.styles.docStyle.GetFrameSize()
	m.chart.SetWidth(msg.Width - h - sidebarWidth - 2*standardMargin)

	m.recordsTable.SetWidth(msg.Width - h - sidebarWidth)
	m.usersTable.SetWidth(msg.Width - h)
	m.adminAccountsTable.SetWidth(msg.Width - h)
	m.configView.SetSize(msg.Width-h, msg.Height/2)

	if m.loginForm != nil {
		m.loginForm = m.loginForm.WithWidth(msg.Width - h)
	}
	if m.createForm != nil {
		m.createForm = m.createForm.WithWidth(msg.Width - h)
	}

	return m, nil
}

func (m model) handleSpinnerTick(msg spinner.TickMsg) (tea.Model, tea.Cmd) {
	if m.sessionState != loading {
		return m, nil
	}

	var cmd tea.Cmd
	m.loadingSpinner, cmd = m.loadingSpinner.Update(msg)
	return m, cmd
}

func (m model) handleGetAccounts(msg getAccountsMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m, func() tea.Msg { return authErrorMsg{err: msg.err} }
	}

	plan := m.coord.AccountsLoaded(msg.accounts)
	m.loadingState.set("accounts")

	if plan.Empty() {
		// nothing selected, so the slices are settled too
		m.loadingState.set("today")
		m.loadingState.set("overall")
		m.loadingState.set("records")
		m.sessionState = m.checkIfLoading()
		return m, nil
	}

	m.sessionState = m.checkIfLoading()
	return m, m.fetchSlices(plan)
}

func (m model) handleTodaySummary(msg todaySummaryMsg) (tea.Model, tea.Cmd) {
	if !m.coord.ApplyToday(msg.gen, msg.summary, msg.errMsg) {
		return m, nil
	}

	m.loadingState.set("today")
	m.sessionState = m.checkIfLoading()
	return m, nil
}

func (m model) handleOverallSummary(msg overallSummaryMsg) (tea.Model, tea.Cmd) {
	if !m.coord.ApplyOverall(msg.gen, msg.summary, msg.errMsg) {
		return m, nil
	}

	m.loadingState.set("overall")
	m.sessionState = m.checkIfLoading()
	return m, nil
}

func (m model) handleRecords(msg recordsMsg) (tea.Model, tea.Cmd) {
	if !m.coord.ApplyRecords(msg.gen, msg.records, msg.errMsg) {
		return m, nil
	}

	m.refreshDerived()
	m.loadingState.set("records")
	m.sessionState = m.checkIfLoading()
	return m, nil
}

func (m model) handleAccountCreated(msg accountCreatedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.errorMsg = xtrack.ErrorMessage(msg.err)
		m.sessionState = dashboardState
		return m, nil
	}

	m.errorMsg = ""
	plan := m.coord.AccountCreated(*msg.account)
	return m, m.startPlan(plan)
}

func (m model) handleAccountDeleted(msg accountDeletedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.errorMsg = xtrack.ErrorMessage(msg.err)
		return m, nil
	}

	m.errorMsg = ""
	plan := m.coord.AccountDeleted(msg.id)
	if plan.Empty() {
		m.refreshDerived()
		return m, nil
	}
	return m, m.startPlan(plan)
}

func (m model) handleTokenRotated(msg tokenRotatedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.errorMsg = xtrack.ErrorMessage(msg.err)
		return m, nil
	}

	m.errorMsg = ""
	m.coord.TokenRotated(*msg.account)
	return m, nil
}

func (m model) handleAdminData(msg adminDataMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.errorMsg = xtrack.ErrorMessage(msg.err)
		m.sessionState = dashboardState
		return m, nil
	}

	m.errorMsg = ""
	m.usersTable.SetRows(userRows(msg.users))
	m.adminAccountsTable.SetRows(adminAccountRows(msg.accounts))
	m.sessionState = adminState
	return m, nil
}

// startPlan books a new fetch plan: the slice payloads become pending again
// and the matching commands are returned as a single batch.
func (m *model) startPlan(plan dashboard.FetchPlan) tea.Cmd {
	if plan.Empty() {
		return nil
	}

	m.loadingState.unset("today")
	m.loadingState.unset("overall")
	m.loadingState.unset("records")

	if m.sessionState != loading {
		m.previousSessionState = m.sessionState
	}
	m.sessionState = loading

	return tea.Batch(m.fetchSlices(plan), m.loadingSpinner.Tick)
}

// refreshDerived rebuilds the chart series and the recent-records table
// from the coordinator's current records.
func (m *model) refreshDerived() {
	m.chart.SetSeries(dashboard.ChartSeries(m.coord.Records()))

	recent := dashboard.TableRows(m.coord.Records(), recentRowLimit)
	rows := make([]table.Row, len(recent))
	for i, r := range recent {
		rows[i] = statisticRow(r)
	}
	m.recordsTable.SetRows(rows)
}

// API call functions.
func (m model) getAccounts() tea.Msg {
	accounts, err := m.client.GetMyAccounts(context.Background())
	if err != nil {
		return getAccountsMsg{err: err}
	}
	log.Debug("got accounts", "count", len(accounts))

	return getAccountsMsg{accounts: accounts}
}

// fetchSlices turns a plan into the three slice requests. Each command
// carries the plan's generation so late arrivals from a superseded
// selection are recognized and dropped.
func (m model) fetchSlices(plan dashboard.FetchPlan) tea.Cmd {
	gen, id, query := plan.Gen, plan.AccountID, plan.Query

	today := func() tea.Msg {
		summary, err := m.client.GetToday(context.Background(), id)
		if err != nil {
			return todaySummaryMsg{gen: gen, errMsg: xtrack.ErrorMessage(err)}
		}
		return todaySummaryMsg{gen: gen, summary: summary}
	}

	overall := func() tea.Msg {
		summary, err := m.client.GetOverall(context.Background(), id)
		if err != nil {
			return overallSummaryMsg{gen: gen, errMsg: xtrack.ErrorMessage(err)}
		}
		return overallSummaryMsg{gen: gen, summary: summary}
	}

	records := func() tea.Msg {
		var (
			stats []xtrack.Statistic
			err   error
		)
		if query.Paged {
			stats, _, err = m.client.GetStatistics(context.Background(), id, query.Page, query.PageSize)
		} else {
			stats, err = m.client.GetStatisticsRange(context.Background(), id, query.StartDate, query.EndDate)
		}
		if err != nil {
			return recordsMsg{gen: gen, errMsg: xtrack.ErrorMessage(err)}
		}
		return recordsMsg{gen: gen, records: stats}
	}

	return tea.Batch(today, overall, records)
}

func (m model) createAccountCmd(name string, userID int64) tea.Cmd {
	return func() tea.Msg {
		account, err := m.client.CreateAccount(context.Background(), name, userID)
		return accountCreatedMsg{account: account, err: err}
	}
}

func (m model) deleteAccountCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		if err := m.client.DeleteAccount(context.Background(), id); err != nil {
			return accountDeletedMsg{id: id, err: err}
		}
		return accountDeletedMsg{id: id}
	}
}

func (m model) rotateTokenCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		account, err := m.client.RegenerateToken(context.Background(), id)
		return tokenRotatedMsg{account: account, err: err}
	}
}

// getAdminData fetches the user and account listings in parallel. Admin
// role only; the service rejects it otherwise.
func (m model) getAdminData() tea.Msg {
	ctx := context.Background()

	var errGroup errgroup.Group
	var users []xtrack.User
	var accounts []xtrack.Account

	errGroup.Go(func() error {
		us, err := m.client.GetUsers(ctx)
		if err != nil {
			return err
		}
		users = us
		return nil
	})

	errGroup.Go(func() error {
		as, err := m.client.GetAllAccounts(ctx)
		if err != nil {
			return err
		}
		accounts = as
		return nil
	})

	if err := errGroup.Wait(); err != nil {
		return adminDataMsg{err: err}
	}

	return adminDataMsg{users: users, accounts: accounts}
}
