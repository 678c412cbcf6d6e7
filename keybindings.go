package main

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"
)

type keyMap struct {
	nextAccount   key.Binding
	prevAccount   key.Binding
	cycleFilter   key.Binding
	refresh       key.Binding
	createAccount key.Binding
	deleteAccount key.Binding
	regenerateKey key.Binding
	admin         key.Binding
	config        key.Binding
	logout        key.Binding
	escape        key.Binding
	fullHelp      key.Binding
	quit          key.Binding
}

func (km keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		km.nextAccount,
		km.prevAccount,
		km.cycleFilter,
		km.refresh,
		km.quit,
		km.fullHelp,
	}
}

func (km keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{
			km.nextAccount,
			km.prevAccount,
			km.cycleFilter,
			km.refresh,
			km.escape,
		},
		{
			km.createAccount,
			km.deleteAccount,
			km.regenerateKey,
		},
		{
			km.admin,
			km.config,
			km.logout,
			km.quit,
			km.fullHelp,
		},
	}
}

func initializeKeyMap() keyMap {
	keys := keyMap{
		nextAccount: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j", "next portfolio"),
		),
		prevAccount: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k", "previous portfolio"),
		),
		cycleFilter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "cycle time filter"),
		),
		refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		createAccount: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new portfolio"),
		),
		deleteAccount: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "delete portfolio"),
		),
		regenerateKey: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "regenerate token"),
		),
		admin: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "admin"),
		),
		config: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "configuration"),
		),
		logout: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "log out"),
		),
		escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "escape"),
		),
		fullHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
	return keys
}

func handleKeyPress(msg tea.KeyMsg, m *model) (tea.Model, tea.Cmd) {
	k := msg.String()
	log.Debug("key pressed", "key", k)

	// Handle special keys first
	if model, cmd := handleSpecialKeys(msg, m); cmd != nil {
		return model, cmd
	}

	// Check if input is blocked by active forms
	if isInputBlocked(m) {
		return m, nil
	}

	// Handle dashboard navigation keys
	if model, cmd := handleNavigationKeys(msg, m); cmd != nil {
		return model, cmd
	}

	// Handle session state changes
	if model, cmd := handleSessionStateKeys(msg, m); cmd != nil {
		return model, cmd
	}

	return m, nil
}

func handleSpecialKeys(msg tea.KeyMsg, m *model) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.quit) && !isInputBlocked(m) {
		return m, tea.Quit
	}

	// ctrl+c quits even while a form is focused
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if key.Matches(msg, m.keys.escape) {
		return handleEscape(m)
	}

	return m, nil
}

func isInputBlocked(m *model) bool {
	if m.sessionState == loginState {
		return true
	}

	if m.sessionState == createAccountState && m.createForm != nil && m.createForm.State == huh.StateNormal {
		return true
	}

	if m.sessionState == deleteAccountState && m.deleteForm != nil && m.deleteForm.State == huh.StateNormal {
		return true
	}

	if m.sessionState == loading {
		return true
	}

	return false
}

func handleNavigationKeys(msg tea.KeyMsg, m *model) (tea.Model, tea.Cmd) {
	if m.sessionState != dashboardState {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.nextAccount):
		return selectAdjacentAccount(m, 1)
	case key.Matches(msg, m.keys.prevAccount):
		return selectAdjacentAccount(m, -1)
	case key.Matches(msg, m.keys.cycleFilter):
		plan := m.coord.SetFilter(m.coord.Filter().Next())
		return m, m.startPlan(plan)
	case key.Matches(msg, m.keys.refresh):
		plan := m.coord.Refresh()
		return m, m.startPlan(plan)
	case key.Matches(msg, m.keys.deleteAccount):
		// irreversible, so the command is only issued once the
		// confirmation form completes
		if selected := m.coord.SelectedAccount(); selected != nil {
			m.previousSessionState = m.sessionState
			m.sessionState = deleteAccountState
			m.deleteForm = newDeleteAccountForm(selected.Name)
			return m, m.deleteForm.Init()
		}
	case key.Matches(msg, m.keys.regenerateKey):
		if id := m.coord.SelectedID(); id != 0 {
			return m, m.rotateTokenCmd(id)
		}
	}

	return m, nil
}

// selectAdjacentAccount moves the selection up or down the sidebar list,
// wrapping at both ends.
func selectAdjacentAccount(m *model, delta int) (tea.Model, tea.Cmd) {
	accounts := m.coord.Accounts()
	if len(accounts) == 0 {
		return m, nil
	}

	current := 0
	for i, a := range accounts {
		if a.ID == m.coord.SelectedID() {
			current = i
			break
		}
	}

	next := (current + delta + len(accounts)) % len(accounts)
	if accounts[next].ID == m.coord.SelectedID() {
		return m, nil
	}

	plan := m.coord.SelectAccount(accounts[next].ID)
	return m, m.startPlan(plan)
}

func handleSessionStateKeys(msg tea.KeyMsg, m *model) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.createAccount):
		if m.sessionState != createAccountState {
			m.previousSessionState = m.sessionState
			m.sessionState = createAccountState
			m.createForm = newCreateAccountForm()
			return m, m.createForm.Init()
		}

	case key.Matches(msg, m.keys.admin):
		if m.sessionState != adminState && m.sess != nil && m.sess.User.IsAdmin() {
			m.previousSessionState = m.sessionState
			return m, m.getAdminData
		}

	case key.Matches(msg, m.keys.config):
		if m.sessionState != configState && m.sess != nil {
			m.previousSessionState = m.sessionState
			m.configView.SetConfig(m.config, m.sess.Token)
			m.configView.SetFocus(true)
			m.sessionState = configState
			return m, tea.WindowSize()
		}

	case key.Matches(msg, m.keys.logout):
		return m, m.logoutCmd()

	case key.Matches(msg, m.keys.fullHelp):
		m.help.ShowAll = !m.help.ShowAll
		return m, tea.WindowSize()
	}

	return m, nil
}

// handleEscape backs out of the current view. On the dashboard it drops the
// account selection entirely.
func handleEscape(m *model) (tea.Model, tea.Cmd) {
	switch m.sessionState {
	case createAccountState:
		log.Debug("handling escape in create account state")
		m.createForm.State = huh.StateAborted
		m.previousSessionState = m.sessionState
		m.sessionState = dashboardState
		return m, nil

	case deleteAccountState:
		log.Debug("handling escape in delete confirmation state")
		m.deleteForm.State = huh.StateAborted
		m.previousSessionState = m.sessionState
		m.sessionState = dashboardState
		return m, nil

	case adminState, configState, errorState:
		m.previousSessionState = m.sessionState
		m.sessionState = dashboardState
		m.errorMsg = ""
		return m, nil

	case dashboardState:
		if m.coord.SelectedID() != 0 {
			m.coord.ClearSelection()
			m.refreshDerived()
		}
		return m, nil
	}

	return m, nil
}
