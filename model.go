package main

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"

	"github.com/xtrack/xtracktui/chart"
	"github.com/xtrack/xtracktui/config"
	"github.com/xtrack/xtracktui/dashboard"
	"github.com/xtrack/xtracktui/session"
	"github.com/xtrack/xtracktui/xtrack"
)

type model struct {
	// loadingSpinner is a spinner model for the initial loading state
	loadingSpinner spinner.Model

	keys   keyMap
	help   help.Model
	styles styles

	// sessionState is the current state of the session
	sessionState         sessionState
	previousSessionState sessionState
	errorMsg             string

	// client is the X-Track API client, rebuilt on login/logout
	client *xtrack.Client
	// sess is the persisted identity; nil until login succeeds
	sess *session.Session

	// coord owns selection, filter, generation gating and the three
	// analytics slices
	coord *dashboard.Coordinator
	// chart renders the coordinator's chart series
	chart chart.Model
	// recordsTable shows the most recent records, newest first
	recordsTable table.Model

	// admin view tables, populated for admin users only
	usersTable         table.Model
	adminAccountsTable table.Model

	configView config.Model
	config     config.Config

	loginForm  *huh.Form
	createForm *huh.Form
	deleteForm *huh.Form

	loadingState loadingState

	width, height int
}

func (m model) Init() tea.Cmd {
	if m.sess == nil {
		return tea.Batch(m.loginForm.Init(), m.loadingSpinner.Tick)
	}

	return tea.Batch(
		m.getAccounts,
		m.loadingSpinner.Tick,
	)
}

func (m model) checkIfLoading() sessionState {
	if loaded, key := m.loadingState.allLoaded(); !loaded {
		log.Debug("still loading", "pending", key)
		return loading
	}

	if m.previousSessionState == adminState {
		return adminState
	}

	return dashboardState
}
