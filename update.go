package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"

	"github.com/xtrack/xtracktui/xtrack"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// always check for quit key first
	if msg, ok := msg.(tea.KeyMsg); ok {
		if model, cmd := handleKeyPress(msg, &m); cmd != nil {
			log.Debug("key press handled, cmd returned")
			return model, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	case spinner.TickMsg:
		return m.handleSpinnerTick(msg)

	case getAccountsMsg:
		return m.handleGetAccounts(msg)

	case todaySummaryMsg:
		return m.handleTodaySummary(msg)

	case overallSummaryMsg:
		return m.handleOverallSummary(msg)

	case recordsMsg:
		return m.handleRecords(msg)

	case loginResultMsg:
		return m.handleLoginResult(msg)

	case accountCreatedMsg:
		return m.handleAccountCreated(msg)

	case accountDeletedMsg:
		return m.handleAccountDeleted(msg)

	case tokenRotatedMsg:
		return m.handleTokenRotated(msg)

	case adminDataMsg:
		return m.handleAdminData(msg)

	case authErrorMsg:
		m.sessionState = errorState
		m.errorMsg = fmt.Sprintf("Check your session: %s", xtrack.ErrorMessage(msg.err))
		return m, nil
	}

	var cmd tea.Cmd
	switch m.sessionState {
	case loginState:
		return m.updateLoginForm(msg)

	case createAccountState:
		form, formCmd := m.createForm.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.createForm = f
		} else {
			log.Debug("createForm did not return a form, returning nil")
			return m, nil
		}

		if m.createForm.State == huh.StateCompleted {
			name := m.createForm.GetString("name")
			m.previousSessionState = m.sessionState
			m.sessionState = dashboardState
			return m, m.createAccountCmd(name, m.sess.User.ID)
		}

		return m, formCmd

	case deleteAccountState:
		form, formCmd := m.deleteForm.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.deleteForm = f
		} else {
			log.Debug("deleteForm did not return a form, returning nil")
			return m, nil
		}

		if m.deleteForm.State == huh.StateCompleted {
			m.previousSessionState = m.sessionState
			m.sessionState = dashboardState

			if m.deleteForm.GetBool("confirm") {
				if id := m.coord.SelectedID(); id != 0 {
					return m, m.deleteAccountCmd(id)
				}
			}
			return m, nil
		}

		return m, formCmd

	case dashboardState:
		m.recordsTable, cmd = m.recordsTable.Update(msg)
		return m, cmd

	case adminState:
		m.usersTable, cmd = m.usersTable.Update(msg)
		return m, cmd

	case configState:
		m.configView, cmd = m.configView.Update(msg)
		return m, cmd

	case loading:
		m.loadingSpinner, cmd = m.loadingSpinner.Update(msg)
		return m, cmd
	}

	return m, nil
}
