package main

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"

	"github.com/xtrack/xtracktui/session"
	"github.com/xtrack/xtracktui/xtrack"
)

func newLoginForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Key("username").
				Placeholder("Enter username...").
				Validate(func(s string) error {
					if s == "" {
						return errors.New("username is required")
					}
					return nil
				}),

			huh.NewInput().
				Title("Password").
				Key("password").
				EchoMode(huh.EchoModePassword).
				Validate(func(s string) error {
					if s == "" {
						return errors.New("password is required")
					}
					return nil
				}),
		),
	)
}

func (m model) updateLoginForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, formCmd := m.loginForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.loginForm = f
	} else {
		log.Debug("loginForm did not return a form, returning nil")
		return m, nil
	}

	if m.loginForm.State == huh.StateCompleted {
		username := m.loginForm.GetString("username")
		password := m.loginForm.GetString("password")
		return m, m.loginCmd(username, password)
	}

	return m, formCmd
}

func (m model) loginCmd(username, password string) tea.Cmd {
	return func() tea.Msg {
		resp, err := m.client.Login(context.Background(), username, password)
		return loginResultMsg{resp: resp, err: err}
	}
}

func (m model) handleLoginResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		// stay on the login view with the failure message and a fresh form
		m.errorMsg = xtrack.ErrorMessage(msg.err)
		m.loginForm = newLoginForm()
		m.sessionState = loginState
		return m, m.loginForm.Init()
	}

	sess := &session.Session{Token: msg.resp.Token, User: msg.resp.User}
	if err := session.Save(sess); err != nil {
		log.Error("could not persist session", "error", err)
	}

	m.errorMsg = ""
	m.sess = sess
	m.client = newAPIClient(sess.Token, m.config)
	m.previousSessionState = dashboardState
	m.sessionState = loading

	return m, tea.Batch(m.getAccounts, m.loadingSpinner.Tick)
}

// logoutCmd clears the saved session and ends the program. The next run
// starts at the login form.
func (m model) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		if err := session.Clear(); err != nil {
			log.Error("could not clear session", "error", err)
		}
		return tea.Quit()
	}
}
