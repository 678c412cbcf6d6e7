package main

import (
	"testing"

	"github.com/carlmjohnson/be"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/xtrack/xtracktui/config"
	"github.com/xtrack/xtracktui/xtrack"
)

func testModel() model {
	m := newModel(config.Config{}, nil, nil)
	m.sessionState = dashboardState
	m.previousSessionState = dashboardState
	return m
}

func TestFilterCycleKey(t *testing.T) {
	m := testModel()
	m.coord.AccountsLoaded([]xtrack.Account{{ID: 1, Name: "alpha"}})

	resultModel, cmd := handleKeyPress(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}}, &m)
	result := resultModel.(*model)

	if result.sessionState != loading {
		t.Errorf("Expected session state to be loading, got %v", result.sessionState)
	}

	if result.coord.Filter() != "7d" {
		t.Errorf("Expected filter to advance to 7d, got %v", result.coord.Filter())
	}

	if cmd == nil {
		t.Error("Expected command to fetch the new window, got nil")
	}
}

func TestFilterCycleKeyWithoutSelection(t *testing.T) {
	m := testModel()

	// no accounts, so cycling the filter owes no fetch
	resultModel, cmd := handleKeyPress(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}}, &m)
	result := resultModel.(*model)

	be.Equal(t, dashboardState, result.sessionState)
	be.True(t, cmd == nil)
}

func TestAccountNavigationWraps(t *testing.T) {
	m := testModel()
	m.coord.AccountsLoaded([]xtrack.Account{
		{ID: 1, Name: "alpha"},
		{ID: 2, Name: "beta"},
	})

	// down from the auto-selected first account
	resultModel, cmd := handleKeyPress(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}, &m)
	result := resultModel.(*model)

	be.Equal(t, int64(2), result.coord.SelectedID())
	be.Nonzero(t, cmd)

	// down again wraps back to the first
	result.sessionState = dashboardState
	resultModel, cmd = handleKeyPress(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}, result)
	result = resultModel.(*model)

	be.Equal(t, int64(1), result.coord.SelectedID())
	be.Nonzero(t, cmd)
}

func TestHandleEscape(t *testing.T) {
	tests := []struct {
		name          string
		initialState  sessionState
		expectedState sessionState
		createForm    *huh.Form
		expectedForm  huh.FormState
	}{
		{
			name:          "from create account state",
			initialState:  createAccountState,
			expectedState: dashboardState,
			createForm:    &huh.Form{State: huh.StateNormal},
			expectedForm:  huh.StateAborted,
		},
		{
			name:          "from admin state",
			initialState:  adminState,
			expectedState: dashboardState,
		},
		{
			name:          "from config state",
			initialState:  configState,
			expectedState: dashboardState,
		},
		{
			name:          "from dashboard state",
			initialState:  dashboardState,
			expectedState: dashboardState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := testModel()
			m.sessionState = tt.initialState
			if tt.createForm != nil {
				m.createForm = tt.createForm
			}

			resultModel, _ := handleEscape(&m)
			result := resultModel.(*model)

			be.Equal(t, tt.expectedState, result.sessionState)
			if tt.createForm != nil {
				be.Equal(t, tt.expectedForm, result.createForm.State)
			}
		})
	}
}

func TestDeleteKeyOpensConfirmation(t *testing.T) {
	m := testModel()
	m.coord.AccountsLoaded([]xtrack.Account{{ID: 1, Name: "alpha"}})

	resultModel, cmd := handleKeyPress(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}, &m)
	result := resultModel.(*model)

	// the key only raises the confirmation form, it never deletes
	be.Equal(t, deleteAccountState, result.sessionState)
	be.Nonzero(t, result.deleteForm)
	be.Nonzero(t, cmd)
	be.Equal(t, 1, len(result.coord.Accounts()))
}

func TestDeleteKeyWithoutSelection(t *testing.T) {
	m := testModel()

	resultModel, cmd := handleKeyPress(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}, &m)
	result := resultModel.(*model)

	be.Equal(t, dashboardState, result.sessionState)
	be.True(t, cmd == nil)
}

func TestEscapeAbortsDeleteConfirmation(t *testing.T) {
	m := testModel()
	m.sessionState = deleteAccountState
	m.deleteForm = &huh.Form{State: huh.StateNormal}

	resultModel, _ := handleEscape(&m)
	result := resultModel.(*model)

	be.Equal(t, dashboardState, result.sessionState)
	be.Equal(t, huh.StateAborted, result.deleteForm.State)
}

func TestConfigKeyWithoutSession(t *testing.T) {
	m := testModel()

	// no session means no token to show, so the key is inert
	resultModel, cmd := handleKeyPress(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}}, &m)
	result := resultModel.(*model)

	be.Equal(t, dashboardState, result.sessionState)
	be.True(t, cmd == nil)
}

func TestEscapeOnDashboardClearsSelection(t *testing.T) {
	m := testModel()
	m.coord.AccountsLoaded([]xtrack.Account{{ID: 7, Name: "alpha"}})
	be.Equal(t, int64(7), m.coord.SelectedID())

	resultModel, _ := handleEscape(&m)
	result := resultModel.(*model)

	be.Equal(t, int64(0), result.coord.SelectedID())
	be.Equal(t, dashboardState, result.sessionState)
}

func TestStaleRecordsAreDiscarded(t *testing.T) {
	m := testModel()
	plan := m.coord.AccountsLoaded([]xtrack.Account{{ID: 1, Name: "alpha"}})
	be.False(t, plan.Empty())

	stale := recordsMsg{
		gen:     plan.Gen - 1,
		records: []xtrack.Statistic{{ID: 99, AccountID: 2, DailyPL: -1}},
	}

	resultModel, _ := m.handleRecords(stale)
	result := resultModel.(model)

	be.Equal(t, 0, len(result.coord.Records()))
	be.False(t, result.loadingState["records"])

	current := recordsMsg{
		gen:     plan.Gen,
		records: []xtrack.Statistic{{ID: 1, AccountID: 1, DailyPL: 12.5}},
	}

	resultModel, _ = result.handleRecords(current)
	result = resultModel.(model)

	be.Equal(t, 1, len(result.coord.Records()))
	be.True(t, result.loadingState["records"])
	be.Equal(t, 1, len(result.recordsTable.Rows()))
}

func TestHandleTokenRotated(t *testing.T) {
	m := testModel()
	m.coord.AccountsLoaded([]xtrack.Account{{ID: 1, Name: "alpha", APIToken: "old-token"}})

	rotated := xtrack.Account{ID: 1, Name: "alpha", APIToken: "new-token"}
	resultModel, _ := m.handleTokenRotated(tokenRotatedMsg{account: &rotated})
	result := resultModel.(model)

	be.Equal(t, "new-token", result.coord.Accounts()[0].APIToken)
	// selection is untouched by a token rotation
	be.Equal(t, int64(1), result.coord.SelectedID())
}

func TestCheckIfLoading(t *testing.T) {
	m := testModel()

	m.loadingState = newLoadingState("today")
	be.Equal(t, loading, m.checkIfLoading())

	m.loadingState.set("today")
	be.Equal(t, dashboardState, m.checkIfLoading())

	m.previousSessionState = adminState
	be.Equal(t, adminState, m.checkIfLoading())
}

func TestMaskToken(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		expected string
	}{
		{name: "short token unchanged", token: "abcd", expected: "abcd"},
		{name: "long token truncated", token: "abcdefghijklmnop", expected: "abcdefgh…"},
		{name: "empty token", token: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			be.Equal(t, tt.expected, maskToken(tt.token))
		})
	}
}
