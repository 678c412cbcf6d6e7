package main

const standardMargin = 2

// recentRowLimit caps the recent-records table on the dashboard.
const recentRowLimit = 9

// sidebarWidth is the fixed width of the portfolio sidebar.
const sidebarWidth = 28

// Session states
type sessionState int

const (
	dashboardState sessionState = iota
	loginState
	createAccountState
	deleteAccountState
	adminState
	configState
	loading
	errorState
)

func (ss sessionState) String() string {
	switch ss {
	case dashboardState:
		return "dashboard"
	case loginState:
		return "login"
	case createAccountState:
		return "new portfolio"
	case deleteAccountState:
		return "confirm delete"
	case adminState:
		return "admin"
	case configState:
		return "configuration"
	case loading:
		return "loading"
	case errorState:
		return "error"
	}

	return "unknown"
}
