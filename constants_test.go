package main

import (
	"testing"

	"github.com/carlmjohnson/be"
)

func TestSessionStateString(t *testing.T) {
	tests := []struct {
		name     string
		state    sessionState
		expected string
	}{
		{
			name:     "dashboard state",
			state:    dashboardState,
			expected: "dashboard",
		},
		{
			name:     "login state",
			state:    loginState,
			expected: "login",
		},
		{
			name:     "create account state",
			state:    createAccountState,
			expected: "new portfolio",
		},
		{
			name:     "delete confirmation state",
			state:    deleteAccountState,
			expected: "confirm delete",
		},
		{
			name:     "admin state",
			state:    adminState,
			expected: "admin",
		},
		{
			name:     "config state",
			state:    configState,
			expected: "configuration",
		},
		{
			name:     "loading state",
			state:    loading,
			expected: "loading",
		},
		{
			name:     "error state",
			state:    errorState,
			expected: "error",
		},
		{
			name:     "unknown state",
			state:    sessionState(999),
			expected: "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.state.String()
			be.Equal(t, tt.expected, result)
		})
	}
}
