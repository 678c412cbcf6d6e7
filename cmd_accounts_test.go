package main

import (
	"testing"
	"time"

	"github.com/carlmjohnson/be"

	"github.com/xtrack/xtracktui/xtrack"
)

func TestAccountToRow(t *testing.T) {
	created := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		account  xtrack.Account
		expected accountRow
	}{
		{
			name: "own account without owner detail",
			account: xtrack.Account{
				ID:        12,
				UserID:    3,
				Name:      "Swing Desk",
				APIToken:  "tok_abc123",
				CreatedAt: created,
			},
			expected: accountRow{
				ID:      12,
				Name:    "Swing Desk",
				Owner:   "-",
				Token:   "tok_abc123",
				Created: "2026-03-14",
			},
		},
		{
			name: "admin listing carries the owner",
			account: xtrack.Account{
				ID:        44,
				UserID:    9,
				Name:      "Scalping",
				APIToken:  "tok_xyz789",
				CreatedAt: created,
				User:      &xtrack.User{ID: 9, Username: "dana"},
			},
			expected: accountRow{
				ID:      44,
				Name:    "Scalping",
				Owner:   "dana",
				Token:   "tok_xyz789",
				Created: "2026-03-14",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := accountToRow(tt.account)
			be.Equal(t, tt.expected, result)
		})
	}
}

func TestParseAccountID(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int64
		wantErr bool
	}{
		{name: "valid id", raw: "42", want: 42},
		{name: "zero is rejected", raw: "0", wantErr: true},
		{name: "negative is rejected", raw: "-3", wantErr: true},
		{name: "non-numeric is rejected", raw: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := parseAccountID(tt.raw)
			if tt.wantErr {
				be.Nonzero(t, err)
				return
			}
			be.NilErr(t, err)
			be.Equal(t, tt.want, id)
		})
	}
}
