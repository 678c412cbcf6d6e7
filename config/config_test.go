package config

import (
	"testing"

	"github.com/carlmjohnson/be"
)

func TestMaskSensitiveValue(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected string
	}{
		{
			name:     "mask token",
			value:    "abc123def456",
			expected: "abc1********",
		},
		{
			name:     "mask short token",
			value:    "abc",
			expected: "***",
		},
		{
			name:     "empty token",
			value:    "",
			expected: "(not set)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := maskSensitiveValue(tt.value)
			be.Equal(t, tt.expected, result)
		})
	}
}

func TestSetConfig(t *testing.T) {
	m := New()
	testConfig := Config{
		Debug:   true,
		BaseURL: "https://xtrack.example.com/api",
	}

	m.SetConfig(testConfig, "session-token-123456")

	rows := m.configTable.Rows()
	if rows == nil {
		t.Fatal("Expected config table to have rows after SetConfig")
	}

	be.Equal(t, 3, len(rows))
	be.Equal(t, "https://xtrack.example.com/api", rows[1][1])
	// the session token is never shown in full
	be.Equal(t, "sess****************", rows[2][1])
}
