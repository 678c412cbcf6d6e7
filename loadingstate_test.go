package main

import (
	"testing"

	"github.com/carlmjohnson/be"
)

func TestNewLoadingState(t *testing.T) {
	tests := []struct {
		name string
		keys []string
	}{
		{
			name: "empty keys",
			keys: []string{},
		},
		{
			name: "single key",
			keys: []string{"accounts"},
		},
		{
			name: "multiple keys",
			keys: []string{"accounts", "today", "overall", "records"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ls := newLoadingState(tt.keys...)

			// Test that all keys are initialized to false
			for _, key := range tt.keys {
				value, exists := ls[key]
				be.True(t, exists)
				be.False(t, value)
			}

			// Test length
			be.Equal(t, len(tt.keys), len(ls))
		})
	}
}

func TestLoadingStateSetUnset(t *testing.T) {
	ls := newLoadingState("today", "records")

	be.False(t, ls["today"])
	be.False(t, ls["records"])

	ls.set("today")
	be.True(t, ls["today"])
	be.False(t, ls["records"])

	ls.set("records")
	be.True(t, ls["records"])

	// unset marks a payload pending again before a reload
	ls.unset("today")
	be.False(t, ls["today"])
	be.True(t, ls["records"])
}

func TestLoadingStateAllLoaded(t *testing.T) {
	tests := []struct {
		name         string
		keys         []string
		setKeys      []string
		expectLoaded bool
	}{
		{
			name:         "empty state - all loaded",
			keys:         []string{},
			setKeys:      []string{},
			expectLoaded: true,
		},
		{
			name:         "none loaded",
			keys:         []string{"today", "records"},
			setKeys:      []string{},
			expectLoaded: false,
		},
		{
			name:         "partially loaded",
			keys:         []string{"today", "overall", "records"},
			setKeys:      []string{"today", "records"},
			expectLoaded: false,
		},
		{
			name:         "all loaded",
			keys:         []string{"today", "overall", "records"},
			setKeys:      []string{"today", "overall", "records"},
			expectLoaded: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ls := newLoadingState(tt.keys...)

			for _, key := range tt.setKeys {
				ls.set(key)
			}

			loaded, notLoaded := ls.allLoaded()
			be.Equal(t, tt.expectLoaded, loaded)

			if tt.expectLoaded {
				be.Equal(t, "", notLoaded)
			} else {
				// Should return one of the not-loaded keys
				be.Nonzero(t, notLoaded)
				be.False(t, ls[notLoaded])
			}
		})
	}
}
