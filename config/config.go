package config

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Colors holds the user-overridable theme colors.
type Colors struct {
	Primary       string `toml:"primary"`
	Error         string `toml:"error"`
	Success       string `toml:"success"`
	Warning       string `toml:"warning"`
	Muted         string `toml:"muted"`
	Gain          string `toml:"gain"`
	Loss          string `toml:"loss"`
	Border        string `toml:"border"`
	Text          string `toml:"text"`
	SecondaryText string `toml:"secondary_text"`
}

// Config represents the application configuration structure.
type Config struct {
	// Debug enables debug logging
	Debug bool `toml:"debug"`
	// BaseURL points the client at a non-default X-Track deployment
	BaseURL string `toml:"base_url"`
	// Colors overrides the default theme
	Colors Colors `toml:"colors"`
}

// Model represents the config view model.
type Model struct {
	configTable table.Model
}

// New creates a new config view model.
func New() Model {
	configTable := table.New(
		table.WithColumns([]table.Column{
			{Title: "Setting", Width: 30},
			{Title: "Value", Width: 40},
			{Title: "Description", Width: 50},
		}),
	)

	tableStyle := table.DefaultStyles()
	tableStyle.Selected = tableStyle.Selected.
		Foreground(lipgloss.Color("#6366f1"))

	configTable.SetStyles(tableStyle)

	return Model{configTable: configTable}
}

// SetFocus sets the focus state of the config table.
func (m *Model) SetFocus(focus bool) {
	if focus {
		m.configTable.Focus()
	} else {
		m.configTable.Blur()
	}
}

// SetSize sets the size of the config table.
func (m *Model) SetSize(width, height int) {
	m.configTable.SetHeight(height)
	m.configTable.SetWidth(width)
}

func maskSensitiveValue(value string) string {
	if value == "" {
		return "(not set)"
	}

	if len(value) <= 4 {
		return strings.Repeat("*", len(value))
	}

	return value[:4] + strings.Repeat("*", len(value)-4)
}

// SetConfig sets the configuration data for the view. The session token is
// passed separately because it lives in the credential store, not the file.
func (m *Model) SetConfig(config Config, sessionToken string) {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = "(default)"
	}

	rows := []table.Row{
		{
			"Debug",
			strconv.FormatBool(config.Debug),
			"Enable debug logging",
		},
		{
			"Base URL",
			baseURL,
			"X-Track API endpoint",
		},
		{
			"Session Token",
			maskSensitiveValue(sessionToken),
			"Bearer credential from the last login",
		},
	}

	m.configTable.SetRows(rows)
}

// Init initializes the config view.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles updates to the config view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.configTable, cmd = m.configTable.Update(msg)
	return m, cmd
}

// View renders the config view.
func (m Model) View() string {
	return m.configTable.View()
}
