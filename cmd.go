package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/xtrack/xtracktui/chart"
	"github.com/xtrack/xtracktui/config"
	"github.com/xtrack/xtracktui/dashboard"
	"github.com/xtrack/xtracktui/session"
	"github.com/xtrack/xtracktui/xtrack"
)

const (
	jsonOutputFormat  = "json"
	tableOutputFormat = "table"
)

// Global variables for configuration.
var (
	cfgFile string
	debug   bool
	baseURL string
	cfg     config.Config
	sess    *session.Session
	client  *xtrack.Client
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "xtracktui",
	Short: "A terminal UI and CLI for X-Track trading analytics",
	Long:  `A terminal-based dashboard and CLI for monitoring X-Track trading account performance.`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		cfg = config.Config{
			Debug:   debug,
			BaseURL: baseURL,
			Colors:  colorsFromViper(),
		}

		// Setup logging
		log.SetLevel(log.InfoLevel)
		if cfg.Debug {
			log.SetLevel(log.DebugLevel)
		}

		var err error
		sess, err = session.Load()
		if err != nil && !errors.Is(err, session.ErrNoSession) {
			return fmt.Errorf("failed to load session: %w", err)
		}

		token := ""
		if sess != nil {
			token = sess.Token
		}
		client = newAPIClient(token, cfg)

		return nil
	},
	RunE: func(c *cobra.Command, _ []string) error {
		// Start TUI when no subcommands are provided
		return rootAction(c.Context())
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := fang.Execute(context.Background(), rootCmd); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.xtracktui.toml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "the X-Track API base URL")

	// Bind flags to viper
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("base_url", rootCmd.PersistentFlags().Lookup("base-url"))

	// Bind environment variables
	_ = viper.BindEnv("base_url", "XTRACK_BASE_URL")

	// Add subcommands
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(accountsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(usersCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		if err != nil {
			log.Error("Error finding home directory", "error", err)
			os.Exit(1)
		}

		// Search config in multiple locations (in order of precedence)
		// Current directory (highest precedence)
		viper.AddConfigPath(".")
		viper.SetConfigName("xtracktui")
		viper.SetConfigType("toml")

		// User config directory
		if configDir, configErr := os.UserConfigDir(); configErr == nil {
			viper.AddConfigPath(filepath.Join(configDir, "xtracktui"))
		}

		// User home directory
		viper.AddConfigPath(home)
		viper.AddConfigPath(filepath.Join(home, ".config", "xtracktui"))

		// System-wide config directory (lowest precedence)
		viper.AddConfigPath("/etc/xtracktui")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		log.Debug("Config file not found or error reading", "error", err)
		return
	}

	log.Debug("Using config file", "file", viper.ConfigFileUsed())

	// Update global variables from viper
	if !rootCmd.PersistentFlags().Changed("debug") {
		debug = viper.GetBool("debug")
	}
	if !rootCmd.PersistentFlags().Changed("base-url") {
		baseURL = viper.GetString("base_url")
	}
}

func colorsFromViper() config.Colors {
	return config.Colors{
		Primary:       viper.GetString("colors.primary"),
		Error:         viper.GetString("colors.error"),
		Success:       viper.GetString("colors.success"),
		Warning:       viper.GetString("colors.warning"),
		Muted:         viper.GetString("colors.muted"),
		Gain:          viper.GetString("colors.gain"),
		Loss:          viper.GetString("colors.loss"),
		Border:        viper.GetString("colors.border"),
		Text:          viper.GetString("colors.text"),
		SecondaryText: viper.GetString("colors.secondary_text"),
	}
}

// newAPIClient builds an X-Track client with the logging transport attached.
// An empty token produces an unauthenticated client, enough for login.
func newAPIClient(token string, cfg config.Config) *xtrack.Client {
	var c *xtrack.Client
	if cfg.BaseURL != "" {
		c = xtrack.NewWithBaseURL(token, cfg.BaseURL)
	} else {
		c = xtrack.New(token)
	}

	c.SetTransport(xtrack.NewLoggingTransport(http.DefaultTransport, log.Default()))
	return c
}

// requireSession guards the CLI subcommands that need authentication.
func requireSession() error {
	if sess == nil {
		return errors.New("not logged in (run 'xtracktui login' or set XTRACK_TOKEN)")
	}
	return nil
}

func rootAction(_ context.Context) error {
	m := newModel(cfg, client, sess)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("xtracktui ran into an error: %w", err)
	}

	return nil
}

func newModel(cfg config.Config, client *xtrack.Client, sess *session.Session) model {
	theme := newTheme(cfg.Colors)
	appStyles := createStyles(theme)

	recordsTable := table.New(
		table.WithColumns([]table.Column{
			{Title: "Date", Width: 18},
			{Title: "P/L", Width: 14},
			{Title: "Trades", Width: 8},
			{Title: "Balance", Width: 16},
		}),
		table.WithHeight(recentRowLimit+1),
	)
	recordsStyle := table.DefaultStyles()
	recordsStyle.Selected = recordsStyle.Selected.Foreground(theme.Primary)
	recordsTable.SetStyles(recordsStyle)

	usersTable, adminAccountsTable := newAdminTables(theme)

	m := model{
		keys:   initializeKeyMap(),
		help:   createHelpModel(theme),
		styles: appStyles,
		loadingSpinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
		),
		client:             client,
		sess:               sess,
		coord:              dashboard.New(),
		chart:              chart.New(),
		recordsTable:       recordsTable,
		usersTable:         usersTable,
		adminAccountsTable: adminAccountsTable,
		configView:         config.New(),
		config:             cfg,
		loadingState:       newLoadingState("accounts", "today", "overall", "records"),
	}

	if sess == nil {
		m.loginForm = newLoginForm()
		m.sessionState = loginState
		m.previousSessionState = loginState
	} else {
		m.sessionState = loading
		m.previousSessionState = dashboardState
	}

	return m
}

// Utility functions for output formatting.
func validateOutputFormat(cmd *cobra.Command) (string, error) {
	outputFormat, err := cmd.Flags().GetString("output")
	if err != nil {
		return "", fmt.Errorf("failed to read output flag: %w", err)
	}

	if outputFormat != jsonOutputFormat && outputFormat != tableOutputFormat {
		return "", fmt.Errorf("invalid output format: %s (must be 'table' or 'json')", outputFormat)
	}

	return outputFormat, nil
}

func outputJSON(data any) error {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	fmt.Println(string(jsonData))
	return nil
}

func createStyledTable(headers ...string) *lgtable.Table {
	var (
		purple    = lipgloss.Color("99")
		gray      = lipgloss.Color("245")
		lightGray = lipgloss.Color("241")

		headerStyle  = lipgloss.NewStyle().Foreground(purple).Bold(true).Align(lipgloss.Center)
		cellStyle    = lipgloss.NewStyle().Padding(0, 1)
		oddRowStyle  = cellStyle.Foreground(gray)
		evenRowStyle = cellStyle.Foreground(lightGray)
	)

	return lgtable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(purple)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == lgtable.HeaderRow:
				return headerStyle
			case row%2 == 0:
				return evenRowStyle
			default:
				return oddRowStyle
			}
		}).
		Headers(headers...)
}
