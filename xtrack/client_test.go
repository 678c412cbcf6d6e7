package xtrack

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/carlmjohnson/be"
	"github.com/charmbracelet/log"
)

func TestGetMyAccounts(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		be.Equal(t, "/accounts/me", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"data": [
				{"id": 1, "user_id": 7, "name": "Alpha", "api_token": "tok-a"},
				{"id": 2, "user_id": 7, "name": "Beta", "api_token": "tok-b"}
			]
		}`))
	}))
	defer server.Close()

	c := NewWithBaseURL("secret", server.URL)
	accounts, err := c.GetMyAccounts(context.Background())
	be.NilErr(t, err)
	be.Equal(t, "Bearer secret", gotAuth)
	be.Equal(t, 2, len(accounts))
	be.Equal(t, "Alpha", accounts[0].Name)
	be.Equal(t, int64(2), accounts[1].ID)
}

func TestGetStatisticsQueryAndPagination(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		be.Equal(t, "/statistics/42", r.URL.Path)
		be.Equal(t, "1", r.URL.Query().Get("page"))
		be.Equal(t, "100", r.URL.Query().Get("page_size"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"data": [{"id": 9, "account_id": 42, "daily_pl": 12.5, "trades_today": 3, "total_balance": 1000}],
			"pagination": {"page": 1, "page_size": 100, "total_items": 250, "total_pages": 3}
		}`))
	}))
	defer server.Close()

	c := NewWithBaseURL("secret", server.URL)
	records, pagination, err := c.GetStatistics(context.Background(), 42, 1, 100)
	be.NilErr(t, err)
	be.Equal(t, 1, len(records))
	be.Equal(t, 12.5, records[0].DailyPL)
	be.Nonzero(t, pagination)
	be.Equal(t, 3, pagination.TotalPages)
}

func TestGetStatisticsRangeDates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		be.Equal(t, "/statistics/7/range", r.URL.Path)
		be.Equal(t, "2024-01-01", r.URL.Query().Get("start_date"))
		be.Equal(t, "2024-01-08", r.URL.Query().Get("end_date"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true, "data": []}`))
	}))
	defer server.Close()

	c := NewWithBaseURL("secret", server.URL)
	records, err := c.GetStatisticsRange(context.Background(), 7, "2024-01-01", "2024-01-08")
	be.NilErr(t, err)
	be.Equal(t, 0, len(records))
}

func TestApplicationFailurePassthrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"success": false, "error": "account not found"}`))
	}))
	defer server.Close()

	c := NewWithBaseURL("secret", server.URL)
	_, err := c.GetAccount(context.Background(), 99)
	be.Nonzero(t, err)

	var apiErr *APIError
	be.True(t, errors.As(err, &apiErr))
	be.Equal(t, "account not found", apiErr.Message)
	be.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	be.Equal(t, "account not found", ErrorMessage(err))
}

func TestTransportFailureNormalized(t *testing.T) {
	// Point at a server that is already closed so the dial fails.
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	c := NewWithBaseURL("secret", server.URL)
	_, err := c.GetMyAccounts(context.Background())
	be.Nonzero(t, err)
	be.Equal(t, NetworkErrorMessage, ErrorMessage(err))
}

func TestMalformedBodyNormalized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>gateway timeout</html>`))
	}))
	defer server.Close()

	c := NewWithBaseURL("secret", server.URL)
	_, err := c.GetOverall(context.Background(), 1)
	be.Nonzero(t, err)
	be.Equal(t, NetworkErrorMessage, ErrorMessage(err))
}

func TestLoginOmitsBearerAndReturnsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		be.Equal(t, "/auth/login", r.URL.Path)
		be.Equal(t, "", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"data": {"token": "jwt-123", "user": {"id": 5, "username": "casey", "role": "admin"}}
		}`))
	}))
	defer server.Close()

	c := NewWithBaseURL("", server.URL)
	auth, err := c.Login(context.Background(), "casey", "hunter2")
	be.NilErr(t, err)
	be.Equal(t, "jwt-123", auth.Token)
	be.Equal(t, "casey", auth.User.Username)
	be.True(t, auth.User.IsAdmin())
}

func TestRegenerateTokenReplacesCredential(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		be.Equal(t, http.MethodPost, r.Method)
		be.Equal(t, "/accounts/3/regenerate-token", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true, "data": {"id": 3, "name": "Alpha", "api_token": "tok-new"}}`))
	}))
	defer server.Close()

	c := NewWithBaseURL("secret", server.URL)
	account, err := c.RegenerateToken(context.Background(), 3)
	be.NilErr(t, err)
	be.Equal(t, int64(3), account.ID)
	be.Equal(t, "tok-new", account.APIToken)
}

func TestLoggingTransportPassesThrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		be.Equal(t, "/accounts/me", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true, "data": [{"id": 1, "name": "Alpha"}]}`))
	}))
	defer server.Close()

	c := NewWithBaseURL("secret", server.URL)
	c.SetTransport(NewLoggingTransport(http.DefaultTransport, log.Default()))

	accounts, err := c.GetMyAccounts(context.Background())
	be.NilErr(t, err)
	be.Equal(t, 1, len(accounts))
	be.Equal(t, "Alpha", accounts[0].Name)
}

func TestTimestampDecoding(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"data": {"total_records": 4, "latest_balance": 1250.5, "daily_pl": -3.25, "trades_today": 2,
				"latest_update": "2024-06-01T15:04:05Z"}
		}`))
	}))
	defer server.Close()

	c := NewWithBaseURL("secret", server.URL)
	summary, err := c.GetToday(context.Background(), 1)
	be.NilErr(t, err)
	be.Nonzero(t, summary.LatestUpdate)
	be.Equal(t, time.Date(2024, 6, 1, 15, 4, 5, 0, time.UTC), summary.LatestUpdate.UTC())
	be.Equal(t, -3.25, summary.DailyPL)
}
