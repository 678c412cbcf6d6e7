package xtrack

import "time"

// Role values reported by the service for a user.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is an identity known to the X-Track service.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user has the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// AuthResponse is returned by a successful login.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Account is a tracked trading account ("portfolio"). APIToken is the opaque
// bearer credential used by external data producers; it can be rotated
// without changing the account's identity.
type Account struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	APIToken  string    `json:"api_token"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	// User is populated on the admin accounts listing only.
	User *User `json:"user,omitempty"`
}

// Statistic is one append-only performance record for an account. The
// service does not guarantee any ordering; callers sort at the point of use.
type Statistic struct {
	ID           int64     `json:"id"`
	AccountID    int64     `json:"account_id"`
	Timestamp    time.Time `json:"timestamp"`
	DailyPL      float64   `json:"daily_pl"`
	TradesToday  int       `json:"trades_today"`
	TotalBalance float64   `json:"total_balance"`
}

// TodaySummary is the server-derived snapshot for the current day.
type TodaySummary struct {
	TotalRecords  int        `json:"total_records"`
	LatestBalance float64    `json:"latest_balance"`
	DailyPL       float64    `json:"daily_pl"`
	TradesToday   int        `json:"trades_today"`
	LatestUpdate  *time.Time `json:"latest_update"`
}

// OverallSummary is the server-derived snapshot across all time.
type OverallSummary struct {
	HasData        bool       `json:"has_data"`
	CurrentBalance float64    `json:"current_balance"`
	LatestPL       *float64   `json:"latest_pl,omitempty"`
	LatestTrades   *int       `json:"latest_trades,omitempty"`
	LatestUpdate   *time.Time `json:"latest_update"`
}

// Pagination is the optional paging block attached to list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}
