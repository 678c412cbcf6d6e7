// Package dashboard holds the account-analytics state: which account and
// time filter are selected, which fetches are owed for that selection, and
// the three data slices (today summary, overall summary, records) derived
// from it. It has no rendering dependency; the TUI layer translates
// FetchPlans into commands and feeds completions back in.
package dashboard

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/xtrack/xtracktui/xtrack"
)

// FetchPlan tells the caller what to fetch after a state transition: the
// today summary, overall summary, and records for AccountID, shaped by
// Query, all tagged with Gen. The three calls run concurrently and each
// completion is reported through the matching Apply method with the same
// Gen. The zero value means no fetching is owed.
type FetchPlan struct {
	Gen       uint64
	AccountID int64
	Query     QuerySpec
}

// Empty reports whether the plan requires no work.
func (p FetchPlan) Empty() bool {
	return p.AccountID == 0
}

// sliceCount is the number of independent requests per plan.
const sliceCount = 3

// Coordinator is the canonical dashboard state. It is driven from a single
// event loop and is not safe for concurrent use; all mutation goes through
// its transition and Apply methods.
type Coordinator struct {
	clock func() time.Time

	accounts   []xtrack.Account
	selectedID int64
	filter     FilterRange

	// generation increases on every selection change or refresh. A fetch
	// completion tagged with an older generation belongs to a superseded
	// selection and is discarded without touching state.
	generation  uint64
	outstanding int

	today   *xtrack.TodaySummary
	overall *xtrack.OverallSummary
	records []xtrack.Statistic

	todayErr   string
	overallErr string
	recordsErr string
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithClock injects the time source used to resolve filter windows.
func WithClock(clock func() time.Time) Option {
	return func(c *Coordinator) {
		c.clock = clock
	}
}

// New creates a coordinator with no accounts and no selection.
func New(opts ...Option) *Coordinator {
	c := &Coordinator{
		clock:  time.Now,
		filter: FilterAll,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// AccountsLoaded installs the account list. If nothing is selected yet and
// the list is non-empty, the first account is auto-selected; an existing
// selection is never overridden.
func (c *Coordinator) AccountsLoaded(accounts []xtrack.Account) FetchPlan {
	c.accounts = accounts

	if c.selectedID != 0 {
		return FetchPlan{}
	}
	if len(accounts) == 0 {
		return FetchPlan{}
	}

	return c.SelectAccount(accounts[0].ID)
}

// SelectAccount makes id the current selection and returns the plan for its
// three slices. Selecting 0 clears the selection.
func (c *Coordinator) SelectAccount(id int64) FetchPlan {
	if id == 0 {
		c.ClearSelection()
		return FetchPlan{}
	}

	c.selectedID = id
	return c.plan()
}

// SetFilter changes the time window for the current selection and re-plans
// all three slices, superseding anything still in flight under the previous
// filter. Without a selection it is a no-op.
func (c *Coordinator) SetFilter(filter FilterRange) FetchPlan {
	c.filter = filter
	if c.selectedID == 0 {
		return FetchPlan{}
	}
	return c.plan()
}

// Refresh re-fetches the current selection under a fresh generation, so a
// still-pending earlier refresh of the same selection is superseded too.
func (c *Coordinator) Refresh() FetchPlan {
	if c.selectedID == 0 {
		return FetchPlan{}
	}
	return c.plan()
}

// ClearSelection drops the selection and empties all three slices
// immediately. The generation bump guarantees nothing from the previous
// account can arrive late and repopulate them.
func (c *Coordinator) ClearSelection() {
	c.selectedID = 0
	c.generation++
	c.outstanding = 0
	c.today = nil
	c.overall = nil
	c.records = nil
	c.todayErr = ""
	c.overallErr = ""
	c.recordsErr = ""
}

// AccountCreated appends the new account and selects it.
func (c *Coordinator) AccountCreated(account xtrack.Account) FetchPlan {
	c.accounts = append(c.accounts, account)
	return c.SelectAccount(account.ID)
}

// AccountDeleted removes the account from the list. If it was selected, the
// first remaining account is selected, or the selection is cleared when none
// remain.
func (c *Coordinator) AccountDeleted(id int64) FetchPlan {
	remaining := c.accounts[:0:0]
	for _, a := range c.accounts {
		if a.ID != id {
			remaining = append(remaining, a)
		}
	}
	c.accounts = remaining

	if c.selectedID != id {
		return FetchPlan{}
	}

	if len(remaining) == 0 {
		c.ClearSelection()
		return FetchPlan{}
	}

	return c.SelectAccount(remaining[0].ID)
}

// TokenRotated swaps in the account carrying its replacement API token.
// Selection and fetch state are untouched.
func (c *Coordinator) TokenRotated(account xtrack.Account) {
	c.replaceAccount(account)
}

// AccountRenamed swaps in the account carrying its new name.
func (c *Coordinator) AccountRenamed(account xtrack.Account) {
	c.replaceAccount(account)
}

func (c *Coordinator) replaceAccount(account xtrack.Account) {
	for i, a := range c.accounts {
		if a.ID == account.ID {
			c.accounts[i] = account
			return
		}
	}
}

func (c *Coordinator) plan() FetchPlan {
	c.generation++
	c.outstanding = sliceCount

	return FetchPlan{
		Gen:       c.generation,
		AccountID: c.selectedID,
		Query:     resolveWindow(c.filter, c.clock()),
	}
}

// stale reports whether a completion belongs to a superseded generation and
// books the completion against the outstanding count otherwise.
func (c *Coordinator) stale(gen uint64, slice string) bool {
	if gen != c.generation {
		log.Debug("discarding stale response", "slice", slice, "gen", gen, "current", c.generation)
		return true
	}
	if c.outstanding > 0 {
		c.outstanding--
	}
	return false
}

// ApplyToday commits a today-summary completion. Results from superseded
// generations are discarded and the method reports whether state changed.
func (c *Coordinator) ApplyToday(gen uint64, summary *xtrack.TodaySummary, errMsg string) bool {
	if c.stale(gen, "today") {
		return false
	}

	if errMsg != "" {
		c.todayErr = errMsg
		return true
	}

	c.today = summary
	c.todayErr = ""
	return true
}

// ApplyOverall commits an overall-summary completion.
func (c *Coordinator) ApplyOverall(gen uint64, summary *xtrack.OverallSummary, errMsg string) bool {
	if c.stale(gen, "overall") {
		return false
	}

	if errMsg != "" {
		c.overallErr = errMsg
		return true
	}

	c.overall = summary
	c.overallErr = ""
	return true
}

// ApplyRecords commits a records completion.
func (c *Coordinator) ApplyRecords(gen uint64, records []xtrack.Statistic, errMsg string) bool {
	if c.stale(gen, "records") {
		return false
	}

	if errMsg != "" {
		c.recordsErr = errMsg
		return true
	}

	c.records = records
	c.recordsErr = ""
	return true
}

// Busy reports whether any request of the current generation is still
// outstanding. Drives the spinner only; no transition consults it.
func (c *Coordinator) Busy() bool {
	return c.outstanding > 0
}

// Accounts returns the cached account list.
func (c *Coordinator) Accounts() []xtrack.Account {
	return c.accounts
}

// SelectedID returns the selected account id, 0 when none.
func (c *Coordinator) SelectedID() int64 {
	return c.selectedID
}

// SelectedAccount returns the selected account, nil when none.
func (c *Coordinator) SelectedAccount() *xtrack.Account {
	for i := range c.accounts {
		if c.accounts[i].ID == c.selectedID {
			return &c.accounts[i]
		}
	}
	return nil
}

// Filter returns the active time filter.
func (c *Coordinator) Filter() FilterRange {
	return c.filter
}

// Today returns the today-summary slice, nil when absent.
func (c *Coordinator) Today() *xtrack.TodaySummary { return c.today }

// Overall returns the overall-summary slice, nil when absent.
func (c *Coordinator) Overall() *xtrack.OverallSummary { return c.overall }

// Records returns the raw records for the current window, unordered.
func (c *Coordinator) Records() []xtrack.Statistic { return c.records }

// TodayError returns the last failure for the today slice, "" when healthy.
func (c *Coordinator) TodayError() string { return c.todayErr }

// OverallError returns the last failure for the overall slice.
func (c *Coordinator) OverallError() string { return c.overallErr }

// RecordsError returns the last failure for the records slice.
func (c *Coordinator) RecordsError() string { return c.recordsErr }
