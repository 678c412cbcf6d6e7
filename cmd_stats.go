package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/xtrack/xtracktui/dashboard"
	"github.com/xtrack/xtracktui/xtrack"
)

// statsCmd represents the stats command.
var statsCmd = &cobra.Command{
	Use:   "stats <account-id>",
	Short: "Show analytics for a portfolio",
	Long:  `Show the today snapshot, overall snapshot and recent records for a portfolio.`,
	Args:  cobra.ExactArgs(1),
	RunE:  statsRun,
}

func init() {
	statsCmd.Flags().StringP("output", "o", tableOutputFormat, "Output format: table or json")
	statsCmd.Flags().StringP("filter", "f", string(dashboard.FilterAll), "Time window: all, 7d or 30d")
}

// statsReport is the combined CLI payload.
type statsReport struct {
	Today      *xtrack.TodaySummary   `json:"today"`
	Overall    *xtrack.OverallSummary `json:"overall"`
	NetPL      float64                `json:"net_pl"`
	Records    []xtrack.Statistic     `json:"records"`
	Pagination *xtrack.Pagination     `json:"pagination,omitempty"`
}

func statsRun(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if err := requireSession(); err != nil {
		return err
	}

	outputFormat, err := validateOutputFormat(cmd)
	if err != nil {
		return err
	}

	filterName, _ := cmd.Flags().GetString("filter")
	filter, err := dashboard.ParseFilter(filterName)
	if err != nil {
		return err
	}

	id, err := parseAccountID(args[0])
	if err != nil {
		return err
	}

	// Fetch the three slices in parallel
	var errGroup errgroup.Group
	var report statsReport

	errGroup.Go(func() error {
		today, todayErr := client.GetToday(ctx, id)
		if todayErr != nil {
			return todayErr
		}
		report.Today = today
		return nil
	})

	errGroup.Go(func() error {
		overall, overallErr := client.GetOverall(ctx, id)
		if overallErr != nil {
			return overallErr
		}
		report.Overall = overall
		return nil
	})

	errGroup.Go(func() error {
		query := filter.Query(time.Now())

		var records []xtrack.Statistic
		var pagination *xtrack.Pagination
		var recordsErr error
		if query.Paged {
			records, pagination, recordsErr = client.GetStatistics(ctx, id, query.Page, query.PageSize)
		} else {
			records, recordsErr = client.GetStatisticsRange(ctx, id, query.StartDate, query.EndDate)
		}
		if recordsErr != nil {
			return recordsErr
		}
		report.Records = records
		report.Pagination = pagination
		return nil
	})

	if err := errGroup.Wait(); err != nil {
		return fmt.Errorf("failed to fetch statistics: %s", xtrack.ErrorMessage(err))
	}

	report.NetPL = dashboard.NetProfit(report.Records)

	switch outputFormat {
	case jsonOutputFormat:
		return outputJSON(report)
	case tableOutputFormat:
		return outputStatsTables(report, filter)
	default:
		return errors.New("unsupported output format")
	}
}

func outputStatsTables(report statsReport, filter dashboard.FilterRange) error {
	summary := createStyledTable("METRIC", "VALUE")

	if report.Today != nil {
		summary.Row("Today P/L", formatMoney(report.Today.DailyPL))
		summary.Row("Trades Today", fmt.Sprintf("%d", report.Today.TradesToday))
	}
	if report.Overall != nil && report.Overall.HasData {
		summary.Row("Current Balance", formatMoney(report.Overall.CurrentBalance))
	}
	summary.Row(fmt.Sprintf("Net P/L (%s)", filter.Label()), formatMoney(report.NetPL))

	fmt.Println(summary)

	if len(report.Records) == 0 {
		fmt.Println("No records for the selected range.")
		return nil
	}

	records := createStyledTable("DATE", "P/L", "TRADES", "BALANCE")
	for _, r := range dashboard.TableRows(report.Records, -1) {
		values := statisticValues(r)
		records.Row(values...)
	}

	fmt.Println(records)

	if summary := paginationSummary(report.Pagination); summary != "" {
		fmt.Println(summary)
	}

	return nil
}

// paginationSummary reports where the shown page sits in the full record
// set. Range queries carry no pagination and produce an empty string.
func paginationSummary(p *xtrack.Pagination) string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf("Page %d of %d (%d records total)", p.Page, p.TotalPages, p.TotalItems)
}
