package xtrack

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// GetToday calls GET /statistics/{accountId}/today.
func (c *Client) GetToday(ctx context.Context, accountID int64) (*TodaySummary, error) {
	var summary TodaySummary
	path := fmt.Sprintf("/statistics/%d/today", accountID)
	if _, err := c.get(ctx, path, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// GetOverall calls GET /statistics/{accountId}/summary.
func (c *Client) GetOverall(ctx context.Context, accountID int64) (*OverallSummary, error) {
	var summary OverallSummary
	path := fmt.Sprintf("/statistics/%d/summary", accountID)
	if _, err := c.get(ctx, path, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// GetStatistics calls GET /statistics/{accountId} with page/page_size and
// returns the records plus the paging block when the service provides one.
func (c *Client) GetStatistics(ctx context.Context, accountID int64, page, pageSize int) ([]Statistic, *Pagination, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("page_size", strconv.Itoa(pageSize))

	var records []Statistic
	pagination, err := c.get(ctx, "/statistics/"+strconv.FormatInt(accountID, 10), query, &records)
	if err != nil {
		return nil, nil, err
	}
	return records, pagination, nil
}

// GetStatisticsRange calls GET /statistics/{accountId}/range. Dates are
// calendar days formatted YYYY-MM-DD, inclusive of both ends.
func (c *Client) GetStatisticsRange(ctx context.Context, accountID int64, startDate, endDate string) ([]Statistic, error) {
	query := url.Values{}
	query.Set("start_date", startDate)
	query.Set("end_date", endDate)

	var records []Statistic
	path := fmt.Sprintf("/statistics/%d/range", accountID)
	if _, err := c.get(ctx, path, query, &records); err != nil {
		return nil, err
	}
	return records, nil
}
