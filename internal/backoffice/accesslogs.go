package backoffice

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/cobaltpay/backoffice/internal/accesslog"
	"github.com/cobaltpay/backoffice/internal/collection"
	"github.com/cobaltpay/backoffice/internal/paging"
	"github.com/cobaltpay/backoffice/internal/timespan"
)

// AccessLogs is the list container behind the access log screen
type AccessLogs struct {
	*collection.Collection[*accesslog.Log]
	client *Client
}

// NewAccessLogs creates the list container for the access log screen
func NewAccessLogs(client *Client) *AccessLogs {
	container := &AccessLogs{client: client}
	container.Collection = collection.New(
		paging.NewQuery(10, "createdAt", paging.OrderDescending),
		container.fetch,
		func(row *accesslog.Log) string { return row.ID.String() },
	)
	return container
}

func (container *AccessLogs) fetch(ctx context.Context, query paging.Query) ([]*accesslog.Log, uint64, error) {
	values := query.Values()
	for name, value := range query.Filters {
		values.Set(name, value)
	}
	if query.Search != "" {
		values.Set("q", query.Search)
	}

	raw, total, err := container.client.List(ctx, "/v1/access_logs", values)
	if err != nil {
		return nil, 0, err
	}
	var rows []*accesslog.Log
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// SetUser filters the list by user ID; an empty value removes the filter
func (container *AccessLogs) SetUser(ctx context.Context, userID string) {
	container.SetFilter(ctx, "userId", userID)
}

// SetMethod filters the list by HTTP method; an empty value removes the filter
func (container *AccessLogs) SetMethod(ctx context.Context, method string) {
	container.SetFilter(ctx, "method", method)
}

// SetStatus filters the list by HTTP response status; zero removes the filter
func (container *AccessLogs) SetStatus(ctx context.Context, status int) {
	if status == 0 {
		container.SetFilter(ctx, "status", "")
		return
	}
	container.SetFilter(ctx, "status", strconv.Itoa(status))
}

// SetDateRange filters the list by request date, widened to whole UTC days
func (container *AccessLogs) SetDateRange(ctx context.Context, start, end time.Time) {
	from, to := timespan.DayBounds(start, end)
	container.SetFilters(ctx, map[string]string{
		"start": from.Format(timespan.RFC3339Milli),
		"end":   to.Format(timespan.RFC3339Milli),
	})
}

// Columns declares the table columns of the access log screen
func (container *AccessLogs) Columns() []paging.Column[*accesslog.Log] {
	return []paging.Column[*accesslog.Log]{
		{
			Key:      "user",
			Title:    "User",
			Sortable: false,
			Align:    paging.AlignStart,
			Render: func(_ any, row *accesslog.Log) string {
				return MaskIdentifier(row.UserID)
			},
		},
		{
			Key:      "method",
			Title:    "Method",
			Sortable: true,
			Align:    paging.AlignCenter,
			Render: func(_ any, row *accesslog.Log) string {
				return row.Method
			},
		},
		{
			Key:      "path",
			Title:    "Path",
			Sortable: false,
			Align:    paging.AlignStart,
			Render: func(_ any, row *accesslog.Log) string {
				return row.Path
			},
		},
		{
			Key:      "status",
			Title:    "Status",
			Sortable: true,
			Align:    paging.AlignCenter,
			Render: func(_ any, row *accesslog.Log) string {
				return strconv.Itoa(row.Status)
			},
		},
		{
			Key:      "ip",
			Title:    "IP",
			Sortable: false,
			Align:    paging.AlignStart,
			Render: func(_ any, row *accesslog.Log) string {
				return row.IP
			},
		},
		{
			Key:      "createdAt",
			Title:    "Time",
			Sortable: true,
			Align:    paging.AlignEnd,
			Render: func(_ any, row *accesslog.Log) string {
				return FormatTimestamp(row.CreatedAt)
			},
		},
	}
}
