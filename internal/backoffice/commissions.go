package backoffice

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cobaltpay/backoffice/internal/collection"
	"github.com/cobaltpay/backoffice/internal/commission"
	"github.com/cobaltpay/backoffice/internal/paging"
	"github.com/cobaltpay/backoffice/internal/timespan"
	"github.com/google/uuid"
)

// CommissionLogs is the list container behind the commission log screen
type CommissionLogs struct {
	*collection.Collection[*commission.Log]
	client *Client
}

// NewCommissionLogs creates the list container for the commission log screen
func NewCommissionLogs(client *Client) *CommissionLogs {
	container := &CommissionLogs{client: client}
	container.Collection = collection.New(
		paging.NewQuery(10, "createdAt", paging.OrderDescending),
		container.fetch,
		func(row *commission.Log) string { return row.ID.String() },
	)
	return container
}

func (container *CommissionLogs) fetch(ctx context.Context, query paging.Query) ([]*commission.Log, uint64, error) {
	values := query.Values()
	for name, value := range query.Filters {
		values.Set(name, value)
	}

	raw, total, err := container.client.List(ctx, "/v1/commission_logs", values)
	if err != nil {
		return nil, 0, err
	}
	var rows []*commission.Log
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// SetAgent filters the list by agent ID; an empty value removes the filter
func (container *CommissionLogs) SetAgent(ctx context.Context, agentID string) {
	container.SetFilter(ctx, "agentId", agentID)
}

// SetSettled filters the list by settlement state; nil removes the filter
func (container *CommissionLogs) SetSettled(ctx context.Context, settled *bool) {
	if settled == nil {
		container.SetFilter(ctx, "settled", "")
		return
	}
	if *settled {
		container.SetFilter(ctx, "settled", "true")
	} else {
		container.SetFilter(ctx, "settled", "false")
	}
}

// SetDateRange filters the list by creation date, widened to whole UTC days
func (container *CommissionLogs) SetDateRange(ctx context.Context, start, end time.Time) {
	from, to := timespan.DayBounds(start, end)
	container.SetFilters(ctx, map[string]string{
		"start": from.Format(timespan.RFC3339Milli),
		"end":   to.Format(timespan.RFC3339Milli),
	})
}

// Columns declares the table columns of the commission log screen
func (container *CommissionLogs) Columns() []paging.Column[*commission.Log] {
	return []paging.Column[*commission.Log]{
		{
			Key:      "agent",
			Title:    "Agent",
			Sortable: false,
			Align:    paging.AlignStart,
			Render: func(_ any, row *commission.Log) string {
				return MaskIdentifier(row.AgentID.String())
			},
		},
		{
			Key:      "transaction",
			Title:    "Transaction",
			Sortable: false,
			Align:    paging.AlignStart,
			Render: func(_ any, row *commission.Log) string {
				return MaskIdentifier(row.TransactionID.String())
			},
		},
		{
			Key:      "amount",
			Title:    "Amount",
			Sortable: true,
			Align:    paging.AlignEnd,
			Render: func(value any, row *commission.Log) string {
				exponent, _ := value.(int)
				return FormatAmount(row.Amount, exponent)
			},
		},
		{
			Key:      "settled",
			Title:    "Settled",
			Sortable: true,
			Align:    paging.AlignCenter,
			Render: func(_ any, row *commission.Log) string {
				if row.Settled {
					return "Settled"
				}
				return "Open"
			},
		},
		{
			Key:      "createdAt",
			Title:    "Earned",
			Sortable: true,
			Align:    paging.AlignEnd,
			Render: func(_ any, row *commission.Log) string {
				return FormatTimestamp(row.CreatedAt)
			},
		},
	}
}

// Settlements is the list container behind the settlement screen.
// Besides listing it gates settlement submission on the client side: a
// settlement may only be submitted when the agent's unsettled total in the
// method's currency reaches the method's minimum settlement amount. The API
// enforces the same rule again.
type Settlements struct {
	*collection.Collection[*commission.Settlement]
	client *Client
	data   *BasicData
}

// NewSettlements creates the list container for the settlement screen
func NewSettlements(client *Client, data *BasicData) *Settlements {
	container := &Settlements{
		client: client,
		data:   data,
	}
	container.Collection = collection.New(
		paging.NewQuery(10, "createdAt", paging.OrderDescending),
		container.fetch,
		func(row *commission.Settlement) string { return row.ID.String() },
	)
	return container
}

func (container *Settlements) fetch(ctx context.Context, query paging.Query) ([]*commission.Settlement, uint64, error) {
	values := query.Values()
	for name, value := range query.Filters {
		values.Set(name, value)
	}

	raw, total, err := container.client.List(ctx, "/v1/settlements", values)
	if err != nil {
		return nil, 0, err
	}
	var rows []*commission.Settlement
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// SetAgent filters the list by agent ID; an empty value removes the filter
func (container *Settlements) SetAgent(ctx context.Context, agentID string) {
	container.SetFilter(ctx, "agentId", agentID)
}

// SetStatus filters the list by payout status; an empty value removes the filter
func (container *Settlements) SetStatus(ctx context.Context, status string) {
	container.SetFilter(ctx, "status", status)
}

// SetDateRange filters the list by creation date, widened to whole UTC days
func (container *Settlements) SetDateRange(ctx context.Context, start, end time.Time) {
	from, to := timespan.DayBounds(start, end)
	container.SetFilters(ctx, map[string]string{
		"start": from.Format(timespan.RFC3339Milli),
		"end":   to.Format(timespan.RFC3339Milli),
	})
}

// UnsettledTotal retrieves the agent's current unsettled commission total in the given currency
func (container *Settlements) UnsettledTotal(ctx context.Context, agentID, currencyID uuid.UUID) (int64, error) {
	raw, err := container.client.Get(ctx, "/v1/commission_logs/unsettled_totals")
	if err != nil {
		return 0, err
	}
	totals := map[uuid.UUID][]commission.CurrencyTotal{}
	if err := json.Unmarshal(raw, &totals); err != nil {
		return 0, err
	}
	for _, total := range totals[agentID] {
		if total.CurrencyID == currencyID {
			return total.Amount, nil
		}
	}
	return 0, nil
}

// Submit creates a settlement covering all unsettled commission logs of the
// agent in the given currency. It refuses locally when the method settles a
// different currency or the unsettled total is below the method's minimum.
func (container *Settlements) Submit(ctx context.Context, agentID, methodID, currencyID uuid.UUID) (*commission.Settlement, error) {
	method, err := container.data.Method(ctx, methodID)
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, commission.ErrCurrencyMismatch
	}
	if method.CurrencyID != currencyID {
		return nil, commission.ErrCurrencyMismatch
	}

	total, err := container.UnsettledTotal(ctx, agentID, currencyID)
	if err != nil {
		return nil, err
	}
	if total < method.MinSettlementAmount {
		return nil, &commission.BelowMinimumError{Total: total, Minimum: method.MinSettlementAmount}
	}

	raw, err := container.client.Post(ctx, "/v1/settlements", map[string]string{
		"agent_id":    agentID.String(),
		"method_id":   methodID.String(),
		"currency_id": currencyID.String(),
	})
	if err != nil {
		return nil, err
	}
	obj := new(commission.Settlement)
	if err := json.Unmarshal(raw, obj); err != nil {
		return nil, err
	}

	// The settled logs are gone from the unsettled views
	container.Refresh(ctx)
	return obj, nil
}

// Columns declares the table columns of the settlement screen
func (container *Settlements) Columns() []paging.Column[*commission.Settlement] {
	return []paging.Column[*commission.Settlement]{
		{
			Key:      "agent",
			Title:    "Agent",
			Sortable: false,
			Align:    paging.AlignStart,
			Render: func(_ any, row *commission.Settlement) string {
				return MaskIdentifier(row.AgentID.String())
			},
		},
		{
			Key:      "amount",
			Title:    "Amount",
			Sortable: true,
			Align:    paging.AlignEnd,
			Render: func(value any, row *commission.Settlement) string {
				exponent, _ := value.(int)
				return FormatAmount(row.Amount, exponent)
			},
		},
		{
			Key:      "status",
			Title:    "Status",
			Sortable: true,
			Align:    paging.AlignCenter,
			Render: func(_ any, row *commission.Settlement) string {
				return StatusBadge(string(row.Status))
			},
		},
		{
			Key:      "createdAt",
			Title:    "Created",
			Sortable: true,
			Align:    paging.AlignEnd,
			Render: func(_ any, row *commission.Settlement) string {
				return FormatTimestamp(row.CreatedAt)
			},
		},
	}
}
