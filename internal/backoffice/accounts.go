package backoffice

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cobaltpay/backoffice/internal/account"
	"github.com/cobaltpay/backoffice/internal/collection"
	"github.com/cobaltpay/backoffice/internal/paging"
	"github.com/cobaltpay/backoffice/internal/timespan"
)

// AccountTransactions is the list container behind the merchant account ledger screen
type AccountTransactions struct {
	*collection.Collection[*account.Transaction]
	client *Client
}

// NewAccountTransactions creates the list container for the account ledger screen
func NewAccountTransactions(client *Client) *AccountTransactions {
	container := &AccountTransactions{client: client}
	container.Collection = collection.New(
		paging.NewQuery(10, "createdAt", paging.OrderDescending),
		container.fetch,
		func(row *account.Transaction) string { return row.ID.String() },
	)
	return container
}

func (container *AccountTransactions) fetch(ctx context.Context, query paging.Query) ([]*account.Transaction, uint64, error) {
	values := query.Values()
	for name, value := range query.Filters {
		values.Set(name, value)
	}
	if query.Search != "" {
		values.Set("q", query.Search)
	}

	raw, total, err := container.client.List(ctx, "/v1/account_transactions", values)
	if err != nil {
		return nil, 0, err
	}
	var rows []*account.Transaction
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// SetMerchant filters the ledger by merchant ID; an empty value removes the filter
func (container *AccountTransactions) SetMerchant(ctx context.Context, merchantID string) {
	container.SetFilter(ctx, "merchantId", merchantID)
}

// SetKind filters the ledger by entry direction (credit or debit); an empty value removes the filter
func (container *AccountTransactions) SetKind(ctx context.Context, kind string) {
	container.SetFilter(ctx, "kind", kind)
}

// SetDateRange filters the ledger by creation date, widened to whole UTC days
func (container *AccountTransactions) SetDateRange(ctx context.Context, start, end time.Time) {
	from, to := timespan.DayBounds(start, end)
	container.SetFilters(ctx, map[string]string{
		"start": from.Format(timespan.RFC3339Milli),
		"end":   to.Format(timespan.RFC3339Milli),
	})
}

// Columns declares the table columns of the account ledger screen
func (container *AccountTransactions) Columns() []paging.Column[*account.Transaction] {
	return []paging.Column[*account.Transaction]{
		{
			Key:      "reference",
			Title:    "Reference",
			Sortable: false,
			Align:    paging.AlignStart,
			Render: func(_ any, row *account.Transaction) string {
				return row.Reference
			},
		},
		{
			Key:      "kind",
			Title:    "Kind",
			Sortable: true,
			Align:    paging.AlignCenter,
			Render: func(_ any, row *account.Transaction) string {
				return StatusBadge(string(row.Kind))
			},
		},
		{
			Key:      "amount",
			Title:    "Amount",
			Sortable: true,
			Align:    paging.AlignEnd,
			Render: func(value any, row *account.Transaction) string {
				exponent, _ := value.(int)
				return FormatAmount(row.Amount, exponent)
			},
		},
		{
			Key:      "balanceAfter",
			Title:    "Balance",
			Sortable: false,
			Align:    paging.AlignEnd,
			Render: func(value any, row *account.Transaction) string {
				exponent, _ := value.(int)
				return FormatAmount(row.BalanceAfter, exponent)
			},
		},
		{
			Key:      "createdAt",
			Title:    "Created",
			Sortable: true,
			Align:    paging.AlignEnd,
			Render: func(_ any, row *account.Transaction) string {
				return FormatTimestamp(row.CreatedAt)
			},
		},
	}
}
