package backoffice

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cobaltpay/backoffice/internal/collection"
	"github.com/cobaltpay/backoffice/internal/paging"
	"github.com/cobaltpay/backoffice/internal/timespan"
	"github.com/cobaltpay/backoffice/internal/transaction"
)

// Transactions is the list container behind the payment, withdrawal and refund
// screens. The search box fills both the exact 'reference' parameter and the
// substring 'q' parameter, so an agent can paste a full reference or a fragment.
type Transactions struct {
	*collection.Collection[*transaction.Transaction]
	client *Client
	kind   transaction.Kind
}

// NewPayments creates the list container for the payments screen
func NewPayments(client *Client) *Transactions {
	return newTransactions(client, transaction.KindPayment)
}

// NewWithdrawals creates the list container for the withdrawals screen
func NewWithdrawals(client *Client) *Transactions {
	return newTransactions(client, transaction.KindWithdrawal)
}

// NewRefunds creates the list container for the refunds screen
func NewRefunds(client *Client) *Transactions {
	return newTransactions(client, transaction.KindRefund)
}

func newTransactions(client *Client, kind transaction.Kind) *Transactions {
	container := &Transactions{
		client: client,
		kind:   kind,
	}
	container.Collection = collection.New(
		paging.NewQuery(10, "createdAt", paging.OrderDescending),
		container.fetch,
		func(row *transaction.Transaction) string { return row.ID.String() },
	)
	return container
}

func (container *Transactions) fetch(ctx context.Context, query paging.Query) ([]*transaction.Transaction, uint64, error) {
	values := query.Values()
	values.Set("kind", string(container.kind))
	for name, value := range query.Filters {
		values.Set(name, value)
	}
	if query.Search != "" {
		values.Set("reference", query.Search)
		values.Set("q", query.Search)
	}

	raw, total, err := container.client.List(ctx, "/v1/transactions", values)
	if err != nil {
		return nil, 0, err
	}
	var rows []*transaction.Transaction
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// SetStatus filters the list by transaction status; an empty value removes the filter
func (container *Transactions) SetStatus(ctx context.Context, status string) {
	container.SetFilter(ctx, "status", status)
}

// SetMerchant filters the list by merchant ID; an empty value removes the filter
func (container *Transactions) SetMerchant(ctx context.Context, merchantID string) {
	container.SetFilter(ctx, "merchantId", merchantID)
}

// SetDateRange filters the list by creation date. The bounds are widened to
// whole UTC days: start becomes 00:00:00.000, end becomes 23:59:59.999.
func (container *Transactions) SetDateRange(ctx context.Context, start, end time.Time) {
	from, to := timespan.DayBounds(start, end)
	container.SetFilters(ctx, map[string]string{
		"start": from.Format(timespan.RFC3339Milli),
		"end":   to.Format(timespan.RFC3339Milli),
	})
}

// ClearDateRange removes the creation date filter
func (container *Transactions) ClearDateRange(ctx context.Context) {
	container.SetFilters(ctx, map[string]string{
		"start": "",
		"end":   "",
	})
}

// Columns declares the table columns of the transaction screens
func (container *Transactions) Columns() []paging.Column[*transaction.Transaction] {
	return []paging.Column[*transaction.Transaction]{
		{
			Key:      "reference",
			Title:    "Reference",
			Sortable: false,
			Align:    paging.AlignStart,
			Render: func(_ any, row *transaction.Transaction) string {
				return row.Reference
			},
		},
		{
			Key:      "merchant",
			Title:    "Merchant",
			Sortable: false,
			Align:    paging.AlignStart,
			Render: func(_ any, row *transaction.Transaction) string {
				return MaskIdentifier(row.MerchantID.String())
			},
		},
		{
			Key:      "amount",
			Title:    "Amount",
			Sortable: true,
			Align:    paging.AlignEnd,
			Render: func(value any, row *transaction.Transaction) string {
				exponent, _ := value.(int)
				return FormatAmount(row.Amount, exponent)
			},
		},
		{
			Key:      "status",
			Title:    "Status",
			Sortable: true,
			Align:    paging.AlignCenter,
			Render: func(_ any, row *transaction.Transaction) string {
				return StatusBadge(string(row.Status))
			},
		},
		{
			Key:      "createdAt",
			Title:    "Created",
			Sortable: true,
			Align:    paging.AlignEnd,
			Render: func(_ any, row *transaction.Transaction) string {
				return FormatTimestamp(row.CreatedAt)
			},
		},
	}
}
