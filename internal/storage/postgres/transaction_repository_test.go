package postgres

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/cobaltpay/backoffice/internal/transaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTransactionWhere(t *testing.T, filter *transaction.Filter) (string, []interface{}) {
	t.Helper()

	query := squirrel.Select("transaction_id").From("transactions")
	for _, cond := range transactionConds(filter) {
		query = query.Where(cond)
	}
	sql, vals, err := query.PlaceholderFormat(squirrel.Dollar).ToSql()
	require.NoError(t, err)
	return sql, vals
}

func TestTransactionCondsSearchMatchesExactOrFragment(t *testing.T) {
	term := "2024"
	sql, vals := buildTransactionWhere(t, &transaction.Filter{
		Reference: &term,
		Search:    &term,
	})

	assert.Contains(t, sql, "(reference = $1 OR reference ILIKE $2)")
	assert.Equal(t, []interface{}{"2024", "%2024%"}, vals)
}

func TestTransactionCondsSingleSearchParameter(t *testing.T) {
	term := "tx-2024-0001"

	sql, vals := buildTransactionWhere(t, &transaction.Filter{Reference: &term})
	assert.Contains(t, sql, "reference = $1")
	assert.NotContains(t, sql, "ILIKE")
	assert.Equal(t, []interface{}{"tx-2024-0001"}, vals)

	sql, vals = buildTransactionWhere(t, &transaction.Filter{Search: &term})
	assert.Contains(t, sql, "reference ILIKE $1")
	assert.Equal(t, []interface{}{"%tx-2024-0001%"}, vals)
}

func TestTransactionCondsCombineFiltersWithAnd(t *testing.T) {
	kind := transaction.KindPayment
	status := transaction.StatusPending
	sql, _ := buildTransactionWhere(t, &transaction.Filter{
		Kind:   &kind,
		Status: &status,
	})

	assert.Contains(t, sql, "kind = $1 AND status = $2")
}
