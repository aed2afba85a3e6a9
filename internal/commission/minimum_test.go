package commission

import (
	"testing"

	"github.com/cobaltpay/backoffice/internal/refdata"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckMinimum(t *testing.T) {
	eur := uuid.New()
	usd := uuid.New()

	// Unsettled EUR logs totaling 40.00
	logs := []*Log{
		{ID: uuid.New(), CurrencyID: eur, Amount: 1500},
		{ID: uuid.New(), CurrencyID: eur, Amount: 2500},
		// Settled and foreign-currency logs never count towards the total
		{ID: uuid.New(), CurrencyID: eur, Amount: 10000, Settled: true},
		{ID: uuid.New(), CurrencyID: usd, Amount: 9900},
	}

	method := &refdata.Method{ID: uuid.New(), Name: "SEPA", CurrencyID: eur, MinSettlementAmount: 5000}

	// 40.00 against a minimum of 50.00 is blocked
	_, err := CheckMinimum(logs, method, eur)
	var belowMin *BelowMinimumError
	require.ErrorAs(t, err, &belowMin)
	assert.Equal(t, int64(4000), belowMin.Total)
	assert.Equal(t, int64(5000), belowMin.Minimum)

	// 60.00 against a minimum of 50.00 is allowed
	logs = append(logs, &Log{ID: uuid.New(), CurrencyID: eur, Amount: 2000})
	total, err := CheckMinimum(logs, method, eur)
	require.NoError(t, err)
	assert.Equal(t, int64(6000), total)
}

func TestCheckMinimumExactly(t *testing.T) {
	eur := uuid.New()
	method := &refdata.Method{CurrencyID: eur, MinSettlementAmount: 5000}

	total, err := CheckMinimum([]*Log{{CurrencyID: eur, Amount: 5000}}, method, eur)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), total)
}

func TestCheckMinimumCurrencyMismatch(t *testing.T) {
	eur := uuid.New()
	usd := uuid.New()
	method := &refdata.Method{CurrencyID: usd, MinSettlementAmount: 0}

	_, err := CheckMinimum(nil, method, eur)
	assert.ErrorIs(t, err, ErrCurrencyMismatch)
}
