package commission

import (
	"errors"
	"fmt"

	"github.com/cobaltpay/backoffice/internal/refdata"
	"github.com/google/uuid"
)

// ErrCurrencyMismatch occurs when a settlement method's currency does not match the requested one
var ErrCurrencyMismatch = errors.New("the settlement method settles a different currency")

// ErrLogsAlreadySettled occurs when a settlement tries to cover a commission log that is already settled
var ErrLogsAlreadySettled = errors.New("at least one commission log is already settled")

// BelowMinimumError occurs when the unsettled commission total does not reach the method's minimum settlement amount
type BelowMinimumError struct {
	Total   int64
	Minimum int64
}

func (err *BelowMinimumError) Error() string {
	return fmt.Sprintf("the unsettled commission total (%d) is below the method's minimum settlement amount (%d)", err.Total, err.Minimum)
}

// UnsettledTotal sums the amounts of all unsettled logs denominated in the given currency
func UnsettledTotal(logs []*Log, currencyID uuid.UUID) int64 {
	var total int64
	for _, log := range logs {
		if !log.Settled && log.CurrencyID == currencyID {
			total += log.Amount
		}
	}
	return total
}

// CheckMinimum validates that the given commission logs may be settled through the given method.
// A settlement is allowed only when the sum of the unsettled logs denominated in the
// method's currency reaches the method's minimum settlement amount.
// It returns the settleable total on success.
func CheckMinimum(logs []*Log, method *refdata.Method, currencyID uuid.UUID) (int64, error) {
	if method.CurrencyID != currencyID {
		return 0, ErrCurrencyMismatch
	}
	total := UnsettledTotal(logs, currencyID)
	if total < method.MinSettlementAmount {
		return 0, &BelowMinimumError{Total: total, Minimum: method.MinSettlementAmount}
	}
	return total, nil
}
