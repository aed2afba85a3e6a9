package account

import (
	"time"

	"github.com/google/uuid"
)

// Kind represents the direction of an account transaction
type Kind string

const (
	// KindCredit increases the merchant's account balance
	KindCredit Kind = "credit"
	// KindDebit decreases the merchant's account balance
	KindDebit Kind = "debit"
)

// Transaction represents a single entry on a merchant's account ledger.
// Amounts are stored in the currency's minor unit; BalanceAfter is the
// account balance right after this entry was applied.
type Transaction struct {
	ID           uuid.UUID `json:"id"`
	MerchantID   uuid.UUID `json:"merchant_id"`
	CurrencyID   uuid.UUID `json:"currency_id"`
	Kind         Kind      `json:"kind"`
	Amount       int64     `json:"amount"`
	BalanceAfter int64     `json:"balance_after"`
	Reference    string    `json:"reference"`
	CreatedAt    time.Time `json:"created_at"`
}
