package commission

import (
	"time"

	"github.com/google/uuid"
)

// Log represents a single earned commission, tied to the transaction it was earned on.
// Amounts are stored in the currency's minor unit.
type Log struct {
	ID            uuid.UUID `json:"id"`
	AgentID       uuid.UUID `json:"agent_id"`
	TransactionID uuid.UUID `json:"transaction_id"`
	CurrencyID    uuid.UUID `json:"currency_id"`
	Amount        int64     `json:"amount"`
	Settled       bool      `json:"settled"`
	CreatedAt     time.Time `json:"created_at"`
}

// SettlementStatus represents the payout status of a settlement
type SettlementStatus string

const (
	// SettlementStatusPending marks a settlement awaiting payout
	SettlementStatusPending SettlementStatus = "pending"
	// SettlementStatusPaid marks a settlement that has been paid out
	SettlementStatusPaid SettlementStatus = "paid"
	// SettlementStatusRejected marks a settlement that was rejected
	SettlementStatusRejected SettlementStatus = "rejected"
)

// Settlement represents a payout of accumulated commission logs to an agent
type Settlement struct {
	ID         uuid.UUID        `json:"id"`
	AgentID    uuid.UUID        `json:"agent_id"`
	MethodID   uuid.UUID        `json:"method_id"`
	CurrencyID uuid.UUID        `json:"currency_id"`
	Amount     int64            `json:"amount"`
	Status     SettlementStatus `json:"status"`
	CreatedAt  time.Time        `json:"created_at"`
}

// CurrencyTotal represents the summed unsettled commission amount of one currency
type CurrencyTotal struct {
	CurrencyID uuid.UUID `json:"currency_id"`
	Amount     int64     `json:"amount"`
}
