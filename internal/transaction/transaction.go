package transaction

import (
	"time"

	"github.com/google/uuid"
)

// Kind represents the kind of a transaction
type Kind string

const (
	// KindPayment is an incoming customer payment
	KindPayment Kind = "payment"
	// KindWithdrawal is a payout to a merchant
	KindWithdrawal Kind = "withdrawal"
	// KindRefund is a payment returned to a customer
	KindRefund Kind = "refund"
)

// Status represents the processing status of a transaction
type Status string

const (
	// StatusPending marks a transaction awaiting processing
	StatusPending Status = "pending"
	// StatusCompleted marks a successfully processed transaction
	StatusCompleted Status = "completed"
	// StatusFailed marks a transaction that could not be processed
	StatusFailed Status = "failed"
	// StatusCancelled marks a transaction cancelled before processing
	StatusCancelled Status = "cancelled"
)

// Transaction represents a single payment, withdrawal or refund.
// Amounts are stored in the currency's minor unit.
type Transaction struct {
	ID         uuid.UUID `json:"id"`
	Kind       Kind      `json:"kind"`
	MerchantID uuid.UUID `json:"merchant_id"`
	MethodID   uuid.UUID `json:"method_id"`
	CurrencyID uuid.UUID `json:"currency_id"`
	Amount     int64     `json:"amount"`
	Reference  string    `json:"reference"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}
