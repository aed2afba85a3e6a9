package refdata

import (
	"github.com/google/uuid"
)

// Bank represents a bank merchants and customers settle through
type Bank struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Code string    `json:"code"`
}

// Currency represents a currency transactions are denominated in.
// Exponent is the amount of minor unit digits (2 for EUR, 0 for JPY).
type Currency struct {
	ID       uuid.UUID `json:"id"`
	Code     string    `json:"code"`
	Exponent int       `json:"exponent"`
}

// Method represents a payment or settlement method.
// MinSettlementAmount is the smallest amount (in the currency's minor unit)
// a commission settlement through this method may be created for.
type Method struct {
	ID                  uuid.UUID `json:"id"`
	Name                string    `json:"name"`
	CurrencyID          uuid.UUID `json:"currency_id"`
	MinSettlementAmount int64     `json:"min_settlement_amount"`
}
