package merchant

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle status of a merchant
type Status string

const (
	// StatusActive marks a merchant that may process transactions
	StatusActive Status = "active"
	// StatusSuspended marks a merchant that is blocked from processing
	StatusSuspended Status = "suspended"
)

// Merchant represents a merchant registered to the payment platform
type Merchant struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
