package commission

import (
	"context"
	"time"

	"github.com/cobaltpay/backoffice/internal/paging"
	"github.com/google/uuid"
)

// Repository defines the commission repository API
type Repository interface {
	// Logs retrieves multiple commission logs following a filter
	Logs(ctx context.Context, filter *LogFilter, page paging.Request) ([]*Log, uint64, error)

	// UnsettledLogs retrieves all unsettled commission logs of an agent in a specific currency
	UnsettledLogs(ctx context.Context, agentID, currencyID uuid.UUID) ([]*Log, error)

	// UnsettledTotals sums the unsettled commission log amounts, grouped by agent and currency
	UnsettledTotals(ctx context.Context) (map[uuid.UUID][]CurrencyTotal, error)

	// Settlements retrieves multiple settlements following a filter
	Settlements(ctx context.Context, filter *SettlementFilter, page paging.Request) ([]*Settlement, uint64, error)

	// GetSettlementByID retrieves a settlement by its ID
	GetSettlementByID(ctx context.Context, id uuid.UUID) (*Settlement, error)

	// CreateSettlement creates a new settlement covering the given commission logs
	// and marks them settled. Creation and marking happen in a single transaction.
	CreateSettlement(ctx context.Context, create *SettlementCreate) (*Settlement, error)

	// UpdateSettlementStatus updates the payout status of an existing settlement
	UpdateSettlementStatus(ctx context.Context, id uuid.UUID, status SettlementStatus) (*Settlement, error)
}

// LogFilter is used to query commission logs based on a filter.
// All set fields are combined with logical AND.
type LogFilter struct {
	AgentID       *uuid.UUID
	CurrencyID    *uuid.UUID
	Settled       *bool
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

// SettlementFilter is used to query settlements based on a filter.
// All set fields are combined with logical AND.
type SettlementFilter struct {
	AgentID       *uuid.UUID
	CurrencyID    *uuid.UUID
	Status        *SettlementStatus
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

// SettlementCreate is used to create a new settlement
type SettlementCreate struct {
	AgentID    uuid.UUID
	MethodID   uuid.UUID
	CurrencyID uuid.UUID
	Amount     int64
	LogIDs     []uuid.UUID
}
