package accesslog

import (
	"time"

	"github.com/google/uuid"
)

// Log represents a single recorded access to the back office API
type Log struct {
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"user_id"`
	Method    string    `json:"method"`
	Path      string    `json:"path"`
	Status    int       `json:"status"`
	IP        string    `json:"ip"`
	CreatedAt time.Time `json:"created_at"`
}
