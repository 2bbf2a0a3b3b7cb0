package audit

import (
	"context"
	"encoding/json"
	"time"

	"ricemill/internal/core/id"
)

// Action is the type of an audited change.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Record is one row of the change log.
type Record struct {
	ID         id.ID           `json:"id"`
	MillID     id.ID           `json:"millId"`
	EntityType string          `json:"entityType"`
	EntityID   id.ID           `json:"entityId"`
	Action     Action          `json:"action"`
	UserID     string          `json:"userId"`
	Changes    json.RawMessage `json:"changes"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// Filter selects change log rows of one mill.
type Filter struct {
	MillID     id.ID
	EntityType string
	EntityID   *id.ID
	Limit      int
}

// Logger writes and reads the change log.
type Logger interface {
	Log(ctx context.Context, rec Record) error
	History(ctx context.Context, filter Filter) ([]Record, error)
}

// Snapshot marshals before/after states into the change payload.
// Either side may be nil (create has no before, delete has no after).
func Snapshot(before, after any) (json.RawMessage, error) {
	return json.Marshal(map[string]any{"before": before, "after": after})
}
