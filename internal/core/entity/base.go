// Package entity provides the building blocks shared by all stored records.
package entity

import (
	"context"
	"time"

	"ricemill/internal/core/id"
)

// Validatable is implemented by entities that support self-validation.
// Validation checks internal invariants (without database access).
type Validatable interface {
	// Validate returns nil if valid, AppError with details otherwise.
	Validate(ctx context.Context) error
}

// Entry is a daily operational record owned by a mill.
type Entry interface {
	Validatable
	Base() *BaseEntry
}

// UserRef is the user joined onto a record for display.
type UserRef struct {
	ID    *id.ID  `db:"id" json:"id"`
	Name  *string `db:"name" json:"name"`
	Email *string `db:"email" json:"email"`
}

// BaseEntry contains the fields every mill entry carries.
// Every entry belongs to exactly one mill and one calendar date.
type BaseEntry struct {
	ID     id.ID `db:"id" json:"id"`
	MillID id.ID `db:"mill_id" json:"millId"`

	// Date is the business date, distinct from CreatedAt.
	Date time.Time `db:"date" json:"date"`

	CreatedBy *id.ID    `db:"created_by" json:"createdBy"`
	UpdatedBy *id.ID    `db:"updated_by" json:"updatedBy"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`

	// CreatedByUser is filled by list and get queries (LEFT JOIN users).
	// Untagged so it is never written; scanned from "created_by_user.*" columns.
	CreatedByUser UserRef `json:"createdByUser"`
}

// Base exposes the embedded fields through the Entry interface.
func (b *BaseEntry) Base() *BaseEntry {
	return b
}

// Init assigns identity, owner mill and timestamps to a new entry.
func (b *BaseEntry) Init(millID id.ID) {
	now := time.Now().UTC()
	if id.IsNil(b.ID) {
		b.ID = id.New()
	}
	b.MillID = millID
	b.CreatedAt = now
	b.UpdatedAt = now
}

// Touch updates the UpdatedAt timestamp.
func (b *BaseEntry) Touch() {
	b.UpdatedAt = time.Now().UTC()
}
