// Package domain provides the generic entry contracts shared by every module.
package domain

import (
	"context"

	"ricemill/internal/core/entity"
	"ricemill/internal/core/id"
	"ricemill/internal/core/types"
)

// --- Filter & Pagination ---

// ListFilter is a validated list request scoped to one mill.
// Build it with Descriptor.BuildFilter.
type ListFilter struct {
	MillID id.ID

	// Search is matched with ILIKE against SearchColumns (OR-ed).
	Search        string
	SearchColumns []string

	// Fields maps column -> value, matched with ILIKE (AND-ed).
	Fields map[string]string

	DateRange types.DateRange

	SortColumn string
	SortDesc   bool

	Page  int
	Limit int
}

// Offset returns the row offset of the requested page.
func (f ListFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// ListResult contains one page of results.
type ListResult[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

// TotalPages returns the number of pages for Total at Limit.
func (r ListResult[T]) TotalPages() int {
	if r.Limit <= 0 || r.Total == 0 {
		return 0
	}
	return int((r.Total + int64(r.Limit) - 1) / int64(r.Limit))
}

// --- Repository Interfaces ---

// EntryRepository defines storage operations for mill entries.
// Every method is scoped by mill id; rows of other mills are invisible.
type EntryRepository[T entity.Entry] interface {
	// Create inserts a new entry
	Create(ctx context.Context, entry T) error

	// GetByID retrieves an entry with its creator joined
	GetByID(ctx context.Context, millID, entryID id.ID) (T, error)

	// GetForUpdate retrieves and row-locks an entry inside a transaction
	GetForUpdate(ctx context.Context, millID, entryID id.ID) (T, error)

	// Update overwrites the stored entry
	Update(ctx context.Context, entry T) error

	// Delete removes an entry; apperror NotFound when nothing matched
	Delete(ctx context.Context, millID, entryID id.ID) error

	// BulkDelete removes the matching entries and returns the ids actually deleted
	BulkDelete(ctx context.Context, millID id.ID, ids []id.ID) ([]id.ID, error)

	// List retrieves one page with filtering and sorting
	List(ctx context.Context, filter ListFilter) (ListResult[T], error)

	// Summary aggregates the descriptor's summary fields over a date range
	Summary(ctx context.Context, millID id.ID, rng types.DateRange) (Summary, error)
}

// --- Hooks ---

// HookEvent represents lifecycle event type.
type HookEvent string

const (
	BeforeCreate HookEvent = "before_create"
	AfterCreate  HookEvent = "after_create"
	BeforeUpdate HookEvent = "before_update"
	AfterUpdate  HookEvent = "after_update"
	BeforeDelete HookEvent = "before_delete"
	AfterDelete  HookEvent = "after_delete"
)

// Hook is a function that runs at specific lifecycle points.
type Hook[T any] func(ctx context.Context, entity T) error

// HookRegistry stores lifecycle hooks for an entity type.
type HookRegistry[T any] struct {
	hooks map[HookEvent][]Hook[T]
}

// NewHookRegistry creates an empty hook registry.
func NewHookRegistry[T any]() *HookRegistry[T] {
	return &HookRegistry[T]{
		hooks: make(map[HookEvent][]Hook[T]),
	}
}

// On registers a hook for the specified event.
func (r *HookRegistry[T]) On(event HookEvent, hook Hook[T]) {
	r.hooks[event] = append(r.hooks[event], hook)
}

// Run executes all hooks for the specified event, stopping at the first error.
func (r *HookRegistry[T]) Run(ctx context.Context, event HookEvent, entity T) error {
	for _, hook := range r.hooks[event] {
		if err := hook(ctx, entity); err != nil {
			return err
		}
	}
	return nil
}

// OnBeforeCreate registers a hook to run before create.
func (r *HookRegistry[T]) OnBeforeCreate(hook Hook[T]) {
	r.On(BeforeCreate, hook)
}

// OnAfterCreate registers a hook to run after create.
func (r *HookRegistry[T]) OnAfterCreate(hook Hook[T]) {
	r.On(AfterCreate, hook)
}

// OnBeforeUpdate registers a hook to run before update.
func (r *HookRegistry[T]) OnBeforeUpdate(hook Hook[T]) {
	r.On(BeforeUpdate, hook)
}

// OnAfterUpdate registers a hook to run after update.
func (r *HookRegistry[T]) OnAfterUpdate(hook Hook[T]) {
	r.On(AfterUpdate, hook)
}

// OnBeforeDelete registers a hook to run before delete.
func (r *HookRegistry[T]) OnBeforeDelete(hook Hook[T]) {
	r.On(BeforeDelete, hook)
}

// OnAfterDelete registers a hook to run after delete.
func (r *HookRegistry[T]) OnAfterDelete(hook Hook[T]) {
	r.On(AfterDelete, hook)
}
