// Package mill provides the tenant model: every entry is scoped to one mill.
package mill

import (
	"regexp"
	"strings"
	"time"

	"ricemill/internal/core/apperror"
	"ricemill/internal/core/id"
)

// Status represents mill lifecycle state.
type Status string

const (
	// StatusActive - mill accepts requests
	StatusActive Status = "active"

	// StatusSuspended - mill is read-protected until reactivated
	StatusSuspended Status = "suspended"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusSuspended
}

// Mill is a rice-milling business using the system.
type Mill struct {
	ID        id.ID     `db:"id" json:"id"`
	Code      string    `db:"code" json:"code"`
	Name      string    `db:"name" json:"name"`
	Address   string    `db:"address" json:"address"`
	GSTNumber string    `db:"gst_number" json:"gstNumber"`
	Status    Status    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// IsActive returns true if mill can accept requests.
func (m *Mill) IsActive() bool {
	return m.Status == StatusActive
}

var codePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{1,31}$`)

// Normalize trims input and lower-cases the code.
func (m *Mill) Normalize() {
	m.Code = strings.ToLower(strings.TrimSpace(m.Code))
	m.Name = strings.TrimSpace(m.Name)
	m.Address = strings.TrimSpace(m.Address)
	m.GSTNumber = strings.ToUpper(strings.TrimSpace(m.GSTNumber))
	if m.Status == "" {
		m.Status = StatusActive
	}
}

// Validate checks mill invariants.
func (m *Mill) Validate() error {
	if !codePattern.MatchString(m.Code) {
		return apperror.NewFieldValidation("code", "code must be 2-32 lowercase letters, digits or dashes")
	}
	if m.Name == "" {
		return apperror.NewFieldValidation("name", "name is required")
	}
	if len(m.GSTNumber) > 15 {
		return apperror.NewFieldValidation("gstNumber", "gstNumber must be at most 15 characters")
	}
	if !m.Status.Valid() {
		return apperror.NewFieldValidation("status", "status must be active or suspended")
	}
	return nil
}
