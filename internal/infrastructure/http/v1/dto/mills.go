package dto

import (
	"ricemill/internal/core/mill"
)

// CreateMillRequest registers a mill.
type CreateMillRequest struct {
	Code      string `json:"code" binding:"required,notblank,max=50"`
	Name      string `json:"name" binding:"required,notblank,max=200"`
	Address   string `json:"address" binding:"max=500"`
	GSTNumber string `json:"gstNumber" binding:"max=20"`
}

// ToMill converts to the registry model.
func (r *CreateMillRequest) ToMill() *mill.Mill {
	return &mill.Mill{
		Code:      r.Code,
		Name:      r.Name,
		Address:   r.Address,
		GSTNumber: r.GSTNumber,
		Status:    mill.StatusActive,
	}
}

// UpdateMillRequest changes descriptive mill fields.
type UpdateMillRequest struct {
	Name      *string `json:"name" binding:"omitempty,notblank,max=200"`
	Address   *string `json:"address" binding:"omitempty,max=500"`
	GSTNumber *string `json:"gstNumber" binding:"omitempty,max=20"`
}

// ApplyTo copies present fields into m.
func (r *UpdateMillRequest) ApplyTo(m *mill.Mill) {
	applyString(&m.Name, r.Name)
	applyString(&m.Address, r.Address)
	applyString(&m.GSTNumber, r.GSTNumber)
}

// MillStatusRequest activates or suspends a mill.
type MillStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active suspended"`
}
