// Package mills manages the mill registry behind the admin API.
package mills

import (
	"context"
	"errors"
	"fmt"

	"ricemill/internal/core/apperror"
	"ricemill/internal/core/id"
	"ricemill/internal/core/mill"
	"ricemill/pkg/logger"
)

// Service wraps mill.Registry with validation and error mapping.
type Service struct {
	registry mill.Registry
}

func NewService(registry mill.Registry) *Service {
	return &Service{registry: registry}
}

// Create registers a new mill.
func (s *Service) Create(ctx context.Context, m *mill.Mill) (*mill.Mill, error) {
	m.Normalize()
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if err := s.registry.Create(ctx, m); err != nil {
		return nil, mapErr(err, m.ID)
	}
	logger.Info(ctx, "mill created", "mill_id", m.ID, "code", m.Code)
	return m, nil
}

// Get returns a mill by id.
func (s *Service) Get(ctx context.Context, millID id.ID) (*mill.Mill, error) {
	m, err := s.registry.GetByID(ctx, millID)
	if err != nil {
		return nil, mapErr(err, millID)
	}
	return m, nil
}

// List returns the mills whose ids are in visible; nil means all mills.
func (s *Service) List(ctx context.Context, visible []string) ([]*mill.Mill, error) {
	if visible == nil {
		return s.registry.List(ctx, nil)
	}
	if len(visible) == 0 {
		return []*mill.Mill{}, nil
	}
	ids, err := id.ParseAll(visible)
	if err != nil {
		return nil, fmt.Errorf("parse visible mills: %w", err)
	}
	return s.registry.List(ctx, ids)
}

// Update applies changes to name, address and gst number. Code and status are not editable here.
func (s *Service) Update(ctx context.Context, millID id.ID, apply func(m *mill.Mill)) (*mill.Mill, error) {
	m, err := s.Get(ctx, millID)
	if err != nil {
		return nil, err
	}
	code, status := m.Code, m.Status
	apply(m)
	m.ID, m.Code, m.Status = millID, code, status

	m.Normalize()
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if err := s.registry.Update(ctx, m); err != nil {
		return nil, mapErr(err, millID)
	}
	return m, nil
}

// SetStatus activates or suspends a mill.
func (s *Service) SetStatus(ctx context.Context, millID id.ID, status mill.Status) (*mill.Mill, error) {
	if !status.Valid() {
		return nil, apperror.NewFieldValidation("status", "status must be active or suspended")
	}
	if err := s.registry.UpdateStatus(ctx, millID, status); err != nil {
		return nil, mapErr(err, millID)
	}
	logger.Info(ctx, "mill status changed", "mill_id", millID, "status", status)
	return s.Get(ctx, millID)
}

func mapErr(err error, millID id.ID) error {
	switch {
	case errors.Is(err, mill.ErrMillNotFound):
		return apperror.NewNotFound("Mill", millID.String())
	case errors.Is(err, mill.ErrCodeTaken):
		return apperror.NewConflict("mill code already taken").WithDetail("field", "code")
	default:
		return err
	}
}
