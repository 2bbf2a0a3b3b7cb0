package mills

import (
	"context"
	"net/http"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ricemill/internal/core/apperror"
	"ricemill/internal/core/id"
	"ricemill/internal/core/mill"
)

type memRegistry struct {
	mills []*mill.Mill
}

func (r *memRegistry) find(millID id.ID) *mill.Mill {
	for _, m := range r.mills {
		if m.ID == millID {
			return m
		}
	}
	return nil
}

func (r *memRegistry) GetByID(_ context.Context, millID id.ID) (*mill.Mill, error) {
	m := r.find(millID)
	if m == nil {
		return nil, mill.ErrMillNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *memRegistry) List(_ context.Context, ids []id.ID) ([]*mill.Mill, error) {
	out := []*mill.Mill{}
	for _, m := range r.mills {
		if ids == nil || slices.Contains(ids, m.ID) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memRegistry) ListActive(ctx context.Context) ([]*mill.Mill, error) {
	return r.List(ctx, nil)
}

func (r *memRegistry) Create(_ context.Context, m *mill.Mill) error {
	for _, existing := range r.mills {
		if existing.Code == m.Code {
			return mill.ErrCodeTaken
		}
	}
	if id.IsNil(m.ID) {
		m.ID = id.New()
	}
	cp := *m
	r.mills = append(r.mills, &cp)
	return nil
}

func (r *memRegistry) Update(_ context.Context, m *mill.Mill) error {
	existing := r.find(m.ID)
	if existing == nil {
		return mill.ErrMillNotFound
	}
	*existing = *m
	return nil
}

func (r *memRegistry) UpdateStatus(_ context.Context, millID id.ID, status mill.Status) error {
	existing := r.find(millID)
	if existing == nil {
		return mill.ErrMillNotFound
	}
	existing.Status = status
	return nil
}

func TestService_CreateAndList(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&memRegistry{})

	a, err := svc.Create(ctx, &mill.Mill{Code: " Anand ", Name: "Anand Rice Mill", GSTNumber: "22aaaaa0000a1z5"})
	require.NoError(t, err)
	assert.Equal(t, "anand", a.Code)
	assert.Equal(t, "22AAAAA0000A1Z5", a.GSTNumber)
	assert.Equal(t, mill.StatusActive, a.Status)

	_, err = svc.Create(ctx, &mill.Mill{Code: "anand", Name: "Other"})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperror.GetHTTPStatus(err))

	b, err := svc.Create(ctx, &mill.Mill{Code: "balaji", Name: "Balaji"})
	require.NoError(t, err)

	all, err := svc.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	scoped, err := svc.List(ctx, []string{b.ID.String()})
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "balaji", scoped[0].Code)

	none, err := svc.List(ctx, []string{})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestService_CreateValidation(t *testing.T) {
	svc := NewService(&memRegistry{})
	_, err := svc.Create(context.Background(), &mill.Mill{Code: "x", Name: "X"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperror.GetHTTPStatus(err))
}

func TestService_UpdateKeepsCodeAndStatus(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&memRegistry{})
	m, err := svc.Create(ctx, &mill.Mill{Code: "anand", Name: "Anand"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, m.ID, func(m *mill.Mill) {
		m.Name = "Anand Agro"
		m.Code = "hijack"
		m.Status = mill.StatusSuspended
	})
	require.NoError(t, err)
	assert.Equal(t, "Anand Agro", updated.Name)
	assert.Equal(t, "anand", updated.Code)
	assert.Equal(t, mill.StatusActive, updated.Status)

	_, err = svc.Update(ctx, id.New(), func(*mill.Mill) {})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.GetHTTPStatus(err))
	assert.Equal(t, "Mill not found", err.(*apperror.AppError).Message)
}

func TestService_SetStatus(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&memRegistry{})
	m, err := svc.Create(ctx, &mill.Mill{Code: "anand", Name: "Anand"})
	require.NoError(t, err)

	got, err := svc.SetStatus(ctx, m.ID, mill.StatusSuspended)
	require.NoError(t, err)
	assert.False(t, got.IsActive())

	_, err = svc.SetStatus(ctx, m.ID, "closed")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperror.GetHTTPStatus(err))
}
