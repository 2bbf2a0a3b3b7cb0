package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ricemill/internal/core/apperror"
	appctx "ricemill/internal/core/context"
	"ricemill/internal/core/id"
	"ricemill/internal/core/mill"
	"ricemill/internal/infrastructure/http/v1/middleware"
)

type fakeMillService struct {
	mills       map[id.ID]*mill.Mill
	lastVisible []string
}

func (f *fakeMillService) Create(_ context.Context, m *mill.Mill) (*mill.Mill, error) {
	m.Normalize()
	if err := m.Validate(); err != nil {
		return nil, err
	}
	m.ID = id.New()
	f.mills[m.ID] = m
	return m, nil
}

func (f *fakeMillService) List(_ context.Context, visible []string) ([]*mill.Mill, error) {
	f.lastVisible = visible
	out := []*mill.Mill{}
	for _, m := range f.mills {
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeMillService) Update(_ context.Context, millID id.ID, apply func(*mill.Mill)) (*mill.Mill, error) {
	m, ok := f.mills[millID]
	if !ok {
		return nil, apperror.NewNotFound("Mill", millID.String())
	}
	apply(m)
	return m, nil
}

func (f *fakeMillService) SetStatus(_ context.Context, millID id.ID, status mill.Status) (*mill.Mill, error) {
	m, ok := f.mills[millID]
	if !ok {
		return nil, apperror.NewNotFound("Mill", millID.String())
	}
	m.Status = status
	return m, nil
}

func millsRouter(svc MillService, user *appctx.UserContext) http.Handler {
	r := newEngine(user, testMill)
	h := NewMillsHandler(NewBaseHandler(), svc)
	param := "/:" + middleware.ParamMillID
	r.GET("/mills", h.List)
	r.POST("/mills", h.Create)
	r.GET("/mills"+param, h.Get)
	r.PUT("/mills"+param, h.Update)
	r.PATCH("/mills"+param+"/status", h.SetStatus)
	return r
}

func TestMillsHandler_ListScope(t *testing.T) {
	svc := &fakeMillService{mills: map[id.ID]*mill.Mill{testMill.ID: testMill}}

	w := do(t, millsRouter(svc, adminUser), http.MethodGet, "/mills", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, svc.lastVisible)

	staff := &appctx.UserContext{UserID: id.New().String(), Role: appctx.RoleStaff, MillIDs: []string{testMill.ID.String()}}
	w = do(t, millsRouter(svc, staff), http.MethodGet, "/mills", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{testMill.ID.String()}, svc.lastVisible)
}

func TestMillsHandler_Get(t *testing.T) {
	svc := &fakeMillService{mills: map[id.ID]*mill.Mill{}}

	w := do(t, millsRouter(svc, adminUser), http.MethodGet, "/mills/"+testMill.ID.String(), nil)

	require.Equal(t, http.StatusOK, w.Code)
	var got mill.Mill
	require.NoError(t, json.Unmarshal(decodeOK(t, w).Data, &got))
	assert.Equal(t, testMill.Code, got.Code)
}

func TestMillsHandler_Create(t *testing.T) {
	svc := &fakeMillService{mills: map[id.ID]*mill.Mill{}}
	r := millsRouter(svc, adminUser)

	w := do(t, r, http.MethodPost, "/mills", map[string]string{"code": "Sri-Lakshmi", "name": "Sri Lakshmi"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var got mill.Mill
	require.NoError(t, json.Unmarshal(decodeOK(t, w).Data, &got))
	assert.Equal(t, "sri-lakshmi", got.Code)
	assert.Equal(t, mill.StatusActive, got.Status)

	w = do(t, r, http.MethodPost, "/mills", map[string]string{"code": "  ", "name": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMillsHandler_UpdateAndStatus(t *testing.T) {
	m := &mill.Mill{ID: id.New(), Code: "east", Name: "East", Status: mill.StatusActive}
	svc := &fakeMillService{mills: map[id.ID]*mill.Mill{m.ID: m}}
	r := millsRouter(svc, adminUser)

	w := do(t, r, http.MethodPut, "/mills/"+m.ID.String(), map[string]string{"address": "Ring Road"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Ring Road", m.Address)
	assert.Equal(t, "East", m.Name)

	w = do(t, r, http.MethodPatch, "/mills/"+m.ID.String()+"/status", map[string]string{"status": "suspended"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, mill.StatusSuspended, m.Status)

	w = do(t, r, http.MethodPatch, "/mills/"+m.ID.String()+"/status", map[string]string{"status": "closed"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPut, "/mills/bad-id", map[string]string{"name": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
