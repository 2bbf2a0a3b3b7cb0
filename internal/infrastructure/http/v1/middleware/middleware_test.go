package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ricemill/internal/core/apperror"
	appctx "ricemill/internal/core/context"
	"ricemill/internal/core/id"
	"ricemill/internal/core/idempotency"
	"ricemill/internal/core/mill"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubValidator map[string]*appctx.UserContext

func (v stubValidator) ValidateToken(token string) (*appctx.UserContext, error) {
	if u, ok := v[token]; ok {
		return u, nil
	}
	return nil, errors.New("bad token")
}

type stubMills map[id.ID]*mill.Mill

func (s stubMills) GetByID(_ context.Context, millID id.ID) (*mill.Mill, error) {
	if m, ok := s[millID]; ok {
		return m, nil
	}
	return nil, mill.ErrMillNotFound
}

func serve(r http.Handler, method, path, token, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	assert.False(t, resp.Success)
	assert.Equal(t, w.Code, resp.StatusCode)
	return resp.Code
}

var (
	active    = &mill.Mill{ID: id.New(), Code: "active", Status: mill.StatusActive}
	suspended = &mill.Mill{ID: id.New(), Code: "paused", Status: mill.StatusSuspended}
	admin     = &appctx.UserContext{UserID: id.New().String(), Role: appctx.RoleAdmin}
	staff     = &appctx.UserContext{UserID: id.New().String(), Role: appctx.RoleStaff, MillIDs: []string{active.ID.String()}}
)

func protectedRouter() *gin.Engine {
	r := gin.New()
	r.Use(ErrorHandler())
	g := r.Group("", Auth(stubValidator{"admin": admin, "staff": staff}), UserContext())

	ok := func(c *gin.Context) {
		name := ""
		if m := MillFrom(c); m != nil {
			name = m.Code
		}
		c.String(http.StatusOK, name)
	}
	g.GET("/admin-only", RequireAdmin(), ok)
	g.GET("/mills/:"+ParamMillID+"/x", MillScope(stubMills{active.ID: active, suspended.ID: suspended}, nil), ok)
	return r
}

type stubAccess struct {
	allowed map[string]bool
	err     error
	calls   int
}

func (a *stubAccess) HasMillAccess(_ context.Context, userID, millID id.ID) (bool, error) {
	a.calls++
	return a.allowed[userID.String()+"/"+millID.String()], a.err
}

func TestAuth(t *testing.T) {
	r := protectedRouter()

	w := serve(r, http.MethodGet, "/admin-only", "", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, apperror.CodeUnauthorized, errorCode(t, w))

	w = serve(r, http.MethodGet, "/admin-only", "forged", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(r, http.MethodGet, "/admin-only", "", "", map[string]string{"Authorization": "Basic abc"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	r := protectedRouter()

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/admin-only", "admin", "", nil).Code)

	w := serve(r, http.MethodGet, "/admin-only", "staff", "", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, apperror.CodeForbidden, errorCode(t, w))
}

func TestMillScope(t *testing.T) {
	r := protectedRouter()
	path := func(millID string) string { return "/mills/" + millID + "/x" }

	w := serve(r, http.MethodGet, path(active.ID.String()), "staff", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "active", w.Body.String())

	w = serve(r, http.MethodGet, path("not-a-uuid"), "staff", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperror.CodeValidation, errorCode(t, w))

	// Assignment is checked before existence so staff cannot discover mill ids.
	w = serve(r, http.MethodGet, path(id.New().String()), "staff", "", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = serve(r, http.MethodGet, path(id.New().String()), "admin", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperror.CodeNotFound, errorCode(t, w))

	w = serve(r, http.MethodGet, path(suspended.ID.String()), "admin", "", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, apperror.CodeMillInactive, errorCode(t, w))
}

func TestMillScope_StoredAccess(t *testing.T) {
	access := &stubAccess{allowed: map[string]bool{}}
	r := gin.New()
	r.Use(ErrorHandler())
	g := r.Group("", Auth(stubValidator{"staff": staff}), UserContext())
	g.GET("/mills/:"+ParamMillID+"/x", MillScope(stubMills{active.ID: active}, access), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	path := "/mills/" + active.ID.String() + "/x"

	// The token still lists the mill but the assignment was removed.
	w := serve(r, http.MethodGet, path, "staff", "", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, apperror.CodeForbidden, errorCode(t, w))

	access.allowed[staff.UserID+"/"+active.ID.String()] = true
	w = serve(r, http.MethodGet, path, "staff", "", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	access.err = errors.New("db down")
	w = serve(r, http.MethodGet, path, "staff", "", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	// Mills outside the token are rejected without a lookup.
	calls := access.calls
	w = serve(r, http.MethodGet, "/mills/"+id.New().String()+"/x", "staff", "", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, calls, access.calls)
}

func TestErrorHandler_HidesInternalCause(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(errors.New("pq: password authentication failed"))
	})
	r.GET("/wrapped", func(c *gin.Context) {
		_ = c.Error(apperror.NewInternal(errors.New("secret detail")))
	})

	for _, p := range []string{"/boom", "/wrapped"} {
		w := serve(r, http.MethodGet, p, "", "", nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, apperror.CodeInternal, errorCode(t, w))
		assert.NotContains(t, w.Body.String(), "password")
		assert.NotContains(t, w.Body.String(), "secret")
	}
}

type memStore struct {
	mu       sync.Mutex
	pending  map[string]idempotency.Request
	done     map[string]idempotency.Replay
	released []string
}

func newMemStore() *memStore {
	return &memStore{pending: map[string]idempotency.Request{}, done: map[string]idempotency.Replay{}}
}

func (s *memStore) AcquireKey(_ context.Context, req idempotency.Request) (*idempotency.Replay, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.done[req.Key]; ok {
		return &r, nil
	}
	if prev, ok := s.pending[req.Key]; ok {
		if !prev.Matches(req) {
			return nil, apperror.NewIdempotencyMismatch(req.Key)
		}
		return nil, apperror.NewIdempotencyConflict(req.Key)
	}
	s.pending[req.Key] = req
	return nil, nil
}

func (s *memStore) CompleteKey(_ context.Context, key string, replay idempotency.Replay) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, key)
	s.done[key] = replay
	return nil
}

func (s *memStore) ReleaseKey(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, key)
	s.released = append(s.released, key)
	return nil
}

func TestIdempotency_ReplaysCompletedPost(t *testing.T) {
	store := newMemStore()
	calls := 0

	r := gin.New()
	r.Use(ErrorHandler(), Idempotency(store))
	r.POST("/entries", func(c *gin.Context) {
		calls++
		body := []byte(`{"n":1}`)
		CompleteIdempotency(c, http.StatusCreated, "application/json", body)
		c.Data(http.StatusCreated, "application/json", body)
	})

	headers := map[string]string{HeaderIdempotencyKey: "k1"}
	first := serve(r, http.MethodPost, "/entries", "", `{"a":1}`, headers)
	second := serve(r, http.MethodPost, "/entries", "", `{"a":1}`, headers)

	assert.Equal(t, 1, calls)
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get("Idempotent-Replayed"))
}

func TestIdempotency_ReleasesOnError(t *testing.T) {
	store := newMemStore()

	r := gin.New()
	r.Use(ErrorHandler(), Idempotency(store))
	r.POST("/entries", func(c *gin.Context) {
		_ = c.Error(apperror.NewValidation("bad"))
		c.Abort()
	})

	w := serve(r, http.MethodPost, "/entries", "", `{}`, map[string]string{HeaderIdempotencyKey: "k2"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"k2"}, store.released)
	assert.Empty(t, store.done)
}

func TestIdempotency_IgnoresOtherMethodsAndMissingKey(t *testing.T) {
	store := newMemStore()
	r := gin.New()
	r.Use(ErrorHandler(), Idempotency(store))
	r.PUT("/entries", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/entries", func(c *gin.Context) { c.Status(http.StatusOK) })

	serve(r, http.MethodPut, "/entries", "", `{}`, map[string]string{HeaderIdempotencyKey: "k3"})
	serve(r, http.MethodPost, "/entries", "", `{}`, nil)

	assert.Empty(t, store.pending)
	assert.Empty(t, store.released)
}

func TestIdempotency_KeyTooLong(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler(), Idempotency(newMemStore()))
	r.POST("/entries", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, http.MethodPost, "/entries", "", `{}`, map[string]string{HeaderIdempotencyKey: strings.Repeat("k", 200)})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
