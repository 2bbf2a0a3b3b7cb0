package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ricemill/internal/core/apperror"
	appctx "ricemill/internal/core/context"
	"ricemill/internal/core/id"
	"ricemill/internal/domain/auth"
	"ricemill/internal/infrastructure/http/v1/dto"
)

type fakeAuth struct {
	users      map[id.ID]*auth.User
	loggedOut  id.ID
	lastFilter auth.UserFilter
	created    *auth.CreateUserRequest
}

func newFakeAuth(users ...*auth.User) *fakeAuth {
	f := &fakeAuth{users: make(map[id.ID]*auth.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeAuth) Login(_ context.Context, creds auth.Credentials) (*auth.TokenPair, *auth.User, error) {
	for _, u := range f.users {
		if u.Email == creds.Email && creds.Password == "correct-password" {
			return &auth.TokenPair{AccessToken: "access", RefreshToken: "refresh", TokenType: "Bearer", ExpiresAt: time.Now().Add(time.Minute)}, u, nil
		}
	}
	return nil, nil, apperror.NewUnauthorized("invalid email or password")
}

func (f *fakeAuth) RefreshToken(_ context.Context, token string) (*auth.TokenPair, error) {
	if token != "refresh" {
		return nil, apperror.NewUnauthorized("invalid refresh token")
	}
	return &auth.TokenPair{AccessToken: "access-2", RefreshToken: "refresh-2", TokenType: "Bearer"}, nil
}

func (f *fakeAuth) Logout(_ context.Context, userID id.ID) error {
	f.loggedOut = userID
	return nil
}

func (f *fakeAuth) GetUserByID(_ context.Context, userID id.ID) (*auth.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, apperror.NewNotFound("User", userID.String())
	}
	return u, nil
}

func (f *fakeAuth) CreateUser(_ context.Context, req auth.CreateUserRequest) (*auth.User, error) {
	f.created = &req
	u := auth.NewUser(req.Email, "hash", req.Name, req.Role)
	for _, m := range req.MillIDs {
		u.MillIDs = append(u.MillIDs, m.String())
	}
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeAuth) ListUsers(_ context.Context, filter auth.UserFilter) ([]auth.User, int, error) {
	f.lastFilter = filter
	out := make([]auth.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, len(out), nil
}

func (f *fakeAuth) AssignMills(_ context.Context, userID id.ID, millIDs []id.ID) (*auth.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, apperror.NewNotFound("User", userID.String())
	}
	u.MillIDs = u.MillIDs[:0]
	for _, m := range millIDs {
		u.MillIDs = append(u.MillIDs, m.String())
	}
	return u, nil
}

func (f *fakeAuth) SetActive(_ context.Context, userID id.ID, active bool) (*auth.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, apperror.NewNotFound("User", userID.String())
	}
	u.IsActive = active
	return u, nil
}

func authRouter(svc AuthService, user *appctx.UserContext) http.Handler {
	r := newEngine(user, nil)
	base := NewBaseHandler()
	a := NewAuthHandler(base, svc)
	r.POST("/auth/login", a.Login)
	r.POST("/auth/refresh", a.Refresh)
	r.POST("/auth/logout", a.Logout)
	r.GET("/auth/me", a.Me)

	u := NewUsersHandler(base, svc)
	r.GET("/users", u.List)
	r.POST("/users", u.Create)
	r.PUT("/users/:userId/mills", u.AssignMills)
	r.PATCH("/users/:userId/status", u.SetActive)
	return r
}

func staffUser() *auth.User {
	return auth.NewUser("staff@example.com", "hash", "Staff", appctx.RoleStaff)
}

func TestAuthHandler_Login(t *testing.T) {
	u := staffUser()
	r := authRouter(newFakeAuth(u), nil)

	w := do(t, r, http.MethodPost, "/auth/login", map[string]string{"email": u.Email, "password": "correct-password"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dto.LoginResponse
	require.NoError(t, json.Unmarshal(decodeOK(t, w).Data, &resp))
	assert.Equal(t, "access", resp.Tokens.AccessToken)
	assert.Equal(t, u.Email, resp.User.Email)
	assert.NotContains(t, w.Body.String(), "hash")

	w = do(t, r, http.MethodPost, "/auth/login", map[string]string{"email": u.Email, "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, apperror.CodeUnauthorized, decodeErr(t, w).Code)

	w = do(t, r, http.MethodPost, "/auth/login", map[string]string{"email": "not-an-email", "password": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Refresh(t *testing.T) {
	r := authRouter(newFakeAuth(), nil)

	w := do(t, r, http.MethodPost, "/auth/refresh", map[string]string{"refreshToken": "refresh"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "access-2")

	w = do(t, r, http.MethodPost, "/auth/refresh", map[string]string{"refreshToken": "stale"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_MeAndLogout(t *testing.T) {
	u := staffUser()
	svc := newFakeAuth(u)
	r := authRouter(svc, &appctx.UserContext{UserID: u.ID.String(), Role: u.Role})

	w := do(t, r, http.MethodGet, "/auth/me", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var me dto.UserResponse
	require.NoError(t, json.Unmarshal(decodeOK(t, w).Data, &me))
	assert.Equal(t, u.ID.String(), me.ID)
	assert.Equal(t, []string{}, me.MillIDs)

	w = do(t, r, http.MethodPost, "/auth/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, u.ID, svc.loggedOut)
}

func TestAuthHandler_MeWithoutUser(t *testing.T) {
	w := do(t, authRouter(newFakeAuth(), nil), http.MethodGet, "/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUsersHandler_Create(t *testing.T) {
	svc := newFakeAuth()
	r := authRouter(svc, adminUser)
	millID := id.New()

	w := do(t, r, http.MethodPost, "/users", map[string]any{
		"email":    "new@example.com",
		"password": "password123",
		"name":     "New Staff",
		"role":     "staff",
		"millIds":  []string{millID.String()},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.NotNil(t, svc.created)
	assert.Equal(t, []id.ID{millID}, svc.created.MillIDs)

	w = do(t, r, http.MethodPost, "/users", map[string]any{
		"email": "new@example.com", "password": "short", "name": "x", "role": "staff",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/users", map[string]any{
		"email": "new@example.com", "password": "password123", "name": "x", "role": "owner",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUsersHandler_List(t *testing.T) {
	svc := newFakeAuth(staffUser(), staffUser())
	w := do(t, authRouter(svc, adminUser), http.MethodGet, "/users?page=2&limit=1&role=staff", nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	env := decodeOK(t, w)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, 2, env.Pagination.TotalPages)
	assert.Equal(t, auth.UserFilter{Role: "staff", Limit: 1, Offset: 1}, svc.lastFilter)
}

func TestUsersHandler_AssignMillsAndStatus(t *testing.T) {
	u := staffUser()
	r := authRouter(newFakeAuth(u), adminUser)
	millID := id.New()

	w := do(t, r, http.MethodPut, "/users/"+u.ID.String()+"/mills", map[string]any{"millIds": []string{millID.String()}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, []string{millID.String()}, u.MillIDs)

	w = do(t, r, http.MethodPatch, "/users/"+u.ID.String()+"/status", map[string]any{"isActive": false})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.False(t, u.IsActive)

	w = do(t, r, http.MethodPatch, "/users/"+u.ID.String()+"/status", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPatch, "/users/"+id.New().String()+"/status", map[string]any{"isActive": true})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
