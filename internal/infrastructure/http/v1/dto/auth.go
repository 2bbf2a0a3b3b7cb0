package dto

import (
	"time"

	"ricemill/internal/core/apperror"
	appctx "ricemill/internal/core/context"
	"ricemill/internal/core/id"
	"ricemill/internal/domain/auth"
)

// --- Request DTOs ---

// LoginRequest for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ToCredentials converts to domain credentials.
func (r *LoginRequest) ToCredentials() auth.Credentials {
	return auth.Credentials{
		Email:    r.Email,
		Password: r.Password,
	}
}

// RefreshTokenRequest for token refresh.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// CreateUserRequest is the admin request to add a user.
type CreateUserRequest struct {
	Email    string   `json:"email" binding:"required,email"`
	Password string   `json:"password" binding:"required,min=8,max=72"`
	Name     string   `json:"name" binding:"required,notblank,max=200"`
	Role     string   `json:"role" binding:"required,oneof=admin staff"`
	MillIDs  []string `json:"millIds" binding:"omitempty,dive,uuid"`
}

// ToAuthRequest converts to domain request.
func (r *CreateUserRequest) ToAuthRequest() (auth.CreateUserRequest, error) {
	millIDs, err := parseMillIDs(r.MillIDs)
	if err != nil {
		return auth.CreateUserRequest{}, err
	}
	return auth.CreateUserRequest{
		Email:    r.Email,
		Password: r.Password,
		Name:     r.Name,
		Role:     r.Role,
		MillIDs:  millIDs,
	}, nil
}

// AssignMillsRequest replaces a user's mill assignments.
type AssignMillsRequest struct {
	MillIDs []string `json:"millIds" binding:"omitempty,dive,uuid"`
}

// ParseIDs converts the mill ids.
func (r *AssignMillsRequest) ParseIDs() ([]id.ID, error) {
	return parseMillIDs(r.MillIDs)
}

// SetActiveRequest enables or disables a user.
type SetActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// UserListRequest holds user list query parameters.
type UserListRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search" binding:"max=100"`
	Role     string `form:"role" binding:"omitempty,oneof=admin staff"`
	IsActive *bool  `form:"isActive"`
}

// ToFilter converts to the repository filter, applying page defaults.
func (r *UserListRequest) ToFilter() auth.UserFilter {
	if r.Page == 0 {
		r.Page = 1
	}
	if r.Limit == 0 {
		r.Limit = 20
	}
	return auth.UserFilter{
		Search:   r.Search,
		Role:     r.Role,
		IsActive: r.IsActive,
		Limit:    r.Limit,
		Offset:   (r.Page - 1) * r.Limit,
	}
}

func parseMillIDs(raw []string) ([]id.ID, error) {
	if len(raw) == 0 {
		return []id.ID{}, nil
	}
	ids, err := id.ParseAll(raw)
	if err != nil {
		return nil, apperror.NewFieldValidation("millIds", "millIds must be UUIDs")
	}
	return ids, nil
}

// --- Response DTOs ---

// TokenResponse represents token pair response.
type TokenResponse struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
	TokenType    string    `json:"tokenType"`
}

// FromTokenPair creates response from domain token pair.
func FromTokenPair(tp *auth.TokenPair) *TokenResponse {
	return &TokenResponse{
		AccessToken:  tp.AccessToken,
		RefreshToken: tp.RefreshToken,
		ExpiresAt:    tp.ExpiresAt,
		TokenType:    tp.TokenType,
	}
}

// UserResponse represents user in API response.
type UserResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"isActive"`
	IsAdmin     bool       `json:"isAdmin"`
	MillIDs     []string   `json:"millIds"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// FromUser creates response from domain user.
func FromUser(u *auth.User) *UserResponse {
	mills := u.MillIDs
	if mills == nil {
		mills = []string{}
	}
	return &UserResponse{
		ID:          u.ID.String(),
		Email:       u.Email,
		Name:        u.Name,
		Role:        u.Role,
		IsActive:    u.IsActive,
		IsAdmin:     u.IsAdmin(),
		MillIDs:     mills,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

// FromUsers converts a page of users.
func FromUsers(users []auth.User) []*UserResponse {
	out := make([]*UserResponse, len(users))
	for i := range users {
		out[i] = FromUser(&users[i])
	}
	return out
}

// MeResponse describes the caller as seen by the access token.
type MeResponse struct {
	UserID  string   `json:"userId"`
	Email   string   `json:"email"`
	Name    string   `json:"name"`
	Role    string   `json:"role"`
	MillIDs []string `json:"millIds"`
}

// FromUserContext builds MeResponse from the request user.
func FromUserContext(u *appctx.UserContext) *MeResponse {
	mills := u.MillIDs
	if mills == nil {
		mills = []string{}
	}
	return &MeResponse{UserID: u.UserID, Email: u.Email, Name: u.Name, Role: u.Role, MillIDs: mills}
}

// LoginResponse includes tokens and user info.
type LoginResponse struct {
	Tokens *TokenResponse `json:"tokens"`
	User   *UserResponse  `json:"user"`
}
