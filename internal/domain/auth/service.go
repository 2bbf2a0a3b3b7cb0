package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"ricemill/internal/core/apperror"
	"ricemill/internal/core/id"
	"ricemill/internal/core/tx"
	"ricemill/pkg/logger"
)

// ServiceConfig holds auth service configuration.
type ServiceConfig struct {
	MaxLoginAttempts   int
	LockDuration       time.Duration
	PasswordMinLength  int
	RefreshTokenExpiry time.Duration
	BcryptCost         int
}

// DefaultServiceConfig returns default configuration.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		MaxLoginAttempts:   5,
		LockDuration:       15 * time.Minute,
		PasswordMinLength:  8,
		RefreshTokenExpiry: 7 * 24 * time.Hour, // 7 days
		BcryptCost:         bcrypt.DefaultCost,
	}
}

// Service provides authentication and user administration.
type Service struct {
	userRepo   UserRepository
	tokenRepo  TokenRepository
	mills      MillLookup
	txManager  tx.Manager
	jwtService *JWTService
	config     ServiceConfig
}

// NewService creates a new auth service.
func NewService(
	userRepo UserRepository,
	tokenRepo TokenRepository,
	mills MillLookup,
	txManager tx.Manager,
	jwtService *JWTService,
	config ServiceConfig,
) *Service {
	if config.BcryptCost == 0 {
		config.BcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		mills:      mills,
		txManager:  txManager,
		jwtService: jwtService,
		config:     config,
	}
}

// CreateUser adds a user. Admin only; the handler enforces the role.
func (s *Service) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	if len(req.Password) < s.config.PasswordMinLength {
		return nil, apperror.NewFieldValidation("password",
			fmt.Sprintf("password must be at least %d characters", s.config.PasswordMinLength))
	}

	user := NewUser(req.Email, "", req.Name, req.Role)
	if err := user.Validate(ctx); err != nil {
		return nil, err
	}

	exists, err := s.userRepo.Exists(ctx, user.Email)
	if err != nil {
		return nil, fmt.Errorf("check email exists: %w", err)
	}
	if exists {
		return nil, apperror.NewDuplicate("User", "email", user.Email)
	}

	millIDs, err := s.resolveMills(ctx, req.MillIDs)
	if err != nil {
		return nil, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.config.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(passwordHash)

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.userRepo.Create(ctx, user); err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		if len(millIDs) > 0 {
			if err := s.userRepo.SetMills(ctx, user.ID, millIDs); err != nil {
				return fmt.Errorf("assign mills: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	user.MillIDs = idStrings(millIDs)

	logger.Info(ctx, "user created",
		"user_id", user.ID,
		"email", user.Email,
		"role", user.Role)

	return user, nil
}

// Login authenticates user and returns tokens.
func (s *Service) Login(ctx context.Context, creds Credentials) (*TokenPair, *User, error) {
	user, err := s.userRepo.GetByEmail(ctx, NormalizeEmail(creds.Email))
	if err != nil {
		return nil, nil, apperror.NewUnauthorized("invalid credentials")
	}
	if err := user.CanLogin(); err != nil {
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		user.RecordFailedLogin(s.config.MaxLoginAttempts, s.config.LockDuration)
		if uerr := s.userRepo.Update(ctx, user); uerr != nil {
			logger.Warn(ctx, "failed to record failed login", "user_id", user.ID, "error", uerr)
		}
		return nil, nil, apperror.NewUnauthorized("invalid credentials")
	}

	if err := s.loadMills(ctx, user); err != nil {
		return nil, nil, err
	}

	tokens, err := s.generateTokenPair(ctx, user)
	if err != nil {
		return nil, nil, fmt.Errorf("generate tokens: %w", err)
	}

	user.RecordSuccessfulLogin()
	if err := s.userRepo.Update(ctx, user); err != nil {
		logger.Warn(ctx, "failed to record login", "user_id", user.ID, "error", err)
	}

	logger.Info(ctx, "user logged in",
		"user_id", user.ID,
		"email", user.Email)

	return tokens, user, nil
}

// RefreshToken rotates a refresh token: the presented token is revoked and a new pair issued.
// The token is consumed before the user checks, so a rejected user also loses it.
func (s *Service) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, apperror.NewUnauthorized("invalid refresh token")
	}

	token, err := s.tokenRepo.ConsumeRefreshToken(ctx, hashToken(refreshToken), "refreshed")
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewUnauthorized("refresh token invalid, expired or revoked")
		}
		return nil, fmt.Errorf("consume refresh token: %w", err)
	}

	user, err := s.userRepo.GetByID(ctx, token.UserID)
	if err != nil {
		return nil, apperror.NewUnauthorized("user not found")
	}
	if err := user.CanLogin(); err != nil {
		return nil, err
	}
	if err := s.loadMills(ctx, user); err != nil {
		return nil, err
	}

	return s.generateTokenPair(ctx, user)
}

// Logout revokes all user's refresh tokens.
func (s *Service) Logout(ctx context.Context, userID id.ID) error {
	if err := s.tokenRepo.RevokeAllUserTokens(ctx, userID, "logout"); err != nil {
		return fmt.Errorf("revoke tokens: %w", err)
	}
	logger.Info(ctx, "user logged out", "user_id", userID)
	return nil
}

// GetUserByID retrieves user with mill assignments.
func (s *Service) GetUserByID(ctx context.Context, userID id.ID) (*User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) || apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("User", userID.String())
		}
		return nil, err
	}
	if err := s.loadMills(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers lists users with filtering.
func (s *Service) ListUsers(ctx context.Context, filter UserFilter) ([]User, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	users, total, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	for i := range users {
		if err := s.loadMills(ctx, &users[i]); err != nil {
			return nil, 0, err
		}
	}
	return users, total, nil
}

// AssignMills replaces the set of mills a user may access.
func (s *Service) AssignMills(ctx context.Context, userID id.ID, millIDs []id.ID) (*User, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resolved, err := s.resolveMills(ctx, millIDs)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.SetMills(ctx, user.ID, resolved); err != nil {
		return nil, fmt.Errorf("assign mills: %w", err)
	}
	user.MillIDs = idStrings(resolved)

	logger.Info(ctx, "user mills assigned",
		"user_id", user.ID,
		"mills", len(resolved))

	return user, nil
}

// SetActive enables or disables a user. Disabling also revokes its refresh tokens.
func (s *Service) SetActive(ctx context.Context, userID id.ID, active bool) (*User, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.IsActive = active
	user.UpdatedAt = time.Now().UTC()

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.userRepo.Update(ctx, user); err != nil {
			return fmt.Errorf("update user: %w", err)
		}
		if !active {
			return s.tokenRepo.RevokeAllUserTokens(ctx, user.ID, "disabled")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CleanupExpiredTokens purges dead refresh tokens. Run periodically by the worker.
func (s *Service) CleanupExpiredTokens(ctx context.Context) (int, error) {
	return s.tokenRepo.CleanupExpiredTokens(ctx)
}

func (s *Service) loadMills(ctx context.Context, user *User) error {
	millIDs, err := s.userRepo.LoadMills(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("load mills: %w", err)
	}
	if millIDs == nil {
		millIDs = []string{}
	}
	user.MillIDs = millIDs
	return nil
}

// resolveMills de-duplicates ids and checks that every mill exists.
func (s *Service) resolveMills(ctx context.Context, millIDs []id.ID) ([]id.ID, error) {
	if len(millIDs) == 0 {
		return []id.ID{}, nil
	}

	seen := make(map[id.ID]struct{}, len(millIDs))
	unique := make([]id.ID, 0, len(millIDs))
	for _, mid := range millIDs {
		if _, ok := seen[mid]; ok {
			continue
		}
		seen[mid] = struct{}{}
		unique = append(unique, mid)
	}

	found, err := s.mills.List(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("lookup mills: %w", err)
	}
	if len(found) != len(unique) {
		known := make(map[id.ID]struct{}, len(found))
		for _, m := range found {
			known[m.ID] = struct{}{}
		}
		for _, mid := range unique {
			if _, ok := known[mid]; !ok {
				return nil, apperror.NewFieldValidation("millIds", "unknown mill").
					WithDetail("millId", mid.String())
			}
		}
	}
	return unique, nil
}

// generateTokenPair creates access and refresh tokens.
func (s *Service) generateTokenPair(ctx context.Context, user *User) (*TokenPair, error) {
	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshTokenRaw, err := generateRandomToken(32)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	now := time.Now()
	refreshToken := &RefreshToken{
		ID:        id.New(),
		UserID:    user.ID,
		TokenHash: hashToken(refreshTokenRaw),
		ExpiresAt: now.Add(s.config.RefreshTokenExpiry),
		CreatedAt: now,
	}

	if err := s.tokenRepo.SaveRefreshToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("save refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshTokenRaw,
		ExpiresAt:    expiresAt,
		TokenType:    "Bearer",
	}, nil
}

func idStrings(ids []id.ID) []string {
	out := make([]string, len(ids))
	for i, v := range ids {
		out[i] = v.String()
	}
	return out
}

// generateRandomToken generates a cryptographically secure random token.
func generateRandomToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// hashToken creates SHA256 hash of token.
func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// ErrUserNotFound is returned by repositories when no user matches.
var ErrUserNotFound = errors.New("user not found")
