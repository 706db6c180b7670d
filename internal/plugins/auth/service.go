package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"myblog/backend/internal/apperror"
)

// AuthService defines the business logic contract for authentication.
// Handlers call these methods -- they never touch the repository directly.
type AuthService interface {
	Login(ctx context.Context, input LoginRequest) (string, error)
	CurrentUser(ctx context.Context, token string) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)
	ToggleActive(ctx context.Context, actorID, targetID int64) (bool, error)
}

// CanAdmin reports whether a user may perform admin operations.
//
// Provisional policy: any active authenticated user is an admin. The site has
// exactly one provisioned user today, so this is equivalent to a real check.
// When more roles exist, this becomes `u.Role == RoleAdmin` -- call sites
// already go through this function so nothing else changes.
func CanAdmin(u *User) bool {
	return u != nil && u.IsActive
}

// authService implements AuthService with argon2id credential verification
// and stateless JWT access tokens.
type authService struct {
	repo     UserRepository
	tokens   *TokenService
	tokenTTL time.Duration
}

// NewAuthService creates a new auth service with the given dependencies.
func NewAuthService(repo UserRepository, tokens *TokenService, tokenTTL time.Duration) AuthService {
	return &authService{
		repo:     repo,
		tokens:   tokens,
		tokenTTL: tokenTTL,
	}
}

// Login verifies credentials and issues an access token. An unknown username
// and a wrong password both map to the same invalid_credentials error so the
// response doesn't reveal which usernames exist. A disabled account with
// correct credentials is reported separately (400) and gets no token.
func (s *authService) Login(ctx context.Context, input LoginRequest) (string, error) {
	user, err := s.repo.FindByUsername(ctx, input.Username)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == 404 {
			return "", apperror.NewInvalidCredentials()
		}
		return "", apperror.NewInternal(fmt.Errorf("finding user: %w", err))
	}

	if !VerifyPassword(input.Password, user.PasswordHash) {
		return "", apperror.NewInvalidCredentials()
	}

	if !user.IsActive {
		return "", apperror.NewAccountDisabled()
	}

	token, err := s.tokens.Issue(user.Username, s.tokenTTL)
	if err != nil {
		return "", apperror.NewInternal(fmt.Errorf("issuing token: %w", err))
	}

	slog.Info("user logged in",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return token, nil
}

// CurrentUser resolves a bearer token to an active user record. Token
// failures (malformed, bad signature, expired) and unknown subjects all map
// to unauthorized; a valid token for a since-disabled account is reported as
// account_disabled. On success the full user record is returned so callers
// can run capability checks without another lookup.
func (s *authService) CurrentUser(ctx context.Context, token string) (*User, error) {
	subject, err := s.tokens.Validate(token)
	if err != nil {
		return nil, apperror.NewUnauthorized("invalid or expired token")
	}

	user, err := s.repo.FindByUsername(ctx, subject)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == 404 {
			// Token subject no longer exists (user renamed or removed).
			return nil, apperror.NewUnauthorized("invalid or expired token")
		}
		return nil, apperror.NewInternal(fmt.Errorf("resolving token subject: %w", err))
	}

	if !user.IsActive {
		return nil, apperror.NewAccountDisabled()
	}

	return user, nil
}

// ListUsers returns all users for the admin user-management view.
func (s *authService) ListUsers(ctx context.Context) ([]User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("listing users: %w", err))
	}
	return users, nil
}

// ToggleActive flips a user's active flag and returns the new state. A user
// may never disable their own account -- that would lock the single admin
// out with no recovery path short of direct database access.
func (s *authService) ToggleActive(ctx context.Context, actorID, targetID int64) (bool, error) {
	if actorID == targetID {
		return false, apperror.NewBadRequest("cannot change the active status of your own account")
	}

	user, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return false, appErr
		}
		return false, apperror.NewInternal(fmt.Errorf("finding user: %w", err))
	}

	newState := !user.IsActive
	if err := s.repo.SetActive(ctx, targetID, newState); err != nil {
		return false, apperror.NewInternal(fmt.Errorf("toggling is_active: %w", err))
	}

	slog.Info("user active flag toggled",
		slog.Int64("user_id", targetID),
		slog.Bool("is_active", newState),
		slog.Int64("actor_id", actorID),
	)

	return newState, nil
}
