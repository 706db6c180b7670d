package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"myblog/backend/internal/apperror"
)

// --- Mock Repository ---

// mockUserRepo implements UserRepository for testing.
type mockUserRepo struct {
	createFn         func(ctx context.Context, user *User) error
	findByIDFn       func(ctx context.Context, id int64) (*User, error)
	findByUsernameFn func(ctx context.Context, username string) (*User, error)
	listFn           func(ctx context.Context) ([]User, error)
	setActiveFn      func(ctx context.Context, id int64, active bool) error
	countFn          func(ctx context.Context) (int, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id int64) (*User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, apperror.NewNotFound("user not found")
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*User, error) {
	if m.findByUsernameFn != nil {
		return m.findByUsernameFn(ctx, username)
	}
	return nil, apperror.NewNotFound("user not found")
}

func (m *mockUserRepo) List(ctx context.Context) ([]User, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockUserRepo) SetActive(ctx context.Context, id int64, active bool) error {
	if m.setActiveFn != nil {
		return m.setActiveFn(ctx, id, active)
	}
	return nil
}

func (m *mockUserRepo) Count(ctx context.Context) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

// --- Test Helpers ---

// newTestAuthService creates an authService with a mock repo and a real
// token service over a fixed test secret.
func newTestAuthService(t *testing.T, repo *mockUserRepo) *authService {
	t.Helper()
	tokens, err := NewTokenService("test-secret", "HS256")
	if err != nil {
		t.Fatalf("NewTokenService error: %v", err)
	}
	return &authService{
		repo:     repo,
		tokens:   tokens,
		tokenTTL: 24 * time.Hour,
	}
}

// testUser returns an active admin with the given plaintext password hashed.
func testUser(t *testing.T, password string) *User {
	t.Helper()
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	return &User{
		ID:           1,
		Username:     "admin",
		Email:        "admin@example.com",
		FullName:     "Administrator",
		PasswordHash: hash,
		Role:         RoleAdmin,
		IsActive:     true,
	}
}

// assertAppError checks that err is an *apperror.AppError with the expected code.
func assertAppError(t *testing.T, err error, expectedCode int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %d, got nil", expectedCode)
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperror.AppError, got %T: %v", err, err)
	}
	if appErr.Code != expectedCode {
		t.Errorf("expected status %d, got %d (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

// --- Login Tests ---

func TestLogin_Success(t *testing.T) {
	user := testUser(t, "admin123")
	repo := &mockUserRepo{
		findByUsernameFn: func(ctx context.Context, username string) (*User, error) {
			if username != "admin" {
				t.Errorf("expected lookup for admin, got %s", username)
			}
			return user, nil
		},
	}

	svc := newTestAuthService(t, repo)
	token, err := svc.Login(context.Background(), LoginRequest{
		Username: "admin",
		Password: "admin123",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token, got empty string")
	}

	// The issued token must resolve straight back to the subject.
	subject, err := svc.tokens.Validate(token)
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if subject != "admin" {
		t.Errorf("expected subject admin, got %s", subject)
	}
}

func TestLogin_UnknownUsername(t *testing.T) {
	repo := &mockUserRepo{} // FindByUsername defaults to NotFound.

	svc := newTestAuthService(t, repo)
	_, err := svc.Login(context.Background(), LoginRequest{
		Username: "nobody",
		Password: "whatever",
	})
	assertAppError(t, err, 401)
}

func TestLogin_WrongPassword(t *testing.T) {
	user := testUser(t, "admin123")
	repo := &mockUserRepo{
		findByUsernameFn: func(ctx context.Context, username string) (*User, error) {
			return user, nil
		},
	}

	svc := newTestAuthService(t, repo)
	_, err := svc.Login(context.Background(), LoginRequest{
		Username: "admin",
		Password: "not-the-password",
	})
	assertAppError(t, err, 401)
}

func TestLogin_DisabledAccount(t *testing.T) {
	// Correct credentials, inactive account: 400, no token issued.
	user := testUser(t, "admin123")
	user.IsActive = false
	repo := &mockUserRepo{
		findByUsernameFn: func(ctx context.Context, username string) (*User, error) {
			return user, nil
		},
	}

	svc := newTestAuthService(t, repo)
	token, err := svc.Login(context.Background(), LoginRequest{
		Username: "admin",
		Password: "admin123",
	})
	assertAppError(t, err, 400)
	if token != "" {
		t.Errorf("expected no token for disabled account, got %q", token)
	}
}

func TestLogin_RepositoryError(t *testing.T) {
	repo := &mockUserRepo{
		findByUsernameFn: func(ctx context.Context, username string) (*User, error) {
			return nil, errors.New("db connection lost")
		},
	}

	svc := newTestAuthService(t, repo)
	_, err := svc.Login(context.Background(), LoginRequest{
		Username: "admin",
		Password: "admin123",
	})
	assertAppError(t, err, 500)
}

// --- CurrentUser Tests ---

func TestCurrentUser_Success(t *testing.T) {
	user := testUser(t, "admin123")
	repo := &mockUserRepo{
		findByUsernameFn: func(ctx context.Context, username string) (*User, error) {
			return user, nil
		},
	}

	svc := newTestAuthService(t, repo)
	token, err := svc.tokens.Issue("admin", time.Hour)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	got, err := svc.CurrentUser(context.Background(), token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Username != "admin" {
		t.Errorf("expected username admin, got %s", got.Username)
	}
	if got.PasswordHash == "" {
		t.Error("expected full user record including hash for internal use")
	}
}

func TestCurrentUser_InvalidToken(t *testing.T) {
	svc := newTestAuthService(t, &mockUserRepo{})
	_, err := svc.CurrentUser(context.Background(), "not-a-token")
	assertAppError(t, err, 401)
}

func TestCurrentUser_ExpiredToken(t *testing.T) {
	user := testUser(t, "admin123")
	repo := &mockUserRepo{
		findByUsernameFn: func(ctx context.Context, username string) (*User, error) {
			return user, nil
		},
	}

	svc := newTestAuthService(t, repo)
	token, err := svc.tokens.Issue("admin", -1*time.Minute)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = svc.CurrentUser(context.Background(), token)
	assertAppError(t, err, 401)
}

func TestCurrentUser_SubjectGone(t *testing.T) {
	svc := newTestAuthService(t, &mockUserRepo{}) // lookup defaults to NotFound

	token, err := svc.tokens.Issue("ghost", time.Hour)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = svc.CurrentUser(context.Background(), token)
	assertAppError(t, err, 401)
}

func TestCurrentUser_DisabledAccount(t *testing.T) {
	// A token issued before the account was disabled must stop working.
	user := testUser(t, "admin123")
	user.IsActive = false
	repo := &mockUserRepo{
		findByUsernameFn: func(ctx context.Context, username string) (*User, error) {
			return user, nil
		},
	}

	svc := newTestAuthService(t, repo)
	token, err := svc.tokens.Issue("admin", time.Hour)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = svc.CurrentUser(context.Background(), token)
	assertAppError(t, err, 400)
}

// --- ToggleActive Tests ---

func TestToggleActive_SelfDisableRejected(t *testing.T) {
	called := false
	repo := &mockUserRepo{
		setActiveFn: func(ctx context.Context, id int64, active bool) error {
			called = true
			return nil
		},
	}

	svc := newTestAuthService(t, repo)
	_, err := svc.ToggleActive(context.Background(), 1, 1)
	assertAppError(t, err, 400)
	if called {
		t.Error("expected no repository write when actor targets themselves")
	}
}

func TestToggleActive_FlipsFlag(t *testing.T) {
	target := testUser(t, "pw")
	target.ID = 2
	var gotActive bool
	repo := &mockUserRepo{
		findByIDFn: func(ctx context.Context, id int64) (*User, error) {
			return target, nil
		},
		setActiveFn: func(ctx context.Context, id int64, active bool) error {
			gotActive = active
			return nil
		},
	}

	svc := newTestAuthService(t, repo)
	newState, err := svc.ToggleActive(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if newState != false || gotActive != false {
		t.Errorf("expected active user to be disabled, got newState=%v write=%v", newState, gotActive)
	}
}

func TestToggleActive_TargetMissing(t *testing.T) {
	svc := newTestAuthService(t, &mockUserRepo{}) // FindByID defaults to NotFound
	_, err := svc.ToggleActive(context.Background(), 1, 99)
	assertAppError(t, err, 404)
}

// --- Capability Tests ---

func TestCanAdmin(t *testing.T) {
	if CanAdmin(nil) {
		t.Error("expected nil user to be denied")
	}
	if CanAdmin(&User{IsActive: false, Role: RoleAdmin}) {
		t.Error("expected inactive user to be denied")
	}
	if !CanAdmin(&User{IsActive: true, Role: RoleAdmin}) {
		t.Error("expected active user to be admitted")
	}
}
