package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/sakif/twitter-clone/internal/apperror"
	"github.com/sakif/twitter-clone/internal/auth"
	"github.com/sakif/twitter-clone/internal/model"
)

// fakeUserRepo is an in-memory repository.UserRepository. A hand-written
// fake (not a mock framework) keeps the tests dependency-free and readable.
type fakeUserRepo struct {
	byUsername map[string]*model.User
	nextID     int
	// set to a non-nil error to simulate a storage failure
	createErr error
	getErr    error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byUsername: make(map[string]*model.User), nextID: 1}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byUsername[user.Username]; ok {
		return apperror.Conflict("user", user.Username)
	}
	user.ID = fmt.Sprintf("user-%d", f.nextID)
	f.nextID++
	user.CreatedAt = time.Now()
	copied := *user
	f.byUsername[user.Username] = &copied
	return nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byUsername[username]
	if !ok {
		return nil, apperror.NotFound("user", username)
	}
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byUsername {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperror.NotFound("user", id)
}

// newTestLogger discards everything below Error so test output stays quiet.
func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestTokens(t *testing.T) *auth.TokenService {
	t.Helper()
	ts, err := auth.NewTokenService("test-secret-at-least-16-chars!!", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return ts
}

// newTestAuthService wires an AuthService with fake storage, a fixed test
// secret, and the minimum bcrypt cost.
func newTestAuthService(t *testing.T, repo *fakeUserRepo) *AuthService {
	t.Helper()
	return NewAuthService(repo, newTestTokens(t), auth.NewPasswordServiceForTest(), newTestLogger())
}

func TestRegister_Success(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(t, repo)

	err := svc.Register(context.Background(), "alice", "Alice Example", "hunter22", "female")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	stored, ok := repo.byUsername["alice"]
	if !ok {
		t.Fatal("Register() did not store the user")
	}
	if stored.PasswordHash == "hunter22" {
		t.Error("Register() stored the plaintext password")
	}
	if stored.Name != "Alice Example" {
		t.Errorf("stored.Name = %q, want %q", stored.Name, "Alice Example")
	}
}

func TestRegister_ShortPassword(t *testing.T) {
	svc := newTestAuthService(t, newFakeUserRepo())

	// Weak password fails regardless of username availability.
	err := svc.Register(context.Background(), "alice", "Alice", "abc", "female")
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Register() error = %v, want ErrValidation", err)
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(t, repo)
	ctx := context.Background()

	if err := svc.Register(ctx, "alice", "Alice", "hunter22", "female"); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}

	err := svc.Register(ctx, "alice", "Other Alice", "hunter23", "female")
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("second Register() error = %v, want ErrValidation", err)
	}
}

// The pre-check is only an optimization; if a concurrent registration slips
// past it, the storage conflict surfaces as the same duplicate-user error.
func TestRegister_StorageConflict(t *testing.T) {
	repo := newFakeUserRepo()
	repo.createErr = apperror.Conflict("user", "alice")
	svc := newTestAuthService(t, repo)

	err := svc.Register(context.Background(), "alice", "Alice", "hunter22", "female")
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Register() error = %v, want ErrValidation", err)
	}
}

func TestRegister_EmptyUsername(t *testing.T) {
	svc := newTestAuthService(t, newFakeUserRepo())

	err := svc.Register(context.Background(), "   ", "Alice", "hunter22", "female")
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Register() error = %v, want ErrValidation", err)
	}
}

func TestLogin_Success(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(t, repo)
	ctx := context.Background()

	if err := svc.Register(ctx, "alice", "Alice", "hunter22", "female"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	token, err := svc.Login(ctx, "alice", "hunter22")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if token == "" {
		t.Fatal("Login() returned empty token")
	}

	// The token must verify and carry the registered identity.
	claim, err := newTestTokens(t).Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claim.Username != "alice" {
		t.Errorf("claim.Username = %q, want alice", claim.Username)
	}
	if claim.UserID != repo.byUsername["alice"].ID {
		t.Errorf("claim.UserID = %q, want %q", claim.UserID, repo.byUsername["alice"].ID)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	svc := newTestAuthService(t, newFakeUserRepo())

	_, err := svc.Login(context.Background(), "nobody", "whatever")
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Login() error = %v, want ErrValidation", err)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(t, repo)
	ctx := context.Background()

	if err := svc.Register(ctx, "alice", "Alice", "hunter22", "female"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, err := svc.Login(ctx, "alice", "not-the-password")
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Login() error = %v, want ErrValidation", err)
	}
}

func TestLogin_StorageFailure(t *testing.T) {
	repo := newFakeUserRepo()
	repo.getErr = errors.New("disk on fire")
	svc := newTestAuthService(t, repo)

	_, err := svc.Login(context.Background(), "alice", "hunter22")
	if err == nil {
		t.Fatal("Login() should propagate storage failures")
	}
	if errors.Is(err, apperror.ErrValidation) {
		t.Error("Login() mapped a storage failure to a validation error")
	}
}
