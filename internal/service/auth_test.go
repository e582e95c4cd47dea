package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/sakif/readability-analyzer/internal/apperror"
	"github.com/sakif/readability-analyzer/internal/auth"
	"github.com/sakif/readability-analyzer/internal/model"
)

// =========================================================================
// FAKES AND HELPERS
// =========================================================================

// fakeUserRepo is an in-memory implementation of repository.UserRepository.
// A hand-written fake (not a mock framework) keeps these tests
// dependency-free and easy to read.
type fakeUserRepo struct {
	users map[string]*model.User // keyed by email
	// set to a non-nil error to simulate a database failure
	createErr error
	getErr    error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.users[user.Email]; ok {
		return apperror.Conflict("account", user.Email)
	}
	copied := *user
	f.users[user.Email] = &copied
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.users[email]
	if !ok {
		return nil, apperror.NotFound("account", email)
	}
	return u, nil
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, email string, profile model.Profile) error {
	if u, ok := f.users[email]; ok {
		u.Name = profile.Name
		u.AgeGroup = profile.AgeGroup
		u.Language = profile.Language
	}
	// Unknown email is a silent no-op, same as the sqlite implementation.
	return nil
}

func (f *fakeUserRepo) GetProfile(ctx context.Context, email string) (model.Profile, error) {
	u, ok := f.users[email]
	if !ok {
		return model.Profile{}, nil
	}
	return model.Profile{Name: u.Name, AgeGroup: u.AgeGroup, Language: u.Language}, nil
}

// newTestAuthService returns an AuthService wired with the fake repo, a
// test token service, and a minimum-cost password service.
func newTestAuthService(t *testing.T, repo *fakeUserRepo) *AuthService {
	t.Helper()

	ts, err := auth.NewTokenService("test-secret-at-least-16-chars!!")
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	ps := auth.NewPasswordServiceForTest(bcrypt.MinCost)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewAuthService(repo, ts, ps, logger)
}

// =========================================================================
// REGISTER TESTS
// =========================================================================

func TestRegister_NewAccount(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(t, repo)

	if err := svc.Register(context.Background(), "alice@example.com", "s3cret"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	stored, ok := repo.users["alice@example.com"]
	if !ok {
		t.Fatal("Register() did not store the user")
	}
	if stored.PasswordHash == "" || stored.PasswordHash == "s3cret" {
		t.Errorf("stored hash = %q; the plaintext must never be stored", stored.PasswordHash)
	}
}

func TestRegister_DuplicateRejected(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(t, repo)
	ctx := context.Background()

	if err := svc.Register(ctx, "alice@example.com", "first"); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}
	firstHash := repo.users["alice@example.com"].PasswordHash

	err := svc.Register(ctx, "alice@example.com", "second")
	if !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("second Register() error = %v, want ErrConflict", err)
	}
	if repo.users["alice@example.com"].PasswordHash != firstHash {
		t.Error("rejected duplicate registration changed the stored hash")
	}
}

func TestRegister_NormalizesEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(t, repo)

	if err := svc.Register(context.Background(), "  Alice@Example.COM ", "s3cret"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if _, ok := repo.users["alice@example.com"]; !ok {
		t.Error("Register() did not normalize the email to lowercase")
	}
}

func TestRegister_Validation(t *testing.T) {
	svc := newTestAuthService(t, newFakeUserRepo())
	ctx := context.Background()

	cases := []struct {
		name, email, password string
	}{
		{"empty email", "", "pw"},
		{"no at sign", "not-an-email", "pw"},
		{"empty password", "alice@example.com", ""},
	}

	for _, tc := range cases {
		err := svc.Register(ctx, tc.email, tc.password)
		if !errors.Is(err, apperror.ErrValidation) {
			t.Errorf("%s: Register() error = %v, want ErrValidation", tc.name, err)
		}
	}
}

// =========================================================================
// LOGIN TESTS
// =========================================================================

func TestLogin_Success(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(t, repo)
	ctx := context.Background()

	if err := svc.Register(ctx, "alice@example.com", "s3cret"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	token, err := svc.Login(ctx, "alice@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if token == "" {
		t.Fatal("Login() returned empty token")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(t, repo)
	ctx := context.Background()

	svc.Register(ctx, "alice@example.com", "s3cret")

	_, err := svc.Login(ctx, "alice@example.com", "wrong")
	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Fatalf("Login() wrong password error = %v, want ErrUnauthorized", err)
	}
}

func TestLogin_MissingAccount(t *testing.T) {
	svc := newTestAuthService(t, newFakeUserRepo())

	// Distinct from wrong-password so the UI can suggest registering.
	_, err := svc.Login(context.Background(), "ghost@example.com", "whatever")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("Login() missing account error = %v, want ErrNotFound", err)
	}
}

// =========================================================================
// PROFILE TESTS
// =========================================================================

func TestSaveProfile_RoundTrip(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(t, repo)
	ctx := context.Background()

	svc.Register(ctx, "alice@example.com", "s3cret")

	saved := model.Profile{Name: "Alice", AgeGroup: "18-25", Language: "English"}
	if err := svc.SaveProfile(ctx, "alice@example.com", saved); err != nil {
		t.Fatalf("SaveProfile() error = %v", err)
	}

	got, err := svc.Profile(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("Profile() error = %v", err)
	}
	if got != saved {
		t.Errorf("Profile() = %+v, want %+v", got, saved)
	}
}

func TestSaveProfile_RejectsUnknownEnums(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(t, repo)
	ctx := context.Background()

	svc.Register(ctx, "alice@example.com", "s3cret")

	err := svc.SaveProfile(ctx, "alice@example.com",
		model.Profile{AgeGroup: "not-a-bucket"})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("SaveProfile() bad age group error = %v, want ErrValidation", err)
	}

	err = svc.SaveProfile(ctx, "alice@example.com",
		model.Profile{Language: "Klingon"})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("SaveProfile() bad language error = %v, want ErrValidation", err)
	}
}
