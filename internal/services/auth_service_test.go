package services

import (
	"context"
	"testing"

	"github.com/skillatlas/skillatlas/internal/models"
	"github.com/skillatlas/skillatlas/internal/utils"
)

type fakeUserRepo struct {
	byEmail map[string]*models.User
	byID    map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*models.User{}, byID: map[string]*models.User{}}
}

func (f *fakeUserRepo) Insert(ctx context.Context, u *models.User) error {
	f.byEmail[u.Email] = u
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, utils.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, utils.ErrNotFound
}

func TestAuthRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newFakeUserRepo())

	u, err := svc.Register(ctx, "ada@example.com", "correct horse", "Ada", "Lovelace")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.ID == "" {
		t.Error("user id not assigned")
	}
	if u.PasswordHash == "correct horse" {
		t.Error("password stored in clear")
	}

	t.Run("duplicate email rejected", func(t *testing.T) {
		_, err := svc.Register(ctx, "ada@example.com", "other", "A", "L")
		if !utils.IsCode(err, utils.CodeInvalidArgument) {
			t.Errorf("err = %v, want INVALID_ARGUMENT", err)
		}
	})

	t.Run("login with correct password", func(t *testing.T) {
		got, err := svc.Login(ctx, "ada@example.com", "correct horse")
		if err != nil {
			t.Fatalf("Login: %v", err)
		}
		if got.ID != u.ID {
			t.Errorf("logged in as %q, want %q", got.ID, u.ID)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "ada@example.com", "nope")
		if !utils.IsCode(err, utils.CodeUnauthorized) {
			t.Errorf("err = %v, want UNAUTHORIZED", err)
		}
	})

	t.Run("unknown email gets the same error", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com", "whatever")
		if !utils.IsCode(err, utils.CodeUnauthorized) {
			t.Errorf("err = %v, want UNAUTHORIZED", err)
		}
	})
}
