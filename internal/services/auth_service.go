package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/skillatlas/skillatlas/internal/models"
	pgrepo "github.com/skillatlas/skillatlas/internal/repositories/postgres"
	"github.com/skillatlas/skillatlas/internal/utils"
)

type AuthService interface {
	Register(ctx context.Context, email, password, firstName, lastName string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	UserByID(ctx context.Context, id string) (*models.User, error)
}

type authService struct {
	users pgrepo.UserRepository
}

func NewAuthService(users pgrepo.UserRepository) AuthService {
	return &authService{users: users}
}

func (s *authService) Register(ctx context.Context, email, password, firstName, lastName string) (*models.User, error) {
	const op = "AuthService.Register"

	if email == "" || password == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "email and password are required", nil)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user already exists", nil)
	} else if !errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeInternal, op, "failed to check existing user", err)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to hash password", err)
	}

	now := time.Now().UTC()
	u := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Insert(ctx, u); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create user", err)
	}
	return u, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, error) {
	const op = "AuthService.Login"

	if email == "" || password == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "email and password are required", nil)
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeUnauthorized, op, "invalid credentials", nil)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load user", err)
	}

	if err := utils.CheckPassword(u.PasswordHash, password); err != nil {
		return nil, utils.E(utils.CodeUnauthorized, op, "invalid credentials", nil)
	}
	return u, nil
}

func (s *authService) UserByID(ctx context.Context, id string) (*models.User, error) {
	const op = "AuthService.UserByID"

	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "user not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load user", err)
	}
	return u, nil
}
