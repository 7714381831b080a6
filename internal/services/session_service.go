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

// SessionTTL is the rolling expiry window for the server-side session.
const SessionTTL = 7 * 24 * time.Hour

type SessionService interface {
	// Start creates a server-side session for the user; the returned id
	// is the only thing the cookie carries.
	Start(ctx context.Context, u *models.User) (*models.Session, error)
	// Validate loads the session, rejects expired ones, and extends the
	// rolling window.
	Validate(ctx context.Context, sessionID string) (*models.Session, error)
	Destroy(ctx context.Context, sessionID string) error
}

type sessionService struct {
	sessions pgrepo.SessionRepository
}

func NewSessionService(sessions pgrepo.SessionRepository) SessionService {
	return &sessionService{sessions: sessions}
}

func (s *sessionService) Start(ctx context.Context, u *models.User) (*models.Session, error) {
	const op = "SessionService.Start"

	if u == nil || u.ID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user is required", nil)
	}

	now := time.Now().UTC()
	sess := &models.Session{
		ID:        uuid.NewString(),
		UserID:    u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: now,
		ExpiresAt: now.Add(SessionTTL),
	}
	if err := s.sessions.Insert(ctx, sess); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create session", err)
	}
	return sess, nil
}

func (s *sessionService) Validate(ctx context.Context, sessionID string) (*models.Session, error) {
	const op = "SessionService.Validate"

	if sessionID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "unauthorized", nil)
	}

	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeUnauthorized, op, "unauthorized", nil)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load session", err)
	}

	now := time.Now().UTC()
	if !sess.ExpiresAt.After(now) {
		_ = s.sessions.Delete(ctx, sessionID)
		return nil, utils.E(utils.CodeUnauthorized, op, "session expired", nil)
	}

	sess.ExpiresAt = now.Add(SessionTTL)
	if err := s.sessions.Touch(ctx, sessionID, sess.ExpiresAt); err != nil {
		// losing one refresh only shortens the window; not fatal
		return sess, nil
	}
	return sess, nil
}

func (s *sessionService) Destroy(ctx context.Context, sessionID string) error {
	const op = "SessionService.Destroy"

	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to destroy session", err)
	}
	return nil
}
