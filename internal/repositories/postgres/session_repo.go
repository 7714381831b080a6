package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/skillatlas/skillatlas/internal/models"
	"github.com/skillatlas/skillatlas/internal/utils"
	"gorm.io/gorm"
)

type SessionRepository interface {
	Insert(ctx context.Context, s *models.Session) error
	Get(ctx context.Context, id string) (*models.Session, error)
	// Touch extends the rolling expiry window.
	Touch(ctx context.Context, id string, expiresAt time.Time) error
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type sessionRepo struct {
	db *gorm.DB
}

func NewSessionRepo(db *gorm.DB) SessionRepository {
	return &sessionRepo{db: db}
}

func (r *sessionRepo) Insert(ctx context.Context, s *models.Session) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *sessionRepo) Get(ctx context.Context, id string) (*models.Session, error) {
	var s models.Session
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &s, err
}

func (r *sessionRepo) Touch(ctx context.Context, id string, expiresAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Session{}).
		Where("id = ?", id).
		Update("expires_at", expiresAt).Error
}

func (r *sessionRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Session{}).Error
}

func (r *sessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at < ?", now).Delete(&models.Session{})
	return res.RowsAffected, res.Error
}
