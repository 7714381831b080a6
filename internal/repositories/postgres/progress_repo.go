package postgres

import (
	"context"
	"errors"

	"github.com/skillatlas/skillatlas/internal/models"
	"github.com/skillatlas/skillatlas/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository interface {
	Upsert(ctx context.Context, rec *models.ProgressRecord) error
	GetByUserSkill(ctx context.Context, userID, skillID string) (*models.ProgressRecord, error)
	ListByUser(ctx context.Context, userID string) ([]models.ProgressRecord, error)
}

type progressRepo struct {
	db *gorm.DB
}

func NewProgressRepo(db *gorm.DB) ProgressRepository {
	return &progressRepo{db: db}
}

// Upsert is a single atomic conditional write against the (user_id,
// skill_id) unique index, not a read-then-write pair, so concurrent
// toggles for the same pair serialize at the store.
func (r *progressRepo) Upsert(ctx context.Context, rec *models.ProgressRecord) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "skill_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "completed_at", "notes"}),
		}).
		Create(rec).Error
}

func (r *progressRepo) GetByUserSkill(ctx context.Context, userID, skillID string) (*models.ProgressRecord, error) {
	var row models.ProgressRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND skill_id = ?", userID, skillID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &row, err
}

func (r *progressRepo) ListByUser(ctx context.Context, userID string) ([]models.ProgressRecord, error) {
	var rows []models.ProgressRecord
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&rows).Error
	return rows, err
}
