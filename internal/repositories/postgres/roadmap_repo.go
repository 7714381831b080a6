package postgres

import (
	"context"
	"errors"

	"github.com/skillatlas/skillatlas/internal/models"
	"github.com/skillatlas/skillatlas/internal/utils"
	"gorm.io/gorm"
)

type RoadmapRepository interface {
	Insert(ctx context.Context, rm *models.Roadmap) error
	// LatestByUser returns the most recently created roadmap; each
	// generation call adds a new row, history is retained.
	LatestByUser(ctx context.Context, userID string) (*models.Roadmap, error)
}

type roadmapRepo struct {
	db *gorm.DB
}

func NewRoadmapRepo(db *gorm.DB) RoadmapRepository {
	return &roadmapRepo{db: db}
}

func (r *roadmapRepo) Insert(ctx context.Context, rm *models.Roadmap) error {
	return r.db.WithContext(ctx).Create(rm).Error
}

func (r *roadmapRepo) LatestByUser(ctx context.Context, userID string) (*models.Roadmap, error) {
	var row models.Roadmap
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &row, err
}
