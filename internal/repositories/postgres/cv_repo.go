package postgres

import (
	"context"
	"errors"

	"github.com/skillatlas/skillatlas/internal/models"
	"github.com/skillatlas/skillatlas/internal/utils"
	"gorm.io/gorm"
)

type CVRepository interface {
	Insert(ctx context.Context, cv *models.UserCV) error
	LatestByUser(ctx context.Context, userID string) (*models.UserCV, error)
	RecentByUser(ctx context.Context, userID string, limit int) ([]models.UserCV, error)
}

type cvRepo struct {
	db *gorm.DB
}

func NewCVRepo(db *gorm.DB) CVRepository {
	return &cvRepo{db: db}
}

func (r *cvRepo) Insert(ctx context.Context, cv *models.UserCV) error {
	return r.db.WithContext(ctx).Create(cv).Error
}

func (r *cvRepo) LatestByUser(ctx context.Context, userID string) (*models.UserCV, error) {
	var row models.UserCV
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("uploaded_at DESC").
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &row, err
}

func (r *cvRepo) RecentByUser(ctx context.Context, userID string, limit int) ([]models.UserCV, error) {
	if limit <= 0 {
		limit = 5
	}
	var rows []models.UserCV
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("uploaded_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
