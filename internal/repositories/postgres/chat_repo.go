package postgres

import (
	"context"

	"github.com/skillatlas/skillatlas/internal/models"
	"gorm.io/gorm"
)

type ChatRepository interface {
	Insert(ctx context.Context, msg *models.ChatMessage) error
	// ListByUser returns the conversation in chronological order.
	ListByUser(ctx context.Context, userID string, limit int) ([]models.ChatMessage, error)
	// LatestN returns the newest n messages, oldest first.
	LatestN(ctx context.Context, userID string, n int) ([]models.ChatMessage, error)
}

type chatRepo struct {
	db *gorm.DB
}

func NewChatRepo(db *gorm.DB) ChatRepository {
	return &chatRepo{db: db}
}

func (r *chatRepo) Insert(ctx context.Context, msg *models.ChatMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *chatRepo) ListByUser(ctx context.Context, userID string, limit int) ([]models.ChatMessage, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []models.ChatMessage
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *chatRepo) LatestN(ctx context.Context, userID string, n int) ([]models.ChatMessage, error) {
	if n <= 0 {
		n = 20
	}
	var rows []models.ChatMessage
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(n).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	// repo returns DESC; callers want chronological
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return rows, nil
}
