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

type ProgressService interface {
	// Update upserts the (user, skill) progress row. completed_at is set
	// only when the status becomes completed, and cleared otherwise.
	// Any status is reachable from any other.
	Update(ctx context.Context, userID, skillID, status, notes string) (*models.ProgressRecord, error)
	ListByUser(ctx context.Context, userID string) ([]models.ProgressRecord, error)
}

type progressService struct {
	progress pgrepo.ProgressRepository
	skills   pgrepo.SkillRepository
}

func NewProgressService(progress pgrepo.ProgressRepository, skills pgrepo.SkillRepository) ProgressService {
	return &progressService{progress: progress, skills: skills}
}

func validStatus(status string) bool {
	switch status {
	case models.ProgressNotStarted, models.ProgressInProgress, models.ProgressCompleted:
		return true
	}
	return false
}

func (s *progressService) Update(ctx context.Context, userID, skillID, status, notes string) (*models.ProgressRecord, error) {
	const op = "ProgressService.Update"

	if userID == "" || skillID == "" || status == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "skill_id and status are required", nil)
	}
	if !validStatus(status) {
		return nil, utils.E(utils.CodeInvalidArgument, op, "status must be not_started, in_progress, or completed", nil)
	}

	if _, err := s.skills.GetByID(ctx, skillID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "skill not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load skill", err)
	}

	now := time.Now().UTC()
	rec := &models.ProgressRecord{
		ID:        uuid.NewString(),
		UserID:    userID,
		SkillID:   skillID,
		Status:    status,
		Notes:     notes,
		CreatedAt: now,
	}
	if status == models.ProgressCompleted {
		rec.CompletedAt = &now
	}

	if err := s.progress.Upsert(ctx, rec); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to upsert progress", err)
	}

	// re-read: on conflict the stored row keeps its original id
	row, err := s.progress.GetByUserSkill(ctx, userID, skillID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load progress", err)
	}
	return row, nil
}

func (s *progressService) ListByUser(ctx context.Context, userID string) ([]models.ProgressRecord, error) {
	const op = "ProgressService.ListByUser"

	rows, err := s.progress.ListByUser(ctx, userID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list progress", err)
	}
	return rows, nil
}
