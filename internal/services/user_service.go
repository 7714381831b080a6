package services

import (
	"context"
	"time"

	"github.com/skillatlas/skillatlas/internal/models"
	pgrepo "github.com/skillatlas/skillatlas/internal/repositories/postgres"
	"github.com/skillatlas/skillatlas/internal/utils"
)

type UserStats struct {
	SkillsIdentified int `json:"skillsIdentified"`
	SkillsCompleted  int `json:"skillsCompleted"`
	EstimatedHours   int `json:"estimatedHours"`
}

type ActivityItem struct {
	Title     string `json:"title"`
	Timestamp string `json:"timestamp"`
}

type UserService interface {
	Stats(ctx context.Context, userID string) (*UserStats, error)
	Activity(ctx context.Context, userID string) ([]ActivityItem, error)
}

type userService struct {
	skills   pgrepo.SkillRepository
	progress pgrepo.ProgressRepository
	cvs      pgrepo.CVRepository
}

func NewUserService(skills pgrepo.SkillRepository, progress pgrepo.ProgressRepository, cvs pgrepo.CVRepository) UserService {
	return &userService{skills: skills, progress: progress, cvs: cvs}
}

func (s *userService) Stats(ctx context.Context, userID string) (*UserStats, error) {
	const op = "UserService.Stats"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	owned, err := s.skills.UserSkills(ctx, userID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load user skills", err)
	}
	progress, err := s.progress.ListByUser(ctx, userID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load progress", err)
	}

	completedIDs := make([]string, 0)
	for _, p := range progress {
		if p.Status == models.ProgressCompleted {
			completedIDs = append(completedIDs, p.SkillID)
		}
	}

	hours := 0
	if len(completedIDs) > 0 {
		completed, err := s.skills.GetByIDs(ctx, completedIDs)
		if err != nil {
			return nil, utils.E(utils.CodeInternal, op, "failed to load completed skills", err)
		}
		for _, sk := range completed {
			hours += sk.EstimatedLearningTime
		}
	}

	return &UserStats{
		SkillsIdentified: len(owned),
		SkillsCompleted:  len(completedIDs),
		EstimatedHours:   hours,
	}, nil
}

func (s *userService) Activity(ctx context.Context, userID string) ([]ActivityItem, error) {
	const op = "UserService.Activity"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	cvs, err := s.cvs.RecentByUser(ctx, userID, 5)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load recent uploads", err)
	}

	items := make([]ActivityItem, 0, len(cvs))
	for _, cv := range cvs {
		items = append(items, ActivityItem{
			Title:     "Uploaded CV: " + cv.FileName,
			Timestamp: cv.UploadedAt.Format(time.RFC3339),
		})
	}
	return items, nil
}
