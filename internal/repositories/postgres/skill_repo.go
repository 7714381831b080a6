package postgres

import (
	"context"
	"errors"

	"github.com/skillatlas/skillatlas/internal/models"
	"github.com/skillatlas/skillatlas/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OwnedSkill is one skill a user holds, joined with the catalog entry.
type OwnedSkill struct {
	SkillID          string `json:"skillId"`
	SkillName        string `json:"skillName"`
	Category         string `json:"category"`
	ProficiencyLevel string `json:"proficiencyLevel,omitempty"`
	Source           string `json:"source,omitempty"`
}

type SkillRepository interface {
	List(ctx context.Context) ([]models.Skill, error)
	GetByID(ctx context.Context, id string) (*models.Skill, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.Skill, error)
	ListByNames(ctx context.Context, names []string) ([]models.Skill, error)
	Insert(ctx context.Context, s *models.Skill) error

	UserSkills(ctx context.Context, userID string) ([]OwnedSkill, error)
	LinkUserSkill(ctx context.Context, link *models.UserSkill) error

	Prerequisites(ctx context.Context) ([]models.SkillPrerequisite, error)
	InsertPrerequisite(ctx context.Context, p *models.SkillPrerequisite) error
}

type skillRepo struct {
	db *gorm.DB
}

func NewSkillRepo(db *gorm.DB) SkillRepository {
	return &skillRepo{db: db}
}

func (r *skillRepo) List(ctx context.Context) ([]models.Skill, error) {
	var rows []models.Skill
	err := r.db.WithContext(ctx).Order("name").Find(&rows).Error
	return rows, err
}

func (r *skillRepo) GetByID(ctx context.Context, id string) (*models.Skill, error) {
	var row models.Skill
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &row, err
}

func (r *skillRepo) GetByIDs(ctx context.Context, ids []string) ([]models.Skill, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.Skill
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error
	return rows, err
}

func (r *skillRepo) ListByNames(ctx context.Context, names []string) ([]models.Skill, error) {
	if len(names) == 0 {
		return nil, nil
	}
	var rows []models.Skill
	err := r.db.WithContext(ctx).Where("name IN ?", names).Find(&rows).Error
	return rows, err
}

func (r *skillRepo) Insert(ctx context.Context, s *models.Skill) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *skillRepo) UserSkills(ctx context.Context, userID string) ([]OwnedSkill, error) {
	var rows []OwnedSkill
	err := r.db.WithContext(ctx).
		Model(&models.UserSkill{}).
		Select("skills.id AS skill_id, skills.name AS skill_name, skills.category AS category, user_skills.proficiency_level AS proficiency_level, user_skills.source AS source").
		Joins("INNER JOIN skills ON skills.id = user_skills.skill_id").
		Where("user_skills.user_id = ?", userID).
		Scan(&rows).Error
	return rows, err
}

// LinkUserSkill is idempotent: re-extracting the same CV must not
// duplicate (user, skill) rows.
func (r *skillRepo) LinkUserSkill(ctx context.Context, link *models.UserSkill) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "skill_id"}},
			DoNothing: true,
		}).
		Create(link).Error
}

func (r *skillRepo) Prerequisites(ctx context.Context) ([]models.SkillPrerequisite, error) {
	var rows []models.SkillPrerequisite
	err := r.db.WithContext(ctx).Find(&rows).Error
	return rows, err
}

func (r *skillRepo) InsertPrerequisite(ctx context.Context, p *models.SkillPrerequisite) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "skill_id"}, {Name: "prerequisite_id"}},
			DoNothing: true,
		}).
		Create(p).Error
}
