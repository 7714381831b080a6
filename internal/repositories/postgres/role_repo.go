package postgres

import (
	"context"
	"errors"

	"github.com/skillatlas/skillatlas/internal/models"
	"github.com/skillatlas/skillatlas/internal/utils"
	"gorm.io/gorm"
)

// RequiredSkill is one row of a role's skill requirements, joined with the
// skill catalog. Order follows the catalog insert order.
type RequiredSkill struct {
	SkillID          string `json:"skillId"`
	SkillName        string `json:"skillName"`
	Category         string `json:"category"`
	Importance       string `json:"importance"`
	ProficiencyLevel string `json:"proficiencyLevel,omitempty"`
}

type RoleRepository interface {
	List(ctx context.Context) ([]models.Role, error)
	GetByID(ctx context.Context, id string) (*models.Role, error)
	Categories(ctx context.Context) ([]string, error)
	Insert(ctx context.Context, role *models.Role) error
	RequiredSkills(ctx context.Context, roleID string) ([]RequiredSkill, error)
	Count(ctx context.Context) (int64, error)
}

type roleRepo struct {
	db *gorm.DB
}

func NewRoleRepo(db *gorm.DB) RoleRepository {
	return &roleRepo{db: db}
}

func (r *roleRepo) List(ctx context.Context) ([]models.Role, error) {
	var rows []models.Role
	err := r.db.WithContext(ctx).Order("name").Find(&rows).Error
	return rows, err
}

func (r *roleRepo) GetByID(ctx context.Context, id string) (*models.Role, error) {
	var row models.Role
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &row, err
}

func (r *roleRepo) Categories(ctx context.Context) ([]string, error) {
	var out []string
	err := r.db.WithContext(ctx).
		Model(&models.Role{}).
		Distinct("category").
		Order("category").
		Pluck("category", &out).Error
	return out, err
}

func (r *roleRepo) Insert(ctx context.Context, role *models.Role) error {
	return r.db.WithContext(ctx).Create(role).Error
}

func (r *roleRepo) RequiredSkills(ctx context.Context, roleID string) ([]RequiredSkill, error) {
	var rows []RequiredSkill
	err := r.db.WithContext(ctx).
		Model(&models.RoleSkill{}).
		Select("skills.id AS skill_id, skills.name AS skill_name, skills.category AS category, role_skills.importance AS importance, role_skills.proficiency_level AS proficiency_level").
		Joins("INNER JOIN skills ON skills.id = role_skills.skill_id").
		Where("role_skills.role_id = ?", roleID).
		Scan(&rows).Error
	return rows, err
}

func (r *roleRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Role{}).Count(&n).Error
	return n, err
}
