package models

import (
	"time"

	"github.com/lib/pq"
)

type Role struct {
	ID          string `gorm:"column:id;type:text;primaryKey" json:"id"`
	Name        string `gorm:"column:name;type:text;uniqueIndex" json:"name"`
	Category    string `gorm:"column:category;type:text" json:"category"`
	Description string `gorm:"column:description;type:text" json:"description"`

	Responsibilities pq.StringArray `gorm:"column:responsibilities;type:text[]" json:"responsibilities"`

	AverageSalary string `gorm:"column:average_salary;type:text" json:"averageSalary,omitempty"`
	DemandLevel   string `gorm:"column:demand_level;type:text" json:"demandLevel,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"createdAt"`
}

func (Role) TableName() string { return "roles" }

// RoleSkill links a role to one required skill with its weighting.
type RoleSkill struct {
	ID      string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	RoleID  string `gorm:"column:role_id;type:text;uniqueIndex:idx_role_skill" json:"roleId"`
	SkillID string `gorm:"column:skill_id;type:text;uniqueIndex:idx_role_skill" json:"skillId"`

	Importance       string `gorm:"column:importance;type:text" json:"importance"`
	ProficiencyLevel string `gorm:"column:proficiency_level;type:text" json:"proficiencyLevel,omitempty"`
}

func (RoleSkill) TableName() string { return "role_skills" }
