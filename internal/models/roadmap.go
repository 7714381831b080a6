package models

import (
	"time"

	"gorm.io/datatypes"
)

// Roadmap stores one generated learning plan. Milestones are kept as an
// opaque structured document; the "current" roadmap for a user is the
// most recently created row.
type Roadmap struct {
	ID     string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID string `gorm:"column:user_id;type:uuid;index" json:"userId"`
	RoleID string `gorm:"column:role_id;type:text" json:"roleId"`

	Name              string         `gorm:"column:name;type:text" json:"name"`
	EstimatedDuration int            `gorm:"column:estimated_duration;type:integer" json:"estimatedDuration"`
	Milestones        datatypes.JSON `gorm:"column:milestones;type:jsonb" json:"milestones"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updatedAt"`
}

func (Roadmap) TableName() string { return "roadmaps" }

// Milestone and SkillStep describe the JSON the generation adapter asks
// the model for, and the shape of the Milestones document above.
type Milestone struct {
	Name           string      `json:"name"`
	Phase          string      `json:"phase"`
	EstimatedWeeks int         `json:"estimatedWeeks"`
	Skills         []SkillStep `json:"skills"`
}

type SkillStep struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	EstimatedHours int      `json:"estimatedHours"`
	IsPrerequisite bool     `json:"isPrerequisite"`
	Resources      []string `json:"resources"`
}
