package models

import "time"

type Skill struct {
	ID       string `gorm:"column:id;type:text;primaryKey" json:"id"`
	Name     string `gorm:"column:name;type:text;uniqueIndex" json:"name"`
	Category string `gorm:"column:category;type:text" json:"category"`

	DifficultyLevel       string `gorm:"column:difficulty_level;type:text" json:"difficultyLevel,omitempty"`
	EstimatedLearningTime int    `gorm:"column:estimated_learning_time;type:integer" json:"estimatedLearningTime,omitempty"`
	Description           string `gorm:"column:description;type:text" json:"description,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"createdAt"`
}

func (Skill) TableName() string { return "skills" }

// UserSkill records that a user holds a catalog skill. One row per
// (user, skill); extraction re-runs must not duplicate it.
type UserSkill struct {
	ID      string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID  string `gorm:"column:user_id;type:uuid;uniqueIndex:idx_user_skill" json:"userId"`
	SkillID string `gorm:"column:skill_id;type:text;uniqueIndex:idx_user_skill" json:"skillId"`

	ProficiencyLevel string `gorm:"column:proficiency_level;type:text" json:"proficiencyLevel,omitempty"`
	Source           string `gorm:"column:source;type:text" json:"source,omitempty"`

	AddedAt time.Time `gorm:"column:added_at;type:timestamptz" json:"addedAt"`
}

func (UserSkill) TableName() string { return "user_skills" }

// SkillPrerequisite is a directed edge: SkillID depends on PrerequisiteID.
// The catalog service rejects edges that would close a cycle.
type SkillPrerequisite struct {
	ID             string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	SkillID        string `gorm:"column:skill_id;type:text;uniqueIndex:idx_skill_prereq" json:"skillId"`
	PrerequisiteID string `gorm:"column:prerequisite_id;type:text;uniqueIndex:idx_skill_prereq" json:"prerequisiteId"`
}

func (SkillPrerequisite) TableName() string { return "skill_prerequisites" }

type LearningResource struct {
	ID      string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	SkillID string `gorm:"column:skill_id;type:text;index" json:"skillId"`

	Title       string `gorm:"column:title;type:text" json:"title"`
	Type        string `gorm:"column:type;type:text" json:"type"`
	URL         string `gorm:"column:url;type:text" json:"url,omitempty"`
	Description string `gorm:"column:description;type:text" json:"description,omitempty"`
	Difficulty  string `gorm:"column:difficulty;type:text" json:"difficulty,omitempty"`
	Duration    string `gorm:"column:duration;type:text" json:"duration,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"createdAt"`
}

func (LearningResource) TableName() string { return "learning_resources" }
