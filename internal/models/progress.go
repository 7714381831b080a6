package models

import "time"

const (
	ProgressNotStarted = "not_started"
	ProgressInProgress = "in_progress"
	ProgressCompleted  = "completed"
)

// ProgressRecord tracks one user's status on one skill. The unique index
// backs an atomic ON CONFLICT upsert, so concurrent toggles for the same
// pair can never produce a duplicate row.
type ProgressRecord struct {
	ID      string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID  string `gorm:"column:user_id;type:uuid;uniqueIndex:idx_progress_user_skill" json:"userId"`
	SkillID string `gorm:"column:skill_id;type:text;uniqueIndex:idx_progress_user_skill" json:"skillId"`

	Status      string     `gorm:"column:status;type:text" json:"status"`
	CompletedAt *time.Time `gorm:"column:completed_at;type:timestamptz" json:"completedAt,omitempty"`
	Notes       string     `gorm:"column:notes;type:text" json:"notes,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"createdAt"`
}

func (ProgressRecord) TableName() string { return "user_progress" }
