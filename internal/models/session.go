package models

import "time"

// Session is the server-side record behind the opaque session cookie.
// Expiry is rolling: every authenticated request pushes ExpiresAt forward.
type Session struct {
	ID     string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID string `gorm:"column:user_id;type:uuid;index" json:"user_id"`

	Email     string `gorm:"column:email;type:text" json:"email"`
	FirstName string `gorm:"column:first_name;type:text" json:"first_name"`
	LastName  string `gorm:"column:last_name;type:text" json:"last_name"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
	ExpiresAt time.Time `gorm:"column:expires_at;type:timestamptz;index" json:"expires_at"`
}

func (Session) TableName() string { return "sessions" }
