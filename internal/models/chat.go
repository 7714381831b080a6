package models

import "time"

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage is one side of the assistant conversation. Append-only.
type ChatMessage struct {
	ID     string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID string `gorm:"column:user_id;type:uuid;index" json:"userId"`

	Role    string `gorm:"column:role;type:text" json:"role"`
	Content string `gorm:"column:content;type:text" json:"content"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;index" json:"createdAt"`
}

func (ChatMessage) TableName() string { return "chat_messages" }
