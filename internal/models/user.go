package models

import "time"

type User struct {
	ID           string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Email        string `gorm:"column:email;type:text;uniqueIndex" json:"email"`
	PasswordHash string `gorm:"column:password_hash;type:text" json:"-"`
	FirstName    string `gorm:"column:first_name;type:text" json:"firstName"`
	LastName     string `gorm:"column:last_name;type:text" json:"lastName"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updatedAt"`
}

func (User) TableName() string { return "users" }
