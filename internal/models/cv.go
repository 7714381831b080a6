package models

import (
	"time"

	"gorm.io/datatypes"
)

type UserCV struct {
	ID       string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID   string `gorm:"column:user_id;type:uuid;index" json:"userId"`
	FileName string `gorm:"column:file_name;type:text" json:"fileName"`

	// Plain text extracted from the PDF; the source of truth for analysis.
	FileContent string `gorm:"column:file_content;type:text" json:"fileContent"`

	// Object key in GCS when archival is configured, empty otherwise.
	FilePath string `gorm:"column:file_path;type:text" json:"filePath,omitempty"`

	ExtractedSkills datatypes.JSON `gorm:"column:extracted_skills;type:jsonb" json:"extractedSkills"`

	UploadedAt time.Time `gorm:"column:uploaded_at;type:timestamptz;index" json:"uploadedAt"`
}

func (UserCV) TableName() string { return "user_cvs" }
