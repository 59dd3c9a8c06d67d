package models

import (
	"time"

	"github.com/google/uuid"
)

type Resume struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index:idx_resumes_user_uploaded,priority:1" json:"user_id"`
	Filename    string    `gorm:"type:text" json:"filename"`
	FilePath    string    `gorm:"type:text" json:"-"`
	TextContent string    `gorm:"type:text" json:"text_content"`
	Indexed     bool      `gorm:"not null;default:false" json:"-"`
	UploadedAt  time.Time `gorm:"not null;index:idx_resumes_user_uploaded,priority:2,sort:desc" json:"uploaded_at"`
}

func (Resume) TableName() string {
	return "resumes"
}
