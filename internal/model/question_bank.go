package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QuestionBank records one document ingestion: the batch of questions
// generated from a single uploaded file.
type QuestionBank struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	UserID        uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;index"`
	Name          string         `json:"name" gorm:"not null"`
	Subject       string         `json:"subject" gorm:"not null"`
	Description   string         `json:"description,omitempty" gorm:"type:text"`
	QuestionCount int            `json:"question_count"`
	SourceFile    string         `json:"source_file,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
