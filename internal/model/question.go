package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

const (
	QuestionTypeMCQ         = "mcq"
	QuestionTypeTrueFalse   = "true_false"
	QuestionTypeConceptual  = "conceptual"
	QuestionTypeApplication = "application"
)

// PointsForDifficulty is the single source of the per-correct-answer award.
func PointsForDifficulty(difficulty string) int {
	switch difficulty {
	case DifficultyEasy:
		return 10
	case DifficultyMedium:
		return 20
	case DifficultyHard:
		return 30
	default:
		return 10
	}
}

type Question struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	UserID        uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;index"`
	Subject       string         `json:"subject" gorm:"not null;index"`
	Topic         string         `json:"topic" gorm:"not null"`
	Question      string         `json:"question" gorm:"type:text;not null"`
	Type          string         `json:"type" gorm:"not null"` // "mcq", "true_false", "conceptual", "application"
	Difficulty    string         `json:"difficulty" gorm:"not null"`
	Options       []string       `json:"options,omitempty" gorm:"serializer:json"` // mcq only
	CorrectAnswer string         `json:"correct_answer" gorm:"type:text;not null"`
	Explanation   string         `json:"explanation" gorm:"type:text"`
	Keywords      []string       `json:"keywords,omitempty" gorm:"serializer:json"`
	SourceContent string         `json:"source_content,omitempty" gorm:"type:text"`
	SourceType    string         `json:"source_type,omitempty"` // "text", "pdf"
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
