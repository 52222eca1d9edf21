package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SessionStatusActive    = "active"
	SessionStatusCompleted = "completed"
)

type QuizSession struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	UserID             uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;index"`
	Subject            string         `json:"subject" gorm:"not null;index"`
	QuestionCount      int            `json:"question_count" gorm:"not null"`
	Status             string         `json:"status" gorm:"not null;default:'active';index"`
	AdaptiveDifficulty string         `json:"adaptive_difficulty"`
	Score              *int           `json:"score,omitempty"` // nil until completed
	AIAnalysis         string         `json:"ai_analysis,omitempty" gorm:"type:text"`
	Recommendations    []string       `json:"recommendations,omitempty" gorm:"serializer:json"`
	CompletedAt        *time.Time     `json:"completed_at,omitempty"`
	Answers            []QuizAnswer   `json:"answers,omitempty" gorm:"foreignKey:QuizSessionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}
