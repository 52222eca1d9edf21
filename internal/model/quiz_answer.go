package model

import (
	"time"

	"gorm.io/gorm"
)

type QuizAnswer struct {
	ID                   uint           `gorm:"primarykey" json:"id"`
	QuizSessionID        uint           `json:"quiz_session_id" gorm:"not null;index"`
	QuestionID           uint           `json:"question_id" gorm:"not null;index"`
	Question             Question       `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	UserAnswer           string         `json:"user_answer" gorm:"type:text;not null"`
	IsCorrect            bool           `json:"is_correct" gorm:"not null"`
	TimeTaken            int            `json:"time_taken"` // seconds
	AIFeedback           string         `json:"ai_feedback,omitempty" gorm:"type:text"`
	LearningTips         []string       `json:"learning_tips,omitempty" gorm:"serializer:json"`
	DifficultyAdjustment string         `json:"difficulty_adjustment,omitempty"` // "easier", "same", "harder"
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`
}
