package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserProgress is the per-user, per-subject rollup maintained by the
// side-effect path after answers and completions. The quiz lifecycle reads it
// for the adaptive narrative and the progress/leaderboard endpoints; it never
// treats it as authoritative for the session score itself.
type UserProgress struct {
	ID                     uint           `gorm:"primarykey" json:"id"`
	UserID                 uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_user_subject"`
	Subject                string         `json:"subject" gorm:"not null;uniqueIndex:idx_user_subject"`
	QuizzesTaken           int            `json:"quizzes_taken"`
	TotalQuestionsAnswered int            `json:"total_questions_answered"`
	CorrectAnswers         int            `json:"correct_answers"`
	AverageScore           float64        `json:"average_score"`
	TotalPoints            int            `json:"total_points"`
	CurrentStreak          int            `json:"current_streak"` // consecutive qualifying study days
	LongestStreak          int            `json:"longest_streak"`
	WeakTopics             []string       `json:"weak_topics,omitempty" gorm:"serializer:json"`
	StrongTopics           []string       `json:"strong_topics,omitempty" gorm:"serializer:json"`
	LastActivityAt         time.Time      `json:"last_activity_at"`
	CreatedAt              time.Time      `json:"created_at"`
	UpdatedAt              time.Time      `json:"updated_at"`
	DeletedAt              gorm.DeletedAt `gorm:"index" json:"-"`
}
