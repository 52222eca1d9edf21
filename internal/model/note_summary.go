package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type KeyConcept struct {
	Concept    string `json:"concept"`
	Definition string `json:"definition"`
	Importance string `json:"importance"` // "high", "medium", "low"
}

type NoteSummary struct {
	ID                  uint           `gorm:"primarykey" json:"id"`
	UserID              uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;index"`
	Subject             string         `json:"subject" gorm:"not null"`
	Title               string         `json:"title" gorm:"not null"`
	OriginalContent     string         `json:"original_content" gorm:"type:text"`
	Summary             string         `json:"summary" gorm:"type:text"`
	KeyConcepts         []KeyConcept   `json:"key_concepts,omitempty" gorm:"serializer:json"`
	StudyTips           []string       `json:"study_tips,omitempty" gorm:"serializer:json"`
	PotentialExamTopics []string       `json:"potential_exam_topics,omitempty" gorm:"serializer:json"`
	DifficultyAreas     []string       `json:"difficulty_areas,omitempty" gorm:"serializer:json"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`
}
