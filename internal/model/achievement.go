package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Achievement struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Code        string         `json:"code" gorm:"not null;uniqueIndex"`
	Name        string         `json:"name" gorm:"not null"`
	Description string         `json:"description"`
	Icon        string         `json:"icon,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

type UserAchievement struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	UserID        uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_user_achievement"`
	AchievementID uint           `json:"achievement_id" gorm:"not null;uniqueIndex:idx_user_achievement"`
	Achievement   Achievement    `json:"achievement,omitempty" gorm:"foreignKey:AchievementID"`
	EarnedAt      time.Time      `json:"earned_at" gorm:"autoCreateTime"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
