package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/studyforge/studyforge/internal/model"
	"gorm.io/gorm"
)

type AchievementRepository interface {
	Seed(achievements []model.Achievement) error
	EarnedCodes(userID uuid.UUID) (map[string]bool, error)
	Award(userID uuid.UUID, code string) (*model.UserAchievement, error)
	ListByUser(userID uuid.UUID) ([]model.UserAchievement, error)
}

type achievementRepository struct {
	db *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) AchievementRepository {
	return &achievementRepository{db: db}
}

// Seed inserts catalog rows that are not present yet. Safe to run at startup.
func (r *achievementRepository) Seed(achievements []model.Achievement) error {
	for _, a := range achievements {
		var existing model.Achievement
		err := r.db.Where("code = ?", a.Code).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := r.db.Create(&a).Error; err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *achievementRepository) EarnedCodes(userID uuid.UUID) (map[string]bool, error) {
	var earned []model.UserAchievement
	err := r.db.Preload("Achievement").Where("user_id = ?", userID).Find(&earned).Error
	if err != nil {
		return nil, err
	}
	codes := make(map[string]bool, len(earned))
	for _, ua := range earned {
		codes[ua.Achievement.Code] = true
	}
	return codes, nil
}

func (r *achievementRepository) Award(userID uuid.UUID, code string) (*model.UserAchievement, error) {
	var achievement model.Achievement
	if err := r.db.Where("code = ?", code).First(&achievement).Error; err != nil {
		return nil, err
	}
	ua := model.UserAchievement{UserID: userID, AchievementID: achievement.ID}
	if err := r.db.Create(&ua).Error; err != nil {
		return nil, err
	}
	ua.Achievement = achievement
	return &ua, nil
}

func (r *achievementRepository) ListByUser(userID uuid.UUID) ([]model.UserAchievement, error) {
	var earned []model.UserAchievement
	err := r.db.Preload("Achievement").
		Where("user_id = ?", userID).
		Order("earned_at DESC").
		Find(&earned).Error
	if err != nil {
		return nil, err
	}
	return earned, nil
}
