package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyforge/studyforge/internal/model"
)

func TestCheckQuizAchievements(t *testing.T) {
	userID := uuid.New()

	catalog := map[string]model.Achievement{}
	for i, a := range DefaultAchievements() {
		a.ID = uint(i + 1)
		catalog[a.Code] = a
	}
	award := func(uid uuid.UUID, code string) (*model.UserAchievement, error) {
		a, ok := catalog[code]
		if !ok {
			return nil, errors.New("unknown achievement code")
		}
		return &model.UserAchievement{
			UserID:        uid,
			AchievementID: a.ID,
			Achievement:   a,
			EarnedAt:      time.Now(),
		}, nil
	}

	t.Run("first quiz awards first_quiz", func(t *testing.T) {
		achievementRepo := &mockAchievementRepository{
			earnedCodesFunc: func(uuid.UUID) (map[string]bool, error) { return map[string]bool{}, nil },
			awardFunc:       award,
		}
		progressRepo := &mockProgressRepository{
			findByUserFunc: func(uuid.UUID, string) ([]model.UserProgress, error) {
				// Accrual has not landed yet; the triggering quiz is counted in.
				return []model.UserProgress{}, nil
			},
		}
		svc := NewAchievementService(achievementRepo, progressRepo)

		awarded := svc.CheckQuizAchievements(userID, 70, 110)
		require.Len(t, awarded, 1)
		assert.Equal(t, "first_quiz", awarded[0].Code)
		assert.NotNil(t, awarded[0].EarnedAt)
	})

	t.Run("perfect score awards perfectionist once", func(t *testing.T) {
		achievementRepo := &mockAchievementRepository{
			earnedCodesFunc: func(uuid.UUID) (map[string]bool, error) {
				return map[string]bool{"first_quiz": true}, nil
			},
			awardFunc: award,
		}
		progressRepo := &mockProgressRepository{
			findByUserFunc: func(uuid.UUID, string) ([]model.UserProgress, error) {
				return []model.UserProgress{{Subject: "Biology", QuizzesTaken: 3, TotalPoints: 200}}, nil
			},
		}
		svc := NewAchievementService(achievementRepo, progressRepo)

		awarded := svc.CheckQuizAchievements(userID, 100, 100)
		require.Len(t, awarded, 1)
		assert.Equal(t, "perfect_score", awarded[0].Code)
	})

	t.Run("thresholds include the triggering quiz", func(t *testing.T) {
		achievementRepo := &mockAchievementRepository{
			earnedCodesFunc: func(uuid.UUID) (map[string]bool, error) {
				return map[string]bool{"first_quiz": true}, nil
			},
			awardFunc: award,
		}
		progressRepo := &mockProgressRepository{
			findByUserFunc: func(uuid.UUID, string) ([]model.UserProgress, error) {
				// 9 stored quizzes + the one just finished = 10;
				// 950 stored points + 110 just earned = 1060.
				return []model.UserProgress{{Subject: "Biology", QuizzesTaken: 9, TotalPoints: 950}}, nil
			},
		}
		svc := NewAchievementService(achievementRepo, progressRepo)

		awarded := svc.CheckQuizAchievements(userID, 70, 110)
		codes := make([]string, 0, len(awarded))
		for _, a := range awarded {
			codes = append(codes, a.Code)
		}
		assert.Contains(t, codes, "quiz_master_10")
		assert.Contains(t, codes, "points_1000")
	})

	t.Run("already earned achievements are not re-awarded", func(t *testing.T) {
		achievementRepo := &mockAchievementRepository{
			earnedCodesFunc: func(uuid.UUID) (map[string]bool, error) {
				return map[string]bool{"first_quiz": true, "perfect_score": true}, nil
			},
			awardFunc: func(uuid.UUID, string) (*model.UserAchievement, error) {
				t.Fatal("award must not run for earned achievements")
				return nil, nil
			},
		}
		progressRepo := &mockProgressRepository{
			findByUserFunc: func(uuid.UUID, string) ([]model.UserProgress, error) {
				return []model.UserProgress{{QuizzesTaken: 2, TotalPoints: 100}}, nil
			},
		}
		svc := NewAchievementService(achievementRepo, progressRepo)

		awarded := svc.CheckQuizAchievements(userID, 100, 50)
		assert.Empty(t, awarded)
	})

	t.Run("repository failure yields no awards, not an error", func(t *testing.T) {
		achievementRepo := &mockAchievementRepository{
			earnedCodesFunc: func(uuid.UUID) (map[string]bool, error) {
				return nil, errors.New("connection reset")
			},
		}
		svc := NewAchievementService(achievementRepo, &mockProgressRepository{})

		awarded := svc.CheckQuizAchievements(userID, 70, 110)
		assert.NotNil(t, awarded)
		assert.Empty(t, awarded)
	})
}

func TestDefaultAchievementsCatalog(t *testing.T) {
	catalog := DefaultAchievements()
	require.Len(t, catalog, 5)

	codes := map[string]bool{}
	for _, a := range catalog {
		assert.NotEmpty(t, a.Code)
		assert.NotEmpty(t, a.Name)
		assert.False(t, codes[a.Code], "duplicate code %s", a.Code)
		codes[a.Code] = true
	}
}
