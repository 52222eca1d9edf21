package service

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/studyforge/studyforge/internal/dto"
	"github.com/studyforge/studyforge/internal/model"
	"github.com/studyforge/studyforge/internal/repository"
)

const (
	achievementFirstQuiz    = "first_quiz"
	achievementPerfectScore = "perfect_score"
	achievementQuizMaster   = "quiz_master_10"
	achievementWeekStreak   = "streak_7"
	achievementPointsHoard  = "points_1000"
)

// DefaultAchievements is the seed catalog applied at startup.
func DefaultAchievements() []model.Achievement {
	return []model.Achievement{
		{Code: achievementFirstQuiz, Name: "First Steps", Description: "Complete your first quiz", Icon: "🎯"},
		{Code: achievementPerfectScore, Name: "Perfectionist", Description: "Score 100% on a quiz", Icon: "🏆"},
		{Code: achievementQuizMaster, Name: "Quiz Master", Description: "Complete 10 quizzes", Icon: "📚"},
		{Code: achievementWeekStreak, Name: "Consistency", Description: "Study 7 days in a row", Icon: "🔥"},
		{Code: achievementPointsHoard, Name: "Point Collector", Description: "Earn 1000 total points", Icon: "💎"},
	}
}

// AchievementService runs the post-completion achievement checks. Failures are
// logged and swallowed: achievements are advisory bookkeeping, never a reason
// to fail the primary operation.
type AchievementService interface {
	CheckQuizAchievements(userID uuid.UUID, score int, pointsEarned int) []dto.AchievementDTO
	ListByUser(userID uuid.UUID) ([]dto.AchievementDTO, error)
}

type achievementService struct {
	achievementRepo repository.AchievementRepository
	progressRepo    repository.ProgressRepository
}

func NewAchievementService(achievementRepo repository.AchievementRepository, progressRepo repository.ProgressRepository) AchievementService {
	return &achievementService{achievementRepo: achievementRepo, progressRepo: progressRepo}
}

func (s *achievementService) CheckQuizAchievements(userID uuid.UUID, score int, pointsEarned int) []dto.AchievementDTO {
	earned, err := s.achievementRepo.EarnedCodes(userID)
	if err != nil {
		log.Error().Err(err).Msg("Achievement check: failed to load earned achievements")
		return []dto.AchievementDTO{}
	}

	// The completion that triggered this check may not have been folded into
	// the aggregates yet (accrual is fire-and-forget), so it is counted in
	// explicitly.
	quizzesTaken := 1
	totalPoints := pointsEarned
	longestStreak := 0
	if rows, err := s.progressRepo.FindByUser(userID, ""); err != nil {
		log.Warn().Err(err).Msg("Achievement check: failed to load progress aggregates")
	} else {
		for _, row := range rows {
			quizzesTaken += row.QuizzesTaken
			totalPoints += row.TotalPoints
			if row.LongestStreak > longestStreak {
				longestStreak = row.LongestStreak
			}
		}
	}

	candidates := make([]string, 0, 3)
	if quizzesTaken >= 1 {
		candidates = append(candidates, achievementFirstQuiz)
	}
	if score == 100 {
		candidates = append(candidates, achievementPerfectScore)
	}
	if quizzesTaken >= 10 {
		candidates = append(candidates, achievementQuizMaster)
	}
	if longestStreak >= 7 {
		candidates = append(candidates, achievementWeekStreak)
	}
	if totalPoints >= 1000 {
		candidates = append(candidates, achievementPointsHoard)
	}

	awarded := []dto.AchievementDTO{}
	for _, code := range candidates {
		if earned[code] {
			continue
		}
		ua, err := s.achievementRepo.Award(userID, code)
		if err != nil {
			log.Warn().Err(err).Str("code", code).Msg("Achievement check: award failed")
			continue
		}
		earnedAt := ua.EarnedAt
		awarded = append(awarded, dto.AchievementDTO{
			ID:          ua.Achievement.ID,
			Code:        ua.Achievement.Code,
			Name:        ua.Achievement.Name,
			Description: ua.Achievement.Description,
			Icon:        ua.Achievement.Icon,
			EarnedAt:    &earnedAt,
		})
	}
	return awarded
}

func (s *achievementService) ListByUser(userID uuid.UUID) ([]dto.AchievementDTO, error) {
	earned, err := s.achievementRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AchievementDTO, 0, len(earned))
	for _, ua := range earned {
		earnedAt := ua.EarnedAt
		out = append(out, dto.AchievementDTO{
			ID:          ua.Achievement.ID,
			Code:        ua.Achievement.Code,
			Name:        ua.Achievement.Name,
			Description: ua.Achievement.Description,
			Icon:        ua.Achievement.Icon,
			EarnedAt:    &earnedAt,
		})
	}
	return out, nil
}
