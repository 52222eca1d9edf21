package service

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/studyforge/studyforge/internal/dto"
	"github.com/studyforge/studyforge/internal/repository"
)

const (
	defaultLeaderboardLimit = 50
	maxLeaderboardLimit     = 100
)

// ProgressService is the read/derive side: overview, leaderboard, dashboard.
// It consumes the aggregate rows the side-effect path maintains and never
// writes anything itself.
type ProgressService interface {
	GetProgress(userID uuid.UUID, subject, timeframe string) (*dto.ProgressResponse, error)
	GetLeaderboard(userID uuid.UUID, subject, timeframe string, limit int) (*dto.LeaderboardResponse, error)
	GetDashboardStats(userID uuid.UUID) (*dto.DashboardStatsResponse, error)
}

type progressService struct {
	progressRepo   repository.ProgressRepository
	sessionRepo    repository.QuizSessionRepository
	questionRepo   repository.QuestionRepository
	achievementSvc AchievementService
}

func NewProgressService(
	progressRepo repository.ProgressRepository,
	sessionRepo repository.QuizSessionRepository,
	questionRepo repository.QuestionRepository,
	achievementSvc AchievementService,
) ProgressService {
	return &progressService{
		progressRepo:   progressRepo,
		sessionRepo:    sessionRepo,
		questionRepo:   questionRepo,
		achievementSvc: achievementSvc,
	}
}

// TimeframeCutoff maps a timeframe keyword to its activity cutoff. Anything
// unrecognized (including "all") means no cutoff.
func TimeframeCutoff(timeframe string, now time.Time) time.Time {
	switch timeframe {
	case "week":
		return now.AddDate(0, 0, -7)
	case "month":
		return now.AddDate(0, 0, -30)
	case "year":
		return now.AddDate(0, 0, -365)
	default:
		return time.Unix(0, 0)
	}
}

func (s *progressService) GetProgress(userID uuid.UUID, subject, timeframe string) (*dto.ProgressResponse, error) {
	if timeframe == "" {
		timeframe = "week"
	}
	cutoff := TimeframeCutoff(timeframe, time.Now())

	progressRows, err := s.progressRepo.FindByUser(userID, subject)
	if err != nil {
		return nil, fmt.Errorf("error fetching progress: %w", err)
	}

	quizHistory, err := s.sessionRepo.FindCompleted(userID, subject, cutoff, 0)
	if err != nil {
		return nil, fmt.Errorf("error fetching quiz history: %w", err)
	}

	achievements, err := s.achievementSvc.ListByUser(userID)
	if err != nil {
		log.Error().Err(err).Msg("GetProgress: failed to fetch achievements")
		achievements = []dto.AchievementDTO{}
	}

	totalQuizzes := len(quizHistory)
	scoreSum := 0
	for _, quiz := range quizHistory {
		if quiz.Score != nil {
			scoreSum += *quiz.Score
		}
	}
	averageScore := 0
	if totalQuizzes > 0 {
		averageScore = int(math.Round(float64(scoreSum) / float64(totalQuizzes)))
	}

	totalPoints := 0
	currentStreak := 0
	longestStreak := 0
	subjectStats := make([]dto.SubjectStatsDTO, 0, len(progressRows))
	for i, row := range progressRows {
		totalPoints += row.TotalPoints
		if i == 0 {
			// Rows are ordered by last activity; the freshest row carries the
			// streak the user cares about.
			currentStreak = row.CurrentStreak
		}
		if row.LongestStreak > longestStreak {
			longestStreak = row.LongestStreak
		}

		accuracy := 0
		if row.TotalQuestionsAnswered > 0 {
			accuracy = int(math.Round(100 * float64(row.CorrectAnswers) / float64(row.TotalQuestionsAnswered)))
		}
		subjectStats = append(subjectStats, dto.SubjectStatsDTO{
			Subject:        row.Subject,
			AverageScore:   row.AverageScore,
			TotalQuestions: row.TotalQuestionsAnswered,
			CorrectAnswers: row.CorrectAnswers,
			Accuracy:       accuracy,
			WeakTopics:     orEmpty(row.WeakTopics),
			StrongTopics:   orEmpty(row.StrongTopics),
			TotalPoints:    row.TotalPoints,
			LastActivity:   row.LastActivityAt,
		})
	}

	recentQuizzes := make([]dto.RecentQuizDTO, 0, 10)
	for _, quiz := range quizHistory {
		if len(recentQuizzes) == 10 {
			break
		}
		recentQuizzes = append(recentQuizzes, dto.RecentQuizDTO{
			Date:          quiz.CompletedAt,
			Score:         quiz.Score,
			Subject:       quiz.Subject,
			QuestionCount: quiz.QuestionCount,
		})
	}

	return &dto.ProgressResponse{
		Overview: dto.ProgressOverviewDTO{
			TotalQuizzes:      totalQuizzes,
			AverageScore:      averageScore,
			TotalPoints:       totalPoints,
			CurrentStreak:     currentStreak,
			LongestStreak:     longestStreak,
			AchievementsCount: len(achievements),
		},
		SubjectStats:  subjectStats,
		RecentQuizzes: recentQuizzes,
		Achievements:  achievements,
		Timeframe:     timeframe,
	}, nil
}

func (s *progressService) GetLeaderboard(userID uuid.UUID, subject, timeframe string, limit int) (*dto.LeaderboardResponse, error) {
	if timeframe == "" {
		timeframe = "month"
	}
	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}
	if limit > maxLeaderboardLimit {
		limit = maxLeaderboardLimit
	}
	cutoff := TimeframeCutoff(timeframe, time.Now())

	rows, err := s.progressRepo.Leaderboard(cutoff, subject, limit)
	if err != nil {
		return nil, fmt.Errorf("error fetching leaderboard: %w", err)
	}

	entries := make([]dto.LeaderboardEntryDTO, 0, len(rows))
	var currentUserRank *int
	for i, row := range rows {
		accuracy := 0
		if row.TotalQuestions > 0 {
			accuracy = int(math.Round(100 * float64(row.CorrectAnswers) / float64(row.TotalQuestions)))
		}
		isCurrentUser := row.UserID == userID
		entry := dto.LeaderboardEntryDTO{
			Rank:            i + 1,
			UserID:          row.UserID.String(),
			DisplayName:     "Student " + row.UserID.String()[:8],
			TotalPoints:     row.TotalPoints,
			AverageScore:    int(math.Round(row.AvgScore)),
			TotalQuestions:  row.TotalQuestions,
			Accuracy:        accuracy,
			BestStreak:      row.BestStreak,
			SubjectsStudied: row.SubjectsStudied,
			IsCurrentUser:   isCurrentUser,
		}
		if isCurrentUser {
			rank := entry.Rank
			currentUserRank = &rank
		}
		entries = append(entries, entry)
	}

	return &dto.LeaderboardResponse{
		Leaderboard:     entries,
		CurrentUserRank: currentUserRank,
		Timeframe:       timeframe,
		Subject:         subject,
	}, nil
}

func (s *progressService) GetDashboardStats(userID uuid.UUID) (*dto.DashboardStatsResponse, error) {
	progressRows, err := s.progressRepo.FindByUser(userID, "")
	if err != nil {
		return nil, fmt.Errorf("error fetching progress: %w", err)
	}

	totalQuizzes := 0
	totalPoints := 0
	currentStreak := 0
	averageSum := 0.0
	for _, row := range progressRows {
		totalQuizzes += row.QuizzesTaken
		totalPoints += row.TotalPoints
		averageSum += row.AverageScore
		if row.CurrentStreak > currentStreak {
			currentStreak = row.CurrentStreak
		}
	}
	averageScore := 0
	if len(progressRows) > 0 {
		averageScore = int(math.Round(averageSum / float64(len(progressRows))))
	}

	recentQuizzes, err := s.sessionRepo.FindCompleted(userID, "", time.Unix(0, 0), 5)
	if err != nil {
		log.Error().Err(err).Msg("GetDashboardStats: failed to fetch recent quizzes")
	}
	recentQuestions, err := s.questionRepo.FindRecentByUser(userID, 3)
	if err != nil {
		log.Error().Err(err).Msg("GetDashboardStats: failed to fetch recent questions")
	}

	activity := make([]dto.ActivityDTO, 0, len(recentQuizzes)+len(recentQuestions))
	for _, quiz := range recentQuizzes {
		activity = append(activity, dto.ActivityDTO{
			Type:      "quiz",
			Subject:   quiz.Subject,
			Score:     quiz.Score,
			CreatedAt: quiz.CompletedAt,
		})
	}
	for _, q := range recentQuestions {
		createdAt := q.CreatedAt
		activity = append(activity, dto.ActivityDTO{
			Type:      "question_generation",
			Subject:   q.Subject,
			CreatedAt: &createdAt,
		})
	}
	sort.SliceStable(activity, func(i, j int) bool {
		ti, tj := activity[i].CreatedAt, activity[j].CreatedAt
		if ti == nil {
			return false
		}
		if tj == nil {
			return true
		}
		return ti.After(*tj)
	})
	if len(activity) > 5 {
		activity = activity[:5]
	}

	goals := make([]dto.GoalDTO, 0, 3)
	if totalQuizzes < 10 {
		goals = append(goals, dto.GoalDTO{Title: "Complete 10 Quizzes", Progress: totalQuizzes, Target: 10})
	}
	if currentStreak < 7 {
		goals = append(goals, dto.GoalDTO{Title: "7-Day Study Streak", Progress: currentStreak, Target: 7})
	}
	if averageScore < 80 {
		goals = append(goals, dto.GoalDTO{Title: "Achieve 80% Average", Progress: averageScore, Target: 80})
	}

	return &dto.DashboardStatsResponse{
		TotalQuizzes:   totalQuizzes,
		AverageScore:   averageScore,
		TotalPoints:    totalPoints,
		CurrentStreak:  currentStreak,
		RecentActivity: activity,
		UpcomingGoals:  goals,
	}, nil
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
