package dto

import "time"

type ProgressOverviewDTO struct {
	TotalQuizzes      int `json:"total_quizzes"`
	AverageScore      int `json:"average_score"`
	TotalPoints       int `json:"total_points"`
	CurrentStreak     int `json:"current_streak"`
	LongestStreak     int `json:"longest_streak"`
	AchievementsCount int `json:"achievements_count"`
}

type SubjectStatsDTO struct {
	Subject        string    `json:"subject"`
	AverageScore   float64   `json:"average_score"`
	TotalQuestions int       `json:"total_questions"`
	CorrectAnswers int       `json:"correct_answers"`
	Accuracy       int       `json:"accuracy"`
	WeakTopics     []string  `json:"weak_topics"`
	StrongTopics   []string  `json:"strong_topics"`
	TotalPoints    int       `json:"total_points"`
	LastActivity   time.Time `json:"last_activity"`
}

type RecentQuizDTO struct {
	Date          *time.Time `json:"date"`
	Score         *int       `json:"score"`
	Subject       string     `json:"subject"`
	QuestionCount int        `json:"question_count"`
}

type ProgressResponse struct {
	Overview      ProgressOverviewDTO `json:"overview"`
	SubjectStats  []SubjectStatsDTO   `json:"subject_stats"`
	RecentQuizzes []RecentQuizDTO     `json:"recent_quizzes"`
	Achievements  []AchievementDTO    `json:"achievements"`
	Timeframe     string              `json:"timeframe"`
}

type LeaderboardEntryDTO struct {
	Rank            int    `json:"rank"`
	UserID          string `json:"user_id"`
	DisplayName     string `json:"display_name"`
	TotalPoints     int    `json:"total_points"`
	AverageScore    int    `json:"average_score"`
	TotalQuestions  int    `json:"total_questions"`
	Accuracy        int    `json:"accuracy"`
	BestStreak      int    `json:"best_streak"`
	SubjectsStudied int    `json:"subjects_studied"`
	IsCurrentUser   bool   `json:"is_current_user"`
}

type LeaderboardResponse struct {
	Leaderboard     []LeaderboardEntryDTO `json:"leaderboard"`
	CurrentUserRank *int                  `json:"current_user_rank"`
	Timeframe       string                `json:"timeframe"`
	Subject         string                `json:"subject,omitempty"`
}

type ActivityDTO struct {
	Type      string     `json:"type"` // "quiz", "question_generation"
	Subject   string     `json:"subject"`
	Score     *int       `json:"score,omitempty"`
	CreatedAt *time.Time `json:"created_at"`
}

type GoalDTO struct {
	Title    string `json:"title"`
	Progress int    `json:"progress"`
	Target   int    `json:"target"`
}

type DashboardStatsResponse struct {
	TotalQuizzes   int           `json:"total_quizzes"`
	AverageScore   int           `json:"average_score"`
	TotalPoints    int           `json:"total_points"`
	CurrentStreak  int           `json:"current_streak"`
	RecentActivity []ActivityDTO `json:"recent_activity"`
	UpcomingGoals  []GoalDTO     `json:"upcoming_goals"`
}
