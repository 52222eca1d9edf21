package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/studyforge/studyforge/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LeaderboardRow is one user's aggregate over their progress rows, produced by
// the grouped leaderboard query.
type LeaderboardRow struct {
	UserID          uuid.UUID
	TotalPoints     int
	AvgScore        float64
	TotalQuestions  int
	CorrectAnswers  int
	BestStreak      int
	SubjectsStudied int
}

type ProgressRepository interface {
	FindByUser(userID uuid.UUID, subject string) ([]model.UserProgress, error)
	RecordAnswer(ctx context.Context, userID uuid.UUID, subject, topic string, isCorrect bool, timeTaken int) error
	RecordCompletion(ctx context.Context, userID uuid.UUID, subject string, score int, points int) error
	Leaderboard(since time.Time, subject string, limit int) ([]LeaderboardRow, error)
}

type progressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) FindByUser(userID uuid.UUID, subject string) ([]model.UserProgress, error) {
	query := r.db.Where("user_id = ?", userID)
	if subject != "" {
		query = query.Where("subject = ?", subject)
	}
	var rows []model.UserProgress
	if err := query.Order("last_activity_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// RecordAnswer is the per-answer aggregate update (the stored-procedure
// analogue): counters, streak and topic lists on the user's subject row.
func (r *progressRepository) RecordAnswer(ctx context.Context, userID uuid.UUID, subject, topic string, isCorrect bool, timeTaken int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		progress, err := lockProgressRow(tx, userID, subject)
		if err != nil {
			return err
		}

		now := time.Now()
		progress.TotalQuestionsAnswered++
		if isCorrect {
			progress.CorrectAnswers++
		}
		progress.CurrentStreak = nextStreak(progress.CurrentStreak, progress.LastActivityAt, now)
		if progress.CurrentStreak > progress.LongestStreak {
			progress.LongestStreak = progress.CurrentStreak
		}
		progress.WeakTopics, progress.StrongTopics = adjustTopics(progress.WeakTopics, progress.StrongTopics, topic, isCorrect)
		progress.LastActivityAt = now

		return tx.Save(progress).Error
	})
}

// RecordCompletion folds a finished session into the aggregate: quiz count,
// running average score and point accrual.
func (r *progressRepository) RecordCompletion(ctx context.Context, userID uuid.UUID, subject string, score int, points int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		progress, err := lockProgressRow(tx, userID, subject)
		if err != nil {
			return err
		}

		taken := float64(progress.QuizzesTaken)
		progress.AverageScore = (progress.AverageScore*taken + float64(score)) / (taken + 1)
		progress.QuizzesTaken++
		progress.TotalPoints += points
		progress.LastActivityAt = time.Now()

		return tx.Save(progress).Error
	})
}

func (r *progressRepository) Leaderboard(since time.Time, subject string, limit int) ([]LeaderboardRow, error) {
	query := r.db.Model(&model.UserProgress{}).
		Select(`user_id,
			SUM(total_points) AS total_points,
			AVG(average_score) AS avg_score,
			SUM(total_questions_answered) AS total_questions,
			SUM(correct_answers) AS correct_answers,
			MAX(current_streak) AS best_streak,
			COUNT(DISTINCT subject) AS subjects_studied`).
		Where("last_activity_at >= ?", since).
		Group("user_id").
		Order("total_points DESC, avg_score DESC").
		Limit(limit)
	if subject != "" {
		query = query.Where("subject = ?", subject)
	}

	var rows []LeaderboardRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// lockProgressRow fetches the user's subject row under FOR UPDATE so that
// concurrent RecordAnswer/RecordCompletion transactions serialize on it
// instead of overwriting each other's counters.
func lockProgressRow(tx *gorm.DB, userID uuid.UUID, subject string) (*model.UserProgress, error) {
	var progress model.UserProgress
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND subject = ?", userID, subject).
		First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		progress = model.UserProgress{UserID: userID, Subject: subject}
		if err := tx.Create(&progress).Error; err != nil {
			return nil, err
		}
		return &progress, nil
	}
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// nextStreak counts consecutive qualifying study days. Days are calendar
// dates in the server's timezone, not fixed 24h windows, so an answer at
// 23:50 followed by one at 00:10 still extends the streak.
func nextStreak(current int, lastActivity, now time.Time) int {
	if lastActivity.IsZero() {
		return 1
	}
	last := lastActivity.In(now.Location())
	switch {
	case sameDay(last, now):
		if current == 0 {
			return 1
		}
		return current
	case sameDay(last.AddDate(0, 0, 1), now):
		return current + 1
	default:
		return 1
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

const topicListCap = 10

func adjustTopics(weak, strong []string, topic string, isCorrect bool) ([]string, []string) {
	if topic == "" {
		return weak, strong
	}
	if isCorrect {
		weak = removeTopic(weak, topic)
		strong = appendTopic(strong, topic)
	} else {
		strong = removeTopic(strong, topic)
		weak = appendTopic(weak, topic)
	}
	return weak, strong
}

func appendTopic(topics []string, topic string) []string {
	for _, t := range topics {
		if t == topic {
			return topics
		}
	}
	topics = append(topics, topic)
	if len(topics) > topicListCap {
		topics = topics[len(topics)-topicListCap:]
	}
	return topics
}

func removeTopic(topics []string, topic string) []string {
	out := topics[:0]
	for _, t := range topics {
		if t != topic {
			out = append(out, t)
		}
	}
	return out
}
