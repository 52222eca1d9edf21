package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/studyforge/studyforge/internal/model"
	"gorm.io/gorm"
)

type QuizSessionRepository interface {
	Create(session *model.QuizSession) error
	FindByIDAndUser(id uint, userID uuid.UUID) (*model.QuizSession, error)
	FindByIDWithAnswers(id uint, userID uuid.UUID) (*model.QuizSession, error)
	MarkCompleted(id uint, score int, analysis string, recommendations []string, completedAt time.Time) (bool, error)
	FindCompleted(userID uuid.UUID, subject string, since time.Time, limit int) ([]model.QuizSession, error)
}

type quizSessionRepository struct {
	db *gorm.DB
}

func NewQuizSessionRepository(db *gorm.DB) QuizSessionRepository {
	return &quizSessionRepository{db: db}
}

func (r *quizSessionRepository) Create(session *model.QuizSession) error {
	return r.db.Create(session).Error
}

func (r *quizSessionRepository) FindByIDAndUser(id uint, userID uuid.UUID) (*model.QuizSession, error) {
	var session model.QuizSession
	err := r.db.Where("user_id = ?", userID).First(&session, id).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *quizSessionRepository) FindByIDWithAnswers(id uint, userID uuid.UUID) (*model.QuizSession, error) {
	var session model.QuizSession
	err := r.db.
		Preload("Answers").
		Preload("Answers.Question").
		Where("user_id = ?", userID).
		First(&session, id).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// MarkCompleted performs the single allowed status transition. The update is
// conditional on the session still being active, so concurrent or repeated
// completion calls collapse into one effective finalization; the boolean
// reports whether this call was the effective one.
func (r *quizSessionRepository) MarkCompleted(id uint, score int, analysis string, recommendations []string, completedAt time.Time) (bool, error) {
	result := r.db.Model(&model.QuizSession{}).
		Where("id = ? AND status = ?", id, model.SessionStatusActive).
		Updates(map[string]interface{}{
			"status":          model.SessionStatusCompleted,
			"score":           score,
			"ai_analysis":     analysis,
			"recommendations": recommendations,
			"completed_at":    completedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *quizSessionRepository) FindCompleted(userID uuid.UUID, subject string, since time.Time, limit int) ([]model.QuizSession, error) {
	query := r.db.
		Where("user_id = ? AND status = ?", userID, model.SessionStatusCompleted).
		Where("completed_at >= ?", since)
	if subject != "" {
		query = query.Where("subject = ?", subject)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var sessions []model.QuizSession
	if err := query.Order("completed_at DESC").Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}
