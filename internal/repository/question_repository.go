package repository

import (
	"github.com/google/uuid"
	"github.com/studyforge/studyforge/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	CreateBatch(questions []model.Question) error
	FindByID(id uint) (*model.Question, error)
	FindBySubject(subject string, limit int) ([]model.Question, error)
	FindRecentByUser(userID uuid.UUID, limit int) ([]model.Question, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) CreateBatch(questions []model.Question) error {
	return r.db.Create(&questions).Error
}

func (r *questionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	if err := r.db.First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

// FindBySubject returns the candidate pool for adaptive selection.
func (r *questionRepository) FindBySubject(subject string, limit int) ([]model.Question, error) {
	var questions []model.Question
	if err := r.db.Where("subject = ?", subject).Limit(limit).Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) FindRecentByUser(userID uuid.UUID, limit int) ([]model.Question, error) {
	var questions []model.Question
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Limit(limit).Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}
