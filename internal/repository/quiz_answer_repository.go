package repository

import (
	"github.com/studyforge/studyforge/internal/model"
	"gorm.io/gorm"
)

type QuizAnswerRepository interface {
	Create(answer *model.QuizAnswer) error
}

type quizAnswerRepository struct {
	db *gorm.DB
}

func NewQuizAnswerRepository(db *gorm.DB) QuizAnswerRepository {
	return &quizAnswerRepository{db: db}
}

func (r *quizAnswerRepository) Create(answer *model.QuizAnswer) error {
	return r.db.Create(answer).Error
}
