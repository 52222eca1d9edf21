package repository

import (
	"github.com/studyforge/studyforge/internal/model"
	"gorm.io/gorm"
)

type QuestionBankRepository interface {
	Create(bank *model.QuestionBank) error
}

type questionBankRepository struct {
	db *gorm.DB
}

func NewQuestionBankRepository(db *gorm.DB) QuestionBankRepository {
	return &questionBankRepository{db: db}
}

func (r *questionBankRepository) Create(bank *model.QuestionBank) error {
	return r.db.Create(bank).Error
}
