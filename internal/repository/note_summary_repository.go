package repository

import (
	"github.com/studyforge/studyforge/internal/model"
	"gorm.io/gorm"
)

type NoteSummaryRepository interface {
	Create(summary *model.NoteSummary) error
}

type noteSummaryRepository struct {
	db *gorm.DB
}

func NewNoteSummaryRepository(db *gorm.DB) NoteSummaryRepository {
	return &noteSummaryRepository{db: db}
}

func (r *noteSummaryRepository) Create(summary *model.NoteSummary) error {
	return r.db.Create(summary).Error
}
