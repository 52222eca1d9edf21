package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/studyforge/studyforge/internal/dto"
	"github.com/studyforge/studyforge/internal/model"
	"github.com/studyforge/studyforge/internal/repository"
)

const (
	defaultGenerationCount = 5
	defaultBankCount       = 10
	sourceContentLimit     = 1000
)

// GenerationService covers the content-to-question and note-summarising
// flows: each delegates structured generation to the oracle and persists the
// result for the requesting user.
type GenerationService interface {
	GenerateQuestions(ctx context.Context, userID uuid.UUID, req dto.GenerateQuestionsRequest) (*dto.GenerateQuestionsResponse, error)
	GenerateFromPDF(ctx context.Context, userID uuid.UUID, fileData []byte, mimeType, filename, subject, difficulty string, questionCount int) (*dto.GenerateFromPDFResponse, error)
	SummarizeNotes(ctx context.Context, userID uuid.UUID, req dto.SummarizeNotesRequest) (*dto.SummarizeNotesResponse, error)
}

type generationService struct {
	questionRepo repository.QuestionRepository
	bankRepo     repository.QuestionBankRepository
	summaryRepo  repository.NoteSummaryRepository
	gemini       GeminiLLMService
}

func NewGenerationService(
	questionRepo repository.QuestionRepository,
	bankRepo repository.QuestionBankRepository,
	summaryRepo repository.NoteSummaryRepository,
	gemini GeminiLLMService,
) GenerationService {
	return &generationService{
		questionRepo: questionRepo,
		bankRepo:     bankRepo,
		summaryRepo:  summaryRepo,
		gemini:       gemini,
	}
}

func (s *generationService) GenerateQuestions(ctx context.Context, userID uuid.UUID, req dto.GenerateQuestionsRequest) (*dto.GenerateQuestionsResponse, error) {
	count := req.Count
	if count <= 0 {
		count = defaultGenerationCount
	}
	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = model.DifficultyMedium
	}
	questionType := req.QuestionType
	if questionType == "" {
		questionType = model.QuestionTypeMCQ
	}

	generated, err := s.gemini.GenerateQuestions(ctx, req.Content, req.Subject, difficulty, questionType, count)
	if err != nil {
		log.Error().Err(err).Str("subject", req.Subject).Msg("GenerateQuestions: oracle call failed")
		return nil, err
	}

	rows := questionsToModels(generated, userID, req.Subject, truncate(req.Content, sourceContentLimit), "text")
	if err := s.questionRepo.CreateBatch(rows); err != nil {
		log.Error().Err(err).Str("subject", req.Subject).Msg("GenerateQuestions: failed to persist questions")
		return nil, fmt.Errorf("failed to save questions: %w", err)
	}

	var questionDTOs []dto.GeneratedQuestionDTO
	if err := copier.Copy(&questionDTOs, &generated); err != nil {
		return nil, fmt.Errorf("error preparing response: %w", err)
	}
	return &dto.GenerateQuestionsResponse{
		Questions:  questionDTOs,
		SavedCount: len(rows),
	}, nil
}

func (s *generationService) GenerateFromPDF(ctx context.Context, userID uuid.UUID, fileData []byte, mimeType, filename, subject, difficulty string, questionCount int) (*dto.GenerateFromPDFResponse, error) {
	if questionCount <= 0 {
		questionCount = defaultBankCount
	}
	if difficulty == "" {
		difficulty = model.DifficultyMedium
	}

	extracted, err := s.gemini.ExtractDocument(ctx, fileData, mimeType)
	if err != nil {
		log.Error().Err(err).Str("filename", filename).Msg("GenerateFromPDF: document extraction failed")
		return nil, err
	}

	generated, err := s.gemini.BuildQuestionBank(ctx, extracted, subject, difficulty, questionCount)
	if err != nil {
		log.Error().Err(err).Str("filename", filename).Msg("GenerateFromPDF: question bank generation failed")
		return nil, err
	}

	rows := questionsToModels(generated, userID, subject, extracted.Title, "pdf")
	if err := s.questionRepo.CreateBatch(rows); err != nil {
		log.Error().Err(err).Str("subject", subject).Msg("GenerateFromPDF: failed to persist questions")
		return nil, fmt.Errorf("failed to save questions: %w", err)
	}

	bankName := extracted.Title
	if bankName == "" {
		bankName = "Question Bank - " + filename
	}
	bank := model.QuestionBank{
		UserID:        userID,
		Name:          bankName,
		Subject:       subject,
		Description:   extracted.Summary,
		QuestionCount: len(generated),
		SourceFile:    filename,
	}
	var bankID *uint
	if err := s.bankRepo.Create(&bank); err != nil {
		// The questions are already saved; a missing bank record is cosmetic.
		log.Error().Err(err).Str("filename", filename).Msg("GenerateFromPDF: failed to create question bank record")
	} else {
		bankID = &bank.ID
	}

	var questionDTOs []dto.GeneratedQuestionDTO
	if err := copier.Copy(&questionDTOs, &generated); err != nil {
		return nil, fmt.Errorf("error preparing response: %w", err)
	}
	return &dto.GenerateFromPDFResponse{
		Success: true,
		ExtractedContent: dto.ExtractedContentDTO{
			Title:       extracted.Title,
			KeyConcepts: extracted.KeyConcepts,
			Summary:     extracted.Summary,
			Content:     extracted.Content,
		},
		Questions:      questionDTOs,
		QuestionBankID: bankID,
		SavedCount:     len(rows),
	}, nil
}

func (s *generationService) SummarizeNotes(ctx context.Context, userID uuid.UUID, req dto.SummarizeNotesRequest) (*dto.SummarizeNotesResponse, error) {
	summary, err := s.gemini.SummarizeNotes(ctx, req.Content, req.Subject)
	if err != nil {
		log.Error().Err(err).Str("subject", req.Subject).Msg("SummarizeNotes: oracle call failed")
		return nil, err
	}

	keyConcepts := make([]model.KeyConcept, 0, len(summary.KeyConcepts))
	for _, kc := range summary.KeyConcepts {
		keyConcepts = append(keyConcepts, model.KeyConcept{
			Concept:    kc.Concept,
			Definition: kc.Definition,
			Importance: kc.Importance,
		})
	}
	record := model.NoteSummary{
		UserID:              userID,
		Subject:             req.Subject,
		Title:               summary.Title,
		OriginalContent:     req.Content,
		Summary:             summary.Summary,
		KeyConcepts:         keyConcepts,
		StudyTips:           summary.StudyTips,
		PotentialExamTopics: summary.PotentialExamTopics,
		DifficultyAreas:     summary.DifficultyAreas,
	}
	if err := s.summaryRepo.Create(&record); err != nil {
		log.Error().Err(err).Str("subject", req.Subject).Msg("SummarizeNotes: failed to persist summary")
		return nil, fmt.Errorf("failed to save summary: %w", err)
	}

	var summaryDTO dto.NotesSummaryDTO
	if err := copier.Copy(&summaryDTO, summary); err != nil {
		return nil, fmt.Errorf("error preparing response: %w", err)
	}
	return &dto.SummarizeNotesResponse{
		Success:   true,
		Summary:   summaryDTO,
		SummaryID: record.ID,
	}, nil
}

func questionsToModels(generated []GeneratedQuestion, userID uuid.UUID, subject, sourceContent, sourceType string) []model.Question {
	rows := make([]model.Question, 0, len(generated))
	for _, q := range generated {
		rows = append(rows, model.Question{
			UserID:        userID,
			Subject:       subject,
			Topic:         q.Topic,
			Question:      q.Question,
			Type:          q.Type,
			Difficulty:    q.Difficulty,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
			Keywords:      q.Keywords,
			SourceContent: sourceContent,
			SourceType:    sourceType,
		})
	}
	return rows
}
