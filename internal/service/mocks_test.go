package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/studyforge/studyforge/internal/dto"
	"github.com/studyforge/studyforge/internal/model"
	"github.com/studyforge/studyforge/internal/repository"
)

// Mock repositories and oracle, func-field style: unset methods fail loudly.

type mockQuestionRepository struct {
	createBatchFunc      func(questions []model.Question) error
	findByIDFunc         func(id uint) (*model.Question, error)
	findBySubjectFunc    func(subject string, limit int) ([]model.Question, error)
	findRecentByUserFunc func(userID uuid.UUID, limit int) ([]model.Question, error)
}

func (m *mockQuestionRepository) CreateBatch(questions []model.Question) error {
	if m.createBatchFunc != nil {
		return m.createBatchFunc(questions)
	}
	return errors.New("not implemented")
}

func (m *mockQuestionRepository) FindByID(id uint) (*model.Question, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockQuestionRepository) FindBySubject(subject string, limit int) ([]model.Question, error) {
	if m.findBySubjectFunc != nil {
		return m.findBySubjectFunc(subject, limit)
	}
	return nil, errors.New("not implemented")
}

func (m *mockQuestionRepository) FindRecentByUser(userID uuid.UUID, limit int) ([]model.Question, error) {
	if m.findRecentByUserFunc != nil {
		return m.findRecentByUserFunc(userID, limit)
	}
	return nil, errors.New("not implemented")
}

type mockQuizSessionRepository struct {
	createFunc              func(session *model.QuizSession) error
	findByIDAndUserFunc     func(id uint, userID uuid.UUID) (*model.QuizSession, error)
	findByIDWithAnswersFunc func(id uint, userID uuid.UUID) (*model.QuizSession, error)
	markCompletedFunc       func(id uint, score int, analysis string, recommendations []string, completedAt time.Time) (bool, error)
	findCompletedFunc       func(userID uuid.UUID, subject string, since time.Time, limit int) ([]model.QuizSession, error)
}

func (m *mockQuizSessionRepository) Create(session *model.QuizSession) error {
	if m.createFunc != nil {
		return m.createFunc(session)
	}
	return errors.New("not implemented")
}

func (m *mockQuizSessionRepository) FindByIDAndUser(id uint, userID uuid.UUID) (*model.QuizSession, error) {
	if m.findByIDAndUserFunc != nil {
		return m.findByIDAndUserFunc(id, userID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockQuizSessionRepository) FindByIDWithAnswers(id uint, userID uuid.UUID) (*model.QuizSession, error) {
	if m.findByIDWithAnswersFunc != nil {
		return m.findByIDWithAnswersFunc(id, userID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockQuizSessionRepository) MarkCompleted(id uint, score int, analysis string, recommendations []string, completedAt time.Time) (bool, error) {
	if m.markCompletedFunc != nil {
		return m.markCompletedFunc(id, score, analysis, recommendations, completedAt)
	}
	return false, errors.New("not implemented")
}

func (m *mockQuizSessionRepository) FindCompleted(userID uuid.UUID, subject string, since time.Time, limit int) ([]model.QuizSession, error) {
	if m.findCompletedFunc != nil {
		return m.findCompletedFunc(userID, subject, since, limit)
	}
	return nil, errors.New("not implemented")
}

type mockQuizAnswerRepository struct {
	createFunc func(answer *model.QuizAnswer) error
}

func (m *mockQuizAnswerRepository) Create(answer *model.QuizAnswer) error {
	if m.createFunc != nil {
		return m.createFunc(answer)
	}
	return errors.New("not implemented")
}

type mockProgressRepository struct {
	findByUserFunc       func(userID uuid.UUID, subject string) ([]model.UserProgress, error)
	recordAnswerFunc     func(ctx context.Context, userID uuid.UUID, subject, topic string, isCorrect bool, timeTaken int) error
	recordCompletionFunc func(ctx context.Context, userID uuid.UUID, subject string, score int, points int) error
	leaderboardFunc      func(since time.Time, subject string, limit int) ([]repository.LeaderboardRow, error)
}

func (m *mockProgressRepository) FindByUser(userID uuid.UUID, subject string) ([]model.UserProgress, error) {
	if m.findByUserFunc != nil {
		return m.findByUserFunc(userID, subject)
	}
	return nil, errors.New("not implemented")
}

func (m *mockProgressRepository) RecordAnswer(ctx context.Context, userID uuid.UUID, subject, topic string, isCorrect bool, timeTaken int) error {
	if m.recordAnswerFunc != nil {
		return m.recordAnswerFunc(ctx, userID, subject, topic, isCorrect, timeTaken)
	}
	return errors.New("not implemented")
}

func (m *mockProgressRepository) RecordCompletion(ctx context.Context, userID uuid.UUID, subject string, score int, points int) error {
	if m.recordCompletionFunc != nil {
		return m.recordCompletionFunc(ctx, userID, subject, score, points)
	}
	return errors.New("not implemented")
}

func (m *mockProgressRepository) Leaderboard(since time.Time, subject string, limit int) ([]repository.LeaderboardRow, error) {
	if m.leaderboardFunc != nil {
		return m.leaderboardFunc(since, subject, limit)
	}
	return nil, errors.New("not implemented")
}

type mockAchievementRepository struct {
	seedFunc        func(achievements []model.Achievement) error
	earnedCodesFunc func(userID uuid.UUID) (map[string]bool, error)
	awardFunc       func(userID uuid.UUID, code string) (*model.UserAchievement, error)
	listByUserFunc  func(userID uuid.UUID) ([]model.UserAchievement, error)
}

func (m *mockAchievementRepository) Seed(achievements []model.Achievement) error {
	if m.seedFunc != nil {
		return m.seedFunc(achievements)
	}
	return errors.New("not implemented")
}

func (m *mockAchievementRepository) EarnedCodes(userID uuid.UUID) (map[string]bool, error) {
	if m.earnedCodesFunc != nil {
		return m.earnedCodesFunc(userID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAchievementRepository) Award(userID uuid.UUID, code string) (*model.UserAchievement, error) {
	if m.awardFunc != nil {
		return m.awardFunc(userID, code)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAchievementRepository) ListByUser(userID uuid.UUID) ([]model.UserAchievement, error) {
	if m.listByUserFunc != nil {
		return m.listByUserFunc(userID)
	}
	return nil, errors.New("not implemented")
}

type mockAchievementService struct {
	checkQuizAchievementsFunc func(userID uuid.UUID, score int, pointsEarned int) []dto.AchievementDTO
	listByUserFunc            func(userID uuid.UUID) ([]dto.AchievementDTO, error)
}

func (m *mockAchievementService) CheckQuizAchievements(userID uuid.UUID, score int, pointsEarned int) []dto.AchievementDTO {
	if m.checkQuizAchievementsFunc != nil {
		return m.checkQuizAchievementsFunc(userID, score, pointsEarned)
	}
	return []dto.AchievementDTO{}
}

func (m *mockAchievementService) ListByUser(userID uuid.UUID) ([]dto.AchievementDTO, error) {
	if m.listByUserFunc != nil {
		return m.listByUserFunc(userID)
	}
	return []dto.AchievementDTO{}, nil
}

type mockGeminiService struct {
	selectAdaptiveQuestionsFunc func(ctx context.Context, subject string, count int, preferredDifficulty string, stats *model.UserProgress, candidates []model.Question) (*AdaptiveSelection, error)
	answerFeedbackFunc          func(ctx context.Context, question *model.Question, userAnswer string, timeTaken int, isCorrect bool) (*AnswerFeedback, error)
	analyzeSessionFunc          func(ctx context.Context, subject string, score, correctCount, totalCount int, averageTime float64, answers []model.QuizAnswer) (*QuizAnalysis, error)
	generateQuestionsFunc       func(ctx context.Context, content, subject, difficulty, questionType string, count int) ([]GeneratedQuestion, error)
	extractDocumentFunc         func(ctx context.Context, data []byte, mimeType string) (*ExtractedContent, error)
	buildQuestionBankFunc       func(ctx context.Context, extracted *ExtractedContent, subject, difficulty string, count int) ([]GeneratedQuestion, error)
	summarizeNotesFunc          func(ctx context.Context, content, subject string) (*NotesSummary, error)
}

func (m *mockGeminiService) SelectAdaptiveQuestions(ctx context.Context, subject string, count int, preferredDifficulty string, stats *model.UserProgress, candidates []model.Question) (*AdaptiveSelection, error) {
	if m.selectAdaptiveQuestionsFunc != nil {
		return m.selectAdaptiveQuestionsFunc(ctx, subject, count, preferredDifficulty, stats, candidates)
	}
	return nil, errors.New("not implemented")
}

func (m *mockGeminiService) AnswerFeedback(ctx context.Context, question *model.Question, userAnswer string, timeTaken int, isCorrect bool) (*AnswerFeedback, error) {
	if m.answerFeedbackFunc != nil {
		return m.answerFeedbackFunc(ctx, question, userAnswer, timeTaken, isCorrect)
	}
	return nil, errors.New("not implemented")
}

func (m *mockGeminiService) AnalyzeSession(ctx context.Context, subject string, score, correctCount, totalCount int, averageTime float64, answers []model.QuizAnswer) (*QuizAnalysis, error) {
	if m.analyzeSessionFunc != nil {
		return m.analyzeSessionFunc(ctx, subject, score, correctCount, totalCount, averageTime, answers)
	}
	return nil, errors.New("not implemented")
}

func (m *mockGeminiService) GenerateQuestions(ctx context.Context, content, subject, difficulty, questionType string, count int) ([]GeneratedQuestion, error) {
	if m.generateQuestionsFunc != nil {
		return m.generateQuestionsFunc(ctx, content, subject, difficulty, questionType, count)
	}
	return nil, errors.New("not implemented")
}

func (m *mockGeminiService) ExtractDocument(ctx context.Context, data []byte, mimeType string) (*ExtractedContent, error) {
	if m.extractDocumentFunc != nil {
		return m.extractDocumentFunc(ctx, data, mimeType)
	}
	return nil, errors.New("not implemented")
}

func (m *mockGeminiService) BuildQuestionBank(ctx context.Context, extracted *ExtractedContent, subject, difficulty string, count int) ([]GeneratedQuestion, error) {
	if m.buildQuestionBankFunc != nil {
		return m.buildQuestionBankFunc(ctx, extracted, subject, difficulty, count)
	}
	return nil, errors.New("not implemented")
}

func (m *mockGeminiService) SummarizeNotes(ctx context.Context, content, subject string) (*NotesSummary, error) {
	if m.summarizeNotesFunc != nil {
		return m.summarizeNotesFunc(ctx, content, subject)
	}
	return nil, errors.New("not implemented")
}
