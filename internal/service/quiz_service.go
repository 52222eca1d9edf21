package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/studyforge/studyforge/internal/dto"
	"github.com/studyforge/studyforge/internal/model"
	"github.com/studyforge/studyforge/internal/repository"
	"gorm.io/gorm"
)

const (
	candidatePoolSize    = 50
	defaultQuestionCount = 10
	defaultDifficulty    = model.DifficultyMedium

	// Budget for the detached side-effect goroutines (progress rollup, point
	// accrual). The primary response never waits on these.
	sideEffectTimeout = 10 * time.Second
)

// QuizService drives the session lifecycle: Start, SubmitAnswer, Complete.
type QuizService interface {
	StartQuiz(ctx context.Context, userID uuid.UUID, req dto.StartQuizRequest) (*dto.StartQuizResponse, error)
	SubmitAnswer(ctx context.Context, userID uuid.UUID, req dto.SubmitAnswerRequest) (*dto.SubmitAnswerResponse, error)
	CompleteQuiz(ctx context.Context, userID uuid.UUID, req dto.CompleteQuizRequest) (*dto.CompleteQuizResponse, error)
}

type quizService struct {
	questionRepo   repository.QuestionRepository
	sessionRepo    repository.QuizSessionRepository
	answerRepo     repository.QuizAnswerRepository
	progressRepo   repository.ProgressRepository
	achievementSvc AchievementService
	gemini         GeminiLLMService
}

func NewQuizService(
	questionRepo repository.QuestionRepository,
	sessionRepo repository.QuizSessionRepository,
	answerRepo repository.QuizAnswerRepository,
	progressRepo repository.ProgressRepository,
	achievementSvc AchievementService,
	gemini GeminiLLMService,
) QuizService {
	return &quizService{
		questionRepo:   questionRepo,
		sessionRepo:    sessionRepo,
		answerRepo:     answerRepo,
		progressRepo:   progressRepo,
		achievementSvc: achievementSvc,
		gemini:         gemini,
	}
}

// GradeAnswer implements exact-match grading: trimmed, case-insensitive string
// equality. This applies to every question type, including free-text ones.
func GradeAnswer(userAnswer, correctAnswer string) bool {
	return strings.EqualFold(strings.TrimSpace(userAnswer), strings.TrimSpace(correctAnswer))
}

// ComputeScore is the session scoring rule: round(100 * correct / total),
// zero for an empty answer set.
func ComputeScore(correctCount, totalCount int) int {
	if totalCount == 0 {
		return 0
	}
	return int(math.Round(100 * float64(correctCount) / float64(totalCount)))
}

func (s *quizService) StartQuiz(ctx context.Context, userID uuid.UUID, req dto.StartQuizRequest) (*dto.StartQuizResponse, error) {
	questionCount := req.QuestionCount
	if questionCount <= 0 {
		questionCount = defaultQuestionCount
	}
	preferredDifficulty := req.PreferredDifficulty
	if preferredDifficulty == "" {
		preferredDifficulty = defaultDifficulty
	}

	candidates, err := s.questionRepo.FindBySubject(req.Subject, candidatePoolSize)
	if err != nil {
		log.Error().Err(err).Str("subject", req.Subject).Msg("StartQuiz: failed to load candidate questions")
		return nil, fmt.Errorf("error fetching questions for subject %q: %w", req.Subject, err)
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no questions available for subject %q: %w", req.Subject, ErrNotFound)
	}
	if questionCount > len(candidates) {
		questionCount = len(candidates)
	}

	// Historical performance feeds the adaptive prompt; it is advisory, so a
	// read failure only degrades the selection, never the request.
	var stats *model.UserProgress
	if rows, statsErr := s.progressRepo.FindByUser(userID, req.Subject); statsErr != nil {
		log.Warn().Err(statsErr).Str("subject", req.Subject).Msg("StartQuiz: could not load user progress for adaptive selection")
	} else if len(rows) > 0 {
		stats = &rows[0]
	}

	selection, err := s.gemini.SelectAdaptiveQuestions(ctx, req.Subject, questionCount, preferredDifficulty, stats, candidates)
	if err != nil {
		log.Error().Err(err).Str("subject", req.Subject).Msg("StartQuiz: adaptive selection failed")
		return nil, err
	}

	selected, reasoning := resolveSelection(selection, candidates, questionCount)

	session := model.QuizSession{
		UserID:             userID,
		Subject:            req.Subject,
		QuestionCount:      len(selected),
		Status:             model.SessionStatusActive,
		AdaptiveDifficulty: preferredDifficulty,
	}
	if err := s.sessionRepo.Create(&session); err != nil {
		log.Error().Err(err).Str("subject", req.Subject).Msg("StartQuiz: failed to create quiz session")
		return nil, fmt.Errorf("failed to create quiz session: %w", err)
	}

	resp := &dto.StartQuizResponse{
		QuizSessionID:     session.ID,
		Questions:         make([]dto.SanitizedQuestionDTO, 0, len(selected)),
		TotalQuestions:    len(selected),
		AdaptiveReasoning: reasoning,
	}
	for i, q := range selected {
		// The correct answer and explanation must never reach the client here.
		resp.Questions = append(resp.Questions, dto.SanitizedQuestionDTO{
			ID:             q.ID,
			QuestionNumber: i + 1,
			Question:       q.Question,
			Type:           q.Type,
			Difficulty:     q.Difficulty,
			Options:        q.Options,
			Topic:          q.Topic,
		})
	}

	log.Info().Uint("sessionID", session.ID).Str("subject", req.Subject).Int("questions", len(selected)).Msg("Quiz session started")
	return resp, nil
}

// resolveSelection maps oracle-selected ids back onto stored questions,
// padding with unused candidates when the oracle picked too few valid ids.
func resolveSelection(selection *AdaptiveSelection, candidates []model.Question, count int) ([]model.Question, []string) {
	byID := make(map[uint]model.Question, len(candidates))
	for _, q := range candidates {
		byID[q.ID] = q
	}

	selected := make([]model.Question, 0, count)
	reasoning := make([]string, 0, count)
	used := make(map[uint]bool, count)

	for _, pick := range selection.SelectedQuestions {
		if len(selected) == count {
			break
		}
		q, ok := byID[pick.ID]
		if !ok || used[q.ID] {
			continue
		}
		selected = append(selected, q)
		reasoning = append(reasoning, pick.Reasoning)
		used[q.ID] = true
	}

	for _, q := range candidates {
		if len(selected) == count {
			break
		}
		if !used[q.ID] {
			selected = append(selected, q)
			used[q.ID] = true
		}
	}
	return selected, reasoning
}

func (s *quizService) SubmitAnswer(ctx context.Context, userID uuid.UUID, req dto.SubmitAnswerRequest) (*dto.SubmitAnswerResponse, error) {
	question, err := s.questionRepo.FindByID(req.QuestionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("question %d: %w", req.QuestionID, ErrNotFound)
		}
		return nil, fmt.Errorf("error fetching question %d: %w", req.QuestionID, err)
	}

	session, err := s.sessionRepo.FindByIDAndUser(req.QuizSessionID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("quiz session %d: %w", req.QuizSessionID, ErrNotFound)
		}
		return nil, fmt.Errorf("error fetching quiz session %d: %w", req.QuizSessionID, err)
	}
	// Answers only attach to active sessions; a completed session is final.
	if session.Status != model.SessionStatusActive {
		return nil, fmt.Errorf("quiz session %d: %w", req.QuizSessionID, ErrSessionCompleted)
	}

	isCorrect := GradeAnswer(req.UserAnswer, question.CorrectAnswer)

	feedback, err := s.gemini.AnswerFeedback(ctx, question, req.UserAnswer, req.TimeTaken, isCorrect)
	if err != nil {
		log.Error().Err(err).Uint("questionID", question.ID).Msg("SubmitAnswer: feedback generation failed")
		return nil, err
	}

	answer := model.QuizAnswer{
		QuizSessionID:        session.ID,
		QuestionID:           question.ID,
		UserAnswer:           req.UserAnswer,
		IsCorrect:            isCorrect,
		TimeTaken:            req.TimeTaken,
		AIFeedback:           feedback.Feedback,
		LearningTips:         feedback.LearningTips,
		DifficultyAdjustment: feedback.DifficultyAdjustment,
	}
	if err := s.answerRepo.Create(&answer); err != nil {
		log.Error().Err(err).Uint("sessionID", session.ID).Msg("SubmitAnswer: failed to persist answer")
		return nil, fmt.Errorf("failed to save answer: %w", err)
	}

	// Fire-and-forget progress rollup; failure is logged, never surfaced.
	go func(subject, topic string, correct bool, timeTaken int) {
		sideCtx, cancel := context.WithTimeout(context.Background(), sideEffectTimeout)
		defer cancel()
		if err := s.progressRepo.RecordAnswer(sideCtx, userID, subject, topic, correct, timeTaken); err != nil {
			log.Error().Err(err).Str("subject", subject).Msg("SubmitAnswer: progress update side effect failed")
		}
	}(question.Subject, question.Topic, isCorrect, req.TimeTaken)

	points := 0
	if isCorrect {
		points = model.PointsForDifficulty(question.Difficulty)
	}

	return &dto.SubmitAnswerResponse{
		IsCorrect:            isCorrect,
		CorrectAnswer:        question.CorrectAnswer,
		Explanation:          question.Explanation,
		AIFeedback:           feedback.Feedback,
		LearningTips:         feedback.LearningTips,
		DifficultyAdjustment: feedback.DifficultyAdjustment,
		ConfidenceLevel:      feedback.ConfidenceLevel,
		RelatedConcepts:      feedback.RelatedConcepts,
		PointsEarned:         points,
	}, nil
}

func (s *quizService) CompleteQuiz(ctx context.Context, userID uuid.UUID, req dto.CompleteQuizRequest) (*dto.CompleteQuizResponse, error) {
	session, err := s.sessionRepo.FindByIDWithAnswers(req.QuizSessionID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("quiz session %d: %w", req.QuizSessionID, ErrNotFound)
		}
		return nil, fmt.Errorf("error fetching quiz session %d: %w", req.QuizSessionID, err)
	}

	correctCount := 0
	totalTime := 0
	for _, answer := range session.Answers {
		if answer.IsCorrect {
			correctCount++
		}
		totalTime += answer.TimeTaken
	}
	totalCount := len(session.Answers)
	score := ComputeScore(correctCount, totalCount)
	averageTime := 0.0
	if totalCount > 0 {
		averageTime = float64(totalTime) / float64(totalCount)
	}
	pointsEarned := totalPoints(session.Answers)

	// A session already finalized (or finalized concurrently) replays the
	// stored result: no second scoring pass, no second accrual.
	if session.Status == model.SessionStatusCompleted {
		return s.replayCompletion(session, correctCount, totalCount, averageTime, pointsEarned), nil
	}

	analysis, err := s.gemini.AnalyzeSession(ctx, session.Subject, score, correctCount, totalCount, averageTime, session.Answers)
	if err != nil {
		log.Error().Err(err).Uint("sessionID", session.ID).Msg("CompleteQuiz: performance analysis failed")
		return nil, err
	}

	completed, err := s.sessionRepo.MarkCompleted(session.ID, score, analysis.OverallPerformance, analysis.StudyRecommendations, time.Now())
	if err != nil {
		log.Error().Err(err).Uint("sessionID", session.ID).Msg("CompleteQuiz: failed to finalize session")
		return nil, fmt.Errorf("failed to complete quiz session: %w", err)
	}
	if !completed {
		// Lost the race to a concurrent completion call.
		log.Warn().Uint("sessionID", session.ID).Msg("CompleteQuiz: session was already completed, replaying stored result")
		stored, reloadErr := s.sessionRepo.FindByIDWithAnswers(session.ID, userID)
		if reloadErr != nil {
			return nil, fmt.Errorf("error reloading completed session %d: %w", session.ID, reloadErr)
		}
		return s.replayCompletion(stored, correctCount, totalCount, averageTime, pointsEarned), nil
	}

	// Point accrual is fire-and-forget; achievement checks run inline because
	// the response carries the newly earned achievements, but their failure is
	// swallowed the same way.
	go func(subject string) {
		sideCtx, cancel := context.WithTimeout(context.Background(), sideEffectTimeout)
		defer cancel()
		if err := s.progressRepo.RecordCompletion(sideCtx, userID, subject, score, pointsEarned); err != nil {
			log.Error().Err(err).Str("subject", subject).Msg("CompleteQuiz: point accrual side effect failed")
		}
	}(session.Subject)

	newAchievements := s.achievementSvc.CheckQuizAchievements(userID, score, pointsEarned)

	resp := &dto.CompleteQuizResponse{
		QuizCompleted:  true,
		Score:          score,
		CorrectAnswers: correctCount,
		TotalQuestions: totalCount,
		PointsEarned:   pointsEarned,
		AverageTime:    averageTime,
		Analysis: dto.QuizAnalysisDTO{
			OverallPerformance:     analysis.OverallPerformance,
			Strengths:              analysis.Strengths,
			AreasForImprovement:    analysis.AreasForImprovement,
			StudyRecommendations:   analysis.StudyRecommendations,
			NextDifficultyLevel:    analysis.NextDifficultyLevel,
			MasteryLevel:           analysis.MasteryLevel,
			TimeManagementFeedback: analysis.TimeManagementFeedback,
		},
		NewAchievements: newAchievements,
		DetailedResults: detailedResults(session.Answers),
	}

	log.Info().Uint("sessionID", session.ID).Int("score", score).Int("points", pointsEarned).Msg("Quiz session completed")
	return resp, nil
}

// replayCompletion builds the idempotent response for an already-finalized
// session from its stored state.
func (s *quizService) replayCompletion(session *model.QuizSession, correctCount, totalCount int, averageTime float64, pointsEarned int) *dto.CompleteQuizResponse {
	score := 0
	if session.Score != nil {
		score = *session.Score
	}
	return &dto.CompleteQuizResponse{
		QuizCompleted:  true,
		Score:          score,
		CorrectAnswers: correctCount,
		TotalQuestions: totalCount,
		PointsEarned:   pointsEarned,
		AverageTime:    averageTime,
		Analysis: dto.QuizAnalysisDTO{
			OverallPerformance:   session.AIAnalysis,
			StudyRecommendations: session.Recommendations,
		},
		NewAchievements: []dto.AchievementDTO{},
		DetailedResults: detailedResults(session.Answers),
	}
}

// totalPoints re-derives the session's point total from persisted answers.
// It uses the same per-difficulty award as SubmitAnswer, so the two
// computations cannot drift; this one is authoritative for accrual.
func totalPoints(answers []model.QuizAnswer) int {
	sum := 0
	for _, answer := range answers {
		if !answer.IsCorrect {
			continue
		}
		difficulty := answer.Question.Difficulty
		if difficulty == "" {
			difficulty = model.DifficultyEasy
		}
		sum += model.PointsForDifficulty(difficulty)
	}
	return sum
}

func detailedResults(answers []model.QuizAnswer) []dto.QuestionResultDTO {
	results := make([]dto.QuestionResultDTO, 0, len(answers))
	for _, answer := range answers {
		results = append(results, dto.QuestionResultDTO{
			Question:      answer.Question.Question,
			UserAnswer:    answer.UserAnswer,
			CorrectAnswer: answer.Question.CorrectAnswer,
			IsCorrect:     answer.IsCorrect,
			Explanation:   answer.Question.Explanation,
			AIFeedback:    answer.AIFeedback,
			LearningTips:  answer.LearningTips,
			TimeTaken:     answer.TimeTaken,
			Topic:         answer.Question.Topic,
			Difficulty:    answer.Question.Difficulty,
		})
	}
	return results
}
