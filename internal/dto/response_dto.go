package dto

import "time"

type ErrorResponse struct {
	Message string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// SanitizedQuestionDTO is the question shape served to a quiz taker. It must
// never carry the correct answer or the explanation.
type SanitizedQuestionDTO struct {
	ID             uint     `json:"id"`
	QuestionNumber int      `json:"question_number"`
	Question       string   `json:"question"`
	Type           string   `json:"type"`
	Difficulty     string   `json:"difficulty"`
	Options        []string `json:"options,omitempty"`
	Topic          string   `json:"topic"`
}

type StartQuizResponse struct {
	QuizSessionID     uint                   `json:"quiz_session_id"`
	Questions         []SanitizedQuestionDTO `json:"questions"`
	TotalQuestions    int                    `json:"total_questions"`
	AdaptiveReasoning []string               `json:"adaptive_reasoning"`
}

type SubmitAnswerResponse struct {
	IsCorrect            bool     `json:"is_correct"`
	CorrectAnswer        string   `json:"correct_answer"`
	Explanation          string   `json:"explanation"`
	AIFeedback           string   `json:"ai_feedback"`
	LearningTips         []string `json:"learning_tips"`
	DifficultyAdjustment string   `json:"difficulty_adjustment"`
	ConfidenceLevel      string   `json:"confidence_level"`
	RelatedConcepts      []string `json:"related_concepts"`
	PointsEarned         int      `json:"points_earned"`
}

type QuizAnalysisDTO struct {
	OverallPerformance     string   `json:"overall_performance"`
	Strengths              []string `json:"strengths"`
	AreasForImprovement    []string `json:"areas_for_improvement"`
	StudyRecommendations   []string `json:"study_recommendations"`
	NextDifficultyLevel    string   `json:"next_difficulty_level"`
	MasteryLevel           string   `json:"mastery_level"`
	TimeManagementFeedback string   `json:"time_management_feedback"`
}

type QuestionResultDTO struct {
	Question      string   `json:"question"`
	UserAnswer    string   `json:"user_answer"`
	CorrectAnswer string   `json:"correct_answer"`
	IsCorrect     bool     `json:"is_correct"`
	Explanation   string   `json:"explanation"`
	AIFeedback    string   `json:"ai_feedback"`
	LearningTips  []string `json:"learning_tips"`
	TimeTaken     int      `json:"time_taken"`
	Topic         string   `json:"topic"`
	Difficulty    string   `json:"difficulty"`
}

type AchievementDTO struct {
	ID          uint       `json:"id"`
	Code        string     `json:"code"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Icon        string     `json:"icon,omitempty"`
	EarnedAt    *time.Time `json:"earned_at,omitempty"`
}

type CompleteQuizResponse struct {
	QuizCompleted   bool                `json:"quiz_completed"`
	Score           int                 `json:"score"`
	CorrectAnswers  int                 `json:"correct_answers"`
	TotalQuestions  int                 `json:"total_questions"`
	PointsEarned    int                 `json:"points_earned"`
	AverageTime     float64             `json:"average_time"`
	Analysis        QuizAnalysisDTO     `json:"analysis"`
	NewAchievements []AchievementDTO    `json:"new_achievements"`
	DetailedResults []QuestionResultDTO `json:"detailed_results"`
}
