package dto

// StartQuizRequest begins a new adaptive quiz session for a subject.
type StartQuizRequest struct {
	Subject             string `json:"subject" binding:"required"`
	QuestionCount       int    `json:"question_count" binding:"omitempty,min=1,max=20"`
	PreferredDifficulty string `json:"preferred_difficulty" binding:"omitempty,oneof=easy medium hard"`
}

type SubmitAnswerRequest struct {
	QuizSessionID uint   `json:"quiz_session_id" binding:"required"`
	QuestionID    uint   `json:"question_id" binding:"required"`
	UserAnswer    string `json:"user_answer" binding:"required"`
	TimeTaken     int    `json:"time_taken" binding:"omitempty,min=0"` // seconds
}

type CompleteQuizRequest struct {
	QuizSessionID uint `json:"quiz_session_id" binding:"required"`
}

type GenerateQuestionsRequest struct {
	Content      string `json:"content" binding:"required"`
	Subject      string `json:"subject" binding:"required"`
	Difficulty   string `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	QuestionType string `json:"question_type" binding:"omitempty,oneof=mcq true_false conceptual application"`
	Count        int    `json:"count" binding:"omitempty,min=1,max=20"`
}

type SummarizeNotesRequest struct {
	Content string `json:"content" binding:"required"`
	Subject string `json:"subject" binding:"required"`
}
