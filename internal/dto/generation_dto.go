package dto

type GeneratedQuestionDTO struct {
	Question      string   `json:"question"`
	Type          string   `json:"type"`
	Difficulty    string   `json:"difficulty"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	Topic         string   `json:"topic"`
	Keywords      []string `json:"keywords"`
}

type GenerateQuestionsResponse struct {
	Questions  []GeneratedQuestionDTO `json:"questions"`
	SavedCount int                    `json:"saved_count"`
}

type ExtractedContentDTO struct {
	Title       string   `json:"title"`
	KeyConcepts []string `json:"key_concepts"`
	Summary     string   `json:"summary"`
	Content     string   `json:"content"`
}

type GenerateFromPDFResponse struct {
	Success          bool                   `json:"success"`
	ExtractedContent ExtractedContentDTO    `json:"extracted_content"`
	Questions        []GeneratedQuestionDTO `json:"questions"`
	QuestionBankID   *uint                  `json:"question_bank_id,omitempty"`
	SavedCount       int                    `json:"saved_count"`
}

type KeyConceptDTO struct {
	Concept    string `json:"concept"`
	Definition string `json:"definition"`
	Importance string `json:"importance"`
}

type NotesSummaryDTO struct {
	Title               string          `json:"title"`
	KeyConcepts         []KeyConceptDTO `json:"key_concepts"`
	Summary             string          `json:"summary"`
	StudyTips           []string        `json:"study_tips"`
	PotentialExamTopics []string        `json:"potential_exam_topics"`
	DifficultyAreas     []string        `json:"difficulty_areas"`
}

type SummarizeNotesResponse struct {
	Success   bool            `json:"success"`
	Summary   NotesSummaryDTO `json:"summary"`
	SummaryID uint            `json:"summary_id"`
}
