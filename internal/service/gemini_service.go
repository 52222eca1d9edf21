package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"github.com/studyforge/studyforge/config"
	"github.com/studyforge/studyforge/internal/model"
	"google.golang.org/api/option"
)

// AdaptiveQuestion is one oracle-selected question with its selection rationale.
type AdaptiveQuestion struct {
	ID        uint   `json:"id"`
	Topic     string `json:"topic"`
	Reasoning string `json:"reasoning"`
}

type AdaptiveSelection struct {
	SelectedQuestions []AdaptiveQuestion `json:"selected_questions"`
}

type AnswerFeedback struct {
	Feedback             string   `json:"feedback"`
	LearningTips         []string `json:"learning_tips"`
	DifficultyAdjustment string   `json:"difficulty_adjustment"` // "easier", "same", "harder"
	ConfidenceLevel      string   `json:"confidence_level"`      // "low", "medium", "high"
	RelatedConcepts      []string `json:"related_concepts"`
}

type QuizAnalysis struct {
	OverallPerformance     string   `json:"overall_performance"`
	Strengths              []string `json:"strengths"`
	AreasForImprovement    []string `json:"areas_for_improvement"`
	StudyRecommendations   []string `json:"study_recommendations"`
	NextDifficultyLevel    string   `json:"next_difficulty_level"` // "easy", "medium", "hard"
	MasteryLevel           string   `json:"mastery_level"`         // "beginner", "intermediate", "advanced"
	TimeManagementFeedback string   `json:"time_management_feedback"`
}

type GeneratedQuestion struct {
	Question      string   `json:"question"`
	Type          string   `json:"type"`
	Difficulty    string   `json:"difficulty"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	Topic         string   `json:"topic"`
	Keywords      []string `json:"keywords"`
}

type generatedQuestionSet struct {
	Questions []GeneratedQuestion `json:"questions"`
}

type ExtractedContent struct {
	Title       string   `json:"title"`
	KeyConcepts []string `json:"key_concepts"`
	Summary     string   `json:"summary"`
	Content     string   `json:"content"`
}

type NotesKeyConcept struct {
	Concept    string `json:"concept"`
	Definition string `json:"definition"`
	Importance string `json:"importance"` // "high", "medium", "low"
}

type NotesSummary struct {
	Title               string            `json:"title"`
	KeyConcepts         []NotesKeyConcept `json:"key_concepts"`
	Summary             string            `json:"summary"`
	StudyTips           []string          `json:"study_tips"`
	PotentialExamTopics []string          `json:"potential_exam_topics"`
	DifficultyAreas     []string          `json:"difficulty_areas"`
}

// GeminiLLMService is the external oracle behind every generation, feedback
// and analysis flow. All methods return JSON-schema-shaped structs; responses
// that do not parse surface as ErrGeneration.
type GeminiLLMService interface {
	SelectAdaptiveQuestions(ctx context.Context, subject string, count int, preferredDifficulty string, stats *model.UserProgress, candidates []model.Question) (*AdaptiveSelection, error)
	AnswerFeedback(ctx context.Context, question *model.Question, userAnswer string, timeTaken int, isCorrect bool) (*AnswerFeedback, error)
	AnalyzeSession(ctx context.Context, subject string, score, correctCount, totalCount int, averageTime float64, answers []model.QuizAnswer) (*QuizAnalysis, error)
	GenerateQuestions(ctx context.Context, content, subject, difficulty, questionType string, count int) ([]GeneratedQuestion, error)
	ExtractDocument(ctx context.Context, data []byte, mimeType string) (*ExtractedContent, error)
	BuildQuestionBank(ctx context.Context, extracted *ExtractedContent, subject, difficulty string, count int) ([]GeneratedQuestion, error)
	SummarizeNotes(ctx context.Context, content, subject string) (*NotesSummary, error)
}

type geminiLLMService struct {
	client *genai.Client
	cfg    *config.Config
}

func NewGeminiLLMService(cfg *config.Config) (GeminiLLMService, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. GeminiLLMService will be non-functional.")
		return &geminiLLMService{cfg: cfg, client: nil}, nil
	}
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	return &geminiLLMService{client: client, cfg: cfg}, nil
}

// generateJSON runs one model call with JSON-constrained output and unmarshals
// the response into out.
func (s *geminiLLMService) generateJSON(ctx context.Context, temperature float32, out interface{}, parts ...genai.Part) error {
	if s.client == nil {
		return fmt.Errorf("%w: gemini client not initialized", ErrGeneration)
	}

	generativeModel := s.client.GenerativeModel(s.cfg.GeminiModel)
	generativeModel.ResponseMIMEType = "application/json"
	generativeModel.SetTemperature(temperature)

	resp, err := generativeModel.GenerateContent(ctx, parts...)
	if err != nil {
		log.Error().Err(err).Msg("Gemini API call failed")
		return fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		log.Warn().Msg("Gemini returned no candidates or parts in response")
		return fmt.Errorf("%w: empty response", ErrGeneration)
	}

	var builder strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			builder.WriteString(string(txt))
		}
	}
	raw := stripCodeFence(builder.String())
	if raw == "" {
		return fmt.Errorf("%w: no text content", ErrGeneration)
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		log.Warn().Err(err).Str("rawResponse", raw).Msg("Failed to parse structured Gemini response")
		return fmt.Errorf("%w: malformed response: %v", ErrGeneration, err)
	}
	return nil
}

// stripCodeFence removes a ```json ... ``` wrapper some model versions emit
// despite the JSON response MIME type.
func stripCodeFence(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "```") {
		return raw
	}
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "```")
	return strings.TrimSpace(raw)
}

func (s *geminiLLMService) SelectAdaptiveQuestions(ctx context.Context, subject string, count int, preferredDifficulty string, stats *model.UserProgress, candidates []model.Question) (*AdaptiveSelection, error) {
	var prompt strings.Builder
	prompt.WriteString("You are an adaptive learning system. Select questions that will optimally challenge the user based on their performance history and learning needs.\n")
	prompt.WriteString("Selection criteria:\n")
	prompt.WriteString("- Balance question types and difficulties\n")
	prompt.WriteString("- Consider the user's past performance and weak areas\n")
	prompt.WriteString("- Ensure progressive difficulty if the user is performing well\n")
	prompt.WriteString("- Include review questions for concepts they have struggled with\n")
	prompt.WriteString("- Maintain engagement with variety\n\n")

	prompt.WriteString(fmt.Sprintf("Select %d optimal questions for a %s quiz.\n\n", count, subject))
	prompt.WriteString("User Performance History:\n")
	if stats != nil {
		prompt.WriteString(fmt.Sprintf("- Average Score: %.1f\n", stats.AverageScore))
		prompt.WriteString(fmt.Sprintf("- Weak Topics: %s\n", joinOrUnknown(stats.WeakTopics)))
		prompt.WriteString(fmt.Sprintf("- Strong Topics: %s\n", joinOrUnknown(stats.StrongTopics)))
	} else {
		prompt.WriteString("- Average Score: No history\n- Weak Topics: Unknown\n- Strong Topics: Unknown\n")
	}
	prompt.WriteString(fmt.Sprintf("- Preferred Difficulty: %s\n\n", preferredDifficulty))

	prompt.WriteString("Available Questions:\n")
	for i, q := range candidates {
		prompt.WriteString(fmt.Sprintf("%d. id=%d [%s] [%s] %s: %s\n", i+1, q.ID, q.Difficulty, q.Type, q.Topic, truncate(q.Question, 100)))
	}
	prompt.WriteString("\nRespond with JSON of the form ")
	prompt.WriteString(`{"selected_questions":[{"id":<question id>,"topic":"...","reasoning":"why this question was selected for the user"}]}.`)
	prompt.WriteString(fmt.Sprintf(" Select exactly %d questions, using only ids from the list above.", count))

	var selection AdaptiveSelection
	if err := s.generateJSON(ctx, 0.3, &selection, genai.Text(prompt.String())); err != nil {
		return nil, err
	}
	if len(selection.SelectedQuestions) == 0 {
		return nil, fmt.Errorf("%w: oracle selected no questions", ErrGeneration)
	}
	return &selection, nil
}

func (s *geminiLLMService) AnswerFeedback(ctx context.Context, question *model.Question, userAnswer string, timeTaken int, isCorrect bool) (*AnswerFeedback, error) {
	var prompt strings.Builder
	prompt.WriteString("You are an intelligent tutoring system providing personalized feedback to help students learn effectively.\n")
	prompt.WriteString("Provide a clear explanation of why the answer is correct or incorrect, specific learning tips, a difficulty adjustment suggestion, an assessment of the student's confidence level, and related concepts to review.\n\n")

	prompt.WriteString("Provide feedback for this quiz question:\n\n")
	prompt.WriteString(fmt.Sprintf("Question: %s\n", question.Question))
	prompt.WriteString(fmt.Sprintf("Type: %s\nDifficulty: %s\nTopic: %s\n", question.Type, question.Difficulty, question.Topic))
	if len(question.Options) > 0 {
		prompt.WriteString(fmt.Sprintf("Options: %s\n", strings.Join(question.Options, ", ")))
	}
	prompt.WriteString(fmt.Sprintf("\nCorrect Answer: %s\nUser Answer: %s\nTime Taken: %d seconds\nExplanation: %s\n\n", question.CorrectAnswer, userAnswer, timeTaken, question.Explanation))
	if isCorrect {
		prompt.WriteString("The user answered correctly. Provide constructive feedback to help them learn.\n")
	} else {
		prompt.WriteString("The user answered incorrectly. Provide constructive feedback to help them learn.\n")
	}
	prompt.WriteString("\nRespond with JSON of the form ")
	prompt.WriteString(`{"feedback":"...","learning_tips":["..."],"difficulty_adjustment":"easier|same|harder","confidence_level":"low|medium|high","related_concepts":["..."]}.`)

	var feedback AnswerFeedback
	if err := s.generateJSON(ctx, 0.4, &feedback, genai.Text(prompt.String())); err != nil {
		return nil, err
	}
	return &feedback, nil
}

func (s *geminiLLMService) AnalyzeSession(ctx context.Context, subject string, score, correctCount, totalCount int, averageTime float64, answers []model.QuizAnswer) (*QuizAnalysis, error) {
	var prompt strings.Builder
	prompt.WriteString("You are an expert educational analyst providing comprehensive quiz performance analysis.\n")
	prompt.WriteString("Provide a detailed performance assessment, specific strengths and weaknesses, actionable study recommendations, an appropriate difficulty progression, and time management insights.\n\n")

	prompt.WriteString("Analyze this quiz performance:\n\n")
	prompt.WriteString(fmt.Sprintf("Subject: %s\n", subject))
	prompt.WriteString(fmt.Sprintf("Score: %d%% (%d/%d)\n", score, correctCount, totalCount))
	prompt.WriteString(fmt.Sprintf("Average Time per Question: %.1f seconds\n\n", averageTime))

	prompt.WriteString("Question Performance:\n")
	for i, answer := range answers {
		correct := "No"
		if answer.IsCorrect {
			correct = "Yes"
		}
		prompt.WriteString(fmt.Sprintf("%d. %s (%s)\n", i+1, answer.Question.Topic, answer.Question.Difficulty))
		prompt.WriteString(fmt.Sprintf("   - Correct: %s\n   - Time: %ds\n   - User Answer: %s\n   - Correct Answer: %s\n",
			correct, answer.TimeTaken, answer.UserAnswer, answer.Question.CorrectAnswer))
	}

	prompt.WriteString("\nRespond with JSON of the form ")
	prompt.WriteString(`{"overall_performance":"...","strengths":["..."],"areas_for_improvement":["..."],"study_recommendations":["..."],"next_difficulty_level":"easy|medium|hard","mastery_level":"beginner|intermediate|advanced","time_management_feedback":"..."}.`)

	var analysis QuizAnalysis
	if err := s.generateJSON(ctx, 0.3, &analysis, genai.Text(prompt.String())); err != nil {
		return nil, err
	}
	return &analysis, nil
}

func (s *geminiLLMService) GenerateQuestions(ctx context.Context, content, subject, difficulty, questionType string, count int) ([]GeneratedQuestion, error) {
	var prompt strings.Builder
	prompt.WriteString(fmt.Sprintf("You are an expert educator creating exam questions. Generate %d high-quality questions based on the provided content.\n\n", count))
	prompt.WriteString("Guidelines:\n")
	prompt.WriteString("- For MCQ: provide 4 options with only one correct answer\n")
	prompt.WriteString("- For True/False: create clear statements that are definitively true or false\n")
	prompt.WriteString("- For Conceptual: focus on understanding and definitions\n")
	prompt.WriteString("- For Application: create scenario-based questions requiring practical application\n")
	prompt.WriteString("- Difficulty levels: easy (basic recall), medium (understanding/analysis), hard (synthesis/evaluation)\n")
	prompt.WriteString("- Ensure questions are clear, unambiguous, and educationally valuable\n")
	prompt.WriteString("- Include detailed explanations for learning purposes\n\n")

	prompt.WriteString(fmt.Sprintf("Generate %d %s difficulty %s questions for the subject %q based on this content:\n\n%s\n\n", count, difficulty, questionType, subject, content))
	prompt.WriteString("Make sure the questions test different aspects of the material and are appropriate for the specified difficulty level.\n")
	prompt.WriteString("Respond with JSON of the form ")
	prompt.WriteString(`{"questions":[{"question":"...","type":"mcq|true_false|conceptual|application","difficulty":"easy|medium|hard","options":["..."],"correct_answer":"...","explanation":"...","topic":"...","keywords":["..."]}]}.`)

	var set generatedQuestionSet
	if err := s.generateJSON(ctx, 0.7, &set, genai.Text(prompt.String())); err != nil {
		return nil, err
	}
	if len(set.Questions) == 0 {
		return nil, fmt.Errorf("%w: oracle generated no questions", ErrGeneration)
	}
	return set.Questions, nil
}

func (s *geminiLLMService) ExtractDocument(ctx context.Context, data []byte, mimeType string) (*ExtractedContent, error) {
	if mimeType == "" {
		mimeType = "application/pdf"
	}
	prompt := "Extract and structure the educational content from this document. Focus on key concepts, definitions, and important information that could be used for creating exam questions.\n" +
		`Respond with JSON of the form {"title":"...","key_concepts":["..."],"summary":"...","content":"cleaned and structured text content"}.`

	var extracted ExtractedContent
	err := s.generateJSON(ctx, 0.2, &extracted,
		genai.Blob{MIMEType: mimeType, Data: data},
		genai.Text(prompt),
	)
	if err != nil {
		return nil, err
	}
	return &extracted, nil
}

func (s *geminiLLMService) BuildQuestionBank(ctx context.Context, extracted *ExtractedContent, subject, difficulty string, count int) ([]GeneratedQuestion, error) {
	var prompt strings.Builder
	prompt.WriteString(fmt.Sprintf("Create a comprehensive question bank with %d questions of varying types and difficulties.\n\n", count))
	prompt.WriteString("Distribution:\n- 40% MCQ questions (4 options each)\n- 20% True/False questions\n- 25% Conceptual questions (short answer)\n- 15% Application questions (scenario-based)\n\n")
	prompt.WriteString("Difficulty distribution:\n- Easy: 30% (basic recall and recognition)\n- Medium: 50% (understanding and application)\n- Hard: 20% (analysis and synthesis)\n\n")
	prompt.WriteString("Ensure questions cover different topics and concepts from the material.\n\n")

	prompt.WriteString(fmt.Sprintf("Create %d questions for the subject %q with %q focus based on this content:\n\n", count, subject, difficulty))
	prompt.WriteString(fmt.Sprintf("Title: %s\nKey Concepts: %s\nSummary: %s\n\nContent:\n%s\n\n", extracted.Title, strings.Join(extracted.KeyConcepts, ", "), extracted.Summary, extracted.Content))
	prompt.WriteString("Respond with JSON of the form ")
	prompt.WriteString(`{"questions":[{"question":"...","type":"mcq|true_false|conceptual|application","difficulty":"easy|medium|hard","options":["..."],"correct_answer":"...","explanation":"...","topic":"...","keywords":["..."]}]}.`)

	var set generatedQuestionSet
	if err := s.generateJSON(ctx, 0.8, &set, genai.Text(prompt.String())); err != nil {
		return nil, err
	}
	if len(set.Questions) == 0 {
		return nil, fmt.Errorf("%w: oracle generated no questions", ErrGeneration)
	}
	return set.Questions, nil
}

func (s *geminiLLMService) SummarizeNotes(ctx context.Context, content, subject string) (*NotesSummary, error) {
	var prompt strings.Builder
	prompt.WriteString("You are an expert study assistant. Analyze the provided notes and create a comprehensive summary that helps students understand and retain the material effectively.\n\n")
	prompt.WriteString("Focus on:\n")
	prompt.WriteString("- Identifying and explaining key concepts clearly\n")
	prompt.WriteString("- Highlighting the most important information for exam preparation\n")
	prompt.WriteString("- Providing practical study tips\n")
	prompt.WriteString("- Identifying potential challenging areas\n")
	prompt.WriteString("- Creating connections between different concepts\n\n")

	prompt.WriteString(fmt.Sprintf("Analyze and summarize these %s notes:\n\n%s\n\n", subject, content))
	prompt.WriteString("Create a comprehensive study guide that will help the student understand the material and prepare for exams effectively.\n")
	prompt.WriteString("Respond with JSON of the form ")
	prompt.WriteString(`{"title":"...","key_concepts":[{"concept":"...","definition":"...","importance":"high|medium|low"}],"summary":"...","study_tips":["..."],"potential_exam_topics":["..."],"difficulty_areas":["..."]}.`)

	var summary NotesSummary
	if err := s.generateJSON(ctx, 0.3, &summary, genai.Text(prompt.String())); err != nil {
		return nil, err
	}
	return &summary, nil
}

func joinOrUnknown(values []string) string {
	if len(values) == 0 {
		return "Unknown"
	}
	return strings.Join(values, ", ")
}

// truncate cuts s to at most max bytes without splitting a multibyte rune;
// the result must stay valid UTF-8 for Postgres text columns and the Gemini
// request encoding.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
