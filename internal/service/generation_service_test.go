package service

import (
	"context"
	"errors"
	"testing"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyforge/studyforge/internal/dto"
	"github.com/studyforge/studyforge/internal/model"
)

type mockNoteSummaryRepository struct {
	createFunc func(summary *model.NoteSummary) error
}

func (m *mockNoteSummaryRepository) Create(summary *model.NoteSummary) error {
	if m.createFunc != nil {
		return m.createFunc(summary)
	}
	return errors.New("not implemented")
}

type mockQuestionBankRepository struct {
	createFunc func(bank *model.QuestionBank) error
}

func (m *mockQuestionBankRepository) Create(bank *model.QuestionBank) error {
	if m.createFunc != nil {
		return m.createFunc(bank)
	}
	return errors.New("not implemented")
}

func sampleGenerated() []GeneratedQuestion {
	return []GeneratedQuestion{
		{
			Question:      "What is the powerhouse of the cell?",
			Type:          model.QuestionTypeMCQ,
			Difficulty:    model.DifficultyEasy,
			Options:       []string{"Mitochondria", "Nucleus", "Ribosome", "Golgi"},
			CorrectAnswer: "Mitochondria",
			Explanation:   "Mitochondria produce ATP.",
			Topic:         "Cell Structure",
			Keywords:      []string{"organelle", "ATP"},
		},
		{
			Question:      "Photosynthesis occurs in the mitochondria.",
			Type:          model.QuestionTypeTrueFalse,
			Difficulty:    model.DifficultyMedium,
			CorrectAnswer: "false",
			Explanation:   "It occurs in chloroplasts.",
			Topic:         "Photosynthesis",
		},
	}
}

func TestGenerateQuestions(t *testing.T) {
	userID := uuid.New()

	t.Run("persists generated questions with defaults applied", func(t *testing.T) {
		var saved []model.Question
		questionRepo := &mockQuestionRepository{
			createBatchFunc: func(questions []model.Question) error {
				saved = questions
				return nil
			},
		}
		gemini := &mockGeminiService{
			generateQuestionsFunc: func(ctx context.Context, content, subject, difficulty, questionType string, count int) ([]GeneratedQuestion, error) {
				assert.Equal(t, model.DifficultyMedium, difficulty)
				assert.Equal(t, model.QuestionTypeMCQ, questionType)
				assert.Equal(t, 5, count)
				return sampleGenerated(), nil
			},
		}
		svc := NewGenerationService(questionRepo, &mockQuestionBankRepository{}, &mockNoteSummaryRepository{}, gemini)

		resp, err := svc.GenerateQuestions(context.Background(), userID, dto.GenerateQuestionsRequest{
			Content: "The mitochondria is the powerhouse of the cell.",
			Subject: "Biology",
		})
		require.NoError(t, err)
		assert.Equal(t, 2, resp.SavedCount)
		assert.Len(t, resp.Questions, 2)

		require.Len(t, saved, 2)
		assert.Equal(t, userID, saved[0].UserID)
		assert.Equal(t, "Biology", saved[0].Subject)
		assert.Equal(t, "text", saved[0].SourceType)
		assert.Equal(t, "Mitochondria", saved[0].CorrectAnswer)
	})

	t.Run("source content is truncated before persisting", func(t *testing.T) {
		long := make([]byte, 5000)
		for i := range long {
			long[i] = 'a'
		}
		questionRepo := &mockQuestionRepository{
			createBatchFunc: func(questions []model.Question) error {
				for _, q := range questions {
					assert.LessOrEqual(t, len(q.SourceContent), sourceContentLimit+3) // "..." suffix
				}
				return nil
			},
		}
		gemini := &mockGeminiService{
			generateQuestionsFunc: func(context.Context, string, string, string, string, int) ([]GeneratedQuestion, error) {
				return sampleGenerated(), nil
			},
		}
		svc := NewGenerationService(questionRepo, &mockQuestionBankRepository{}, &mockNoteSummaryRepository{}, gemini)

		_, err := svc.GenerateQuestions(context.Background(), userID, dto.GenerateQuestionsRequest{
			Content: string(long),
			Subject: "Biology",
		})
		require.NoError(t, err)
	})

	t.Run("oracle failure surfaces as generation error", func(t *testing.T) {
		gemini := &mockGeminiService{
			generateQuestionsFunc: func(context.Context, string, string, string, string, int) ([]GeneratedQuestion, error) {
				return nil, ErrGeneration
			},
		}
		svc := NewGenerationService(&mockQuestionRepository{}, &mockQuestionBankRepository{}, &mockNoteSummaryRepository{}, gemini)

		_, err := svc.GenerateQuestions(context.Background(), userID, dto.GenerateQuestionsRequest{
			Content: "content",
			Subject: "Biology",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrGeneration)
	})
}

func TestGenerateFromPDF(t *testing.T) {
	userID := uuid.New()
	extracted := &ExtractedContent{
		Title:       "Cell Biology Essentials",
		KeyConcepts: []string{"Mitochondria", "Chloroplast"},
		Summary:     "An overview of cell organelles.",
		Content:     "Full structured content.",
	}

	t.Run("extracts, generates and records the bank", func(t *testing.T) {
		var bank *model.QuestionBank
		questionRepo := &mockQuestionRepository{
			createBatchFunc: func(questions []model.Question) error {
				for _, q := range questions {
					assert.Equal(t, "pdf", q.SourceType)
					assert.Equal(t, "Cell Biology Essentials", q.SourceContent)
				}
				return nil
			},
		}
		bankRepo := &mockQuestionBankRepository{
			createFunc: func(b *model.QuestionBank) error {
				b.ID = 11
				bank = b
				return nil
			},
		}
		gemini := &mockGeminiService{
			extractDocumentFunc: func(ctx context.Context, data []byte, mimeType string) (*ExtractedContent, error) {
				assert.Equal(t, "application/pdf", mimeType)
				return extracted, nil
			},
			buildQuestionBankFunc: func(ctx context.Context, ex *ExtractedContent, subject, difficulty string, count int) ([]GeneratedQuestion, error) {
				assert.Equal(t, 10, count, "default bank size applies")
				return sampleGenerated(), nil
			},
		}
		svc := NewGenerationService(questionRepo, bankRepo, &mockNoteSummaryRepository{}, gemini)

		resp, err := svc.GenerateFromPDF(context.Background(), userID, []byte("%PDF-1.4"), "application/pdf", "cells.pdf", "Biology", "", 0)
		require.NoError(t, err)
		assert.True(t, resp.Success)
		assert.Equal(t, "Cell Biology Essentials", resp.ExtractedContent.Title)
		assert.Equal(t, 2, resp.SavedCount)
		require.NotNil(t, resp.QuestionBankID)
		assert.Equal(t, uint(11), *resp.QuestionBankID)

		require.NotNil(t, bank)
		assert.Equal(t, "Cell Biology Essentials", bank.Name)
		assert.Equal(t, "cells.pdf", bank.SourceFile)
		assert.Equal(t, 2, bank.QuestionCount)
	})

	t.Run("bank record failure is cosmetic", func(t *testing.T) {
		questionRepo := &mockQuestionRepository{
			createBatchFunc: func([]model.Question) error { return nil },
		}
		bankRepo := &mockQuestionBankRepository{
			createFunc: func(*model.QuestionBank) error { return errors.New("disk full") },
		}
		gemini := &mockGeminiService{
			extractDocumentFunc: func(context.Context, []byte, string) (*ExtractedContent, error) {
				return extracted, nil
			},
			buildQuestionBankFunc: func(context.Context, *ExtractedContent, string, string, int) ([]GeneratedQuestion, error) {
				return sampleGenerated(), nil
			},
		}
		svc := NewGenerationService(questionRepo, bankRepo, &mockNoteSummaryRepository{}, gemini)

		resp, err := svc.GenerateFromPDF(context.Background(), userID, []byte("%PDF-1.4"), "application/pdf", "cells.pdf", "Biology", "hard", 3)
		require.NoError(t, err)
		assert.True(t, resp.Success)
		assert.Nil(t, resp.QuestionBankID)
		assert.Equal(t, 2, resp.SavedCount)
	})

	t.Run("extraction failure aborts the flow", func(t *testing.T) {
		gemini := &mockGeminiService{
			extractDocumentFunc: func(context.Context, []byte, string) (*ExtractedContent, error) {
				return nil, ErrGeneration
			},
		}
		svc := NewGenerationService(&mockQuestionRepository{}, &mockQuestionBankRepository{}, &mockNoteSummaryRepository{}, gemini)

		_, err := svc.GenerateFromPDF(context.Background(), userID, []byte("junk"), "application/pdf", "x.pdf", "Biology", "", 0)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrGeneration)
	})
}

func TestSummarizeNotes(t *testing.T) {
	userID := uuid.New()
	summary := &NotesSummary{
		Title:   "Photosynthesis Study Guide",
		Summary: "Light reactions and the Calvin cycle.",
		KeyConcepts: []NotesKeyConcept{
			{Concept: "Chlorophyll", Definition: "Light-absorbing pigment", Importance: "high"},
		},
		StudyTips:           []string{"Draw the electron transport chain"},
		PotentialExamTopics: []string{"Calvin cycle inputs and outputs"},
		DifficultyAreas:     []string{"Photophosphorylation"},
	}

	t.Run("persists the structured summary", func(t *testing.T) {
		var record *model.NoteSummary
		summaryRepo := &mockNoteSummaryRepository{
			createFunc: func(s *model.NoteSummary) error {
				s.ID = 21
				record = s
				return nil
			},
		}
		gemini := &mockGeminiService{
			summarizeNotesFunc: func(ctx context.Context, content, subject string) (*NotesSummary, error) {
				assert.Equal(t, "Biology", subject)
				return summary, nil
			},
		}
		svc := NewGenerationService(&mockQuestionRepository{}, &mockQuestionBankRepository{}, summaryRepo, gemini)

		resp, err := svc.SummarizeNotes(context.Background(), userID, dto.SummarizeNotesRequest{
			Content: "My photosynthesis notes...",
			Subject: "Biology",
		})
		require.NoError(t, err)
		assert.True(t, resp.Success)
		assert.Equal(t, uint(21), resp.SummaryID)
		assert.Equal(t, "Photosynthesis Study Guide", resp.Summary.Title)

		require.NotNil(t, record)
		assert.Equal(t, userID, record.UserID)
		assert.Equal(t, "My photosynthesis notes...", record.OriginalContent)
		require.Len(t, record.KeyConcepts, 1)
		assert.Equal(t, "Chlorophyll", record.KeyConcepts[0].Concept)
		assert.Equal(t, "high", record.KeyConcepts[0].Importance)
	})

	t.Run("persistence failure surfaces", func(t *testing.T) {
		summaryRepo := &mockNoteSummaryRepository{
			createFunc: func(*model.NoteSummary) error { return errors.New("constraint violation") },
		}
		gemini := &mockGeminiService{
			summarizeNotesFunc: func(context.Context, string, string) (*NotesSummary, error) {
				return summary, nil
			},
		}
		svc := NewGenerationService(&mockQuestionRepository{}, &mockQuestionBankRepository{}, summaryRepo, gemini)

		_, err := svc.SummarizeNotes(context.Background(), userID, dto.SummarizeNotesRequest{
			Content: "notes",
			Subject: "Biology",
		})
		require.Error(t, err)
	})
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain json", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  {\"a\":1}  ", `{"a":1}`},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripCodeFence(tt.in))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "abcde", truncate("abcde", 5))
	assert.Equal(t, "abcde...", truncate("abcdefgh", 5))

	t.Run("never splits a multibyte rune", func(t *testing.T) {
		got := truncate("abcdéfgh", 5)
		assert.Equal(t, "abcd...", got)
		assert.True(t, utf8.ValidString(got))

		for max := 1; max < 12; max++ {
			assert.True(t, utf8.ValidString(truncate("héllo wörld 日本語", max)), "max=%d", max)
		}
	})
}

func TestJoinOrUnknown(t *testing.T) {
	assert.Equal(t, "Unknown", joinOrUnknown(nil))
	assert.Equal(t, "Unknown", joinOrUnknown([]string{}))
	assert.Equal(t, "a, b", joinOrUnknown([]string{"a", "b"}))
}
