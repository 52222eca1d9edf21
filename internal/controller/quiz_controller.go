package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/studyforge/studyforge/internal/dto"
	"github.com/studyforge/studyforge/internal/middleware"
	"github.com/studyforge/studyforge/internal/service"
)

type QuizController struct {
	quizService service.QuizService
}

func NewQuizController(quizService service.QuizService) *QuizController {
	return &QuizController{quizService: quizService}
}

// StartQuiz godoc
// @Summary Start an adaptive quiz session
// @Description Selects questions for the subject via the adaptive oracle and opens a new active session. The served questions never include the correct answer.
// @Tags Quiz
// @Accept json
// @Produce json
// @Param request body dto.StartQuizRequest true "Subject, optional question count and preferred difficulty"
// @Success 200 {object} dto.StartQuizResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid credential"
// @Failure 404 {object} dto.ErrorResponse "No questions for subject"
// @Failure 502 {object} dto.ErrorResponse "AI generation failed"
// @Router /quiz/start [post]
func (c *QuizController) StartQuiz(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Unauthorized"})
		return
	}

	var req dto.StartQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.quizService.StartQuiz(ctx.Request.Context(), userID, req)
	if err != nil {
		log.Error().Err(err).Str("subject", req.Subject).Msg("StartQuiz handler: service error")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// SubmitAnswer godoc
// @Summary Submit one answer for an active session
// @Description Grades the answer by exact match, generates AI feedback, persists the answer and kicks off the progress side effect.
// @Tags Quiz
// @Accept json
// @Produce json
// @Param request body dto.SubmitAnswerRequest true "Session, question, answer text and elapsed time"
// @Success 200 {object} dto.SubmitAnswerResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid credential"
// @Failure 404 {object} dto.ErrorResponse "Question or session not found"
// @Failure 409 {object} dto.ErrorResponse "Session already completed"
// @Failure 502 {object} dto.ErrorResponse "AI generation failed"
// @Router /quiz/answer [post]
func (c *QuizController) SubmitAnswer(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Unauthorized"})
		return
	}

	var req dto.SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.quizService.SubmitAnswer(ctx.Request.Context(), userID, req)
	if err != nil {
		log.Error().Err(err).Uint("sessionID", req.QuizSessionID).Uint("questionID", req.QuestionID).Msg("SubmitAnswer handler: service error")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// CompleteQuiz godoc
// @Summary Finalize a quiz session
// @Description Scores the session, generates the AI performance analysis, accrues points and checks achievements. Re-invoking on a completed session replays the stored result.
// @Tags Quiz
// @Accept json
// @Produce json
// @Param request body dto.CompleteQuizRequest true "Session id"
// @Success 200 {object} dto.CompleteQuizResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid credential"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 502 {object} dto.ErrorResponse "AI generation failed"
// @Router /quiz/complete [post]
func (c *QuizController) CompleteQuiz(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Unauthorized"})
		return
	}

	var req dto.CompleteQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.quizService.CompleteQuiz(ctx.Request.Context(), userID, req)
	if err != nil {
		log.Error().Err(err).Uint("sessionID", req.QuizSessionID).Msg("CompleteQuiz handler: service error")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
