package controller

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/studyforge/studyforge/internal/dto"
	"github.com/studyforge/studyforge/internal/middleware"
	"github.com/studyforge/studyforge/internal/service"
)

// Uploaded documents above this size are rejected before they reach the
// oracle; the Gemini file-less inline path tops out around 20MB.
const maxUploadBytes = 15 << 20

type GenerationController struct {
	generationService service.GenerationService
}

func NewGenerationController(generationService service.GenerationService) *GenerationController {
	return &GenerationController{generationService: generationService}
}

// GenerateQuestions godoc
// @Summary Generate quiz questions from pasted content
// @Description Produces questions of the requested type and difficulty from raw study material and saves them under the caller's account.
// @Tags Generation
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuestionsRequest true "Study content plus generation options"
// @Success 200 {object} dto.GenerateQuestionsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid credential"
// @Failure 502 {object} dto.ErrorResponse "AI generation failed"
// @Router /questions/generate [post]
func (c *GenerationController) GenerateQuestions(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Unauthorized"})
		return
	}

	var req dto.GenerateQuestionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.generationService.GenerateQuestions(ctx.Request.Context(), userID, req)
	if err != nil {
		log.Error().Err(err).Str("subject", req.Subject).Msg("GenerateQuestions handler: service error")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GenerateFromPDF godoc
// @Summary Generate a question bank from an uploaded PDF
// @Description Extracts the document's content, builds a question bank from it and saves both. Multipart form upload.
// @Tags Generation
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF document"
// @Param subject formData string true "Subject the material belongs to"
// @Param difficulty formData string false "easy, medium or hard (default medium)"
// @Param question_count formData int false "Questions to generate (default 10)"
// @Success 200 {object} dto.GenerateFromPDFResponse
// @Failure 400 {object} dto.ErrorResponse "Missing file or subject"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid credential"
// @Failure 502 {object} dto.ErrorResponse "AI generation failed"
// @Router /questions/generate-from-pdf [post]
func (c *GenerationController) GenerateFromPDF(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Unauthorized"})
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "No file provided"})
		return
	}
	if fileHeader.Size > maxUploadBytes {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "File too large"})
		return
	}
	subject := ctx.PostForm("subject")
	if subject == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Subject is required"})
		return
	}
	difficulty := ctx.PostForm("difficulty")
	questionCount, _ := strconv.Atoi(ctx.PostForm("question_count"))

	file, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Could not read uploaded file"})
		return
	}
	defer file.Close()

	fileData, err := io.ReadAll(file)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Could not read uploaded file"})
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" || strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		mimeType = "application/pdf"
	}

	resp, err := c.generationService.GenerateFromPDF(ctx.Request.Context(), userID, fileData, mimeType, fileHeader.Filename, subject, difficulty, questionCount)
	if err != nil {
		log.Error().Err(err).Str("filename", fileHeader.Filename).Msg("GenerateFromPDF handler: service error")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// SummarizeNotes godoc
// @Summary Summarize study notes
// @Description Produces a structured summary with key concepts, study tips and likely exam topics, and saves it for later review.
// @Tags Generation
// @Accept json
// @Produce json
// @Param request body dto.SummarizeNotesRequest true "Notes content and subject"
// @Success 200 {object} dto.SummarizeNotesResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid credential"
// @Failure 502 {object} dto.ErrorResponse "AI generation failed"
// @Router /notes/summarize [post]
func (c *GenerationController) SummarizeNotes(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Unauthorized"})
		return
	}

	var req dto.SummarizeNotesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.generationService.SummarizeNotes(ctx.Request.Context(), userID, req)
	if err != nil {
		log.Error().Err(err).Str("subject", req.Subject).Msg("SummarizeNotes handler: service error")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
