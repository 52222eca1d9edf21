package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studyforge/studyforge/internal/dto"
	"github.com/studyforge/studyforge/internal/service"
)

// respondError maps the service error taxonomy onto status codes. Anything
// outside the taxonomy collapses into a generic 500 with a fixed message so
// internals never leak to the client.
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrSessionCompleted):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrGeneration):
		ctx.JSON(http.StatusBadGateway, dto.ErrorResponse{Message: "AI generation failed, please try again"})
	default:
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Internal server error"})
	}
}
