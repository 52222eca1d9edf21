package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/studyforge/studyforge/internal/dto"
	"github.com/studyforge/studyforge/internal/middleware"
	"github.com/studyforge/studyforge/internal/service"
)

type ProgressController struct {
	progressService service.ProgressService
}

func NewProgressController(progressService service.ProgressService) *ProgressController {
	return &ProgressController{progressService: progressService}
}

// GetProgress godoc
// @Summary Get the caller's learning progress
// @Description Aggregated overview, per-subject statistics, recent quizzes and earned achievements, filtered by timeframe.
// @Tags Progress
// @Produce json
// @Param subject query string false "Restrict to one subject"
// @Param timeframe query string false "week, month, year or all (default week)"
// @Success 200 {object} dto.ProgressResponse
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid credential"
// @Router /progress [get]
func (c *ProgressController) GetProgress(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Unauthorized"})
		return
	}

	subject := ctx.Query("subject")
	timeframe := ctx.Query("timeframe")

	resp, err := c.progressService.GetProgress(userID, subject, timeframe)
	if err != nil {
		log.Error().Err(err).Str("subject", subject).Msg("GetProgress handler: service error")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetLeaderboard godoc
// @Summary Get the points leaderboard
// @Description Ranks users by total points within the timeframe. The caller's own rank is surfaced when present.
// @Tags Progress
// @Produce json
// @Param subject query string false "Restrict to one subject"
// @Param timeframe query string false "week, month, year or all (default month)"
// @Param limit query int false "Maximum entries, capped at 100 (default 50)"
// @Success 200 {object} dto.LeaderboardResponse
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid credential"
// @Router /leaderboard [get]
func (c *ProgressController) GetLeaderboard(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Unauthorized"})
		return
	}

	subject := ctx.Query("subject")
	timeframe := ctx.Query("timeframe")
	limit, _ := strconv.Atoi(ctx.Query("limit"))

	resp, err := c.progressService.GetLeaderboard(userID, subject, timeframe, limit)
	if err != nil {
		log.Error().Err(err).Msg("GetLeaderboard handler: service error")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetDashboardStats godoc
// @Summary Get dashboard headline numbers
// @Description Totals across all subjects plus the five most recent activities and suggested goals.
// @Tags Progress
// @Produce json
// @Success 200 {object} dto.DashboardStatsResponse
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid credential"
// @Router /dashboard/stats [get]
func (c *ProgressController) GetDashboardStats(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Unauthorized"})
		return
	}

	resp, err := c.progressService.GetDashboardStats(userID)
	if err != nil {
		log.Error().Err(err).Msg("GetDashboardStats handler: service error")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
