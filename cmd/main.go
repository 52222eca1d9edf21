package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/studyforge/studyforge/config"
	"github.com/studyforge/studyforge/database"
	"github.com/studyforge/studyforge/internal/controller"
	"github.com/studyforge/studyforge/internal/logger"
	"github.com/studyforge/studyforge/internal/middleware"
	"github.com/studyforge/studyforge/internal/model"
	"github.com/studyforge/studyforge/internal/repository"
	"github.com/studyforge/studyforge/internal/service"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title StudyForge API
// @version 1.0
// @description AI-powered study platform: adaptive quizzes, question generation from notes and PDFs, progress tracking and leaderboards.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		fx.Provide(
			repository.NewQuestionRepository,
			repository.NewQuizSessionRepository,
			repository.NewQuizAnswerRepository,
			repository.NewProgressRepository,
			repository.NewAchievementRepository,
			repository.NewNoteSummaryRepository,
			repository.NewQuestionBankRepository,
		),

		fx.Provide(
			service.NewGeminiLLMService,
			service.NewAchievementService,
			service.NewQuizService,
			service.NewProgressService,
			service.NewGenerationService,
		),

		fx.Provide(
			controller.NewQuizController,
			controller.NewProgressController,
			controller.NewGenerationController,
		),

		fx.Invoke(AutoMigrateDB),
		fx.Invoke(SeedAchievements),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer wires the API routes and manages the HTTP
// server lifecycle through fx hooks.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	quizCtrl *controller.QuizController,
	progressCtrl *controller.ProgressController,
	generationCtrl *controller.GenerationController,
) {
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	api.Use(middleware.RequireAuth(cfg))
	{
		quiz := api.Group("/quiz")
		quiz.POST("/start", quizCtrl.StartQuiz)
		quiz.POST("/answer", quizCtrl.SubmitAnswer)
		quiz.POST("/complete", quizCtrl.CompleteQuiz)

		api.GET("/progress", progressCtrl.GetProgress)
		api.GET("/leaderboard", progressCtrl.GetLeaderboard)
		api.GET("/dashboard/stats", progressCtrl.GetDashboardStats)

		questions := api.Group("/questions")
		questions.POST("/generate", generationCtrl.GenerateQuestions)
		questions.POST("/generate-from-pdf", generationCtrl.GenerateFromPDF)

		api.POST("/notes/summarize", generationCtrl.SummarizeNotes)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("StudyForge API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Question{},
		&model.QuizSession{},
		&model.QuizAnswer{},
		&model.UserProgress{},
		&model.Achievement{},
		&model.UserAchievement{},
		&model.NoteSummary{},
		&model.QuestionBank{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}

func SeedAchievements(achievementRepo repository.AchievementRepository) error {
	if err := achievementRepo.Seed(service.DefaultAchievements()); err != nil {
		log.Error().Err(err).Msg("Achievement seeding failed")
		return err
	}
	return nil
}
