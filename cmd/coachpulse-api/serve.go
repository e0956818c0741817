package main

import (
	"fmt"

	"github.com/coachpulse/backend/internal/config"
	"github.com/coachpulse/backend/internal/handlers"
	"github.com/coachpulse/backend/internal/logger"
	"github.com/coachpulse/backend/internal/middleware"
	"github.com/coachpulse/backend/internal/repository"
	"github.com/coachpulse/backend/internal/service"
	"github.com/coachpulse/backend/pkg/supabase"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long:  `Start the HTTP API server and listen for requests.`,
	RunE:  runServe,
}

var (
	port string
)

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	// Load .env in development; the file is optional everywhere else
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Override port from flag if provided
	if port != "" {
		cfg.Server.Port = port
	}

	log := logger.NewSlogLogger(logger.Config{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: cfg.Log.Format,
	})
	logger.SetDefault(log)

	log.Info("starting coachpulse api server",
		logger.String("env", cfg.Server.Env),
		logger.String("supabase_url", cfg.Supabase.URL),
	)

	// Initialize Supabase client
	supabaseClient := supabase.NewClient(cfg.Supabase.URL, cfg.Supabase.ServiceKey)

	// Initialize repositories
	checkInRepo := repository.NewCheckInRepository(supabaseClient)
	memberRepo := repository.NewMemberRepository(supabaseClient)
	cohortRepo := repository.NewCohortRepository(supabaseClient)
	questionnaireRepo := repository.NewQuestionnaireRepository(supabaseClient)

	// Initialize services
	attentionService := service.NewAttentionService(memberRepo, checkInRepo, cohortRepo, questionnaireRepo, log)
	insightsService := service.NewInsightsService(cohortRepo, checkInRepo, questionnaireRepo, cfg.Engine.ScoreConcurrency, log)
	weeklyService := service.NewWeeklyService(cohortRepo, checkInRepo, questionnaireRepo, cfg.Engine.CheckInCadence, cfg.Engine.ScoreConcurrency, log)

	// Initialize handlers
	attentionHandler := handlers.NewAttentionHandler(attentionService)
	insightsHandler := handlers.NewInsightsHandler(insightsService)
	weeklyHandler := handlers.NewWeeklyHandler(weeklyService)

	// Set Gin mode based on environment
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORS())
	router.Use(middleware.RateLimit())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
			"env":    cfg.Server.Env,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("")
		protected.Use(middleware.Auth(supabaseClient))
		{
			protected.GET("/members/:id/attention", attentionHandler.GetMemberAttention)

			coach := protected.Group("/coach")
			coach.Use(middleware.RateLimitAggregations())
			{
				coach.GET("/insights", insightsHandler.GetCoachInsights)
				coach.GET("/weekly-summaries", weeklyHandler.GetWeeklySummaries)
			}
		}
	}

	log.Info("server listening", logger.String("port", cfg.Server.Port))
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
