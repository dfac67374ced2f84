package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"progress-service/internal/config"
	"progress-service/internal/db"
	"progress-service/internal/event"
	"progress-service/internal/handlers"
	"progress-service/internal/lessons"
	"progress-service/internal/repository"
	"progress-service/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}
	cfg := config.New()
	if cfg.MongoURI == "" {
		log.Fatal("MONGO_URI is required")
	}
	db.InitMongo(cfg.MongoURI)
	defer db.DisconnectMongo()

	// Redis holds the exact played-key sets; optional
	redisClient := db.InitRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	// RabbitMQ event publisher
	var publisher *event.EventPublisher
	if cfg.RabbitMQURI != "" && cfg.RabbitMQExchange != "" {
		var err error
		publisher, err = event.NewEventPublisher(cfg.RabbitMQURI, cfg.RabbitMQExchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RabbitMQ not configured, progress events will not be published")
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", cfg.FEAddress},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	database := db.Client.Database(cfg.MongoDatabase)

	// Lesson catalog
	catalog := lessons.DefaultCatalog()
	lessonHandler := handlers.NewLessonHandler(catalog)

	// Progress records and played-key ledger
	progressRepo := repository.NewProgressRepository(database)
	var ledgerRepo *repository.LedgerRepository
	if redisClient != nil {
		ledgerRepo = repository.NewLedgerRepository(redisClient)
	}

	progressService := service.NewProgressService(progressRepo, ledgerRepo, catalog)
	progressHandler := handlers.NewProgressHandler(progressService)

	// Periodic reconciliation sweep over open sessions
	loopCtx, cancelLoop := context.WithCancel(context.Background())
	defer cancelLoop()
	progressService.StartReconcileLoop(loopCtx, time.Duration(cfg.ReconcileIntervalSeconds)*time.Second)

	// Corrections announced elsewhere trigger a self-heal re-check
	if cfg.RabbitMQURI != "" && cfg.RabbitMQExchange != "" {
		consumer, err := event.NewEventConsumer(cfg.RabbitMQURI, cfg.RabbitMQExchange, progressService)
		if err != nil {
			log.Fatalf("Failed to start correction consumer: %v", err)
		}
		defer consumer.Close()
		if err := consumer.Start(); err != nil {
			log.Fatalf("Failed to consume corrections: %v", err)
		}
	}

	// Public routes - lesson catalog and persisted progress
	publicLessons := r.Group("/public/progress/lessons")
	{
		publicLessons.GET("/", func(c *gin.Context) {
			lessonHandler.ListLessons(c)
			if publisher != nil {
				publisher.Publish("progress.lesson.list", nil)
			}
		})
		publicLessons.GET("/:id", func(c *gin.Context) {
			lessonHandler.GetLesson(c)
			if publisher != nil {
				publisher.Publish("progress.lesson.get", gin.H{"id": c.Param("id")})
			}
		})
	}

	publicProgress := r.Group("/public/progress/user")
	{
		publicProgress.GET("/:userId", func(c *gin.Context) {
			progressHandler.GetUserRecords(c)
			if publisher != nil {
				publisher.Publish("progress.records.listed", gin.H{"user_id": c.Param("userId")})
			}
		})
		publicProgress.GET("/:userId/lesson/:lessonId", func(c *gin.Context) {
			progressHandler.GetRecord(c)
			if publisher != nil {
				publisher.Publish("progress.record.read", gin.H{
					"user_id":   c.Param("userId"),
					"lesson_id": c.Param("lessonId"),
				})
			}
		})
	}

	setupSessionRoutes(r, progressHandler, publisher)

	r.Run(":" + cfg.Port)
}

func setupSessionRoutes(r *gin.Engine, progressHandler *handlers.ProgressHandler, publisher *event.EventPublisher) {
	protected := r.Group("/protected/progress/session")

	// Authentication middleware: the gateway injects the user identity
	protected.Use(func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
				"code":  "MISSING_USER_ID",
			})
			c.Abort()
			return
		}
		c.Next()
	})

	{
		// === SESSION LIFECYCLE ===

		protected.POST("/", func(c *gin.Context) {
			progressHandler.OpenSession(c)
			if publisher != nil {
				publisher.Publish("progress.session.opened", gin.H{
					"user_id":   c.GetHeader("X-User-ID"),
					"timestamp": time.Now(),
				})
			}
		})

		protected.POST("/:id/close", func(c *gin.Context) {
			progressHandler.CloseSession(c)
			if publisher != nil {
				publisher.Publish("progress.session.closed", gin.H{
					"session_id": c.Param("id"),
					"user_id":    c.GetHeader("X-User-ID"),
					"timestamp":  time.Now(),
				})
			}
		})

		// === ENGAGEMENT AND PRACTICE ===

		protected.POST("/:id/engagement", func(c *gin.Context) {
			progressHandler.RecordEngagement(c)
			if publisher != nil {
				publisher.Publish("progress.engagement.recorded", gin.H{
					"session_id": c.Param("id"),
					"user_id":    c.GetHeader("X-User-ID"),
					"timestamp":  time.Now(),
				})
			}
		})

		protected.POST("/:id/practice", func(c *gin.Context) {
			progressHandler.ReportPracticeScore(c)
			if publisher != nil {
				publisher.Publish("progress.practice.reported", gin.H{
					"session_id": c.Param("id"),
					"user_id":    c.GetHeader("X-User-ID"),
					"timestamp":  time.Now(),
				})
			}
		})

		protected.POST("/:id/practice/:activityId/retry", func(c *gin.Context) {
			progressHandler.RetryActivity(c)
			if publisher != nil {
				publisher.Publish("progress.practice.retried", gin.H{
					"session_id":  c.Param("id"),
					"activity_id": c.Param("activityId"),
					"user_id":     c.GetHeader("X-User-ID"),
					"timestamp":   time.Now(),
				})
			}
		})

		// === TIME AND VISIBILITY ===

		protected.POST("/:id/heartbeat", func(c *gin.Context) {
			progressHandler.Heartbeat(c)
		})

		// === STATUS ===

		protected.GET("/:id", func(c *gin.Context) {
			progressHandler.GetSessionStatus(c)
		})
	}
}
