package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/vclass-go-api/internal/config"
	"github.com/noah-isme/vclass-go-api/internal/database"
	"github.com/noah-isme/vclass-go-api/internal/handler"
	"github.com/noah-isme/vclass-go-api/internal/middleware"
	"github.com/noah-isme/vclass-go-api/internal/models"
	"github.com/noah-isme/vclass-go-api/internal/repository"
	"github.com/noah-isme/vclass-go-api/internal/router"
	"github.com/noah-isme/vclass-go-api/internal/service"
	cloud "github.com/noah-isme/vclass-go-api/pkg/cloudinary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Account{},
		&models.Year{},
		&models.Department{},
		&models.Section{},
		&models.Assignment{},
		&models.Quiz{},
		&models.Submission{},
		&models.QuizSubmission{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	uploader, err := cloud.New(cloud.Config{
		CloudName:  cfg.CloudinaryCloudName,
		APIKey:     cfg.CloudinaryAPIKey,
		APISecret:  cfg.CloudinaryAPISecret,
		BaseFolder: cfg.CloudinaryBaseFolder,
	}, logger)
	if err != nil {
		log.Fatalf("failed to create cloudinary client: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	accountRepo := repository.NewAccountRepository(db)
	yearRepo := repository.NewYearRepository(db)
	departmentRepo := repository.NewDepartmentRepository(db)
	sectionRepo := repository.NewSectionRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	quizRepo := repository.NewQuizRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	quizSubmissionRepo := repository.NewQuizSubmissionRepository(db)

	feedCache := service.NewFeedCache(redisClient, cfg.FeedCacheTTL, logger)

	authService := service.NewAuthService(accountRepo, validate, service.AuthConfig{
		JWTSecret:     cfg.JWTSecret,
		TokenTTL:      cfg.TokenTTL,
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
	}, logger)
	accountAdminService := service.NewAccountAdminService(accountRepo, validate, logger)
	hierarchyService := service.NewHierarchyService(yearRepo, departmentRepo, sectionRepo, validate, logger)
	assignmentService := service.NewAssignmentService(assignmentRepo, yearRepo, departmentRepo, validate, uploader, feedCache, cfg.EnforceOwnership, logger)
	quizService := service.NewQuizService(quizRepo, yearRepo, departmentRepo, validate, uploader, feedCache, cfg.EnforceOwnership, logger)
	feedService := service.NewStudentFeedService(assignmentRepo, quizRepo, feedCache, logger)
	assignmentSubmissionService := service.NewAssignmentSubmissionService(assignmentRepo, submissionRepo, uploader, cfg.EnforceOwnership, logger)
	quizSubmissionService := service.NewQuizSubmissionService(quizRepo, quizSubmissionRepo, uploader, cfg.EnforceOwnership, logger)
	uploadService := service.NewUploadService(uploader, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		BodyLimit:    cfg.UploadMaxSizeMB * 1024 * 1024,
	})

	middleware.Register(app, middleware.Config{
		Logger:       &logger,
		AllowOrigins: cfg.CORSAllowOrigins,
	})

	router.Register(app, cfg, router.Dependencies{
		AuthHandler:              handler.NewAuthHandler(authService, accountAdminService, logger),
		HierarchyHandler:         handler.NewHierarchyHandler(hierarchyService, logger),
		AdminUserHandler:         handler.NewAdminUserHandler(accountAdminService, logger),
		AssignmentHandler:        handler.NewAssignmentHandler(assignmentService, assignmentSubmissionService, logger),
		QuizHandler:              handler.NewQuizHandler(quizService, quizSubmissionService, logger),
		StudentAssignmentHandler: handler.NewStudentAssignmentHandler(feedService, assignmentSubmissionService, logger),
		StudentQuizHandler:       handler.NewStudentQuizHandler(feedService, quizSubmissionService, logger),
		UploadHandler:            handler.NewUploadHandler(uploadService, logger),
		JWTMiddleware:            middleware.JWTProtected(cfg.JWTSecret, accountRepo),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
