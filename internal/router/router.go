package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/vclass-go-api/internal/config"
	"github.com/noah-isme/vclass-go-api/internal/handler"
	"github.com/noah-isme/vclass-go-api/internal/middleware"
	"github.com/noah-isme/vclass-go-api/internal/models"
	"github.com/noah-isme/vclass-go-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler              *handler.AuthHandler
	HierarchyHandler         *handler.HierarchyHandler
	AdminUserHandler         *handler.AdminUserHandler
	AssignmentHandler        *handler.AssignmentHandler
	QuizHandler              *handler.QuizHandler
	StudentAssignmentHandler *handler.StudentAssignmentHandler
	StudentQuizHandler       *handler.StudentQuizHandler
	UploadHandler            *handler.UploadHandler
	JWTMiddleware            fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	app.Get("/metrics", observability.MetricsHandler())

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AuthHandler != nil {
		app.Use("/api/auth/signin", middleware.RateLimit("signin", 10, time.Minute))
		app.Use("/api/auth/admin-login", middleware.RateLimit("admin_login", 10, time.Minute))

		auth := app.Group("/api/auth")
		deps.AuthHandler.Register(auth)
		deps.AuthHandler.RegisterProtected(auth.Group("", jwtMiddleware))
	}

	if deps.HierarchyHandler != nil {
		// Reads stay public: the signup form needs the hierarchy before any
		// token exists.
		admin := app.Group("/api/admin")
		deps.HierarchyHandler.RegisterReads(admin)
		deps.HierarchyHandler.RegisterWrites(admin.Group("", jwtMiddleware, middleware.RequireRole(models.RoleAdmin)))
	}

	if deps.AdminUserHandler != nil {
		users := app.Group("/api/admin/users", jwtMiddleware, middleware.RequireRole(models.RoleAdmin))
		deps.AdminUserHandler.Register(users)
	}

	if deps.UploadHandler != nil {
		upload := app.Group("/api/upload", jwtMiddleware)
		deps.UploadHandler.Register(upload)
	}

	if deps.AssignmentHandler != nil {
		assignments := app.Group("/api/assignments", jwtMiddleware, middleware.RequireRole(models.RoleTeacher))
		deps.AssignmentHandler.Register(assignments)
	}

	if deps.QuizHandler != nil {
		quizzes := app.Group("/api/quizzes", jwtMiddleware, middleware.RequireRole(models.RoleTeacher))
		deps.QuizHandler.Register(quizzes)
	}

	if deps.StudentAssignmentHandler != nil {
		studentAssignments := app.Group("/api/student-assignments", jwtMiddleware, middleware.RequireRole(models.RoleStudent))
		deps.StudentAssignmentHandler.Register(studentAssignments)
	}

	if deps.StudentQuizHandler != nil {
		studentQuizzes := app.Group("/api/student-quizzes", jwtMiddleware, middleware.RequireRole(models.RoleStudent))
		deps.StudentQuizHandler.Register(studentQuizzes)
	}
}
