// file: internals/route/index.go
package routes

import (
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"examku_backend/internals/configs"
	examRoutes "examku_backend/internals/features/exams/route"
	"examku_backend/internals/middlewares"
	routeDetails "examku_backend/internals/route/details"
)

var startTime time.Time

// NewApp builds the fiber app with the global middleware chain.
func NewApp(cfg configs.AppConfig, log *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
		ReadTimeout:             15 * time.Second,
		WriteTimeout:            30 * time.Second,
		IdleTimeout:             90 * time.Second,
	})
	middlewares.SetupMiddlewares(app, cfg, log)
	return app
}

// SetupRoutes mounts health and the admin/user groups.
func SetupRoutes(app *fiber.App, db *gorm.DB, m *examRoutes.Module, cfg configs.AppConfig, log *zap.Logger) {
	startTime = time.Now()

	BaseRoutes(app, db, cfg)

	log.Info("setting up ADMIN group")
	admin := app.Group("/api/a/:school_id", middlewares.UseSchoolScope())
	routeDetails.ExamAdminRoutes(admin, m)

	log.Info("setting up USER group")
	user := app.Group("/api/u/:school_id", middlewares.UseSchoolScope())
	routeDetails.ExamUserRoutes(user, m)
}
