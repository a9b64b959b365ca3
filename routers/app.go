package routers

import (
	"path/filepath"

	"aicareer/config"
	authControllers "aicareer/controllers/auth"
	courseControllers "aicareer/controllers/course"
	superAdminController "aicareer/controllers/superAdmin"
	"aicareer/curriculum"
	"aicareer/grading"
	"aicareer/logger"
	"aicareer/middleware"
	"aicareer/progress"
	authRoutes "aicareer/routers/authRoutes"
	courseRoutes "aicareer/routers/courseRoutes"
	superAdminRoutes "aicareer/routers/superAdmin"
	"aicareer/submission"
	"aicareer/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Deps are the collaborators the HTTP application is built from.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Log      *logger.Logger
	Reviewer grading.Reviewer
	Chat     courseControllers.Chatter
	Mailer   utils.Mailer
}

// NewApp wires stores, services and controllers into a fiber app.
func NewApp(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "aicareer",
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(middleware.AccessLog(d.Log))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	store := curriculum.NewStore(d.DB, d.Log)
	ledger := progress.NewLedger(d.DB)
	aggregator := progress.NewAggregator(d.DB, ledger, store)
	submissions := submission.NewService(store, ledger, d.Reviewer, d.Log)

	authCtrl := authControllers.NewController(d.DB, d.Config, d.Mailer, d.Log)
	courseCtrl := courseControllers.NewCourseController(store, ledger, aggregator, submissions, d.Chat, d.Log)
	adminCtrl := superAdminController.NewController(d.DB, d.Log)

	app.Get("/health", func(c *fiber.Ctx) error {
		sqlDB, err := d.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(c.UserContext())
		}
		if err != nil {
			return middleware.ErrorResponse(c, fiber.StatusServiceUnavailable, middleware.KindInternal, "database unavailable")
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")
	authRoutes.SetupAuthRoutes(api, authCtrl)
	courseRoutes.SetupCourseRoutes(api, courseCtrl)

	admin := api.Group("/admin", middleware.JWTMiddleware(d.Config.JWTKey), middleware.RequireAdmin(d.DB))
	superAdminRoutes.SetupSuperAdminRoutes(admin, adminCtrl)
	courseRoutes.SetupAdminCourseRoutes(admin, courseCtrl)

	// Serve static files and fall back to the SPA entry page
	app.Static("/", d.Config.StaticDir)
	index := filepath.Join(d.Config.StaticDir, "index.html")
	app.Use(func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodGet && c.Method() != fiber.MethodHead {
			return fiber.ErrNotFound
		}
		return c.SendFile(index)
	})

	return app
}
