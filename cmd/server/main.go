package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jobly/api/companies"
	companyHandlers "github.com/jobly/api/companies/handlers"
	companyRepository "github.com/jobly/api/companies/repository"
	companyServices "github.com/jobly/api/companies/services"
	"github.com/jobly/api/internal/auth/tokens"
	"github.com/jobly/api/internal/cache"
	"github.com/jobly/api/internal/database/postgres"
	"github.com/jobly/api/internal/middleware/authjwt"
	"github.com/jobly/api/internal/middleware/requestid"
	"github.com/jobly/api/internal/pkg/log"
	platformconfig "github.com/jobly/api/internal/platform/config"
	"github.com/jobly/api/internal/types"
	"github.com/jobly/api/jobs"
	jobHandlers "github.com/jobly/api/jobs/handlers"
	jobRepository "github.com/jobly/api/jobs/repository"
	jobServices "github.com/jobly/api/jobs/services"
	"github.com/jobly/api/users"
	userHandlers "github.com/jobly/api/users/handlers"
	userRepository "github.com/jobly/api/users/repository"
	userServices "github.com/jobly/api/users/services"
)

func fatal(format string, a ...interface{}) {
	log.Error(format, a...)
	os.Exit(1)
}

func main() {
	cfg, err := platformconfig.LoadFromEnv()
	if err != nil {
		fatal("Failed to load platform config: %v", err)
	}
	log.SetDebug(cfg.Server.Debug)

	ctx := context.Background()
	pgClient, err := postgres.NewClient(ctx, &cfg.Database.Postgres)
	if err != nil {
		fatal("Failed to create postgres client: %v", err)
	}
	defer pgClient.Close()

	if cfg.Database.AutoMigrate {
		if err := postgres.ApplySchema(ctx, pgClient); err != nil {
			fatal("Failed to apply schema: %v", err)
		}
		log.Info("Schema applied")
	}

	cacheService, err := cache.NewServiceFromPlatform(cfg.Cache)
	if err != nil {
		// listings still work uncached
		log.Warn("Cache unavailable, continuing without it: %v", err)
		cacheService = nil
	}
	if cacheService != nil {
		defer cacheService.Close()
	}

	issuer := tokens.NewIssuer(cfg.JWT.Secret, cfg.JWT.TokenTTL)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			log.ErrorWithContext(c.UserContext(), "[ErrorHandler] Path: %s, Error: %v, Code: %d", c.Path(), err, code)

			// If response already set by handler, don't override it
			if len(c.Response().Body()) > 0 {
				return nil
			}
			return c.Status(code).JSON(fiber.Map{
				"code":    "INTERNAL_ERROR",
				"message": err.Error(),
			})
		},
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.WebDomain,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods: "GET, POST, DELETE, PATCH, OPTIONS",
	}))
	app.Use(requestid.New())
	app.Use(authjwt.New(authjwt.Config{Parser: issuer, UserCtxName: types.UserCtxName}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pgClient.HealthCheck(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unhealthy", "error": err.Error()})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	jobService := jobServices.NewJobService(jobRepository.NewPostgresRepository(pgClient), cacheService)
	jobs.RegisterRoutes(app, &jobs.Handlers{
		JobHandler: jobHandlers.NewJobHandler(jobService),
	})

	companyService := companyServices.NewCompanyService(companyRepository.NewPostgresRepository(pgClient), jobService)
	companies.RegisterRoutes(app, &companies.Handlers{
		CompanyHandler: companyHandlers.NewCompanyHandler(companyService),
	})

	userService := userServices.NewUserService(userRepository.NewPostgresRepository(pgClient), issuer, cfg.Security)
	users.RegisterRoutes(app, &users.Handlers{
		UserHandler: userHandlers.NewUserHandler(userService),
		AuthHandler: userHandlers.NewAuthHandler(userService),
	}, cfg.RateLimits)

	go func() {
		log.Info("Starting Jobly API on %s", cfg.Server.Addr())
		if err := app.Listen(cfg.Server.Addr()); err != nil {
			fatal("Server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error("Shutdown failed: %v", err)
	}
}
