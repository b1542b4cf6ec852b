package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"

	"schedules_backend/internals/configs"
	database "schedules_backend/internals/databases"
	"schedules_backend/internals/databases/catalog"
	academicService "schedules_backend/internals/features/academics/academic_terms/service"
	recordService "schedules_backend/internals/features/schedules/records/service"
	accountScheduler "schedules_backend/internals/features/users/accounts/scheduler"
	accountService "schedules_backend/internals/features/users/accounts/service"
	helper "schedules_backend/internals/helpers"
	middlewares "schedules_backend/internals/middlewares"
	routes "schedules_backend/internals/route"
	"schedules_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()

	app := fiber.New(fiber.Config{
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ProxyHeader:           fiber.HeaderXForwardedFor,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return helper.JsonAppError(c, err)
		},
	})

	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	middlewares.SetupMiddlewares(app)

	// request deadline, aligned with statement_timeout on the DB side
	app.Use(func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), configs.GetDuration("REQUEST_TIMEOUT", 5*time.Second))
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	})

	// DB connect + pool + warm-up
	database.ConnectDB()
	database.TunePool()
	database.WarmUpQueries()

	reg := catalog.Build()
	if err := reg.Migrate(database.DB); err != nil {
		log.Fatalf("[ERROR] migrate: %v", err)
	}

	recordSvc := recordService.NewRecordService(database.DB, reg)
	academicSvc := academicService.NewAcademicService(database.DB, reg)
	accountSvc := accountService.NewAccountService(database.DB, reg, configs.JWTSecret, configs.JWTAccessTTL)

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 30*time.Second)
	if err := accountSvc.SeedRoles(seedCtx); err != nil {
		log.Fatalf("[ERROR] seed roles: %v", err)
	}
	if configs.GetBool("SEED_ON_START", false) {
		if err := seeds.RunAllSeeds(seedCtx, database.DB, reg, accountSvc, configs.GetEnv("SEED_DIR", "internals/seeds")); err != nil {
			log.Fatalf("[ERROR] seed: %v", err)
		}
	}
	cancelSeed()

	// schedulers after DB is ready
	auditor, err := recordService.StartScheduleAuditor(recordSvc, configs.ScheduleAuditCron)
	if err != nil {
		log.Fatalf("[ERROR] schedule auditor: %v", err)
	}
	cleanup, err := accountScheduler.StartBlacklistCleanup(database.DB, configs.TokenCleanupCron)
	if err != nil {
		log.Fatalf("[ERROR] blacklist cleanup: %v", err)
	}

	routes.SetupRoutes(app, database.DB, reg, routes.Services{
		Records:  recordSvc,
		Academic: academicSvc,
		Accounts: accountSvc,
	})

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := configs.GetEnv("PORT", "3000")
	go func() {
		log.Printf("[INFO] listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown: stop crons, drain HTTP, close the pool
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("[INFO] shutting down...")

	<-auditor.Stop().Done()
	<-cleanup.Stop().Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
