package main

import (
	"os"
	"os/signal"
	"syscall"

	"aicareer/config"
	"aicareer/database"
	"aicareer/grading"
	"aicareer/logger"
	"aicareer/routers"
	"aicareer/utils"
)

func main() {
	cfg := config.LoadConfig()

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := database.Connect(cfg, log)
	if err != nil {
		log.Fatal("Failed to connect to database", "error", err)
	}
	if _, err := database.SeedStacks(db, log); err != nil {
		log.Error("Error seeding data", "error", err)
	}
	if err := database.EnsureAdmin(db, cfg, log); err != nil {
		log.Error("Admin bootstrap failed", "error", err)
	}

	scheduler, err := utils.InitializeCurriculumScheduler(db, cfg.CurriculumAuditCron, log)
	if err != nil {
		log.Error("Curriculum scheduler not started", "error", err)
	}

	gemini := grading.NewGemini(grading.GeminiConfigFrom(cfg), log)
	app := routers.NewApp(routers.Deps{
		DB:       db,
		Config:   cfg,
		Log:      log,
		Reviewer: gemini,
		Chat:     gemini,
		Mailer:   utils.NewMailer(cfg, log),
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info("Shutting down")
		if scheduler != nil {
			<-scheduler.Stop().Done()
		}
		_ = app.Shutdown()
	}()

	log.Info("Server is running", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal("Server stopped", "error", err)
	}
}
