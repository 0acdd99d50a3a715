package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	config "github.com/SynchronoMedia/english-skills-101/configs"
	job "github.com/SynchronoMedia/english-skills-101/internal/jobs"
	"github.com/SynchronoMedia/english-skills-101/internal/repository"
	"github.com/SynchronoMedia/english-skills-101/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx := context.Background()

	driveService, err := service.NewDriveService(ctx, cfg.GoogleCredential)
	if err != nil {
		log.Fatalf("Failed to set up drive access: %v", err)
	}

	sessionRepo := repository.NewSessionRepository()
	scheduleRepo := repository.NewScheduleRepository()

	authService := service.NewAuthService(*cfg, sessionRepo)
	scheduleService := service.NewScheduleService(scheduleRepo)
	publishService := service.NewPublishService()
	engagementService := service.NewEngagementService()

	autopost := job.NewAutopostJob(*cfg, authService, scheduleService,
		driveService, publishService, engagementService)

	if err := autopost.Run(ctx); err != nil {
		log.Fatalf("Run failed: %v", err)
	}
}
