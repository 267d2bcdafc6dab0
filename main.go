package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/slidedeckhq/slidedeck-be/internal/api"
	"github.com/slidedeckhq/slidedeck-be/internal/auth"
	"github.com/slidedeckhq/slidedeck-be/internal/config"
	"github.com/slidedeckhq/slidedeck-be/internal/datastore"
	"github.com/slidedeckhq/slidedeck-be/internal/imagesearch"
	"github.com/slidedeckhq/slidedeck-be/internal/llm"
	"github.com/slidedeckhq/slidedeck-be/internal/logger"
	"github.com/slidedeckhq/slidedeck-be/internal/monitoring"
	"github.com/slidedeckhq/slidedeck-be/internal/services"
)

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := os.MkdirAll(cfg.UploadDir, 0755); err != nil {
		log.Fatal().Err(err).Msg("Failed to create upload directory")
	}

	auth.Init(cfg.SecretKey)

	store := datastore.New(cfg.DataFile)

	llmClient := llm.NewClient(
		llm.NewAnthropic(cfg.AnthropicAPIKey, cfg.AnthropicModel, cfg.AnthropicMaxTokens),
		llm.NewGemini(cfg.GoogleAPIKey, cfg.GoogleModel, cfg.GoogleTemperature, cfg.GoogleMaxTokens),
	)

	userService := services.NewUserService(store)
	presService := services.NewPresentationService(store)
	uploadService := services.NewUploadService(cfg.UploadDir)
	generateService := services.NewGenerateService(store, llmClient)
	exportService := services.NewExportService(store, cfg.UploadDir)

	reaper := monitoring.NewReaper(cfg.UploadDir, cfg.CleanupSchedule,
		time.Duration(cfg.ExportRetentionHours)*time.Hour)
	go reaper.Run()

	router := api.NewRouter(api.RouterDeps{
		Users:         userService,
		Presentations: presService,
		Uploads:       uploadService,
		Generate:      generateService,
		Export:        exportService,
		ImageSearch:   imagesearch.NewClient(cfg.UnsplashAccessKey),
		CORSOrigin:    cfg.CORSOrigin,
		MaxBodyBytes:  cfg.MaxUploadBytes,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	reaper.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
