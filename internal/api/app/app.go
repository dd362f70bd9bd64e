package app

import (
	"context"
	"fmt"
	"log"

	"pkgcheck/internal/analysis"
	"pkgcheck/internal/api/config"
	"pkgcheck/internal/api/handler"
	"pkgcheck/internal/archive"
	"pkgcheck/internal/aur"
	"pkgcheck/internal/llm"
	"pkgcheck/internal/server"
)

type App struct {
	server *server.Server
	llm    llm.Client
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	client, err := llm.NewGeminiClient(ctx, cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to init llm client: %w", err)
	}

	aurClient := aur.NewClient(cfg.AURBaseURL, nil)
	models := llm.ParseModelSet(cfg.CompareModels)
	pipeline := analysis.NewPipeline(aurClient, client, models, llm.GeminiFactory)

	var archiver handler.Archiver
	if cfg.Archive.Enabled {
		store, err := archive.NewS3Store(archive.S3Config{
			Endpoint:  cfg.Archive.Endpoint,
			Region:    cfg.Archive.Region,
			AccessKey: cfg.Archive.AccessKey,
			SecretKey: cfg.Archive.SecretKey,
			Bucket:    cfg.Archive.Bucket,
			UseSSL:    cfg.Archive.UseSSL,
		})
		if err != nil {
			log.Printf("api: report archive disabled: %v", err)
		} else {
			archiver = store
		}
	}

	analyzeHandler := handler.NewAnalyzeHandler(pipeline, archiver)
	mux := NewMux(analyzeHandler, cfg.APIToken)
	srv := server.New(cfg.Port, mux)

	return &App{server: srv, llm: client}, nil
}

func (a *App) Start() error {
	return a.server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	_ = a.llm.Close()
	return a.server.Shutdown(ctx)
}
