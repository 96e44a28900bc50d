// Package app wires configuration, the workspace store, the model catalog,
// ingestion, the chain executor and the HTTP surface into one runnable unit.
package app

import (
	"context"
	"log"
	"net/http"

	"regbench/internal/agent"
	"regbench/internal/chain"
	"regbench/internal/export"
	"regbench/internal/gateway/config"
	"regbench/internal/gateway/handler"
	"regbench/internal/gateway/middleware"
	"regbench/internal/gateway/server"
	"regbench/internal/ingest"
	"regbench/internal/llm"
	"regbench/internal/workspace"
)

// ingestEventBuffer sizes the always-on ingestion progress topic.
const ingestEventBuffer = 64

type App struct {
	cfg     *config.Config
	server  *server.Server
	catalog *llm.Catalog
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	store := workspace.NewStore(agent.Defaults())

	catalog := llm.NewCatalog(log.Default())
	if cfg.FakeLLM {
		log.Printf("LLM_FAKE is set; using the offline fake backend")
		llm.RegisterFakeModels(catalog, llm.NewFakeClient())
	} else {
		llm.RegisterGeminiModels(catalog)
		llm.RegisterGroqModels(catalog)
	}

	broker := chain.NewBroker()
	// The ingest topic is one shared channel sized for a single websocket
	// subscriber; the workbench serves one browser session, and a second
	// subscriber on the same topic would split the event stream.
	broker.Allocate(handler.IngestTopic, ingestEventBuffer)

	var rec ingest.Recognizer
	if cfg.OCR.Endpoint != "" {
		rec = ingest.NewRemoteRecognizer(cfg.OCR.Endpoint, cfg.OCR.Language)
	}
	adapter := ingest.NewAdapter(store, rec, func(status string) {
		broker.Emit(handler.IngestTopic, chain.Event{Type: chain.EventStatus, Message: status})
	})

	executor := chain.NewExecutor(store, catalog, broker)

	artifacts, err := buildArtifactStore(cfg)
	if err != nil {
		return nil, err
	}

	svc := handler.NewService(store, adapter, executor, broker, artifacts)
	var root http.Handler = handler.BuildMux(svc)
	root = middleware.CORS(root)

	return &App{
		cfg:     cfg,
		server:  server.New(cfg.Port, root),
		catalog: catalog,
	}, nil
}

func buildArtifactStore(cfg *config.Config) (export.Store, error) {
	if !cfg.Artifact.Enabled {
		return export.NewMemoryStore(), nil
	}
	s3, err := export.NewS3Store(export.S3Config{
		Endpoint:  cfg.Artifact.Endpoint,
		Region:    cfg.Artifact.Region,
		AccessKey: cfg.Artifact.AccessKey,
		SecretKey: cfg.Artifact.SecretKey,
		Bucket:    cfg.Artifact.Bucket,
		UseSSL:    cfg.Artifact.UseSSL,
	})
	if err != nil {
		return nil, err
	}
	return s3, nil
}

func (a *App) Start() error {
	return a.server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	if err := a.catalog.Close(); err != nil {
		log.Printf("closing model clients: %v", err)
	}
	return a.server.Shutdown(ctx)
}
