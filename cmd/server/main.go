package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/resumatch/internal/api"
	"github.com/dgallion1/resumatch/internal/config"
	"github.com/dgallion1/resumatch/internal/pipeline"
	"github.com/dgallion1/resumatch/internal/portal"
	"github.com/dgallion1/resumatch/internal/store"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize storage.
	st, err := store.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("open store", "error", err)
		os.Exit(1)
	}
	log.Info("store ready", "driver", st.Driver())

	// Initialize portal client. Without one, matches use default job skills.
	var jobs pipeline.JobSource
	var pc *portal.Client
	if cfg.PortalURL != "" {
		pc = portal.NewClient(cfg.PortalURL, cfg.PortalAPIKey)
		jobs = pc
	} else {
		log.Warn("PORTAL_URL not set, job postings will use default skills")
	}
	resolver := pipeline.NewSkillResolver(jobs, cfg.DefaultJobSkills, log).WithRetry(pipeline.RetryOptions(cfg))

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg, st, resolver, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, st, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	done := make(chan struct{})
	go func() {
		defer close(done)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		// Stop accepting uploads before the queue closes.
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		orch.Stop()

		if pc != nil {
			pc.Close()
		}
		if err := st.Close(); err != nil {
			log.Error("close store", "error", err)
		}
	}()

	log.Info("starting resumatch", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	<-done
}
