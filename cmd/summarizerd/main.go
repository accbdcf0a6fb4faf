package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/studyscope/pdf-summarizer/internal/common"
	"github.com/studyscope/pdf-summarizer/internal/llm/openrouter"
	"github.com/studyscope/pdf-summarizer/internal/pdftext"
	"github.com/studyscope/pdf-summarizer/internal/pipeline"
	"github.com/studyscope/pdf-summarizer/internal/ratelimit"
	"github.com/studyscope/pdf-summarizer/internal/server"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	completer := openrouter.NewClient(openrouter.Config{
		APIKey:  cfg.LLM.APIKey,
		BaseURL: cfg.LLM.BaseURL,
		Referer: cfg.LLM.Referer,
		Title:   cfg.LLM.Title,
		Timeout: cfg.LLM.Timeout,
	}, logger)

	gate := ratelimit.NewGate(ratelimit.NewMemoryStore(), logger)
	proc := pipeline.NewProcessor(logger, pdftext.New(logger), completer, gate, cfg.RateLimit)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: server.New(logger, proc).Router(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server.listen", "addr", cfg.Server.Addr, "model", cfg.LLM.Model)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server.failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server.shutdown_failed", "error", err)
		os.Exit(1)
	}
	logger.Info("server.stopped")
}
