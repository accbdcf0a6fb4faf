// Command analyze runs the full analysis over one PDF and prints the result
// as JSON. With -o it additionally writes an XLSX report.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/studyscope/pdf-summarizer/internal/common"
	"github.com/studyscope/pdf-summarizer/internal/export"
	"github.com/studyscope/pdf-summarizer/internal/llm/openrouter"
	"github.com/studyscope/pdf-summarizer/internal/pdftext"
	"github.com/studyscope/pdf-summarizer/internal/pipeline"
)

func main() {
	model := flag.String("model", "", "model id (defaults to OPENROUTER_MODEL)")
	out := flag.String("o", "", "write an XLSX report to this path")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logger)

	if flag.NArg() != 1 {
		logger.Error("usage: analyze [-model id] [-o report.xlsx] <file.pdf>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}
	if *model == "" {
		*model = cfg.LLM.Model
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error("reading input", "path", path, "error", err)
		os.Exit(1)
	}

	completer := openrouter.NewClient(openrouter.Config{
		APIKey:  cfg.LLM.APIKey,
		BaseURL: cfg.LLM.BaseURL,
		Referer: cfg.LLM.Referer,
		Title:   cfg.LLM.Title,
		Timeout: cfg.LLM.Timeout,
	}, logger)
	proc := pipeline.NewProcessor(logger, pdftext.New(logger), completer, nil, cfg.RateLimit)

	analysis, err := proc.ProcessPDF(context.Background(), "cli", *model, filepath.Base(path), "", data)
	if err != nil {
		logger.Error("analysis failed", "error", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(analysis); err != nil {
		logger.Error("encoding result", "error", err)
		os.Exit(1)
	}

	if *out != "" {
		report, err := export.NewService(logger).AnalysisXLSX(analysis)
		if err != nil {
			logger.Error("building report", "error", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*out, report, 0o644); err != nil {
			logger.Error("writing report", "path", *out, "error", err)
			os.Exit(1)
		}
	}
}
