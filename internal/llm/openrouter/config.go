package openrouter

import (
	"log/slog"
	"net/http"
	"os"
	"time"
)

// Config for the OpenRouter client.
type Config struct {
	APIKey  string        // if empty, falls back to env OPENROUTER_API_KEY
	BaseURL string        // default https://openrouter.ai/api/v1
	Referer string        // sent as HTTP-Referer, required by OpenRouter etiquette
	Title   string        // sent as X-Title
	Timeout time.Duration // http client timeout
}

type Client struct {
	cfg  Config
	http *http.Client
	log  *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("OPENROUTER_API_KEY")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://openrouter.ai/api/v1"
	}
	if cfg.Referer == "" {
		cfg.Referer = "http://localhost:5000"
	}
	if cfg.Title == "" {
		cfg.Title = "Academic PDF Summarizer"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 45 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  logger,
	}
}
