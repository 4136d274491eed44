package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Auth (optional; endpoints are open when unset)
	APIKey string

	// Summarizer
	AnthropicAPIKey        string
	AnthropicModel         string
	MaxConcurrentSummaries int
	WordThreshold          int
	StatsWindow            time.Duration

	// Pipeline
	WorkerCount int // concurrent extract/compose slots

	// Upload limits
	MaxUploadBytes int64

	// Section grouping
	Proximity float64

	// Annotation layer
	Compositor   string // "overlay" or "redraw"
	PageWidth    float64
	PageHeight   float64
	SidebarWidth float64
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("SUMMIT_API_KEY"),

		AnthropicAPIKey:        os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:         envOr("ANTHROPIC_MODEL", "claude-sonnet-4-5-20250929"),
		MaxConcurrentSummaries: envInt("MAX_CONCURRENT_SUMMARIES", 8),
		WordThreshold:          envInt("SUMMARY_WORD_THRESHOLD", 20),
		StatsWindow:            envDuration("LLM_STATS_WINDOW", 1*time.Hour),

		WorkerCount: envInt("WORKER_COUNT", 4),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		Proximity: envFloat("SECTION_PROXIMITY", 20),

		Compositor:   envOr("COMPOSITOR", "overlay"),
		PageWidth:    envFloat("PAGE_WIDTH", 612), // US Letter
		PageHeight:   envFloat("PAGE_HEIGHT", 792),
		SidebarWidth: envFloat("SIDEBAR_WIDTH", 160),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxConcurrentSummaries <= 0 {
		cfg.MaxConcurrentSummaries = 8
	}
	if cfg.WordThreshold <= 0 {
		cfg.WordThreshold = 20
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.Proximity <= 0 {
		cfg.Proximity = 20
	}
	if cfg.PageWidth <= 0 {
		cfg.PageWidth = 612
	}
	if cfg.PageHeight <= 0 {
		cfg.PageHeight = 792
	}
	if cfg.SidebarWidth <= 0 {
		cfg.SidebarWidth = 160
	}
	if cfg.StatsWindow <= 0 {
		cfg.StatsWindow = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.AnthropicAPIKey == "" {
		return fmt.Errorf("ANTHROPIC_API_KEY is required")
	}
	if c.Compositor != "overlay" && c.Compositor != "redraw" {
		return fmt.Errorf("COMPOSITOR must be \"overlay\" or \"redraw\", got %q", c.Compositor)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
