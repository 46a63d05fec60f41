package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port string

	// Content
	ContentDir    string
	OutputDir     string
	SiteTitle     string
	BaseURL       string
	IncludeDrafts bool

	// Auth
	APIKey string

	// TOC
	TOCLevels          []int
	TOCTitle           string
	TOCListID          string
	TOCMinHeadings     int
	TOCPlaceholder     string
	TOCContentSelector string

	// Rendering
	HighlightStyle string

	// Worker pool
	WorkerCount        int
	MaxQueueSize       int
	MaxConcurrentPages int

	// Upload limits
	MaxUploadBytes int64

	// Job state
	JobTTL      time.Duration
	StatsWindow time.Duration

	LogLevel slog.Level
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		ContentDir:    envOr("CONTENT_DIR", "content/posts"),
		OutputDir:     envOr("OUTPUT_DIR", "public"),
		SiteTitle:     envOr("SITE_TITLE", "Blog"),
		BaseURL:       envOr("BASE_URL", "/"),
		IncludeDrafts: envBool("INCLUDE_DRAFTS", false),

		APIKey: os.Getenv("BLOGTOC_API_KEY"),

		TOCLevels:          envInts("TOC_LEVELS", []int{2, 3, 4}),
		TOCTitle:           envOr("TOC_TITLE", "Contents"),
		TOCListID:          envOr("TOC_LIST_ID", "toc-list"),
		TOCMinHeadings:     envInt("TOC_MIN_HEADINGS", 2),
		TOCPlaceholder:     envOr("TOC_PLACEHOLDER", "<!-- toc -->"),
		TOCContentSelector: envOr("TOC_CONTENT_SELECTOR", "main"),

		HighlightStyle: envOr("HIGHLIGHT_STYLE", "github"),

		WorkerCount:        envInt("WORKER_COUNT", 4),
		MaxQueueSize:       envInt("MAX_QUEUE_SIZE", 16),
		MaxConcurrentPages: envInt("MAX_CONCURRENT_PAGES", 8),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 5242880), // 5MB

		JobTTL:      envDuration("JOB_TTL", 1*time.Hour),
		StatsWindow: envDuration("STATS_WINDOW", 1*time.Hour),

		LogLevel: envLevel("LOG_LEVEL", slog.LevelInfo),
	}

	if cfg.TOCMinHeadings <= 0 {
		cfg.TOCMinHeadings = 2
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 16
	}
	if cfg.MaxConcurrentPages <= 0 {
		cfg.MaxConcurrentPages = 8
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 5242880
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}
	if cfg.StatsWindow <= 0 {
		cfg.StatsWindow = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.ContentDir == "" {
		return fmt.Errorf("CONTENT_DIR is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("OUTPUT_DIR is required")
	}
	if len(c.TOCLevels) == 0 {
		return fmt.Errorf("TOC_LEVELS must list at least one heading level")
	}
	for _, l := range c.TOCLevels {
		if l < 1 || l > 6 {
			return fmt.Errorf("TOC_LEVELS: heading level %d out of range 1-6", l)
		}
	}
	if c.TOCMinHeadings < 1 {
		return fmt.Errorf("TOC_MIN_HEADINGS must be at least 1")
	}
	if strings.TrimSpace(c.TOCPlaceholder) == "" {
		return fmt.Errorf("TOC_PLACEHOLDER is required")
	}
	if strings.TrimSpace(c.TOCListID) == "" {
		return fmt.Errorf("TOC_LIST_ID is required")
	}
	if strings.ContainsAny(c.TOCListID, " \t\n") {
		return fmt.Errorf("TOC_LIST_ID must not contain whitespace")
	}
	if strings.TrimSpace(c.TOCContentSelector) == "" {
		return fmt.Errorf("TOC_CONTENT_SELECTOR is required")
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

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
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

// envInts parses a comma-separated list of integers. Any bad element makes
// the whole value fall back.
func envInts(key string, fallback []int) []int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []int
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return fallback
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

func envLevel(key string, fallback slog.Level) slog.Level {
	if v := os.Getenv(key); v != "" {
		var l slog.Level
		if err := l.UnmarshalText([]byte(v)); err == nil {
			return l
		}
	}
	return fallback
}
