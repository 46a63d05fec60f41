// Package app wires configuration into the build pipeline.
package app

import (
	"log/slog"
	"os"

	"github.com/dgallion1/blogtoc/internal/config"
	"github.com/dgallion1/blogtoc/internal/pipeline"
	"github.com/dgallion1/blogtoc/internal/post"
	"github.com/dgallion1/blogtoc/internal/site"
	"github.com/dgallion1/blogtoc/internal/toc"
)

// NewLogger returns the JSON logger both binaries use.
func NewLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

// TOCOptions maps configuration onto transform options.
func TOCOptions(cfg config.Config) toc.Options {
	return toc.Options{
		Levels:          cfg.TOCLevels,
		Title:           cfg.TOCTitle,
		ListID:          cfg.TOCListID,
		MinHeadings:     cfg.TOCMinHeadings,
		Placeholder:     cfg.TOCPlaceholder,
		ContentSelector: cfg.TOCContentSelector,
	}
}

// NewBuilder assembles renderer, layout and transformer from cfg.
func NewBuilder(cfg config.Config, log *slog.Logger) *pipeline.Builder {
	opts := TOCOptions(cfg)
	return pipeline.NewBuilder(
		post.NewRenderer(post.RenderOptions{HighlightStyle: cfg.HighlightStyle}),
		site.Layout{
			SiteTitle:   cfg.SiteTitle,
			BaseURL:     cfg.BaseURL,
			Placeholder: opts.Placeholder,
		},
		toc.NewTransformer(opts, log.With("component", "toc")),
		pipeline.NewTransformStats(cfg.StatsWindow),
		log.With("component", "builder"),
		pipeline.BuilderConfig{
			ContentDir:         cfg.ContentDir,
			OutputDir:          cfg.OutputDir,
			IncludeDrafts:      cfg.IncludeDrafts,
			MaxConcurrentPages: cfg.MaxConcurrentPages,
		},
	)
}
