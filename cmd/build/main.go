package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/dgallion1/blogtoc/internal/app"
	"github.com/dgallion1/blogtoc/internal/config"
	"github.com/dgallion1/blogtoc/internal/pipeline"
)

func main() {
	cfg := config.Load()

	flag.StringVar(&cfg.ContentDir, "content", cfg.ContentDir, "directory holding Markdown posts")
	flag.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "directory to write the site to")
	flag.BoolVar(&cfg.IncludeDrafts, "drafts", cfg.IncludeDrafts, "include draft posts")
	flag.Parse()

	log := app.NewLogger(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	job := pipeline.NewJob()
	app.NewBuilder(cfg, log).Build(ctx, job)

	snap := job.Snapshot()
	log.Info("build finished",
		"job_id", snap.ID,
		"status", snap.Status,
		"pages_written", snap.Progress.PagesWritten,
		"tocs_injected", snap.Progress.TOCsInjected,
		"output_dir", cfg.OutputDir,
	)
	for _, e := range snap.Progress.Errors {
		log.Error("build error", "error", e)
	}
	if snap.Status == pipeline.StatusFailed {
		os.Exit(1)
	}
}
