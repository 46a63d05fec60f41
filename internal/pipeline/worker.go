package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dgallion1/blogtoc/internal/post"
	"github.com/dgallion1/blogtoc/internal/site"
	"github.com/dgallion1/blogtoc/internal/toc"
)

// Page is a fully rendered output file.
type Page struct {
	Path string // relative to the output root
	HTML string
	TOC  toc.Result
}

// BuilderConfig holds the defaults a Builder falls back to when a job does
// not override them.
type BuilderConfig struct {
	ContentDir         string
	OutputDir          string
	IncludeDrafts      bool
	MaxConcurrentPages int
}

// Builder renders a blog into static pages.
type Builder struct {
	renderer    *post.Renderer
	layout      site.Layout
	transformer *toc.Transformer
	stats       *TransformStats
	log         *slog.Logger
	cfg         BuilderConfig
}

// NewBuilder returns a Builder; cfg supplies the defaults jobs may override.
func NewBuilder(renderer *post.Renderer, layout site.Layout, transformer *toc.Transformer, stats *TransformStats, log *slog.Logger, cfg BuilderConfig) *Builder {
	if cfg.MaxConcurrentPages <= 0 {
		cfg.MaxConcurrentPages = 1
	}
	if stats == nil {
		stats = NewTransformStats(time.Hour)
	}
	return &Builder{
		renderer:    renderer,
		layout:      layout,
		transformer: transformer,
		stats:       stats,
		log:         log,
		cfg:         cfg,
	}
}

// Stats returns the transform latency tracker.
func (b *Builder) Stats() *TransformStats {
	return b.stats
}

// Transformer returns the TOC transformer pages go through.
func (b *Builder) Transformer() *toc.Transformer {
	return b.transformer
}

// LoadPosts reads the configured content directory.
func (b *Builder) LoadPosts() ([]*post.Post, error) {
	return post.LoadDir(b.cfg.ContentDir, b.cfg.IncludeDrafts)
}

// RenderPage renders one post into a complete page with its TOC.
func (b *Builder) RenderPage(p *post.Post) (Page, error) {
	body, err := b.renderer.Render(p.Body)
	if err != nil {
		return Page{}, fmt.Errorf("render %s: %w", p.Slug, err)
	}
	doc, err := b.layout.RenderPost(p, body)
	if err != nil {
		return Page{}, err
	}
	return b.transform(site.PostPath(p.Slug), doc)
}

// RenderIndex renders the post listing.
func (b *Builder) RenderIndex(posts []*post.Post) (Page, error) {
	doc, err := b.layout.RenderIndex(posts)
	if err != nil {
		return Page{}, err
	}
	return b.transform(site.IndexPath, doc)
}

// Stylesheet returns the code highlighting CSS.
func (b *Builder) Stylesheet() ([]byte, error) {
	var buf bytes.Buffer
	if err := b.renderer.WriteCSS(&buf); err != nil {
		return nil, fmt.Errorf("write stylesheet: %w", err)
	}
	return buf.Bytes(), nil
}

func (b *Builder) transform(path, doc string) (Page, error) {
	start := time.Now()
	res, err := b.transformer.Transform(path, doc)
	b.stats.Record(time.Since(start), res.Outcome == toc.OutcomeInjected)
	if err != nil {
		return Page{}, err
	}
	return Page{Path: path, HTML: res.HTML, TOC: res}, nil
}

// Build runs the full site build for a job.
func (b *Builder) Build(ctx context.Context, job *Job) {
	log := b.log.With("job_id", job.ID)
	contentDir, outputDir := b.cfg.ContentDir, b.cfg.OutputDir
	if job.ContentDir != "" {
		contentDir = job.ContentDir
	}
	if job.OutputDir != "" {
		outputDir = job.OutputDir
	}
	includeDrafts := b.cfg.IncludeDrafts || job.IncludeDrafts

	// Phase 1: Load
	job.SetStatus(StatusLoading, "loading")
	posts, err := post.LoadDir(contentDir, includeDrafts)
	if err != nil {
		log.Error("load posts failed", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "loading")
		return
	}
	job.SetTotalPages(len(posts) + 1)
	log.Info("loaded posts", "posts", len(posts), "content_dir", contentDir)

	// Phase 2: Render post pages with bounded concurrency.
	job.SetStatus(StatusRendering, "rendering")
	type pageResult struct {
		slug     string
		injected bool
		err      error
	}
	results := make(chan pageResult, len(posts))
	sem := make(chan struct{}, b.cfg.MaxConcurrentPages)

	launched := 0
	for _, p := range posts {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
		}
		if ctx.Err() != nil {
			break
		}
		launched++
		go func(p *post.Post) {
			defer func() { <-sem }()
			page, err := b.RenderPage(p)
			if err == nil {
				err = writeFile(outputDir, page.Path, []byte(page.HTML))
			}
			results <- pageResult{slug: p.Slug, injected: page.TOC.Outcome == toc.OutcomeInjected, err: err}
		}(p)
	}

	hadErrors := false
	written := 0
	for range launched {
		r := <-results
		if r.err != nil {
			log.Error("page failed", "page", r.slug, "error", r.err)
			job.AddError(fmt.Sprintf("page %s: %s", r.slug, r.err))
			job.RecordPage(false, false)
			hadErrors = true
			continue
		}
		written++
		job.RecordPage(true, r.injected)
	}

	if err := ctx.Err(); err != nil {
		log.Warn("build cancelled", "pages_written", written)
		job.AddError(fmt.Sprintf("cancelled: %s", err))
		job.SetStatus(StatusFailed, "rendering")
		return
	}

	// Phase 3: Index and assets.
	job.SetStatus(StatusWriting, "writing")
	if err := b.writeIndex(outputDir, posts); err != nil {
		log.Error("index failed", "error", err)
		job.AddError(fmt.Sprintf("index: %s", err))
		job.RecordPage(false, false)
		hadErrors = true
	} else {
		written++
		job.RecordPage(true, false)
	}
	if err := b.writeStylesheet(outputDir); err != nil {
		log.Error("stylesheet failed", "error", err)
		job.AddError(fmt.Sprintf("stylesheet: %s", err))
		hadErrors = true
	}

	log.Info("build complete", "pages_written", written, "errors", hadErrors)

	if hadErrors && written > 0 {
		job.SetStatus(StatusPartial, "done")
	} else if hadErrors {
		job.SetStatus(StatusFailed, "writing")
	} else {
		job.SetStatus(StatusCompleted, "done")
	}
}

func (b *Builder) writeIndex(outputDir string, posts []*post.Post) error {
	page, err := b.RenderIndex(posts)
	if err != nil {
		return err
	}
	return writeFile(outputDir, page.Path, []byte(page.HTML))
}

func (b *Builder) writeStylesheet(outputDir string) error {
	css, err := b.Stylesheet()
	if err != nil {
		return err
	}
	if len(css) == 0 {
		return nil
	}
	return writeFile(outputDir, site.StylesheetPath, css)
}

// writeFile replaces root/rel through a temp file so readers never see a
// partial page.
func writeFile(root, rel string, data []byte) error {
	path := filepath.Join(root, filepath.FromSlash(rel))
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", rel, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close %s: %w", rel, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("chmod %s: %w", rel, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename %s: %w", rel, err)
	}
	return nil
}
