package toc

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Outcome reports what Transform did to a page.
type Outcome string

const (
	OutcomeSkipped  Outcome = "skipped"  // page returned unchanged
	OutcomeStripped Outcome = "stripped" // too few headings, placeholder removed
	OutcomeInjected Outcome = "injected" // TOC and script spliced in
)

// Result is the transformed page plus what happened to it.
type Result struct {
	HTML     string
	Outcome  Outcome
	Headings int
}

const closingBody = "</body>"

// Transformer splices a TOC into rendered pages. It holds no mutable state
// and is safe for concurrent use.
type Transformer struct {
	opts Options
	log  *slog.Logger
}

// NewTransformer returns a Transformer; zero-valued options fall back to
// their defaults.
func NewTransformer(opts Options, log *slog.Logger) *Transformer {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Transformer{opts: opts.withDefaults(), log: log}
}

// Options returns the effective options.
func (t *Transformer) Options() Options {
	o := t.opts
	o.Levels = append([]int(nil), t.opts.Levels...)
	return o
}

// Transform processes one rendered page. path is the page's output path and
// decides whether the page is an HTML target at all.
func (t *Transformer) Transform(path, document string) (Result, error) {
	unchanged := Result{HTML: document, Outcome: OutcomeSkipped}

	if !isHTMLTarget(path) {
		return unchanged, nil
	}
	if !strings.Contains(document, t.opts.Placeholder) {
		return unchanged, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(document))
	if err != nil {
		return unchanged, fmt.Errorf("parse %s: %w", path, err)
	}
	content := doc.Find(t.opts.ContentSelector).First()
	if content.Length() == 0 {
		t.log.Debug("no content container", "page", path, "selector", t.opts.ContentSelector)
		return unchanged, nil
	}
	inner, err := content.Html()
	if err != nil {
		return unchanged, fmt.Errorf("serialize content of %s: %w", path, err)
	}

	headings := Headings(inner, t.opts.extractOptions())
	if len(headings) < t.opts.MinHeadings {
		t.log.Debug("too few headings for toc", "page", path, "headings", len(headings), "min", t.opts.MinHeadings)
		return Result{
			HTML:     strings.ReplaceAll(document, t.opts.Placeholder, ""),
			Outcome:  OutcomeStripped,
			Headings: len(headings),
		}, nil
	}

	nav := Render(slices.Values(headings), t.opts.renderOptions())
	out := spliceTOC(document, t.opts.Placeholder, nav)
	out = injectScript(out, Script)

	t.log.Debug("toc injected", "page", path, "headings", len(headings))
	return Result{HTML: out, Outcome: OutcomeInjected, Headings: len(headings)}, nil
}

// spliceTOC replaces the first placeholder with nav and drops any others.
func spliceTOC(document, placeholder, nav string) string {
	i := strings.Index(document, placeholder)
	head := document[:i]
	tail := strings.ReplaceAll(document[i+len(placeholder):], placeholder, "")
	return head + nav + tail
}

// injectScript inserts script right before the last </body>, matched in any
// letter case. Documents without one are returned as is.
func injectScript(document, script string) string {
	i := lastIndexFold(document, closingBody)
	if i < 0 {
		return document
	}
	return document[:i] + script + document[i:]
}

// lastIndexFold is strings.LastIndex with ASCII case folding. It compares
// byte windows of the original so the index is valid for slicing document.
func lastIndexFold(document, substr string) int {
	for i := len(document) - len(substr); i >= 0; i-- {
		if strings.EqualFold(document[i:i+len(substr)], substr) {
			return i
		}
	}
	return -1
}

func isHTMLTarget(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return true
	}
	return false
}
