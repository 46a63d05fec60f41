package post

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// RenderOptions configures a Renderer.
type RenderOptions struct {
	HighlightStyle string   // chroma style name; empty disables highlighting
	Extensions     []string // goldmark extension names; empty means the defaults
	HardWraps      bool
}

// Renderer turns post Markdown into HTML. Headings get ids derived from their
// text so the TOC can link to them. A Renderer is safe for concurrent use.
type Renderer struct {
	md        goldmark.Markdown
	highlight *codeBlockRenderer
}

// NewRenderer builds a goldmark engine for opts.
func NewRenderer(opts RenderOptions) *Renderer {
	r := &Renderer{}

	rendererOptions := []renderer.Option{html.WithUnsafe()}
	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}
	if opts.HighlightStyle != "" {
		r.highlight = newCodeBlockRenderer(opts.HighlightStyle)
		rendererOptions = append(rendererOptions, renderer.WithNodeRenderers(util.Prioritized(r.highlight, 200)))
	}

	r.md = goldmark.New(
		goldmark.WithExtensions(collectExtensions(opts.Extensions)...),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(rendererOptions...),
	)
	return r
}

// Render converts Markdown source to an HTML fragment.
func (r *Renderer) Render(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(src, &buf); err != nil {
		return nil, fmt.Errorf("markdown render: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteCSS writes the stylesheet for highlighted code blocks. It writes
// nothing when highlighting is disabled.
func (r *Renderer) WriteCSS(w io.Writer) error {
	if r.highlight == nil {
		return nil
	}
	return r.highlight.writeCSS(w)
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
	"typographer":   extension.Typographer,
}

func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{
			extension.GFM,
			extension.Footnote,
		}
	}

	var extenders []goldmark.Extender
	seen := map[string]bool{}
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		ext, ok := extensionRegistry[key]
		if !ok || seen[key] {
			continue
		}
		seen[key] = true
		extenders = append(extenders, ext)
	}
	return extenders
}
