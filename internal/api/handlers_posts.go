package api

import (
	"io"
	"net/http"
	"time"

	"github.com/dgallion1/blogtoc/internal/pipeline"
	"github.com/dgallion1/blogtoc/internal/post"
	"github.com/go-chi/chi/v5"
)

type postSummary struct {
	Slug    string     `json:"slug"`
	Title   string     `json:"title"`
	Summary string     `json:"summary,omitempty"`
	Author  string     `json:"author,omitempty"`
	Tags    []string   `json:"tags"`
	Date    *time.Time `json:"date,omitempty"`
	Draft   bool       `json:"draft"`
	URL     string     `json:"url"`
}

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.orchestrator.Builder().LoadPosts()
	if err != nil {
		s.log.Error("load posts failed", "error", err)
		jsonError(w, "failed to load posts: "+err.Error(), http.StatusInternalServerError)
		return
	}

	out := make([]postSummary, 0, len(posts))
	for _, p := range posts {
		ps := postSummary{
			Slug:    p.Slug,
			Title:   p.Title,
			Summary: p.Summary,
			Author:  p.Author,
			Tags:    append([]string{}, p.Tags...),
			Draft:   p.Draft,
			URL:     "/posts/" + p.Slug,
		}
		if !p.Date.IsZero() {
			d := p.Date
			ps.Date = &d
		}
		out = append(out, ps)
	}
	writeJSON(w, http.StatusOK, map[string]any{"posts": out})
}

// handleIndex renders the post listing live from the content directory.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	b := s.orchestrator.Builder()
	posts, err := b.LoadPosts()
	if err != nil {
		s.log.Error("load posts failed", "error", err)
		http.Error(w, "failed to load posts", http.StatusInternalServerError)
		return
	}
	page, err := b.RenderIndex(posts)
	if err != nil {
		s.log.Error("render index failed", "error", err)
		http.Error(w, "failed to render index", http.StatusInternalServerError)
		return
	}
	s.writePage(w, r, page)
}

// handlePost renders one post live, TOC included.
func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	b := s.orchestrator.Builder()
	posts, err := b.LoadPosts()
	if err != nil {
		s.log.Error("load posts failed", "error", err)
		http.Error(w, "failed to load posts", http.StatusInternalServerError)
		return
	}
	p := post.Find(posts, slug)
	if p == nil {
		http.NotFound(w, r)
		return
	}
	page, err := b.RenderPage(p)
	if err != nil {
		s.log.Error("render post failed", "page", slug, "error", err)
		http.Error(w, "failed to render post", http.StatusInternalServerError)
		return
	}
	s.writePage(w, r, page)
}

func (s *Server) handleStylesheet(w http.ResponseWriter, r *http.Request) {
	css, err := s.orchestrator.Builder().Stylesheet()
	if err != nil {
		s.log.Error("stylesheet failed", "error", err)
		http.Error(w, "failed to render stylesheet", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Write(css)
}

func (s *Server) writePage(w http.ResponseWriter, r *http.Request, page pipeline.Page) {
	etag := `"` + pipeline.ContentHashHex([]byte(page.HTML))[:32] + `"`
	w.Header().Set("ETag", etag)
	w.Header().Set("X-TOC-Outcome", string(page.TOC.Outcome))
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, page.HTML)
}
