package api

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/dgallion1/blogtoc/internal/toc"
)

// handleTransform runs the TOC transform over a posted HTML document.
func (s *Server) handleTransform(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}
	path := r.URL.Query().Get("path")
	if path == "" {
		path = "index.html"
	}

	res, err := s.orchestrator.Builder().Transformer().Transform(path, string(body))
	if err != nil {
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-TOC-Outcome", string(res.Outcome))
	w.Header().Set("X-TOC-Headings", strconv.Itoa(res.Headings))
	io.WriteString(w, res.HTML)
}

// handleHeadings returns the headings of a posted HTML fragment.
func (s *Server) handleHeadings(w http.ResponseWriter, r *http.Request) {
	levels := s.orchestrator.Builder().Transformer().Options().Levels
	if v := r.URL.Query().Get("levels"); v != "" {
		parsed, err := parseLevels(v)
		if err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		levels = parsed
	}

	body, ok := s.readBody(w, r)
	if !ok {
		return
	}

	headings := toc.Headings(string(body), toc.ExtractOptions{Levels: levels})
	if headings == nil {
		headings = []toc.Heading{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"headings": headings,
		"count":    len(headings),
	})
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		jsonError(w, fmt.Sprintf("body exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return nil, false
	}
	return body, true
}

func parseLevels(v string) ([]int, error) {
	var levels []int
	for _, part := range strings.Split(v, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 1 || n > 6 {
			return nil, fmt.Errorf("invalid heading level %q", part)
		}
		levels = append(levels, n)
	}
	return levels, nil
}
