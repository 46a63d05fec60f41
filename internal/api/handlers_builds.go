package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/dgallion1/blogtoc/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

type buildRequest struct {
	IncludeDrafts bool `json:"include_drafts"`
}

func (s *Server) handleSubmitBuild(w http.ResponseWriter, r *http.Request) {
	var req buildRequest
	if r.Body != nil {
		if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil && err != io.EOF {
			jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
			return
		}
	}

	job := pipeline.NewJob()
	job.IncludeDrafts = req.IncludeDrafts

	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	snap := job.Snapshot()
	writeJSON(w, http.StatusAccepted, map[string]any{
		"job_id":   snap.ID,
		"status":   snap.Status,
		"poll_url": fmt.Sprintf("/api/builds/%s", snap.ID),
	})
}

func (s *Server) handleBuildStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, job.Snapshot())
}
