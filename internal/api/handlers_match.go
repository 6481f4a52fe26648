package api

import (
	"encoding/json"
	"net/http"

	"github.com/dgallion1/resumatch/internal/match"
	"github.com/dgallion1/resumatch/internal/pipeline"
	"github.com/dgallion1/resumatch/internal/store"
	"github.com/go-chi/chi/v5"
)

type matchRequest struct {
	UserID    string   `json:"user_id"`
	JobID     string   `json:"job_id"`
	Skills    []string `json:"skills"`
	JobSkills []string `json:"job_skills"`
}

type matchResponse struct {
	match.Result
	SkillsSource string `json:"skillsSource"`
	Saved        bool   `json:"saved"`
}

// handleMatch scores candidate skills against a job. Job skills come from
// the request, else the portal posting, else the configured defaults.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		jsonError(w, "invalid JSON body: "+err.Error(), http.StatusBadRequest)
		return
	}

	jobSkills, source := req.JobSkills, pipeline.SkillsFromRequest
	if len(jobSkills) == 0 {
		jobSkills, source = s.orchestrator.Resolver().Resolve(r.Context(), req.JobID)
	}

	resp := matchResponse{Result: match.Skills(req.Skills, jobSkills), SkillsSource: source}
	if req.UserID != "" && req.JobID != "" {
		m := &store.Match{UserID: req.UserID, JobID: req.JobID, Result: resp.Result}
		if err := s.matches.SaveMatch(r.Context(), m); err != nil {
			s.log.Error("save match failed, returning unsaved result", "user_id", req.UserID, "job_id", req.JobID, "error", err)
		} else {
			resp.Saved = true
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (s *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	jobID := chi.URLParam(r, "jobID")

	m, err := s.matches.GetMatch(r.Context(), userID, jobID)
	if err != nil {
		jsonError(w, "failed to load match: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if m == nil {
		jsonError(w, "match not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(m)
}

func (s *Server) handleUserMatches(w http.ResponseWriter, r *http.Request) {
	list, err := s.matches.UserMatches(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		jsonError(w, "failed to list matches: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeMatchList(w, list)
}

func (s *Server) handleJobMatches(w http.ResponseWriter, r *http.Request) {
	list, err := s.matches.JobMatches(r.Context(), chi.URLParam(r, "jobID"))
	if err != nil {
		jsonError(w, "failed to list matches: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeMatchList(w, list)
}

func writeMatchList(w http.ResponseWriter, list []store.Match) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"count":   len(list),
		"matches": list,
	})
}
