package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dgallion1/resumatch/internal/resume"
)

// handleParse parses one uploaded resume synchronously.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	filename, data, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	rec, err := s.orchestrator.Parser().Parse(bytes.NewReader(data), filename)
	if err != nil {
		var de *resume.DecodeError
		if errors.As(err, &de) {
			s.log.Warn("resume decode failed", "filename", filename, "error", err)
			jsonError(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	for _, warn := range rec.Warnings {
		s.log.Warn("parse warning", "filename", filename, "warning", warn)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rec)
}
