package api

import (
	"encoding/json"
	"net/http"

	"github.com/srcjump/srcjump/internal/launch"
)

// openRequest asks for an exact position to be opened.
type openRequest struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// openSearchRequest asks for the best line in a file given ordered clues.
type openSearchRequest struct {
	File  string   `json:"file"`
	Clues []string `json:"clues"`
}

// openResponse reports the outcome of an open request. Line is set for
// search-based opens so the overlay can display what was chosen.
type openResponse struct {
	Success bool   `json:"success"`
	Line    int    `json:"line,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleGetIndex serves the current index snapshot.
func (s *Server) handleGetIndex(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	idx := s.handle.Load()
	if idx == nil {
		writeError(w, http.StatusServiceUnavailable, "index not built yet")
		return
	}

	writeJSON(w, http.StatusOK, idx)
}

// handleOpen opens an exact (file, line, column) position.
func (s *Server) handleOpen(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req openRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if req.File == "" {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}

	target := launch.Target{FilePath: req.File, Line: req.Line, Column: req.Column}
	if err := s.dispatcher.Open(target); err != nil {
		// Exhausting the editor chain is a reported failure, not a server
		// fault.
		writeJSON(w, http.StatusOK, openResponse{Success: false, Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, openResponse{Success: true})
}

// handleOpenSearch ranks the file's lines against the clues, then opens the
// winner.
func (s *Server) handleOpenSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req openSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if req.File == "" {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}

	line := s.ranker.FindBestLine(req.File, req.Clues)

	target := launch.Target{FilePath: req.File, Line: line, Column: 1}
	if err := s.dispatcher.Open(target); err != nil {
		writeJSON(w, http.StatusOK, openResponse{Success: false, Line: line, Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, openResponse{Success: true, Line: line})
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
