package server

import (
	"encoding/json"
	"net/http"

	"github.com/FocuswithJustin/CedarVerse/core/lexicon"
	"github.com/FocuswithJustin/CedarVerse/core/standardize"
)

// StandardizeRequest is the POST /api/standardize payload.
type StandardizeRequest struct {
	Text string `json:"text"`
}

// StandardizeResponse carries the rewritten text plus any spans the
// standardizer left as written.
type StandardizeResponse struct {
	Input       string                   `json:"input"`
	Output      string                   `json:"output"`
	Diagnostics []standardize.Diagnostic `json:"diagnostics,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// standardizeText rewrites one payload and collects diagnostics.
func standardizeText(text string) StandardizeResponse {
	resp := StandardizeResponse{Input: text}
	std := standardize.New(standardize.WithDiagnostics(func(d standardize.Diagnostic) {
		resp.Diagnostics = append(resp.Diagnostics, d)
	}))
	resp.Output = standardize.PostProcess(std.Text(text))
	return resp
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStandardize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}
	var req StandardizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	writeJSON(w, http.StatusOK, standardizeText(req.Text))
}

func (s *Server) handleBooks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "GET required")
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"books": lexicon.Books()})
}
