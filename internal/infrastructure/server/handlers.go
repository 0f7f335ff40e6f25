package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rios0rios0/historydoc/internal/domain/commands"
	"github.com/rios0rios0/historydoc/internal/domain/entities"
)

// maxBodyBytes bounds request bodies; generated documents stay well below it.
const maxBodyBytes = 1 << 20

type analyzeRequest struct {
	RepoURL string `json:"repo_url"`
}

// analyzeResponse keeps the readme and bugs fields of the first API version
// next to document and title.
type analyzeResponse struct {
	Readme   string   `json:"readme"`
	Bugs     []string `json:"bugs"`
	Document string   `json:"document"`
	Title    string   `json:"title"`
}

type commitRequest struct {
	RepoURL       string `json:"repo_url"`
	ReadmeContent string `json:"readme_content"`
}

type commitResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	URL     string `json:"url"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (it *Server) handleAnalyze(settings *entities.Settings) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request analyzeRequest
		if err := decode(w, r, &request); err != nil {
			writeError(w, r, err)
			return
		}

		analysis, err := it.analyze.Execute(r.Context(), settings, commands.AnalyzeInput{
			RepositoryURL: request.RepoURL,
		})
		if err != nil {
			writeError(w, r, err)
			return
		}

		title := analysis.Document.Title()
		if title == "" {
			title = analysis.Repository.Name
		}
		writeJSON(w, http.StatusOK, analyzeResponse{
			Readme:   analysis.Document.Text,
			Bugs:     []string{},
			Document: analysis.Document.Text,
			Title:    title,
		})
	}
}

func (it *Server) handleCommit(settings *entities.Settings) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request commitRequest
		if err := decode(w, r, &request); err != nil {
			writeError(w, r, err)
			return
		}

		result, err := it.commit.Execute(r.Context(), settings, commands.CommitInput{
			RepositoryURL: request.RepoURL,
			Content:       request.ReadmeContent,
		})
		if err != nil {
			writeError(w, r, err)
			return
		}

		action := "updated"
		if result.Created {
			action = "created"
		}
		writeJSON(w, http.StatusOK, commitResponse{
			Success: true,
			Message: fmt.Sprintf("%s %s successfully", settings.Pipeline.OutputPath, action),
			URL:     result.URL,
		})
	}
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func decode(w http.ResponseWriter, r *http.Request, target any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %w", entities.ErrInvalidInput, err)
	}
	return nil
}

// statusFor maps domain errors to HTTP statuses.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, entities.ErrInvalidInput), errors.Is(err, entities.ErrResolution):
		return http.StatusBadRequest
	case errors.Is(err, entities.ErrEnumerationEmpty), errors.Is(err, entities.ErrAggregationEmpty):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	entry := requestLogger(r.Context()).WithField("status", status)
	if status >= http.StatusInternalServerError {
		entry.Errorf("Request failed: %v", err)
	} else {
		entry.Warnf("Request rejected: %v", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
