//go:build unit

package server_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/historydoc/internal/domain/entities"
	"github.com/rios0rios0/historydoc/internal/infrastructure/server"
	"github.com/rios0rios0/historydoc/test/domain/commanddoubles"
)

func serve(
	t *testing.T,
	analyze *commanddoubles.StubAnalyzeCommand,
	commit *commanddoubles.StubCommitCommand,
	method, path, body string,
) *httptest.ResponseRecorder {
	t.Helper()
	handler := server.NewServer(analyze, commit, prom.NewRegistry()).Handler(entities.DefaultSettings())
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(method, path, strings.NewReader(body)))
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
	return body
}

func TestAnalyzeEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("should return the document and its title", func(t *testing.T) {
		t.Parallel()

		// given
		analyze := &commanddoubles.StubAnalyzeCommand{Result: &entities.Analysis{
			Repository: entities.RepositoryRef{Owner: "acme", Name: "shop"},
			Document:   entities.GeneratedDocument{Text: "# Shop\n\nAn online shop."},
		}}

		// when
		recorder := serve(t, analyze, &commanddoubles.StubCommitCommand{},
			http.MethodPost, "/analyze", `{"repo_url":"https://github.com/acme/shop"}`)

		// then
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "*", recorder.Header().Get("Access-Control-Allow-Origin"))
		assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))
		body := decodeBody(t, recorder)
		assert.Equal(t, "# Shop\n\nAn online shop.", body["document"])
		assert.Equal(t, "# Shop\n\nAn online shop.", body["readme"])
		assert.Equal(t, []any{}, body["bugs"])
		assert.Equal(t, "Shop", body["title"])
		assert.Equal(t, "https://github.com/acme/shop", analyze.LastInput.RepositoryURL)
	})

	t.Run("should map domain errors to HTTP statuses", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name     string
			err      error
			expected int
		}{
			{name: "should answer 400 for invalid input", err: entities.ErrInvalidInput, expected: http.StatusBadRequest},
			{name: "should answer 400 for a malformed URL", err: entities.ErrResolution, expected: http.StatusBadRequest},
			{name: "should answer 404 without branches", err: entities.ErrEnumerationEmpty, expected: http.StatusNotFound},
			{name: "should answer 404 without commits", err: entities.ErrAggregationEmpty, expected: http.StatusNotFound},
			{
				name:     "should answer 500 when synthesis fails",
				err:      fmt.Errorf("%w: gemini: quota exceeded", entities.ErrSynthesis),
				expected: http.StatusInternalServerError,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				// given
				analyze := &commanddoubles.StubAnalyzeCommand{ExecuteErr: tt.err}

				// when
				recorder := serve(t, analyze, &commanddoubles.StubCommitCommand{},
					http.MethodPost, "/analyze", `{"repo_url":"https://github.com/acme/shop"}`)

				// then
				assert.Equal(t, tt.expected, recorder.Code)
				assert.Equal(t, tt.err.Error(), decodeBody(t, recorder)["error"])
			})
		}
	})

	t.Run("should reject a malformed body without calling the command", func(t *testing.T) {
		t.Parallel()

		// given
		analyze := &commanddoubles.StubAnalyzeCommand{}

		// when
		recorder := serve(t, analyze, &commanddoubles.StubCommitCommand{}, http.MethodPost, "/analyze", `{`)

		// then
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Zero(t, analyze.ExecuteCallCount)
	})

	t.Run("should reject an oversized body without calling the command", func(t *testing.T) {
		t.Parallel()

		// given
		analyze := &commanddoubles.StubAnalyzeCommand{}
		body := `{"repo_url":"` + strings.Repeat("a", 2<<20) + `"}`

		// when
		recorder := serve(t, analyze, &commanddoubles.StubCommitCommand{}, http.MethodPost, "/analyze", body)

		// then
		assert.Equal(t, http.StatusRequestEntityTooLarge, recorder.Code)
		assert.Zero(t, analyze.ExecuteCallCount)
	})

	t.Run("should answer CORS preflight requests", func(t *testing.T) {
		t.Parallel()

		// given
		analyze := &commanddoubles.StubAnalyzeCommand{}

		// when
		recorder := serve(t, analyze, &commanddoubles.StubCommitCommand{}, http.MethodOptions, "/analyze", "")

		// then
		assert.Equal(t, http.StatusNoContent, recorder.Code)
		assert.Contains(t, recorder.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
		assert.Zero(t, analyze.ExecuteCallCount)
	})
}

func TestCommitEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("should commit the content and report success", func(t *testing.T) {
		t.Parallel()

		// given
		commit := &commanddoubles.StubCommitCommand{Result: &entities.WriteResult{
			URL: "https://github.com/acme/shop/blob/main/README.md", Created: true,
		}}

		// when
		recorder := serve(t, &commanddoubles.StubAnalyzeCommand{}, commit, http.MethodPost, "/commit",
			`{"repo_url":"https://github.com/acme/shop","readme_content":"# Shop"}`)

		// then
		assert.Equal(t, http.StatusOK, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "README.md created successfully", body["message"])
		assert.Equal(t, "https://github.com/acme/shop/blob/main/README.md", body["url"])
		assert.Equal(t, "# Shop", commit.LastInput.Content)
	})

	t.Run("should answer 500 when the write conflicts", func(t *testing.T) {
		t.Parallel()

		// given
		commit := &commanddoubles.StubCommitCommand{
			ExecuteErr: fmt.Errorf("%w: %w", entities.ErrWrite, entities.ErrRevisionConflict),
		}

		// when
		recorder := serve(t, &commanddoubles.StubAnalyzeCommand{}, commit, http.MethodPost, "/commit",
			`{"repo_url":"https://github.com/acme/shop","readme_content":"# Shop"}`)

		// then
		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
		assert.Contains(t, decodeBody(t, recorder)["error"], "changed since it was read")
	})
}

func TestOperationalEndpoints(t *testing.T) {
	t.Parallel()

	t.Run("should report health", func(t *testing.T) {
		t.Parallel()

		// when
		recorder := serve(t, &commanddoubles.StubAnalyzeCommand{}, &commanddoubles.StubCommitCommand{},
			http.MethodGet, "/healthz", "")

		// then
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "ok", decodeBody(t, recorder)["status"])
	})

	t.Run("should serve Prometheus metrics", func(t *testing.T) {
		t.Parallel()

		// when
		recorder := serve(t, &commanddoubles.StubAnalyzeCommand{}, &commanddoubles.StubCommitCommand{},
			http.MethodGet, "/metrics", "")

		// then
		assert.Equal(t, http.StatusOK, recorder.Code)
	})
}
