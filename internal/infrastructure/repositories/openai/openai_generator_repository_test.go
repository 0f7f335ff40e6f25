package openai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/historydoc/internal/domain/entities"
	"github.com/rios0rios0/historydoc/internal/infrastructure/repositories/openai"
)

func TestOpenAIGeneratorRepository(t *testing.T) {
	t.Parallel()

	t.Run("should fail to build without an API key", func(t *testing.T) {
		t.Parallel()

		// given
		settings := entities.GeneratorSettings{Provider: "openai"}

		// when
		_, err := openai.NewOpenAIGeneratorRepository(settings)

		// then
		require.Error(t, err)
	})

	t.Run("should send one user message and return the first choice", func(t *testing.T) {
		t.Parallel()

		// given
		var request struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/chat/completions", r.URL.Path)
			assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
			_ = json.NewDecoder(r.Body).Decode(&request)

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"choices":[{"index":0,"message":{"role":"assistant","content":"# Shop"}}]}`))
		}))
		t.Cleanup(server.Close)

		generator, err := openai.NewOpenAIGeneratorRepository(entities.GeneratorSettings{
			Provider: "openai", APIKey: "key", BaseURL: server.URL, Model: "gpt-test",
		})
		require.NoError(t, err)

		// when
		text, err := generator.Generate(context.Background(), "commit history")

		// then
		require.NoError(t, err)
		assert.Equal(t, "# Shop", text)
		assert.Equal(t, "gpt-test", request.Model)
		require.Len(t, request.Messages, 1)
		assert.Equal(t, "user", request.Messages[0].Role)
		assert.Equal(t, "commit history", request.Messages[0].Content)
	})

	t.Run("should fail when the completion has no choices", func(t *testing.T) {
		t.Parallel()

		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"choices":[]}`))
		}))
		t.Cleanup(server.Close)

		generator, err := openai.NewOpenAIGeneratorRepository(entities.GeneratorSettings{
			Provider: "openai", APIKey: "key", BaseURL: server.URL,
		})
		require.NoError(t, err)

		// when
		_, err = generator.Generate(context.Background(), "commit history")

		// then
		require.Error(t, err)
	})
}
