package ollama

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"

	"github.com/rios0rios0/historydoc/internal/domain/entities"
	"github.com/rios0rios0/historydoc/internal/domain/repositories"
)

const (
	generatorName = "ollama"
	defaultURL    = "http://localhost:11434"
	defaultModel  = "llama3.2"
)

// OllamaGeneratorRepository implements repositories.GeneratorRepository on a
// self-hosted Ollama server.
type OllamaGeneratorRepository struct {
	client *api.Client
	model  string
}

// NewOllamaGeneratorRepository creates an Ollama generator from the settings.
func NewOllamaGeneratorRepository(settings entities.GeneratorSettings) (repositories.GeneratorRepository, error) {
	rawURL := settings.BaseURL
	if rawURL == "" {
		rawURL = defaultURL
	}
	if !strings.Contains(rawURL, "://") {
		rawURL = "http://" + rawURL
	}
	base, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama URL %q: %w", rawURL, err)
	}

	model := settings.Model
	if model == "" {
		model = defaultModel
	}
	return &OllamaGeneratorRepository{
		client: api.NewClient(base, http.DefaultClient),
		model:  model,
	}, nil
}

func (it *OllamaGeneratorRepository) Name() string { return generatorName }

func (it *OllamaGeneratorRepository) Generate(ctx context.Context, prompt string) (string, error) {
	stream := false
	var sb strings.Builder
	err := it.client.Generate(ctx, &api.GenerateRequest{
		Model:  it.model,
		Prompt: prompt,
		Stream: &stream,
	}, func(resp api.GenerateResponse) error {
		sb.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama %s: %w", it.model, err)
	}
	return sb.String(), nil
}
