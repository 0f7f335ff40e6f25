package gemini

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"github.com/rios0rios0/historydoc/internal/domain/entities"
	"github.com/rios0rios0/historydoc/internal/domain/repositories"
)

const (
	generatorName = "gemini"
	defaultModel  = "gemini-1.5-flash-latest"
)

var errMissingAPIKey = errors.New("gemini API key is not configured")

// GeminiGeneratorRepository implements repositories.GeneratorRepository on the Gemini API.
type GeminiGeneratorRepository struct {
	client *genai.Client
	model  string
}

// NewGeminiGeneratorRepository creates a Gemini generator from the settings.
func NewGeminiGeneratorRepository(settings entities.GeneratorSettings) (repositories.GeneratorRepository, error) {
	if settings.APIKey == "" {
		return nil, errMissingAPIKey
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:      settings.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: settings.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := settings.Model
	if model == "" {
		model = defaultModel
	}
	return &GeminiGeneratorRepository{client: client, model: model}, nil
}

func (it *GeminiGeneratorRepository) Name() string { return generatorName }

func (it *GeminiGeneratorRepository) Generate(ctx context.Context, prompt string) (string, error) {
	result, err := it.client.Models.GenerateContent(ctx, it.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini %s: %w", it.model, err)
	}
	return result.Text(), nil
}
