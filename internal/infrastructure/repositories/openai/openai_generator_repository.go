package openai

import (
	"context"
	"errors"
	"fmt"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/rios0rios0/historydoc/internal/domain/entities"
	"github.com/rios0rios0/historydoc/internal/domain/repositories"
)

const generatorName = "openai"

var (
	errMissingAPIKey = errors.New("openai API key is not configured")
	errNoChoices     = errors.New("completion returned no choices")
)

// OpenAIGeneratorRepository implements repositories.GeneratorRepository on
// the chat completions API, or any server compatible with it.
type OpenAIGeneratorRepository struct {
	client *goopenai.Client
	model  string
}

// NewOpenAIGeneratorRepository creates an OpenAI generator from the settings.
func NewOpenAIGeneratorRepository(settings entities.GeneratorSettings) (repositories.GeneratorRepository, error) {
	if settings.APIKey == "" {
		return nil, errMissingAPIKey
	}

	config := goopenai.DefaultConfig(settings.APIKey)
	if settings.BaseURL != "" {
		config.BaseURL = settings.BaseURL
	}

	model := settings.Model
	if model == "" {
		model = goopenai.GPT4oMini
	}
	return &OpenAIGeneratorRepository{
		client: goopenai.NewClientWithConfig(config),
		model:  model,
	}, nil
}

func (it *OpenAIGeneratorRepository) Name() string { return generatorName }

func (it *OpenAIGeneratorRepository) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := it.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: it.model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai %s: %w", it.model, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai %s: %w", it.model, errNoChoices)
	}
	return resp.Choices[0].Message.Content, nil
}
