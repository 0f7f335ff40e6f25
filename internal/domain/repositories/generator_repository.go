package repositories

import "context"

// GeneratorRepository abstracts a text-generation service: one prompt in,
// one synchronously generated text out.
type GeneratorRepository interface {
	// Name returns the generator identifier (e.g. "gemini").
	Name() string

	// Generate sends the prompt and returns the raw generated text.
	Generate(ctx context.Context, prompt string) (string, error)
}
