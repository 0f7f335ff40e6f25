//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/historydoc/internal/domain/repositories"
)

// SpyGeneratorRepository implements repositories.GeneratorRepository as a configurable spy.
type SpyGeneratorRepository struct {
	GeneratorName string
	Output        string
	GenerateErr   error

	Prompts []string
}

var _ repositories.GeneratorRepository = (*SpyGeneratorRepository)(nil)

func (it *SpyGeneratorRepository) Name() string { return it.GeneratorName }

func (it *SpyGeneratorRepository) Generate(_ context.Context, prompt string) (string, error) {
	it.Prompts = append(it.Prompts, prompt)
	if it.GenerateErr != nil {
		return "", it.GenerateErr
	}
	return it.Output, nil
}
