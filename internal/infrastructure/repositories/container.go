package repositories

import (
	prom "github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	domainRepos "github.com/rios0rios0/historydoc/internal/domain/repositories"
	geminiRepo "github.com/rios0rios0/historydoc/internal/infrastructure/repositories/gemini"
	ghRepo "github.com/rios0rios0/historydoc/internal/infrastructure/repositories/github"
	glRepo "github.com/rios0rios0/historydoc/internal/infrastructure/repositories/gitlab"
	localRepo "github.com/rios0rios0/historydoc/internal/infrastructure/repositories/local"
	ollamaRepo "github.com/rios0rios0/historydoc/internal/infrastructure/repositories/ollama"
	openaiRepo "github.com/rios0rios0/historydoc/internal/infrastructure/repositories/openai"
	promRepo "github.com/rios0rios0/historydoc/internal/infrastructure/repositories/prometheus"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register host registry with all host factories
	if err := container.Provide(func() *HostRegistry {
		reg := NewHostRegistry()
		reg.Register("github", ghRepo.NewGitHubHostRepository)
		reg.Register("gitlab", glRepo.NewGitLabHostRepository)
		reg.Register("local", localRepo.NewLocalHostRepository)
		return reg
	}); err != nil {
		return err
	}

	// Register generator registry with all text-generation services
	if err := container.Provide(func() *GeneratorRegistry {
		reg := NewGeneratorRegistry()
		reg.Register("gemini", geminiRepo.NewGeminiGeneratorRepository)
		reg.Register("openai", openaiRepo.NewOpenAIGeneratorRepository)
		reg.Register("ollama", ollamaRepo.NewOllamaGeneratorRepository)
		return reg
	}); err != nil {
		return err
	}

	if err := container.Provide(prom.NewRegistry); err != nil {
		return err
	}
	if err := container.Provide(func(reg *prom.Registry) domainRepos.MetricsRepository {
		return promRepo.NewPrometheusMetricsRepository(reg)
	}); err != nil {
		return err
	}

	return nil
}
