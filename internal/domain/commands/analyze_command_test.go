//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/historydoc/internal/domain/commands"
	"github.com/rios0rios0/historydoc/internal/domain/entities"
	"github.com/rios0rios0/historydoc/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/historydoc/internal/infrastructure/repositories"
	doubles "github.com/rios0rios0/historydoc/test/infrastructure/repositorydoubles"
)

func newAnalyzeCommand(
	host *doubles.SpyHostRepository,
	generator *doubles.SpyGeneratorRepository,
	metrics *doubles.SpyMetricsRepository,
) *commands.AnalyzeCommand {
	hostRegistry := infraRepos.NewHostRegistry()
	hostRegistry.Register("github", func(_ entities.HostSettings) repositories.HostRepository {
		return host
	})

	generatorRegistry := infraRepos.NewGeneratorRegistry()
	generatorRegistry.Register("gemini", func(_ entities.GeneratorSettings) (repositories.GeneratorRepository, error) {
		return generator, nil
	})

	return commands.NewAnalyzeCommand(hostRegistry, generatorRegistry, metrics)
}

func TestAnalyzeCommandExecute(t *testing.T) {
	t.Parallel()

	input := commands.AnalyzeInput{RepositoryURL: "https://github.com/acme/shop"}

	t.Run("should generate a document from the history of every branch", func(t *testing.T) {
		t.Parallel()

		// given
		host := &doubles.SpyHostRepository{
			HostName: "github",
			Branches: branches("main", "dev"),
			Commits: map[string][]entities.CommitRecord{
				"main": commits("feat: add login"),
				"dev":  commits("feat: add financial reports"),
			},
		}
		generator := &doubles.SpyGeneratorRepository{
			GeneratorName: "gemini",
			Output:        "# Shop\n\nAn online shop.",
		}
		metrics := doubles.NewSpyMetricsRepository()
		cmd := newAnalyzeCommand(host, generator, metrics)

		// when
		analysis, err := cmd.Execute(context.Background(), entities.DefaultSettings(), input)

		// then
		require.NoError(t, err)
		assert.Equal(t, "acme/shop", analysis.Repository.FullName())
		assert.Equal(t, "# Shop\n\nAn online shop.", analysis.Document.Text)
		assert.Equal(t, "Shop", analysis.Document.Title())
		require.Len(t, generator.Prompts, 1)
		assert.Contains(t, generator.Prompts[0], "## Branch: main\n- feat: add login\n")
		assert.Contains(t, generator.Prompts[0], "## Branch: dev\n- feat: add financial reports\n")
		assert.Equal(t, []string{repositories.OutcomeSuccess}, metrics.Stages[repositories.StageSynthesize])
	})

	t.Run("should reject an empty repository URL", func(t *testing.T) {
		t.Parallel()

		// given
		host := &doubles.SpyHostRepository{HostName: "github"}
		cmd := newAnalyzeCommand(host, &doubles.SpyGeneratorRepository{}, doubles.NewSpyMetricsRepository())

		// when
		_, err := cmd.Execute(context.Background(), entities.DefaultSettings(), commands.AnalyzeInput{})

		// then
		require.ErrorIs(t, err, entities.ErrInvalidInput)
	})

	t.Run("should fail resolution without contacting the host", func(t *testing.T) {
		t.Parallel()

		// given
		host := &doubles.SpyHostRepository{HostName: "github"}
		cmd := newAnalyzeCommand(host, &doubles.SpyGeneratorRepository{}, doubles.NewSpyMetricsRepository())

		// when
		_, err := cmd.Execute(
			context.Background(), entities.DefaultSettings(),
			commands.AnalyzeInput{RepositoryURL: "not-a-repository"},
		)

		// then
		require.ErrorIs(t, err, entities.ErrResolution)
		assert.Empty(t, host.CommitRequests)
	})

	t.Run("should report no branches without calling the generator", func(t *testing.T) {
		t.Parallel()

		// given
		host := &doubles.SpyHostRepository{
			HostName:        "github",
			ListBranchesErr: errors.New("404 Not Found"),
		}
		generator := &doubles.SpyGeneratorRepository{GeneratorName: "gemini"}
		cmd := newAnalyzeCommand(host, generator, doubles.NewSpyMetricsRepository())

		// when
		_, err := cmd.Execute(context.Background(), entities.DefaultSettings(), input)

		// then
		require.ErrorIs(t, err, entities.ErrEnumerationEmpty)
		assert.Empty(t, generator.Prompts)
	})

	t.Run("should report an empty history without calling the generator", func(t *testing.T) {
		t.Parallel()

		// given
		host := &doubles.SpyHostRepository{
			HostName: "github",
			Branches: branches("main", "dev"),
			CommitErrs: map[string]error{
				"main": errors.New("timeout"),
				"dev":  errors.New("timeout"),
			},
		}
		generator := &doubles.SpyGeneratorRepository{GeneratorName: "gemini"}
		cmd := newAnalyzeCommand(host, generator, doubles.NewSpyMetricsRepository())

		// when
		_, err := cmd.Execute(context.Background(), entities.DefaultSettings(), input)

		// then
		require.ErrorIs(t, err, entities.ErrAggregationEmpty)
		assert.Empty(t, generator.Prompts)
	})

	t.Run("should propagate the generator failure", func(t *testing.T) {
		t.Parallel()

		// given
		host := &doubles.SpyHostRepository{
			HostName: "github",
			Branches: branches("main"),
			Commits:  map[string][]entities.CommitRecord{"main": commits("feat: init")},
		}
		generator := &doubles.SpyGeneratorRepository{
			GeneratorName: "gemini",
			GenerateErr:   errors.New("invalid API key"),
		}
		metrics := doubles.NewSpyMetricsRepository()
		cmd := newAnalyzeCommand(host, generator, metrics)

		// when
		_, err := cmd.Execute(context.Background(), entities.DefaultSettings(), input)

		// then
		require.ErrorIs(t, err, entities.ErrSynthesis)
		assert.Contains(t, err.Error(), "invalid API key")
		assert.Equal(t, []string{repositories.OutcomeFailure}, metrics.Stages[repositories.StageSynthesize])
	})

	t.Run("should fail with ErrSynthesis when the generator is not registered", func(t *testing.T) {
		t.Parallel()

		// given
		host := &doubles.SpyHostRepository{
			HostName: "github",
			Branches: branches("main"),
			Commits:  map[string][]entities.CommitRecord{"main": commits("feat: init")},
		}
		cmd := newAnalyzeCommand(host, &doubles.SpyGeneratorRepository{}, doubles.NewSpyMetricsRepository())
		settings := entities.DefaultSettings()
		settings.Generator.Provider = "unknown"

		// when
		_, err := cmd.Execute(context.Background(), settings, input)

		// then
		require.ErrorIs(t, err, entities.ErrSynthesis)
		require.ErrorIs(t, err, entities.ErrUnknownProvider)
	})
}
