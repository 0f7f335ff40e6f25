package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/historydoc/internal/domain/entities"
	"github.com/rios0rios0/historydoc/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/historydoc/internal/infrastructure/repositories"
)

// Analyze is the interface for the analyze command.
type Analyze interface {
	Execute(ctx context.Context, settings *entities.Settings, input AnalyzeInput) (*entities.Analysis, error)
}

// AnalyzeInput holds the arguments of a single analysis.
type AnalyzeInput struct {
	RepositoryURL string
}

// AnalyzeCommand runs the history-to-document pipeline:
// resolve -> enumerate branches -> aggregate commits -> synthesize document.
type AnalyzeCommand struct {
	hostRegistry      *infraRepos.HostRegistry
	generatorRegistry *infraRepos.GeneratorRegistry
	metrics           repositories.MetricsRepository
}

// NewAnalyzeCommand creates a new AnalyzeCommand with the given registries.
func NewAnalyzeCommand(
	hostRegistry *infraRepos.HostRegistry,
	generatorRegistry *infraRepos.GeneratorRegistry,
	metrics repositories.MetricsRepository,
) *AnalyzeCommand {
	return &AnalyzeCommand{
		hostRegistry:      hostRegistry,
		generatorRegistry: generatorRegistry,
		metrics:           metrics,
	}
}

// Execute generates a document from the commit history of the repository.
func (it *AnalyzeCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	input AnalyzeInput,
) (*entities.Analysis, error) {
	if strings.TrimSpace(input.RepositoryURL) == "" {
		return nil, fmt.Errorf("%w: the repository URL is required", entities.ErrInvalidInput)
	}

	started := time.Now()
	ref, err := entities.ResolveRepository(input.RepositoryURL)
	it.observe(repositories.StageResolve, started, err)
	if err != nil {
		return nil, err
	}

	host, err := it.hostRegistry.ForURL(input.RepositoryURL, settings.Hosts)
	if err != nil {
		return nil, err
	}

	logger.Infof("Listing all branches of %s on %s...", ref.FullName(), host.Name())
	started = time.Now()
	branches := enumerateBranches(ctx, host, ref)
	if len(branches) == 0 {
		it.metrics.RecordStage(repositories.StageEnumerate, repositories.OutcomeEmpty, time.Since(started))
		return nil, fmt.Errorf("%w: %s", entities.ErrEnumerationEmpty, ref.FullName())
	}
	it.observe(repositories.StageEnumerate, started, nil)
	logger.Infof("Found %d branches: %s", len(branches), branchNames(branches))

	started = time.Now()
	history, err := aggregateHistory(ctx, host, ref, branches, aggregateOptions{
		Limit:       settings.Pipeline.CommitLimit,
		Concurrency: settings.Pipeline.Concurrency,
	}, it.metrics)
	it.observe(repositories.StageAggregate, started, err)
	if err != nil {
		return nil, err
	}
	logger.Infof(
		"Collected %d commits from %d of %d branches",
		history.CommitCount(), len(history.Sections), len(branches),
	)

	generator, err := it.generatorRegistry.Get(settings.Generator)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entities.ErrSynthesis, err)
	}

	logger.Infof("Sending the commit history to %s...", generator.Name())
	started = time.Now()
	document, err := synthesizeDocument(ctx, generator, history)
	it.observe(repositories.StageSynthesize, started, err)
	if err != nil {
		return nil, err
	}

	return &entities.Analysis{
		Repository: ref,
		Branches:   branches,
		History:    history,
		Document:   document,
	}, nil
}

func (it *AnalyzeCommand) observe(stage string, started time.Time, err error) {
	outcome := repositories.OutcomeSuccess
	if err != nil {
		outcome = repositories.OutcomeFailure
	}
	it.metrics.RecordStage(stage, outcome, time.Since(started))
}

func branchNames(branches []entities.Branch) string {
	names := make([]string, 0, len(branches))
	for _, branch := range branches {
		names = append(names, branch.Name)
	}
	return strings.Join(names, ", ")
}
