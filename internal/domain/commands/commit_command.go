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

// Commit is the interface for the commit command.
type Commit interface {
	Execute(ctx context.Context, settings *entities.Settings, input CommitInput) (*entities.WriteResult, error)
}

// CommitInput holds the arguments of a single write-back.
type CommitInput struct {
	RepositoryURL string
	Content       string
	Path          string // empty means settings.Pipeline.OutputPath
}

// CommitCommand persists a document in the repository with optimistic
// concurrency: probe the current revision, then write conditionally.
type CommitCommand struct {
	hostRegistry *infraRepos.HostRegistry
	metrics      repositories.MetricsRepository
}

// NewCommitCommand creates a new CommitCommand with the given host registry.
func NewCommitCommand(
	hostRegistry *infraRepos.HostRegistry,
	metrics repositories.MetricsRepository,
) *CommitCommand {
	return &CommitCommand{
		hostRegistry: hostRegistry,
		metrics:      metrics,
	}
}

// Execute writes the content to the repository.
func (it *CommitCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	input CommitInput,
) (*entities.WriteResult, error) {
	if strings.TrimSpace(input.RepositoryURL) == "" || strings.TrimSpace(input.Content) == "" {
		return nil, fmt.Errorf("%w: the repository URL and the content are required", entities.ErrInvalidInput)
	}

	ref, err := entities.ResolveRepository(input.RepositoryURL)
	if err != nil {
		return nil, err
	}

	host, err := it.hostRegistry.ForURL(input.RepositoryURL, settings.Hosts)
	if err != nil {
		return nil, err
	}

	path := input.Path
	if path == "" {
		path = settings.Pipeline.OutputPath
	}

	revision := newContentRevision(
		path,
		settings.Pipeline.CommitMessage,
		settings.Hosts.Providers[host.Name()].Branch,
		entities.GeneratedDocument{Text: input.Content},
	)

	logger.Infof("Committing %s to %s on %s...", path, ref.FullName(), host.Name())
	started := time.Now()
	result, err := writeDocument(ctx, host, ref, revision)
	if err != nil {
		it.metrics.RecordStage(repositories.StageWrite, repositories.OutcomeFailure, time.Since(started))
		return nil, err
	}
	it.metrics.RecordStage(repositories.StageWrite, repositories.OutcomeSuccess, time.Since(started))

	if result.Created {
		logger.Infof("Created %s in %s: %s", path, ref.FullName(), result.URL)
	} else {
		logger.Infof("Updated %s in %s: %s", path, ref.FullName(), result.URL)
	}
	return result, nil
}
