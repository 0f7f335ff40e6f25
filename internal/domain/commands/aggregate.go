package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rios0rios0/historydoc/internal/domain/entities"
	"github.com/rios0rios0/historydoc/internal/domain/repositories"
)

// aggregateOptions bounds the per-branch collection.
type aggregateOptions struct {
	Limit       int
	Concurrency int
}

// aggregateHistory collects the commits of every branch on a bounded worker
// pool and merges them into labelled sections, in enumeration order.
// Branches without commits are omitted; an empty aggregate is an error.
func aggregateHistory(
	ctx context.Context,
	host repositories.HostRepository,
	ref entities.RepositoryRef,
	branches []entities.Branch,
	opts aggregateOptions,
	metrics repositories.MetricsRepository,
) (entities.AggregatedHistory, error) {
	results := make([][]entities.CommitRecord, len(branches))

	var group errgroup.Group
	group.SetLimit(max(opts.Concurrency, 1))
	for i, branch := range branches {
		group.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			logger.Debugf("Collecting commits of branch %q...", branch.Name)
			results[i] = collectCommits(ctx, host, ref, branch, opts.Limit, metrics)
			return nil
		})
	}
	_ = group.Wait() // workers never fail, errors are downgraded per branch

	if err := ctx.Err(); err != nil {
		return entities.AggregatedHistory{}, fmt.Errorf("history aggregation interrupted: %w", err)
	}

	history := entities.AggregatedHistory{}
	for i, commits := range results {
		if len(commits) == 0 {
			continue
		}
		history.Sections = append(history.Sections, entities.BranchHistory{
			Branch:  branches[i],
			Commits: commits,
		})
	}

	if history.IsEmpty() {
		return history, fmt.Errorf("%w in %s", entities.ErrAggregationEmpty, ref.FullName())
	}
	return history, nil
}
