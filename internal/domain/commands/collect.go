package commands

import (
	"context"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/historydoc/internal/domain/entities"
	"github.com/rios0rios0/historydoc/internal/domain/repositories"
)

// enumerateBranches lists the branches of the repository. A host failure is
// logged and reported as "no branches" so the caller decides how to react.
func enumerateBranches(
	ctx context.Context,
	host repositories.HostRepository,
	ref entities.RepositoryRef,
) []entities.Branch {
	branches, err := host.ListBranches(ctx, ref)
	if err != nil {
		logger.Warnf("Failed to list branches of %s on %s: %v", ref.FullName(), host.Name(), err)
		return []entities.Branch{}
	}
	return branches
}

// collectCommits fetches the newest commits of a branch. Any failure degrades
// to an empty contribution; a single broken branch must not block the others.
func collectCommits(
	ctx context.Context,
	host repositories.HostRepository,
	ref entities.RepositoryRef,
	branch entities.Branch,
	limit int,
	metrics repositories.MetricsRepository,
) []entities.CommitRecord {
	commits, err := host.ListCommits(ctx, ref, branch, limit)
	if err != nil {
		logger.Warnf("Failed to collect commits of branch %q in %s: %v", branch.Name, ref.FullName(), err)
		metrics.RecordBranchFetch(repositories.OutcomeFailure)
		return nil
	}

	if len(commits) > limit {
		commits = commits[:limit]
	}
	if len(commits) == 0 {
		metrics.RecordBranchFetch(repositories.OutcomeEmpty)
		return nil
	}

	metrics.RecordBranchFetch(repositories.OutcomeSuccess)
	return commits
}
