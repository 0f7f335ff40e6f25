package repositories

import (
	"context"

	"github.com/rios0rios0/historydoc/internal/domain/entities"
)

// HostRepository abstracts a Git hosting service (GitHub, GitLab, a local clone)
// as a branch/commit reader and a versioned content store.
type HostRepository interface {
	// Name returns the host identifier (e.g. "github").
	Name() string

	// MatchesURL reports whether the repository URL belongs to this host.
	MatchesURL(rawURL string) bool

	// ListBranches returns the first page of branches, in host order.
	ListBranches(ctx context.Context, ref entities.RepositoryRef) ([]entities.Branch, error)

	// ListCommits returns at most limit commits reachable from the branch tip,
	// newest first.
	ListCommits(
		ctx context.Context,
		ref entities.RepositoryRef,
		branch entities.Branch,
		limit int,
	) ([]entities.CommitRecord, error)

	// GetFileMetadata returns the current revision of the file at path on the
	// branch, or an error wrapping entities.ErrFileNotFound when the file does
	// not exist there. An empty branch means the default branch.
	GetFileMetadata(
		ctx context.Context,
		ref entities.RepositoryRef,
		path, branch string,
	) (*entities.FileMetadata, error)

	// PutFile creates or replaces a file. When revision.PriorRevisionID is set
	// the write is conditional, and a stale token yields an error wrapping
	// entities.ErrRevisionConflict.
	PutFile(
		ctx context.Context,
		ref entities.RepositoryRef,
		revision entities.ContentRevision,
	) (*entities.WriteResult, error)
}
