//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations, no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/rios0rios0/historydoc/internal/domain/entities"
	"github.com/rios0rios0/historydoc/internal/domain/repositories"
)

// SpyHostRepository implements repositories.HostRepository as a configurable spy.
// Files live in memory per branch with a revision counter, so conditional
// writes behave like a real host. The empty branch is the default branch.
type SpyHostRepository struct {
	mu sync.Mutex

	// --- identity ---
	HostName   string
	MatchesAll bool

	// --- ListBranches ---
	Branches        []entities.Branch
	ListBranchesErr error

	// --- ListCommits ---
	Commits         map[string][]entities.CommitRecord // branch -> commits
	CommitErrs      map[string]error                   // branch -> error
	CommitRequests  []string
	CommitLimits    []int
	ListCommitsHook func(ctx context.Context, branch entities.Branch)
	// CommitsReturned runs after ListCommits released the spy.
	CommitsReturned func(branch entities.Branch)

	// --- GetFileMetadata ---
	Files            map[string]string // FileKey(branch, path) -> content
	Revisions        map[string]int    // FileKey(branch, path) -> revision counter
	MetadataErr      error
	MetadataBranches []string
	// BeforePut runs between the probe and the commit.
	BeforePut func(it *SpyHostRepository)

	// --- PutFile ---
	PutErr    error
	Puts      []entities.ContentRevision
	Conflicts int
}

var _ repositories.HostRepository = (*SpyHostRepository)(nil)

func (it *SpyHostRepository) Name() string { return it.HostName }

func (it *SpyHostRepository) MatchesURL(_ string) bool { return it.MatchesAll }

func (it *SpyHostRepository) ListBranches(_ context.Context, _ entities.RepositoryRef) ([]entities.Branch, error) {
	return it.Branches, it.ListBranchesErr
}

func (it *SpyHostRepository) ListCommits(
	ctx context.Context,
	_ entities.RepositoryRef,
	branch entities.Branch,
	limit int,
) ([]entities.CommitRecord, error) {
	if it.ListCommitsHook != nil {
		it.ListCommitsHook(ctx, branch)
	}
	if it.CommitsReturned != nil {
		defer it.CommitsReturned(branch)
	}

	it.mu.Lock()
	defer it.mu.Unlock()
	it.CommitRequests = append(it.CommitRequests, branch.Name)
	it.CommitLimits = append(it.CommitLimits, limit)
	if err, ok := it.CommitErrs[branch.Name]; ok {
		return nil, err
	}
	return it.Commits[branch.Name], nil
}

func (it *SpyHostRepository) GetFileMetadata(
	_ context.Context,
	ref entities.RepositoryRef,
	path, branch string,
) (*entities.FileMetadata, error) {
	it.mu.Lock()
	defer func() {
		it.mu.Unlock()
		if it.BeforePut != nil {
			it.BeforePut(it)
		}
	}()

	it.MetadataBranches = append(it.MetadataBranches, branch)
	if it.MetadataErr != nil {
		return nil, it.MetadataErr
	}
	key := FileKey(branch, path)
	if _, ok := it.Files[key]; !ok {
		return nil, fmt.Errorf("%w: %s", entities.ErrFileNotFound, key)
	}
	return &entities.FileMetadata{
		Path:       path,
		RevisionID: it.revisionID(key),
		URL:        fileURL(ref, path),
	}, nil
}

func (it *SpyHostRepository) PutFile(
	_ context.Context,
	ref entities.RepositoryRef,
	revision entities.ContentRevision,
) (*entities.WriteResult, error) {
	it.mu.Lock()
	defer it.mu.Unlock()
	it.Puts = append(it.Puts, revision)

	if it.PutErr != nil {
		return nil, it.PutErr
	}

	key := FileKey(revision.Branch, revision.Path)
	_, exists := it.Files[key]
	switch {
	case revision.IsCreate() && exists:
		it.Conflicts++
		return nil, fmt.Errorf("%w: %s already exists", entities.ErrRevisionConflict, key)
	case !revision.IsCreate() && (!exists || revision.PriorRevisionID != it.revisionID(key)):
		it.Conflicts++
		return nil, fmt.Errorf("%w: %s is not at %s", entities.ErrRevisionConflict, key, revision.PriorRevisionID)
	}

	it.SetBranchFile(revision.Branch, revision.Path, revision.EncodedBytes)
	return &entities.WriteResult{
		URL:        fileURL(ref, revision.Path),
		RevisionID: it.revisionID(key),
		Created:    !exists,
	}, nil
}

// SetFile stores content on the default branch and bumps its revision.
// Callers from BeforePut already run outside the lock.
func (it *SpyHostRepository) SetFile(path, content string) {
	it.SetBranchFile("", path, content)
}

// SetBranchFile stores content on branch and bumps its revision.
func (it *SpyHostRepository) SetBranchFile(branch, path, content string) {
	if it.Files == nil {
		it.Files = make(map[string]string)
	}
	if it.Revisions == nil {
		it.Revisions = make(map[string]int)
	}
	key := FileKey(branch, path)
	it.Files[key] = content
	it.Revisions[key]++
}

// FileKey is the Files/Revisions key of path on branch. Default-branch files
// are keyed by their path alone.
func FileKey(branch, path string) string {
	if branch == "" {
		return path
	}
	return branch + ":" + path
}

func (it *SpyHostRepository) revisionID(key string) string {
	return "rev-" + strconv.Itoa(it.Revisions[key])
}

func fileURL(ref entities.RepositoryRef, path string) string {
	return fmt.Sprintf("https://example.test/%s/blob/%s", ref.FullName(), path)
}
