package local

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/rios0rios0/historydoc/internal/domain/entities"
	"github.com/rios0rios0/historydoc/internal/domain/repositories"
)

const (
	hostName      = "local"
	filePrefix    = "file://"
	authorName    = "historydoc"
	authorEmail   = "historydoc@localhost"
	filePerm      = 0o644
	directoryPerm = 0o755
)

var (
	errBranchNotCheckedOut = errors.New("branch is not checked out")
	errStagedChanges       = errors.New("index has staged changes")
)

// LocalHostRepository implements repositories.HostRepository on a clone in
// the local file system. Writes are committed to the checked-out branch.
type LocalHostRepository struct {
	root string
}

// NewLocalHostRepository creates a local host. BaseURL, when set, is the
// directory relative locators are resolved against.
func NewLocalHostRepository(settings entities.HostSettings) repositories.HostRepository {
	return &LocalHostRepository{root: settings.BaseURL}
}

func (it *LocalHostRepository) Name() string { return hostName }

func (it *LocalHostRepository) MatchesURL(rawURL string) bool {
	return strings.HasPrefix(rawURL, filePrefix) || filepath.IsAbs(rawURL)
}

func (it *LocalHostRepository) ListBranches(
	_ context.Context,
	ref entities.RepositoryRef,
) ([]entities.Branch, error) {
	repo, err := it.open(ref)
	if err != nil {
		return nil, err
	}

	iter, err := repo.Branches()
	if err != nil {
		return nil, fmt.Errorf("failed to list branches of %s: %w", ref.FullName(), err)
	}

	var result []entities.Branch
	err = iter.ForEach(func(branch *plumbing.Reference) error {
		result = append(result, entities.Branch{Name: branch.Name().Short()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list branches of %s: %w", ref.FullName(), err)
	}
	return result, nil
}

func (it *LocalHostRepository) ListCommits(
	ctx context.Context,
	ref entities.RepositoryRef,
	branch entities.Branch,
	limit int,
) ([]entities.CommitRecord, error) {
	repo, err := it.open(ref)
	if err != nil {
		return nil, err
	}

	tip, err := repo.Reference(plumbing.NewBranchReferenceName(branch.Name), true)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve branch %q: %w", branch.Name, err)
	}

	iter, err := repo.Log(&git.LogOptions{From: tip.Hash()})
	if err != nil {
		return nil, fmt.Errorf("failed to read log of branch %q: %w", branch.Name, err)
	}

	var result []entities.CommitRecord
	err = iter.ForEach(func(commit *object.Commit) error {
		if len(result) >= limit {
			return storer.ErrStop
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		result = append(result, entities.CommitRecord{Message: commit.Message})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read log of branch %q: %w", branch.Name, err)
	}
	return result, nil
}

// GetFileMetadata reads the file from the tip of the branch, or from HEAD when
// no branch is given. The blob hash is the revision token, so uncommitted
// edits do not count as a new revision.
func (it *LocalHostRepository) GetFileMetadata(
	_ context.Context,
	ref entities.RepositoryRef,
	path, branch string,
) (*entities.FileMetadata, error) {
	repo, err := it.open(ref)
	if err != nil {
		return nil, err
	}

	revisionID, err := blobAt(repo, branch, path)
	if err != nil {
		return nil, err
	}

	return &entities.FileMetadata{
		Path:       path,
		RevisionID: revisionID,
		URL:        filepath.Join(it.directory(ref), path),
	}, nil
}

// PutFile checks the HEAD blob against the prior revision, then writes and
// commits the file on the checked-out branch. Changes the user already staged
// for other paths abort the write, they would end up in the same commit.
func (it *LocalHostRepository) PutFile(
	_ context.Context,
	ref entities.RepositoryRef,
	revision entities.ContentRevision,
) (*entities.WriteResult, error) {
	content, err := base64.StdEncoding.DecodeString(revision.EncodedBytes)
	if err != nil {
		return nil, fmt.Errorf("content is not valid base64: %w", err)
	}

	repo, err := it.open(ref)
	if err != nil {
		return nil, err
	}
	if err = checkBranch(repo, revision.Branch); err != nil {
		return nil, err
	}

	current, err := blobAt(repo, "", revision.Path)
	switch {
	case errors.Is(err, entities.ErrFileNotFound):
		if !revision.IsCreate() {
			return nil, fmt.Errorf("%w: %s was removed", entities.ErrRevisionConflict, revision.Path)
		}
	case err != nil:
		return nil, err
	case revision.IsCreate():
		return nil, fmt.Errorf("%w: %s already exists", entities.ErrRevisionConflict, revision.Path)
	case current != revision.PriorRevisionID:
		return nil, fmt.Errorf(
			"%w: %s is at %s, not %s", entities.ErrRevisionConflict, revision.Path, current, revision.PriorRevisionID,
		)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to open worktree: %w", err)
	}
	if err = checkIndex(worktree, revision.Path); err != nil {
		return nil, err
	}

	target := filepath.Join(it.directory(ref), revision.Path)
	if err = os.MkdirAll(filepath.Dir(target), directoryPerm); err != nil {
		return nil, fmt.Errorf("failed to create directory for %q: %w", revision.Path, err)
	}
	if err = os.WriteFile(target, content, filePerm); err != nil {
		return nil, fmt.Errorf("failed to write %q: %w", revision.Path, err)
	}

	if _, err = worktree.Add(filepath.ToSlash(revision.Path)); err != nil {
		return nil, fmt.Errorf("failed to stage %q: %w", revision.Path, err)
	}
	_, err = worktree.Commit(revision.Message, &git.CommitOptions{
		Author: &object.Signature{Name: authorName, Email: authorEmail, When: time.Now()},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to commit %q: %w", revision.Path, err)
	}

	revisionID, err := blobAt(repo, "", revision.Path)
	if err != nil {
		return nil, err
	}
	return &entities.WriteResult{
		URL:        target,
		RevisionID: revisionID,
		Created:    revision.IsCreate(),
	}, nil
}

func (it *LocalHostRepository) directory(ref entities.RepositoryRef) string {
	path := strings.TrimPrefix(ref.URL, filePrefix)
	if it.root != "" && !filepath.IsAbs(path) {
		path = filepath.Join(it.root, path)
	}
	return path
}

func (it *LocalHostRepository) open(ref entities.RepositoryRef) (*git.Repository, error) {
	repo, err := git.PlainOpen(it.directory(ref))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", it.directory(ref), err)
	}
	return repo, nil
}

// blobAt returns the blob hash of path at the tip of branch, HEAD when empty.
func blobAt(repo *git.Repository, branch, path string) (string, error) {
	var (
		tip *plumbing.Reference
		err error
	)
	if branch == "" {
		tip, err = repo.Head()
	} else {
		tip, err = repo.Reference(plumbing.NewBranchReferenceName(branch), true)
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve %q: %w", branchOrHead(branch), err)
	}
	commit, err := repo.CommitObject(tip.Hash())
	if err != nil {
		return "", fmt.Errorf("failed to read tip of %q: %w", branchOrHead(branch), err)
	}

	file, err := commit.File(filepath.ToSlash(path))
	if err != nil {
		if errors.Is(err, object.ErrFileNotFound) {
			return "", fmt.Errorf("%w: %s", entities.ErrFileNotFound, path)
		}
		return "", fmt.Errorf("failed to read %q: %w", path, err)
	}
	return file.Hash.String(), nil
}

func branchOrHead(branch string) string {
	if branch == "" {
		return "HEAD"
	}
	return branch
}

// checkIndex fails when paths other than path are staged.
func checkIndex(worktree *git.Worktree, path string) error {
	status, err := worktree.Status()
	if err != nil {
		return fmt.Errorf("failed to read worktree status: %w", err)
	}

	target := filepath.ToSlash(path)
	for file, fileStatus := range status {
		if file == target {
			continue
		}
		if fileStatus.Staging != git.Unmodified && fileStatus.Staging != git.Untracked {
			return fmt.Errorf("%w: %s", errStagedChanges, file)
		}
	}
	return nil
}

func checkBranch(repo *git.Repository, branch string) error {
	if branch == "" {
		return nil
	}
	head, err := repo.Head()
	if err != nil {
		return fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	if head.Name().Short() != branch {
		return fmt.Errorf("%w: %s (HEAD is %s)", errBranchNotCheckedOut, branch, head.Name().Short())
	}
	return nil
}
