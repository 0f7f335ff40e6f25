package gitlab

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	gl "gitlab.com/gitlab-org/api/client-go"

	"github.com/rios0rios0/historydoc/internal/domain/entities"
	"github.com/rios0rios0/historydoc/internal/domain/repositories"
)

const (
	hostName       = "gitlab"
	publicHost     = "gitlab.com"
	branchPerPage  = 100
	base64Encoding = "base64"
)

var errClientNotInitialized = errors.New("gitlab client not initialized")

// Messages GitLab attaches to a 400 when the write lost a race.
var conflictMessages = []string{ //nolint:gochecknoglobals // read-only lookup
	"has changed since you started editing",
	"already exists",
}

// GitLabHostRepository implements repositories.HostRepository for GitLab.
type GitLabHostRepository struct {
	client *gl.Client
	// webHost is the hostname of a self-managed instance, empty for gitlab.com.
	webHost string
}

// NewGitLabHostRepository creates a GitLab host with the configured token and
// optional self-managed base URL.
func NewGitLabHostRepository(settings entities.HostSettings) repositories.HostRepository {
	var options []gl.ClientOptionFunc
	webHost := ""
	if settings.BaseURL != "" {
		options = append(options, gl.WithBaseURL(settings.BaseURL))
		webHost = entities.RepositoryHost(settings.BaseURL)
	}

	client, err := gl.NewClient(settings.Token, options...)
	if err != nil {
		// Return a host that will fail on use rather than panicking at construction
		return &GitLabHostRepository{client: nil, webHost: webHost}
	}
	return &GitLabHostRepository{client: client, webHost: webHost}
}

func (it *GitLabHostRepository) Name() string { return hostName }

// MatchesURL accepts gitlab.com and the configured self-managed host.
func (it *GitLabHostRepository) MatchesURL(rawURL string) bool {
	host := entities.RepositoryHost(rawURL)
	if host == "" {
		return false
	}
	return host == publicHost || (it.webHost != "" && host == it.webHost)
}

// ListBranches returns the first page of branches only.
func (it *GitLabHostRepository) ListBranches(
	ctx context.Context,
	ref entities.RepositoryRef,
) ([]entities.Branch, error) {
	if it.client == nil {
		return nil, errClientNotInitialized
	}

	branches, _, err := it.client.Branches.ListBranches(
		ref.FullName(),
		&gl.ListBranchesOptions{ListOptions: gl.ListOptions{PerPage: branchPerPage}},
		gl.WithContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches of %s: %w", ref.FullName(), err)
	}

	result := make([]entities.Branch, 0, len(branches))
	for _, branch := range branches {
		result = append(result, entities.Branch{Name: branch.Name})
	}
	return result, nil
}

func (it *GitLabHostRepository) ListCommits(
	ctx context.Context,
	ref entities.RepositoryRef,
	branch entities.Branch,
	limit int,
) ([]entities.CommitRecord, error) {
	if it.client == nil {
		return nil, errClientNotInitialized
	}

	commits, _, err := it.client.Commits.ListCommits(
		ref.FullName(),
		&gl.ListCommitsOptions{
			RefName:     gl.Ptr(branch.Name),
			ListOptions: gl.ListOptions{PerPage: int64(limit)},
		},
		gl.WithContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list commits of branch %q: %w", branch.Name, err)
	}

	result := make([]entities.CommitRecord, 0, len(commits))
	for _, commit := range commits {
		result = append(result, entities.CommitRecord{Message: commit.Message})
	}
	return result, nil
}

// GetFileMetadata reads the file on the branch, or on the default branch when
// none is given. The last commit that touched the file is the revision token.
func (it *GitLabHostRepository) GetFileMetadata(
	ctx context.Context,
	ref entities.RepositoryRef,
	path, branch string,
) (*entities.FileMetadata, error) {
	if it.client == nil {
		return nil, errClientNotInitialized
	}

	project, err := it.project(ctx, ref)
	if err != nil {
		return nil, err
	}

	if branch == "" {
		branch = project.DefaultBranch
	}

	file, resp, err := it.client.RepositoryFiles.GetFileMetaData(
		ref.FullName(), path,
		&gl.GetFileMetaDataOptions{Ref: gl.Ptr(branch)},
		gl.WithContext(ctx),
	)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", entities.ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to get %q: %w", path, err)
	}

	return &entities.FileMetadata{
		Path:       file.FilePath,
		RevisionID: file.LastCommitID,
		URL:        fileURL(project, branch, path),
	}, nil
}

// PutFile creates or updates the file. GitLab answers 400 with a specific
// message when the last commit id is stale or the file appeared after the probe.
func (it *GitLabHostRepository) PutFile(
	ctx context.Context,
	ref entities.RepositoryRef,
	revision entities.ContentRevision,
) (*entities.WriteResult, error) {
	if it.client == nil {
		return nil, errClientNotInitialized
	}

	project, err := it.project(ctx, ref)
	if err != nil {
		return nil, err
	}
	branch := revision.Branch
	if branch == "" {
		branch = project.DefaultBranch
	}

	var resp *gl.Response
	if revision.IsCreate() {
		_, resp, err = it.client.RepositoryFiles.CreateFile(
			ref.FullName(), revision.Path,
			&gl.CreateFileOptions{
				Branch:        gl.Ptr(branch),
				Encoding:      gl.Ptr(base64Encoding),
				Content:       gl.Ptr(revision.EncodedBytes),
				CommitMessage: gl.Ptr(revision.Message),
			},
			gl.WithContext(ctx),
		)
	} else {
		_, resp, err = it.client.RepositoryFiles.UpdateFile(
			ref.FullName(), revision.Path,
			&gl.UpdateFileOptions{
				Branch:        gl.Ptr(branch),
				Encoding:      gl.Ptr(base64Encoding),
				Content:       gl.Ptr(revision.EncodedBytes),
				CommitMessage: gl.Ptr(revision.Message),
				LastCommitID:  gl.Ptr(revision.PriorRevisionID),
			},
			gl.WithContext(ctx),
		)
	}
	if err != nil {
		if isConflict(resp, err) {
			return nil, fmt.Errorf("%w: %s: %w", entities.ErrRevisionConflict, revision.Path, err)
		}
		return nil, fmt.Errorf("failed to write %q: %w", revision.Path, err)
	}

	return &entities.WriteResult{
		URL:     fileURL(project, branch, revision.Path),
		Created: revision.IsCreate(),
	}, nil
}

func (it *GitLabHostRepository) project(ctx context.Context, ref entities.RepositoryRef) (*gl.Project, error) {
	project, _, err := it.client.Projects.GetProject(ref.FullName(), nil, gl.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to get project %s: %w", ref.FullName(), err)
	}
	return project, nil
}

// isConflict separates lost races from other 400s such as an unknown branch.
func isConflict(resp *gl.Response, err error) bool {
	if resp == nil {
		return false
	}
	switch resp.StatusCode {
	case http.StatusConflict:
		return true
	case http.StatusBadRequest:
		message := strings.ToLower(err.Error())
		for _, fragment := range conflictMessages {
			if strings.Contains(message, fragment) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func fileURL(project *gl.Project, branch, path string) string {
	return fmt.Sprintf("%s/-/blob/%s/%s", strings.TrimSuffix(project.WebURL, "/"), branch, path)
}
