package github

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v66/github"
	logger "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/rios0rios0/historydoc/internal/domain/entities"
	"github.com/rios0rios0/historydoc/internal/domain/repositories"
)

const (
	hostName      = "github"
	publicHost    = "github.com"
	branchPerPage = 100
)

var errInvalidEncoding = errors.New("content is not valid base64")

// GitHubHostRepository implements repositories.HostRepository for GitHub.
type GitHubHostRepository struct {
	client *gh.Client
	// webHost is the hostname of an Enterprise server, empty for github.com.
	webHost string
}

// NewGitHubHostRepository creates a GitHub host authenticated with the
// configured token. An empty token uses anonymous access.
func NewGitHubHostRepository(settings entities.HostSettings) repositories.HostRepository {
	var httpClient *http.Client
	if settings.Token != "" {
		httpClient = oauth2.NewClient(
			context.Background(),
			oauth2.StaticTokenSource(&oauth2.Token{AccessToken: settings.Token}),
		)
	}

	client := gh.NewClient(httpClient)
	webHost := ""
	if settings.BaseURL != "" {
		baseURL, err := url.Parse(strings.TrimSuffix(settings.BaseURL, "/") + "/")
		if err != nil {
			logger.Warnf("Ignoring invalid GitHub base URL %q: %v", settings.BaseURL, err)
		} else {
			client.BaseURL = baseURL
			webHost = strings.TrimPrefix(strings.ToLower(baseURL.Hostname()), "api.")
		}
	}

	return &GitHubHostRepository{client: client, webHost: webHost}
}

func (it *GitHubHostRepository) Name() string { return hostName }

// MatchesURL accepts github.com and the configured Enterprise host.
func (it *GitHubHostRepository) MatchesURL(rawURL string) bool {
	host := strings.TrimPrefix(entities.RepositoryHost(rawURL), "www.")
	if host == "" {
		return false
	}
	return host == publicHost || (it.webHost != "" && host == it.webHost)
}

// ListBranches returns the first page of branches only.
func (it *GitHubHostRepository) ListBranches(
	ctx context.Context,
	ref entities.RepositoryRef,
) ([]entities.Branch, error) {
	branches, _, err := it.client.Repositories.ListBranches(
		ctx, ref.Owner, ref.Name,
		&gh.BranchListOptions{ListOptions: gh.ListOptions{PerPage: branchPerPage}},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches of %s: %w", ref.FullName(), err)
	}

	result := make([]entities.Branch, 0, len(branches))
	for _, branch := range branches {
		result = append(result, entities.Branch{Name: branch.GetName()})
	}
	return result, nil
}

func (it *GitHubHostRepository) ListCommits(
	ctx context.Context,
	ref entities.RepositoryRef,
	branch entities.Branch,
	limit int,
) ([]entities.CommitRecord, error) {
	commits, _, err := it.client.Repositories.ListCommits(
		ctx, ref.Owner, ref.Name,
		&gh.CommitsListOptions{
			SHA:         branch.Name,
			ListOptions: gh.ListOptions{PerPage: limit},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list commits of branch %q: %w", branch.Name, err)
	}

	result := make([]entities.CommitRecord, 0, len(commits))
	for _, commit := range commits {
		result = append(result, entities.CommitRecord{Message: commit.GetCommit().GetMessage()})
	}
	return result, nil
}

// GetFileMetadata reads the file on the branch, GitHub resolves an empty ref
// to the default branch.
func (it *GitHubHostRepository) GetFileMetadata(
	ctx context.Context,
	ref entities.RepositoryRef,
	path, branch string,
) (*entities.FileMetadata, error) {
	file, _, resp, err := it.client.Repositories.GetContents(
		ctx, ref.Owner, ref.Name, path, &gh.RepositoryContentGetOptions{Ref: branch},
	)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", entities.ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to get %q: %w", path, err)
	}
	if file == nil {
		return nil, fmt.Errorf("%q is a directory", path)
	}

	return &entities.FileMetadata{
		Path:       file.GetPath(),
		RevisionID: file.GetSHA(),
		URL:        file.GetHTMLURL(),
	}, nil
}

// PutFile creates the file, or replaces it when the revision carries the
// blob SHA of the current content. GitHub answers 409 when that SHA is stale.
func (it *GitHubHostRepository) PutFile(
	ctx context.Context,
	ref entities.RepositoryRef,
	revision entities.ContentRevision,
) (*entities.WriteResult, error) {
	content, err := decodeContent(revision.EncodedBytes)
	if err != nil {
		return nil, err
	}

	opts := &gh.RepositoryContentFileOptions{
		Message: gh.String(revision.Message),
		Content: content,
	}
	if revision.Branch != "" {
		opts.Branch = gh.String(revision.Branch)
	}

	var (
		response *gh.RepositoryContentResponse
		resp     *gh.Response
	)
	if revision.IsCreate() {
		response, resp, err = it.client.Repositories.CreateFile(ctx, ref.Owner, ref.Name, revision.Path, opts)
	} else {
		opts.SHA = gh.String(revision.PriorRevisionID)
		response, resp, err = it.client.Repositories.UpdateFile(ctx, ref.Owner, ref.Name, revision.Path, opts)
	}
	if err != nil {
		if isConflict(resp, revision) {
			return nil, fmt.Errorf("%w: %s: %w", entities.ErrRevisionConflict, revision.Path, err)
		}
		return nil, fmt.Errorf("failed to write %q: %w", revision.Path, err)
	}

	return &entities.WriteResult{
		URL:        response.GetContent().GetHTMLURL(),
		RevisionID: response.GetContent().GetSHA(),
		Created:    revision.IsCreate(),
	}, nil
}

// isConflict maps the answers GitHub gives for a stale or missing SHA.
// 422 on create means the file appeared after the probe.
func isConflict(resp *gh.Response, revision entities.ContentRevision) bool {
	if resp == nil {
		return false
	}
	switch resp.StatusCode {
	case http.StatusConflict:
		return true
	case http.StatusUnprocessableEntity:
		return revision.IsCreate()
	default:
		return false
	}
}

// decodeContent turns the payload back into raw bytes, go-github encodes it itself.
func decodeContent(encoded string) ([]byte, error) {
	content, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalidEncoding, err)
	}
	return content, nil
}
