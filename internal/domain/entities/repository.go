package entities

import (
	"fmt"
	"net/url"
	"strings"
)

const gitSuffix = ".git"

// RepositoryRef identifies a repository on its host.
type RepositoryRef struct {
	Owner string
	Name  string
	URL   string // locator the reference was resolved from
}

// FullName returns "owner/name".
func (r RepositoryRef) FullName() string {
	return r.Owner + "/" + r.Name
}

// ResolveRepository parses a repository URL into its owner and name.
// Supported forms:
//   - https://host/owner/name(.git)
//   - git@host:owner/name(.git)
//   - file:///some/path/owner/name
//   - owner/name
//
// The last two non-empty path segments are taken as owner and name.
func ResolveRepository(rawURL string) (RepositoryRef, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return RepositoryRef{}, fmt.Errorf("%w: repository URL is empty", ErrResolution)
	}

	segments := pathSegments(repositoryPath(trimmed))
	if len(segments) < 2 { //nolint:mnd // owner and name
		return RepositoryRef{}, fmt.Errorf(
			"%w: could not identify owner and name in %q", ErrResolution, rawURL,
		)
	}

	owner := segments[len(segments)-2]
	name := strings.TrimSuffix(segments[len(segments)-1], gitSuffix)
	if name == "" {
		return RepositoryRef{}, fmt.Errorf("%w: empty repository name in %q", ErrResolution, rawURL)
	}

	return RepositoryRef{Owner: owner, Name: name, URL: trimmed}, nil
}

// repositoryPath strips the scheme and host from URL-like locators.
func repositoryPath(locator string) string {
	if strings.Contains(locator, "://") {
		parsed, err := url.Parse(locator)
		if err == nil {
			return parsed.Path
		}
		return locator[strings.Index(locator, "://")+3:]
	}

	// scp-like syntax: git@github.com:owner/name.git
	if at := strings.Index(locator, "@"); at >= 0 {
		if colon := strings.Index(locator[at:], ":"); colon >= 0 {
			return locator[at+colon+1:]
		}
	}
	return locator
}

// RepositoryHost returns the lower-cased hostname of a URL-like or scp-like
// locator, or an empty string for bare paths and "owner/name".
func RepositoryHost(rawURL string) string {
	locator := strings.TrimSpace(rawURL)
	if strings.Contains(locator, "://") {
		parsed, err := url.Parse(locator)
		if err != nil {
			return ""
		}
		return strings.ToLower(parsed.Hostname())
	}

	at := strings.Index(locator, "@")
	if at < 0 {
		return ""
	}
	colon := strings.Index(locator[at:], ":")
	if colon < 0 {
		return ""
	}
	return strings.ToLower(locator[at+1 : at+colon])
}

func pathSegments(path string) []string {
	var segments []string
	for _, part := range strings.Split(path, "/") {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}
