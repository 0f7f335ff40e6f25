package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/historydoc/internal/domain/entities"
)

func TestResolveRepository(t *testing.T) {
	t.Parallel()

	valid := []struct {
		name          string
		url           string
		expectedOwner string
		expectedName  string
	}{
		{
			name:          "should parse HTTPS URL",
			url:           "https://host/acme/widget",
			expectedOwner: "acme",
			expectedName:  "widget",
		},
		{
			name:          "should strip .git suffix",
			url:           "https://github.com/acme/widget.git",
			expectedOwner: "acme",
			expectedName:  "widget",
		},
		{
			name:          "should ignore trailing slash",
			url:           "https://github.com/acme/widget/",
			expectedOwner: "acme",
			expectedName:  "widget",
		},
		{
			name:          "should take the last two segments of nested paths",
			url:           "https://gitlab.com/group/subgroup/project.git",
			expectedOwner: "subgroup",
			expectedName:  "project",
		},
		{
			name:          "should parse SSH URL",
			url:           "git@github.com:acme/widget.git",
			expectedOwner: "acme",
			expectedName:  "widget",
		},
		{
			name:          "should parse file URL",
			url:           "file:///srv/git/acme/widget",
			expectedOwner: "acme",
			expectedName:  "widget",
		},
		{
			name:          "should parse bare owner/name",
			url:           "acme/widget",
			expectedOwner: "acme",
			expectedName:  "widget",
		},
		{
			name:          "should trim surrounding whitespace",
			url:           "  https://github.com/acme/widget \n",
			expectedOwner: "acme",
			expectedName:  "widget",
		},
	}

	for _, tt := range valid {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// when
			ref, err := entities.ResolveRepository(tt.url)

			// then
			require.NoError(t, err)
			assert.Equal(t, tt.expectedOwner, ref.Owner)
			assert.Equal(t, tt.expectedName, ref.Name)
			assert.Equal(t, tt.expectedOwner+"/"+tt.expectedName, ref.FullName())
		})
	}

	invalid := []struct {
		name string
		url  string
	}{
		{name: "should fail on empty URL", url: ""},
		{name: "should fail on blank URL", url: "   "},
		{name: "should fail on host-only URL", url: "https://github.com"},
		{name: "should fail on single segment", url: "widget"},
		{name: "should fail when name is only the suffix", url: "https://github.com/acme/.git"},
	}

	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// when
			_, err := entities.ResolveRepository(tt.url)

			// then
			require.Error(t, err)
			assert.ErrorIs(t, err, entities.ErrResolution)
		})
	}
}

func TestRepositoryHost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{name: "should return the hostname of HTTPS URLs", url: "https://GitHub.com/acme/widget", expected: "github.com"},
		{name: "should drop the port", url: "https://gitlab.corp:8443/acme/widget", expected: "gitlab.corp"},
		{name: "should read scp-like locators", url: "git@gitlab.com:acme/widget.git", expected: "gitlab.com"},
		{
			name:     "should ignore host names inside the path",
			url:      "https://gitlab.com/acme/github.com-tools",
			expected: "gitlab.com",
		},
		{name: "should return empty for owner/name", url: "acme/widget", expected: ""},
		{name: "should return empty for file URLs", url: "file:///srv/acme/widget", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// when
			host := entities.RepositoryHost(tt.url)

			// then
			assert.Equal(t, tt.expected, host)
		})
	}
}
