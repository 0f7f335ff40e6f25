package commands

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/historydoc/internal/domain/entities"
	"github.com/rios0rios0/historydoc/internal/domain/repositories"
)

// newContentRevision builds the write request for a document. The prior
// revision is filled in by the probe step.
func newContentRevision(path, message, branch string, document entities.GeneratedDocument) entities.ContentRevision {
	return entities.ContentRevision{
		Path:         path,
		EncodedBytes: base64.StdEncoding.EncodeToString([]byte(document.Text)),
		Message:      message,
		Branch:       branch,
	}
}

// writeDocument persists the revision in two steps:
//
//  1. Probe: read the current metadata at the path on the target branch. An
//     existing file yields the revision used as conditional-update token; a
//     missing file means create; anything else aborts before writing.
//  2. Commit: submit the content with the token. A conflict reported by the
//     host is returned as is, without re-probing.
func writeDocument(
	ctx context.Context,
	host repositories.HostRepository,
	ref entities.RepositoryRef,
	revision entities.ContentRevision,
) (*entities.WriteResult, error) {
	existing, err := host.GetFileMetadata(ctx, ref, revision.Path, revision.Branch)
	switch {
	case err == nil:
		revision.PriorRevisionID = existing.RevisionID
		logger.Debugf("Found %s at revision %s", revision.Path, existing.RevisionID)
	case errors.Is(err, entities.ErrFileNotFound):
		revision.PriorRevisionID = ""
		logger.Debugf("%s does not exist yet, creating it", revision.Path)
	default:
		return nil, fmt.Errorf("%w: failed to read existing %s: %w", entities.ErrWrite, revision.Path, err)
	}

	result, err := host.PutFile(ctx, ref, revision)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to commit %s: %w", entities.ErrWrite, revision.Path, err)
	}
	return result, nil
}
