package entities

// ContentRevision is a write request against the repository content store.
// PriorRevisionID is the optimistic-concurrency token: it is set only when
// an existing file is replaced, and the host must reject the write when the
// file no longer has that revision.
type ContentRevision struct {
	Path            string
	EncodedBytes    string // base64
	PriorRevisionID string
	Message         string
	Branch          string // empty means the host default branch
}

// IsCreate reports whether the revision creates a new file.
func (r ContentRevision) IsCreate() bool {
	return r.PriorRevisionID == ""
}

// FileMetadata describes an existing file in the content store.
type FileMetadata struct {
	Path       string
	RevisionID string
	URL        string
}

// WriteResult is returned after a successful create or replace.
type WriteResult struct {
	URL        string
	RevisionID string
	Created    bool
}
