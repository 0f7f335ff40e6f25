package entities

import "errors"

var (
	// ErrInvalidInput is returned when a required request field is missing.
	ErrInvalidInput = errors.New("invalid input")
	// ErrResolution is returned when a repository URL cannot be parsed.
	ErrResolution = errors.New("could not resolve repository")
	// ErrEnumerationEmpty is returned when the host reports no branches.
	ErrEnumerationEmpty = errors.New("no branches found or repository is not accessible")
	// ErrAggregationEmpty is returned when no branch yielded any commit.
	ErrAggregationEmpty = errors.New("no commit history found on any branch")
	// ErrSynthesis wraps failures of the text-generation service.
	ErrSynthesis = errors.New("document generation failed")
	// ErrWrite wraps failures of the content store probe or commit.
	ErrWrite = errors.New("document write failed")
	// ErrRevisionConflict is returned by hosts when a conditional write is rejected.
	ErrRevisionConflict = errors.New("file changed since it was read")
	// ErrFileNotFound is returned by hosts when probing a path that does not exist.
	ErrFileNotFound = errors.New("file not found")
	// ErrUnknownProvider is returned when no host or generator is registered under a name.
	ErrUnknownProvider = errors.New("unknown provider")
)
