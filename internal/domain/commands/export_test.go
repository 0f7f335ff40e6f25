package commands

// BuildPrompt exports buildPrompt for testing.
var BuildPrompt = buildPrompt //nolint:gochecknoglobals // test export

// EnumerateBranches exports enumerateBranches for testing.
var EnumerateBranches = enumerateBranches //nolint:gochecknoglobals // test export

// AggregateHistory exports aggregateHistory for testing.
var AggregateHistory = aggregateHistory //nolint:gochecknoglobals // test export

// AggregateOptions exports aggregateOptions for testing.
type AggregateOptions = aggregateOptions

// SynthesizeDocument exports synthesizeDocument for testing.
var SynthesizeDocument = synthesizeDocument //nolint:gochecknoglobals // test export

// WriteDocument exports writeDocument for testing.
var WriteDocument = writeDocument //nolint:gochecknoglobals // test export

// NewContentRevision exports newContentRevision for testing.
var NewContentRevision = newContentRevision //nolint:gochecknoglobals // test export
