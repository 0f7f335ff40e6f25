package entities

// Analysis is the outcome of running the history-to-document pipeline
// against one repository.
type Analysis struct {
	Repository RepositoryRef
	Branches   []Branch
	History    AggregatedHistory
	Document   GeneratedDocument
}
