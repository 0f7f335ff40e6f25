//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/historydoc/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// HistoryBuilder helps create aggregated histories with a fluent interface.
type HistoryBuilder struct {
	*testkit.BaseBuilder
	sections []entities.BranchHistory
}

// NewHistoryBuilder creates a new history builder with no sections.
func NewHistoryBuilder() *HistoryBuilder {
	return &HistoryBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
	}
}

// WithBranch appends a section for the branch with the given messages.
func (b *HistoryBuilder) WithBranch(name string, messages ...string) *HistoryBuilder {
	commits := make([]entities.CommitRecord, 0, len(messages))
	for _, message := range messages {
		commits = append(commits, entities.CommitRecord{Message: message})
	}
	b.sections = append(b.sections, entities.BranchHistory{
		Branch:  entities.Branch{Name: name},
		Commits: commits,
	})
	return b
}

// Build creates the history (satisfies testkit.Builder interface).
func (b *HistoryBuilder) Build() interface{} {
	return b.BuildHistory()
}

// BuildHistory creates the history with a concrete return type.
func (b *HistoryBuilder) BuildHistory() entities.AggregatedHistory {
	sections := make([]entities.BranchHistory, len(b.sections))
	copy(sections, b.sections)
	return entities.AggregatedHistory{Sections: sections}
}

// Reset clears the builder state, allowing it to be reused.
func (b *HistoryBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.sections = nil
	return b
}

// Clone creates a deep copy of the HistoryBuilder.
func (b *HistoryBuilder) Clone() testkit.Builder {
	sections := make([]entities.BranchHistory, len(b.sections))
	copy(sections, b.sections)
	return &HistoryBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		sections:    sections,
	}
}
