//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/historydoc/internal/domain/commands"
	"github.com/rios0rios0/historydoc/internal/domain/entities"
)

// StubAnalyzeCommand is a stub implementation of commands.Analyze.
type StubAnalyzeCommand struct {
	ExecuteCallCount int
	Result           *entities.Analysis
	ExecuteErr       error
	LastSettings     *entities.Settings
	LastInput        commands.AnalyzeInput
}

var _ commands.Analyze = (*StubAnalyzeCommand)(nil)

func (s *StubAnalyzeCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	input commands.AnalyzeInput,
) (*entities.Analysis, error) {
	s.ExecuteCallCount++
	s.LastSettings = settings
	s.LastInput = input
	return s.Result, s.ExecuteErr
}

// StubCommitCommand is a stub implementation of commands.Commit.
type StubCommitCommand struct {
	ExecuteCallCount int
	Result           *entities.WriteResult
	ExecuteErr       error
	LastSettings     *entities.Settings
	LastInput        commands.CommitInput
}

var _ commands.Commit = (*StubCommitCommand)(nil)

func (s *StubCommitCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	input commands.CommitInput,
) (*entities.WriteResult, error) {
	s.ExecuteCallCount++
	s.LastSettings = settings
	s.LastInput = input
	return s.Result, s.ExecuteErr
}
