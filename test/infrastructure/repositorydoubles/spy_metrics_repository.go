//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"sync"
	"time"

	"github.com/rios0rios0/historydoc/internal/domain/repositories"
)

// SpyMetricsRepository records every observation in memory.
type SpyMetricsRepository struct {
	mu sync.Mutex

	Stages        map[string][]string // stage -> outcomes
	BranchFetches map[string]int      // outcome -> count
}

var _ repositories.MetricsRepository = (*SpyMetricsRepository)(nil)

func NewSpyMetricsRepository() *SpyMetricsRepository {
	return &SpyMetricsRepository{
		Stages:        make(map[string][]string),
		BranchFetches: make(map[string]int),
	}
}

func (it *SpyMetricsRepository) RecordStage(stage, outcome string, _ time.Duration) {
	it.mu.Lock()
	defer it.mu.Unlock()
	it.Stages[stage] = append(it.Stages[stage], outcome)
}

func (it *SpyMetricsRepository) RecordBranchFetch(outcome string) {
	it.mu.Lock()
	defer it.mu.Unlock()
	it.BranchFetches[outcome]++
}
