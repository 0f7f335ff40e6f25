package repositories

import "time"

// Stage and outcome labels recorded by the pipeline.
const (
	StageResolve    = "resolve"
	StageEnumerate  = "enumerate"
	StageAggregate  = "aggregate"
	StageSynthesize = "synthesize"
	StageWrite      = "write"

	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeEmpty   = "empty"
)

// MetricsRepository records pipeline observations.
type MetricsRepository interface {
	RecordStage(stage, outcome string, elapsed time.Duration)
	RecordBranchFetch(outcome string)
}
