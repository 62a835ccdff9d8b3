package engine

import "time"

// PassMetrics records timing and discovery counts for a single
// saturation pass.
type PassMetrics struct {
	Duration time.Duration
	Produced int
}

// SaturationMetrics records timings for the saturation phase.
type SaturationMetrics struct {
	Total        time.Duration
	InitialRegex PassMetrics
	Iterations   []PassMetrics
}

// RunMetrics bundles timing information for a full parse.
type RunMetrics struct {
	Total      time.Duration
	Saturation SaturationMetrics
	Resolve    time.Duration
}

// RunResult bundles the saturated-and-resolved output with metrics and,
// for verbose callers, the raw pre-filter candidate set.
type RunResult struct {
	AllNodes []ResolvedNode
	Nodes    []ResolvedNode
	Metrics  RunMetrics
}
