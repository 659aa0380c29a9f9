package experiments

import (
	"ringrush/experiments/metrics"
)

var parallelConfigs = []metrics.AgentConfig{
	{ID: 1, Goroutines: 1, Duration: TimeBudget},
	{ID: 2, Goroutines: 2, Duration: TimeBudget},
	{ID: 3, Goroutines: 4, Duration: TimeBudget},
	{ID: 4, Goroutines: 8, Duration: TimeBudget},
	{ID: 5, Goroutines: 16, Duration: TimeBudget},
	{ID: 6, Goroutines: 32, Duration: TimeBudget},
}

// ThroughputPlan pits every parallel config against itself for the same
// playing strength and similar game length; the move records show episodes
// per search as goroutines grow.
func ThroughputPlan() Plan {
	plan := Plan{Name: "throughput", Games: 2, Variant: VariantCore, Seed: 1, Agents: parallelConfigs}
	for _, config := range parallelConfigs {
		plan.MatchUps = append(plan.MatchUps, []int{config.ID, config.ID})
	}
	return plan
}

// ParallelizationPlan pairs each parallel config against the sequential
// baseline.
func ParallelizationPlan() Plan {
	baseline := metrics.AgentConfig{ID: 0, Goroutines: 1, Duration: TimeBudget}
	plan := Plan{
		Name:    "parallelization",
		Games:   NumGames,
		Variant: VariantCore,
		Seed:    1,
		Agents:  append([]metrics.AgentConfig{baseline}, parallelConfigs...),
	}
	for _, config := range parallelConfigs {
		plan.MatchUps = append(plan.MatchUps, []int{baseline.ID, config.ID})
	}
	return plan
}

// CutoffPlan pairs the full-playout baseline against agents that evaluate
// the position after a fixed number of rollout plies.
func CutoffPlan() Plan {
	baseline := metrics.AgentConfig{ID: 0, Goroutines: 8, Duration: TimeBudget}
	plan := Plan{
		Name:    "cutoff",
		Games:   NumGames,
		Variant: VariantCore,
		Seed:    1,
		Agents: []metrics.AgentConfig{
			baseline,
			{ID: 1, Goroutines: baseline.Goroutines, Duration: baseline.Duration}, // Baseline equivalent
			{ID: 2, Goroutines: baseline.Goroutines, Duration: baseline.Duration, Cutoff: 5},
			{ID: 3, Goroutines: baseline.Goroutines, Duration: baseline.Duration, Cutoff: 15},
			{ID: 4, Goroutines: baseline.Goroutines, Duration: baseline.Duration, Cutoff: 30},
			{ID: 5, Goroutines: baseline.Goroutines, Duration: baseline.Duration, Cutoff: 15, Evaluation: "potential"},
		},
	}
	for _, config := range plan.Agents[1:] {
		plan.MatchUps = append(plan.MatchUps, []int{baseline.ID, config.ID})
	}
	return plan
}

// Builtin returns the named built-in plan.
func Builtin(name string) (Plan, bool) {
	switch name {
	case "throughput":
		return ThroughputPlan(), true
	case "parallelization":
		return ParallelizationPlan(), true
	case "cutoff":
		return CutoffPlan(), true
	default:
		return Plan{}, false
	}
}
