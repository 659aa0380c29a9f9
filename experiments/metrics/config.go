package metrics

import "time"

// Agent kinds an AgentConfig can describe.
const (
	KindMCTS     = "mcts"
	KindTraining = "training"
	KindGreedy   = "greedy"
	KindRandom   = "random"
)

type AgentConfig struct {
	ID          int           `yaml:"id" json:"id"`
	Kind        string        `yaml:"kind" json:"kind"` // mcts by default
	Goroutines  int           `yaml:"goroutines" json:"goroutines"`
	Duration    time.Duration `yaml:"duration" json:"duration"`
	Episodes    int           `yaml:"episodes" json:"episodes"`
	Cutoff      int           `yaml:"cutoff" json:"cutoff"`
	Evaluation  string        `yaml:"evaluation" json:"evaluation"` // score or potential
	Rollout     string        `yaml:"rollout" json:"rollout"`       // uniform or greedy
	Temperature float64       `yaml:"temperature" json:"temperature"`
	Seed        uint64        `yaml:"seed" json:"seed"`
}
