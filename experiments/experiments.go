package experiments

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"ringrush/engine"
	"ringrush/experiments/metrics"
	"ringrush/game"
	"ringrush/game/field"
	"ringrush/searcher"
	"ringrush/searcher/agent"
)

const (
	NumGames   = 30 // Per match up
	TimeBudget = 10 * time.Millisecond
)

const (
	VariantCore  = "core"
	VariantField = "field"
)

// Plan describes an experiment: the agents taking part and which of them
// meet, NumGames times per matchup.
type Plan struct {
	Name     string                `yaml:"name" json:"name"`
	Games    int                   `yaml:"games" json:"games"`
	Variant  string                `yaml:"variant" json:"variant"`
	Seed     uint64                `yaml:"seed" json:"seed"`
	Agents   []metrics.AgentConfig `yaml:"agents" json:"agents"`
	MatchUps [][]int               `yaml:"matchups" json:"matchups"` // Pairs of agent IDs
}

func (p Plan) Validate() error {
	if p.Name == "" {
		return errors.New("plan validation: name is required")
	}
	if p.Games <= 0 {
		return fmt.Errorf("plan validation: games must be positive, got %d", p.Games)
	}
	if p.Variant != VariantCore && p.Variant != VariantField {
		return fmt.Errorf("plan validation: unknown variant %q", p.Variant)
	}
	ids := map[int]bool{}
	for _, config := range p.Agents {
		if ids[config.ID] {
			return fmt.Errorf("plan validation: duplicate agent id %d", config.ID)
		}
		ids[config.ID] = true
		if _, err := NewAgent(config, p.Variant); err != nil {
			return fmt.Errorf("plan validation: agent %d: %w", config.ID, err)
		}
	}
	if len(p.MatchUps) == 0 {
		return errors.New("plan validation: at least one matchup is required")
	}
	for i, matchup := range p.MatchUps {
		if len(matchup) != 2 {
			return fmt.Errorf("plan validation: matchup %d needs two agents, got %d", i+1, len(matchup))
		}
		for _, id := range matchup {
			if !ids[id] {
				return fmt.Errorf("plan validation: matchup %d references unknown agent %d", i+1, id)
			}
		}
	}
	return nil
}

func (p Plan) agent(id int) metrics.AgentConfig {
	for _, config := range p.Agents {
		if config.ID == id {
			return config
		}
	}
	panic(fmt.Sprintf("no agent with id %d", id))
}

type Setup struct {
	Plan      Plan          `json:"plan"`
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`
}

// Run plays every matchup of the plan and stores the records under
// <dir>/<plan name>/<timestamp>. Seats alternate between games of a matchup.
func Run(plan Plan, dir string) ([]metrics.GameRecord, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	writer, err := metrics.NewWriter(dir, plan.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(plan.Agents); err != nil {
		return nil, fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	setup := Setup{Plan: plan, StartTime: time.Now()}
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", plan.Name)

	for mi, matchup := range plan.MatchUps {
		config1, config2 := plan.agent(matchup[0]), plan.agent(matchup[1])

		log.Info().Msgf("starting matchup %d of %d between agent%d and agent%d...", mi+1, len(plan.MatchUps), config1.ID, config2.ID)

		for i := 0; i < plan.Games; i++ {
			red, blue := config1, config2
			if i%2 == 1 {
				red, blue = blue, red
			}
			count++
			result, gameMetric, moveMetrics, err := runGame(red, blue, plan.Variant, plan.Seed+uint64(count))
			if err != nil {
				return nil, err
			}

			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				AgentRed:   red.ID,
				AgentBlue:  blue.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d of %d with winner %s, scores %v", mi+1, len(plan.MatchUps), i+1, plan.Games, result.Winner, result.Scores)
		}
		log.Info().Msgf("completed matchup %d of %d", mi+1, len(plan.MatchUps))
	}

	log.Info().Msgf("completed %s experiment", plan.Name)

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return nil, fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return nil, fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	setup.EndTime = time.Now()
	setup.Duration = setup.EndTime.Sub(setup.StartTime)
	if err := writer.WriteSetup(setup); err != nil {
		return nil, err
	}
	log.Info().Msgf("results stored in %s", writer.Dir())

	return gameRecords, nil
}

// runGame executes a single game between two agents
func runGame(red, blue metrics.AgentConfig, variant string, seed uint64) (engine.Result, metrics.GameMetric, []metrics.MoveMetric, error) {
	var agents [game.NumPlayers]agent.Agent
	for p, config := range []metrics.AgentConfig{red, blue} {
		a, err := NewAgent(config, variant)
		if err != nil {
			return engine.Result{}, metrics.GameMetric{}, nil, err
		}
		agents[p] = a
	}

	e := engine.NewLocalEngine(NewState(variant, seed), agents)
	result, gameMetric, moveMetrics := e.Run()
	return result, gameMetric, moveMetrics, nil
}

// NewState starts a game of the given variant. The core game's seed picks
// the starting player; the field always starts with red.
func NewState(variant string, seed uint64) game.State {
	if variant == VariantField {
		return field.New()
	}
	state, _ := game.Init(seed)
	return state
}

// NewAgent builds the agent a config describes for the given variant.
func NewAgent(config metrics.AgentConfig, variant string) (agent.Agent, error) {
	switch config.Kind {
	case "", metrics.KindMCTS:
		mcts, err := createMCTS(config, variant)
		if err != nil {
			return nil, err
		}
		return agent.NewEvaluationAgent(mcts), nil
	case metrics.KindTraining:
		mcts, err := createMCTS(config, variant)
		if err != nil {
			return nil, err
		}
		return agent.NewTrainingAgent(mcts, config.Temperature, config.Seed), nil
	case metrics.KindGreedy:
		return greedyAgent(variant), nil
	case metrics.KindRandom:
		return agent.NewRandomAgent(config.Seed), nil
	default:
		return nil, fmt.Errorf("unknown agent kind %q", config.Kind)
	}
}

func greedyAgent(variant string) agent.Agent {
	if variant == VariantField {
		return agent.NewFieldGreedyAgent()
	}
	return agent.NewGreedyAgent()
}

func createMCTS(config metrics.AgentConfig, variant string) (*searcher.MCTS, error) {
	if config.Episodes <= 0 && config.Duration <= 0 {
		return nil, errors.New("search needs episodes or a duration")
	}
	options := []searcher.Option{}

	if config.Episodes > 0 {
		options = append(options, searcher.WithEpisodes(config.Episodes))
	}
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if config.Cutoff > 0 {
		options = append(options, searcher.WithCutoff(config.Cutoff))
	}
	if config.Seed > 0 {
		options = append(options, searcher.WithSeed(config.Seed))
	}

	switch {
	case variant == VariantField && config.Evaluation == "potential":
		return nil, errors.New("potential evaluation only applies to the core variant")
	case variant == VariantField:
		options = append(options, searcher.WithEvaluationFn(field.EvaluateScore))
	case config.Evaluation == "potential":
		options = append(options, searcher.WithEvaluationFn(game.EvaluatePotential))
	case config.Evaluation != "" && config.Evaluation != "score":
		return nil, fmt.Errorf("unknown evaluation %q", config.Evaluation)
	}

	switch config.Rollout {
	case "", "uniform":
	case "greedy":
		options = append(options,
			searcher.WithRolloutPolicy(agent.GreedyRollout(greedyAgent(variant))),
			searcher.WithRolloutCache(),
		)
	default:
		return nil, fmt.Errorf("unknown rollout %q", config.Rollout)
	}

	options = append(options, searcher.WithMetrics())
	return searcher.NewMCTS(config.Goroutines, options...), nil
}
