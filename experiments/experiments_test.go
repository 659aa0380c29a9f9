package experiments

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"ringrush/experiments/metrics"
)

func TestValidate(t *testing.T) {
	valid := Plan{
		Name:     "smoke",
		Games:    1,
		Variant:  VariantCore,
		Agents:   []metrics.AgentConfig{{ID: 1, Kind: metrics.KindGreedy}, {ID: 2, Kind: metrics.KindRandom}},
		MatchUps: [][]int{{1, 2}},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		modify func(p *Plan)
	}{
		{"missing name", func(p *Plan) { p.Name = "" }},
		{"no games", func(p *Plan) { p.Games = 0 }},
		{"unknown variant", func(p *Plan) { p.Variant = "hex" }},
		{"duplicate agent", func(p *Plan) { p.Agents[1].ID = 1 }},
		{"unknown kind", func(p *Plan) { p.Agents[0].Kind = "oracle" }},
		{"search without budget", func(p *Plan) { p.Agents[0].Kind = metrics.KindMCTS }},
		{"potential on the field", func(p *Plan) {
			p.Variant = VariantField
			p.Agents[0] = metrics.AgentConfig{ID: 1, Episodes: 10, Evaluation: "potential"}
		}},
		{"short matchup", func(p *Plan) { p.MatchUps = [][]int{{1}} }},
		{"unknown agent in matchup", func(p *Plan) { p.MatchUps = [][]int{{1, 3}} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := valid
			plan.Agents = append([]metrics.AgentConfig{}, valid.Agents...)
			tt.modify(&plan)
			require.Error(t, plan.Validate())
		})
	}
}

func TestBuiltinPlans(t *testing.T) {
	for _, name := range []string{"throughput", "parallelization", "cutoff"} {
		t.Run(name, func(t *testing.T) {
			plan, ok := Builtin(name)
			require.True(t, ok)
			require.Equal(t, name, plan.Name)
			require.NoError(t, plan.Validate())
		})
	}
	_, ok := Builtin("unknown")
	require.False(t, ok)
}

func TestRun(t *testing.T) {
	t.Run("alternates seats and writes records", func(t *testing.T) {
		dir := t.TempDir()
		plan := Plan{
			Name:    "smoke",
			Games:   2,
			Variant: VariantCore,
			Seed:    7,
			Agents: []metrics.AgentConfig{
				{ID: 1, Kind: metrics.KindGreedy},
				{ID: 2, Kind: metrics.KindRandom, Seed: 3},
			},
			MatchUps: [][]int{{1, 2}},
		}

		records, err := Run(plan, dir)
		require.NoError(t, err)
		require.Len(t, records, 2)
		require.Equal(t, 1, records[0].AgentRed)
		require.Equal(t, 2, records[0].AgentBlue)
		require.Equal(t, 2, records[1].AgentRed, "Seats should swap every game")
		require.Equal(t, 1, records[1].AgentBlue)
		for _, r := range records {
			require.Equal(t, 60, r.TotalMoves)
		}

		runs, err := os.ReadDir(filepath.Join(dir, "smoke"))
		require.NoError(t, err)
		require.Len(t, runs, 1)
		for _, file := range []string{"agent_configs.csv", "game_records.csv", "move_records.csv", "setup.json"} {
			require.FileExists(t, filepath.Join(dir, "smoke", runs[0].Name(), file))
		}
	})

	t.Run("searches on the field", func(t *testing.T) {
		plan := Plan{
			Name:    "field",
			Games:   1,
			Variant: VariantField,
			Agents: []metrics.AgentConfig{
				{ID: 1, Goroutines: 2, Episodes: 20, Rollout: "greedy"},
				{ID: 2, Kind: metrics.KindGreedy},
			},
			MatchUps: [][]int{{1, 2}},
		}

		records, err := Run(plan, t.TempDir())
		require.NoError(t, err)
		require.Len(t, records, 1)
		require.Equal(t, 60, records[0].TotalMoves)
	})

	t.Run("rejects an invalid plan", func(t *testing.T) {
		_, err := Run(Plan{Name: "empty"}, t.TempDir())
		require.Error(t, err)
	})
}
