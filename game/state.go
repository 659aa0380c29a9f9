package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"

	"golang.org/x/exp/rand"
)

// MaxSteps is the number of plies in a game, 30 per player.
const MaxSteps = 60

// RingSupply holds, per color, the rings still lying on each cell.
type RingSupply [NumPlayers][Cells]int

// GameState is a plain value: assigning it copies the whole game.
type GameState struct {
	CurrentPlayer Player                  `json:"current_player"`
	Players       [NumPlayers]PlayerState `json:"players"`
	Supply        RingSupply              `json:"supply"`
	Goals         [NumGoals]Goal          `json:"goals"`
	StepCount     int                     `json:"step_count"`
}

// Metadata accompanies every state produced by Init and Step.
type Metadata struct {
	Rewards       Rewards    `json:"rewards"`
	ActionMask    ActionMask `json:"action_mask"`
	Terminated    bool       `json:"terminated"`
	CurrentPlayer Player     `json:"current_player"`
	StepCount     int        `json:"step_count"`
}

// Init sets up a new game. The seed only decides who moves first.
func Init(seed uint64) (GameState, Metadata) {
	rng := rand.New(rand.NewSource(seed))

	s := GameState{
		CurrentPlayer: Player(rng.Intn(NumPlayers)),
		Players: [NumPlayers]PlayerState{
			{Position: Cell{Row: 2, Col: 0}},
			{Position: Cell{Row: 2, Col: 4}},
		},
		Supply: RingSupply{InitialRings, InitialRings},
		Goals:  initialGoals,
	}
	return s, s.Metadata()
}

// Metadata computes rewards, termination and the mask for the player to move.
func (s GameState) Metadata() Metadata {
	rewards, terminated := s.Outcome()
	return Metadata{
		Rewards:       rewards,
		ActionMask:    LegalActions(s),
		Terminated:    terminated,
		CurrentPlayer: s.CurrentPlayer,
		StepCount:     s.StepCount,
	}
}

func (s GameState) Terminated() bool {
	return s.StepCount >= MaxSteps
}

// CarriedGoal returns the goal held by p, if any.
func (s GameState) CarriedGoal(p Player) (GoalID, bool) {
	for i, g := range s.Goals {
		if g.HeldBy(p) {
			return GoalID(i), true
		}
	}
	return 0, false
}

// FreeGoalAt returns the goal resting unheld on c, if any.
func (s GameState) FreeGoalAt(c Cell) (GoalID, bool) {
	for i, g := range s.Goals {
		if g.IsFree() && g.Position == c {
			return GoalID(i), true
		}
	}
	return 0, false
}

// OccupancyGrid marks the cells holding a free goal.
func (s GameState) OccupancyGrid() [Rows][Cols]bool {
	var grid [Rows][Cols]bool
	for _, g := range s.Goals {
		if g.IsFree() {
			grid[g.Position.Row][g.Position.Col] = true
		}
	}
	return grid
}

func (s GameState) Player() Player {
	return s.CurrentPlayer
}

// LegalMoves is empty once the game is over so searches stop there.
func (s GameState) LegalMoves() []Move {
	if s.Terminated() {
		return nil
	}
	actions := LegalActions(s).Actions()
	moves := make([]Move, len(actions))
	for i, a := range actions {
		moves[i] = a
	}
	return moves
}

func (s GameState) Play(move Move) State {
	action, ok := move.(Action)
	if !ok {
		panic(fmt.Sprintf("unexpected move type %T", move))
	}
	next, _, err := Step(s, action)
	if err != nil {
		panic(fmt.Sprintf("cannot play %s: %v", action, err))
	}
	return next
}

func (s GameState) Hash() StateHash {
	hasher := fnv.New64a()

	write := func(v int) {
		binary.Write(hasher, binary.LittleEndian, int64(v))
	}

	write(int(s.CurrentPlayer))
	write(s.StepCount)

	for _, p := range s.Players {
		write(p.Position.Index())
		write(p.CarriedRings)
	}

	for _, supply := range s.Supply {
		for _, count := range supply {
			write(count)
		}
	}

	for _, g := range s.Goals {
		write(g.Position.Index())
		write(int(g.Placement))
		write(int(g.Carrier))
		write(g.Rings[Red])
		write(g.Rings[Blue])
		write(int(g.Top))
	}

	return StateHash(hasher.Sum64())
}

func (s GameState) Outcome() (Rewards, bool) {
	return TerminalRewards(s)
}
