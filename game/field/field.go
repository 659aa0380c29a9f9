// Package field implements the extended rule set: tippable mobile goals, wall
// stakes and robots that carry up to two rings of either color.
package field

import (
	"encoding/binary"
	"hash/fnv"

	"ringrush/game"
)

const (
	Rows = game.Rows
	Cols = game.Cols

	NumGoals  = 3
	NumStakes = 2
	NumRobots = game.NumPlayers

	MaxGoalRings  = StackCapacity
	MaxStakeRings = StackCapacity
	MaxRobotRings = 2

	// Rounds is the starting clock. One round is a red ply then a blue ply.
	Rounds = 30
)

// NoGoal marks a robot without a mobile goal.
const NoGoal = -1

type MobileGoal struct {
	Position  game.Cell
	Placement game.Placement
	Tipped    bool
	Rings     Stack
}

func (g MobileGoal) IsFree() bool {
	return g.Placement == game.Free
}

type WallStake struct {
	Position game.Cell
	Rings    Stack
}

type Robot struct {
	Position game.Cell
	Red      bool
	Goal     int
	Rings    Stack
}

// Field is a comparable value; assigning it copies the whole game.
type Field struct {
	Goals         [NumGoals]MobileGoal
	Stakes        [NumStakes]WallStake
	Supply        game.RingSupply
	Robots        [NumRobots]Robot
	TimeRemaining int
	ToMove        game.Player
}

// New returns the starting field with red to move.
func New() Field {
	f := Field{
		Supply:        game.RingSupply{game.InitialRings, game.InitialRings},
		TimeRemaining: Rounds,
		ToMove:        game.Red,
	}
	for i := range f.Goals {
		f.Goals[i] = MobileGoal{Position: game.Cell{Row: i + 1, Col: 2}, Placement: game.Free}
	}
	f.Stakes[0].Position = game.Cell{Row: 0, Col: 2}
	f.Stakes[1].Position = game.Cell{Row: Rows - 1, Col: 2}
	f.Robots[game.Red] = Robot{Position: game.Cell{Row: 2, Col: 0}, Red: true, Goal: NoGoal}
	f.Robots[game.Blue] = Robot{Position: game.Cell{Row: 2, Col: Cols - 1}, Goal: NoGoal}
	return f
}

// freeGoalAt returns the mobile goal resting on c, if any.
func (f Field) freeGoalAt(c game.Cell) (int, bool) {
	for i, g := range f.Goals {
		if g.IsFree() && g.Position == c {
			return i, true
		}
	}
	return NoGoal, false
}

func (f Field) stakeAt(c game.Cell) (int, bool) {
	for i, s := range f.Stakes {
		if s.Position == c {
			return i, true
		}
	}
	return 0, false
}

// open reports whether a robot may drive onto c.
func (f Field) open(c game.Cell) bool {
	if !c.InBounds() {
		return false
	}
	for _, r := range f.Robots {
		if r.Position == c {
			return false
		}
	}
	return true
}

func (f Field) Hash() game.StateHash {
	hasher := fnv.New64a()

	write := func(v int) {
		binary.Write(hasher, binary.LittleEndian, int64(v))
	}
	writeStack := func(s Stack) {
		write(s.Len())
		for _, r := range s.rings[:s.n] {
			write(int(r))
		}
	}
	boolean := func(b bool) int {
		if b {
			return 1
		}
		return 0
	}

	write(int(f.ToMove))
	write(f.TimeRemaining)
	for _, g := range f.Goals {
		write(g.Position.Index())
		write(int(g.Placement))
		write(boolean(g.Tipped))
		writeStack(g.Rings)
	}
	for _, s := range f.Stakes {
		writeStack(s.Rings)
	}
	for _, supply := range f.Supply {
		for _, count := range supply {
			write(count)
		}
	}
	for _, r := range f.Robots {
		write(r.Position.Index())
		write(r.Goal)
		writeStack(r.Rings)
	}

	return game.StateHash(hasher.Sum64())
}
