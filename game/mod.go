package game

// Move is anything a State can play. Both rule sets use small integer enums.
type Move interface {
	IsStochastic() bool
}

type StateHash uint64

// Rewards holds one terminal reward per seat, indexed by Player.
type Rewards [NumPlayers]float64

// State should be immutable - operations on State always return a new copy
type State interface {
	Player() Player
	LegalMoves() []Move
	Play(Move) State
	Hash() StateHash
	// Outcome returns per-seat rewards and whether the game is over.
	Outcome() (Rewards, bool)
}

// Evaluates the game state to a score between -1 and 1 indicating how
// favorable the current player's position is to a winning (positive) outcome.
type Evaluate func(State) float64
