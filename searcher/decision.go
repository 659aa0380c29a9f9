package searcher

import (
	"math"
	"sync"

	"ringrush/game"
)

// decision is a tree node for a state with a player to move. Its rewards are
// totals from the point of view of mover, the player whose move led here, so
// a parent always picks the child with the highest value.
type decision struct {
	sync.RWMutex
	parent     *decision
	mover      game.Player
	player     game.Player
	hash       game.StateHash
	unexplored []game.Move
	explored   []game.Move
	children   []*decision
	rewards    float64
	visits     float64
}

func newDecision(parent *decision, state game.State) *decision {
	mover := game.NoPlayer
	if parent != nil {
		mover = parent.player
	}
	return &decision{
		parent:     parent,
		mover:      mover,
		player:     state.Player(),
		hash:       state.Hash(),
		unexplored: state.LegalMoves(),
	}
}

// SelectOrExpand descends one level. It adds a child for the next unexplored
// move, or picks the child with the highest UCT value once every move has
// been tried. Either way the child takes a virtual loss. A terminal node
// returns itself.
func (d *decision) SelectOrExpand(state game.State) (*decision, game.State, bool) {
	d.Lock()
	defer d.Unlock()

	if len(d.unexplored) == 0 && len(d.children) == 0 { // Terminal node
		return d, state, false
	}

	if len(d.unexplored) > 0 { // Expandable node
		move := d.unexplored[0]
		d.unexplored = d.unexplored[1:]
		next := state.Play(move)
		child := newDecision(d, next)
		d.explored = append(d.explored, move)
		d.children = append(d.children, child)
		child.applyLoss()
		return child, next, false
	}

	// Fully expanded node
	ith := d.pickChild()
	child := d.children[ith]
	child.applyLoss()
	return child, state.Play(d.explored[ith]), true
}

func (d *decision) pickChild() int {
	// A fresh root has no visits of its own until its first backup
	policy := newUCT(CSquared, math.Max(d.visits, 1))

	maxIndex := 0
	maxScore := math.Inf(-1)
	for i, child := range d.children {
		if score := child.score(policy); score > maxScore {
			maxScore = score
			maxIndex = i
		}
	}
	return maxIndex
}

func (d *decision) score(policy *uct) float64 {
	d.RLock()
	defer d.RUnlock()

	return policy.evaluate(d.rewards, d.visits)
}

func (d *decision) applyLoss() {
	d.Lock()
	defer d.Unlock()

	d.rewards += Loss
	d.visits++
}

func (d *decision) reverseLoss() {
	d.rewards -= Loss
	d.visits--
}

// Backup records one episode's rewards and returns the parent to continue
// with.
func (d *decision) Backup(rewards game.Rewards) *decision {
	d.Lock()
	defer d.Unlock()

	if d.parent != nil { // Non-root node
		d.reverseLoss()
		d.rewards += rewards[d.mover]
	}
	d.visits++

	return d.parent
}

func (d *decision) Visits() float64 {
	d.RLock()
	defer d.RUnlock()

	return d.visits
}

// Policy reports the visits of every explored move.
func (d *decision) Policy() Policy {
	d.RLock()
	defer d.RUnlock()

	policy := make(Policy, len(d.children))
	for i, child := range d.children {
		policy[d.explored[i]] = child.Visits()
	}
	return policy
}

// child returns the node reached by move, if it has been expanded.
func (d *decision) child(move game.Move) *decision {
	d.RLock()
	defer d.RUnlock()

	for i, m := range d.explored {
		if m == move {
			return d.children[i]
		}
	}
	return nil
}
