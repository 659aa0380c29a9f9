package game

// MaxCarriedRings caps how many rings one carried goal can take.
const MaxCarriedRings = 6

func (s *GameState) move(d Direction) {
	me := &s.Players[s.CurrentPlayer]
	target := me.Position.Offset(d).Clamp()
	if target == s.Players[s.CurrentPlayer.Opponent()].Position {
		return // bump
	}
	me.Position = target
	if id, ok := s.CarriedGoal(s.CurrentPlayer); ok {
		s.Goals[id].Position = target
	}
}

func (s *GameState) grabGoal() {
	id, ok := s.FreeGoalAt(s.Players[s.CurrentPlayer].Position)
	if !ok {
		return
	}
	g := &s.Goals[id]
	g.Placement = Held
	g.Carrier = s.CurrentPlayer
}

// pickUpRing scores the ring straight onto the carried goal.
func (s *GameState) pickUpRing() {
	id, ok := s.CarriedGoal(s.CurrentPlayer)
	if !ok {
		return
	}
	me := &s.Players[s.CurrentPlayer]
	cell := me.Position.Index()
	if s.Supply[s.CurrentPlayer][cell] == 0 || me.CarriedRings >= MaxCarriedRings {
		return
	}

	s.Supply[s.CurrentPlayer][cell]--
	me.CarriedRings++
	g := &s.Goals[id]
	g.Rings[s.CurrentPlayer]++
	g.Top = OwnerOf(s.CurrentPlayer)
}

func (s *GameState) releaseGoal() {
	id, ok := s.CarriedGoal(s.CurrentPlayer)
	if !ok {
		return
	}
	me := &s.Players[s.CurrentPlayer]
	if _, occupied := s.FreeGoalAt(me.Position); occupied {
		return
	}
	g := &s.Goals[id]
	g.Placement = Free
	g.Carrier = NoPlayer
	g.Position = me.Position
	me.CarriedRings = 0
}

func (s *GameState) apply(a Action) {
	switch a {
	case MoveNorth, MoveSouth, MoveEast, MoveWest:
		d, _ := a.Direction()
		s.move(d)
	case GrabGoal:
		s.grabGoal()
	case PickUpRing:
		s.pickUpRing()
	case ReleaseGoal:
		s.releaseGoal()
	}
}
