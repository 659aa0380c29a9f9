package field

import (
	"fmt"
	"strings"

	"ringrush/game"
)

// Ring is the color of a single ring.
type Ring int8

const (
	RedRing Ring = iota
	BlueRing
)

func RingOf(p game.Player) Ring {
	if p == game.Red {
		return RedRing
	}
	return BlueRing
}

func (r Ring) Player() game.Player {
	if r == RedRing {
		return game.Red
	}
	return game.Blue
}

func (r Ring) String() string {
	if r == RedRing {
		return "r"
	}
	return "b"
}

const StackCapacity = 6

// Stack holds up to StackCapacity rings, open at both ends. Index 0 is the
// front; the back is the top ring of a goal or stake.
type Stack struct {
	rings [StackCapacity]Ring
	n     int8
}

// StackOf builds a stack front to back.
func StackOf(rings ...Ring) Stack {
	var s Stack
	for _, r := range rings {
		s.PushBack(r)
	}
	return s
}

// ParseStack reads a string of 'r' and 'b', front first.
func ParseStack(text string) (Stack, error) {
	var s Stack
	if len(text) > StackCapacity {
		return s, fmt.Errorf("stack %q holds more than %d rings", text, StackCapacity)
	}
	for _, ch := range text {
		switch ch {
		case 'r':
			s.PushBack(RedRing)
		case 'b':
			s.PushBack(BlueRing)
		default:
			return Stack{}, fmt.Errorf("unknown ring %q in %q", ch, text)
		}
	}
	return s, nil
}

func (s Stack) Len() int {
	return int(s.n)
}

func (s Stack) Empty() bool {
	return s.n == 0
}

func (s Stack) Front() Ring {
	s.mustHaveRings()
	return s.rings[0]
}

func (s Stack) Back() Ring {
	s.mustHaveRings()
	return s.rings[s.n-1]
}

// Count returns how many rings of color r the stack holds.
func (s Stack) Count(r Ring) int {
	count := 0
	for _, ring := range s.rings[:s.n] {
		if ring == r {
			count++
		}
	}
	return count
}

func (s *Stack) PushBack(r Ring) {
	s.mustHaveRoom()
	s.rings[s.n] = r
	s.n++
}

func (s *Stack) PushFront(r Ring) {
	s.mustHaveRoom()
	copy(s.rings[1:s.n+1], s.rings[:s.n])
	s.rings[0] = r
	s.n++
}

func (s *Stack) PopBack() Ring {
	r := s.Back()
	s.n--
	s.rings[s.n] = 0
	return r
}

func (s *Stack) PopFront() Ring {
	r := s.Front()
	copy(s.rings[:s.n-1], s.rings[1:s.n])
	s.n--
	s.rings[s.n] = 0
	return r
}

func (s Stack) String() string {
	var b strings.Builder
	for _, r := range s.rings[:s.n] {
		b.WriteString(r.String())
	}
	return b.String()
}

func (s Stack) mustHaveRings() {
	if s.n == 0 {
		panic("empty ring stack")
	}
}

func (s Stack) mustHaveRoom() {
	if int(s.n) == StackCapacity {
		panic("full ring stack")
	}
}
