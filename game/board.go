package game

const (
	Rows  = 5
	Cols  = 5
	Cells = Rows * Cols
)

// Cell addresses a square of the board by row and column.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Cell) Index() int {
	return c.Row*Cols + c.Col
}

func (c Cell) InBounds() bool {
	return c.Row >= 0 && c.Row < Rows && c.Col >= 0 && c.Col < Cols
}

// Offset returns the neighbouring cell in direction d without clamping.
func (c Cell) Offset(d Direction) Cell {
	return Cell{Row: c.Row + d.DRow, Col: c.Col + d.DCol}
}

// Clamp pulls the cell back onto the board.
func (c Cell) Clamp() Cell {
	return Cell{Row: clamp(c.Row, 0, Rows-1), Col: clamp(c.Col, 0, Cols-1)}
}

// CellAt is the inverse of Index.
func CellAt(index int) Cell {
	return Cell{Row: index / Cols, Col: index % Cols}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

type Direction struct {
	DRow int
	DCol int
}

var (
	North = Direction{DRow: -1}
	South = Direction{DRow: 1}
	East  = Direction{DCol: 1}
	West  = Direction{DCol: -1}
)

// Directions is ordered like the move actions of both rule sets.
var Directions = [4]Direction{North, South, East, West}

// InitialRings is the ring layout of each color at the start of a game.
var InitialRings = [Cells]int{
	2, 0, 1, 0, 2,
	0, 1, 0, 1, 0,
	0, 1, 0, 1, 0,
	0, 1, 0, 1, 0,
	2, 0, 1, 0, 2,
}

// ShortestPath runs a breadth-first search from begin over cells accepted by
// passable. It returns the first target reached and the directions leading
// there. When no target is reachable it returns begin and no directions.
// Neighbours are expanded in North, South, East, West order.
func ShortestPath(begin Cell, targets map[Cell]bool, passable func(Cell) bool) (Cell, []Direction) {
	type entry struct {
		cell Cell
		path []Direction
	}

	explored := map[Cell]bool{begin: true}
	queue := []entry{{cell: begin}}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		if targets[v.cell] {
			return v.cell, v.path
		}
		for _, d := range Directions {
			next := v.cell.Offset(d)
			if !next.InBounds() || explored[next] || !passable(next) {
				continue
			}
			path := make([]Direction, len(v.path), len(v.path)+1)
			copy(path, v.path)
			explored[next] = true
			queue = append(queue, entry{cell: next, path: append(path, d)})
		}
	}
	return begin, nil
}
