package mines

import "strconv"

type CellState uint8

const (
	Hidden CellState = iota
	Revealed
	Flagged
)

func (s CellState) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case Revealed:
		return "revealed"
	case Flagged:
		return "flagged"
	default:
		return "CellState(" + strconv.Itoa(int(s)) + ")"
	}
}

// Content is what lies under a cell:
//
//   - -1 is a mine.
//   - 0 is an empty cell with no mined neighbours.
//   - 1 to 8 is the number of mined neighbours.
type Content int8

const (
	Mine  Content = -1
	Empty Content = 0
)

func Number(n int) Content {
	if n < 1 || n > 8 {
		panic(AssertionError{"number content out of range: " + strconv.Itoa(n)})
	}
	return Content(n)
}

func (c Content) IsMine() bool { return c == Mine }
func (c Content) IsNumber() bool { return 1 <= c && c <= 8 }

// Count returns the number of mined neighbours, 0 for empty cells and mines.
func (c Content) Count() int {
	if c.IsNumber() {
		return int(c)
	}
	return 0
}

func (c Content) String() string {
	switch {
	case c == Mine:
		return "*"
	case c == Empty:
		return "."
	case c.IsNumber():
		return strconv.Itoa(int(c))
	default:
		return "!"
	}
}

type Cell struct {
	State   CellState
	Content Content
}
