package mines

import (
	"fmt"
	"hash/maphash"
	"log/slog"
	"math/rand/v2"
	"strings"
)

var Log *slog.Logger = slog.Default()

type Options struct {
	Rand   *rand.Rand
	Logger *slog.Logger

	// ShowMines places mines right away so that a renderer can display them
	// before the first click. Debugging aid only.
	ShowMines bool
}

func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

// Minefield is the board of a single game. Mines are placed lazily on the
// first accepted reveal, never under the revealed cell.
type Minefield struct {
	grid          [][]Cell
	width, height int
	mineCount     int

	over, won         bool
	firstClickPending bool
	started           bool

	opts Options
	rnd  *rand.Rand
	log  *slog.Logger
}

func ValidateParams(width, height, mineCount int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidParams, width, height)
	}
	if mineCount < 0 || mineCount >= width*height {
		return fmt.Errorf(
			"%w: %d mines do not fit a %dx%d grid", ErrInvalidParams, mineCount, width, height,
		)
	}
	return nil
}

func New(width, height, mineCount int, opts Options) (*Minefield, error) {
	if err := ValidateParams(width, height, mineCount); err != nil {
		return nil, err
	}
	if opts.Rand == nil {
		opts.Rand = NewRand()
	}
	if opts.Logger == nil {
		opts.Logger = Log
	}

	f := &Minefield{
		width:             width,
		height:            height,
		mineCount:         mineCount,
		firstClickPending: true,
		opts:              opts,
		rnd:               opts.Rand,
		log:               opts.Logger,
	}
	f.grid = newGrid(width, height)

	f.log.Debug("created minefield",
		slog.Int("width", width), slog.Int("height", height), slog.Int("mines", mineCount))

	if opts.ShowMines {
		x, y := f.rnd.IntN(width), f.rnd.IntN(height)
		f.log.Debug("show mines enabled, placing mines before first click",
			slog.Int("excludeX", x), slog.Int("excludeY", y))
		f.PlaceMines(x, y)
		f.firstClickPending = false
	}

	return f, nil
}

func newGrid(width, height int) [][]Cell {
	grid := make([][]Cell, height)
	for y := range grid {
		grid[y] = make([]Cell, width)
	}
	return grid
}

func (f *Minefield) Width() int { return f.width }
func (f *Minefield) Height() int { return f.height }
func (f *Minefield) MineCount() int { return f.mineCount }
func (f *Minefield) Over() bool { return f.over }
func (f *Minefield) Won() bool { return f.won }
func (f *Minefield) Started() bool { return f.started }
func (f *Minefield) FirstClickPending() bool { return f.firstClickPending }
func (f *Minefield) Options() Options { return f.opts }
func (f *Minefield) InBounds(x, y int) bool { return 0 <= x && x < f.width && 0 <= y && y < f.height }
func (f *Minefield) Cell(x, y int) (Cell, bool) {
	if !f.InBounds(x, y) {
		return Cell{}, false
	}
	return f.grid[y][x], true
}

// Cells returns a copy of the grid, indexed [y][x].
func (f *Minefield) Cells() [][]Cell {
	cells := make([][]Cell, f.height)
	for y, row := range f.grid {
		cells[y] = append([]Cell(nil), row...)
	}
	return cells
}

func (f *Minefield) FlagCount() (n int) {
	for _, row := range f.grid {
		for _, c := range row {
			if c.State == Flagged {
				n++
			}
		}
	}
	return
}

// MinesLeft is the mine counter shown to the player; it goes negative when
// more cells are flagged than there are mines.
func (f *Minefield) MinesLeft() int {
	return f.mineCount - f.FlagCount()
}

func (f *Minefield) around(x, y int, fn func(nx, ny int)) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if nx, ny := x+dx, y+dy; f.InBounds(nx, ny) {
				fn(nx, ny)
			}
		}
	}
}

func (f *Minefield) Start() {
	f.log.Debug("starting game")
	f.started = true
}

func (f *Minefield) Reset() {
	f.grid = newGrid(f.width, f.height)
	f.over = false
	f.won = false
	f.firstClickPending = true
	f.started = false
}

// PlaceMines scatters the mines uniformly over every cell except
// (excludeX, excludeY) and recomputes neighbour counts.
func (f *Minefield) PlaceMines(excludeX, excludeY int) {
	f.log.Debug("placing mines",
		slog.Int("mines", f.mineCount), slog.Int("excludeX", excludeX), slog.Int("excludeY", excludeY))

	for _, row := range f.grid {
		for x := range row {
			row[x].Content = Empty
		}
	}

	placed := 0
	for placed < f.mineCount {
		x, y := f.rnd.IntN(f.width), f.rnd.IntN(f.height)
		if (x == excludeX && y == excludeY) || f.grid[y][x].Content == Mine {
			continue
		}
		f.grid[y][x].Content = Mine
		placed++
	}

	f.computeNumbers()
}

func (f *Minefield) computeNumbers() {
	for y, row := range f.grid {
		for x := range row {
			if row[x].Content == Mine {
				continue
			}
			row[x].Content = Content(f.adjacentMines(x, y))
		}
	}
}

func (f *Minefield) adjacentMines(x, y int) (n int) {
	f.around(x, y, func(nx, ny int) {
		if f.grid[ny][nx].Content == Mine {
			n++
		}
	})
	return
}

// Reveal opens a hidden cell. Opening an empty cell cascades through its
// hidden neighbours. It reports whether the move was accepted.
func (f *Minefield) Reveal(x, y int) bool {
	if !f.InBounds(x, y) || !f.started || f.over {
		f.log.Debug("cannot reveal cell: out of bounds, not started or game over",
			slog.Int("x", x), slog.Int("y", y))
		return false
	}
	if f.grid[y][x].State != Hidden {
		f.log.Debug("cannot reveal cell: already revealed or flagged",
			slog.Int("x", x), slog.Int("y", y))
		return false
	}

	if f.firstClickPending {
		f.PlaceMines(x, y)
		f.firstClickPending = false
	}

	cell := &f.grid[y][x]
	cell.State = Revealed

	switch c := cell.Content; {
	case c == Mine:
		f.log.Debug("mine hit, game over", slog.Int("x", x), slog.Int("y", y))
		f.over = true
		f.revealMines()
		return true
	case c == Empty:
		f.cascade(x, y)
	case c.IsNumber():
	default:
		panic(AssertionError{fmt.Sprintf("invalid content %d at %d:%d", c, x, y)})
	}

	f.checkWon()
	return true
}

func (f *Minefield) cascade(x, y int) {
	type point struct{ x, y int }

	var todo []point
	push := func(nx, ny int) {
		if f.grid[ny][nx].State == Hidden {
			todo = append(todo, point{nx, ny})
		}
	}
	f.around(x, y, push)

	for len(todo) > 0 {
		p := todo[len(todo)-1]
		todo = todo[:len(todo)-1]

		cell := &f.grid[p.y][p.x]
		if cell.State != Hidden {
			continue // queued twice
		}
		cell.State = Revealed
		if cell.Content == Empty {
			f.around(p.x, p.y, push)
		}
	}
}

func (f *Minefield) revealMines() {
	for _, row := range f.grid {
		for x := range row {
			if row[x].Content == Mine {
				row[x].State = Revealed
			}
		}
	}
}

func (f *Minefield) checkWon() {
	for _, row := range f.grid {
		for _, c := range row {
			if c.State == Hidden && c.Content != Mine {
				return
			}
		}
	}
	f.log.Debug("all safe cells revealed, game won")
	f.won = true
	f.over = true
}

func (f *Minefield) ToggleFlag(x, y int) bool {
	if !f.InBounds(x, y) || f.over || !f.started {
		return false
	}
	cell := &f.grid[y][x]
	switch cell.State {
	case Hidden:
		cell.State = Flagged
	case Flagged:
		cell.State = Hidden
	default:
		return false
	}
	return true
}

// String renders the board as the player sees it: '-' hidden, 'F' flagged,
// and the content of revealed cells.
func (f *Minefield) String() string {
	return f.Format(false)
}

// Format is like String, but with showMines hidden mines are drawn as '*'.
func (f *Minefield) Format(showMines bool) string {
	var b strings.Builder
	for _, row := range f.grid {
		for x, c := range row {
			if x > 0 {
				b.WriteByte(' ')
			}
			switch {
			case c.State == Revealed:
				b.WriteString(c.Content.String())
			case c.State == Flagged:
				b.WriteByte('F')
			case showMines && c.Content == Mine:
				b.WriteByte('*')
			default:
				b.WriteByte('-')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
