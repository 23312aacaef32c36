package mines

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded() Options {
	return Options{Rand: rand.New(rand.NewPCG(1, 2))}
}

// fieldWithMines returns a started board with mines at the given points and
// the first click already consumed.
func fieldWithMines(t *testing.T, width, height int, mines ...[2]int) *Minefield {
	t.Helper()
	f, err := New(width, height, len(mines), seeded())
	require.NoError(t, err)
	for _, m := range mines {
		f.grid[m[1]][m[0]].Content = Mine
	}
	f.computeNumbers()
	f.firstClickPending = false
	f.Start()
	return f
}

func countMines(f *Minefield) (n int) {
	for _, row := range f.grid {
		for _, c := range row {
			if c.Content == Mine {
				n++
			}
		}
	}
	return
}

func TestNew(t *testing.T) {
	tests := []struct {
		width, height, mines int
	}{
		{1, 1, 0},
		{9, 9, 10},
		{16, 16, 40},
		{30, 16, 99},
		{10, 8, 79},
	}

	for _, test := range tests {
		name := fmt.Sprintf("%dx%d(%d)", test.width, test.height, test.mines)
		t.Run(name, func(t *testing.T) {
			f, err := New(test.width, test.height, test.mines, seeded())
			require.NoError(t, err)

			assert.Equal(t, test.width, f.Width())
			assert.Equal(t, test.height, f.Height())
			assert.Equal(t, test.mines, f.MineCount())
			assert.False(t, f.Over())
			assert.False(t, f.Won())
			assert.False(t, f.Started())
			assert.True(t, f.FirstClickPending())

			cells := f.Cells()
			require.Len(t, cells, test.height)
			for _, row := range cells {
				require.Len(t, row, test.width)
				for _, c := range row {
					assert.Equal(t, Cell{State: Hidden, Content: Empty}, c)
				}
			}
			assert.Zero(t, countMines(f))
		})
	}
}

func TestNewInvalidParams(t *testing.T) {
	tests := []struct {
		width, height, mines int
	}{
		{0, 5, 0},
		{5, -1, 0},
		{3, 3, 9},
		{3, 3, 10},
		{3, 3, -1},
	}

	for _, test := range tests {
		_, err := New(test.width, test.height, test.mines, seeded())
		assert.ErrorIs(t, err, ErrInvalidParams, "%+v", test)
	}
}

func TestPlaceMinesExcludesCell(t *testing.T) {
	f, err := New(5, 4, 19, seeded())
	require.NoError(t, err)

	for ey := range f.Height() {
		for ex := range f.Width() {
			f.PlaceMines(ex, ey)
			assert.Equal(t, 19, countMines(f))
			assert.NotEqual(t, Mine, f.grid[ey][ex].Content, "excluded %d:%d", ex, ey)
		}
	}
}

func TestPlaceMinesNumbers(t *testing.T) {
	f, err := New(16, 16, 40, seeded())
	require.NoError(t, err)
	f.PlaceMines(3, 3)

	for y := range f.Height() {
		for x := range f.Width() {
			c := f.grid[y][x].Content
			if c == Mine {
				continue
			}
			assert.Equal(t, f.adjacentMines(x, y), c.Count(), "cell %d:%d", x, y)
		}
	}
}

func TestNumbersSingleMine(t *testing.T) {
	f := fieldWithMines(t, 3, 3, [2]int{1, 1})

	for y := range 3 {
		for x := range 3 {
			if x == 1 && y == 1 {
				assert.Equal(t, Mine, f.grid[y][x].Content)
				continue
			}
			assert.Equal(t, Number(1), f.grid[y][x].Content, "cell %d:%d", x, y)
		}
	}
}

func TestNumbersCornerMine(t *testing.T) {
	f := fieldWithMines(t, 3, 3, [2]int{0, 0})

	assert.Equal(t, Number(1), f.grid[1][0].Content)
	assert.Equal(t, Number(1), f.grid[0][1].Content)
	assert.Equal(t, Number(1), f.grid[1][1].Content)
	for _, p := range [][2]int{{2, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}} {
		assert.Equal(t, Empty, f.grid[p[1]][p[0]].Content, "cell %v", p)
	}
}

func TestNumbersTwoMines(t *testing.T) {
	f := fieldWithMines(t, 3, 3, [2]int{0, 0}, [2]int{1, 1})

	assert.Equal(t, Number(1), f.grid[2][2].Content)
	assert.Equal(t, Number(2), f.grid[1][0].Content)
	assert.Equal(t, Number(2), f.grid[0][1].Content)
}

func TestRevealCascade(t *testing.T) {
	f := fieldWithMines(t, 3, 3, [2]int{2, 2})

	require.True(t, f.Reveal(0, 0))

	for y := range 3 {
		for x := range 3 {
			want := Revealed
			if x == 2 && y == 2 {
				want = Hidden
			}
			assert.Equal(t, want, f.grid[y][x].State, "cell %d:%d", x, y)
		}
	}
	assert.True(t, f.Won())
	assert.True(t, f.Over())
}

func TestRevealCascadeSkipsFlags(t *testing.T) {
	f := fieldWithMines(t, 5, 5, [2]int{4, 4}, [2]int{4, 0})
	require.True(t, f.ToggleFlag(0, 4))

	require.True(t, f.Reveal(0, 0))

	assert.Equal(t, Flagged, f.grid[4][0].State)
	assert.Equal(t, Revealed, f.grid[3][0].State)
	assert.Equal(t, Hidden, f.grid[4][4].State)
	assert.Equal(t, Hidden, f.grid[0][4].State)
}

func TestRevealFirstClick(t *testing.T) {
	f, err := New(3, 3, 8, seeded())
	require.NoError(t, err)
	f.Start()

	require.True(t, f.Reveal(1, 1))

	assert.False(t, f.FirstClickPending())
	assert.Equal(t, 8, countMines(f))
	assert.Equal(t, Cell{State: Revealed, Content: Number(8)}, f.grid[1][1])
	assert.True(t, f.Won())
}

func TestRevealFirstClickIsNeverAMine(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	for seed := range uint64(200) {
		f, err := New(9, 9, 70, Options{Rand: rand.New(rand.NewPCG(seed, seed))})
		require.NoError(t, err)
		f.Start()
		x, y := int(seed%9), int(seed/9%9)
		require.True(t, f.Reveal(x, y))
		assert.False(t, f.Over() && !f.Won(), "seed %d lost on first click", seed)
	}
}

func TestRevealRejects(t *testing.T) {
	t.Run("out of bounds", func(t *testing.T) {
		f := fieldWithMines(t, 3, 3, [2]int{1, 1})
		before := f.Cells()
		for _, p := range [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 3}, {5, 5}} {
			assert.False(t, f.Reveal(p[0], p[1]))
		}
		assert.Equal(t, before, f.Cells())
	})

	t.Run("not started", func(t *testing.T) {
		f, err := New(3, 3, 1, seeded())
		require.NoError(t, err)
		assert.False(t, f.Reveal(1, 1))
		assert.True(t, f.FirstClickPending())
		assert.Zero(t, countMines(f))
	})

	t.Run("already revealed", func(t *testing.T) {
		f := fieldWithMines(t, 3, 3, [2]int{2, 2})
		require.True(t, f.Reveal(1, 1))
		before := f.Cells()
		assert.False(t, f.Reveal(1, 1))
		assert.Equal(t, before, f.Cells())
	})

	t.Run("flagged", func(t *testing.T) {
		f := fieldWithMines(t, 3, 3, [2]int{2, 2})
		require.True(t, f.ToggleFlag(0, 0))
		assert.False(t, f.Reveal(0, 0))
		assert.Equal(t, Flagged, f.grid[0][0].State)
	})

	t.Run("game over", func(t *testing.T) {
		f := fieldWithMines(t, 3, 3, [2]int{2, 2})
		require.True(t, f.Reveal(2, 2))
		assert.False(t, f.Reveal(0, 0))
		assert.Equal(t, Hidden, f.grid[0][0].State)
		assert.False(t, f.Won())
	})
}

func TestWin(t *testing.T) {
	f := fieldWithMines(t, 2, 2, [2]int{1, 1})

	require.True(t, f.Reveal(0, 0))
	assert.False(t, f.Over())
	require.True(t, f.Reveal(0, 1))
	assert.False(t, f.Over())
	require.True(t, f.Reveal(1, 0))

	assert.True(t, f.Won())
	assert.True(t, f.Over())
}

func TestWinSingleCell(t *testing.T) {
	f, err := New(1, 1, 0, seeded())
	require.NoError(t, err)
	f.Start()

	require.True(t, f.Reveal(0, 0))
	assert.True(t, f.Won())
	assert.True(t, f.Over())
}

func TestWinAllMinesButOne(t *testing.T) {
	f := fieldWithMines(t, 2, 2, [2]int{0, 0}, [2]int{0, 1}, [2]int{1, 0})

	require.True(t, f.Reveal(1, 1))
	assert.True(t, f.Won())
	assert.True(t, f.Over())
}

func TestLoss(t *testing.T) {
	f := fieldWithMines(t, 4, 4, [2]int{0, 0}, [2]int{3, 3}, [2]int{2, 0})
	require.True(t, f.ToggleFlag(3, 3))

	require.True(t, f.Reveal(0, 0))

	assert.True(t, f.Over())
	assert.False(t, f.Won())
	for y := range 4 {
		for x := range 4 {
			c := f.grid[y][x]
			if c.Content == Mine {
				assert.Equal(t, Revealed, c.State, "mine %d:%d", x, y)
			}
		}
	}
	assert.Equal(t, Hidden, f.grid[2][2].State)
}

func TestToggleFlag(t *testing.T) {
	f := fieldWithMines(t, 3, 3, [2]int{2, 2})

	require.True(t, f.ToggleFlag(1, 1))
	assert.Equal(t, Flagged, f.grid[1][1].State)
	assert.Equal(t, 1, f.FlagCount())
	assert.Zero(t, f.MinesLeft())

	require.True(t, f.ToggleFlag(1, 1))
	assert.Equal(t, Hidden, f.grid[1][1].State)

	require.True(t, f.Reveal(1, 1))
	assert.False(t, f.ToggleFlag(1, 1))
	assert.Equal(t, Revealed, f.grid[1][1].State)

	assert.False(t, f.ToggleFlag(3, 0))
	assert.False(t, f.ToggleFlag(0, -1))
}

func TestToggleFlagRejects(t *testing.T) {
	t.Run("not started", func(t *testing.T) {
		f, err := New(3, 3, 1, seeded())
		require.NoError(t, err)
		assert.False(t, f.ToggleFlag(0, 0))
		assert.Equal(t, Hidden, f.grid[0][0].State)
	})

	t.Run("game over", func(t *testing.T) {
		f := fieldWithMines(t, 3, 3, [2]int{1, 1})
		require.True(t, f.Reveal(1, 1))
		assert.False(t, f.ToggleFlag(0, 0))
		assert.Equal(t, Hidden, f.grid[0][0].State)
	})
}

func TestReset(t *testing.T) {
	f, err := New(6, 5, 7, seeded())
	require.NoError(t, err)
	f.Start()
	require.True(t, f.Reveal(2, 2))
	for x := range 6 {
		f.ToggleFlag(x, 0)
	}

	f.Reset()

	fresh, err := New(6, 5, 7, seeded())
	require.NoError(t, err)
	assert.Equal(t, fresh.Cells(), f.Cells())
	assert.Equal(t, 6, f.Width())
	assert.Equal(t, 5, f.Height())
	assert.Equal(t, 7, f.MineCount())
	assert.False(t, f.Over())
	assert.False(t, f.Won())
	assert.True(t, f.FirstClickPending())
	assert.False(t, f.Started())
}

func TestShowMines(t *testing.T) {
	opts := seeded()
	opts.ShowMines = true
	f, err := New(9, 9, 10, opts)
	require.NoError(t, err)

	assert.Equal(t, 10, countMines(f))
	assert.False(t, f.FirstClickPending())
	assert.False(t, f.Started())
	assert.False(t, f.Reveal(0, 0))

	f.Start()
	before := countMines(f)
	var safe [2]int
	for y := range 9 {
		for x := range 9 {
			if f.grid[y][x].Content != Mine {
				safe = [2]int{x, y}
			}
		}
	}
	require.True(t, f.Reveal(safe[0], safe[1]))
	assert.Equal(t, before, countMines(f), "mines must not move on the first click")
}

func TestCellsIsACopy(t *testing.T) {
	f := fieldWithMines(t, 2, 2, [2]int{0, 0})
	cells := f.Cells()
	cells[1][1].State = Revealed
	assert.Equal(t, Hidden, f.grid[1][1].State)
}

func TestFormat(t *testing.T) {
	f := fieldWithMines(t, 3, 2, [2]int{2, 0})
	require.True(t, f.ToggleFlag(2, 1))
	require.True(t, f.Reveal(0, 0))

	assert.Equal(t, ". 1 -\n. 1 F\n", f.String())
	assert.Equal(t, ". 1 *\n. 1 F\n", f.Format(true))
}

func TestContent(t *testing.T) {
	assert.True(t, Mine.IsMine())
	assert.False(t, Empty.IsNumber())
	assert.Equal(t, 3, Number(3).Count())
	assert.Zero(t, Mine.Count())
	assert.Equal(t, "*", Mine.String())
	assert.Equal(t, "7", Number(7).String())
	assert.Panics(t, func() { Number(9) })
	assert.Equal(t, "flagged", Flagged.String())
}
