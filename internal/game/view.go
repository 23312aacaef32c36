package game

import (
	"github.com/vancomm/minefield/internal/mines"
	"github.com/vancomm/minefield/internal/session"
)

type CellView struct {
	State string `json:"state"`
	Count int    `json:"count,omitempty"`
	Mine  bool   `json:"mine,omitempty"`
}

// View is the render snapshot sent to clients after every frame. Content of
// hidden cells is withheld unless show-mines is on, in which case hidden
// mines are marked.
type View struct {
	GameID     string             `json:"game_id"`
	Difficulty session.Difficulty `json:"difficulty"`
	Phase      Phase              `json:"phase"`
	Width      int                `json:"width"`
	Height     int                `json:"height"`
	MineCount  int                `json:"mine_count"`
	MinesLeft  int                `json:"mines_left"`
	Over       bool               `json:"over"`
	Won        bool               `json:"won"`
	ElapsedMs  int64              `json:"elapsed_ms"`
	Elapsed    string             `json:"elapsed"`
	Cells      [][]CellView       `json:"cells"`
}

func newCellView(c mines.Cell, showMines bool) CellView {
	v := CellView{State: c.State.String()}
	switch c.State {
	case mines.Revealed:
		v.Mine = c.Content.IsMine()
		v.Count = c.Content.Count()
	case mines.Hidden:
		v.Mine = showMines && c.Content.IsMine()
	}
	return v
}

func NewView(g *Game) View {
	f := g.field
	elapsed := g.coord.Timer().Elapsed()

	cells := f.Cells()
	grid := make([][]CellView, len(cells))
	for y, row := range cells {
		grid[y] = make([]CellView, len(row))
		for x, c := range row {
			grid[y][x] = newCellView(c, g.showMines)
		}
	}

	return View{
		GameID:     g.id.String(),
		Difficulty: g.coord.Difficulty(),
		Phase:      g.Phase(),
		Width:      f.Width(),
		Height:     f.Height(),
		MineCount:  f.MineCount(),
		MinesLeft:  f.MinesLeft(),
		Over:       f.Over(),
		Won:        f.Won(),
		ElapsedMs:  elapsed.Milliseconds(),
		Elapsed:    session.FormatElapsed(elapsed),
		Cells:      grid,
	}
}
