package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/vancomm/minefield/internal/game"
	"github.com/vancomm/minefield/internal/records"
	"github.com/vancomm/minefield/internal/session"
)

const help = `commands:
  n [difficulty]  new game (beginner, intermediate, expert)
  o X Y           open a cell
  f X Y           flag or unflag a cell
  p               pause or resume
  d DIFFICULTY    pick a difficulty and go back to the menu
  m               main menu
  t               best times
  h               this help
  q               quit
`

var phaseBanner = map[game.Phase]string{
	game.Menu:    "press n to start",
	game.Playing: "",
	game.Paused:  "paused, press p to resume",
	game.Lost:    "boom! press n to play again",
	game.Won:     "cleared! press n to play again",
}

// render draws the status line and the board with column and row numbers.
func render(w io.Writer, g *game.Game, showMines bool) {
	f := g.Field()
	v := g.View()

	fmt.Fprintf(w, "%s  %s  mines %d  time %s\n",
		v.Difficulty, v.Phase, v.MinesLeft, v.Elapsed)
	if banner := phaseBanner[v.Phase]; banner != "" {
		fmt.Fprintln(w, banner)
	}

	var header strings.Builder
	header.WriteString("   ")
	for x := range f.Width() {
		fmt.Fprintf(&header, " %d", x%10)
	}
	fmt.Fprintln(w, header.String())

	rows := strings.Split(strings.TrimSuffix(f.Format(showMines), "\n"), "\n")
	for y, row := range rows {
		fmt.Fprintf(w, "%2d  %s\n", y, row)
	}
}

func renderBest(w io.Writer, d session.Difficulty, best []records.Record) {
	if len(best) == 0 {
		fmt.Fprintf(w, "no %s games won yet\n", d)
		return
	}
	fmt.Fprintf(w, "best %s times:\n", d)
	for i, r := range best {
		fmt.Fprintf(w, "%2d. %s  %s\n",
			i+1, session.FormatElapsed(r.Elapsed), r.FinishedAt.Local().Format("2006-01-02 15:04"))
	}
}
