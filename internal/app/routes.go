package app

import (
	"github.com/vancomm/minefield/internal/handlers"
)

func (a *App) loadRoutes() {
	scores := handlers.NewHighscoresHandler(a.logger, a.store, a.limit)
	play := handlers.NewPlayHandler(a.logger, a.ws, a.store, a.showMines)

	a.router.HandleFunc("GET /difficulties", scores.Difficulties)
	a.router.HandleFunc("GET /highscores", scores.Highscores)
	a.router.HandleFunc("GET /play", play.Play)
}
