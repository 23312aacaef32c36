package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/vancomm/minefield/internal/records"
	"github.com/vancomm/minefield/internal/session"
)

type HighscoresHandler struct {
	logger *slog.Logger
	store  records.Store
	limit  int
}

func NewHighscoresHandler(logger *slog.Logger, store records.Store, limit int) *HighscoresHandler {
	return &HighscoresHandler{
		logger: logger,
		store:  store,
		limit:  limit,
	}
}

func (h HighscoresHandler) Difficulties(w http.ResponseWriter, r *http.Request) {
	sendJSONOrLog(w, h.logger, NewDifficultiesDTO())
}

func (h HighscoresHandler) Highscores(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseHighscoresDTO(r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, h.logger, http.StatusBadRequest, err)
		return
	}

	d, err := DifficultyOr(dto.Difficulty, session.Beginner)
	if err != nil {
		sendErrorOrLog(w, h.logger, http.StatusBadRequest, err)
		return
	}

	limit := dto.Limit
	if limit < 0 {
		sendErrorOrLog(w, h.logger, http.StatusBadRequest, fmt.Errorf("limit must not be negative"))
		return
	}
	if limit == 0 || limit > h.limit {
		limit = h.limit
	}

	best, err := h.store.Best(r.Context(), d, limit)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to fetch highscores", slog.Any("error", err))
		return
	}

	sendJSONOrLog(w, h.logger, best)
}
