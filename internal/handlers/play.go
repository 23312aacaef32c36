package handlers

import (
	"context"
	"iter"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vancomm/minefield/internal/config"
	"github.com/vancomm/minefield/internal/game"
	"github.com/vancomm/minefield/internal/mines"
	"github.com/vancomm/minefield/internal/records"
	"github.com/vancomm/minefield/internal/session"
)

const maxMessageSize = 4096

type PlayHandler struct {
	logger    *slog.Logger
	ws        *config.WebSocket
	store     records.Store
	showMines bool

	newRand func() *rand.Rand
	now     func() time.Time
}

func NewPlayHandler(
	logger *slog.Logger,
	ws *config.WebSocket,
	store records.Store,
	showMines bool,
) *PlayHandler {
	return &PlayHandler{
		logger:    logger,
		ws:        ws,
		store:     store,
		showMines: showMines,
		newRand:   mines.NewRand,
		now:       time.Now,
	}
}

// Message is what the server sends over the socket: the view after every
// processed message, or an error for a line that could not be handled.
type Message struct {
	View  *game.View `json:"view,omitempty"`
	Error string     `json:"error,omitempty"`
}

func iterBySep(s string, sep string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		found := true
		var piece string
		for found {
			piece, s, found = strings.Cut(s, sep)
			if !yield(i, piece) {
				return
			}
			i += 1
		}
	}
}

func (h PlayHandler) saveRecord(ctx context.Context, logger *slog.Logger, res game.Result) {
	rec := records.New(res.Difficulty, res.Elapsed, h.now())
	if err := h.store.Add(ctx, rec); err != nil {
		logger.Error("unable to save record", slog.Any("error", err))
		return
	}
	logger.Info("game won",
		slog.String("difficulty", res.Difficulty.String()),
		slog.Duration("elapsed", res.Elapsed))
}

func (h PlayHandler) Play(w http.ResponseWriter, r *http.Request) {
	dto, err := ParsePlayDTO(r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, h.logger, http.StatusBadRequest, err)
		return
	}
	d, err := DifficultyOr(dto.Difficulty, session.Beginner)
	if err != nil {
		sendErrorOrLog(w, h.logger, http.StatusBadRequest, err)
		return
	}

	ctx := r.Context()
	logger := h.logger
	g, err := game.New(d, game.Options{
		Rand:      h.newRand(),
		Logger:    h.logger,
		Now:       h.now,
		ShowMines: h.showMines,
		OnWin: func(res game.Result) {
			h.saveRecord(ctx, logger, res)
		},
	})
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to create game", slog.Any("error", err))
		return
	}
	logger = logger.With(slog.String("game", g.ID().String()))

	c, err := h.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("unable to upgrade", slog.Any("error", err))
		return
	}
	defer c.Close()
	c.SetReadLimit(maxMessageSize)

	logger.Info("player connected", slog.String("difficulty", d.String()))

	if err := h.sendView(c, g); err != nil {
		logger.Warn("unable to send view", slog.Any("error", err))
		return
	}

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("abnormal ws break", slog.Any("error", err))
			}
			break
		}
		if mt != websocket.TextMessage {
			break
		}

		text := strings.TrimSpace(string(message))
		logger.Debug("\t> " + text)
		for _, line := range iterBySep(text, "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			if _, err := g.Handle(line); err != nil {
				logger.Debug("unable to process command", slog.Any("error", err))
				if err := c.WriteJSON(Message{Error: err.Error()}); err != nil {
					logger.Warn("unable to send error", slog.Any("error", err))
					return
				}
			}
		}

		if err := h.sendView(c, g); err != nil {
			logger.Warn("unable to send view", slog.Any("error", err))
			return
		}
	}

	logger.Info("player disconnected", slog.String("phase", g.Phase().String()))
}

func (h PlayHandler) sendView(c *websocket.Conn, g *game.Game) error {
	v := g.View()
	return c.WriteJSON(Message{View: &v})
}
