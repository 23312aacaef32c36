package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minefield/internal/config"
	"github.com/vancomm/minefield/internal/game"
	"github.com/vancomm/minefield/internal/records"
	"github.com/vancomm/minefield/internal/session"
)

var (
	discard = slog.New(slog.NewTextHandler(io.Discard, nil))
	epoch   = time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
)

func newServer(t *testing.T, store records.Store, showMines bool) *httptest.Server {
	t.Helper()
	ws, err := config.NewWebSocket()
	require.NoError(t, err)

	scores := NewHighscoresHandler(discard, store, 5)
	play := NewPlayHandler(discard, ws, store, showMines)
	play.newRand = func() *rand.Rand { return rand.New(rand.NewPCG(3, 5)) }

	mux := http.NewServeMux()
	mux.HandleFunc("GET /difficulties", scores.Difficulties)
	mux.HandleFunc("GET /highscores", scores.Highscores)
	mux.HandleFunc("GET /play", play.Play)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, v any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if v != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	}
	return resp.StatusCode
}

func TestDifficulties(t *testing.T) {
	srv := newServer(t, records.NewMemory(discard, 0), false)

	var got []map[string]any
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/difficulties", &got))

	require.Len(t, got, 3)
	assert.Equal(t, "beginner", got[0]["name"])
	assert.EqualValues(t, 9, got[0]["width"])
	assert.Equal(t, "expert", got[2]["name"])
	assert.EqualValues(t, 30, got[2]["width"])
	assert.EqualValues(t, 16, got[2]["height"])
	assert.EqualValues(t, 99, got[2]["mine_count"])
}

func TestHighscores(t *testing.T) {
	ctx := context.Background()
	store := records.NewMemory(discard, 0)
	for _, secs := range []int{50, 20, 40, 10, 30, 60, 70} {
		require.NoError(t, store.Add(ctx, records.New(session.Expert, time.Duration(secs)*time.Second, epoch)))
	}
	require.NoError(t, store.Add(ctx, records.New(session.Beginner, time.Second, epoch)))
	srv := newServer(t, store, false)

	tests := []struct {
		query string
		want  []int64
	}{
		{"difficulty=expert&limit=2", []int64{10000, 20000}},
		{"difficulty=e", []int64{10000, 20000, 30000, 40000, 50000}},
		{"difficulty=expert&limit=100", []int64{10000, 20000, 30000, 40000, 50000}},
		{"difficulty=intermediate", []int64{}},
		{"difficulty=beginner", []int64{1000}},
	}

	for _, test := range tests {
		t.Run(test.query, func(t *testing.T) {
			var got []records.Record
			require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/highscores?"+test.query, &got))
			ms := make([]int64, len(got))
			for i, r := range got {
				ms[i] = r.ElapsedMs
			}
			assert.Equal(t, test.want, ms)
		})
	}
}

func TestHighscoresBadRequest(t *testing.T) {
	srv := newServer(t, records.NewMemory(discard, 0), false)

	for _, query := range []string{"", "difficulty=hard", "difficulty=expert&limit=x", "difficulty=expert&limit=-1"} {
		t.Run(query, func(t *testing.T) {
			var body map[string]string
			assert.Equal(t, http.StatusBadRequest, getJSON(t, srv.URL+"/highscores?"+query, &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

type client struct {
	t    *testing.T
	conn *websocket.Conn
}

func dial(t *testing.T, srv *httptest.Server, query string) *client {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/play" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return &client{t: t, conn: conn}
}

func (c *client) send(lines ...string) {
	c.t.Helper()
	require.NoError(c.t, c.conn.WriteMessage(websocket.TextMessage, []byte(strings.Join(lines, "\n"))))
}

func (c *client) read() Message {
	c.t.Helper()
	require.NoError(c.t, c.conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var m Message
	require.NoError(c.t, c.conn.ReadJSON(&m))
	return m
}

func (c *client) view() game.View {
	c.t.Helper()
	m := c.read()
	require.Empty(c.t, m.Error)
	require.NotNil(c.t, m.View)
	return *m.View
}

func TestPlay(t *testing.T) {
	srv := newServer(t, records.NewMemory(discard, 0), false)
	c := dial(t, srv, "?difficulty=intermediate")

	v := c.view()
	assert.Equal(t, game.Menu, v.Phase)
	assert.Equal(t, 16, v.Width)
	assert.Equal(t, 40, v.MinesLeft)

	c.send("n")
	v = c.view()
	assert.Equal(t, game.Playing, v.Phase)

	c.send("o 8 8")
	v = c.view()
	assert.Equal(t, "revealed", v.Cells[8][8].State)
	assert.False(t, v.Cells[8][8].Mine)

	c.send("f 0 0")
	v = c.view()
	assert.Contains(t, []string{"flagged", "revealed"}, v.Cells[0][0].State)
}

func TestPlayBadCommand(t *testing.T) {
	srv := newServer(t, records.NewMemory(discard, 0), false)
	c := dial(t, srv, "")
	c.view()

	c.send("x 1 2")
	m := c.read()
	assert.Contains(t, m.Error, game.ErrUnknownCommand.Error())
	assert.Nil(t, m.View)

	v := c.view()
	assert.Equal(t, game.Menu, v.Phase, "the connection survives bad input")
}

func TestPlayBadDifficulty(t *testing.T) {
	srv := newServer(t, records.NewMemory(discard, 0), false)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/play?difficulty=hard"

	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPlayWinIsRecorded(t *testing.T) {
	store := records.NewMemory(discard, 0)
	srv := newServer(t, store, true)
	c := dial(t, srv, "?difficulty=beginner")
	c.view()

	c.send("n")
	v := c.view()
	require.Equal(t, game.Playing, v.Phase)

	var moves []string
	for y, row := range v.Cells {
		for x, cell := range row {
			if !cell.Mine {
				moves = append(moves, fmt.Sprintf("o %d %d", x, y))
			}
		}
	}
	require.Len(t, moves, 81-10)
	c.send(moves...)

	v = c.view()
	assert.Equal(t, game.Won, v.Phase)
	assert.True(t, v.Won)

	best, err := store.Best(context.Background(), session.Beginner, 0)
	require.NoError(t, err)
	assert.Len(t, best, 1)
}
