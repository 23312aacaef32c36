package game

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/vancomm/minefield/internal/mines"
	"github.com/vancomm/minefield/internal/session"
	"github.com/vancomm/minefield/internal/timer"
)

type Phase uint8

const (
	Menu Phase = iota
	Playing
	Paused
	Lost
	Won
)

func (p Phase) String() string {
	switch p {
	case Menu:
		return "menu"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Lost:
		return "lost"
	case Won:
		return "won"
	default:
		return fmt.Sprintf("Phase(%d)", uint8(p))
	}
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(text []byte) error {
	for _, candidate := range []Phase{Menu, Playing, Paused, Lost, Won} {
		if candidate.String() == string(text) {
			*p = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", text)
}

// Result describes a finished, won game.
type Result struct {
	GameID     uuid.UUID
	Difficulty session.Difficulty
	Elapsed    time.Duration
}

type Options struct {
	Rand      *rand.Rand
	Logger    *slog.Logger
	Now       func() time.Time
	ShowMines bool

	// OnWin is called once per won game, during the sync step that
	// notices the win.
	OnWin func(Result)
}

// Game drives one minefield and its coordinator from text commands. A Game
// is not safe for concurrent use; hosts confine each one to a goroutine.
type Game struct {
	id        uuid.UUID
	field     *mines.Minefield
	coord     *session.Coordinator
	showMines bool
	onWin     func(Result)
	logger    *slog.Logger
}

// New returns a game sitting in the menu with a board sized for d.
func New(d session.Difficulty, opts Options) (*Game, error) {
	p, err := d.Params()
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("game", id.String()))

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	field, err := mines.New(p.Width, p.Height, p.MineCount, mines.Options{
		Rand:      opts.Rand,
		Logger:    logger,
		ShowMines: opts.ShowMines,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to create minefield: %w", err)
	}

	coord := session.NewCoordinator(logger, timer.NewWithClock(logger, now))
	if err := coord.SelectDifficulty(d, field); err != nil {
		return nil, err
	}

	g := &Game{
		id:        id,
		field:     field,
		coord:     coord,
		showMines: opts.ShowMines,
		onWin:     opts.OnWin,
		logger:    logger,
	}
	return g, nil
}

func (g *Game) ID() uuid.UUID { return g.id }
func (g *Game) Field() *mines.Minefield { return g.field }
func (g *Game) Coordinator() *session.Coordinator { return g.coord }

func (g *Game) Phase() Phase {
	switch {
	case !g.field.Started():
		return Menu
	case g.field.Won():
		return Won
	case g.field.Over():
		return Lost
	case !g.coord.Timer().Running():
		return Paused
	default:
		return Playing
	}
}

// Handle parses and executes line, then runs the sync step. It reports
// whether the command changed anything.
func (g *Game) Handle(line string) (bool, error) {
	cmd, err := ParseCommand(line)
	if err != nil {
		return false, err
	}
	accepted, err := g.Execute(cmd)
	g.Sync()
	return accepted, err
}

func (g *Game) Execute(cmd Command) (bool, error) {
	g.logger.Debug("executing command", slog.String("command", cmd.String()))

	switch cmd.Action {
	case Refresh:
		return false, nil

	case Open, Flag:
		if g.field.Over() || !g.coord.Timer().Running() {
			return false, nil
		}
		if cmd.Action == Open {
			return g.field.Reveal(cmd.X, cmd.Y), nil
		}
		return g.field.ToggleFlag(cmd.X, cmd.Y), nil

	case TogglePause:
		if !g.field.Started() || g.field.Over() {
			return false, nil
		}
		if g.coord.Timer().Running() {
			g.coord.PauseGame()
		} else {
			g.coord.ResumeGame()
		}
		return true, nil

	case NewGame:
		if cmd.HasDifficulty {
			if err := g.coord.SelectDifficulty(cmd.Difficulty, g.field); err != nil {
				return false, err
			}
		}
		if err := g.coord.ResetGame(g.field); err != nil {
			return false, err
		}
		g.coord.StartGame(g.coord.Difficulty())
		g.field.Start()
		return true, nil

	case SelectDifficulty:
		if err := g.coord.SelectDifficulty(cmd.Difficulty, g.field); err != nil {
			return false, err
		}
		return true, nil

	case MainMenu:
		g.field.Reset()
		g.coord.PauseGame()
		return true, nil

	default:
		return false, fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}
}

// Sync brings the timer in line with the board once per frame: a finished
// board stops the clock, and so does a board that has not been started.
func (g *Game) Sync() {
	t := g.coord.Timer()
	if g.field.Over() && t.Running() {
		won := g.field.Won()
		g.coord.EndGame(won)
		if won && g.onWin != nil {
			g.onWin(Result{
				GameID:     g.id,
				Difficulty: g.coord.Difficulty(),
				Elapsed:    t.Elapsed(),
			})
		}
	}
	if !g.field.Started() && t.Running() {
		g.coord.PauseGame()
	}
}

func (g *Game) View() View {
	return NewView(g)
}
