package session

import (
	"fmt"
	"log/slog"

	"github.com/vancomm/minefield/internal/mines"
	"github.com/vancomm/minefield/internal/timer"
)

// Coordinator ties the play timer to the lifecycle of a minefield. It owns
// the timer; the minefield belongs to the caller.
type Coordinator struct {
	timer      *timer.Timer
	difficulty Difficulty
	logger     *slog.Logger
}

func NewCoordinator(logger *slog.Logger, t *timer.Timer) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	if t == nil {
		t = timer.New(logger)
	}
	return &Coordinator{
		timer:      t,
		difficulty: Beginner,
		logger:     logger,
	}
}

func (c *Coordinator) Timer() *timer.Timer {
	return c.timer
}

func (c *Coordinator) Difficulty() Difficulty {
	return c.difficulty
}

func (c *Coordinator) StartGame(d Difficulty) {
	c.logger.Debug("starting game", slog.String("difficulty", d.String()))
	c.difficulty = d
	c.timer.Reset()
	c.timer.Start()
}

func (c *Coordinator) EndGame(won bool) {
	c.logger.Debug("ending game", slog.Bool("won", won), slog.Duration("elapsed", c.timer.Elapsed()))
	c.timer.Pause()
}

func (c *Coordinator) PauseGame() {
	c.logger.Debug("pausing game")
	c.timer.Pause()
}

func (c *Coordinator) ResumeGame() {
	c.logger.Debug("resuming game")
	c.timer.Start()
}

// SelectDifficulty switches to d and gives field a fresh board of that size.
// The timer is left alone.
func (c *Coordinator) SelectDifficulty(d Difficulty, field *mines.Minefield) error {
	if err := replaceField(d, field); err != nil {
		return err
	}
	c.logger.Debug("selected difficulty", slog.String("difficulty", d.String()))
	c.difficulty = d
	return nil
}

// ResetGame replaces field with a fresh board sized for the current
// difficulty and resets the timer.
func (c *Coordinator) ResetGame(field *mines.Minefield) error {
	c.logger.Debug("resetting game", slog.String("difficulty", c.difficulty.String()))
	if err := replaceField(c.difficulty, field); err != nil {
		return err
	}
	c.timer.Reset()
	return nil
}

func replaceField(d Difficulty, field *mines.Minefield) error {
	p, err := d.Params()
	if err != nil {
		return err
	}
	fresh, err := mines.New(p.Width, p.Height, p.MineCount, field.Options())
	if err != nil {
		return fmt.Errorf("unable to create %s minefield: %w", d, err)
	}
	*field = *fresh
	return nil
}
