package records

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/vancomm/minefield/internal/session"
)

var ErrInvalidRecord = errors.New("invalid record")

// Record is the result of a won game.
type Record struct {
	ID         uuid.UUID          `json:"id"`
	Difficulty session.Difficulty `json:"difficulty"`
	Elapsed    time.Duration      `json:"-"`
	ElapsedMs  int64              `json:"elapsed_ms"`
	FinishedAt time.Time          `json:"finished_at"`
}

func New(d session.Difficulty, elapsed time.Duration, finishedAt time.Time) Record {
	return Record{
		ID:         uuid.New(),
		Difficulty: d,
		Elapsed:    elapsed,
		ElapsedMs:  elapsed.Milliseconds(),
		FinishedAt: finishedAt.UTC(),
	}
}

func (r Record) Validate() error {
	if _, err := r.Difficulty.Params(); err != nil {
		return errors.Join(ErrInvalidRecord, err)
	}
	if r.Elapsed < 0 {
		return errors.Join(ErrInvalidRecord, errors.New("negative elapsed time"))
	}
	return nil
}

// Store keeps best times. Best returns at most limit records for d, fastest
// first; a non-positive limit means no limit.
type Store interface {
	Add(ctx context.Context, r Record) error
	Best(ctx context.Context, d session.Difficulty, limit int) ([]Record, error)
}

// less orders records by elapsed time, earlier finishes first on ties.
func less(a, b Record) int {
	if a.Elapsed != b.Elapsed {
		if a.Elapsed < b.Elapsed {
			return -1
		}
		return 1
	}
	return a.FinishedAt.Compare(b.FinishedAt)
}
