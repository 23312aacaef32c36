package records

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/vancomm/minefield/internal/session"
)

// Memory is a Store held in process memory. Each difficulty keeps at most
// capacity records; slower ones fall off the end.
type Memory struct {
	mu       sync.RWMutex
	boards   map[session.Difficulty][]Record
	capacity int
	logger   *slog.Logger
}

func NewMemory(logger *slog.Logger, capacity int) *Memory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Memory{
		boards:   make(map[session.Difficulty][]Record),
		capacity: capacity,
		logger:   logger,
	}
}

func (m *Memory) Add(_ context.Context, r Record) error {
	if err := r.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	board := m.boards[r.Difficulty]
	i, _ := slices.BinarySearchFunc(board, r, less)
	if m.capacity > 0 && i >= m.capacity {
		m.logger.Debug("record too slow for the board",
			slog.String("difficulty", r.Difficulty.String()), slog.Duration("elapsed", r.Elapsed))
		return nil
	}
	board = slices.Insert(board, i, r)
	if m.capacity > 0 && len(board) > m.capacity {
		board = board[:m.capacity]
	}
	m.boards[r.Difficulty] = board

	m.logger.Info("new best time",
		slog.String("difficulty", r.Difficulty.String()),
		slog.Duration("elapsed", r.Elapsed),
		slog.Int("rank", i+1))
	return nil
}

func (m *Memory) Best(_ context.Context, d session.Difficulty, limit int) ([]Record, error) {
	if _, err := d.Params(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	board := m.boards[d]
	if limit > 0 && limit < len(board) {
		board = board[:limit]
	}
	return append([]Record{}, board...), nil
}
