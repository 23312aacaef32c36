package repository

import (
	"context"
	"fmt"

	"github.com/vancomm/minefield/internal/records"
	"github.com/vancomm/minefield/internal/session"
)

// Store is a [records.Store] backed by Postgres.
type Store struct {
	q *Queries
}

func NewStore(db DBTX) *Store {
	return &Store{q: New(db)}
}

func (s *Store) Add(ctx context.Context, r records.Record) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if err := s.q.CreateRecord(ctx, r); err != nil {
		return fmt.Errorf("unable to insert record: %w", err)
	}
	return nil
}

func (s *Store) Best(ctx context.Context, d session.Difficulty, limit int) ([]records.Record, error) {
	if _, err := d.Params(); err != nil {
		return nil, err
	}
	rows, err := s.q.GetRecords(ctx, RecordFilter{Difficulty: &d}, limit)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch records: %w", err)
	}
	best := make([]records.Record, 0, len(rows))
	for _, row := range rows {
		r, err := row.Record()
		if err != nil {
			return nil, err
		}
		best = append(best, r)
	}
	return best, nil
}
