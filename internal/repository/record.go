package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/vancomm/minefield/internal/records"
	"github.com/vancomm/minefield/internal/session"
)

type Record struct {
	RecordId   uuid.UUID `db:"record_id"`
	Difficulty string    `db:"difficulty"`
	ElapsedMs  int64     `db:"elapsed_ms"`
	FinishedAt time.Time `db:"finished_at"`
}

func fromRecord(r records.Record) Record {
	return Record{
		RecordId:   r.ID,
		Difficulty: r.Difficulty.String(),
		ElapsedMs:  r.ElapsedMs,
		FinishedAt: r.FinishedAt,
	}
}

func (r Record) Record() (records.Record, error) {
	d, err := session.ParseDifficulty(r.Difficulty)
	if err != nil {
		return records.Record{}, fmt.Errorf("record %s: %w", r.RecordId, err)
	}
	return records.Record{
		ID:         r.RecordId,
		Difficulty: d,
		Elapsed:    time.Duration(r.ElapsedMs) * time.Millisecond,
		ElapsedMs:  r.ElapsedMs,
		FinishedAt: r.FinishedAt.UTC(),
	}, nil
}

type RecordFilter struct {
	Difficulty *session.Difficulty
	Since      *time.Time
}

func (f RecordFilter) WhereClause() (string, pgx.NamedArgs) {
	clauses := make([]string, 0)
	args := pgx.NamedArgs{}
	if f.Difficulty != nil {
		clauses = append(clauses, "difficulty = @difficulty")
		args["difficulty"] = f.Difficulty.String()
	}
	if f.Since != nil {
		clauses = append(clauses, "finished_at >= @since")
		args["since"] = *f.Since
	}
	return strings.Join(clauses, " AND "), args
}

func (q *Queries) CreateRecord(ctx context.Context, r records.Record) error {
	row := fromRecord(r)
	_, err := q.db.Exec(
		ctx,
		`INSERT INTO record (record_id, difficulty, elapsed_ms, finished_at)
		VALUES (@record_id, @difficulty, @elapsed_ms, @finished_at);`,
		pgx.NamedArgs{
			"record_id":   row.RecordId,
			"difficulty":  row.Difficulty,
			"elapsed_ms":  row.ElapsedMs,
			"finished_at": row.FinishedAt,
		},
	)
	return err
}

func (q *Queries) GetRecords(
	ctx context.Context, filter RecordFilter, limit int,
) ([]Record, error) {
	query := `
	SELECT
		record_id,
		difficulty,
		elapsed_ms,
		finished_at
	FROM record`

	whereClause, args := filter.WhereClause()
	if whereClause != "" {
		query += " WHERE " + whereClause
	}

	query += " ORDER BY elapsed_ms, finished_at"

	if limit > 0 {
		query += " LIMIT @limit"
		args["limit"] = limit
	}

	rows, err := q.db.Query(ctx, query+";", args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Record])
}
