package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var sessionColumns = []string{
	"id", "problem_type", "difficulty", "started_at", "ended_at",
	"problem_count", "correct_count", "score", "duration_ms",
}

func (r *repo) SaveSession(ctx context.Context, rec SessionRecord) error {
	q := builder.Insert(tableSessions).
		Columns(sessionColumns...).
		Values(
			rec.ID, rec.ProblemType, rec.Difficulty, rec.StartedAt.UTC(), nullable(rec.EndedAt),
			rec.ProblemCount, rec.CorrectCount, rec.Score, rec.Duration.Milliseconds(),
		).
		OnConflict(entsql.ConflictColumns("id"), entsql.ResolveWithNewValues())
	if err := r.exec(ctx, q); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *repo) RecentSessions(ctx context.Context, limit int) ([]SessionRecord, error) {
	q := builder.Select(sessionColumns...).
		From(entsql.Table(tableSessions)).
		OrderBy(entsql.Desc("started_at"))
	if limit > 0 {
		q = q.Limit(limit)
	}

	var records []SessionRecord
	err := r.query(ctx, q, func(rows *sql.Rows) error {
		var (
			rec        SessionRecord
			ended      sql.NullTime
			durationMs int64
		)
		if err := rows.Scan(
			&rec.ID, &rec.ProblemType, &rec.Difficulty, &rec.StartedAt, &ended,
			&rec.ProblemCount, &rec.CorrectCount, &rec.Score, &durationMs,
		); err != nil {
			return err
		}
		if ended.Valid {
			rec.EndedAt = &ended.Time
		}
		rec.Duration = time.Duration(durationMs) * time.Millisecond
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	return records, nil
}
