package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

var masteryColumns = []string{
	"problem_type", "attempted", "correct", "level",
	"average_time_ms", "last_practiced", "recent",
}

func (r *repo) LoadMastery(ctx context.Context) ([]MasteryRecord, error) {
	q := builder.Select(masteryColumns...).
		From(entsql.Table(tableMastery)).
		OrderBy("problem_type")

	var records []MasteryRecord
	err := r.query(ctx, q, func(rows *sql.Rows) error {
		var (
			rec    MasteryRecord
			recent []byte
		)
		if err := rows.Scan(
			&rec.ProblemType, &rec.Attempted, &rec.Correct, &rec.Level,
			&rec.AverageTimeMs, &rec.LastPracticed, &recent,
		); err != nil {
			return err
		}
		if len(recent) > 0 {
			if err := json.Unmarshal(recent, &rec.Recent); err != nil {
				return fmt.Errorf("decode recent: %w", err)
			}
		}
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load mastery: %w", err)
	}
	return records, nil
}

func (r *repo) SaveMastery(ctx context.Context, rec MasteryRecord) error {
	recent, err := json.Marshal(rec.Recent)
	if err != nil {
		return fmt.Errorf("encode recent: %w", err)
	}
	q := builder.Insert(tableMastery).
		Columns(masteryColumns...).
		Values(
			rec.ProblemType, rec.Attempted, rec.Correct, rec.Level,
			rec.AverageTimeMs, rec.LastPracticed.UTC(), recent,
		).
		OnConflict(entsql.ConflictColumns("problem_type"), entsql.ResolveWithNewValues())
	if err := r.exec(ctx, q); err != nil {
		return fmt.Errorf("save mastery: %w", err)
	}
	return nil
}
