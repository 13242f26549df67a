package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

const profileID = 1

var profileColumns = []string{
	"id", "total_problems", "correct_answers", "current_streak",
	"longest_streak", "favorite_activity", "last_practiced",
}

func (r *repo) LoadProfile(ctx context.Context) (*ProfileRecord, error) {
	q := builder.Select(profileColumns[1:]...).
		From(entsql.Table(tableProfile)).
		Where(entsql.EQ("id", profileID))

	var found *ProfileRecord
	err := r.query(ctx, q, func(rows *sql.Rows) error {
		var (
			rec       ProfileRecord
			favorite  sql.NullString
			practiced sql.NullTime
		)
		if err := rows.Scan(
			&rec.TotalProblems, &rec.CorrectAnswers, &rec.CurrentStreak,
			&rec.LongestStreak, &favorite, &practiced,
		); err != nil {
			return err
		}
		rec.FavoriteActivity = favorite.String
		if practiced.Valid {
			rec.LastPracticed = &practiced.Time
		}
		found = &rec
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return found, nil
}

func (r *repo) SaveProfile(ctx context.Context, rec ProfileRecord) error {
	q := builder.Insert(tableProfile).
		Columns(profileColumns...).
		Values(
			profileID, rec.TotalProblems, rec.CorrectAnswers, rec.CurrentStreak,
			rec.LongestStreak, rec.FavoriteActivity, nullable(rec.LastPracticed),
		).
		OnConflict(entsql.ConflictColumns("id"), entsql.ResolveWithNewValues())
	if err := r.exec(ctx, q); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}
