package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *repo) UnlockAchievement(ctx context.Context, rec AchievementRecord) (bool, error) {
	q := builder.Insert(tableAchievements).
		Columns("achievement_id", "session_id", "unlocked_at").
		Values(rec.ID, rec.SessionID, rec.UnlockedAt.UTC()).
		OnConflict(entsql.ConflictColumns("achievement_id"), entsql.DoNothing())
	query, args := q.Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("unlock achievement: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("unlock achievement: %w", err)
	}
	return n > 0, nil
}

func (r *repo) Achievements(ctx context.Context) ([]AchievementRecord, error) {
	q := builder.Select("achievement_id", "session_id", "unlocked_at").
		From(entsql.Table(tableAchievements)).
		OrderBy("unlocked_at")

	var records []AchievementRecord
	err := r.query(ctx, q, func(rows *sql.Rows) error {
		var (
			rec     AchievementRecord
			session sql.NullString
		)
		if err := rows.Scan(&rec.ID, &session, &rec.UnlockedAt); err != nil {
			return err
		}
		rec.SessionID = session.String
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query achievements: %w", err)
	}
	return records, nil
}
