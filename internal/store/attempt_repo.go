package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var attemptColumns = []string{
	"sequence", "recorded_at", "attempt_id", "session_id", "problem_id",
	"problem_type", "difficulty", "question", "correct_answer", "user_answer",
	"correct", "time_spent_ms", "hints_used", "tries",
}

func (r *repo) AppendAttempt(ctx context.Context, rec AttemptRecord) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	ts := rec.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	tries := rec.Tries
	if tries < 1 {
		tries = 1
	}

	q := builder.Insert(tableAttempts).
		Columns(attemptColumns...).
		Values(
			seqNum, ts.UTC(), rec.AttemptID, rec.SessionID, rec.ProblemID,
			rec.ProblemType, rec.Difficulty, rec.Question, rec.CorrectAnswer, rec.UserAnswer,
			rec.Correct, rec.TimeSpent.Milliseconds(), rec.HintsUsed, tries,
		)
	if err := r.exec(ctx, q); err != nil {
		return fmt.Errorf("save attempt: %w", err)
	}
	return nil
}

func (r *repo) SessionAttempts(ctx context.Context, sessionID string) ([]AttemptRecord, error) {
	q := builder.Select(attemptColumns...).
		From(entsql.Table(tableAttempts)).
		Where(entsql.EQ("session_id", sessionID)).
		OrderBy("sequence")

	var records []AttemptRecord
	err := r.query(ctx, q, func(rows *sql.Rows) error {
		var (
			rec     AttemptRecord
			spentMs int64
		)
		if err := rows.Scan(
			&rec.Sequence, &rec.Timestamp, &rec.AttemptID, &rec.SessionID, &rec.ProblemID,
			&rec.ProblemType, &rec.Difficulty, &rec.Question, &rec.CorrectAnswer, &rec.UserAnswer,
			&rec.Correct, &spentMs, &rec.HintsUsed, &rec.Tries,
		); err != nil {
			return err
		}
		rec.TimeSpent = time.Duration(spentMs) * time.Millisecond
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	return records, nil
}

func (r *repo) AttemptCountsByType(ctx context.Context) (map[string]int, error) {
	counts, err := r.countBy(ctx, tableAttempts, "problem_type")
	if err != nil {
		return nil, fmt.Errorf("count attempts: %w", err)
	}
	return counts, nil
}
