package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var analyticsColumns = []string{"sequence", "recorded_at", "name", "session_id", "properties"}

func (r *repo) AppendAnalyticsEvent(ctx context.Context, rec AnalyticsEventRecord) error {
	props, err := json.Marshal(rec.Properties)
	if err != nil {
		return fmt.Errorf("encode properties: %w", err)
	}
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	ts := rec.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	q := builder.Insert(tableAnalyticsEvents).
		Columns(analyticsColumns...).
		Values(seqNum, ts.UTC(), rec.Name, rec.SessionID, props)
	if err := r.exec(ctx, q); err != nil {
		return fmt.Errorf("save analytics event: %w", err)
	}
	return nil
}

func (r *repo) QueryAnalyticsEvents(ctx context.Context, opts QueryOpts) ([]AnalyticsEventRecord, error) {
	q := builder.Select(analyticsColumns...).
		From(entsql.Table(tableAnalyticsEvents)).
		OrderBy(entsql.Desc("sequence"))

	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.After > 0 {
		q = q.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		q = q.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		q = q.Where(entsql.GTE("recorded_at", opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		q = q.Where(entsql.LTE("recorded_at", opts.To.UTC()))
	}
	if opts.Name != "" {
		q = q.Where(entsql.EQ("name", opts.Name))
	}

	var records []AnalyticsEventRecord
	err := r.query(ctx, q, func(rows *sql.Rows) error {
		var (
			rec     AnalyticsEventRecord
			session sql.NullString
			props   []byte
		)
		if err := rows.Scan(&rec.Sequence, &rec.Timestamp, &rec.Name, &session, &props); err != nil {
			return err
		}
		rec.SessionID = session.String
		if err := json.Unmarshal(props, &rec.Properties); err != nil {
			return fmt.Errorf("decode properties: %w", err)
		}
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query analytics events: %w", err)
	}
	return records, nil
}

func (r *repo) AnalyticsEventCounts(ctx context.Context) (map[string]int, error) {
	counts, err := r.countBy(ctx, tableAnalyticsEvents, "name")
	if err != nil {
		return nil, fmt.Errorf("count analytics events: %w", err)
	}
	return counts, nil
}
