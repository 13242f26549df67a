package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

// dbtx is satisfied by *sql.DB and *sql.Tx.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// repo implements every repository interface over one database handle.
type repo struct {
	db  dbtx
	seq *sequenceCounter
}

func (r *repo) exec(ctx context.Context, q entsql.Querier) error {
	query, args := q.Query()
	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

// query runs q and calls scan for each row.
func (r *repo) query(ctx context.Context, q entsql.Querier, scan func(*sql.Rows) error) error {
	query, args := q.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return fmt.Errorf("scan: %w", err)
		}
	}
	return rows.Err()
}

// countBy returns row counts grouped by column.
func (r *repo) countBy(ctx context.Context, table, column string) (map[string]int, error) {
	q := builder.Select(column, entsql.Count("*")).
		From(entsql.Table(table)).
		GroupBy(column)
	counts := make(map[string]int)
	err := r.query(ctx, q, func(rows *sql.Rows) error {
		var (
			key string
			n   int
		)
		if err := rows.Scan(&key, &n); err != nil {
			return err
		}
		counts[key] = n
		return nil
	})
	return counts, err
}

func nullable[T any](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}
