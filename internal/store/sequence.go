package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

const tableSequence = "record_sequence"

// sequenceCounter hands out the ordering key shared by attempts and
// analytics events. The two live in separate tables, so their row IDs
// cannot be compared.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS ` + tableSequence + ` (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			next_val INTEGER NOT NULL DEFAULT 1
		)`,
		`INSERT OR IGNORE INTO ` + tableSequence + ` (id, next_val) VALUES (1, 1)`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return nil, fmt.Errorf("init %s: %w", tableSequence, err)
		}
	}
	return &sequenceCounter{db: db}, nil
}

// Next returns the current value and advances the counter in one statement.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE `+tableSequence+` SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}
