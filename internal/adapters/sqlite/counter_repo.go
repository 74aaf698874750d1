package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/taysr/internal/ports/secondary"
)

// CounterRepository implements secondary.CounterRepository with SQLite.
type CounterRepository struct {
	db *sql.DB
}

// NewCounterRepository creates a new SQLite counter repository.
func NewCounterRepository(db *sql.DB) *CounterRepository {
	return &CounterRepository{db: db}
}

// IncrementAndFetch bumps the per-guild sequence and returns the new value
// in a single statement. The upsert-with-RETURNING form is the atomic
// increment-and-fetch: concurrent callers serialize on the row and never
// observe the same value. The counter row is created at 1 on first use.
func (r *CounterRepository) IncrementAndFetch(ctx context.Context, guildID string) (int, error) {
	var sequence int
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO task_counters (guild_id, sequence) VALUES (?, 1)
		 ON CONFLICT(guild_id) DO UPDATE SET sequence = sequence + 1
		 RETURNING sequence`,
		guildID,
	).Scan(&sequence)
	if err != nil {
		return 0, fmt.Errorf("failed to increment task counter: %w", err)
	}

	return sequence, nil
}

// Get returns the current sequence for a guild, 0 if no counter exists yet.
func (r *CounterRepository) Get(ctx context.Context, guildID string) (int, error) {
	var sequence int
	err := r.db.QueryRowContext(ctx,
		"SELECT sequence FROM task_counters WHERE guild_id = ?",
		guildID,
	).Scan(&sequence)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get task counter: %w", err)
	}

	return sequence, nil
}

// Set overwrites the sequence for a guild. Repair only.
func (r *CounterRepository) Set(ctx context.Context, guildID string, sequence int) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO task_counters (guild_id, sequence) VALUES (?, ?)
		 ON CONFLICT(guild_id) DO UPDATE SET sequence = excluded.sequence`,
		guildID, sequence,
	)
	if err != nil {
		return fmt.Errorf("failed to set task counter: %w", err)
	}

	return nil
}

// List returns all counters.
func (r *CounterRepository) List(ctx context.Context) ([]*secondary.CounterRecord, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT guild_id, sequence FROM task_counters ORDER BY guild_id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list task counters: %w", err)
	}
	defer rows.Close()

	var counters []*secondary.CounterRecord
	for rows.Next() {
		record := &secondary.CounterRecord{}
		if err := rows.Scan(&record.GuildID, &record.Sequence); err != nil {
			return nil, fmt.Errorf("failed to scan task counter: %w", err)
		}
		counters = append(counters, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate task counters: %w", err)
	}

	return counters, nil
}

// Ensure CounterRepository implements the interface
var _ secondary.CounterRepository = (*CounterRepository)(nil)
