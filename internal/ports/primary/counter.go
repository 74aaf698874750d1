package primary

import "context"

// CounterService issues guild-scoped task identifiers.
type CounterService interface {
	// Reserve atomically obtains the next task identifier for a guild.
	// Safe under arbitrary concurrent callers: two reservations never
	// return the same value. Fails with a storage error if the atomic
	// increment is unavailable; the caller must not create a task without
	// a successfully reserved identifier.
	Reserve(ctx context.Context, guildID string) (string, error)

	// Repair resynchronizes the counter to the maximum numeric suffix among
	// the guild's existing task ids (0 if none). Administrative and
	// out-of-band: it is last-writer-wins and not safe to run concurrently
	// with active task creation for the same guild.
	Repair(ctx context.Context, guildID string) (*CounterRepairResult, error)
}

// CounterRepairResult reports a repair run.
type CounterRepairResult struct {
	GuildID          string
	PreviousSequence int
	NewSequence      int
	TaskCount        int
}
