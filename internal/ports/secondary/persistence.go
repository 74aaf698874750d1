// Package secondary defines the driven ports: interfaces the application
// core depends on for persistence and channel delivery, implemented by
// adapters.
package secondary

import (
	"context"
	"errors"
	"time"
)

// ErrDuplicateTask is returned by Insert when the (guild, task id) pair
// already exists. This indicates counter/store desynchronization and is
// fatal for the request; it is never silently retried.
var ErrDuplicateTask = errors.New("task id already exists for guild")

// ErrStorageUnavailable is returned when a storage operation cannot be
// performed. A task must never be created without a successfully reserved
// identifier.
var ErrStorageUnavailable = errors.New("storage unavailable")

// TaskRecord is the persisted shape of a task. CreatedAt and UpdatedAt are
// RFC3339 strings set by the store; DueAt stays a time.Time because it is
// operative (sorting, relative-time rendering).
type TaskRecord struct {
	TaskID     string
	GuildID    string
	GoalID     string
	Title      string
	Notes      string
	AssigneeID string
	CreatorID  string
	DueAt      time.Time
	Status     string
	CreatedAt  string
	UpdatedAt  string
}

// Task status values.
const (
	StatusOpen     = "open"
	StatusComplete = "complete"
)

// TaskRepository persists task records. (guild_id, task_id) is unique.
type TaskRepository interface {
	// Insert persists a new task. Returns ErrDuplicateTask if the
	// (guild, task id) pair exists.
	Insert(ctx context.Context, task *TaskRecord) error

	// FindOpenByGuild retrieves open tasks for a guild ordered by due date
	// ascending, then task id.
	FindOpenByGuild(ctx context.Context, guildID string) ([]*TaskRecord, error)

	// FindByGuild retrieves all tasks for a guild regardless of status.
	// Used by counter repair.
	FindByGuild(ctx context.Context, guildID string) ([]*TaskRecord, error)
}

// CounterRecord is one per-guild task sequence.
type CounterRecord struct {
	GuildID  string
	Sequence int
}

// CounterRepository owns the per-guild task sequence. Only the identifier
// issuer mutates it, except for the offline repair path.
type CounterRepository interface {
	// IncrementAndFetch atomically increments the sequence for a guild and
	// returns the new value. The counter is created at 0 on first use, so
	// the first reservation yields 1. Never read-then-write.
	IncrementAndFetch(ctx context.Context, guildID string) (int, error)

	// Get returns the current sequence for a guild, 0 if absent.
	Get(ctx context.Context, guildID string) (int, error)

	// Set overwrites the sequence for a guild. Repair only; last writer
	// wins and it is not safe concurrent with active creation.
	Set(ctx context.Context, guildID string, sequence int) error

	// List returns all counters. Used by diagnostics.
	List(ctx context.Context) ([]*CounterRecord, error)
}

// ServerConfigRecord is the per-guild configuration. Exactly one per guild.
type ServerConfigRecord struct {
	GuildID           string
	TaskListChannelID string
	TaskListMessageID string
	Timezone          string
	ReminderCadence   []string
	AdminRoleIDs      []string
}

// ServerConfigRepository persists per-guild configuration.
type ServerConfigRepository interface {
	// Get returns the config for a guild, or nil if none exists.
	Get(ctx context.Context, guildID string) (*ServerConfigRecord, error)

	// Upsert creates or replaces the configurable fields for a guild.
	Upsert(ctx context.Context, cfg *ServerConfigRecord) error

	// SetListMessageID records the current pinned list message for a guild,
	// overwriting any prior value. Empty string clears it.
	SetListMessageID(ctx context.Context, guildID, messageID string) error

	// List returns all configs. Used by diagnostics.
	List(ctx context.Context) ([]*ServerConfigRecord, error)
}
