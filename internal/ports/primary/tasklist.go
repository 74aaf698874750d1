package primary

import "context"

// SyncMode selects how the pinned list message is reconciled.
type SyncMode string

const (
	// SyncUpdate edits the recorded message in place, falling back to
	// creating a new one if the edit fails.
	SyncUpdate SyncMode = "update"

	// SyncRebuild deletes the recorded message (best-effort) and always
	// creates a new one.
	SyncRebuild SyncMode = "rebuild"
)

// TaskListService keeps the per-guild pinned task list consistent with task
// state. "Not configured" is a valid steady state, not an error. After a
// successful Sync the recorded message id refers to the most recently
// created-or-edited message.
type TaskListService interface {
	Sync(ctx context.Context, guildID string, mode SyncMode) error
}
