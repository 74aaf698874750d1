// Package task contains the pure business logic for task creation.
// Guards are pure functions that evaluate preconditions without side effects.
package task

import (
	"fmt"
	"strings"
)

// MaxTitleLength matches the input field limit of the creation modal.
const MaxTitleLength = 100

// MaxNotesLength matches the notes field limit of the creation modal.
const MaxNotesLength = 500

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// CreateTaskContext provides context for task creation guards.
type CreateTaskContext struct {
	GuildID string
	Title   string
	Notes   string
}

// CanCreateTask evaluates whether a task can be created.
// Rules:
// - Guild context is required
// - Title must be non-empty and within the field limit
// - Notes must be within the field limit
func CanCreateTask(ctx CreateTaskContext) GuardResult {
	if ctx.GuildID == "" {
		return GuardResult{
			Allowed: false,
			Reason:  "tasks can only be created in a server",
		}
	}

	title := strings.TrimSpace(ctx.Title)
	if title == "" {
		return GuardResult{
			Allowed: false,
			Reason:  "task title must not be empty",
		}
	}
	if len(title) > MaxTitleLength {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("task title exceeds %d characters", MaxTitleLength),
		}
	}

	if len(ctx.Notes) > MaxNotesLength {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("task notes exceed %d characters", MaxNotesLength),
		}
	}

	return GuardResult{Allowed: true}
}
