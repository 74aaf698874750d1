// Package primary defines the driving ports: the service interfaces the
// interaction layer and CLI invoke, plus their request/response structs.
package primary

import (
	"context"
	"time"
)

// TaskService defines the primary port for task operations.
type TaskService interface {
	// CreateTask reserves an identifier and commits the task in one step.
	CreateTask(ctx context.Context, req CreateTaskRequest) (*CreateTaskResponse, error)

	// CommitTask persists a task whose identifier was already reserved,
	// then refreshes the guild's task list. List-sync failure does not
	// unwind the persisted task.
	CommitTask(ctx context.Context, req CommitTaskRequest) error

	// ListOpenTasks retrieves a guild's open tasks, soonest-due first.
	ListOpenTasks(ctx context.Context, guildID string) ([]*Task, error)
}

// CreateTaskRequest contains parameters for creating a task.
type CreateTaskRequest struct {
	GuildID    string
	Title      string
	Notes      string // Optional
	AssigneeID string // Optional, empty means unassigned
	CreatorID  string
	DueAt      time.Time
}

// CommitTaskRequest persists a task under a reserved identifier.
type CommitTaskRequest struct {
	TaskID string
	CreateTaskRequest
}

// CreateTaskResponse contains the result of creating a task.
type CreateTaskResponse struct {
	TaskID string
	Task   *Task
}

// Task represents a task entity at the port boundary.
type Task struct {
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
