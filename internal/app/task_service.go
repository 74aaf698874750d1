package app

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/example/taysr/internal/core/task"
	"github.com/example/taysr/internal/ports/primary"
	"github.com/example/taysr/internal/ports/secondary"
)

// TaskServiceImpl implements the TaskService interface.
type TaskServiceImpl struct {
	taskRepo secondary.TaskRepository
	counters primary.CounterService
	taskList primary.TaskListService
}

// NewTaskService creates a new TaskService with injected dependencies.
func NewTaskService(
	taskRepo secondary.TaskRepository,
	counters primary.CounterService,
	taskList primary.TaskListService,
) *TaskServiceImpl {
	return &TaskServiceImpl{
		taskRepo: taskRepo,
		counters: counters,
		taskList: taskList,
	}
}

// CreateTask reserves the next identifier for the guild and commits the task
// under it.
func (s *TaskServiceImpl) CreateTask(ctx context.Context, req primary.CreateTaskRequest) (*primary.CreateTaskResponse, error) {
	if result := task.CanCreateTask(task.CreateTaskContext{
		GuildID: req.GuildID,
		Title:   req.Title,
		Notes:   req.Notes,
	}); !result.Allowed {
		return nil, result.Error()
	}

	taskID, err := s.counters.Reserve(ctx, req.GuildID)
	if err != nil {
		return nil, err
	}

	if err := s.CommitTask(ctx, primary.CommitTaskRequest{
		TaskID:            taskID,
		CreateTaskRequest: req,
	}); err != nil {
		return nil, err
	}

	return &primary.CreateTaskResponse{
		TaskID: taskID,
		Task: &primary.Task{
			TaskID:     taskID,
			GuildID:    req.GuildID,
			Title:      req.Title,
			Notes:      req.Notes,
			AssigneeID: req.AssigneeID,
			CreatorID:  req.CreatorID,
			DueAt:      req.DueAt,
			Status:     secondary.StatusOpen,
		},
	}, nil
}

// CommitTask persists a task under an already-reserved identifier and then
// refreshes the guild's list message. A duplicate identifier means the
// counter and the store have desynchronized: the commit fails and the
// collision is logged for repair, never retried.
func (s *TaskServiceImpl) CommitTask(ctx context.Context, req primary.CommitTaskRequest) error {
	if result := task.CanCreateTask(task.CreateTaskContext{
		GuildID: req.GuildID,
		Title:   req.Title,
		Notes:   req.Notes,
	}); !result.Allowed {
		return result.Error()
	}

	record := &secondary.TaskRecord{
		TaskID:     req.TaskID,
		GuildID:    req.GuildID,
		Title:      req.Title,
		Notes:      req.Notes,
		AssigneeID: req.AssigneeID,
		CreatorID:  req.CreatorID,
		DueAt:      req.DueAt,
		Status:     secondary.StatusOpen,
	}

	if err := s.taskRepo.Insert(ctx, record); err != nil {
		if errors.Is(err, secondary.ErrDuplicateTask) {
			log.Printf("[task] id collision: guild %s task %s already exists, counter needs repair", req.GuildID, req.TaskID)
		}
		return fmt.Errorf("failed to persist task %s: %w", req.TaskID, err)
	}

	// The task exists regardless of whether the list message can be touched.
	if err := s.taskList.Sync(ctx, req.GuildID, primary.SyncUpdate); err != nil {
		log.Printf("[task] created %s but list sync failed for guild %s: %v", req.TaskID, req.GuildID, err)
	}

	return nil
}

// ListOpenTasks retrieves a guild's open tasks, soonest-due first.
func (s *TaskServiceImpl) ListOpenTasks(ctx context.Context, guildID string) ([]*primary.Task, error) {
	records, err := s.taskRepo.FindOpenByGuild(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list open tasks for guild %s: %w", guildID, err)
	}

	tasks := make([]*primary.Task, len(records))
	for i, r := range records {
		tasks[i] = taskFromRecord(r)
	}
	return tasks, nil
}

func taskFromRecord(r *secondary.TaskRecord) *primary.Task {
	return &primary.Task{
		TaskID:     r.TaskID,
		GuildID:    r.GuildID,
		GoalID:     r.GoalID,
		Title:      r.Title,
		Notes:      r.Notes,
		AssigneeID: r.AssigneeID,
		CreatorID:  r.CreatorID,
		DueAt:      r.DueAt,
		Status:     r.Status,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

// Ensure TaskServiceImpl implements the interface
var _ primary.TaskService = (*TaskServiceImpl)(nil)
