package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/example/taysr/internal/app"
	"github.com/example/taysr/internal/ports/primary"
	"github.com/example/taysr/internal/ports/secondary"
)

func newTaskService(tasks *mockTaskRepo, counters *mockCounterRepo, list *mockTaskList) *app.TaskServiceImpl {
	return app.NewTaskService(tasks, app.NewCounterService(counters, tasks), list)
}

func TestTaskService_CreateTask(t *testing.T) {
	tasks := newMockTaskRepo()
	list := &mockTaskList{}
	svc := newTaskService(tasks, newMockCounterRepo(), list)

	due := time.Date(2025, 7, 1, 18, 0, 0, 0, time.UTC)
	resp, err := svc.CreateTask(context.Background(), primary.CreateTaskRequest{
		GuildID:   "guild-1",
		Title:     "Book practice space",
		CreatorID: "user-1",
		DueAt:     due,
	})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if resp.TaskID != "T-001" {
		t.Errorf("TaskID = %q, want T-001", resp.TaskID)
	}

	stored := tasks.get("guild-1", "T-001")
	if stored == nil {
		t.Fatal("task was not persisted")
	}
	if stored.Status != secondary.StatusOpen {
		t.Errorf("Status = %q, want open", stored.Status)
	}

	calls := list.syncCalls()
	if len(calls) != 1 || calls[0] != primary.SyncUpdate {
		t.Errorf("sync calls = %v, want one update", calls)
	}
}

func TestTaskService_CreateTaskGuardFailures(t *testing.T) {
	due := time.Date(2025, 7, 1, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		req  primary.CreateTaskRequest
		want string
	}{
		{
			name: "missing guild",
			req:  primary.CreateTaskRequest{Title: "t", CreatorID: "u", DueAt: due},
			want: "server",
		},
		{
			name: "empty title",
			req:  primary.CreateTaskRequest{GuildID: "g", Title: "   ", CreatorID: "u", DueAt: due},
			want: "empty",
		},
		{
			name: "title too long",
			req:  primary.CreateTaskRequest{GuildID: "g", Title: strings.Repeat("x", 101), CreatorID: "u", DueAt: due},
			want: "exceeds",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counters := newMockCounterRepo()
			svc := newTaskService(newMockTaskRepo(), counters, &mockTaskList{})

			_, err := svc.CreateTask(context.Background(), tt.req)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
			// Rejected input must not consume an identifier.
			if seq, _ := counters.Get(context.Background(), tt.req.GuildID); seq != 0 {
				t.Errorf("counter advanced to %d on rejected input", seq)
			}
		})
	}
}

func TestTaskService_CommitTaskDuplicateIsFatal(t *testing.T) {
	tasks := newMockTaskRepo()
	list := &mockTaskList{}
	svc := newTaskService(tasks, newMockCounterRepo(), list)
	ctx := context.Background()

	due := time.Date(2025, 7, 1, 18, 0, 0, 0, time.UTC)
	req := primary.CommitTaskRequest{
		TaskID: "T-001",
		CreateTaskRequest: primary.CreateTaskRequest{
			GuildID: "guild-1", Title: "first", CreatorID: "u", DueAt: due,
		},
	}
	if err := svc.CommitTask(ctx, req); err != nil {
		t.Fatalf("CommitTask failed: %v", err)
	}

	req.Title = "second"
	err := svc.CommitTask(ctx, req)
	if !errors.Is(err, secondary.ErrDuplicateTask) {
		t.Fatalf("expected ErrDuplicateTask, got %v", err)
	}

	// The original task is untouched and no extra sync happened.
	if got := tasks.get("guild-1", "T-001").Title; got != "first" {
		t.Errorf("stored title = %q, want first", got)
	}
	if calls := list.syncCalls(); len(calls) != 1 {
		t.Errorf("sync calls = %d, want 1", len(calls))
	}
}

func TestTaskService_CommitTaskSyncFailureIsNonFatal(t *testing.T) {
	tasks := newMockTaskRepo()
	list := &mockTaskList{syncErr: errors.New("channel is gone")}
	svc := newTaskService(tasks, newMockCounterRepo(), list)

	due := time.Date(2025, 7, 1, 18, 0, 0, 0, time.UTC)
	err := svc.CommitTask(context.Background(), primary.CommitTaskRequest{
		TaskID: "T-001",
		CreateTaskRequest: primary.CreateTaskRequest{
			GuildID: "guild-1", Title: "t", CreatorID: "u", DueAt: due,
		},
	})
	if err != nil {
		t.Fatalf("CommitTask should succeed despite sync failure, got %v", err)
	}
	if tasks.get("guild-1", "T-001") == nil {
		t.Error("task was not persisted")
	}
}

func TestTaskService_ListOpenTasks(t *testing.T) {
	tasks := newMockTaskRepo()
	svc := newTaskService(tasks, newMockCounterRepo(), &mockTaskList{})
	ctx := context.Background()

	due := time.Date(2025, 7, 1, 18, 0, 0, 0, time.UTC)
	if err := tasks.Insert(ctx, &secondary.TaskRecord{
		TaskID: "T-001", GuildID: "guild-1", Title: "open one", CreatorID: "u",
		DueAt: due, Status: secondary.StatusOpen,
	}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := tasks.Insert(ctx, &secondary.TaskRecord{
		TaskID: "T-002", GuildID: "guild-1", Title: "done", CreatorID: "u",
		DueAt: due, Status: secondary.StatusComplete,
	}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	open, err := svc.ListOpenTasks(ctx, "guild-1")
	if err != nil {
		t.Fatalf("ListOpenTasks failed: %v", err)
	}
	if len(open) != 1 || open[0].TaskID != "T-001" {
		t.Errorf("unexpected open tasks: %+v", open)
	}
}
