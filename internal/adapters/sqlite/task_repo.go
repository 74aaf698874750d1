// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/example/taysr/internal/ports/secondary"
)

// TaskRepository implements secondary.TaskRepository with SQLite.
type TaskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new SQLite task repository.
func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskSelectCols = "task_id, guild_id, goal_id, title, notes, assignee_id, creator_id, due_at, status, created_at, updated_at"

// scanTask scans a task row into a TaskRecord.
func scanTask(scanner interface {
	Scan(dest ...any) error
}) (*secondary.TaskRecord, error) {
	var (
		goalID     sql.NullString
		notes      sql.NullString
		assigneeID sql.NullString
		dueAt      time.Time
		createdAt  time.Time
		updatedAt  time.Time
	)

	record := &secondary.TaskRecord{}
	err := scanner.Scan(
		&record.TaskID, &record.GuildID, &goalID, &record.Title, &notes,
		&assigneeID, &record.CreatorID, &dueAt, &record.Status,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.GoalID = goalID.String
	record.Notes = notes.String
	record.AssigneeID = assigneeID.String
	record.DueAt = dueAt
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)

	return record, nil
}

// Insert persists a new task. A (guild_id, task_id) primary key violation is
// reported as secondary.ErrDuplicateTask: it means the counter and the store
// are out of sync for that guild.
func (r *TaskRepository) Insert(ctx context.Context, task *secondary.TaskRecord) error {
	var goalID, notes, assigneeID sql.NullString

	if task.GoalID != "" {
		goalID = sql.NullString{String: task.GoalID, Valid: true}
	}
	if task.Notes != "" {
		notes = sql.NullString{String: task.Notes, Valid: true}
	}
	if task.AssigneeID != "" {
		assigneeID = sql.NullString{String: task.AssigneeID, Valid: true}
	}

	status := task.Status
	if status == "" {
		status = secondary.StatusOpen
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO tasks (task_id, guild_id, goal_id, title, notes, assignee_id, creator_id, due_at, status) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		task.TaskID, task.GuildID, goalID, task.Title, notes, assigneeID, task.CreatorID, task.DueAt, status,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && isDuplicateKey(sqliteErr) {
			return fmt.Errorf("%w: guild %s task %s", secondary.ErrDuplicateTask, task.GuildID, task.TaskID)
		}
		return fmt.Errorf("failed to insert task: %w", err)
	}

	return nil
}

// isDuplicateKey reports whether a constraint failure is a key collision.
// Other constraint failures (CHECK, NOT NULL) are not duplicates and surface
// as plain insert errors.
func isDuplicateKey(err sqlite3.Error) bool {
	return err.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
		err.ExtendedCode == sqlite3.ErrConstraintUnique
}

// FindOpenByGuild retrieves open tasks for a guild, due date ascending.
func (r *TaskRepository) FindOpenByGuild(ctx context.Context, guildID string) ([]*secondary.TaskRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+taskSelectCols+" FROM tasks WHERE guild_id = ? AND status = ? ORDER BY due_at ASC, task_id ASC",
		guildID, secondary.StatusOpen,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to find open tasks: %w", err)
	}
	defer rows.Close()

	return collectTasks(rows)
}

// FindByGuild retrieves all tasks for a guild regardless of status.
func (r *TaskRepository) FindByGuild(ctx context.Context, guildID string) ([]*secondary.TaskRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+taskSelectCols+" FROM tasks WHERE guild_id = ? ORDER BY task_id ASC",
		guildID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to find tasks: %w", err)
	}
	defer rows.Close()

	return collectTasks(rows)
}

func collectTasks(rows *sql.Rows) ([]*secondary.TaskRecord, error) {
	var tasks []*secondary.TaskRecord
	for rows.Next() {
		record, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}
	return tasks, nil
}

// Ensure TaskRepository implements the interface
var _ secondary.TaskRepository = (*TaskRepository)(nil)
