// Package app implements the primary ports: application services wiring the
// pure core to the persistence and channel adapters.
package app

import (
	"context"
	"fmt"
	"log"

	"github.com/example/taysr/internal/core/taskid"
	"github.com/example/taysr/internal/ports/primary"
	"github.com/example/taysr/internal/ports/secondary"
)

// CounterServiceImpl implements the CounterService interface: the identifier
// issuer plus the offline repair path.
type CounterServiceImpl struct {
	counterRepo secondary.CounterRepository
	taskRepo    secondary.TaskRepository
}

// NewCounterService creates a new CounterService with injected dependencies.
func NewCounterService(
	counterRepo secondary.CounterRepository,
	taskRepo secondary.TaskRepository,
) *CounterServiceImpl {
	return &CounterServiceImpl{
		counterRepo: counterRepo,
		taskRepo:    taskRepo,
	}
}

// Reserve atomically obtains the next task identifier for a guild. Any
// failure of the underlying increment is surfaced as ErrStorageUnavailable:
// no task may be created without a successfully reserved identifier.
func (s *CounterServiceImpl) Reserve(ctx context.Context, guildID string) (string, error) {
	sequence, err := s.counterRepo.IncrementAndFetch(ctx, guildID)
	if err != nil {
		return "", fmt.Errorf("%w: failed to reserve task id for guild %s: %v", secondary.ErrStorageUnavailable, guildID, err)
	}

	return taskid.Format(sequence), nil
}

// Repair resynchronizes a guild's counter to the maximum numeric suffix
// among its existing task ids (0 if none). Last-writer-wins: running this
// concurrently with active creation for the same guild can reintroduce the
// race it exists to fix, so it is an out-of-band maintenance action only.
func (s *CounterServiceImpl) Repair(ctx context.Context, guildID string) (*primary.CounterRepairResult, error) {
	tasks, err := s.taskRepo.FindByGuild(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks for guild %s: %w", guildID, err)
	}

	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.TaskID
	}
	max := taskid.MaxSuffix(ids)

	previous, err := s.counterRepo.Get(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to read counter for guild %s: %w", guildID, err)
	}

	if err := s.counterRepo.Set(ctx, guildID, max); err != nil {
		return nil, fmt.Errorf("failed to overwrite counter for guild %s: %w", guildID, err)
	}

	log.Printf("[counter] repaired guild %s: sequence %d -> %d (%d tasks)", guildID, previous, max, len(tasks))

	return &primary.CounterRepairResult{
		GuildID:          guildID,
		PreviousSequence: previous,
		NewSequence:      max,
		TaskCount:        len(tasks),
	}, nil
}

// Ensure CounterServiceImpl implements the interface
var _ primary.CounterService = (*CounterServiceImpl)(nil)
