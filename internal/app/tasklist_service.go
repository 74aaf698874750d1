package app

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/example/taysr/internal/core/render"
	"github.com/example/taysr/internal/ports/primary"
	"github.com/example/taysr/internal/ports/secondary"
)

// TaskListServiceImpl implements the TaskListService interface. It owns the
// reconciliation of each guild's pinned list message with task state.
type TaskListServiceImpl struct {
	taskRepo    secondary.TaskRepository
	configRepo  secondary.ServerConfigRepository
	channels    secondary.ChannelProvider
	commandName string
	now         func() time.Time

	// Syncs for the same guild serialize so concurrent task creations
	// cannot interleave edit/create against the same message.
	mu     sync.Mutex
	guilds map[string]*sync.Mutex
}

// NewTaskListService creates a new TaskListService with injected dependencies.
func NewTaskListService(
	taskRepo secondary.TaskRepository,
	configRepo secondary.ServerConfigRepository,
	channels secondary.ChannelProvider,
	commandName string,
) *TaskListServiceImpl {
	return &TaskListServiceImpl{
		taskRepo:    taskRepo,
		configRepo:  configRepo,
		channels:    channels,
		commandName: commandName,
		now:         time.Now,
		guilds:      make(map[string]*sync.Mutex),
	}
}

func (s *TaskListServiceImpl) guildLock(guildID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.guilds[guildID]
	if !ok {
		lock = &sync.Mutex{}
		s.guilds[guildID] = lock
	}
	return lock
}

// Sync reconciles the guild's pinned list message with current task state.
// An unconfigured guild is a no-op, not an error. In update mode the recorded
// message is edited in place, falling back to creating a replacement if the
// edit fails for any reason; in rebuild mode the recorded message is deleted
// best-effort and a new one is always created.
func (s *TaskListServiceImpl) Sync(ctx context.Context, guildID string, mode primary.SyncMode) error {
	lock := s.guildLock(guildID)
	lock.Lock()
	defer lock.Unlock()

	cfg, err := s.configRepo.Get(ctx, guildID)
	if err != nil {
		return fmt.Errorf("failed to load server config for guild %s: %w", guildID, err)
	}
	if cfg == nil || cfg.TaskListChannelID == "" {
		return nil
	}

	channel, err := s.channels.FetchChannel(ctx, cfg.TaskListChannelID)
	if err != nil {
		return fmt.Errorf("task list channel %s for guild %s: %w", cfg.TaskListChannelID, guildID, err)
	}
	if !channel.Postable {
		return fmt.Errorf("%w: channel %s for guild %s is not a postable text channel", secondary.ErrChannelUnavailable, cfg.TaskListChannelID, guildID)
	}

	records, err := s.taskRepo.FindOpenByGuild(ctx, guildID)
	if err != nil {
		return fmt.Errorf("failed to load open tasks for guild %s: %w", guildID, err)
	}

	tasks := make([]render.Task, len(records))
	for i, r := range records {
		tasks[i] = render.Task{
			TaskID:     r.TaskID,
			Title:      r.Title,
			AssigneeID: r.AssigneeID,
			DueAt:      r.DueAt,
		}
	}

	blocks := render.Render(tasks, render.Options{
		CommandName: s.commandName,
		Now:         s.now(),
	})

	switch mode {
	case primary.SyncRebuild:
		if cfg.TaskListMessageID != "" {
			if err := s.channels.DeleteMessage(ctx, cfg.TaskListChannelID, cfg.TaskListMessageID); err != nil {
				log.Printf("[tasklist] could not delete old list message %s in guild %s: %v", cfg.TaskListMessageID, guildID, err)
			}
		}
		return s.createAndRecord(ctx, guildID, cfg.TaskListChannelID, blocks)

	default:
		if cfg.TaskListMessageID != "" {
			err := s.channels.EditMessage(ctx, cfg.TaskListChannelID, cfg.TaskListMessageID, blocks)
			if err == nil {
				return nil
			}
			// Any edit failure (message deleted, permissions changed)
			// self-heals by creating a replacement.
			log.Printf("[tasklist] could not edit list message %s in guild %s, recreating: %v", cfg.TaskListMessageID, guildID, err)
		}
		return s.createAndRecord(ctx, guildID, cfg.TaskListChannelID, blocks)
	}
}

// createAndRecord posts a fresh list message, pins it best-effort, and stores
// the new message id.
func (s *TaskListServiceImpl) createAndRecord(ctx context.Context, guildID, channelID string, blocks []render.Block) error {
	messageID, err := s.channels.SendMessage(ctx, channelID, blocks)
	if err != nil {
		return fmt.Errorf("failed to post list message for guild %s: %w", guildID, err)
	}

	if err := s.channels.PinMessage(ctx, channelID, messageID); err != nil {
		log.Printf("[tasklist] could not pin list message %s in guild %s: %v", messageID, guildID, err)
	}

	if err := s.configRepo.SetListMessageID(ctx, guildID, messageID); err != nil {
		return fmt.Errorf("failed to record list message id for guild %s: %w", guildID, err)
	}

	return nil
}

// Ensure TaskListServiceImpl implements the interface
var _ primary.TaskListService = (*TaskListServiceImpl)(nil)
