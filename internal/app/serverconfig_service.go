package app

import (
	"context"
	"fmt"
	"log"

	"github.com/example/taysr/internal/ports/primary"
	"github.com/example/taysr/internal/ports/secondary"
)

// ServerConfigServiceImpl implements the ServerConfigService interface.
type ServerConfigServiceImpl struct {
	configRepo secondary.ServerConfigRepository
	channels   secondary.ChannelProvider
	taskList   primary.TaskListService
}

// NewServerConfigService creates a new ServerConfigService with injected
// dependencies.
func NewServerConfigService(
	configRepo secondary.ServerConfigRepository,
	channels secondary.ChannelProvider,
	taskList primary.TaskListService,
) *ServerConfigServiceImpl {
	return &ServerConfigServiceImpl{
		configRepo: configRepo,
		channels:   channels,
		taskList:   taskList,
	}
}

// SetListChannel designates the channel that carries the pinned task list.
// The previous list message, if any, is deleted best-effort, the stored
// message id is cleared, and the list is rebuilt in the new channel.
func (s *ServerConfigServiceImpl) SetListChannel(ctx context.Context, guildID, channelID string) error {
	if guildID == "" {
		return fmt.Errorf("a guild is required to configure the task list channel")
	}

	channel, err := s.channels.FetchChannel(ctx, channelID)
	if err != nil {
		return fmt.Errorf("cannot use channel %s for guild %s: %w", channelID, guildID, err)
	}
	if !channel.Postable {
		return fmt.Errorf("%w: channel %s is not a postable text channel", secondary.ErrChannelUnavailable, channelID)
	}

	existing, err := s.configRepo.Get(ctx, guildID)
	if err != nil {
		return fmt.Errorf("failed to load server config for guild %s: %w", guildID, err)
	}

	cfg := &secondary.ServerConfigRecord{GuildID: guildID}
	if existing != nil {
		// Preserve everything except the list placement.
		*cfg = *existing
		if existing.TaskListMessageID != "" {
			if err := s.channels.DeleteMessage(ctx, existing.TaskListChannelID, existing.TaskListMessageID); err != nil {
				log.Printf("[config] could not delete old list message %s in guild %s: %v", existing.TaskListMessageID, guildID, err)
			}
		}
	}
	cfg.TaskListChannelID = channelID
	cfg.TaskListMessageID = ""

	if err := s.configRepo.Upsert(ctx, cfg); err != nil {
		return fmt.Errorf("failed to save server config for guild %s: %w", guildID, err)
	}

	return s.taskList.Sync(ctx, guildID, primary.SyncRebuild)
}

// Get returns the config for a guild, or nil if the guild has never been
// configured.
func (s *ServerConfigServiceImpl) Get(ctx context.Context, guildID string) (*primary.ServerConfig, error) {
	record, err := s.configRepo.Get(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to load server config for guild %s: %w", guildID, err)
	}
	if record == nil {
		return nil, nil
	}

	return &primary.ServerConfig{
		GuildID:           record.GuildID,
		TaskListChannelID: record.TaskListChannelID,
		TaskListMessageID: record.TaskListMessageID,
		Timezone:          record.Timezone,
		ReminderCadence:   record.ReminderCadence,
		AdminRoleIDs:      record.AdminRoleIDs,
	}, nil
}

// Ensure ServerConfigServiceImpl implements the interface
var _ primary.ServerConfigService = (*ServerConfigServiceImpl)(nil)
