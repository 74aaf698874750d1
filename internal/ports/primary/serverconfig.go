package primary

import "context"

// ServerConfigService manages per-guild configuration.
type ServerConfigService interface {
	// SetListChannel designates the channel for the pinned task list. The
	// previous list message, if any, is deleted best-effort, the stored
	// message id is cleared, and the list is rebuilt in the new channel.
	SetListChannel(ctx context.Context, guildID, channelID string) error

	// Get returns the config for a guild, or nil if the guild has never
	// been configured.
	Get(ctx context.Context, guildID string) (*ServerConfig, error)
}

// ServerConfig is the per-guild configuration at the port boundary.
type ServerConfig struct {
	GuildID           string
	TaskListChannelID string
	TaskListMessageID string
	Timezone          string
	ReminderCadence   []string
	AdminRoleIDs      []string
}
