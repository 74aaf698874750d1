package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/example/taysr/internal/ports/secondary"
)

// ServerConfigRepository implements secondary.ServerConfigRepository with
// SQLite. The cadence and role-id lists are stored as JSON arrays.
type ServerConfigRepository struct {
	db *sql.DB
}

// NewServerConfigRepository creates a new SQLite server config repository.
func NewServerConfigRepository(db *sql.DB) *ServerConfigRepository {
	return &ServerConfigRepository{db: db}
}

const configSelectCols = "guild_id, task_list_channel_id, task_list_message_id, timezone, reminder_cadence, admin_role_ids"

func scanConfig(scanner interface {
	Scan(dest ...any) error
}) (*secondary.ServerConfigRecord, error) {
	var (
		channelID sql.NullString
		messageID sql.NullString
		cadence   string
		roleIDs   string
	)

	record := &secondary.ServerConfigRecord{}
	err := scanner.Scan(&record.GuildID, &channelID, &messageID, &record.Timezone, &cadence, &roleIDs)
	if err != nil {
		return nil, err
	}

	record.TaskListChannelID = channelID.String
	record.TaskListMessageID = messageID.String

	if err := json.Unmarshal([]byte(cadence), &record.ReminderCadence); err != nil {
		return nil, fmt.Errorf("failed to decode reminder cadence: %w", err)
	}
	if err := json.Unmarshal([]byte(roleIDs), &record.AdminRoleIDs); err != nil {
		return nil, fmt.Errorf("failed to decode admin role ids: %w", err)
	}

	return record, nil
}

// Get returns the config for a guild, nil if the guild was never configured.
func (r *ServerConfigRepository) Get(ctx context.Context, guildID string) (*secondary.ServerConfigRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+configSelectCols+" FROM server_configs WHERE guild_id = ?",
		guildID,
	)

	record, err := scanConfig(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get server config: %w", err)
	}

	return record, nil
}

// Upsert creates or replaces the configurable fields for a guild.
func (r *ServerConfigRepository) Upsert(ctx context.Context, cfg *secondary.ServerConfigRecord) error {
	var channelID, messageID sql.NullString
	if cfg.TaskListChannelID != "" {
		channelID = sql.NullString{String: cfg.TaskListChannelID, Valid: true}
	}
	if cfg.TaskListMessageID != "" {
		messageID = sql.NullString{String: cfg.TaskListMessageID, Valid: true}
	}

	timezone := cfg.Timezone
	if timezone == "" {
		timezone = "UTC"
	}

	cadence, err := encodeStrings(cfg.ReminderCadence)
	if err != nil {
		return fmt.Errorf("failed to encode reminder cadence: %w", err)
	}
	roleIDs, err := encodeStrings(cfg.AdminRoleIDs)
	if err != nil {
		return fmt.Errorf("failed to encode admin role ids: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO server_configs (guild_id, task_list_channel_id, task_list_message_id, timezone, reminder_cadence, admin_role_ids)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(guild_id) DO UPDATE SET
			task_list_channel_id = excluded.task_list_channel_id,
			task_list_message_id = excluded.task_list_message_id,
			timezone = excluded.timezone,
			reminder_cadence = excluded.reminder_cadence,
			admin_role_ids = excluded.admin_role_ids,
			updated_at = CURRENT_TIMESTAMP`,
		cfg.GuildID, channelID, messageID, timezone, cadence, roleIDs,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert server config: %w", err)
	}

	return nil
}

// SetListMessageID records the current list message for a guild.
func (r *ServerConfigRepository) SetListMessageID(ctx context.Context, guildID, messageID string) error {
	var value sql.NullString
	if messageID != "" {
		value = sql.NullString{String: messageID, Valid: true}
	}

	result, err := r.db.ExecContext(ctx,
		"UPDATE server_configs SET task_list_message_id = ?, updated_at = CURRENT_TIMESTAMP WHERE guild_id = ?",
		value, guildID,
	)
	if err != nil {
		return fmt.Errorf("failed to set list message id: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("server config for guild %s not found", guildID)
	}

	return nil
}

// List returns all server configs.
func (r *ServerConfigRepository) List(ctx context.Context) ([]*secondary.ServerConfigRecord, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+configSelectCols+" FROM server_configs ORDER BY guild_id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list server configs: %w", err)
	}
	defer rows.Close()

	var configs []*secondary.ServerConfigRecord
	for rows.Next() {
		record, err := scanConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan server config: %w", err)
		}
		configs = append(configs, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate server configs: %w", err)
	}

	return configs, nil
}

func encodeStrings(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Ensure ServerConfigRepository implements the interface
var _ secondary.ServerConfigRepository = (*ServerConfigRepository)(nil)
