package db

// SchemaSQL is the complete schema for fresh installs. It is the single
// source of truth: repository tests load it via GetSchemaSQL so test and
// production schemas cannot drift.
//
// The goals and reminders tables exist for persisted-state parity with the
// reminder/goal features; no service exercises them yet.
const SchemaSQL = `
-- Tasks (guild-scoped; (guild_id, task_id) is the identity)
CREATE TABLE IF NOT EXISTS tasks (
	task_id TEXT NOT NULL,
	guild_id TEXT NOT NULL,
	goal_id TEXT,
	title TEXT NOT NULL,
	notes TEXT,
	assignee_id TEXT,
	creator_id TEXT NOT NULL,
	due_at DATETIME NOT NULL,
	status TEXT NOT NULL CHECK(status IN ('open', 'complete')) DEFAULT 'open',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (guild_id, task_id)
);

CREATE INDEX IF NOT EXISTS idx_tasks_guild_status ON tasks(guild_id, status);
CREATE INDEX IF NOT EXISTS idx_tasks_assignee ON tasks(assignee_id);
CREATE INDEX IF NOT EXISTS idx_tasks_due_at ON tasks(due_at);

-- Task counters (one per guild; owned by the identifier issuer)
CREATE TABLE IF NOT EXISTS task_counters (
	guild_id TEXT PRIMARY KEY,
	sequence INTEGER NOT NULL DEFAULT 0
);

-- Server configs (one per guild; list-channel designation and rendered
-- message bookkeeping; cadence and role lists stored as JSON arrays)
CREATE TABLE IF NOT EXISTS server_configs (
	guild_id TEXT PRIMARY KEY,
	task_list_channel_id TEXT,
	task_list_message_id TEXT,
	timezone TEXT NOT NULL DEFAULT 'UTC',
	reminder_cadence TEXT NOT NULL DEFAULT '[]',
	admin_role_ids TEXT NOT NULL DEFAULT '[]',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Goals (schema parity; not yet exercised)
CREATE TABLE IF NOT EXISTS goals (
	goal_id TEXT PRIMARY KEY,
	guild_id TEXT NOT NULL,
	name TEXT NOT NULL,
	description TEXT,
	status TEXT NOT NULL CHECK(status IN ('active', 'archived')) DEFAULT 'active',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	UNIQUE(guild_id, name)
);

CREATE INDEX IF NOT EXISTS idx_goals_guild ON goals(guild_id);

-- Reminders (schema parity; not yet exercised)
CREATE TABLE IF NOT EXISTS reminders (
	reminder_id TEXT PRIMARY KEY,
	task_id TEXT NOT NULL,
	send_at DATETIME NOT NULL,
	sent_at DATETIME,
	channel_id TEXT,
	status TEXT NOT NULL CHECK(status IN ('pending', 'sent', 'canceled')) DEFAULT 'pending',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_reminders_task ON reminders(task_id);
CREATE INDEX IF NOT EXISTS idx_reminders_status_send_at ON reminders(status, send_at);
`

// GetSchemaSQL returns the authoritative schema. Tests must use this instead
// of hardcoding CREATE TABLE statements.
func GetSchemaSQL() string {
	return SchemaSQL
}
