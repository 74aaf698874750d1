package commands

import (
	"context"
	"fmt"

	"github.com/example/taysr/internal/core/render"
	"github.com/example/taysr/internal/ports/primary"
)

// OptionChannel is the channel option name of the set-channel command.
const OptionChannel = "channel"

// Services are the primary ports the built-in commands run against.
type Services struct {
	Flow     primary.CreationFlowService
	Configs  primary.ServerConfigService
	TaskList primary.TaskListService
}

// DefaultRegistry builds the full command surface: the implemented commands
// wired to services, and the planned ones that answer with the construction
// notice until they ship.
func DefaultRegistry(svc Services) (*Registry, error) {
	registry := NewRegistry()

	implemented := []*Command{
		{
			Metadata: Metadata{
				Name:          "create",
				Emoji:         "📝",
				Description:   "Create a new task",
				Implemented:   true,
				RequiresGuild: true,
			},
			Execute: func(ctx context.Context, inv *Invocation) error {
				return inv.Responder.ShowModal(svc.Flow.BeginCreation(inv.UserID, inv.GuildID))
			},
		},
		{
			Metadata: Metadata{
				Name:          "set-channel",
				Emoji:         "📌",
				Description:   "Choose the channel for the pinned task list",
				Implemented:   true,
				RequiresGuild: true,
			},
			Execute: func(ctx context.Context, inv *Invocation) error {
				channelID := inv.Options[OptionChannel]
				if channelID == "" {
					channelID = inv.ChannelID
				}
				if err := svc.Configs.SetListChannel(ctx, inv.GuildID, channelID); err != nil {
					return err
				}
				return inv.Responder.Reply([]render.Block{
					render.Text(fmt.Sprintf("📌 Task list will now live in <#%s>.", channelID)),
				})
			},
		},
		{
			Metadata: Metadata{
				Name:          "refresh",
				Emoji:         "🔄",
				Description:   "Rebuild the pinned task list",
				Implemented:   true,
				RequiresGuild: true,
			},
			Execute: func(ctx context.Context, inv *Invocation) error {
				if err := svc.TaskList.Sync(ctx, inv.GuildID, primary.SyncRebuild); err != nil {
					return err
				}
				return inv.Responder.Reply([]render.Block{
					render.Text("🔄 Task list rebuilt."),
				})
			},
		},
		{
			Metadata: Metadata{
				Name:        "help",
				Emoji:       "❓",
				Description: "Show what Taysr can do",
				Implemented: true,
			},
			Execute: func(ctx context.Context, inv *Invocation) error {
				return inv.Responder.Reply(OverviewBlocks(registry))
			},
		},
	}

	planned := []Metadata{
		{Name: "take", Emoji: "🙋", Description: "Take an unassigned task", RequiresGuild: true},
		{Name: "complete", Emoji: "✅", Description: "Mark a task complete", RequiresGuild: true},
		{Name: "assign", Emoji: "👉", Description: "Assign a task to someone", RequiresGuild: true},
		{Name: "unassign", Emoji: "🤷", Description: "Remove a task's assignee", RequiresGuild: true},
		{Name: "edit", Emoji: "✏️", Description: "Edit a task", RequiresGuild: true},
		{Name: "delete", Emoji: "🗑️", Description: "Delete a task", RequiresGuild: true},
		{Name: "list", Emoji: "📋", Description: "List open tasks", RequiresGuild: true},
		{Name: "set-timezone", Emoji: "🌍", Description: "Set the server timezone", RequiresGuild: true},
		{Name: "set-reminders", Emoji: "⏰", Description: "Configure due-date reminders", RequiresGuild: true},
	}

	for _, cmd := range implemented {
		if err := registry.Register(cmd); err != nil {
			return nil, err
		}
	}
	for _, meta := range planned {
		if err := registry.Register(&Command{Metadata: meta}); err != nil {
			return nil, err
		}
	}

	return registry, nil
}
