package commands

import (
	"context"
	"fmt"
	"log"
)

// Execute runs a named command through the shared precondition chain:
// unknown commands error, guild-scoped commands refuse DM invocations, and
// planned commands answer with the construction notice. Execution failures
// are logged and answered with a generic message so internals never leak
// into chat.
func Execute(ctx context.Context, registry *Registry, name string, inv *Invocation) error {
	cmd := registry.Get(name)
	if cmd == nil {
		return fmt.Errorf("unknown command %q", name)
	}

	if cmd.RequiresGuild && inv.GuildID == "" {
		return inv.Responder.Reply(GuildOnlyBlocks(cmd.Name))
	}

	if !cmd.Implemented || cmd.Execute == nil {
		return inv.Responder.Reply(ConstructionBlocks(cmd.Name))
	}

	if err := cmd.Execute(ctx, inv); err != nil {
		log.Printf("[commands] /%s failed for user %s in guild %s: %v", cmd.Name, inv.UserID, inv.GuildID, err)
		return inv.Responder.Reply(ErrorBlocks(cmd.Name))
	}

	return nil
}
