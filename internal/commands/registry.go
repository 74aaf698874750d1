// Package commands defines the bot's command surface: metadata, the ordered
// registry, and platform-independent execution. The interaction layer
// translates registry entries into slash commands and picker options.
package commands

import (
	"context"
	"fmt"

	"github.com/example/taysr/internal/core/render"
	"github.com/example/taysr/internal/ports/primary"
)

// Metadata describes a command for registration and the command picker.
type Metadata struct {
	Name          string
	Emoji         string
	Description   string
	Implemented   bool
	RequiresGuild bool
}

// Responder is the reply surface handed to a command execution. All replies
// are ephemeral to the invoking user; only the pinned list is public.
type Responder interface {
	// Reply sends the initial response.
	Reply(blocks []render.Block) error

	// Update replaces the previous response.
	Update(blocks []render.Block) error

	// ShowModal presents an input modal. Only valid as the initial
	// response to an interaction.
	ShowModal(prompt *primary.ModalPrompt) error
}

// Invocation carries one command invocation from the interaction layer.
type Invocation struct {
	GuildID   string
	UserID    string
	ChannelID string
	// Options holds named option values from the slash command.
	Options map[string]string
	// FromPicker is set when the command was chosen from the command
	// picker rather than invoked directly.
	FromPicker bool
	Responder  Responder
}

// Command pairs metadata with an execute function. Planned commands have no
// execute function; the executor answers for them.
type Command struct {
	Metadata
	Execute func(ctx context.Context, inv *Invocation) error
}

// Registry holds all known commands in registration order.
type Registry struct {
	order  []string
	byName map[string]*Command
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Command)}
}

// Register adds a command. Duplicate names are a programming error.
func (r *Registry) Register(cmd *Command) error {
	if cmd.Name == "" {
		return fmt.Errorf("command name must not be empty")
	}
	if _, exists := r.byName[cmd.Name]; exists {
		return fmt.Errorf("command %q registered twice", cmd.Name)
	}
	r.order = append(r.order, cmd.Name)
	r.byName[cmd.Name] = cmd
	return nil
}

// Get returns the named command, or nil.
func (r *Registry) Get(name string) *Command {
	return r.byName[name]
}

// All returns every command in registration order.
func (r *Registry) All() []*Command {
	out := make([]*Command, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}

// Implemented returns the commands that can actually run.
func (r *Registry) Implemented() []*Command {
	var out []*Command
	for _, cmd := range r.All() {
		if cmd.Implemented {
			out = append(out, cmd)
		}
	}
	return out
}

// Planned returns the commands that exist only as picker placeholders.
func (r *Registry) Planned() []*Command {
	var out []*Command
	for _, cmd := range r.All() {
		if !cmd.Implemented {
			out = append(out, cmd)
		}
	}
	return out
}
