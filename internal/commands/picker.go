package commands

import (
	"fmt"
	"strings"

	"github.com/example/taysr/internal/core/render"
)

// OverviewBlocks renders the command overview shown by help and alongside
// the command picker. Planned commands are listed so users can see what is
// coming, marked as in progress.
func OverviewBlocks(registry *Registry) []render.Block {
	blocks := []render.Block{
		render.Text("# 🤖 Taysr\nA task tracker for your server."),
		render.Separator(true, render.SpacingSmall),
	}

	var ready strings.Builder
	for _, cmd := range registry.Implemented() {
		fmt.Fprintf(&ready, "%s `/%s` • %s\n", cmd.Emoji, cmd.Name, cmd.Description)
	}
	blocks = append(blocks, render.Text(ready.String()))

	planned := registry.Planned()
	if len(planned) > 0 {
		var coming strings.Builder
		coming.WriteString("**Coming soon**\n")
		for _, cmd := range planned {
			fmt.Fprintf(&coming, "%s `/%s` • %s\n", cmd.Emoji, cmd.Name, cmd.Description)
		}
		blocks = append(blocks, render.Separator(false, render.SpacingSmall))
		blocks = append(blocks, render.Text(coming.String()))
	}

	return blocks
}

// PickerOption is one entry of the command picker select menu.
type PickerOption struct {
	Label       string
	Value       string
	Description string
	Emoji       string
}

// PickerOptions lists every command as a picker option, implemented first.
func PickerOptions(registry *Registry) []PickerOption {
	var out []PickerOption
	for _, cmd := range append(registry.Implemented(), registry.Planned()...) {
		label := cmd.Name
		if !cmd.Implemented {
			label = cmd.Name + " (soon)"
		}
		out = append(out, PickerOption{
			Label:       label,
			Value:       cmd.Name,
			Description: cmd.Description,
			Emoji:       cmd.Emoji,
		})
	}
	return out
}
