// Package discord adapts the application's channel port and interaction
// handling to the Discord API via discordgo.
package discord

import (
	"strings"

	"github.com/example/taysr/internal/core/render"
)

// dividerLine is the visual stand-in for a divider separator; Discord plain
// messages have no native separator element.
const dividerLine = "━━━━━━━━━━━━━━━━━━"

// BlocksToContent flattens a display block sequence into Discord markdown.
// Text blocks keep their content; separators become a divider line or blank
// spacing depending on their divider flag.
func BlocksToContent(blocks []render.Block) string {
	var parts []string
	for _, b := range blocks {
		switch b.Kind {
		case render.KindText:
			parts = append(parts, b.Content)
		case render.KindSeparator:
			if b.Divider {
				parts = append(parts, dividerLine)
			} else {
				parts = append(parts, "")
			}
		}
	}
	return strings.Join(parts, "\n")
}
