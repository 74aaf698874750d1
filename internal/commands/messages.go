package commands

import (
	"fmt"
	"math/rand"

	"github.com/example/taysr/internal/core/render"
)

var constructionArt = "```\n" +
	"   _________________\n" +
	"  /                 \\\n" +
	" |  🚧  UNDER  🚧   |\n" +
	" |   CONSTRUCTION    |\n" +
	"  \\_________________/\n" +
	"         |  |\n" +
	"         |  |\n" +
	"        /____\\\n" +
	"```"

var constructionLines = []string{
	"The crew is still hammering away at this one.",
	"Hard hats required beyond this point.",
	"We're pouring the concrete for this feature right now.",
	"Check back soon, the scaffolding is still up.",
	"The blueprints exist, the walls don't. Yet.",
}

// ConstructionBlocks is the reply for a planned-but-unimplemented command.
func ConstructionBlocks(name string) []render.Block {
	line := constructionLines[rand.Intn(len(constructionLines))]
	return []render.Block{
		render.Text(fmt.Sprintf("**`/%s` isn't ready yet**", name)),
		render.Text(constructionArt),
		render.Text(fmt.Sprintf("_%s_", line)),
	}
}

// GuildOnlyBlocks is the reply when a guild-scoped command runs outside one.
func GuildOnlyBlocks(name string) []render.Block {
	return []render.Block{
		render.Text(fmt.Sprintf("`/%s` only works inside a server.", name)),
	}
}

// ErrorBlocks is the generic failure reply. The underlying error is logged,
// not shown.
func ErrorBlocks(name string) []render.Block {
	return []render.Block{
		render.Text(fmt.Sprintf("Something went wrong. Try using `/%s` directly.", name)),
	}
}
