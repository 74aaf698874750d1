// Package render contains the pure task-list renderer. It maps a set of open
// tasks to a bounded sequence of display blocks; it performs no I/O and has
// no failure path.
package render

import (
	"fmt"
	"sort"
	"time"

	"github.com/example/taysr/internal/core/taskid"
)

// BlockKind discriminates display block variants.
type BlockKind string

const (
	// KindText is a markdown text block.
	KindText BlockKind = "text"
	// KindSeparator is a visual separator between blocks.
	KindSeparator BlockKind = "separator"
)

// Spacing controls separator size.
type Spacing string

const (
	SpacingSmall Spacing = "small"
	SpacingLarge Spacing = "large"
)

// Block is one unit of the rendered display payload. The interaction layer
// translates blocks into platform messages.
type Block struct {
	Kind    BlockKind
	Content string
	Divider bool
	Spacing Spacing
}

// Text returns a text block with the given markdown content.
func Text(content string) Block {
	return Block{Kind: KindText, Content: content}
}

// Separator returns a separator block.
func Separator(divider bool, spacing Spacing) Block {
	return Block{Kind: KindSeparator, Divider: divider, Spacing: spacing}
}

// Task is the renderer's view of an open task.
type Task struct {
	TaskID     string
	Title      string
	AssigneeID string
	DueAt      time.Time
}

// DefaultMaxBlocks caps the rendered list; Discord rejects messages with
// more components than this.
const DefaultMaxBlocks = 38

// Options configures a render pass.
type Options struct {
	// CommandName is the branded command referenced in hint text.
	CommandName string
	// MaxBlocks caps the block sequence; 0 means DefaultMaxBlocks.
	MaxBlocks int
	// Now stamps the footer's last-updated marker.
	Now time.Time
}

// Render maps open tasks to a display block sequence: one header, either an
// empty notice or one compact block per task with separators, a truncation
// notice once the block cap is reached, and a footer with a last-updated
// marker. Tasks are ordered soonest-due first; equal due dates tie-break by
// ascending task identifier so output is deterministic.
func Render(tasks []Task, opts Options) []Block {
	maxBlocks := opts.MaxBlocks
	if maxBlocks <= 0 {
		maxBlocks = DefaultMaxBlocks
	}

	sorted := make([]Task, len(tasks))
	copy(sorted, tasks)
	sortTasks(sorted)

	blocks := []Block{
		Text("# 📋 Taysr Tasks\nOpen tasks for the team"),
		Separator(true, SpacingLarge),
	}

	if len(sorted) == 0 {
		blocks = append(blocks, Text(fmt.Sprintf("No open tasks. Use `/%s create` to create a new task!", opts.CommandName)))
	} else {
		for _, task := range sorted {
			blocks = append(blocks, taskBlock(task))
			blocks = append(blocks, Separator(false, SpacingSmall))

			if len(blocks) >= maxBlocks {
				blocks = append(blocks, Text("_...and more tasks. Some tasks are hidden due to message limits._"))
				break
			}
		}
	}

	blocks = append(blocks, Separator(true, SpacingSmall))
	blocks = append(blocks, Text(fmt.Sprintf("_Last updated: <t:%d:R> • Use `/%s help` for more information_", opts.Now.Unix(), opts.CommandName)))

	return blocks
}

// taskBlock renders the compact form: id and title, then assignee and a
// relative due-time marker. Notes are omitted from the list view.
func taskBlock(task Task) Block {
	assignee := "Unassigned"
	if task.AssigneeID != "" {
		assignee = fmt.Sprintf("<@%s>", task.AssigneeID)
	}
	return Text(fmt.Sprintf("**%s** • %s\n%s • <t:%d:R>", task.TaskID, task.Title, assignee, task.DueAt.Unix()))
}

// sortTasks orders by due date ascending, tie-breaking by numeric task id
// suffix so T-999 sorts before T-1000.
func sortTasks(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if !tasks[i].DueAt.Equal(tasks[j].DueAt) {
			return tasks[i].DueAt.Before(tasks[j].DueAt)
		}
		ni, iok := taskid.ParseSuffix(tasks[i].TaskID)
		nj, jok := taskid.ParseSuffix(tasks[j].TaskID)
		if iok && jok {
			return ni < nj
		}
		return tasks[i].TaskID < tasks[j].TaskID
	})
}
