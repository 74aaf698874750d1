package primary

import (
	"context"

	"github.com/example/taysr/internal/core/render"
)

// AssignmentChoice is the user's answer to the assignment prompt.
type AssignmentChoice string

const (
	// ChoiceAssign moves the flow to assignee selection.
	ChoiceAssign AssignmentChoice = "assign"
	// ChoiceUnassigned commits the task without an assignee.
	ChoiceUnassigned AssignmentChoice = "unassigned"
)

// CreationFlowService drives the interactive task creation state machine:
// CollectingInput -> AwaitingAssignmentChoice -> {AwaitingAssigneeSelection |
// Unassigned} -> Persisted. Each suspend point has a bounded wait; timing out
// after input was collected commits the task unassigned (timeout is an
// implicit default, not cancellation). Each operation returns a display
// payload for the interaction layer to present.
type CreationFlowService interface {
	// BeginCreation describes the input modal for a new creation flow.
	BeginCreation(userID, guildID string) *ModalPrompt

	// SubmitDetails validates the modal fields, reserves a task identifier
	// and suspends at the assignment choice. A validation failure returns
	// Invalid with re-prompt blocks and no side effect.
	SubmitDetails(ctx context.Context, req SubmitDetailsRequest) (*SubmitDetailsResult, error)

	// ChooseAssignment advances a suspended flow: ChoiceUnassigned commits
	// immediately, ChoiceAssign suspends at assignee selection.
	ChooseAssignment(ctx context.Context, taskID string, choice AssignmentChoice) (*FlowResult, error)

	// SelectAssignee commits a suspended flow with the chosen assignee.
	SelectAssignee(ctx context.Context, taskID, assigneeID string) (*FlowResult, error)
}

// ModalPrompt describes the creation input modal.
type ModalPrompt struct {
	Title  string
	Fields []ModalField
}

// ModalField is one text input of the creation modal.
type ModalField struct {
	ID          string
	Label       string
	Placeholder string
	Required    bool
	MaxLength   int
	Paragraph   bool
}

// Creation modal field identifiers.
const (
	FieldTitle    = "task-title"
	FieldDateTime = "task-datetime"
	FieldNotes    = "task-notes"
)

// SubmitDetailsRequest carries the submitted modal fields. Notify, when set,
// is invoked with a display payload if the flow later commits on timeout so
// the interaction layer can update its reply.
type SubmitDetailsRequest struct {
	GuildID  string
	UserID   string
	Title    string
	DueInput string
	Notes    string
	Notify   func(blocks []render.Block)
}

// SubmitDetailsResult is the payload after modal submission.
type SubmitDetailsResult struct {
	// TaskID is the reserved identifier; empty when Invalid.
	TaskID string
	Blocks []render.Block
	// Invalid marks a validation failure: re-prompt, nothing reserved or
	// persisted.
	Invalid bool
}

// FlowResult is the payload after an assignment-step transition.
type FlowResult struct {
	TaskID string
	Blocks []render.Block
	// NeedsAssigneeSelect asks the interaction layer to present an
	// assignee picker.
	NeedsAssigneeSelect bool
}
