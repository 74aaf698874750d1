package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/example/taysr/internal/core/render"
	"github.com/example/taysr/internal/core/task"
	"github.com/example/taysr/internal/ports/primary"
	"github.com/example/taysr/internal/ports/secondary"
)

// Bounded waits for the interactive steps after modal submission. A flow
// that stalls at either step commits unassigned rather than losing the
// user's input.
const (
	DefaultChoiceTimeout = 60 * time.Second
	DefaultSelectTimeout = 60 * time.Second
)

// ErrFlowNotFound is returned when an assignment interaction references a
// flow that never existed or already finished.
var ErrFlowNotFound = errors.New("task creation session not found or expired")

// pendingFlow is one suspended creation between modal submission and commit.
type pendingFlow struct {
	mu     sync.Mutex
	done   bool
	timer  *time.Timer
	req    primary.CreateTaskRequest
	notify func(blocks []render.Block)
}

// CreationFlowServiceImpl implements the CreationFlowService interface. It
// holds suspended flows in memory keyed by the reserved task id; a restart
// drops suspended flows, which is acceptable because nothing is persisted
// until commit.
type CreationFlowServiceImpl struct {
	tasks      primary.TaskService
	counters   primary.CounterService
	configRepo secondary.ServerConfigRepository

	choiceTimeout time.Duration
	selectTimeout time.Duration

	mu      sync.Mutex
	pending map[string]*pendingFlow
}

// NewCreationFlowService creates a new CreationFlowService with injected
// dependencies.
func NewCreationFlowService(
	tasks primary.TaskService,
	counters primary.CounterService,
	configRepo secondary.ServerConfigRepository,
) *CreationFlowServiceImpl {
	return &CreationFlowServiceImpl{
		tasks:         tasks,
		counters:      counters,
		configRepo:    configRepo,
		choiceTimeout: DefaultChoiceTimeout,
		selectTimeout: DefaultSelectTimeout,
		pending:       make(map[string]*pendingFlow),
	}
}

// SetTimeouts overrides the step timeouts. Used by tests.
func (s *CreationFlowServiceImpl) SetTimeouts(choice, sel time.Duration) {
	s.choiceTimeout = choice
	s.selectTimeout = sel
}

// BeginCreation describes the creation modal. No state is held yet: a user
// who abandons the modal leaves no trace.
func (s *CreationFlowServiceImpl) BeginCreation(userID, guildID string) *primary.ModalPrompt {
	return &primary.ModalPrompt{
		Title: "Create a Task",
		Fields: []primary.ModalField{
			{
				ID:          primary.FieldTitle,
				Label:       "Task Title",
				Placeholder: "What needs to be done?",
				Required:    true,
				MaxLength:   task.MaxTitleLength,
			},
			{
				ID:          primary.FieldDateTime,
				Label:       "Due Date & Time (YYYY-MM-DD HH:mm)",
				Placeholder: "2025-12-31 17:00",
				Required:    true,
				MaxLength:   16,
			},
			{
				ID:          primary.FieldNotes,
				Label:       "Notes (optional)",
				Placeholder: "Any extra details",
				MaxLength:   task.MaxNotesLength,
				Paragraph:   true,
			},
		},
	}
}

// SubmitDetails validates the submitted fields, reserves a task identifier
// and suspends at the assignment choice. Validation failure returns Invalid
// with re-prompt blocks and reserves nothing.
func (s *CreationFlowServiceImpl) SubmitDetails(ctx context.Context, req primary.SubmitDetailsRequest) (*primary.SubmitDetailsResult, error) {
	guard := task.CanCreateTask(task.CreateTaskContext{
		GuildID: req.GuildID,
		Title:   req.Title,
		Notes:   req.Notes,
	})
	if !guard.Allowed {
		return &primary.SubmitDetailsResult{
			Invalid: true,
			Blocks:  invalidInputBlocks(guard.Reason),
		}, nil
	}

	dueAt, err := task.ParseDueDate(req.DueInput, time.Now(), s.guildLocation(ctx, req.GuildID))
	if err != nil {
		return &primary.SubmitDetailsResult{
			Invalid: true,
			Blocks:  invalidInputBlocks(err.Error()),
		}, nil
	}

	taskID, err := s.counters.Reserve(ctx, req.GuildID)
	if err != nil {
		return nil, err
	}

	flow := &pendingFlow{
		req: primary.CreateTaskRequest{
			GuildID:   req.GuildID,
			Title:     req.Title,
			Notes:     req.Notes,
			CreatorID: req.UserID,
			DueAt:     dueAt,
		},
		notify: req.Notify,
	}
	flow.timer = time.AfterFunc(s.choiceTimeout, func() {
		s.commitOnTimeout(taskID)
	})

	s.mu.Lock()
	s.pending[taskID] = flow
	s.mu.Unlock()

	return &primary.SubmitDetailsResult{
		TaskID: taskID,
		Blocks: assignmentChoiceBlocks(taskID, req.Title),
	}, nil
}

// ChooseAssignment advances a suspended flow. ChoiceUnassigned commits
// immediately; ChoiceAssign re-arms the timeout and asks for an assignee.
func (s *CreationFlowServiceImpl) ChooseAssignment(ctx context.Context, taskID string, choice primary.AssignmentChoice) (*primary.FlowResult, error) {
	flow, err := s.lookup(taskID)
	if err != nil {
		return nil, err
	}

	if choice == primary.ChoiceAssign {
		flow.mu.Lock()
		if flow.done {
			flow.mu.Unlock()
			return nil, ErrFlowNotFound
		}
		flow.timer.Reset(s.selectTimeout)
		flow.mu.Unlock()

		return &primary.FlowResult{
			TaskID:              taskID,
			Blocks:              assigneeSelectBlocks(taskID),
			NeedsAssigneeSelect: true,
		}, nil
	}

	return s.commit(ctx, taskID, flow, "")
}

// SelectAssignee commits a suspended flow with the chosen assignee.
func (s *CreationFlowServiceImpl) SelectAssignee(ctx context.Context, taskID, assigneeID string) (*primary.FlowResult, error) {
	flow, err := s.lookup(taskID)
	if err != nil {
		return nil, err
	}
	return s.commit(ctx, taskID, flow, assigneeID)
}

func (s *CreationFlowServiceImpl) lookup(taskID string) (*pendingFlow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	flow, ok := s.pending[taskID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFlowNotFound, taskID)
	}
	return flow, nil
}

// commit finishes a flow exactly once: the timer is stopped, the task is
// persisted, and the flow is dropped from the pending set.
func (s *CreationFlowServiceImpl) commit(ctx context.Context, taskID string, flow *pendingFlow, assigneeID string) (*primary.FlowResult, error) {
	flow.mu.Lock()
	if flow.done {
		flow.mu.Unlock()
		return nil, ErrFlowNotFound
	}
	flow.done = true
	flow.timer.Stop()
	req := flow.req
	req.AssigneeID = assigneeID
	flow.mu.Unlock()

	s.mu.Lock()
	delete(s.pending, taskID)
	s.mu.Unlock()

	if err := s.tasks.CommitTask(ctx, primary.CommitTaskRequest{
		TaskID:            taskID,
		CreateTaskRequest: req,
	}); err != nil {
		return nil, err
	}

	return &primary.FlowResult{
		TaskID: taskID,
		Blocks: createdBlocks(taskID, req.Title, assigneeID, req.DueAt),
	}, nil
}

// commitOnTimeout fires when an assignment step waits too long: the task
// commits unassigned, and the interaction layer is notified if it asked to
// be. The timeout is a default, not a cancellation.
func (s *CreationFlowServiceImpl) commitOnTimeout(taskID string) {
	flow, err := s.lookup(taskID)
	if err != nil {
		return
	}

	result, err := s.commit(context.Background(), taskID, flow, "")
	if err != nil {
		if !errors.Is(err, ErrFlowNotFound) {
			log.Printf("[flow] timeout commit failed for %s: %v", taskID, err)
		}
		return
	}

	log.Printf("[flow] %s committed unassigned after timeout", taskID)
	if flow.notify != nil {
		flow.notify(timeoutBlocks(taskID, result))
	}
}

// guildLocation resolves the guild's configured timezone, falling back to
// the server's local zone when unset or unparseable.
func (s *CreationFlowServiceImpl) guildLocation(ctx context.Context, guildID string) *time.Location {
	cfg, err := s.configRepo.Get(ctx, guildID)
	if err != nil || cfg == nil || cfg.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Printf("[flow] invalid timezone %q for guild %s, using local", cfg.Timezone, guildID)
		return time.Local
	}
	return loc
}

func invalidInputBlocks(reason string) []render.Block {
	return []render.Block{
		render.Text(fmt.Sprintf("❌ **Couldn't create that task**\n%s", reason)),
		render.Text("Run the command again to retry."),
	}
}

func assignmentChoiceBlocks(taskID, title string) []render.Block {
	return []render.Block{
		render.Text(fmt.Sprintf("**%s** • %s", taskID, title)),
		render.Separator(false, render.SpacingSmall),
		render.Text("Who should this task be assigned to? If you don't pick within a minute, it'll be left unassigned."),
	}
}

func assigneeSelectBlocks(taskID string) []render.Block {
	return []render.Block{
		render.Text(fmt.Sprintf("Pick an assignee for **%s**:", taskID)),
	}
}

func createdBlocks(taskID, title, assigneeID string, dueAt time.Time) []render.Block {
	assignee := "Unassigned"
	if assigneeID != "" {
		assignee = fmt.Sprintf("<@%s>", assigneeID)
	}
	return []render.Block{
		render.Text(fmt.Sprintf("✅ **%s created**\n**%s** • due <t:%d:F>\nAssigned to: %s", taskID, title, dueAt.Unix(), assignee)),
	}
}

func timeoutBlocks(taskID string, result *primary.FlowResult) []render.Block {
	blocks := []render.Block{
		render.Text(fmt.Sprintf("⏰ No assignment picked in time, so **%s** was created unassigned.", taskID)),
	}
	return append(blocks, result.Blocks...)
}

// Ensure CreationFlowServiceImpl implements the interface
var _ primary.CreationFlowService = (*CreationFlowServiceImpl)(nil)
