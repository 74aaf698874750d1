package discord

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"

	"github.com/example/taysr/internal/commands"
	"github.com/example/taysr/internal/core/render"
	"github.com/example/taysr/internal/ports/primary"
)

// ModalTimeout bounds how long a shown creation modal stays submittable. A
// modal that times out aborts the flow: nothing was reserved, nothing is
// committed.
const ModalTimeout = 5 * time.Minute

// Component custom-id prefixes. The suffix is a modal token or task id.
const (
	customIDModal      = "create-task-modal"
	customIDAssign     = "assign-task"
	customIDUnassigned = "leave-unassigned"
	customIDSelect     = "select-assignee"
	customIDPicker     = "command-picker"
)

// Gateway owns the Discord-facing interaction surface: slash command
// registration and routing of commands, buttons, selects and modal submits
// into the command registry and the creation flow.
type Gateway struct {
	session     *discordgo.Session
	registry    *commands.Registry
	flow        primary.CreationFlowService
	commandName string
	// guildID scopes command registration to one guild when set; empty
	// registers globally.
	guildID string

	mu     sync.Mutex
	modals map[string]modalSession
}

// modalSession tracks one shown creation modal until submit or expiry.
type modalSession struct {
	userID  string
	guildID string
	timer   *time.Timer
}

// NewGateway creates a Gateway. Start must be called after the session is
// open.
func NewGateway(session *discordgo.Session, registry *commands.Registry, flow primary.CreationFlowService, commandName, guildID string) *Gateway {
	return &Gateway{
		session:     session,
		registry:    registry,
		flow:        flow,
		commandName: commandName,
		guildID:     guildID,
		modals:      make(map[string]modalSession),
	}
}

// Start registers the interaction handler and overwrites the application's
// slash commands with the current surface.
func (g *Gateway) Start() error {
	g.session.AddHandler(g.handleInteraction)

	appID := g.session.State.User.ID
	if _, err := g.session.ApplicationCommandBulkOverwrite(appID, g.guildID, g.slashCommands()); err != nil {
		return fmt.Errorf("failed to register slash commands: %w", err)
	}
	log.Printf("[discord] registered %d slash commands", len(g.slashCommands()))
	return nil
}

// slashCommands builds the Discord registrations: one per implemented
// command plus the branded picker command. Planned commands are reachable
// through the picker only.
func (g *Gateway) slashCommands() []*discordgo.ApplicationCommand {
	out := []*discordgo.ApplicationCommand{
		{
			Name:        g.commandName,
			Description: "Browse everything Taysr can do",
		},
	}
	for _, cmd := range g.registry.Implemented() {
		reg := &discordgo.ApplicationCommand{
			Name:        cmd.Name,
			Description: cmd.Description,
		}
		if cmd.Name == "set-channel" {
			reg.Options = []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionChannel,
					Name:        commands.OptionChannel,
					Description: "Channel for the pinned task list",
					Required:    true,
					ChannelTypes: []discordgo.ChannelType{
						discordgo.ChannelTypeGuildText,
						discordgo.ChannelTypeGuildNews,
					},
				},
			}
		}
		out = append(out, reg)
	}
	return out
}

func (g *Gateway) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		g.handleCommand(ctx, i)
	case discordgo.InteractionMessageComponent:
		g.handleComponent(ctx, i)
	case discordgo.InteractionModalSubmit:
		g.handleModalSubmit(ctx, i)
	}
}

func (g *Gateway) handleCommand(ctx context.Context, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()

	if data.Name == g.commandName {
		g.respondPicker(i)
		return
	}

	inv := g.invocation(i, false)
	for _, opt := range data.Options {
		if opt.Type == discordgo.ApplicationCommandOptionChannel {
			inv.Options[opt.Name] = opt.Value.(string)
		} else {
			inv.Options[opt.Name] = fmt.Sprintf("%v", opt.Value)
		}
	}

	if err := commands.Execute(ctx, g.registry, data.Name, inv); err != nil {
		log.Printf("[discord] command %s: %v", data.Name, err)
	}
}

func (g *Gateway) handleComponent(ctx context.Context, i *discordgo.InteractionCreate) {
	data := i.MessageComponentData()
	prefix, suffix, _ := strings.Cut(data.CustomID, ":")

	switch prefix {
	case customIDPicker:
		if len(data.Values) == 0 {
			return
		}
		inv := g.invocation(i, true)
		if err := commands.Execute(ctx, g.registry, data.Values[0], inv); err != nil {
			log.Printf("[discord] picker %s: %v", data.Values[0], err)
		}

	case customIDAssign:
		result, err := g.flow.ChooseAssignment(ctx, suffix, primary.ChoiceAssign)
		if err != nil {
			g.respondFlowError(i, err)
			return
		}
		g.respondUpdate(i, result.Blocks, assigneeSelectComponents(result.TaskID))

	case customIDUnassigned:
		result, err := g.flow.ChooseAssignment(ctx, suffix, primary.ChoiceUnassigned)
		if err != nil {
			g.respondFlowError(i, err)
			return
		}
		g.respondUpdate(i, result.Blocks, nil)

	case customIDSelect:
		if len(data.Values) == 0 {
			return
		}
		result, err := g.flow.SelectAssignee(ctx, suffix, data.Values[0])
		if err != nil {
			g.respondFlowError(i, err)
			return
		}
		g.respondUpdate(i, result.Blocks, nil)
	}
}

func (g *Gateway) handleModalSubmit(ctx context.Context, i *discordgo.InteractionCreate) {
	data := i.ModalSubmitData()
	_, token, _ := strings.Cut(data.CustomID, ":")

	g.mu.Lock()
	session, ok := g.modals[token]
	if ok {
		session.timer.Stop()
		delete(g.modals, token)
	}
	g.mu.Unlock()

	if !ok {
		g.respondEphemeral(i, []render.Block{
			render.Text("That form expired. Run the command again to start over."),
		}, nil)
		return
	}

	fields := modalFields(data)
	result, err := g.flow.SubmitDetails(ctx, primary.SubmitDetailsRequest{
		GuildID:  session.guildID,
		UserID:   session.userID,
		Title:    fields[primary.FieldTitle],
		DueInput: fields[primary.FieldDateTime],
		Notes:    fields[primary.FieldNotes],
		Notify:   g.timeoutNotifier(i),
	})
	if err != nil {
		log.Printf("[discord] modal submit: %v", err)
		g.respondEphemeral(i, []render.Block{
			render.Text("Something went wrong creating that task. Please try again."),
		}, nil)
		return
	}

	if result.Invalid {
		g.respondEphemeral(i, result.Blocks, nil)
		return
	}
	g.respondEphemeral(i, result.Blocks, assignmentChoiceComponents(result.TaskID))
}

// timeoutNotifier edits the ephemeral reply in place when a suspended flow
// commits on timeout, replacing the buttons with the outcome.
func (g *Gateway) timeoutNotifier(i *discordgo.InteractionCreate) func([]render.Block) {
	interaction := i.Interaction
	return func(blocks []render.Block) {
		content := BlocksToContent(blocks)
		empty := []discordgo.MessageComponent{}
		_, err := g.session.InteractionResponseEdit(interaction, &discordgo.WebhookEdit{
			Content:    &content,
			Components: &empty,
		})
		if err != nil {
			log.Printf("[discord] failed to edit reply after timeout: %v", err)
		}
	}
}

// invocation builds a command invocation with a responder bound to this
// interaction.
func (g *Gateway) invocation(i *discordgo.InteractionCreate, fromPicker bool) *commands.Invocation {
	userID := ""
	if i.Member != nil && i.Member.User != nil {
		userID = i.Member.User.ID
	} else if i.User != nil {
		userID = i.User.ID
	}
	return &commands.Invocation{
		GuildID:    i.GuildID,
		UserID:     userID,
		ChannelID:  i.ChannelID,
		Options:    make(map[string]string),
		FromPicker: fromPicker,
		Responder:  &interactionResponder{gateway: g, interaction: i},
	}
}

func (g *Gateway) respondPicker(i *discordgo.InteractionCreate) {
	options := commands.PickerOptions(g.registry)
	menuOptions := make([]discordgo.SelectMenuOption, len(options))
	for idx, opt := range options {
		menuOptions[idx] = discordgo.SelectMenuOption{
			Label:       opt.Label,
			Value:       opt.Value,
			Description: opt.Description,
			Emoji:       &discordgo.ComponentEmoji{Name: opt.Emoji},
		}
	}

	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					MenuType:    discordgo.StringSelectMenu,
					CustomID:    customIDPicker,
					Placeholder: "Pick a command",
					Options:     menuOptions,
				},
			},
		},
	}
	g.respondEphemeral(i, commands.OverviewBlocks(g.registry), components)
}

func (g *Gateway) respondEphemeral(i *discordgo.InteractionCreate, blocks []render.Block, components []discordgo.MessageComponent) {
	err := g.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    BlocksToContent(blocks),
			Components: components,
			Flags:      discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("[discord] failed to respond: %v", err)
	}
}

func (g *Gateway) respondUpdate(i *discordgo.InteractionCreate, blocks []render.Block, components []discordgo.MessageComponent) {
	if components == nil {
		components = []discordgo.MessageComponent{}
	}
	err := g.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    BlocksToContent(blocks),
			Components: components,
		},
	})
	if err != nil {
		log.Printf("[discord] failed to update response: %v", err)
	}
}

func (g *Gateway) respondFlowError(i *discordgo.InteractionCreate, err error) {
	log.Printf("[discord] flow interaction: %v", err)
	g.respondUpdate(i, []render.Block{
		render.Text("That task creation session is no longer active."),
	}, nil)
}

// showModal presents the creation modal under a fresh token. The token is
// evicted after ModalTimeout; a submit against an evicted token is refused,
// which aborts the flow with no side effects.
func (g *Gateway) showModal(i *discordgo.InteractionCreate, prompt *primary.ModalPrompt, userID string) error {
	token := uuid.NewString()

	components := make([]discordgo.MessageComponent, len(prompt.Fields))
	for idx, field := range prompt.Fields {
		style := discordgo.TextInputShort
		if field.Paragraph {
			style = discordgo.TextInputParagraph
		}
		components[idx] = discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:    field.ID,
					Label:       field.Label,
					Style:       style,
					Placeholder: field.Placeholder,
					Required:    field.Required,
					MaxLength:   field.MaxLength,
				},
			},
		}
	}

	err := g.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID:   customIDModal + ":" + token,
			Title:      prompt.Title,
			Components: components,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to show modal: %w", err)
	}

	timer := time.AfterFunc(ModalTimeout, func() {
		g.mu.Lock()
		delete(g.modals, token)
		g.mu.Unlock()
	})
	g.mu.Lock()
	g.modals[token] = modalSession{userID: userID, guildID: i.GuildID, timer: timer}
	g.mu.Unlock()

	return nil
}

// modalFields flattens submitted modal components into field id -> value.
func modalFields(data discordgo.ModalSubmitInteractionData) map[string]string {
	fields := make(map[string]string)
	for _, row := range data.Components {
		actionsRow, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, comp := range actionsRow.Components {
			if input, ok := comp.(*discordgo.TextInput); ok {
				fields[input.CustomID] = input.Value
			}
		}
	}
	return fields
}

func assignmentChoiceComponents(taskID string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Assign to someone",
					Style:    discordgo.PrimaryButton,
					CustomID: customIDAssign + ":" + taskID,
				},
				discordgo.Button{
					Label:    "Leave unassigned",
					Style:    discordgo.SecondaryButton,
					CustomID: customIDUnassigned + ":" + taskID,
				},
			},
		},
	}
}

func assigneeSelectComponents(taskID string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					MenuType:    discordgo.UserSelectMenu,
					CustomID:    customIDSelect + ":" + taskID,
					Placeholder: "Who's taking this?",
				},
			},
		},
	}
}

// interactionResponder adapts one interaction into the command Responder.
type interactionResponder struct {
	gateway     *Gateway
	interaction *discordgo.InteractionCreate
}

func (r *interactionResponder) Reply(blocks []render.Block) error {
	r.gateway.respondEphemeral(r.interaction, blocks, nil)
	return nil
}

func (r *interactionResponder) Update(blocks []render.Block) error {
	content := BlocksToContent(blocks)
	empty := []discordgo.MessageComponent{}
	_, err := r.gateway.session.InteractionResponseEdit(r.interaction.Interaction, &discordgo.WebhookEdit{
		Content:    &content,
		Components: &empty,
	})
	return err
}

func (r *interactionResponder) ShowModal(prompt *primary.ModalPrompt) error {
	userID := ""
	if r.interaction.Member != nil && r.interaction.Member.User != nil {
		userID = r.interaction.Member.User.ID
	} else if r.interaction.User != nil {
		userID = r.interaction.User.ID
	}
	return r.gateway.showModal(r.interaction, prompt, userID)
}

var _ commands.Responder = (*interactionResponder)(nil)
