package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/example/taysr/internal/core/render"
	"github.com/example/taysr/internal/ports/secondary"
)

// session is the slice of discordgo.Session the provider needs. Narrowed for
// tests.
type session interface {
	Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEditComplex(m *discordgo.MessageEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error
	ChannelMessagePin(channelID, messageID string, options ...discordgo.RequestOption) error
}

// noMentions suppresses every user and role ping. List updates must never
// notify anyone.
var noMentions = &discordgo.MessageAllowedMentions{
	Parse: []discordgo.AllowedMentionType{},
}

// ChannelAdapter implements the ChannelProvider port against Discord.
type ChannelAdapter struct {
	session session
}

// NewChannelAdapter creates a ChannelAdapter backed by a discordgo session.
func NewChannelAdapter(s session) *ChannelAdapter {
	return &ChannelAdapter{session: s}
}

// FetchChannel resolves a channel id and reports whether it is a postable
// text channel.
func (a *ChannelAdapter) FetchChannel(_ context.Context, channelID string) (*secondary.ChannelInfo, error) {
	channel, err := a.session.Channel(channelID)
	if err != nil {
		if isUnknownChannel(err) {
			return nil, fmt.Errorf("%w: %s", secondary.ErrChannelUnavailable, channelID)
		}
		return nil, fmt.Errorf("failed to fetch channel %s: %w", channelID, err)
	}

	postable := channel.Type == discordgo.ChannelTypeGuildText ||
		channel.Type == discordgo.ChannelTypeGuildNews
	return &secondary.ChannelInfo{
		ID:       channel.ID,
		Name:     channel.Name,
		Postable: postable,
	}, nil
}

// SendMessage posts the rendered blocks with mentions suppressed.
func (a *ChannelAdapter) SendMessage(_ context.Context, channelID string, blocks []render.Block) (string, error) {
	msg, err := a.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content:         BlocksToContent(blocks),
		AllowedMentions: noMentions,
	})
	if err != nil {
		if isUnknownChannel(err) {
			return "", fmt.Errorf("%w: %s", secondary.ErrChannelUnavailable, channelID)
		}
		return "", fmt.Errorf("failed to send message to channel %s: %w", channelID, err)
	}
	return msg.ID, nil
}

// EditMessage replaces a message's content in place with mentions suppressed.
func (a *ChannelAdapter) EditMessage(_ context.Context, channelID, messageID string, blocks []render.Block) error {
	content := BlocksToContent(blocks)
	_, err := a.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:         channelID,
		ID:              messageID,
		Content:         &content,
		AllowedMentions: noMentions,
	})
	if err != nil {
		if isUnknownMessage(err) {
			return fmt.Errorf("%w: %s", secondary.ErrMessageNotFound, messageID)
		}
		return fmt.Errorf("failed to edit message %s: %w", messageID, err)
	}
	return nil
}

// DeleteMessage removes a message.
func (a *ChannelAdapter) DeleteMessage(_ context.Context, channelID, messageID string) error {
	if err := a.session.ChannelMessageDelete(channelID, messageID); err != nil {
		if isUnknownMessage(err) {
			return fmt.Errorf("%w: %s", secondary.ErrMessageNotFound, messageID)
		}
		return fmt.Errorf("failed to delete message %s: %w", messageID, err)
	}
	return nil
}

// PinMessage pins a message in its channel.
func (a *ChannelAdapter) PinMessage(_ context.Context, channelID, messageID string) error {
	if err := a.session.ChannelMessagePin(channelID, messageID); err != nil {
		return fmt.Errorf("failed to pin message %s: %w", messageID, err)
	}
	return nil
}

func restErrorCode(err error) (int, bool) {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Message != nil {
		return restErr.Message.Code, true
	}
	return 0, false
}

func isUnknownMessage(err error) bool {
	code, ok := restErrorCode(err)
	return ok && code == discordgo.ErrCodeUnknownMessage
}

func isUnknownChannel(err error) bool {
	code, ok := restErrorCode(err)
	return ok && code == discordgo.ErrCodeUnknownChannel
}

// Ensure ChannelAdapter implements the interface
var _ secondary.ChannelProvider = (*ChannelAdapter)(nil)
