package secondary

import (
	"context"
	"errors"

	"github.com/example/taysr/internal/core/render"
)

// ErrChannelUnavailable is returned when the target channel does not exist
// or is not a postable text channel. The stored channel id is not cleared
// automatically; explicit reconfiguration is required.
var ErrChannelUnavailable = errors.New("channel unavailable")

// ErrMessageNotFound is returned by EditMessage and DeleteMessage when the
// message no longer exists. Callers self-heal by creating a replacement.
var ErrMessageNotFound = errors.New("message not found")

// ChannelInfo describes a resolved channel.
type ChannelInfo struct {
	ID       string
	Name     string
	Postable bool
}

// ChannelProvider is the chat-platform surface the core posts through.
// Implementations must suppress user and role mentions on sent and edited
// messages: list updates never notify anyone.
type ChannelProvider interface {
	// FetchChannel resolves a channel id. Returns ErrChannelUnavailable if
	// the channel does not exist.
	FetchChannel(ctx context.Context, channelID string) (*ChannelInfo, error)

	// SendMessage posts the rendered blocks and returns the new message id.
	SendMessage(ctx context.Context, channelID string, blocks []render.Block) (string, error)

	// EditMessage replaces the content of an existing message in place.
	// Returns ErrMessageNotFound if the message is gone.
	EditMessage(ctx context.Context, channelID, messageID string, blocks []render.Block) error

	// DeleteMessage removes a message. Returns ErrMessageNotFound if it is
	// already gone.
	DeleteMessage(ctx context.Context, channelID, messageID string) error

	// PinMessage pins a message in its channel. Pin failure is non-fatal to
	// callers.
	PinMessage(ctx context.Context, channelID, messageID string) error
}
