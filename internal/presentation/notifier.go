package presentation

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// DirectMessageNotifier delivers availability alerts to users over Discord
// direct messages.
type DirectMessageNotifier struct {
	session *discordgo.Session
}

// NewDirectMessageNotifier wires a Discord session to the alert dispatch
// interface expected by the use case layer.
func NewDirectMessageNotifier(session *discordgo.Session) *DirectMessageNotifier {
	return &DirectMessageNotifier{session: session}
}

// SendAvailabilityAlert opens a DM channel with userID and posts the
// availability embed for url.
func (n *DirectMessageNotifier) SendAvailabilityAlert(ctx context.Context, userID, url string) error {
	if n.session == nil {
		return fmt.Errorf("discord session is not initialised")
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	channel, err := n.session.UserChannelCreate(userID)
	if err != nil {
		return fmt.Errorf("failed to open direct message channel: %w", err)
	}

	if _, err := n.session.ChannelMessageSendEmbed(channel.ID, availabilityEmbed(userID, url)); err != nil {
		return fmt.Errorf("failed to send availability alert: %w", err)
	}

	return nil
}

// SendCapReachedNotice tells the operator that the subscriber limit is
// blocking signups.
func (n *DirectMessageNotifier) SendCapReachedNotice(ctx context.Context, adminID string, limit int) error {
	if n.session == nil {
		return fmt.Errorf("discord session is not initialised")
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	channel, err := n.session.UserChannelCreate(adminID)
	if err != nil {
		return fmt.Errorf("failed to open direct message channel: %w", err)
	}

	content := fmt.Sprintf("The subscriber limit of %d users has been reached; new signups are being rejected.", limit)
	if _, err := n.session.ChannelMessageSend(channel.ID, content); err != nil {
		return fmt.Errorf("failed to send cap notice: %w", err)
	}

	return nil
}
