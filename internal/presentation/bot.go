package presentation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"

	"sitewatch/internal/usecase"
)

const handlerTimeout = 10 * time.Second

// MonitorBot wires Discord events to application use cases.
type MonitorBot struct {
	session       *discordgo.Session
	subscriptions *usecase.SubscriptionService
	board         *usecase.StatusBoard
}

// NewMonitorBot constructs a bot instance with all supporting services wired up.
func NewMonitorBot(
	session *discordgo.Session,
	subscriptions *usecase.SubscriptionService,
	board *usecase.StatusBoard,
) (*MonitorBot, error) {
	if session == nil {
		return nil, fmt.Errorf("discord session cannot be nil")
	}
	if subscriptions == nil {
		return nil, fmt.Errorf("subscription service cannot be nil")
	}
	if board == nil {
		return nil, fmt.Errorf("status board cannot be nil")
	}

	bot := &MonitorBot{
		session:       session,
		subscriptions: subscriptions,
		board:         board,
	}

	session.AddHandler(bot.onReady)
	session.AddHandler(bot.onInteractionCreate)

	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages

	return bot, nil
}

// Start establishes the connection to Discord.
func (b *MonitorBot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}

	log.Println("Website monitor bot is running!")
	return nil
}

// Stop closes the Discord session.
func (b *MonitorBot) Stop() {
	if b.session != nil {
		if err := b.session.Close(); err != nil {
			log.Printf("Error closing Discord session: %v", err)
		}
	}
}

func (b *MonitorBot) onReady(s *discordgo.Session, event *discordgo.Ready) {
	log.Printf("Logged in as: %v#%v", s.State.User.Username, s.State.User.Discriminator)
}

func (b *MonitorBot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		switch i.ApplicationCommandData().Name {
		case "monitor":
			b.handleMonitor(s, i)
		case "status":
			b.handleStatus(s, i)
		}
	case discordgo.InteractionMessageComponent:
		switch i.MessageComponentData().CustomID {
		case customIDSubscribe:
			b.handleSubscribeButton(s, i)
		case customIDUnsubscribe:
			b.handleUnsubscribeButton(s, i)
		case customIDStatus:
			b.handleStatus(s, i)
		}
	}
}

// RegisterCommands recreates the slash commands used by the bot.
func (b *MonitorBot) RegisterCommands() error {
	existingCommands, err := b.session.ApplicationCommands(b.session.State.User.ID, "")
	if err != nil {
		log.Printf("Error getting existing commands: %v", err)
	} else {
		for _, cmd := range existingCommands {
			if err := b.session.ApplicationCommandDelete(b.session.State.User.ID, "", cmd.ID); err != nil {
				log.Printf("Error deleting command %s: %v", cmd.Name, err)
			}
		}
	}

	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "monitor",
			Description: "Open the Website Monitor dashboard",
		},
		{
			Name:        "status",
			Description: "View current website status",
		},
	}

	for _, cmd := range commands {
		if _, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, "", cmd); err != nil {
			return fmt.Errorf("failed to create command %s: %w", cmd.Name, err)
		}
	}

	return nil
}

func (b *MonitorBot) handleMonitor(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	userID := interactionUserID(i)
	if userID == "" {
		b.respondWithError(s, i, "Could not determine who invoked the command")
		return
	}

	subscribed, err := b.subscriptions.IsSubscribed(ctx, userID)
	if err != nil {
		log.Printf("Failed to look up subscription for user %s: %v", userID, err)
		b.respondWithError(s, i, "Failed to open the monitor dashboard")
		return
	}

	embed, err := b.buildDashboardEmbed(ctx)
	if err != nil {
		log.Printf("Failed to build dashboard for user %s: %v", userID, err)
		b.respondWithError(s, i, "Failed to open the monitor dashboard")
		return
	}

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: dashboardComponents(subscribed),
			Flags:      discordgo.MessageFlagsEphemeral,
		},
	}); err != nil {
		log.Printf("Error responding to interaction: %v", err)
	}
}

func (b *MonitorBot) handleStatus(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{statusEmbed(b.board.Statuses())},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	}); err != nil {
		log.Printf("Error responding to interaction: %v", err)
	}
}

func (b *MonitorBot) handleSubscribeButton(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	userID := interactionUserID(i)
	if userID == "" {
		b.respondWithError(s, i, "Could not determine who pressed the button")
		return
	}

	created, err := b.subscriptions.Subscribe(ctx, userID)
	if errors.Is(err, usecase.ErrSubscriberCapReached) {
		b.respondWithError(s, i, "The subscriber limit has been reached; please try again later")
		return
	}
	if err != nil {
		log.Printf("Failed to subscribe user %s: %v", userID, err)
		b.respondWithError(s, i, "Failed to subscribe to website monitoring")
		return
	}

	if !created {
		b.respondWithError(s, i, "You are already subscribed!")
		return
	}

	b.refreshDashboard(ctx, s, i, true)
	b.followUp(s, i, "Successfully subscribed to website monitoring!")
}

func (b *MonitorBot) handleUnsubscribeButton(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	userID := interactionUserID(i)
	if userID == "" {
		b.respondWithError(s, i, "Could not determine who pressed the button")
		return
	}

	removed, err := b.subscriptions.Unsubscribe(ctx, userID)
	if err != nil {
		log.Printf("Failed to unsubscribe user %s: %v", userID, err)
		b.respondWithError(s, i, "Failed to unsubscribe from website monitoring")
		return
	}

	if !removed {
		b.respondWithError(s, i, "You are not subscribed!")
		return
	}

	b.refreshDashboard(ctx, s, i, false)
	b.followUp(s, i, "Successfully unsubscribed from website monitoring!")
}

// refreshDashboard acknowledges a button press by rewriting the dashboard
// message with up-to-date counts and the toggled button.
func (b *MonitorBot) refreshDashboard(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, subscribed bool) {
	embed, err := b.buildDashboardEmbed(ctx)
	if err != nil {
		log.Printf("Failed to rebuild dashboard: %v", err)
		return
	}

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: dashboardComponents(subscribed),
		},
	}); err != nil {
		log.Printf("Error updating dashboard message: %v", err)
	}
}

func (b *MonitorBot) buildDashboardEmbed(ctx context.Context) (*discordgo.MessageEmbed, error) {
	count, err := b.subscriptions.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count subscribers: %w", err)
	}

	return dashboardEmbed(b.board.MonitorCount(), count), nil
}

func (b *MonitorBot) followUp(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	if _, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: message,
		Flags:   discordgo.MessageFlagsEphemeral,
	}); err != nil {
		log.Printf("Error sending followup: %v", err)
	}
}

func (b *MonitorBot) respondWithError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	}); err != nil {
		log.Printf("Error responding to interaction: %v", err)
	}
}

// interactionUserID resolves the invoking user for both guild and DM
// interactions.
func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
