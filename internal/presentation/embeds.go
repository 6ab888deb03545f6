package presentation

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"sitewatch/internal/domain"
)

const (
	colorGreen = 0x2ECC71
	colorBlue  = 0x3498DB
)

const (
	customIDSubscribe   = "sitewatch:subscribe"
	customIDUnsubscribe = "sitewatch:unsubscribe"
	customIDStatus      = "sitewatch:status"
)

func dashboardEmbed(monitorCount int, subscriberCount int64) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Website Monitor Dashboard",
		Description: "Monitor your favorite websites and subscribe for notifications when they're available!",
		Color:       colorGreen,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Active Monitors",
				Value:  fmt.Sprintf("%d websites", monitorCount),
				Inline: true,
			},
			{
				Name:   "Subscribers",
				Value:  fmt.Sprintf("%d users", subscriberCount),
				Inline: true,
			},
		},
	}
}

func statusEmbed(statuses []domain.SiteStatus) *discordgo.MessageEmbed {
	fields := make([]*discordgo.MessageEmbedField, 0, len(statuses))
	for _, status := range statuses {
		value := "🔴 Offline"
		switch {
		case !status.Known:
			value = "⚪ Not checked yet"
		case status.Up:
			value = "🟢 Online"
		}

		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  status.URL,
			Value: value,
		})
	}

	return &discordgo.MessageEmbed{
		Title:  "Website Status",
		Color:  colorBlue,
		Fields: fields,
	}
}

func availabilityEmbed(userID, url string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🟢 Website Available!",
		Description: fmt.Sprintf("<@%s> The website at %s is now accessible.", userID, url),
		Color:       colorGreen,
	}
}

// dashboardComponents builds the dashboard button row. The first button
// toggles the caller's subscription, so its label depends on their
// current state.
func dashboardComponents(subscribed bool) []discordgo.MessageComponent {
	toggle := discordgo.Button{
		Label:    "Subscribe",
		Style:    discordgo.SuccessButton,
		CustomID: customIDSubscribe,
	}
	if subscribed {
		toggle = discordgo.Button{
			Label:    "Unsubscribe",
			Style:    discordgo.DangerButton,
			CustomID: customIDUnsubscribe,
		}
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				toggle,
				discordgo.Button{
					Label:    "View Status",
					Style:    discordgo.PrimaryButton,
					CustomID: customIDStatus,
				},
			},
		},
	}
}
