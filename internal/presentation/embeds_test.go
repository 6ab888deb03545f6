package presentation

import (
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitewatch/internal/domain"
)

func Test_dashboardEmbed(t *testing.T) {
	embed := dashboardEmbed(3, 42)

	assert.Equal(t, "Website Monitor Dashboard", embed.Title)
	require.Len(t, embed.Fields, 2)
	assert.Equal(t, "Active Monitors", embed.Fields[0].Name)
	assert.Equal(t, "3 websites", embed.Fields[0].Value)
	assert.Equal(t, "Subscribers", embed.Fields[1].Name)
	assert.Equal(t, "42 users", embed.Fields[1].Value)
}

func Test_statusEmbed(t *testing.T) {
	now := time.Now()
	statuses := []domain.SiteStatus{
		{URL: "https://up.example.com", Up: true, CheckedAt: now, Known: true},
		{URL: "https://down.example.com", Up: false, CheckedAt: now, Known: true},
		{URL: "https://new.example.com"},
	}

	embed := statusEmbed(statuses)

	assert.Equal(t, "Website Status", embed.Title)
	require.Len(t, embed.Fields, 3)
	assert.Equal(t, "https://up.example.com", embed.Fields[0].Name)
	assert.Equal(t, "🟢 Online", embed.Fields[0].Value)
	assert.Equal(t, "🔴 Offline", embed.Fields[1].Value)
	assert.Equal(t, "⚪ Not checked yet", embed.Fields[2].Value)
}

func Test_availabilityEmbed(t *testing.T) {
	embed := availabilityEmbed("100", "https://example.com")

	assert.Equal(t, "🟢 Website Available!", embed.Title)
	assert.Contains(t, embed.Description, "<@100>")
	assert.Contains(t, embed.Description, "https://example.com")
}

func Test_dashboardComponents_NotSubscribed(t *testing.T) {
	components := dashboardComponents(false)

	require.Len(t, components, 1)
	row, ok := components[0].(discordgo.ActionsRow)
	require.True(t, ok)
	require.Len(t, row.Components, 2)

	toggle, ok := row.Components[0].(discordgo.Button)
	require.True(t, ok)
	assert.Equal(t, "Subscribe", toggle.Label)
	assert.Equal(t, discordgo.SuccessButton, toggle.Style)
	assert.Equal(t, customIDSubscribe, toggle.CustomID)

	status, ok := row.Components[1].(discordgo.Button)
	require.True(t, ok)
	assert.Equal(t, "View Status", status.Label)
	assert.Equal(t, discordgo.PrimaryButton, status.Style)
	assert.Equal(t, customIDStatus, status.CustomID)
}

func Test_dashboardComponents_Subscribed(t *testing.T) {
	components := dashboardComponents(true)

	row, ok := components[0].(discordgo.ActionsRow)
	require.True(t, ok)

	toggle, ok := row.Components[0].(discordgo.Button)
	require.True(t, ok)
	assert.Equal(t, "Unsubscribe", toggle.Label)
	assert.Equal(t, discordgo.DangerButton, toggle.Style)
	assert.Equal(t, customIDUnsubscribe, toggle.CustomID)
}
