package discord

import (
	"context"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/clockhaven/townsquare/internal/app"
	"github.com/clockhaven/townsquare/internal/domain"
)

// HandleMessage feeds control-channel traffic into the interpreter. Webhook
// messages are the expected sender; other bot-authored messages are dropped
// so the bot never reacts to itself.
func (h *Handler) HandleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.GuildID == "" {
		return
	}
	if m.Author != nil && m.Author.Bot && m.WebhookID == "" {
		return
	}

	ch, err := s.State.Channel(m.ChannelID)
	if err != nil {
		if ch, err = s.Channel(m.ChannelID); err != nil {
			return
		}
	}
	if ch.Type != discordgo.ChannelTypeGuildText || !strings.EqualFold(ch.Name, domain.ControlChannelName) {
		return
	}

	g := NewGuild(s, m.GuildID)
	app.HandleControlMessage(context.Background(), g, []byte(m.Content))
}
