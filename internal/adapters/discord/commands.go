package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/clockhaven/townsquare/internal/app"
	"github.com/clockhaven/townsquare/internal/core"
	"github.com/clockhaven/townsquare/internal/domain"
)

var commands = []*discordgo.ApplicationCommand{
	{Name: "setup", Description: "Creates the Townsquare category with channels and roles"},
	{Name: "newgame", Description: "Initialize a new game with players in the main channel"},
	{Name: "spectator", Description: "Switch your role to spectator"},
	{Name: "uninstall", Description: "Removes Townsquare channels and roles"},
	{Name: "endgame", Description: "Ends the current game"},
	{Name: "silence", Description: "Mute all players"},
	{Name: "talk", Description: "Unmute all players"},
	{Name: "moveallplayerstomain", Description: "Move all players to the main channel"},
}

// Handler routes gateway events into the app layer.
type Handler struct {
	store        *app.SessionStore
	privateRooms int
}

func NewHandler(store *app.SessionStore, privateRooms int) *Handler {
	return &Handler{store: store, privateRooms: privateRooms}
}

// Register overwrites the global slash-command set.
func (h *Handler) Register(s *discordgo.Session, appID string) error {
	_, err := s.ApplicationCommandBulkOverwrite(appID, "", commands)
	return err
}

func (h *Handler) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	name := i.ApplicationCommandData().Name

	if i.GuildID == "" || i.Member == nil || i.Member.User == nil {
		respond(s, i, "This command must be used in a server!", true)
		return
	}

	// setup and newgame announce publicly, everything else is ephemeral.
	ephemeral := name != "setup" && name != "newgame"
	if err := deferReply(s, i, ephemeral); err != nil {
		log.Error().Str("module", "adapters.discord").Str("command", name).Err(err).Msg("defer failed")
		return
	}

	ctx := context.Background()
	g := NewGuild(s, i.GuildID)
	caller := domain.MemberID(i.Member.User.ID)

	var reply string
	switch name {
	case "setup":
		res, err := app.Setup(ctx, g, h.privateRooms)
		if err != nil {
			log.Error().Str("module", "adapters.discord").Err(err).Msg("setup failed")
			reply = "❌ An error occurred during setup."
			break
		}
		reply = fmt.Sprintf(
			"✅ Townsquare setup complete!\nRoles: <@&%s>, <@&%s>, <@&%s>\nControl channel & webhook created successfully.",
			res.Roles.Host.ID, res.Roles.Spectator.ID, res.Roles.Player.ID)

	case "newgame":
		session, err := app.StartGame(ctx, g, h.store, caller)
		switch {
		case errors.Is(err, app.ErrNotInVoice):
			reply = "❌ You must be in a voice channel to start a game!"
		case errors.Is(err, app.ErrRolesMissing):
			reply = "❌ Please run /setup first to create the necessary roles!"
		case err != nil:
			log.Error().Str("module", "adapters.discord").Err(err).Msg("newgame failed")
			reply = "❌ An error occurred while starting the game."
		default:
			reply = fmt.Sprintf(
				"🎮 **New game started!**\n🎤 Voice Channel: %s\n👑 Host: <@%s>\n🧑‍🤝‍🧑 Players: %d\nPlayers can use /spectator to switch to spectator mode.",
				roomName(g, session.MainRoomID), session.HostID, len(session.PlayerIDs))
		}

	case "spectator":
		err := app.SwitchSpectator(ctx, g, h.store, caller)
		switch {
		case errors.Is(err, app.ErrNoActiveGame):
			reply = "❌ No active game found. Use /newgame to start one!"
		case errors.Is(err, app.ErrRolesMissing):
			reply = "❌ Required roles not found!"
		case errors.Is(err, domain.ErrHostSpectator):
			reply = "❌ The host cannot become a spectator!"
		case err != nil:
			log.Error().Str("module", "adapters.discord").Err(err).Msg("spectator failed")
			reply = "❌ An error occurred."
		default:
			reply = "✅ You are now a spectator!"
		}

	case "endgame":
		err := app.EndGame(ctx, g, h.store)
		if errors.Is(err, app.ErrNoActiveGame) {
			reply = "❌ No active game found. Use /newgame to start one!"
			break
		}
		reply = "🛑 Game ended. Roles cleared."

	case "uninstall":
		if err := app.Uninstall(ctx, g, h.store); err != nil {
			log.Error().Str("module", "adapters.discord").Err(err).Msg("uninstall failed")
			reply = "❌ Failed to uninstall Townsquare."
			break
		}
		reply = "🧹 Townsquare uninstalled successfully!"

	case "silence":
		if _, err := app.SetPlayersMuted(ctx, g, true); err != nil {
			reply = "❌ Please run /setup first to create the necessary roles!"
			break
		}
		reply = "🔇 All players muted."

	case "talk":
		if _, err := app.SetPlayersMuted(ctx, g, false); err != nil {
			reply = "❌ Please run /setup first to create the necessary roles!"
			break
		}
		reply = "🗣️ Players can talk."

	case "moveallplayerstomain":
		moved, err := app.MoveAllToMain(ctx, g, caller)
		switch {
		case errors.Is(err, app.ErrNotHost):
			reply = "⛔ Only the **Host** can do this."
		case err != nil:
			log.Error().Str("module", "adapters.discord").Err(err).Msg("moveall failed")
			reply = "❌ Failed to move members."
		default:
			reply = fmt.Sprintf("✅ Moved **%d** players & spectators to the main hall.", moved)
		}

	default:
		reply = "❌ Unknown command."
	}

	editReply(s, i, reply)
}

func roomName(g core.Directory, id domain.ChannelID) string {
	for _, ch := range g.Channels() {
		if ch.ID == id {
			return ch.Name
		}
	}
	return string(id)
}

func deferReply(s *discordgo.Session, i *discordgo.InteractionCreate, ephemeral bool) error {
	data := &discordgo.InteractionResponseData{}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: data,
	})
}

func editReply(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Content: &content}); err != nil {
		log.Error().Str("module", "adapters.discord").Err(err).Msg("edit reply failed")
	}
}

func respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string, ephemeral bool) {
	data := &discordgo.InteractionResponseData{Content: content}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		log.Error().Str("module", "adapters.discord").Err(err).Msg("respond failed")
	}
}
