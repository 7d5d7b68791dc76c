// Package discord adapts the platform gateway to the core capability set.
// Reads come from the session's live state cache; writes go through the REST
// API.
package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/clockhaven/townsquare/internal/core"
	"github.com/clockhaven/townsquare/internal/domain"
)

type guildClient struct {
	s  *discordgo.Session
	id string
}

// NewGuild binds the capability set to one guild.
func NewGuild(s *discordgo.Session, guildID string) core.Guild {
	return &guildClient{s: s, id: guildID}
}

func (g *guildClient) ID() domain.GuildID { return domain.GuildID(g.id) }

// The implicit @everyone role shares the guild's ID.
func (g *guildClient) EveryoneRoleID() domain.RoleID { return domain.RoleID(g.id) }

func (g *guildClient) state() *discordgo.Guild {
	gld, err := g.s.State.Guild(g.id)
	if err != nil {
		return nil
	}
	return gld
}

func (g *guildClient) Roles() []domain.Role {
	gld := g.state()
	if gld == nil {
		return nil
	}
	out := make([]domain.Role, 0, len(gld.Roles))
	for _, r := range gld.Roles {
		out = append(out, domain.Role{ID: domain.RoleID(r.ID), Name: r.Name, Color: r.Color})
	}
	return out
}

func (g *guildClient) Channels() []domain.Channel {
	gld := g.state()
	if gld == nil {
		return nil
	}
	out := make([]domain.Channel, 0, len(gld.Channels))
	for _, ch := range gld.Channels {
		t, ok := channelType(ch.Type)
		if !ok {
			continue
		}
		out = append(out, domain.Channel{
			ID:       domain.ChannelID(ch.ID),
			Name:     ch.Name,
			Type:     t,
			ParentID: domain.ChannelID(ch.ParentID),
		})
	}
	return out
}

func (g *guildClient) Members() []domain.Member {
	gld := g.state()
	if gld == nil {
		return nil
	}
	out := make([]domain.Member, 0, len(gld.Members))
	for _, m := range gld.Members {
		if m.User == nil {
			continue
		}
		roles := make([]domain.RoleID, 0, len(m.Roles))
		for _, r := range m.Roles {
			roles = append(roles, domain.RoleID(r))
		}
		out = append(out, domain.Member{
			ID:       domain.MemberID(m.User.ID),
			Username: m.User.Username,
			Bot:      m.User.Bot,
			RoleIDs:  roles,
		})
	}
	return out
}

func (g *guildClient) VoiceChannelOf(id domain.MemberID) (domain.ChannelID, bool) {
	gld := g.state()
	if gld == nil {
		return "", false
	}
	for _, vs := range gld.VoiceStates {
		if vs.UserID == string(id) && vs.ChannelID != "" {
			return domain.ChannelID(vs.ChannelID), true
		}
	}
	return "", false
}

func (g *guildClient) CreateRole(ctx context.Context, name string, color int) (domain.Role, error) {
	r, err := g.s.GuildRoleCreate(g.id, &discordgo.RoleParams{Name: name, Color: &color}, discordgo.WithContext(ctx))
	if err != nil {
		return domain.Role{}, err
	}
	return domain.Role{ID: domain.RoleID(r.ID), Name: r.Name, Color: r.Color}, nil
}

func (g *guildClient) DeleteRole(ctx context.Context, id domain.RoleID) error {
	return g.s.GuildRoleDelete(g.id, string(id), discordgo.WithContext(ctx))
}

func (g *guildClient) GrantRole(ctx context.Context, member domain.MemberID, role domain.RoleID) error {
	return g.s.GuildMemberRoleAdd(g.id, string(member), string(role), discordgo.WithContext(ctx))
}

func (g *guildClient) RevokeRole(ctx context.Context, member domain.MemberID, role domain.RoleID) error {
	return g.s.GuildMemberRoleRemove(g.id, string(member), string(role), discordgo.WithContext(ctx))
}

func (g *guildClient) MoveToRoom(ctx context.Context, member domain.MemberID, room domain.ChannelID) error {
	channelID := string(room)
	return g.s.GuildMemberMove(g.id, string(member), &channelID, discordgo.WithContext(ctx))
}

func (g *guildClient) SetMute(ctx context.Context, member domain.MemberID, mute bool) error {
	return g.s.GuildMemberMute(g.id, string(member), mute, discordgo.WithContext(ctx))
}

func (g *guildClient) CreateCategory(ctx context.Context, name string) (domain.Channel, error) {
	return g.createChannel(ctx, discordgo.GuildChannelCreateData{
		Name: name,
		Type: discordgo.ChannelTypeGuildCategory,
	})
}

func (g *guildClient) CreateVoiceRoom(ctx context.Context, name string, parent domain.ChannelID, overwrites []core.PermissionOverwrite) (domain.Channel, error) {
	return g.createChannel(ctx, discordgo.GuildChannelCreateData{
		Name:                 name,
		Type:                 discordgo.ChannelTypeGuildVoice,
		ParentID:             string(parent),
		PermissionOverwrites: toOverwrites(overwrites),
	})
}

func (g *guildClient) CreateTextChannel(ctx context.Context, name string, parent domain.ChannelID, overwrites []core.PermissionOverwrite) (domain.Channel, error) {
	return g.createChannel(ctx, discordgo.GuildChannelCreateData{
		Name:                 name,
		Type:                 discordgo.ChannelTypeGuildText,
		ParentID:             string(parent),
		PermissionOverwrites: toOverwrites(overwrites),
	})
}

func (g *guildClient) createChannel(ctx context.Context, data discordgo.GuildChannelCreateData) (domain.Channel, error) {
	ch, err := g.s.GuildChannelCreateComplex(g.id, data, discordgo.WithContext(ctx))
	if err != nil {
		return domain.Channel{}, err
	}
	t, _ := channelType(ch.Type)
	return domain.Channel{
		ID:       domain.ChannelID(ch.ID),
		Name:     ch.Name,
		Type:     t,
		ParentID: domain.ChannelID(ch.ParentID),
	}, nil
}

func (g *guildClient) DeleteChannel(ctx context.Context, id domain.ChannelID) error {
	_, err := g.s.ChannelDelete(string(id), discordgo.WithContext(ctx))
	return err
}

func (g *guildClient) CreateWebhook(ctx context.Context, channel domain.ChannelID, name string) (string, error) {
	w, err := g.s.WebhookCreate(string(channel), name, "", discordgo.WithContext(ctx))
	if err != nil {
		return "", err
	}
	return discordgo.EndpointWebhookToken(w.ID, w.Token), nil
}

func (g *guildClient) SendMessage(ctx context.Context, channel domain.ChannelID, content string) (string, error) {
	msg, err := g.s.ChannelMessageSend(string(channel), content, discordgo.WithContext(ctx))
	if err != nil {
		return "", err
	}
	return msg.ID, nil
}

func (g *guildClient) PinMessage(ctx context.Context, channel domain.ChannelID, messageID string) error {
	return g.s.ChannelMessagePin(string(channel), messageID, discordgo.WithContext(ctx))
}

func channelType(t discordgo.ChannelType) (domain.ChannelType, bool) {
	switch t {
	case discordgo.ChannelTypeGuildText:
		return domain.ChannelText, true
	case discordgo.ChannelTypeGuildVoice:
		return domain.ChannelVoice, true
	case discordgo.ChannelTypeGuildStageVoice:
		return domain.ChannelStageVoice, true
	case discordgo.ChannelTypeGuildCategory:
		return domain.ChannelCategory, true
	default:
		return 0, false
	}
}

func toOverwrites(ows []core.PermissionOverwrite) []*discordgo.PermissionOverwrite {
	if len(ows) == 0 {
		return nil
	}
	out := make([]*discordgo.PermissionOverwrite, 0, len(ows))
	for _, ow := range ows {
		out = append(out, &discordgo.PermissionOverwrite{
			ID:    string(ow.RoleID),
			Type:  discordgo.PermissionOverwriteTypeRole,
			Allow: permissionBits(ow.Allow),
			Deny:  permissionBits(ow.Deny),
		})
	}
	return out
}

func permissionBits(p core.Permissions) int64 {
	var bits int64
	if p&core.PermViewChannel != 0 {
		bits |= discordgo.PermissionViewChannel
	}
	if p&core.PermConnect != 0 {
		bits |= discordgo.PermissionVoiceConnect
	}
	if p&core.PermSpeak != 0 {
		bits |= discordgo.PermissionVoiceSpeak
	}
	return bits
}
