package app

import (
	"context"
	"fmt"

	"github.com/clockhaven/townsquare/internal/core"
	"github.com/clockhaven/townsquare/internal/domain"
)

// fakeGuild is an in-memory core.Guild. Mutations apply to the fake's own
// state so lookups after a move observe the new voice presence, mirroring
// the platform cache.
type fakeGuild struct {
	id       domain.GuildID
	roles    []domain.Role
	channels []domain.Channel
	members  []domain.Member
	voice    map[domain.MemberID]domain.ChannelID

	moves     []moveRec
	muted     map[domain.MemberID]bool
	failMove  map[domain.MemberID]error
	revokeErr map[domain.MemberID]error

	createdRoles    []string
	createdChannels []string
	deletedChannels []domain.ChannelID
	deletedRoles    []domain.RoleID
	webhooks        []domain.ChannelID
	sentMessages    []string
	pinnedMessages  []string
	nextID          int
}

var _ core.Guild = (*fakeGuild)(nil)

type moveRec struct {
	Member domain.MemberID
	Room   domain.ChannelID
}

func newFakeGuild() *fakeGuild {
	return &fakeGuild{
		id:        "guild-1",
		voice:     make(map[domain.MemberID]domain.ChannelID),
		muted:     make(map[domain.MemberID]bool),
		failMove:  make(map[domain.MemberID]error),
		revokeErr: make(map[domain.MemberID]error),
	}
}

// guildWithTopology builds the standard fixture: the three game roles, the
// Townsquare category with a main hall and three private rooms, and the
// control channel.
func guildWithTopology() *fakeGuild {
	g := newFakeGuild()
	g.addRole("r-host", domain.RoleHost)
	g.addRole("r-player", domain.RolePlayer)
	g.addRole("r-spectator", domain.RoleSpectator)
	g.addChannel("cat", domain.CategoryName, domain.ChannelCategory, "")
	g.addChannel("main", domain.MainHallName, domain.ChannelVoice, "cat")
	g.addChannel("p1", "private-room-1", domain.ChannelVoice, "cat")
	g.addChannel("p2", "private-room-2", domain.ChannelVoice, "cat")
	g.addChannel("p3", "private-room-3", domain.ChannelVoice, "cat")
	g.addChannel("ctl", domain.ControlChannelName, domain.ChannelText, "cat")
	return g
}

func (g *fakeGuild) addRole(id, name string) domain.Role {
	r := domain.Role{ID: domain.RoleID(id), Name: name}
	g.roles = append(g.roles, r)
	return r
}

func (g *fakeGuild) addChannel(id, name string, t domain.ChannelType, parent string) domain.Channel {
	ch := domain.Channel{ID: domain.ChannelID(id), Name: name, Type: t, ParentID: domain.ChannelID(parent)}
	g.channels = append(g.channels, ch)
	return ch
}

func (g *fakeGuild) addMember(id, username string, roles ...domain.RoleID) domain.Member {
	m := domain.Member{ID: domain.MemberID(id), Username: username, RoleIDs: roles}
	g.members = append(g.members, m)
	return m
}

func (g *fakeGuild) addBot(id, username string) domain.Member {
	m := domain.Member{ID: domain.MemberID(id), Username: username, Bot: true}
	g.members = append(g.members, m)
	return m
}

func (g *fakeGuild) connect(member domain.MemberID, room domain.ChannelID) {
	g.voice[member] = room
}

func (g *fakeGuild) roleOf(name string) domain.RoleID {
	for _, r := range g.roles {
		if r.Name == name {
			return r.ID
		}
	}
	return ""
}

func (g *fakeGuild) memberRoles(id domain.MemberID) []domain.RoleID {
	for _, m := range g.members {
		if m.ID == id {
			return m.RoleIDs
		}
	}
	return nil
}

func (g *fakeGuild) ID() domain.GuildID            { return g.id }
func (g *fakeGuild) EveryoneRoleID() domain.RoleID { return "r-everyone" }
func (g *fakeGuild) Roles() []domain.Role          { return g.roles }
func (g *fakeGuild) Channels() []domain.Channel    { return g.channels }
func (g *fakeGuild) Members() []domain.Member      { return g.members }

func (g *fakeGuild) VoiceChannelOf(id domain.MemberID) (domain.ChannelID, bool) {
	ch, ok := g.voice[id]
	return ch, ok
}

func (g *fakeGuild) CreateRole(_ context.Context, name string, color int) (domain.Role, error) {
	g.nextID++
	r := domain.Role{ID: domain.RoleID(fmt.Sprintf("role-%d", g.nextID)), Name: name, Color: color}
	g.roles = append(g.roles, r)
	g.createdRoles = append(g.createdRoles, name)
	return r, nil
}

func (g *fakeGuild) DeleteRole(_ context.Context, id domain.RoleID) error {
	for i, r := range g.roles {
		if r.ID == id {
			g.roles = append(g.roles[:i], g.roles[i+1:]...)
			break
		}
	}
	g.deletedRoles = append(g.deletedRoles, id)
	return nil
}

func (g *fakeGuild) GrantRole(_ context.Context, member domain.MemberID, role domain.RoleID) error {
	for i, m := range g.members {
		if m.ID != member {
			continue
		}
		if !m.HasRole(role) {
			g.members[i].RoleIDs = append(g.members[i].RoleIDs, role)
		}
		return nil
	}
	return fmt.Errorf("unknown member %s", member)
}

func (g *fakeGuild) RevokeRole(_ context.Context, member domain.MemberID, role domain.RoleID) error {
	if err, ok := g.revokeErr[member]; ok {
		return err
	}
	for i, m := range g.members {
		if m.ID != member {
			continue
		}
		for j, r := range m.RoleIDs {
			if r == role {
				g.members[i].RoleIDs = append(m.RoleIDs[:j], m.RoleIDs[j+1:]...)
				break
			}
		}
		return nil
	}
	return fmt.Errorf("unknown member %s", member)
}

func (g *fakeGuild) MoveToRoom(_ context.Context, member domain.MemberID, room domain.ChannelID) error {
	if err, ok := g.failMove[member]; ok {
		return err
	}
	g.moves = append(g.moves, moveRec{Member: member, Room: room})
	g.voice[member] = room
	return nil
}

func (g *fakeGuild) SetMute(_ context.Context, member domain.MemberID, mute bool) error {
	if err, ok := g.failMove[member]; ok {
		return err
	}
	g.muted[member] = mute
	return nil
}

func (g *fakeGuild) CreateCategory(_ context.Context, name string) (domain.Channel, error) {
	g.nextID++
	ch := g.addChannel(fmt.Sprintf("ch-%d", g.nextID), name, domain.ChannelCategory, "")
	g.createdChannels = append(g.createdChannels, name)
	return ch, nil
}

func (g *fakeGuild) CreateVoiceRoom(_ context.Context, name string, parent domain.ChannelID, _ []core.PermissionOverwrite) (domain.Channel, error) {
	g.nextID++
	ch := g.addChannel(fmt.Sprintf("ch-%d", g.nextID), name, domain.ChannelVoice, string(parent))
	g.createdChannels = append(g.createdChannels, name)
	return ch, nil
}

func (g *fakeGuild) CreateTextChannel(_ context.Context, name string, parent domain.ChannelID, _ []core.PermissionOverwrite) (domain.Channel, error) {
	g.nextID++
	ch := g.addChannel(fmt.Sprintf("ch-%d", g.nextID), name, domain.ChannelText, string(parent))
	g.createdChannels = append(g.createdChannels, name)
	return ch, nil
}

func (g *fakeGuild) DeleteChannel(_ context.Context, id domain.ChannelID) error {
	for i, ch := range g.channels {
		if ch.ID == id {
			g.channels = append(g.channels[:i], g.channels[i+1:]...)
			break
		}
	}
	g.deletedChannels = append(g.deletedChannels, id)
	return nil
}

func (g *fakeGuild) CreateWebhook(_ context.Context, channel domain.ChannelID, _ string) (string, error) {
	g.webhooks = append(g.webhooks, channel)
	return fmt.Sprintf("https://hooks.test/%s/%d", channel, len(g.webhooks)), nil
}

func (g *fakeGuild) SendMessage(_ context.Context, _ domain.ChannelID, content string) (string, error) {
	g.sentMessages = append(g.sentMessages, content)
	return fmt.Sprintf("msg-%d", len(g.sentMessages)), nil
}

func (g *fakeGuild) PinMessage(_ context.Context, _ domain.ChannelID, messageID string) error {
	g.pinnedMessages = append(g.pinnedMessages, messageID)
	return nil
}
