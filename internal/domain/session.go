package domain

import (
	"errors"

	"github.com/google/uuid"
)

// Well-known names the bot manages inside a guild. All lookups against
// channel names and usernames are case-insensitive; role names match exactly.
const (
	CategoryName       = "Townsquare"
	MainHallName       = "Main Hall"
	ControlChannelName = "townsquare-control"
	PrivateRoomPrefix  = "private-room-"
	WebhookName        = "Townsquare Control"
)

const (
	RoleHost      = "Host"
	RolePlayer    = "Player"
	RoleSpectator = "Spectator"

	ColorHost      = 0xFF0000
	ColorSpectator = 0xFFFF00
	ColorPlayer    = 0x0000FF
)

// PublicRoomNames are the open voice rooms created at setup.
// MainHallName must stay first; it is the room bulk moves target.
var PublicRoomNames = []string{MainHallName, "Potion Shop", "Library"}

var ErrHostSpectator = errors.New("host cannot become spectator")

// GameSession is the ephemeral record of one running game in a guild.
// A participant is host, player or spectator, never more than one at a time.
// The host is fixed for the life of the session; there is no handoff.
type GameSession struct {
	ID             string
	HostID         MemberID
	PlayerIDs      map[MemberID]struct{}
	SpectatorIDs   map[MemberID]struct{}
	MainRoomID     ChannelID
	PrivateRoomIDs []ChannelID
}

func NewGameSession(host MemberID, mainRoom ChannelID, players []MemberID) *GameSession {
	s := &GameSession{
		ID:           uuid.NewString(),
		HostID:       host,
		PlayerIDs:    make(map[MemberID]struct{}, len(players)),
		SpectatorIDs: make(map[MemberID]struct{}),
		MainRoomID:   mainRoom,
	}
	for _, p := range players {
		if p == host {
			continue
		}
		s.PlayerIDs[p] = struct{}{}
	}
	return s
}

func (s *GameSession) IsHost(id MemberID) bool {
	return s.HostID == id
}

func (s *GameSession) IsPlayer(id MemberID) bool {
	_, ok := s.PlayerIDs[id]
	return ok
}

func (s *GameSession) IsSpectator(id MemberID) bool {
	_, ok := s.SpectatorIDs[id]
	return ok
}

// MarkSpectator moves a participant out of the player set into the spectator
// set. The host is rejected and the session is left untouched.
func (s *GameSession) MarkSpectator(id MemberID) error {
	if s.IsHost(id) {
		return ErrHostSpectator
	}
	delete(s.PlayerIDs, id)
	s.SpectatorIDs[id] = struct{}{}
	return nil
}
