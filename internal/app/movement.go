package app

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/clockhaven/townsquare/internal/core"
	"github.com/clockhaven/townsquare/internal/domain"
)

var (
	ErrNotHost         = errors.New("requester does not hold the host role")
	ErrRolesMissing    = errors.New("player or spectator role missing")
	ErrCategoryMissing = errors.New("townsquare category missing")
	ErrMainHallMissing = errors.New("main hall voice room missing")
)

// MoveAllToMain relocates every player and spectator currently in voice into
// the main hall and returns how many were actually moved. Members already in
// the main hall, or not in voice at all, are skipped. A failed relocation is
// logged and not counted; the batch never aborts.
func MoveAllToMain(ctx context.Context, g core.Guild, requester domain.MemberID) (int, error) {
	hostRole, ok := FindRole(g, domain.RoleHost)
	if !ok {
		return 0, ErrNotHost
	}
	req, ok := findMemberByID(g, requester)
	if !ok || !req.HasRole(hostRole.ID) {
		return 0, ErrNotHost
	}

	playerRole, ok1 := FindRole(g, domain.RolePlayer)
	spectatorRole, ok2 := FindRole(g, domain.RoleSpectator)
	if !ok1 || !ok2 {
		return 0, ErrRolesMissing
	}

	category, ok := FindCategory(g)
	if !ok {
		return 0, ErrCategoryMissing
	}
	mainHall, ok := FindMainHall(g, category.ID)
	if !ok {
		return 0, ErrMainHallMissing
	}

	moved := 0
	for _, m := range g.Members() {
		if !m.HasRole(playerRole.ID) && !m.HasRole(spectatorRole.ID) {
			continue
		}
		current, inVoice := g.VoiceChannelOf(m.ID)
		if !inVoice || current == mainHall.ID {
			continue
		}
		if err := g.MoveToRoom(ctx, m.ID, mainHall.ID); err != nil {
			log.Warn().Str("module", "app.movement").Str("member", string(m.ID)).Err(err).Msg("move to main failed")
			continue
		}
		moved++
	}
	log.Info().Str("module", "app.movement").Str("guild", string(g.ID())).Int("moved", moved).Msg("bulk move to main")
	return moved, nil
}

// MoveOne relocates a single named participant to a named room under the
// category. Unresolvable names and disconnected participants are silent
// no-ops: the control channel races with participants' own disconnects.
func MoveOne(ctx context.Context, g core.Guild, username, roomName string) {
	member, ok := FindMemberByUsername(g, username)
	if !ok {
		return
	}
	if _, inVoice := g.VoiceChannelOf(member.ID); !inVoice {
		return
	}
	category, ok := FindCategory(g)
	if !ok {
		return
	}
	room, ok := FindRoomByName(g, category.ID, roomName)
	if !ok {
		return
	}
	if err := g.MoveToRoom(ctx, member.ID, room.ID); err != nil {
		log.Warn().Str("module", "app.movement").Str("member", string(member.ID)).Str("room", room.Name).Err(err).Msg("move failed")
	}
}

// PairToPrivateRoom puts two named participants into the first private room
// with no one connected. Both must currently be in voice. With every private
// room occupied nothing happens; the caller is never told.
//
// Two pairing requests racing each other can pick the same room faster than
// voice-state propagation. Accepted; no locking here.
func PairToPrivateRoom(ctx context.Context, g core.Guild, usernameA, usernameB string) {
	a, okA := FindMemberByUsername(g, usernameA)
	b, okB := FindMemberByUsername(g, usernameB)
	if !okA || !okB {
		return
	}
	if _, ok := g.VoiceChannelOf(a.ID); !ok {
		return
	}
	if _, ok := g.VoiceChannelOf(b.ID); !ok {
		return
	}
	category, ok := FindCategory(g)
	if !ok {
		return
	}

	var target domain.Channel
	found := false
	for _, room := range FindPrivateRooms(g, category.ID) {
		if voiceOccupants(g, room.ID) == 0 {
			target = room
			found = true
			break
		}
	}
	if !found {
		log.Error().Str("module", "app.movement").Str("guild", string(g.ID())).Msg("no empty private rooms available")
		return
	}

	for _, id := range []domain.MemberID{a.ID, b.ID} {
		if err := g.MoveToRoom(ctx, id, target.ID); err != nil {
			log.Warn().Str("module", "app.movement").Str("member", string(id)).Str("room", target.Name).Err(err).Msg("private move failed")
		}
	}
}

// ReturnPairToMain brings two named participants back to the main hall.
// Same permissive semantics as PairToPrivateRoom.
func ReturnPairToMain(ctx context.Context, g core.Guild, usernameA, usernameB string) {
	a, okA := FindMemberByUsername(g, usernameA)
	b, okB := FindMemberByUsername(g, usernameB)
	if !okA || !okB {
		return
	}
	if _, ok := g.VoiceChannelOf(a.ID); !ok {
		return
	}
	if _, ok := g.VoiceChannelOf(b.ID); !ok {
		return
	}
	category, ok := FindCategory(g)
	if !ok {
		return
	}
	mainHall, ok := FindMainHall(g, category.ID)
	if !ok {
		log.Error().Str("module", "app.movement").Str("guild", string(g.ID())).Msg("main hall not found")
		return
	}
	for _, id := range []domain.MemberID{a.ID, b.ID} {
		if err := g.MoveToRoom(ctx, id, mainHall.ID); err != nil {
			log.Warn().Str("module", "app.movement").Str("member", string(id)).Err(err).Msg("return to main failed")
		}
	}
}
