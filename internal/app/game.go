package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/clockhaven/townsquare/internal/core"
	"github.com/clockhaven/townsquare/internal/domain"
)

var (
	ErrNotInVoice   = errors.New("initiator is not in a voice room")
	ErrNoActiveGame = errors.New("no active game in this guild")
)

// StartGame makes the initiator host and everyone else in their voice room a
// player, then records the session. The initiator must be connected to a
// regular voice room; bots in the room are skipped.
func StartGame(ctx context.Context, g core.Guild, store *SessionStore, initiator domain.MemberID) (*domain.GameSession, error) {
	roomID, ok := g.VoiceChannelOf(initiator)
	if !ok {
		return nil, ErrNotInVoice
	}
	room, ok := channelByID(g, roomID)
	if !ok || room.Type != domain.ChannelVoice {
		return nil, ErrNotInVoice
	}

	roles, ok := FindRoles(g)
	if !ok {
		return nil, ErrRolesMissing
	}

	if err := Reassign(ctx, g, initiator, roles.Host.ID, roles.Player.ID, roles.Spectator.ID); err != nil {
		return nil, fmt.Errorf("assign host: %w", err)
	}

	var players []domain.MemberID
	for _, m := range g.Members() {
		if m.ID == initiator || m.Bot {
			continue
		}
		ch, inVoice := g.VoiceChannelOf(m.ID)
		if !inVoice || ch != roomID {
			continue
		}
		if err := Reassign(ctx, g, m.ID, roles.Player.ID, roles.Host.ID, roles.Spectator.ID); err != nil {
			return nil, fmt.Errorf("assign player: %w", err)
		}
		players = append(players, m.ID)
	}

	session := domain.NewGameSession(initiator, roomID, players)
	store.Set(g.ID(), session)
	log.Info().Str("module", "app.game").Str("guild", string(g.ID())).
		Str("session", session.ID).Str("host", string(initiator)).
		Int("players", len(players)).Msg("game started")
	return session, nil
}

// SwitchSpectator moves the caller from the player set to the spectator set,
// in both the platform roles and the session record. The host is rejected.
func SwitchSpectator(ctx context.Context, g core.Guild, store *SessionStore, caller domain.MemberID) error {
	session, ok := store.Get(g.ID())
	if !ok {
		return ErrNoActiveGame
	}
	playerRole, ok1 := FindRole(g, domain.RolePlayer)
	spectatorRole, ok2 := FindRole(g, domain.RoleSpectator)
	if !ok1 || !ok2 {
		return ErrRolesMissing
	}
	if session.IsHost(caller) {
		return domain.ErrHostSpectator
	}
	if err := Reassign(ctx, g, caller, spectatorRole.ID, playerRole.ID); err != nil {
		return err
	}
	return session.MarkSpectator(caller)
}

// EndGame strips the three game roles from every cached member, best-effort,
// and clears the session.
func EndGame(ctx context.Context, g core.Guild, store *SessionStore) error {
	if _, ok := store.Get(g.ID()); !ok {
		return ErrNoActiveGame
	}

	var roleIDs []domain.RoleID
	for _, name := range []string{domain.RoleHost, domain.RolePlayer, domain.RoleSpectator} {
		if r, ok := FindRole(g, name); ok {
			roleIDs = append(roleIDs, r.ID)
		}
	}
	for _, m := range g.Members() {
		for _, rid := range roleIDs {
			if err := g.RevokeRole(ctx, m.ID, rid); err != nil {
				log.Debug().Str("module", "app.game").Str("member", string(m.ID)).Err(err).Msg("revoke skipped")
			}
		}
	}

	store.Clear(g.ID())
	log.Info().Str("module", "app.game").Str("guild", string(g.ID())).Msg("game ended")
	return nil
}

func channelByID(d core.Directory, id domain.ChannelID) (domain.Channel, bool) {
	for _, ch := range d.Channels() {
		if ch.ID == id {
			return ch, true
		}
	}
	return domain.Channel{}, false
}
