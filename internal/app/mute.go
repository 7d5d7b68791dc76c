package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/clockhaven/townsquare/internal/core"
	"github.com/clockhaven/townsquare/internal/domain"
)

// SetPlayersMuted server-mutes (or unmutes) every member holding the Player
// role who is currently in voice. Each member is attempted independently;
// failures are logged and the rest of the batch continues.
func SetPlayersMuted(ctx context.Context, g core.Guild, muted bool) (int, error) {
	playerRole, ok := FindRole(g, domain.RolePlayer)
	if !ok {
		return 0, ErrRolesMissing
	}

	changed := 0
	for _, m := range g.Members() {
		if !m.HasRole(playerRole.ID) {
			continue
		}
		if _, inVoice := g.VoiceChannelOf(m.ID); !inVoice {
			continue
		}
		if err := g.SetMute(ctx, m.ID, muted); err != nil {
			log.Warn().Str("module", "app.mute").Str("member", string(m.ID)).Err(err).Msg("mute change failed")
			continue
		}
		changed++
	}
	log.Info().Str("module", "app.mute").Str("guild", string(g.ID())).Bool("muted", muted).Int("changed", changed).Msg("player mute batch")
	return changed, nil
}
