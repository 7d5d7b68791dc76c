package app

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/clockhaven/townsquare/internal/core"
	"github.com/clockhaven/townsquare/internal/domain"
)

// Control message kinds emitted by the companion web app.
const (
	MsgMoveAll     = "MOVEALL"
	MsgMove        = "MOVE"
	MsgMovePrivate = "MOVEPRIVATE"
	MsgReturn      = "RETURN"
)

type controlEnvelope struct {
	Type      string `json:"type"`
	Username  string `json:"discordUsername"`
	Username2 string `json:"discordUsername2"`
	RoomName  string `json:"channelName"`
}

// HandleControlMessage interprets one message body from the control channel.
// The protocol is one-way: nothing is posted back, malformed bodies are
// dropped, unknown kinds are ignored.
func HandleControlMessage(ctx context.Context, g core.Guild, body []byte) {
	var env controlEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		log.Debug().Str("module", "app.control").Err(err).Msg("malformed control message")
		return
	}

	switch env.Type {
	case MsgMoveAll:
		hostRole, ok := FindRole(g, domain.RoleHost)
		if !ok {
			return
		}
		host, ok := FindMemberWithRole(g, hostRole.ID)
		if !ok {
			return
		}
		if _, err := MoveAllToMain(ctx, g, host.ID); err != nil {
			log.Error().Str("module", "app.control").Err(err).Msg("MOVEALL failed")
		}

	case MsgMove:
		if env.Username == "" || env.RoomName == "" {
			return
		}
		MoveOne(ctx, g, env.Username, env.RoomName)

	case MsgMovePrivate:
		if env.Username == "" || env.Username2 == "" {
			return
		}
		PairToPrivateRoom(ctx, g, env.Username, env.Username2)

	case MsgReturn:
		if env.Username == "" || env.Username2 == "" {
			return
		}
		ReturnPairToMain(ctx, g, env.Username, env.Username2)

	default:
		log.Warn().Str("module", "app.control").Str("type", env.Type).Msg("unknown control message")
	}
}
