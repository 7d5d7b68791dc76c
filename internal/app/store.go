// Package app holds the game-session state machine and the voice-room
// movement engine. Everything here is written against the core interfaces;
// nothing imports the platform SDK.
package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/clockhaven/townsquare/internal/domain"
)

// SessionStore maps a guild to its single active game session.
// State is process-lifetime only; nothing is persisted.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[domain.GuildID]*domain.GameSession
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[domain.GuildID]*domain.GameSession)}
}

func (st *SessionStore) Get(id domain.GuildID) (*domain.GameSession, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	return s, ok
}

// Set installs the session, silently replacing any session already running
// in the guild. Replacement is the operator's responsibility.
func (st *SessionStore) Set(id domain.GuildID, s *domain.GameSession) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[id] = s
	log.Info().Str("module", "app.store").Str("guild", string(id)).Str("session", s.ID).Msg("session stored")
}

func (st *SessionStore) Clear(id domain.GuildID) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
	log.Info().Str("module", "app.store").Str("guild", string(id)).Msg("session cleared")
}

type SessionInfo struct {
	GuildID    string `json:"guild_id"`
	SessionID  string `json:"session_id"`
	Players    int    `json:"players"`
	Spectators int    `json:"spectators"`
}

func (st *SessionStore) Snapshot() []SessionInfo {
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := make([]SessionInfo, 0, len(st.sessions))
	for gid, s := range st.sessions {
		out = append(out, SessionInfo{
			GuildID:    string(gid),
			SessionID:  s.ID,
			Players:    len(s.PlayerIDs),
			Spectators: len(s.SpectatorIDs),
		})
	}
	return out
}
