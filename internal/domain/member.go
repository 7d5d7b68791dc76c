// Package domain contains entities without logic, just meta-data.
package domain

type (
	GuildID   string
	MemberID  string
	RoleID    string
	ChannelID string
)

type ChannelType int

const (
	ChannelText ChannelType = iota
	ChannelVoice
	ChannelStageVoice
	ChannelCategory
)

// Voice reports whether participants can be connected to this channel type.
func (t ChannelType) Voice() bool {
	return t == ChannelVoice || t == ChannelStageVoice
}

type Role struct {
	ID    RoleID
	Name  string
	Color int
}

type Channel struct {
	ID       ChannelID
	Name     string
	Type     ChannelType
	ParentID ChannelID
}

// Member is a guild participant as seen in the platform's live cache.
type Member struct {
	ID       MemberID
	Username string
	Bot      bool
	RoleIDs  []RoleID
}

func (m Member) HasRole(id RoleID) bool {
	for _, r := range m.RoleIDs {
		if r == id {
			return true
		}
	}
	return false
}
