// Package core defines the platform capability set the app layer is written
// against. The chat-platform adapter owns the only real implementation;
// tests supply fakes.
package core

import (
	"context"

	"github.com/clockhaven/townsquare/internal/domain"
)

// Directory is a read-only view over the platform's live guild cache.
// Enumeration order is the platform's native order, not sorted.
type Directory interface {
	Roles() []domain.Role
	Channels() []domain.Channel
	Members() []domain.Member

	// VoiceChannelOf reports the voice room the member is currently
	// connected to, if any.
	VoiceChannelOf(id domain.MemberID) (domain.ChannelID, bool)
}

// RoleManager mutates role state. Grant and revoke are issued per member;
// callers decide whether a failure is fatal.
type RoleManager interface {
	CreateRole(ctx context.Context, name string, color int) (domain.Role, error)
	DeleteRole(ctx context.Context, id domain.RoleID) error
	GrantRole(ctx context.Context, member domain.MemberID, role domain.RoleID) error
	RevokeRole(ctx context.Context, member domain.MemberID, role domain.RoleID) error
}

// VoiceController relocates and mutes live voice presences.
type VoiceController interface {
	MoveToRoom(ctx context.Context, member domain.MemberID, room domain.ChannelID) error
	SetMute(ctx context.Context, member domain.MemberID, mute bool) error
}

// Permissions is a platform-agnostic bitmask; the adapter maps it onto the
// platform's permission flags.
type Permissions int64

const (
	PermViewChannel Permissions = 1 << iota
	PermConnect
	PermSpeak
)

type PermissionOverwrite struct {
	RoleID domain.RoleID
	Allow  Permissions
	Deny   Permissions
}

type ChannelManager interface {
	CreateCategory(ctx context.Context, name string) (domain.Channel, error)
	CreateVoiceRoom(ctx context.Context, name string, parent domain.ChannelID, overwrites []PermissionOverwrite) (domain.Channel, error)
	CreateTextChannel(ctx context.Context, name string, parent domain.ChannelID, overwrites []PermissionOverwrite) (domain.Channel, error)
	DeleteChannel(ctx context.Context, id domain.ChannelID) error
}

type Messenger interface {
	CreateWebhook(ctx context.Context, channel domain.ChannelID, name string) (url string, err error)
	SendMessage(ctx context.Context, channel domain.ChannelID, content string) (messageID string, err error)
	PinMessage(ctx context.Context, channel domain.ChannelID, messageID string) error
}

// Guild bundles every capability scoped to a single guild.
type Guild interface {
	ID() domain.GuildID

	// EveryoneRoleID is the implicit role every member holds, used as the
	// deny target in permission overwrites.
	EveryoneRoleID() domain.RoleID

	Directory
	RoleManager
	VoiceController
	ChannelManager
	Messenger
}
