package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clockhaven/townsquare/internal/domain"
)

func TestSetupCreatesEverything(t *testing.T) {
	g := newFakeGuild()

	res, err := Setup(context.Background(), g, 5)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{domain.RoleHost, domain.RolePlayer, domain.RoleSpectator}, g.createdRoles)
	assert.Equal(t, domain.RoleHost, res.Roles.Host.Name)
	assert.Equal(t, domain.RolePlayer, res.Roles.Player.Name)
	assert.Equal(t, domain.RoleSpectator, res.Roles.Spectator.Name)

	category, ok := FindCategory(g)
	require.True(t, ok)
	for _, name := range domain.PublicRoomNames {
		_, ok := FindRoomByName(g, category.ID, name)
		assert.True(t, ok, "public room %s missing", name)
	}
	assert.Len(t, FindPrivateRooms(g, category.ID), 5)
	_, ok = findTextChannel(g, category.ID, domain.ControlChannelName)
	assert.True(t, ok)

	require.Len(t, g.webhooks, 1)
	assert.NotEmpty(t, res.WebhookURL)
	require.Len(t, g.sentMessages, 1)
	assert.Contains(t, g.sentMessages[0], res.WebhookURL)
	assert.Len(t, g.pinnedMessages, 1)
}

func TestSetupIsIdempotent(t *testing.T) {
	g := newFakeGuild()

	_, err := Setup(context.Background(), g, 3)
	require.NoError(t, err)
	createdChannels := len(g.createdChannels)
	createdRoles := len(g.createdRoles)

	_, err = Setup(context.Background(), g, 3)
	require.NoError(t, err)

	assert.Equal(t, createdChannels, len(g.createdChannels), "channels must be reused")
	assert.Equal(t, createdRoles, len(g.createdRoles), "roles must be reused")
}

func TestUninstall(t *testing.T) {
	g := newFakeGuild()
	store := NewSessionStore()

	_, err := Setup(context.Background(), g, 3)
	require.NoError(t, err)
	store.Set(g.ID(), domain.NewGameSession("h", "main", nil))

	require.NoError(t, Uninstall(context.Background(), g, store))

	_, ok := FindCategory(g)
	assert.False(t, ok, "category must be gone")
	for _, name := range []string{domain.RoleHost, domain.RolePlayer, domain.RoleSpectator} {
		_, ok := FindRole(g, name)
		assert.False(t, ok, "role %s must be gone", name)
	}
	_, ok = store.Get(g.ID())
	assert.False(t, ok, "session must be cleared")
}

func TestUninstallWithoutInstall(t *testing.T) {
	g := newFakeGuild()
	store := NewSessionStore()
	assert.NoError(t, Uninstall(context.Background(), g, store))
}
