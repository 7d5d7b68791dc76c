package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/clockhaven/townsquare/internal/core"
	"github.com/clockhaven/townsquare/internal/domain"
)

type SetupResult struct {
	Roles      RoleSet
	WebhookURL string
}

// Setup ensures the three game roles and the Townsquare topology exist:
// public voice rooms, numPrivate hidden private rooms, and a restricted
// control text channel with a fresh webhook whose URL is posted and pinned.
// Existing roles and channels are reused; a failure mid-way leaves whatever
// was already created in place.
func Setup(ctx context.Context, g core.Guild, numPrivate int) (SetupResult, error) {
	roles, err := EnsureRoles(ctx, g)
	if err != nil {
		return SetupResult{}, err
	}

	category, ok := FindCategory(g)
	if !ok {
		category, err = g.CreateCategory(ctx, domain.CategoryName)
		if err != nil {
			return SetupResult{}, fmt.Errorf("create category: %w", err)
		}
	}

	for _, name := range domain.PublicRoomNames {
		if _, ok := FindRoomByName(g, category.ID, name); ok {
			continue
		}
		if _, err := g.CreateVoiceRoom(ctx, name, category.ID, nil); err != nil {
			return SetupResult{}, fmt.Errorf("create room %s: %w", name, err)
		}
	}

	// Private rooms are invisible to everyone except the host and
	// spectators; players only ever arrive there by being moved.
	privateOverwrites := []core.PermissionOverwrite{
		{RoleID: g.EveryoneRoleID(), Deny: core.PermViewChannel | core.PermConnect},
		{RoleID: roles.Host.ID, Allow: core.PermViewChannel | core.PermConnect | core.PermSpeak},
		{RoleID: roles.Spectator.ID, Allow: core.PermViewChannel | core.PermConnect | core.PermSpeak},
	}
	for i := 1; i <= numPrivate; i++ {
		name := fmt.Sprintf("%s%d", domain.PrivateRoomPrefix, i)
		if _, ok := FindRoomByName(g, category.ID, name); ok {
			continue
		}
		if _, err := g.CreateVoiceRoom(ctx, name, category.ID, privateOverwrites); err != nil {
			return SetupResult{}, fmt.Errorf("create room %s: %w", name, err)
		}
	}

	control, ok := findTextChannel(g, category.ID, domain.ControlChannelName)
	if !ok {
		control, err = g.CreateTextChannel(ctx, domain.ControlChannelName, category.ID, []core.PermissionOverwrite{
			{RoleID: g.EveryoneRoleID(), Deny: core.PermViewChannel},
			{RoleID: roles.Host.ID, Allow: core.PermViewChannel},
		})
		if err != nil {
			return SetupResult{}, fmt.Errorf("create control channel: %w", err)
		}
	}

	url, err := g.CreateWebhook(ctx, control.ID, domain.WebhookName)
	if err != nil {
		return SetupResult{}, fmt.Errorf("create webhook: %w", err)
	}

	info := fmt.Sprintf(
		"🔗 **Townsquare Webhook Created**\n\n"+
			"Use this webhook URL in your web app:\n"+
			"|| `%s` ||\n"+
			"⚠️ Set that in the web app to enable communication!", url)
	msgID, err := g.SendMessage(ctx, control.ID, info)
	if err != nil {
		return SetupResult{}, fmt.Errorf("post webhook url: %w", err)
	}
	if err := g.PinMessage(ctx, control.ID, msgID); err != nil {
		return SetupResult{}, fmt.Errorf("pin webhook url: %w", err)
	}

	log.Info().Str("module", "app.setup").Str("guild", string(g.ID())).Int("private_rooms", numPrivate).Msg("setup complete")
	return SetupResult{Roles: roles, WebhookURL: url}, nil
}

// Uninstall deletes the category with its children and the three game roles,
// then forgets any session. No rollback: a failure mid-way leaves the guild
// partially cleaned.
func Uninstall(ctx context.Context, g core.Guild, store *SessionStore) error {
	if category, ok := FindCategory(g); ok {
		for _, ch := range g.Channels() {
			if ch.ParentID != category.ID {
				continue
			}
			if err := g.DeleteChannel(ctx, ch.ID); err != nil {
				return fmt.Errorf("delete channel %s: %w", ch.Name, err)
			}
		}
		if err := g.DeleteChannel(ctx, category.ID); err != nil {
			return fmt.Errorf("delete category: %w", err)
		}
	}

	for _, name := range []string{domain.RoleHost, domain.RolePlayer, domain.RoleSpectator} {
		if r, ok := FindRole(g, name); ok {
			if err := g.DeleteRole(ctx, r.ID); err != nil {
				return fmt.Errorf("delete role %s: %w", name, err)
			}
		}
	}

	store.Clear(g.ID())
	log.Info().Str("module", "app.setup").Str("guild", string(g.ID())).Msg("uninstalled")
	return nil
}
