package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/clockhaven/townsquare/internal/core"
	"github.com/clockhaven/townsquare/internal/domain"
)

// RoleSet is the resolved trio of game roles in a guild.
type RoleSet struct {
	Host      domain.Role
	Player    domain.Role
	Spectator domain.Role
}

// FindRole matches by exact role name; guilds may legitimately carry
// similarly named roles the bot does not own.
func FindRole(d core.Directory, name string) (domain.Role, bool) {
	for _, r := range d.Roles() {
		if r.Name == name {
			return r, true
		}
	}
	return domain.Role{}, false
}

// FindRoles resolves all three game roles; ok is false if any is missing.
func FindRoles(d core.Directory) (RoleSet, bool) {
	host, ok1 := FindRole(d, domain.RoleHost)
	player, ok2 := FindRole(d, domain.RolePlayer)
	spectator, ok3 := FindRole(d, domain.RoleSpectator)
	return RoleSet{Host: host, Player: player, Spectator: spectator}, ok1 && ok2 && ok3
}

// EnsureRoles creates any missing game role with its fixed color and reuses
// existing ones. Safe to call repeatedly.
func EnsureRoles(ctx context.Context, g core.Guild) (RoleSet, error) {
	var set RoleSet
	for _, want := range []struct {
		name  string
		color int
		dst   *domain.Role
	}{
		{domain.RoleHost, domain.ColorHost, &set.Host},
		{domain.RoleSpectator, domain.ColorSpectator, &set.Spectator},
		{domain.RolePlayer, domain.ColorPlayer, &set.Player},
	} {
		if r, ok := FindRole(g, want.name); ok {
			*want.dst = r
			continue
		}
		r, err := g.CreateRole(ctx, want.name, want.color)
		if err != nil {
			return RoleSet{}, fmt.Errorf("create role %s: %w", want.name, err)
		}
		log.Info().Str("module", "app.roles").Str("guild", string(g.ID())).Str("role", want.name).Msg("created role")
		*want.dst = r
	}
	return set, nil
}

// Reassign grants one role and revokes the others so a member never ends up
// holding two of the trio. Revoke failures are ignored: the member may simply
// not hold the role being removed.
func Reassign(ctx context.Context, g core.Guild, member domain.MemberID, grant domain.RoleID, revoke ...domain.RoleID) error {
	if err := g.GrantRole(ctx, member, grant); err != nil {
		return fmt.Errorf("grant role: %w", err)
	}
	for _, r := range revoke {
		if err := g.RevokeRole(ctx, member, r); err != nil {
			log.Debug().Str("module", "app.roles").Str("member", string(member)).Err(err).Msg("revoke skipped")
		}
	}
	return nil
}
