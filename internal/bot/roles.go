package bot

import (
	"context"
	"sync"

	"github.com/nattawatz/linkboard/internal/bot/api"
)

// Overrides holds the runtime role overrides set by /setrole this process
// lifetime, keyed by scope (guild id, or "" for the global scope). It is a
// display/enforcement fallback, never the source of truth, and dies with the
// process.
type Overrides struct {
	mu      sync.RWMutex
	byScope map[string]string
}

func NewOverrides() *Overrides {
	return &Overrides{byScope: make(map[string]string)}
}

func (o *Overrides) Set(scope, roleID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.byScope[scope] = roleID
}

func (o *Overrides) Get(scope string) (string, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	roleID, ok := o.byScope[scope]
	return roleID, ok
}

// Decision is the outcome of an authorization check. The two denial reasons
// get distinct user-facing messages.
type Decision int

const (
	Allowed Decision = iota
	DeniedUnconfigured
	DeniedMissingRole
)

// RoleResolver decides which role gates mutating commands and whether an actor
// holds it.
type RoleResolver struct {
	Overrides *Overrides
	API       *api.Client
	// Fallback is the statically configured role used when the API is
	// unreachable and no override was set.
	Fallback string
	// Required, when non-empty, bypasses the mediation API entirely: the actor
	// just needs any one of these roles.
	Required []string
}

// EffectiveRole resolves the currently required role for a scope:
// runtime override, then the API-persisted value, then the static fallback.
// "" means no role is configured and every gated command is denied.
func (r *RoleResolver) EffectiveRole(ctx context.Context, scope string) string {
	if roleID, ok := r.Overrides.Get(scope); ok && roleID != "" {
		return roleID
	}
	if r.API != nil {
		if roleID, err := r.API.GetAllowedRole(ctx); err == nil && roleID != "" {
			return roleID
		}
	}
	return r.Fallback
}

// Authorize checks the actor's roles against the effective requirement. No
// hierarchy, no bypass: membership in the allowed role is the whole rule.
func (r *RoleResolver) Authorize(ctx context.Context, scope string, memberRoles []string) Decision {
	if len(r.Required) > 0 {
		for _, want := range r.Required {
			if hasRole(memberRoles, want) {
				return Allowed
			}
		}
		return DeniedMissingRole
	}

	allowed := r.EffectiveRole(ctx, scope)
	if allowed == "" {
		return DeniedUnconfigured
	}
	if hasRole(memberRoles, allowed) {
		return Allowed
	}
	return DeniedMissingRole
}

func hasRole(roles []string, want string) bool {
	for _, r := range roles {
		if r == want {
			return true
		}
	}
	return false
}
