package bot

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nattawatz/linkboard/internal/bot/api"
)

func roleServer(t *testing.T, roleID string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/internal/config.get", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		if roleID == "" {
			w.Write([]byte(`{"allowed_role_id":null}`))
			return
		}
		w.Write([]byte(`{"allowed_role_id":"` + roleID + `"}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func deadServer(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	return url
}

func TestEffectiveRole_ResolutionOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("override wins over API and fallback", func(t *testing.T) {
		r := &RoleResolver{
			Overrides: NewOverrides(),
			API:       api.New(roleServer(t, "R2").URL, time.Second, ""),
			Fallback:  "R3",
		}
		r.Overrides.Set("", "R1")
		require.Equal(t, "R1", r.EffectiveRole(ctx, ""))
	})

	t.Run("API value when no override", func(t *testing.T) {
		r := &RoleResolver{
			Overrides: NewOverrides(),
			API:       api.New(roleServer(t, "R2").URL, time.Second, ""),
			Fallback:  "R3",
		}
		require.Equal(t, "R2", r.EffectiveRole(ctx, ""))
	})

	t.Run("fallback when API unreachable", func(t *testing.T) {
		r := &RoleResolver{
			Overrides: NewOverrides(),
			API:       api.New(deadServer(t), time.Second, ""),
			Fallback:  "R3",
		}
		require.Equal(t, "R3", r.EffectiveRole(ctx, ""))
	})

	t.Run("fallback when API has no role", func(t *testing.T) {
		r := &RoleResolver{
			Overrides: NewOverrides(),
			API:       api.New(roleServer(t, "").URL, time.Second, ""),
			Fallback:  "R3",
		}
		require.Equal(t, "R3", r.EffectiveRole(ctx, ""))
	})

	t.Run("unconfigured when nothing is set", func(t *testing.T) {
		r := &RoleResolver{
			Overrides: NewOverrides(),
			API:       api.New(deadServer(t), time.Second, ""),
		}
		require.Equal(t, "", r.EffectiveRole(ctx, ""))
	})
}

func TestEffectiveRole_ScopedOverrides(t *testing.T) {
	r := &RoleResolver{
		Overrides: NewOverrides(),
		API:       api.New(deadServer(t), time.Second, ""),
		Fallback:  "R3",
	}
	r.Overrides.Set("guild-a", "RA")

	require.Equal(t, "RA", r.EffectiveRole(context.Background(), "guild-a"))
	require.Equal(t, "R3", r.EffectiveRole(context.Background(), "guild-b"))
}

func TestAuthorize(t *testing.T) {
	ctx := context.Background()

	t.Run("member with the allowed role", func(t *testing.T) {
		r := &RoleResolver{Overrides: NewOverrides(), Fallback: "R1"}
		require.Equal(t, Allowed, r.Authorize(ctx, "", []string{"other", "R1"}))
	})

	t.Run("member without the allowed role", func(t *testing.T) {
		r := &RoleResolver{Overrides: NewOverrides(), Fallback: "R1"}
		require.Equal(t, DeniedMissingRole, r.Authorize(ctx, "", []string{"other"}))
	})

	t.Run("no role configured denies everyone", func(t *testing.T) {
		r := &RoleResolver{Overrides: NewOverrides()}
		require.Equal(t, DeniedUnconfigured, r.Authorize(ctx, "", []string{"any"}))
	})

	t.Run("required list bypasses the API entirely", func(t *testing.T) {
		r := &RoleResolver{
			Overrides: NewOverrides(),
			API:       api.New(deadServer(t), time.Second, ""),
			Required:  []string{"mods", "admins"},
		}
		require.Equal(t, Allowed, r.Authorize(ctx, "", []string{"admins"}))
		require.Equal(t, DeniedMissingRole, r.Authorize(ctx, "", []string{"plebs"}))
	})
}
