package internal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func partialIntent(only, except []string) Intent {
	in := Intent{
		IsInertia:  true,
		IsPartial:  true,
		Only:       Set{},
		Except:     Set{},
		ExceptOnce: Set{},
		Reset:      Set{},
	}
	for _, n := range only {
		in.Only[n] = struct{}{}
	}
	for _, n := range except {
		in.Except[n] = struct{}{}
	}
	return in
}

func fullIntent(inertia bool) Intent {
	return Intent{
		IsInertia:  inertia,
		Only:       Set{},
		Except:     Set{},
		ExceptOnce: Set{},
		Reset:      Set{},
	}
}

func TestResolveProps_InitialLoad(t *testing.T) {
	t.Parallel()

	props := Props{
		"user":     map[string]any{"name": "jo"},
		"stats":    Defer(func() any { t.Error("deferred prop resolved on initial load"); return nil }),
		"heavy":    Optional(func() any { t.Error("optional prop resolved on initial load"); return nil }),
		"feed":     Merge([]int{1, 2}),
		"settings": Once("dark"),
		"perms":    Always([]string{"read"}),
	}

	resolved, err := ResolveProps(props, fullIntent(false))
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"name": "jo"}, resolved["user"])
	assert.Equal(t, []int{1, 2}, resolved["feed"])
	assert.Equal(t, "dark", resolved["settings"])
	assert.Equal(t, []string{"read"}, resolved["perms"])
	assert.NotContains(t, resolved, "stats")
	assert.NotContains(t, resolved, "heavy")
}

func TestResolveProps_FullInertiaNavigation(t *testing.T) {
	t.Parallel()

	// A full Inertia navigation (no partial headers) behaves like the
	// initial load for deferred and optional props.
	props := Props{
		"plain": 1,
		"stats": Defer(2),
		"heavy": Optional(3),
	}

	resolved, err := ResolveProps(props, fullIntent(true))
	require.NoError(t, err)

	assert.Equal(t, 1, resolved["plain"])
	assert.NotContains(t, resolved, "stats")
	assert.NotContains(t, resolved, "heavy")
}

func TestResolveProps_PartialOnly(t *testing.T) {
	t.Parallel()

	t.Run("allowlist filters plain props", func(t *testing.T) {
		t.Parallel()

		props := Props{
			"stats": Defer(func() any { return 42 }),
			"user":  "jo",
			"other": "dropped",
		}

		resolved, err := ResolveProps(props, partialIntent([]string{"stats"}, nil))
		require.NoError(t, err)

		assert.Equal(t, 42, resolved["stats"])
		assert.NotContains(t, resolved, "user")
		assert.NotContains(t, resolved, "other")
	})

	t.Run("always and reserved names bypass the allowlist", func(t *testing.T) {
		t.Parallel()

		props := Props{
			"stats":    1,
			"perms":    Always("admin"),
			PropErrors: map[string]string{"email": "taken"},
			PropFlash:  "saved",
			"other":    "dropped",
		}

		resolved, err := ResolveProps(props, partialIntent([]string{"stats"}, nil))
		require.NoError(t, err)

		assert.Equal(t, 1, resolved["stats"])
		assert.Equal(t, "admin", resolved["perms"])
		assert.Contains(t, resolved, PropErrors)
		assert.Contains(t, resolved, PropFlash)
		assert.NotContains(t, resolved, "other")
	})

	t.Run("empty only sends everything resolvable", func(t *testing.T) {
		t.Parallel()

		props := Props{"a": 1, "b": Optional(2)}

		resolved, err := ResolveProps(props, partialIntent(nil, nil))
		require.NoError(t, err)

		assert.Equal(t, 1, resolved["a"])
		// A targeted partial with no allowlist sends optional props too.
		assert.Equal(t, 2, resolved["b"])
	})
}

func TestResolveProps_ExceptWins(t *testing.T) {
	t.Parallel()

	props := Props{
		"stats": 1,
		"user":  2,
		"perms": Always(3),
	}

	in := partialIntent([]string{"stats", "user"}, []string{"user", "perms"})
	resolved, err := ResolveProps(props, in)
	require.NoError(t, err)

	assert.Equal(t, 1, resolved["stats"])
	// Except beats only, and beats Always.
	assert.NotContains(t, resolved, "user")
	assert.NotContains(t, resolved, "perms")
}

func TestResolveProps_OnceExclusion(t *testing.T) {
	t.Parallel()

	t.Run("held entry is excluded", func(t *testing.T) {
		t.Parallel()

		in := fullIntent(true)
		in.ExceptOnce = Set{"settings": {}}

		resolved, err := ResolveProps(Props{"settings": Once("dark")}, in)
		require.NoError(t, err)
		assert.NotContains(t, resolved, "settings")
	})

	t.Run("custom cache key drives exclusion", func(t *testing.T) {
		t.Parallel()

		in := fullIntent(true)
		in.ExceptOnce = Set{"roles": {}}

		resolved, err := ResolveProps(Props{"permissions": Once(1).As("roles")}, in)
		require.NoError(t, err)
		assert.NotContains(t, resolved, "permissions")
	})

	t.Run("explicit only overrides the cache", func(t *testing.T) {
		t.Parallel()

		in := partialIntent([]string{"settings"}, nil)
		in.ExceptOnce = Set{"settings": {}}

		resolved, err := ResolveProps(Props{"settings": Once("dark")}, in)
		require.NoError(t, err)
		assert.Equal(t, "dark", resolved["settings"])
	})

	t.Run("fresh overrides the cache", func(t *testing.T) {
		t.Parallel()

		in := fullIntent(true)
		in.ExceptOnce = Set{"settings": {}}

		resolved, err := ResolveProps(Props{"settings": Once("dark").Fresh()}, in)
		require.NoError(t, err)
		assert.Equal(t, "dark", resolved["settings"])
	})

	t.Run("reset overrides the cache", func(t *testing.T) {
		t.Parallel()

		in := fullIntent(true)
		in.ExceptOnce = Set{"roles": {}}
		in.Reset = Set{"roles": {}}

		resolved, err := ResolveProps(Props{"permissions": Once(1).As("roles")}, in)
		require.NoError(t, err)
		assert.Equal(t, 1, resolved["permissions"])
	})

	t.Run("once-flagged merge prop is excluded", func(t *testing.T) {
		t.Parallel()

		in := fullIntent(true)
		in.ExceptOnce = Set{"feed": {}}

		resolved, err := ResolveProps(Props{"feed": Merge([]int{1}).Once()}, in)
		require.NoError(t, err)
		assert.NotContains(t, resolved, "feed")
	})

	t.Run("once-flagged deferred prop excluded on targeted fetch", func(t *testing.T) {
		t.Parallel()

		in := partialIntent(nil, nil)
		in.ExceptOnce = Set{"stats": {}}

		resolved, err := ResolveProps(Props{"stats": Defer(1).Once()}, in)
		require.NoError(t, err)
		assert.NotContains(t, resolved, "stats")
	})
}

func TestResolveProps_Computations(t *testing.T) {
	t.Parallel()

	t.Run("plain computations run", func(t *testing.T) {
		t.Parallel()

		props := Props{
			"count": func() any { return 7 },
			"pair":  func() (any, error) { return "ok", nil },
		}

		resolved, err := ResolveProps(props, fullIntent(false))
		require.NoError(t, err)
		assert.Equal(t, 7, resolved["count"])
		assert.Equal(t, "ok", resolved["pair"])
	})

	t.Run("first error aborts with prop name", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("db down")
		props := Props{
			"broken": func() (any, error) { return nil, boom },
			"fine":   1,
		}

		resolved, err := ResolveProps(props, fullIntent(false))
		require.ErrorIs(t, err, boom)
		assert.ErrorContains(t, err, `"broken"`)
		assert.Nil(t, resolved)
	})

	t.Run("excluded computations never run", func(t *testing.T) {
		t.Parallel()

		props := Props{
			"dropped": Optional(func() any { t.Error("excluded prop resolved"); return nil }),
			"kept":    1,
		}

		_, err := ResolveProps(props, fullIntent(true))
		require.NoError(t, err)
	})
}

func TestResolveProps_Nested(t *testing.T) {
	t.Parallel()

	t.Run("nested computations and props resolve in place", func(t *testing.T) {
		t.Parallel()

		props := Props{
			"dashboard": map[string]any{
				"count": func() any { return 3 },
				"perms": Always("admin"),
			},
		}

		resolved, err := ResolveProps(props, fullIntent(false))
		require.NoError(t, err)

		nested, ok := resolved["dashboard"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, 3, nested["count"])
		assert.Equal(t, "admin", nested["perms"])
	})

	t.Run("nested deferred and optional are dropped", func(t *testing.T) {
		t.Parallel()

		props := Props{
			"dashboard": Props{
				"stats": Defer(1),
				"heavy": Optional(2),
				"name":  "jo",
			},
		}

		resolved, err := ResolveProps(props, fullIntent(false))
		require.NoError(t, err)

		nested, ok := resolved["dashboard"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "jo", nested["name"])
		assert.NotContains(t, nested, "stats")
		assert.NotContains(t, nested, "heavy")
	})

	t.Run("slices keep surviving items", func(t *testing.T) {
		t.Parallel()

		props := Props{
			"items": []any{1, Defer(2), func() any { return 3 }},
		}

		resolved, err := ResolveProps(props, fullIntent(false))
		require.NoError(t, err)
		assert.Equal(t, []any{1, 3}, resolved["items"])
	})

	t.Run("top-level prop resolving to a bare deferred is dropped", func(t *testing.T) {
		t.Parallel()

		props := Props{
			"wrapped": func() any { return Defer(1) },
		}

		resolved, err := ResolveProps(props, fullIntent(false))
		require.NoError(t, err)
		assert.NotContains(t, resolved, "wrapped")
	})

	t.Run("nested error propagates", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		props := Props{
			"outer": map[string]any{
				"inner": func() (any, error) { return nil, boom },
			},
		}

		_, err := ResolveProps(props, fullIntent(false))
		require.ErrorIs(t, err, boom)
		assert.ErrorContains(t, err, `"outer"`)
	})
}
