package goquery_test

import (
	"testing"

	"github.com/fwojciec/artex"
	"github.com/fwojciec/artex/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Lookup(t *testing.T) {
	t.Parallel()

	registry := goquery.NewRegistry(
		artex.SiteRule{Name: "globo", HostSuffix: "globo.com"},
		artex.SiteRule{Name: "ge", HostSuffix: "WWW.ge.globo.com"},
		artex.SiteRule{Name: "empty", HostSuffix: " "},
	)

	tests := []struct {
		host string
		want string
		ok   bool
	}{
		{"ge.globo.com", "ge", true},
		{"www.ge.globo.com", "ge", true},
		{"interativos.ge.globo.com", "ge", true},
		{"g1.globo.com", "globo", true},
		{"GLOBO.COM", "globo", true},
		{"notglobo.com", "", false},
		{"example.com", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			t.Parallel()

			rule, ok := registry.Lookup(tt.host)

			require.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, rule.Name)
		})
	}
}

func TestRegistry_List(t *testing.T) {
	t.Parallel()

	t.Run("lists rule names in sorted order", func(t *testing.T) {
		t.Parallel()

		registry := goquery.NewRegistry(goquery.DefaultRules()...)

		assert.Equal(t, []string{"ge", "lance"}, registry.List())
	})

	t.Run("a later rule replaces one with the same suffix", func(t *testing.T) {
		t.Parallel()

		registry := goquery.NewRegistry(
			artex.SiteRule{Name: "old", HostSuffix: "lance.com.br"},
			artex.SiteRule{Name: "new", HostSuffix: "www.lance.com.br"},
		)

		rule, ok := registry.Lookup("lance.com.br")

		require.True(t, ok)
		assert.Equal(t, "new", rule.Name)
		assert.Equal(t, []string{"new"}, registry.List())
	})

	t.Run("is not affected by changes to the caller's slices", func(t *testing.T) {
		t.Parallel()

		containers := []string{"article"}
		registry := goquery.NewRegistry(artex.SiteRule{Name: "x", HostSuffix: "x.com", ContainerSelectors: containers})
		containers[0] = "main"

		rule, _ := registry.Lookup("x.com")

		assert.Equal(t, []string{"article"}, rule.ContainerSelectors)
	})
}
