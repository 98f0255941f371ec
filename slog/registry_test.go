package slog_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/fwojciec/artex"
	"github.com/fwojciec/artex/mock"
	artexslog "github.com/fwojciec/artex/slog"
	"github.com/stretchr/testify/assert"
)

func debugLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLoggingRegistry_Lookup(t *testing.T) {
	t.Parallel()

	t.Run("logs the matching rule", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.SiteRegistry{
			LookupFn: func(host string) (artex.SiteRule, bool) {
				return artex.SiteRule{Name: "ge", HostSuffix: "ge.globo.com"}, true
			},
		}

		registry := artexslog.NewLoggingRegistry(inner, debugLogger(&buf))
		rule, ok := registry.Lookup("ge.globo.com")

		assert.True(t, ok)
		assert.Equal(t, "ge", rule.Name)
		output := buf.String()
		assert.Contains(t, output, "site rule lookup")
		assert.Contains(t, output, "host=ge.globo.com")
		assert.Contains(t, output, "rule=ge")
	})

	t.Run("logs generic when no rule applies", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.SiteRegistry{
			LookupFn: func(host string) (artex.SiteRule, bool) {
				return artex.SiteRule{}, false
			},
		}

		registry := artexslog.NewLoggingRegistry(inner, debugLogger(&buf))
		_, ok := registry.Lookup("example.com")

		assert.False(t, ok)
		assert.Contains(t, buf.String(), "rule=(generic)")
	})

	t.Run("stays quiet above debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
		inner := &mock.SiteRegistry{
			LookupFn: func(host string) (artex.SiteRule, bool) {
				return artex.SiteRule{}, false
			},
		}

		artexslog.NewLoggingRegistry(inner, logger).Lookup("example.com")

		assert.Empty(t, buf.String())
	})

	t.Run("delegates List", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.SiteRegistry{
			ListFn: func() []string { return []string{"ge", "lance"} },
		}

		registry := artexslog.NewLoggingRegistry(inner, debugLogger(&buf))
		assert.Equal(t, []string{"ge", "lance"}, registry.List())
	})
}

func TestLoggingDetector_Detect(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	inner := &mock.PlatformDetector{
		DetectFn: func(html string) artex.Platform {
			return artex.PlatformWordPress
		},
	}

	detector := artexslog.NewLoggingDetector(inner, debugLogger(&buf))
	platform := detector.Detect("<html></html>")

	assert.Equal(t, artex.PlatformWordPress, platform)
	output := buf.String()
	assert.Contains(t, output, "platform detection")
	assert.Contains(t, output, "platform=wordpress")
	assert.Contains(t, output, "duration=")
}
