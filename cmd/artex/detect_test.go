package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/artex"
	main "github.com/fwojciec/artex/cmd/artex"
	"github.com/fwojciec/artex/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints platform and site rule", func(t *testing.T) {
		t.Parallel()

		var gotHost string
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					return "<html></html>", nil
				},
			},
			Sites: &mock.SiteRegistry{
				LookupFn: func(host string) (artex.SiteRule, bool) {
					gotHost = host
					return artex.SiteRule{Name: "ge"}, true
				},
			},
			Detector: &mock.PlatformDetector{
				DetectFn: func(html string) artex.Platform {
					return artex.PlatformArc
				},
			},
		}

		cmd := &main.DetectCmd{URL: "https://www.ge.globo.com/futebol/"}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, "ge.globo.com", gotHost)
		assert.Equal(t, "platform: arc\nrule:     ge\n", stdout.String())
	})
}
