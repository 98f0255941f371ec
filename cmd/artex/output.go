package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/artex"
)

// printArticle writes a in the requested output format.
func printArticle(deps *Dependencies, a *artex.Article, format string) error {
	switch format {
	case "markdown":
		if deps.Renderer == nil {
			return artex.Errorf(artex.EINTERNAL, "markdown renderer not configured")
		}
		doc, err := deps.Renderer.Render(a)
		if err != nil {
			return err
		}
		_, err = io.WriteString(deps.Stdout, doc)
		return err
	case "prompt":
		_, err := fmt.Fprintln(deps.Stdout, artex.FormatPrompt(a))
		return err
	default:
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(a)
	}
}

// loadPage returns the HTML at url, or the contents of file when set.
func loadPage(deps *Dependencies, url, file string) (string, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	if deps.Fetcher == nil {
		return "", artex.Errorf(artex.EINTERNAL, "fetcher not configured")
	}
	return deps.Fetcher.Fetch(deps.Ctx, url)
}
