package main

import (
	"fmt"

	"github.com/fwojciec/artex"
	"github.com/fwojciec/artex/crawl"
	"github.com/fwojciec/artex/fs"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	html, err := loadPage(deps, c.URL, c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	article, err := deps.Extractor.Extract(html, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", artex.ErrorMessage(err))
		return err
	}
	article.ContentHash = crawl.ComputeHash(article.ContentHTML)

	if deps.TokenCounter != nil {
		if tokens, err := deps.TokenCounter.CountTokens(deps.Ctx, artex.FormatPrompt(article)); err == nil {
			article.Tokens = tokens
		}
	}

	if c.Save {
		if err := deps.Articles.CreateArticle(deps.Ctx, article); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", artex.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stderr, "Saved article %s\n", article.ID)
	}

	if c.Out != "" {
		if err := fs.NewWriter(c.Out, deps.Renderer).WriteArticle(deps.Ctx, article); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", artex.ErrorMessage(err))
			return err
		}
	}

	return printArticle(deps, article, c.Format)
}
