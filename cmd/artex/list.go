package main

import (
	"fmt"

	"github.com/fwojciec/artex"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := artex.ArticleFilter{Limit: c.Limit}
	if c.Host != "" {
		filter.Host = &c.Host
	}

	articles, err := deps.Articles.FindArticles(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", artex.ErrorMessage(err))
		return err
	}

	if len(articles) == 0 {
		fmt.Fprintln(deps.Stdout, "No articles found. Use 'artex harvest' or 'artex extract --save' to add some.")
		return nil
	}

	fmt.Fprintln(deps.Stdout, artex.FormatArticles(articles))
	return nil
}
