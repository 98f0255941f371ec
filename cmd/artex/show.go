package main

import (
	"fmt"

	"github.com/fwojciec/artex"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	article, err := deps.Articles.FindArticleByID(deps.Ctx, c.ID)
	if err != nil {
		if artex.ErrorCode(err) == artex.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: article %q not found. Use 'artex list' to see stored articles.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", artex.ErrorMessage(err))
		}
		return err
	}
	return printArticle(deps, article, c.Format)
}
