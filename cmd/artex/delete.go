package main

import (
	"fmt"

	"github.com/fwojciec/artex"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return artex.Errorf(artex.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Articles.DeleteArticle(deps.Ctx, c.ID); err != nil {
		if artex.ErrorCode(err) == artex.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: article %q not found. Use 'artex list' to see stored articles.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", artex.ErrorMessage(err))
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted article %s\n", c.ID)
	return nil
}
