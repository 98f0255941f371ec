package main

import (
	"fmt"

	"github.com/fwojciec/artex"
)

// Run executes the detect command.
func (c *DetectCmd) Run(deps *Dependencies) error {
	html, err := loadPage(deps, c.URL, c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	rule := "(generic)"
	if r, ok := deps.Sites.Lookup(artex.HostOf(c.URL)); ok {
		rule = r.Name
	}

	fmt.Fprintf(deps.Stdout, "platform: %s\n", deps.Detector.Detect(html))
	fmt.Fprintf(deps.Stdout, "rule:     %s\n", rule)
	return nil
}
