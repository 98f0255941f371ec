package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/artex"
)

// Run executes the feed command.
func (c *FeedCmd) Run(deps *Dependencies) error {
	html, err := loadPage(deps, c.URL, "")
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	links, err := deps.Listings.ExtractLinks(html, c.URL, c.Selector, c.Limit)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", artex.ErrorMessage(err))
		return err
	}

	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}
	feed, err := artex.NewFeed(c.URL, links, now())
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", artex.ErrorMessage(err))
		return err
	}

	return deps.Feeds.EncodeFeed(deps.Stdout, feed)
}
