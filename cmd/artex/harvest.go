package main

import (
	"fmt"

	"github.com/fwojciec/artex"
	"github.com/fwojciec/artex/crawl"
)

// Run executes the harvest command.
func (c *HarvestCmd) Run(deps *Dependencies) error {
	filter, err := artex.NewURLFilter(c.Filter, c.Exclude)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", artex.ErrorMessage(err))
		return err
	}

	if deps.Harvester == nil {
		return artex.Errorf(artex.EINTERNAL, "harvester not configured")
	}
	if c.Concurrency > 0 {
		deps.Harvester.Concurrency = c.Concurrency
	}
	deps.Harvester.Logf = func(format string, args ...any) {
		fmt.Fprintf(deps.Stderr, format+"\n", args...)
	}

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Found %d new articles\n", event.Total)
		case crawl.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s\n", event.Completed, event.Total, crawl.TruncateURL(event.URL, 80))
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Error)
		case crawl.ProgressFinished:
			// Summary printed after harvest completes
		}
	}

	opts := crawl.Options{
		Filter:    filter,
		Limit:     c.Limit,
		Selectors: c.Selector,
	}
	result, err := deps.Harvester.Harvest(deps.Ctx, c.URL, opts, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error harvesting: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "  %s\n", crawl.FormatResult(result))
	return nil
}
