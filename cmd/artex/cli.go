package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/artex"
	"github.com/fwojciec/artex/crawl"
	"github.com/fwojciec/artex/fs"
	"github.com/fwojciec/artex/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Now    func() time.Time

	DB           *sqlite.DB
	Articles     artex.ArticleService
	Fetcher      artex.Fetcher
	Extractor    artex.Extractor
	Listings     artex.ListingExtractor
	Feeds        artex.FeedEncoder
	Sites        artex.SiteRegistry
	Detector     artex.PlatformDetector
	TokenCounter artex.TokenCounter
	Renderer     *fs.Renderer
	Harvester    *crawl.Harvester
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB      string        `name:"db" env:"ARTEX_DB" help:"Article database path (default: ~/.artex/artex.db)"`
	Engine  string        `short:"e" enum:"trafilatura,readability" default:"trafilatura" help:"Body extractor for pages without a site rule (trafilatura, readability)"`
	Timeout time.Duration `short:"t" default:"20s" help:"Fetch timeout per page"`
	Verbose bool          `short:"v" help:"Log every fetch and extraction to stderr"`

	Extract ExtractCmd `cmd:"" help:"Extract one article and print it"`
	Harvest HarvestCmd `cmd:"" help:"Discover, extract and store new articles from a news site"`
	List    ListCmd    `cmd:"" help:"List stored articles"`
	Show    ShowCmd    `cmd:"" help:"Print a stored article"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a stored article"`
	Feed    FeedCmd    `cmd:"" help:"Build an RSS feed from a section or home page"`
	Detect  DetectCmd  `cmd:"" help:"Show the site rule and publishing platform of a page"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URL    string `arg:"" help:"Article URL"`
	File   string `short:"f" type:"existingfile" help:"Read HTML from a file instead of fetching the URL"`
	Format string `short:"o" enum:"json,markdown,prompt" default:"json" help:"Output format (json, markdown, prompt)"`
	Out    string `help:"Also write the article as Markdown below this directory"`
	Save   bool   `short:"s" help:"Store the article in the database"`
}

// HarvestCmd is the "harvest" subcommand.
type HarvestCmd struct {
	URL         string        `arg:"" help:"Site or section URL"`
	Limit       int           `short:"n" default:"20" help:"Maximum new articles to fetch (0 for all)"`
	Filter      []string      `short:"F" name:"filter" help:"Only harvest URLs matching regex (repeatable)"`
	Exclude     []string      `short:"x" help:"Skip URLs matching regex (repeatable)"`
	Selector    []string      `short:"S" help:"CSS selector for article links when the site has no sitemap (repeatable)"`
	MaxAge      time.Duration `default:"72h" help:"Ignore sitemap entries older than this (0 for no cutoff)"`
	Concurrency int           `short:"c" default:"4" help:"Concurrent fetch limit"`
	Rate        float64       `default:"2" help:"Requests per second per host"`
	Out         string        `help:"Also write harvested articles as Markdown below this directory"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Host  string `help:"Only list articles from this host"`
	Limit int    `short:"n" default:"50" help:"Maximum articles to list (0 for all)"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID     string `arg:"" help:"Article ID"`
	Format string `short:"o" enum:"json,markdown,prompt" default:"json" help:"Output format (json, markdown, prompt)"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Article ID"`
	Force bool   `help:"Confirm deletion"`
}

// FeedCmd is the "feed" subcommand.
type FeedCmd struct {
	URL      string   `arg:"" help:"Section or home page URL"`
	Selector []string `short:"S" help:"CSS selector for article links (repeatable)"`
	Limit    int      `short:"n" default:"30" help:"Maximum feed items (0 for all)"`
}

// DetectCmd is the "detect" subcommand.
type DetectCmd struct {
	URL  string `arg:"" help:"Page URL"`
	File string `short:"f" type:"existingfile" help:"Read HTML from a file instead of fetching the URL"`
}
