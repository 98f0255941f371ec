package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/artex"
	"github.com/fwojciec/artex/crawl"
	"github.com/fwojciec/artex/fs"
	"github.com/fwojciec/artex/gemini"
	"github.com/fwojciec/artex/goquery"
	"github.com/fwojciec/artex/htmltomarkdown"
	artexhttp "github.com/fwojciec/artex/http"
	"github.com/fwojciec/artex/readability"
	"github.com/fwojciec/artex/rss"
	artexslog "github.com/fwojciec/artex/slog"
	"github.com/fwojciec/artex/sqlite"
	"github.com/fwojciec/artex/trafilatura"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Fetcher used by every command that reads pages from the network.
	Fetcher artex.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.Fetcher != nil {
		_ = m.Fetcher.Close()
	}
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Now:    time.Now,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("artex"),
		kong.Description("Extract, store and syndicate news articles"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'artex --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd, _, _ := strings.Cut(kongCtx.Command(), " ")

	defer m.Close()
	if err := m.wire(cli, cmd, deps); err != nil {
		return err
	}

	return kongCtx.Run(deps)
}

// wire builds the services the parsed command needs.
func (m *Main) wire(cli *CLI, cmd string, deps *Dependencies) error {
	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(deps.Stderr, &slog.HandlerOptions{Level: level}))

	if m.Fetcher == nil {
		m.Fetcher = artexslog.NewLoggingFetcher(artexhttp.NewFetcher(artexhttp.WithTimeout(cli.Timeout)), logger)
	}
	deps.Fetcher = m.Fetcher

	var body artex.BodyExtractor = trafilatura.NewExtractor()
	if cli.Engine == "readability" {
		body = readability.NewExtractor()
	}

	sites := artexslog.NewLoggingRegistry(goquery.NewRegistry(goquery.DefaultRules()...), logger)
	deps.Sites = sites
	deps.Extractor = artexslog.NewLoggingExtractor(goquery.NewExtractor(body, goquery.WithSites(sites)), logger)
	deps.Listings = artexslog.NewLoggingListingExtractor(goquery.NewListingExtractor(), logger)
	deps.Detector = artexslog.NewLoggingDetector(goquery.NewDetector(), logger)
	deps.Feeds = rss.NewEncoder()

	deps.Renderer = fs.NewRenderer(htmltomarkdown.NewConverter())
	deps.Renderer.MergeImages = goquery.MergeImages

	needsDB := cmd == "harvest" || cmd == "list" || cmd == "show" || cmd == "delete" ||
		(cmd == "extract" && cli.Extract.Save)
	if !needsDB {
		return nil
	}

	if cli.DB != "" {
		m.DBPath = cli.DB
	}
	if dir := filepath.Dir(m.DBPath); dir != "." {
		_ = os.MkdirAll(dir, 0755)
	}
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(deps.Stderr, "Hint: Set ARTEX_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	deps.DB = m.DB
	deps.Articles = sqlite.NewArticleService(m.DB)

	if cmd == "harvest" || cmd == "extract" {
		tokenCounter, err := gemini.NewTokenCounter(gemini.DefaultModel)
		if err != nil {
			logger.Warn("token counting disabled", "err", err)
		} else {
			deps.TokenCounter = tokenCounter
		}
	}

	if cmd == "harvest" {
		h := &crawl.Harvester{
			Sitemaps: artexslog.NewLoggingSitemapService(
				artexhttp.NewSitemapService(nil, artexhttp.WithMaxAge(cli.Harvest.MaxAge)), logger),
			Listings:     deps.Listings,
			Fetcher:      deps.Fetcher,
			Extractor:    deps.Extractor,
			Articles:     deps.Articles,
			TokenCounter: deps.TokenCounter,
			RateLimiter:  crawl.NewDomainLimiter(cli.Harvest.Rate),
		}
		if cli.Harvest.Out != "" {
			out := filepath.Clean(cli.Harvest.Out)
			h.Store = fs.NewFileStore(filepath.Dir(out), filepath.Base(out), deps.Renderer)
		}
		deps.Harvester = h
	}

	return nil
}

func defaultDBPath() string {
	if path := os.Getenv("ARTEX_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "artex.db"
	}
	return filepath.Join(home, ".artex", "artex.db")
}
