// Package crawl harvests news articles from publisher sites.
// It coordinates sitemap or listing discovery, fetching, extraction,
// and storage of articles.
package crawl

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fwojciec/artex"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of pages fetched in parallel.
const DefaultConcurrency = 4

// Harvester orchestrates the harvesting of articles from a news site.
// Listings, TokenCounter, RateLimiter, Store and Logf are optional.
type Harvester struct {
	Sitemaps     artex.SitemapService
	Listings     artex.ListingExtractor
	Fetcher      artex.Fetcher
	Extractor    artex.Extractor
	Articles     artex.ArticleService
	TokenCounter artex.TokenCounter
	RateLimiter  artex.DomainLimiter
	Store        artex.ArticleStore
	Concurrency  int
	RetryDelays  []time.Duration

	// Logf, when set, receives a line for every fetch retry.
	Logf LogFunc
}

// Options narrows a harvest.
type Options struct {
	// Filter restricts discovered URLs.
	Filter *artex.URLFilter

	// Limit caps the number of new articles fetched. Zero means no limit.
	Limit int

	// Selectors locate article links when the site has no sitemap and the
	// listing page carries no structured data.
	Selectors []string
}

// Result holds the outcome of a harvest.
type Result struct {
	Discovered int
	Saved      int
	Skipped    int
	Failed     int
	Bytes      int
	Tokens     int
}

// ProgressEvent reports progress during a harvest.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting harvest progress.
type ProgressFunc func(event ProgressEvent)

// harvestResult holds the outcome of processing a single URL.
type harvestResult struct {
	position int
	url      string
	article  *artex.Article
	err      error
}

// Harvest discovers article URLs on the site at siteURL, skips those
// already stored, and fetches, extracts and saves the newest remaining
// ones. Failures of single pages are counted, never returned.
func (h *Harvester) Harvest(ctx context.Context, siteURL string, opts Options, progress ProgressFunc) (*Result, error) {
	urls, err := h.discover(ctx, siteURL, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Discovered: len(urls)}

	seen := NewSeenSet(h.Articles)
	if err := seen.Load(ctx, artex.HostOf(siteURL)); err != nil {
		return nil, fmt.Errorf("loading seen URLs: %w", err)
	}

	var fresh []string
	for _, u := range urls {
		if opts.Limit > 0 && len(fresh) >= opts.Limit {
			break
		}
		ok, err := seen.Seen(ctx, u)
		if err != nil {
			return nil, fmt.Errorf("checking %s: %w", u, err)
		}
		if ok {
			result.Skipped++
			continue
		}
		seen.Mark(u)
		fresh = append(fresh, u)
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressStarted,
			Total: len(fresh),
		})
	}

	results := h.processAll(ctx, fresh, progress)

	for _, r := range results {
		if r.err != nil {
			result.Failed++
			continue
		}

		if err := h.Articles.CreateArticle(ctx, r.article); err != nil {
			if artex.ErrorCode(err) == artex.ECONFLICT {
				result.Skipped++
			} else {
				result.Failed++
			}
			continue
		}

		if h.Store != nil {
			if err := h.Store.Save(ctx, r.article); err != nil {
				result.Failed++
				continue
			}
		}

		result.Saved++
		result.Bytes += len(r.article.ContentHTML)
		result.Tokens += r.article.Tokens
	}

	if h.Store != nil {
		if err := ctx.Err(); err != nil {
			_ = h.Store.Abort()
			return nil, err
		}
		if err := h.Store.Commit(); err != nil {
			return nil, fmt.Errorf("committing export: %w", err)
		}
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: len(fresh),
			Total:     len(fresh),
		})
	}

	return result, nil
}

// discover lists candidate article URLs, newest first. The listing page
// is only consulted when the site has no usable sitemap.
func (h *Harvester) discover(ctx context.Context, siteURL string, opts Options) ([]string, error) {
	urls, err := h.Sitemaps.DiscoverURLs(ctx, siteURL, opts.Filter)
	if err != nil {
		return nil, fmt.Errorf("sitemap discovery: %w", err)
	}
	if len(urls) > 0 || h.Listings == nil {
		return urls, nil
	}

	html, err := h.fetch(ctx, siteURL)
	if err != nil {
		return nil, fmt.Errorf("fetching listing page: %w", err)
	}
	links, err := h.Listings.ExtractLinks(html, siteURL, opts.Selectors, 0)
	if err != nil {
		return nil, fmt.Errorf("listing discovery: %w", err)
	}

	urls = make([]string, 0, len(links))
	for _, link := range links {
		if opts.Filter.Match(link.URL) {
			urls = append(urls, link.URL)
		}
	}
	return urls, nil
}

// processAll extracts every URL concurrently and returns results in input order.
func (h *Harvester) processAll(ctx context.Context, urls []string, progress ProgressFunc) []harvestResult {
	concurrency := h.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	resultCh := make(chan harvestResult, len(urls))

	var completed atomic.Int64
	total := len(urls)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, url := range urls {
			g.Go(func() error {
				resultCh <- h.processURL(gctx, i, url)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]harvestResult, len(urls))
	for r := range resultCh {
		completed.Add(1)
		results[r.position] = r

		if progress == nil {
			continue
		}
		event := ProgressEvent{
			Type:      ProgressCompleted,
			Completed: int(completed.Load()),
			Total:     total,
			URL:       r.url,
		}
		if r.err != nil {
			event.Type = ProgressFailed
			event.Error = r.err
		}
		progress(event)
	}
	return results
}

// processURL fetches and extracts a single article.
func (h *Harvester) processURL(ctx context.Context, position int, url string) harvestResult {
	result := harvestResult{
		position: position,
		url:      url,
	}

	html, err := h.fetch(ctx, url)
	if err != nil {
		result.err = err
		return result
	}

	article, err := h.Extractor.Extract(html, url)
	if err != nil {
		result.err = err
		return result
	}

	article.ContentHash = ComputeHash(article.ContentHTML)
	if h.TokenCounter != nil {
		if tokens, err := h.TokenCounter.CountTokens(ctx, artex.FormatPrompt(article)); err == nil {
			article.Tokens = tokens
		}
	}

	result.article = article
	return result
}

// fetch waits for the host's rate limit and fetches url with retries.
func (h *Harvester) fetch(ctx context.Context, url string) (string, error) {
	if h.RateLimiter != nil {
		if err := h.RateLimiter.Wait(ctx, artex.HostOf(url)); err != nil {
			return "", err
		}
	}

	delays := h.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	return FetchWithRetryDelays(ctx, url, h.Fetcher.Fetch, h.Logf, delays)
}
