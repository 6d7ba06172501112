package listings

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jonathan/internship-finder/internal/fetch"
	"github.com/jonathan/internship-finder/internal/types"
	"golang.org/x/sync/errgroup"
)

// FetchError reports a listing fetch that failed at the transport, status,
// or parse stage. Callers treat it as an empty result.
type FetchError struct {
	Source string
	URL    string
	Cause  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("listing fetch from %s failed: %v", e.Source, e.Cause)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// Config configures a Fetcher.
type Config struct {
	Sources    []Source
	Timeout    time.Duration
	UseBrowser bool
	// Options overrides the HTTP fetch options (client, user agent).
	Options *fetch.Options
}

// Fetcher queries the configured listing sources.
type Fetcher struct {
	sources    []Source
	timeout    time.Duration
	useBrowser bool
	options    *fetch.Options
}

// NewFetcher creates a Fetcher from cfg.
func NewFetcher(cfg Config) *Fetcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = fetch.DefaultTimeout
	}
	opts := cfg.Options
	if opts == nil {
		opts = fetch.DefaultOptions()
		opts.Timeout = timeout
	}
	return &Fetcher{
		sources:    cfg.Sources,
		timeout:    timeout,
		useBrowser: cfg.UseBrowser,
		options:    opts,
	}
}

// Sources returns the configured sources in display order.
func (f *Fetcher) Sources() []Source {
	return f.sources
}

// Fetch issues one request to src for query and parses the page.
// It never retries; every failure is returned as *FetchError.
func (f *Fetcher) Fetch(ctx context.Context, src Source, query string) ([]types.Listing, error) {
	target := src.SearchURL(query)

	var (
		result *fetch.Result
		err    error
	)
	if f.useBrowser {
		result, err = fetch.WithBrowser(ctx, target, f.timeout)
	} else {
		opts := *f.options
		if len(src.Headers) > 0 {
			opts.Headers = mergeHeaders(f.options.Headers, src.Headers)
			if ua, ok := opts.Headers["User-Agent"]; ok {
				opts.UserAgent = ua
			}
		}
		result, err = fetch.URL(ctx, target, &opts)
	}
	if err != nil {
		return nil, &FetchError{Source: src.Name, URL: target, Cause: err}
	}

	listings, err := Parse(src, result.HTML)
	if err != nil {
		return nil, &FetchError{Source: src.Name, URL: target, Cause: err}
	}
	return listings, nil
}

// FetchAll queries every configured source concurrently and returns one group
// per source in configuration order. A failing source is logged and yields an
// empty group; FetchAll itself never fails.
func (f *Fetcher) FetchAll(ctx context.Context, query string) []types.ListingGroup {
	groups := make([]types.ListingGroup, len(f.sources))

	var g errgroup.Group
	for i, src := range f.sources {
		groups[i] = types.ListingGroup{Source: src.Name, Heading: src.Heading, Listings: []types.Listing{}}
		g.Go(func() error {
			listings, err := f.Fetch(ctx, src, query)
			if err != nil {
				log.Printf("[listings] %v", err)
				return nil
			}
			log.Printf("[listings] %s returned %d listings for %q", src.Name, len(listings), query)
			groups[i].Listings = listings
			return nil
		})
	}
	_ = g.Wait()

	return groups
}

func mergeHeaders(base, extra map[string]string) map[string]string {
	merged := make(map[string]string, len(base)+len(extra))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}
