// Package listings scrapes third-party job and internship listing pages.
// Scraping is best-effort: selectors follow each site's markup as of writing
// and simply stop matching when the markup changes.
package listings

import (
	"fmt"
	"sort"
	"strings"
)

// MaxListings caps how many listing containers are read from one page.
const MaxListings = 10

// Source describes one listing site: how to build its search URL and which
// CSS selectors locate listings on the returned page.
type Source struct {
	Name    string
	Heading string
	BaseURL string

	// SearchPath turns a space-joined skill query into a path relative to BaseURL.
	SearchPath func(query string) string

	Container string
	Title     string
	Company   string
	Link      string

	Headers map[string]string
}

// SearchURL returns the absolute search URL for query.
func (s Source) SearchURL(query string) string {
	return strings.TrimRight(s.BaseURL, "/") + s.SearchPath(query)
}

const (
	// SourceInternshala is the config name of the Internshala source.
	SourceInternshala = "internshala"
	// SourceLinkedIn is the config name of the LinkedIn source.
	SourceLinkedIn = "linkedin"
)

// Internshala returns the Internshala internship source rooted at baseURL.
func Internshala(baseURL string) Source {
	return Source{
		Name:    SourceInternshala,
		Heading: "Internships",
		BaseURL: baseURL,
		SearchPath: func(query string) string {
			return "/internships/keywords-" + strings.ReplaceAll(query, " ", "-")
		},
		Container: "div.internship_meta",
		Title:     "h3",
		Company:   "a.link_display_like_text",
		Link:      "a",
	}
}

// LinkedIn returns the LinkedIn job search source rooted at baseURL.
func LinkedIn(baseURL string) Source {
	return Source{
		Name:    SourceLinkedIn,
		Heading: "LinkedIn Jobs",
		BaseURL: baseURL,
		SearchPath: func(query string) string {
			return "/jobs/search/?keywords=" + strings.ReplaceAll(query, " ", "%20")
		},
		Container: "div.result-card",
		Title:     "h3.result-card__title",
		Company:   "h4.result-card__subtitle",
		Link:      "a.result-card__full-card-link",
		Headers:   map[string]string{"User-Agent": "Mozilla/5.0"},
	}
}

// defaultBaseURLs maps source names to their production roots.
var defaultBaseURLs = map[string]string{
	SourceInternshala: "https://internshala.com",
	SourceLinkedIn:    "https://www.linkedin.com",
}

// Names returns the known source names, sorted.
func Names() []string {
	names := make([]string, 0, len(defaultBaseURLs))
	for name := range defaultBaseURLs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the named source. An empty baseURL selects the production site.
func Lookup(name, baseURL string) (Source, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if baseURL == "" {
		baseURL = defaultBaseURLs[name]
	}
	switch name {
	case SourceInternshala:
		return Internshala(baseURL), nil
	case SourceLinkedIn:
		return LinkedIn(baseURL), nil
	default:
		return Source{}, fmt.Errorf("unknown listing source %q (known: %s)", name, strings.Join(Names(), ", "))
	}
}
