package listings

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/internship-finder/internal/types"
)

// Parse extracts listings from html using src's selectors. Only the first
// MaxListings containers are considered; a container without a title or link
// is skipped. A missing company becomes types.NotAvailable. Relative links are
// resolved against src.BaseURL.
func Parse(src Source, html string) ([]types.Listing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	base, err := url.Parse(src.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", src.BaseURL, err)
	}

	listings := make([]types.Listing, 0, MaxListings)
	containers := doc.Find(src.Container)
	containers.Slice(0, min(MaxListings, containers.Length())).Each(func(_ int, s *goquery.Selection) {
		if listing, ok := parseListing(src, base, s); ok {
			listings = append(listings, listing)
		}
	})

	return listings, nil
}

func parseListing(src Source, base *url.URL, s *goquery.Selection) (types.Listing, bool) {
	titleSel := s.Find(src.Title).First()
	if titleSel.Length() == 0 {
		return types.Listing{}, false
	}
	title := strings.TrimSpace(titleSel.Text())
	if title == "" {
		return types.Listing{}, false
	}

	href, ok := s.Find(src.Link).First().Attr("href")
	href = strings.TrimSpace(href)
	if !ok || href == "" {
		return types.Listing{}, false
	}
	ref, err := url.Parse(href)
	if err != nil {
		return types.Listing{}, false
	}

	company := types.NotAvailable
	if companySel := s.Find(src.Company).First(); companySel.Length() > 0 {
		if text := strings.TrimSpace(companySel.Text()); text != "" {
			company = text
		}
	}

	return types.Listing{
		Title:   title,
		Company: company,
		Link:    base.ResolveReference(ref).String(),
	}, true
}
