package listings

import (
	"fmt"
	"strings"
	"testing"

	"github.com/jonathan/internship-finder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func internshalaCard(title, company, href string) string {
	var sb strings.Builder
	sb.WriteString(`<div class="internship_meta">`)
	if href != "" {
		fmt.Fprintf(&sb, `<a href="%s">`, href)
	}
	if title != "" {
		fmt.Fprintf(&sb, `<h3>  %s </h3>`, title)
	}
	if href != "" {
		sb.WriteString(`</a>`)
	}
	if company != "" {
		fmt.Fprintf(&sb, `<a class="link_display_like_text" href="/company">%s</a>`, company)
	}
	sb.WriteString(`</div>`)
	return sb.String()
}

func page(cards ...string) string {
	return "<html><body>" + strings.Join(cards, "\n") + "</body></html>"
}

func TestParse_Internshala(t *testing.T) {
	src := Internshala("https://internshala.com")
	html := page(
		internshalaCard("Python Intern", "Acme", "/internship/detail/python-intern-1"),
		internshalaCard("Web Intern", "", "/internship/detail/web-intern-2"),
	)

	got, err := Parse(src, html)
	require.NoError(t, err)
	assert.Equal(t, []types.Listing{
		{Title: "Python Intern", Company: "Acme", Link: "https://internshala.com/internship/detail/python-intern-1"},
		{Title: "Web Intern", Company: types.NotAvailable, Link: "https://internshala.com/internship/detail/web-intern-2"},
	}, got)
}

func TestParse_SkipsIncompleteListings(t *testing.T) {
	src := Internshala("https://internshala.com")
	html := page(
		internshalaCard("", "NoTitle Inc", "/a"),
		`<div class="internship_meta"><h3>No Link</h3></div>`,
		`<div class="internship_meta"><a><h3>Empty Href</h3></a></div>`,
		internshalaCard("Kept", "Co", "/kept"),
	)

	got, err := Parse(src, html)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Kept", got[0].Title)
}

func TestParse_BlankTitleCountsAsMissing(t *testing.T) {
	src := Internshala("https://internshala.com")
	html := page(
		`<div class="internship_meta"><a href="/i/1"><h3>  </h3></a></div>`,
		`<div class="internship_meta"><a href="/i/2"><h3></h3></a></div>`,
	)

	got, err := Parse(src, html)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParse_OnlyFirstTenContainers(t *testing.T) {
	src := Internshala("https://internshala.com")
	var cards []string
	// The first container is incomplete, so only nine of the first ten survive.
	cards = append(cards, `<div class="internship_meta"></div>`)
	for i := 0; i < 14; i++ {
		cards = append(cards, internshalaCard(fmt.Sprintf("Intern %d", i), "Co", fmt.Sprintf("/i/%d", i)))
	}

	got, err := Parse(src, page(cards...))
	require.NoError(t, err)
	assert.Len(t, got, 9)
	assert.Equal(t, "Intern 0", got[0].Title)
	assert.Equal(t, "Intern 8", got[8].Title)
}

func TestParse_AbsoluteLinkKept(t *testing.T) {
	src := Internshala("https://internshala.com")
	html := page(internshalaCard("Intern", "Co", "https://elsewhere.example/job/1"))

	got, err := Parse(src, html)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "https://elsewhere.example/job/1", got[0].Link)
}

func TestParse_LinkedIn(t *testing.T) {
	src := LinkedIn("https://www.linkedin.com")
	html := page(
		`<div class="result-card">
			<a class="result-card__full-card-link" href="https://www.linkedin.com/jobs/view/123">open</a>
			<h3 class="result-card__title">Junior Python Developer</h3>
			<h4 class="result-card__subtitle">Globex</h4>
		</div>`,
		`<div class="result-card">
			<a class="result-card__full-card-link" href="/jobs/view/456">open</a>
			<h3 class="result-card__title">Frontend Engineer</h3>
		</div>`,
		`<div class="result-card">
			<h3 class="result-card__title">No link</h3>
		</div>`,
		`<div class="other-card"><h3 class="result-card__title">Wrong container</h3></div>`,
	)

	got, err := Parse(src, html)
	require.NoError(t, err)
	assert.Equal(t, []types.Listing{
		{Title: "Junior Python Developer", Company: "Globex", Link: "https://www.linkedin.com/jobs/view/123"},
		{Title: "Frontend Engineer", Company: types.NotAvailable, Link: "https://www.linkedin.com/jobs/view/456"},
	}, got)
}

func TestParse_NoContainers(t *testing.T) {
	got, err := Parse(Internshala("https://internshala.com"), "<html><body><p>redesigned</p></body></html>")
	require.NoError(t, err)
	assert.Empty(t, got)
}
