package content

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/contentaudit/contentaudit/internal/model"
)

// Parse extracts everything the audit phases evaluate from raw markup. The
// page URL anchors relative links and decides which links count as internal.
//
// Design decision: We return a fully populated snapshot from a single pass
// rather than lazy accessors because:
//  1. Evaluators run concurrently and must not share a live DOM
//  2. The snapshot is what gets persisted and exported
//  3. One pass keeps fetch-and-parse timing honest
func Parse(rawHTML, pageURL string) (*model.FetchedContent, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page url %q: %w", pageURL, err)
	}

	content := &model.FetchedContent{
		URL:        pageURL,
		RawHTML:    rawHTML,
		MetaTags:   make(map[string]string),
		FetchedVia: "parse",
	}

	content.Title = strings.TrimSpace(doc.Find("title").First().Text())

	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		name, ok := s.Attr("name")
		if !ok || name == "" {
			name, _ = s.Attr("property")
		}
		value, _ := s.Attr("content")
		if name != "" && value != "" {
			content.MetaTags[strings.ToLower(name)] = value
		}
	})
	content.Description = content.MetaTags["description"]

	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		name := goquery.NodeName(s)
		if len(name) != 2 {
			return
		}
		content.Headings = append(content.Headings, model.Heading{
			Level: int(name[1] - '0'),
			Text:  collapseWhitespace(s.Text()),
		})
	})

	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		resolved := resolveURL(base, src)
		if resolved == "" {
			return
		}
		alt, _ := s.Attr("alt")
		content.Images = append(content.Images, model.Image{
			Source: resolved,
			Alt:    strings.TrimSpace(alt),
		})
	})

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		resolved := resolveURL(base, href)
		if resolved == "" {
			return
		}
		if isInternalLink(base, resolved) {
			content.InternalLinks = append(content.InternalLinks, resolved)
		} else {
			content.ExternalLinks = append(content.ExternalLinks, resolved)
		}
	})

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		if block := strings.TrimSpace(s.Text()); block != "" {
			content.StructuredData = append(content.StructuredData, block)
		}
	})

	if href, ok := doc.Find(`link[rel="canonical"]`).First().Attr("href"); ok {
		content.CanonicalURL = resolveURL(base, href)
	}

	content.PlainText = extractPlainText(doc)

	langAttr, _ := doc.Find("html").First().Attr("lang")
	content.Language = ResolveLanguage(langAttr, content.PlainText)

	return content, nil
}

// extractPlainText returns the visible text of the page: scripts, styles,
// and other non-content elements removed, whitespace collapsed.
func extractPlainText(doc *goquery.Document) string {
	body := doc.Find("body").Clone()
	body.Find("script, style, noscript, template, iframe").Remove()
	return collapseWhitespace(body.Text())
}

// collapseWhitespace trims text and folds whitespace runs into single
// spaces.
func collapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// resolveURL resolves href against the base URL. Non-navigational schemes
// and fragment jumps resolve to "".
func resolveURL(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return ""
	}
	for _, scheme := range []string{"javascript:", "mailto:", "tel:", "data:"} {
		if strings.HasPrefix(href, scheme) {
			return ""
		}
	}

	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(u).String()
}

// isInternalLink reports whether link points at the same host as the page.
func isInternalLink(base *url.URL, link string) bool {
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Hostname(), base.Hostname())
}
