package feed

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrNoFeedLink means an HTML page advertised no RSS/Atom alternate link.
var ErrNoFeedLink = errors.New("no feed link found in page")

// LooksLikeHTML reports whether body is an HTML page rather than a feed.
// Used to decide whether a NotXml body is worth one autodiscovery hop.
func LooksLikeHTML(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return false
	}
	contentType := http.DetectContentType(trimmed)
	if strings.HasPrefix(contentType, "text/html") {
		return true
	}
	head := strings.ToLower(string(trimmed[:min(len(trimmed), 256)]))
	return strings.Contains(head, "<!doctype html") || strings.Contains(head, "<html")
}

// DiscoverFeedURL scans an HTML page for an advertised RSS/Atom feed link
// and returns it resolved against the page URL.
func DiscoverFeedURL(pageURL string, body []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", err
	}

	var feedURL string
	doc.Find(`link[type="application/rss+xml"], link[type="application/atom+xml"]`).Each(func(i int, s *goquery.Selection) {
		if href, exists := s.Attr("href"); exists && feedURL == "" && strings.TrimSpace(href) != "" {
			feedURL = strings.TrimSpace(href)
		}
	})

	if feedURL == "" {
		return "", ErrNoFeedLink
	}
	return resolveURL(pageURL, feedURL)
}

// resolveURL converts relative feed links to absolute ones.
func resolveURL(baseURL, href string) (string, error) {
	u, err := url.Parse(href)
	if err != nil {
		return "", err
	}
	if u.IsAbs() {
		return href, nil
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(u).String(), nil
}
