package feed

import (
	"errors"
	"testing"
)

func TestLooksLikeHTML(t *testing.T) {
	tests := []struct {
		name string
		body []byte
		want bool
	}{
		{"doctype page", []byte("<!DOCTYPE html><html><head></head><body></body></html>"), true},
		{"bare html tag", []byte("<html><body>hi</body></html>"), true},
		{"rss feed", []byte(`<?xml version="1.0"?><rss version="2.0"><channel></channel></rss>`), false},
		{"plain text", []byte("just some text"), false},
		{"empty", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LooksLikeHTML(tt.body); got != tt.want {
				t.Errorf("LooksLikeHTML(%.40q) = %v, want %v", tt.body, got, tt.want)
			}
		})
	}
}

func TestDiscoverFeedURL_RelativeHref(t *testing.T) {
	page := []byte(`<!DOCTYPE html>
<html><head>
	<link rel="alternate" type="application/rss+xml" title="RSS" href="/feed.xml">
</head><body></body></html>`)

	feedURL, err := DiscoverFeedURL("https://example.com/blog/", page)
	if err != nil {
		t.Fatalf("DiscoverFeedURL failed: %v", err)
	}
	if feedURL != "https://example.com/feed.xml" {
		t.Errorf("feedURL = %q, want https://example.com/feed.xml", feedURL)
	}
}

func TestDiscoverFeedURL_AbsoluteHrefAndAtom(t *testing.T) {
	page := []byte(`<html><head>
	<link rel="alternate" type="application/atom+xml" href="https://feeds.example.com/posts.atom">
</head><body></body></html>`)

	feedURL, err := DiscoverFeedURL("https://example.com", page)
	if err != nil {
		t.Fatalf("DiscoverFeedURL failed: %v", err)
	}
	if feedURL != "https://feeds.example.com/posts.atom" {
		t.Errorf("feedURL = %q", feedURL)
	}
}

func TestDiscoverFeedURL_NoLink(t *testing.T) {
	page := []byte(`<html><head><title>No feeds here</title></head><body></body></html>`)

	_, err := DiscoverFeedURL("https://example.com", page)
	if !errors.Is(err, ErrNoFeedLink) {
		t.Errorf("err = %v, want ErrNoFeedLink", err)
	}
}
