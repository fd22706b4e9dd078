package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sidharrth2002/rss-scraper/pkg/domain"
)

func TestFetch_OK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte("<rss><channel></channel></rss>"))
	}))
	defer server.Close()

	result := NewFetcher(2*time.Second).Fetch(context.Background(), server.URL)

	if result.Status != domain.FetchOK {
		t.Fatalf("Status = %v, want FetchOK", result.Status)
	}
	if string(result.Body) != "<rss><channel></channel></rss>" {
		t.Errorf("Unexpected body: %q", result.Body)
	}
	if result.URL != server.URL {
		t.Errorf("URL = %q, want %q", result.URL, server.URL)
	}
}

func TestFetch_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	result := NewFetcher(2*time.Second).Fetch(context.Background(), server.URL)

	if result.Status != domain.FetchHTTPError {
		t.Fatalf("Status = %v, want FetchHTTPError", result.Status)
	}
	if result.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", result.StatusCode)
	}
	if result.Body != nil {
		t.Errorf("Body should be absent on HTTP error, got %q", result.Body)
	}
	if result.Reason() != "HttpError(404)" {
		t.Errorf("Reason() = %q, want HttpError(404)", result.Reason())
	}
}

func TestFetch_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Write([]byte("too late"))
	}))
	defer server.Close()

	result := NewFetcher(50*time.Millisecond).Fetch(context.Background(), server.URL)

	if result.Status != domain.FetchTimeout {
		t.Fatalf("Status = %v, want FetchTimeout", result.Status)
	}
	if result.Reason() != "Timeout" {
		t.Errorf("Reason() = %q, want Timeout", result.Reason())
	}
}

func TestFetch_NetworkError(t *testing.T) {
	// Grab a port that nothing listens on.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := server.URL
	server.Close()

	result := NewFetcher(2*time.Second).Fetch(context.Background(), deadURL)

	if result.Status != domain.FetchNetworkError {
		t.Fatalf("Status = %v, want FetchNetworkError", result.Status)
	}
}

func TestFetch_MalformedURL(t *testing.T) {
	result := NewFetcher(2*time.Second).Fetch(context.Background(), "not a url")

	if result.Status != domain.FetchNetworkError {
		t.Fatalf("Status = %v, want FetchNetworkError for a malformed URL", result.Status)
	}
}
