package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/sidharrth2002/rss-scraper/pkg/domain"
)

func rssHandler(titles ...string) http.HandlerFunc {
	body := `<?xml version="1.0" encoding="UTF-8"?><rss version="2.0"><channel><title>Feed</title>`
	for _, title := range titles {
		body += fmt.Sprintf("<item><title>%s</title></item>", title)
	}
	body += "</channel></rss>"

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(body))
	}
}

type captureReporter struct {
	total int
	valid int
	rate  float64
}

func (c *captureReporter) ReportRun(total, valid int, rate float64) {
	c.total, c.valid, c.rate = total, valid, rate
}

func TestRun_ValidFeed(t *testing.T) {
	server := httptest.NewServer(rssHandler("Title One", "Title Two"))
	defer server.Close()

	rep, err := New(Options{WorkerCount: 2}).Run(context.Background(), []string{server.URL})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	rec := rep.Records[0]
	if rec.Validity != domain.ValidityValid {
		t.Fatalf("Validity = %q (%s), want valid", rec.Validity, rec.Reason)
	}
	want := []string{"Title One", "Title Two"}
	if !reflect.DeepEqual(rec.TitleTexts(), want) {
		t.Errorf("Titles = %v, want %v", rec.TitleTexts(), want)
	}
	if rep.ValidityRate != 1.0 {
		t.Errorf("ValidityRate = %v, want 1.0", rep.ValidityRate)
	}
}

func TestRun_EntitiesDecodedNotStripped(t *testing.T) {
	server := httptest.NewServer(rssHandler("A &amp;amp; B &amp;lt;fix&amp;gt;", "Second Headline"))
	defer server.Close()

	rep, err := New(Options{}).Run(context.Background(), []string{server.URL})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	texts := rep.Records[0].TitleTexts()
	if texts[0] != "A & B <fix>" {
		t.Errorf("Title = %q, want %q (entities decode, nothing is stripped)", texts[0], "A & B <fix>")
	}
}

func TestRun_NotXMLIsInvalid(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("this is not xml"))
	}))
	defer server.Close()

	rep, err := New(Options{}).Run(context.Background(), []string{server.URL})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	rec := rep.Records[0]
	if rec.Validity != domain.ValidityInvalid {
		t.Fatalf("Validity = %q, want invalid", rec.Validity)
	}
	if rec.Reason != domain.ReasonNotXML {
		t.Errorf("Reason = %q, want %q", rec.Reason, domain.ReasonNotXML)
	}
	if len(rec.Titles) != 0 {
		t.Errorf("Titles = %v, want none", rec.Titles)
	}
}

func TestRun_HTTPErrorIsInvalid(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	rep, err := New(Options{}).Run(context.Background(), []string{server.URL})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	rec := rep.Records[0]
	if rec.Validity != domain.ValidityInvalid {
		t.Fatalf("Validity = %q, want invalid", rec.Validity)
	}
	if rec.Reason != "HttpError(404)" {
		t.Errorf("Reason = %q, want HttpError(404)", rec.Reason)
	}
}

func TestRun_DuplicateTitlesAreSuspect(t *testing.T) {
	server := httptest.NewServer(rssHandler(
		"Breaking News Update",
		"breaking news update!",
		"Breaking News: Update",
	))
	defer server.Close()

	rep, err := New(Options{}).Run(context.Background(), []string{server.URL})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	rec := rep.Records[0]
	if rec.Validity != domain.ValiditySuspect {
		t.Fatalf("Validity = %q, want suspect", rec.Validity)
	}
	if rec.Reason != domain.ReasonDuplicates {
		t.Errorf("Reason = %q, want %q", rec.Reason, domain.ReasonDuplicates)
	}
}

// TestRun_FaultIsolation mixes live, erroring and dead endpoints and checks
// that each URL gets its own verdict, in input order, with the exact rate.
func TestRun_FaultIsolation(t *testing.T) {
	good := httptest.NewServer(rssHandler("Economic Outlook 2025", "Climate Change Findings"))
	defer good.Close()

	notFound := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer notFound.Close()

	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := dead.URL
	dead.Close()

	good2 := httptest.NewServer(rssHandler("Local Election Results", "Transit Strike Continues"))
	defer good2.Close()

	feedURLs := []string{good.URL, notFound.URL, deadURL, good2.URL}

	reporter := &captureReporter{}
	rep, err := New(Options{WorkerCount: 4, Reporter: reporter}).Run(context.Background(), feedURLs)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(rep.Records) != 4 {
		t.Fatalf("Expected 4 records, got %d", len(rep.Records))
	}
	for i, u := range feedURLs {
		if rep.Records[i].URL != u {
			t.Errorf("Record %d is for %s, want %s (input order must be preserved)", i, rep.Records[i].URL, u)
		}
	}

	wantValidity := []domain.Validity{
		domain.ValidityValid,
		domain.ValidityInvalid,
		domain.ValidityInvalid,
		domain.ValidityValid,
	}
	for i, want := range wantValidity {
		if rep.Records[i].Validity != want {
			t.Errorf("Record %d validity = %q, want %q", i, rep.Records[i].Validity, want)
		}
	}
	if rep.Records[2].Reason != "NetworkError" {
		t.Errorf("Dead endpoint reason = %q, want NetworkError", rep.Records[2].Reason)
	}

	if rep.TotalURLs != 4 || rep.ValidURLs != 2 {
		t.Errorf("Counts = %d/%d, want 2/4", rep.ValidURLs, rep.TotalURLs)
	}
	if rep.ValidityRate != 0.5 {
		t.Errorf("ValidityRate = %v, want 0.5", rep.ValidityRate)
	}
	if reporter.total != 4 || reporter.valid != 2 || reporter.rate != 0.5 {
		t.Errorf("Reporter saw %d/%d (%v), want 2/4 (0.5)", reporter.valid, reporter.total, reporter.rate)
	}
}

func TestRun_EmptyURLList(t *testing.T) {
	if _, err := New(Options{}).Run(context.Background(), nil); err == nil {
		t.Fatal("Run should fail on an empty URL list")
	}
}

func TestRun_CancelledContext(t *testing.T) {
	server := httptest.NewServer(rssHandler("Title One", "Title Two"))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := New(Options{}).Run(ctx, []string{server.URL}); err == nil {
		t.Fatal("Run should report run-level cancellation")
	}
}

func TestRun_TimeoutOnSlowFeed(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer slow.Close()

	rep, err := New(Options{FetchTimeout: 50 * time.Millisecond}).Run(context.Background(), []string{slow.URL})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	rec := rep.Records[0]
	if rec.Validity != domain.ValidityInvalid || rec.Reason != "Timeout" {
		t.Errorf("Record = %q/%q, want invalid/Timeout", rec.Validity, rec.Reason)
	}
}

func TestRun_Autodiscovery(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/feed", rssHandler("Discovered Title One", "Discovered Title Two"))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<!DOCTYPE html><html><head>
			<link rel="alternate" type="application/rss+xml" href="/feed">
		</head><body>Blog home</body></html>`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	rep, err := New(Options{DiscoverFeeds: true}).Run(context.Background(), []string{server.URL + "/"})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	rec := rep.Records[0]
	if rec.Validity != domain.ValidityValid {
		t.Fatalf("Validity = %q (%s), want valid after following the advertised feed", rec.Validity, rec.Reason)
	}
	if texts := rec.TitleTexts(); len(texts) != 2 || texts[0] != "Discovered Title One" {
		t.Errorf("Titles = %v", texts)
	}
}

func TestRun_AutodiscoveryDisabledByDefault(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><head><link rel="alternate" type="application/rss+xml" href="/feed"></head></html>`))
	}))
	defer server.Close()

	rep, err := New(Options{}).Run(context.Background(), []string{server.URL})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	rec := rep.Records[0]
	if rec.Validity != domain.ValidityInvalid || rec.Reason != domain.ReasonNotXML {
		t.Errorf("Record = %q/%q, want invalid/%q when discovery is off", rec.Validity, rec.Reason, domain.ReasonNotXML)
	}
}
