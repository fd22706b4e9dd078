package urls

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feeds.txt")
	data := `# feed list
https://example.com/rss.xml
https://example.org/feed,

	https://example.net/atom.xml

# trailing comment
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := NewFileSource(path).URLs(context.Background())
	if err != nil {
		t.Fatalf("URLs failed: %v", err)
	}

	want := []string{
		"https://example.com/rss.xml",
		"https://example.org/feed",
		"https://example.net/atom.xml",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("URLs = %v, want %v", got, want)
	}
}

func TestFileSource_MissingFile(t *testing.T) {
	_, err := NewFileSource(filepath.Join(t.TempDir(), "nope.txt")).URLs(context.Background())
	if err == nil {
		t.Fatal("URLs should fail for a missing file")
	}
}

func TestExtractURLs(t *testing.T) {
	text := `Feeds to check:
https://example.com/rss.xml and also
http://example.org/feed
https://example.com/rss.xml (again)
ftp://ignored.example.com/file`

	got := ExtractURLs(text)

	want := []string{
		"https://example.com/rss.xml",
		"http://example.org/feed",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractURLs = %v, want %v (deduped, first-appearance order)", got, want)
	}
}

func TestExtractURLs_Empty(t *testing.T) {
	if got := ExtractURLs("no links in this text"); len(got) != 0 {
		t.Errorf("ExtractURLs = %v, want none", got)
	}
}

func TestApplyFilters(t *testing.T) {
	list := []string{
		"https://example.com/rss.xml",
		"ftp://example.com/file",
		"not a url",
		"https://example.com/rss.xml",
		"http://example.org/feed",
		"https://",
	}

	got, err := Apply(context.Background(), list, NewSchemeFilter(), NewDedupFilter())
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	want := []string{
		"https://example.com/rss.xml",
		"http://example.org/feed",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Apply = %v, want %v", got, want)
	}
}
