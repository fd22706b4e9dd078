package feed

import (
	"context"
	"errors"
	"io"
	"net"
	"time"

	"github.com/sidharrth2002/rss-scraper/pkg/domain"
	"github.com/sidharrth2002/rss-scraper/pkg/httpclient"
)

// Fetcher performs bounded-time feed retrievals. Every failure mode is
// encoded in the returned FetchResult status so the pipeline can proceed
// past dead links without aborting the run.
type Fetcher struct {
	client *httpclient.HTTPClient
}

// NewFetcher creates a fetcher with a per-request timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		client: httpclient.NewClient(httpclient.BrowserClient, timeout),
	}
}

// NewFetcherWithClient creates a fetcher around an existing HTTP client.
func NewFetcherWithClient(client *httpclient.HTTPClient) *Fetcher {
	return &Fetcher{client: client}
}

// Fetch performs one outbound GET for the URL. No retries: retry policy,
// if any, belongs to the caller.
func (f *Fetcher) Fetch(ctx context.Context, url string) domain.FetchResult {
	resp, err := f.client.Get(ctx, url)
	if err != nil {
		return domain.FetchResult{URL: url, Status: classifyFetchError(err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.FetchResult{URL: url, Status: domain.FetchHTTPError, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.FetchResult{URL: url, Status: classifyFetchError(err)}
	}

	return domain.FetchResult{URL: url, Status: domain.FetchOK, StatusCode: resp.StatusCode, Body: body}
}

// classifyFetchError maps transport errors onto the fetch status taxonomy.
// Malformed URLs count as network errors: the input list is unvalidated.
func classifyFetchError(err error) domain.FetchStatus {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.FetchTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return domain.FetchTimeout
	}
	return domain.FetchNetworkError
}
