package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"psp.com/chapter-quiz/internal/questionbank"
)

const userAgent = "Chapter-Quiz-Importer/1.0 (+https://example.org)"

var ErrBadStatus = errors.New("unexpected response status")

// FetchBank downloads an HTML question page and parses it.
func FetchBank(ctx context.Context, client *http.Client, pageURL string) ([]questionbank.Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: %s: %d", ErrBadStatus, pageURL, resp.StatusCode)
	}
	return ParseBank(resp.Body)
}
