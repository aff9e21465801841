package gren

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// maxRedirects bounds the 302 chain a release host may send us through.
const maxRedirects = 10

// ErrTooManyRedirects is returned when a download chains through more than
// maxRedirects 302 responses.
var ErrTooManyRedirects = errors.New("too many redirects")

// DownloadError is a terminal failure fetching a release artifact.
type DownloadError struct {
	URL string
	Err error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("failed downloading %s: %v", e.URL, e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }

// noFollowClient leaves redirect handling to downloadArtifact so it can
// validate the location header itself.
var noFollowClient = &http.Client{
	CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	},
}

// downloadArtifact fetches url into w, following 302 responses. A 302 must
// carry exactly one location header value; anything else is terminal.
func downloadArtifact(ctx context.Context, url string, w io.Writer) error {
	for hop := 0; hop <= maxRedirects; hop++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return &DownloadError{URL: url, Err: err}
		}
		resp, err := noFollowClient.Do(req)
		if err != nil {
			return &DownloadError{URL: url, Err: err}
		}
		if resp.StatusCode == http.StatusFound {
			locations := resp.Header.Values("Location")
			err = resp.Body.Close()
			if err != nil {
				return &DownloadError{URL: url, Err: err}
			}
			if len(locations) != 1 {
				return &DownloadError{URL: url, Err: errors.New("missing or vague location header")}
			}
			url = locations[0]
			continue
		}
		if resp.StatusCode >= 300 {
			err = fmt.Errorf("unexpected response status %q", resp.Status)
			return &DownloadError{URL: url, Err: errors.Join(err, resp.Body.Close())}
		}
		_, err = io.Copy(w, resp.Body)
		if err != nil {
			return &DownloadError{URL: url, Err: errors.Join(err, resp.Body.Close())}
		}
		return resp.Body.Close()
	}
	return &DownloadError{URL: url, Err: ErrTooManyRedirects}
}
