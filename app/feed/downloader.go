package feed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// ImageStore persists one downloaded image payload under a local file name.
type ImageStore interface {
	CreateImage(fileName string, data []byte) error
}

// ImageDownloader fetches each discovered image URL exactly once and stores
// the payload under a collision-free local name. A failed download is logged
// and recorded as missing; it never aborts the post import.
type ImageDownloader struct {
	httpClient *http.Client
	userAgent  string
}

func NewImageDownloader(httpClient *http.Client, userAgent string) *ImageDownloader {
	return &ImageDownloader{
		httpClient: httpClient,
		userAgent:  userAgent,
	}
}

// Run attempts one download per URL and returns the url -> local file name
// map for the successes. Local names are "<baseName>-<seq>.<ext>"; the
// per-post sequence index guarantees uniqueness within a run.
func (d *ImageDownloader) Run(ctx context.Context, store ImageStore, urls []string, baseName string, timeout time.Duration) map[string]string {
	images := make(map[string]string, len(urls))

	for i, url := range urls {
		data, err := d.fetchImage(ctx, url, timeout)
		if err != nil {
			slog.Warn("Failed to download image", "url", url, "error", err)
			continue
		}

		fileName := fmt.Sprintf("%s-%d.%s", baseName, i+1, extensionFromURL(url))
		if err := store.CreateImage(fileName, data); err != nil {
			slog.Warn("Failed to store image", "url", url, "file", fileName, "error", err)
			continue
		}

		images[url] = fileName
	}

	return images
}

func (d *ImageDownloader) fetchImage(ctx context.Context, url string, timeout time.Duration) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", d.userAgent)
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}

var extensionPattern = regexp.MustCompile(`^[a-z0-9]{1,5}$`)

// extensionFromURL takes the extension of the URL's trailing path segment.
// Signed URLs and query strings produce garbage extensions, so anything that
// does not look like a plain one falls back to "jpg".
func extensionFromURL(url string) string {
	if i := strings.IndexAny(url, "?#"); i >= 0 {
		url = url[:i]
	}
	if i := strings.LastIndex(url, "/"); i >= 0 {
		url = url[i+1:]
	}

	i := strings.LastIndex(url, ".")
	if i < 0 || i == len(url)-1 {
		return "jpg"
	}

	ext := strings.ToLower(url[i+1:])
	if !extensionPattern.MatchString(ext) {
		return "jpg"
	}
	return ext
}
