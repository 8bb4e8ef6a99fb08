package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/feedmark/feedmark/app/database"
	"github.com/feedmark/feedmark/app/markdown"
	"github.com/feedmark/feedmark/app/note"
	"github.com/feedmark/feedmark/app/notify"
)

// ErrImportInProgress is returned when a run is requested for a subscription
// that is already fetching. The caller treats it as a no-op.
var ErrImportInProgress = errors.New("import already in progress")

// Importer drives one end-to-end import run per subscription: fetch the
// feed, select items newer than the watermark, run each through content
// selection, image handling and Markdown conversion, persist the note, and
// advance the watermark past the successes.
type Importer struct {
	httpClient       *http.Client
	parser           *Parser
	extractor        *ImageExtractor
	downloader       *ImageDownloader
	rewriter         *ContentRewriter
	converter        *markdown.Converter
	contentExtractor *ContentExtractor
	builder          *note.Builder
	subRepo          database.SubscriptionRepository
	postRepo         database.PostRepository
	notifier         notify.Notifier
	notesDir         string
	imagesDir        string
	userAgent        string

	mu     sync.Mutex
	active map[string]bool
}

func NewImporter(httpClient *http.Client, subRepo database.SubscriptionRepository,
	postRepo database.PostRepository, notifier notify.Notifier,
	notesDir, imagesDir, userAgent string) *Importer {
	return &Importer{
		httpClient:       httpClient,
		parser:           NewParser(),
		extractor:        NewImageExtractor(),
		downloader:       NewImageDownloader(httpClient, userAgent),
		rewriter:         NewContentRewriter(),
		converter:        markdown.NewConverter(),
		contentExtractor: NewContentExtractor(httpClient, userAgent),
		builder:          note.NewBuilder(),
		subRepo:          subRepo,
		postRepo:         postRepo,
		notifier:         notifier,
		notesDir:         notesDir,
		imagesDir:        imagesDir,
		userAgent:        userAgent,
		active:           make(map[string]bool),
	}
}

// Run executes one import run. A second call for the same subscription while
// one is running returns ErrImportInProgress without touching anything; two
// concurrent runs against the same watermark would corrupt its advancement.
func (im *Importer) Run(ctx context.Context, feedConfig *Config) (*ImportStats, error) {
	if !im.acquire(feedConfig.Name) {
		return nil, ErrImportInProgress
	}
	defer im.release(feedConfig.Name)

	start := time.Now()

	watermark, err := im.subRepo.GetWatermark(feedConfig.Name)
	if err != nil {
		return nil, im.fatal(feedConfig.Name, fmt.Errorf("failed to load watermark: %w", err))
	}

	data, err := im.fetchFeed(ctx, feedConfig)
	if err != nil {
		return nil, im.fatal(feedConfig.Name, err)
	}

	metadata, items, err := im.parser.Run(data)
	if err != nil {
		return nil, im.fatal(feedConfig.Name, err)
	}

	if err := im.subRepo.UpdateSubscriptionTitle(feedConfig.Name, metadata.Title); err != nil {
		slog.Warn("Failed to store feed title", "subscription", feedConfig.Name, "error", err)
	}

	store := note.NewStore(im.resolveNotesDir(feedConfig), im.resolveImagesDir(feedConfig))
	if err := store.EnsureDirs(); err != nil {
		return nil, im.fatal(feedConfig.Name, err)
	}

	stats := &ImportStats{}
	now := time.Now()
	var maxPersistedMs int64

	for _, item := range items {
		effectiveTs := item.EffectiveTimestamp(now)
		effectiveMs := effectiveTs.UnixMilli()

		if effectiveMs <= watermark {
			stats.Skipped++
			continue
		}

		path, err := im.importItem(ctx, feedConfig, store, item, metadata, effectiveTs, now)
		if err != nil {
			slog.Warn("Failed to import item",
				"subscription", feedConfig.Name,
				"guid", item.GUID,
				"title", item.Title,
				"error", err)
			stats.Failed++
			continue
		}

		stats.Imported++
		if effectiveMs > maxPersistedMs {
			maxPersistedMs = effectiveMs
		}

		if err := im.postRepo.RecordPost(feedConfig.Name, item.GUID, path, effectiveMs); err != nil {
			slog.Warn("Failed to record imported post", "subscription", feedConfig.Name, "guid", item.GUID, "error", err)
		}
	}

	if maxPersistedMs > watermark {
		if err := im.subRepo.SetWatermark(feedConfig.Name, maxPersistedMs); err != nil {
			return stats, im.fatal(feedConfig.Name, fmt.Errorf("failed to persist watermark: %w", err))
		}
	}

	if err := im.subRepo.RecordRun(feedConfig.Name, stats.Imported, stats.Skipped, now); err != nil {
		slog.Warn("Failed to record run", "subscription", feedConfig.Name, "error", err)
	}

	stats.Duration = time.Since(start)

	slog.Info("Import completed",
		"subscription", feedConfig.Name,
		"duration", stats.Duration,
		"total", len(items),
		"imported", stats.Imported,
		"skipped", stats.Skipped,
		"failed", stats.Failed)

	im.notifier.Notify(fmt.Sprintf("%s: imported %d new posts, skipped %d already covered",
		feedConfig.Name, stats.Imported, stats.Skipped))

	return stats, nil
}

// importItem runs the per-item pipeline and returns the created note file
// name. Any error here is per-item recoverable.
func (im *Importer) importItem(ctx context.Context, feedConfig *Config, store *note.Store,
	item Item, metadata *Metadata, effectiveTs time.Time, importedAt time.Time) (string, error) {

	html := SelectContent(item)

	if html == "" && feedConfig.Settings.ExtractContent && item.Link != "" {
		extracted, err := im.contentExtractor.Run(ctx, item.Link, feedConfig.Settings.GetTimeout())
		if err != nil {
			slog.Warn("Content extraction failed, importing with empty body",
				"subscription", feedConfig.Name, "link", item.Link, "error", err)
		} else {
			html = extracted
		}
	}

	title := item.Title
	if title == "" {
		title = "Untitled"
	}

	urls := im.extractor.Run(html, item)
	images := im.downloader.Run(ctx, store, urls, note.SanitizeTitle(title), feedConfig.Settings.GetTimeout())
	html = im.rewriter.Run(html, urls, images)

	body, err := im.converter.Run(html)
	if err != nil {
		return "", err
	}

	doc := im.builder.Run(note.Post{
		Title:             title,
		PublishedAt:       effectiveTs,
		Source:            item.Link,
		Feed:              metadata.Title,
		ImportedAt:        importedAt,
		Body:              body,
		Categories:        item.Categories,
		CategoryBacklinks: feedConfig.Settings.CategoryBacklinks,
		Backlink:          feedConfig.Settings.Backlink,
	})

	fileName := note.FileName(effectiveTs, title)
	if err := store.CreateNote(fileName, doc); err != nil {
		return "", err
	}

	return fileName, nil
}

func (im *Importer) fetchFeed(ctx context.Context, feedConfig *Config) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, feedConfig.Settings.GetTimeout())
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", feedConfig.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", im.userAgent)
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := im.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
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

// fatal reports a run-fatal failure: the run aborts, the watermark stays
// untouched and the user gets one notification with the underlying message.
func (im *Importer) fatal(name string, err error) error {
	slog.Error("Import run failed", "subscription", name, "error", err)
	im.notifier.Notify(fmt.Sprintf("%s: import failed: %v", name, err))
	return err
}

func (im *Importer) acquire(name string) bool {
	im.mu.Lock()
	defer im.mu.Unlock()
	if im.active[name] {
		return false
	}
	im.active[name] = true
	return true
}

func (im *Importer) release(name string) {
	im.mu.Lock()
	defer im.mu.Unlock()
	delete(im.active, name)
}

func (im *Importer) resolveNotesDir(feedConfig *Config) string {
	if feedConfig.Settings.NotesDir != "" {
		return feedConfig.Settings.NotesDir
	}
	return im.notesDir
}

func (im *Importer) resolveImagesDir(feedConfig *Config) string {
	if feedConfig.Settings.ImagesDir != "" {
		return feedConfig.Settings.ImagesDir
	}
	return im.imagesDir
}
