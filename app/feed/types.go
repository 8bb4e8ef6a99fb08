package feed

import (
	"time"
)

// Feed processing types

type Metadata struct {
	Title       string
	Link        string
	Description string
	Language    string
}

// MediaDescriptor is an item-level media reference carried outside the HTML
// body: media:content, media:thumbnail or an RSS enclosure.
type MediaDescriptor struct {
	URL    string
	Medium string // "image", "video", "audio", ...
}

type Item struct {
	GUID  string
	Title string
	Link  string

	// Content fields in selection priority order. Presence varies by feed
	// dialect; SelectContent picks the first non-empty one.
	ContentEncoded string
	Content        string
	Description    string
	Summary        string

	PublishedAt *time.Time
	UpdatedAt   *time.Time
	Categories  []string
	Media       []MediaDescriptor
}

// EffectiveTimestamp is the publication time used for the watermark
// comparison: published, else updated, else the supplied processing time.
func (i Item) EffectiveTimestamp(now time.Time) time.Time {
	if i.PublishedAt != nil {
		return *i.PublishedAt
	}
	if i.UpdatedAt != nil {
		return *i.UpdatedAt
	}
	return now
}

// ImportStats summarizes one import run.
type ImportStats struct {
	Imported int
	Skipped  int
	Failed   int
	Duration time.Duration
}

// Configuration types

type Config struct {
	Name     string         // Derived from filename (without .yml extension)
	URL      string         `yaml:"url"`
	Settings ConfigSettings `yaml:"settings"`
}

type ConfigSettings struct {
	Enabled           bool   `yaml:"enabled"`
	RefreshInterval   int    `yaml:"refresh_interval"` // seconds, 0 = manual only
	Timeout           int    `yaml:"timeout"`          // seconds
	FetchOnStartup    bool   `yaml:"fetch_on_startup"`
	ExtractContent    bool   `yaml:"extract_content"` // fetch the linked page when the feed has no body
	NotesDir          string `yaml:"notes_dir"`       // overrides the global notes directory
	ImagesDir         string `yaml:"images_dir"`      // overrides the global images directory
	Backlink          string `yaml:"backlink"`
	CategoryBacklinks bool   `yaml:"category_backlinks"`
}
