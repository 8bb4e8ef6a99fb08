package database

import (
	"time"
)

type Subscription struct {
	Name         string // Configuration identifier derived from filename
	FeedURL      string
	Title        string // Feed title from the last successful fetch
	WatermarkMs  int64  // Import everything published after this instant
	LastRunAt    *time.Time
	LastImported int
	LastSkipped  int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type ImportedPost struct {
	ID           int64
	Subscription string
	GUID         string
	Path         string
	PublishedMs  int64
	ImportedAt   time.Time
}
