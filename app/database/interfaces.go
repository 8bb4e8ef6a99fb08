package database

import (
	"time"
)

type SubscriptionRepository interface {
	UpsertSubscription(name, feedURL string) error
	UpdateSubscriptionTitle(name, title string) error
	GetSubscription(name string) (*Subscription, error)
	GetSubscriptionCount() (int, error)

	GetWatermark(name string) (int64, error)
	SetWatermark(name string, watermarkMs int64) error
	ResetWatermark(name string) error

	RecordRun(name string, imported, skipped int, ranAt time.Time) error
}

type PostRepository interface {
	RecordPost(subscription, guid, path string, publishedMs int64) error
	GetPostCount(subscription string) (int, error)
}
