package database

import (
	"database/sql"
	"fmt"
	"time"
)

type SubscriptionRepositoryImpl struct {
	db *DB
}

var _ SubscriptionRepository = (*SubscriptionRepositoryImpl)(nil)

func NewSubscriptionRepository(db *DB) *SubscriptionRepositoryImpl {
	return &SubscriptionRepositoryImpl{db: db}
}

// UpsertSubscription registers a subscription, updating the feed URL when
// the configuration changed. The watermark is preserved across upserts.
func (r *SubscriptionRepositoryImpl) UpsertSubscription(name, feedURL string) error {
	_, err := r.db.Exec(`
		INSERT INTO subscriptions (name, feed_url)
		VALUES (?, ?)
		ON CONFLICT (name) DO UPDATE SET
			feed_url = excluded.feed_url,
			updated_at = CURRENT_TIMESTAMP
	`, name, feedURL)

	if err != nil {
		return fmt.Errorf("failed to upsert subscription: %w", err)
	}

	return nil
}

func (r *SubscriptionRepositoryImpl) UpdateSubscriptionTitle(name, title string) error {
	_, err := r.db.Exec(`
		UPDATE subscriptions
		SET title = ?, updated_at = CURRENT_TIMESTAMP
		WHERE name = ?
	`, title, name)

	if err != nil {
		return fmt.Errorf("failed to update subscription title: %w", err)
	}

	return nil
}

func (r *SubscriptionRepositoryImpl) GetSubscription(name string) (*Subscription, error) {
	var sub Subscription
	err := r.db.QueryRow(`
		SELECT name, feed_url, title, watermark_ms, last_run_at,
		       last_imported, last_skipped, created_at, updated_at
		FROM subscriptions
		WHERE name = ?
	`, name).Scan(
		&sub.Name, &sub.FeedURL, &sub.Title, &sub.WatermarkMs, &sub.LastRunAt,
		&sub.LastImported, &sub.LastSkipped, &sub.CreatedAt, &sub.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return &sub, nil
}

func (r *SubscriptionRepositoryImpl) GetSubscriptionCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM subscriptions").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get subscription count: %w", err)
	}
	return count, nil
}

func (r *SubscriptionRepositoryImpl) GetWatermark(name string) (int64, error) {
	var watermarkMs int64
	err := r.db.QueryRow(`
		SELECT watermark_ms FROM subscriptions WHERE name = ?
	`, name).Scan(&watermarkMs)

	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get watermark: %w", err)
	}

	return watermarkMs, nil
}

// SetWatermark advances the watermark. The guard in the WHERE clause keeps
// it monotonic; only ResetWatermark moves it backwards.
func (r *SubscriptionRepositoryImpl) SetWatermark(name string, watermarkMs int64) error {
	_, err := r.db.Exec(`
		UPDATE subscriptions
		SET watermark_ms = ?, updated_at = CURRENT_TIMESTAMP
		WHERE name = ? AND watermark_ms < ?
	`, watermarkMs, name, watermarkMs)

	if err != nil {
		return fmt.Errorf("failed to set watermark: %w", err)
	}

	return nil
}

func (r *SubscriptionRepositoryImpl) ResetWatermark(name string) error {
	_, err := r.db.Exec(`
		UPDATE subscriptions
		SET watermark_ms = 0, updated_at = CURRENT_TIMESTAMP
		WHERE name = ?
	`, name)

	if err != nil {
		return fmt.Errorf("failed to reset watermark: %w", err)
	}

	return nil
}

func (r *SubscriptionRepositoryImpl) RecordRun(name string, imported, skipped int, ranAt time.Time) error {
	_, err := r.db.Exec(`
		UPDATE subscriptions
		SET last_run_at = ?, last_imported = ?, last_skipped = ?, updated_at = CURRENT_TIMESTAMP
		WHERE name = ?
	`, ranAt.UTC(), imported, skipped, name)

	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}

	return nil
}
