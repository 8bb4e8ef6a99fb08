package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/feedmark/feedmark/app/feed"
)

type ImportFeedTask struct {
	Task
	FeedConfig *feed.Config
	importer   *feed.Importer
}

func NewImportFeedTask(subscriptionName string, feedConfig *feed.Config, importer *feed.Importer) *ImportFeedTask {
	task := NewTask(TaskTypeImportFeed, subscriptionName)
	// Import runs are not retried automatically. A failed run leaves the
	// watermark untouched, so the next scheduled run covers the same items.
	task.MaxRetries = 0

	return &ImportFeedTask{
		Task:       task,
		FeedConfig: feedConfig,
		importer:   importer,
	}
}

func (t *ImportFeedTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if !t.FeedConfig.Settings.Enabled {
		slog.Debug("Subscription disabled, skipping", "subscription", t.SubscriptionName)
		return nil
	}

	stats, err := t.importer.Run(ctx, t.FeedConfig)
	if err != nil {
		if errors.Is(err, feed.ErrImportInProgress) {
			slog.Debug("Import already running, skipping", "subscription", t.SubscriptionName)
			return nil
		}
		return fmt.Errorf("import run failed: %w", err)
	}

	slog.Info("Task completed",
		"type", t.GetType(),
		"subscription", t.SubscriptionName,
		"duration", t.GetDuration(),
		"imported", stats.Imported,
		"skipped", stats.Skipped,
		"failed", stats.Failed)

	return nil
}
