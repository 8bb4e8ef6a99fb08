package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/feedmark/feedmark/app/database"
	"github.com/feedmark/feedmark/app/feed"
)

type SyncSubscriptionTask struct {
	Task
	FeedConfig *feed.Config
	subRepo    database.SubscriptionRepository
}

func NewSyncSubscriptionTask(subscriptionName string, feedConfig *feed.Config, subRepo database.SubscriptionRepository) *SyncSubscriptionTask {
	return &SyncSubscriptionTask{
		Task:       NewTask(TaskTypeSyncSubscription, subscriptionName),
		FeedConfig: feedConfig,
		subRepo:    subRepo,
	}
}

func (t *SyncSubscriptionTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	err := t.subRepo.UpsertSubscription(
		t.FeedConfig.Name,
		t.FeedConfig.URL)
	if err != nil {
		slog.Error("Task failed", "type", "SyncSubscription", "subscription", t.SubscriptionName, "error", err)
		return fmt.Errorf("failed to sync subscription to database: %w", err)
	}

	slog.Info("Task completed",
		"type", "SyncSubscription",
		"subscription", t.SubscriptionName,
		"duration", t.GetDuration())

	return nil
}
