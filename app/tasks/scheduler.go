package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/feedmark/feedmark/app/cfg"
	"github.com/feedmark/feedmark/app/database"
	"github.com/feedmark/feedmark/app/feed"
)

var _ TaskSchedulerInterface = (*Scheduler)(nil)

type Scheduler struct {
	subRepo     database.SubscriptionRepository
	configCache *feed.ConfigCache
	importer    *feed.Importer
	interval    time.Duration
	workerCount int
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	taskQueue   chan TaskInterface
}

func NewScheduler(configCache *feed.ConfigCache, subRepo database.SubscriptionRepository,
	importer *feed.Importer) TaskSchedulerInterface {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := cfg.Get()

	return &Scheduler{
		subRepo:     subRepo,
		configCache: configCache,
		importer:    importer,
		interval:    time.Duration(cfg.SchedulerInterval) * time.Second,
		workerCount: cfg.WorkerCount,
		ctx:         ctx,
		cancel:      cancel,
		taskQueue:   make(chan TaskInterface, 300),
	}
}

func (s *Scheduler) Start() {
	for i := 0; i < s.workerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.enqueueStartupTasks()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.enqueueTasks()
			}
		}
	}()

}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	close(s.taskQueue)
}

func (s *Scheduler) EnqueueTask(task TaskInterface) error {
	select {
	case s.taskQueue <- task:
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
		return fmt.Errorf("task queue is full")
	}
}

func (s *Scheduler) enqueueStartupTasks() {
	feedConfigs := s.configCache.GetConfigs()
	if len(feedConfigs) == 0 {
		slog.Debug("No subscription configurations found")
		return
	}

	slog.Debug("Processing subscription configurations", "count", len(feedConfigs))

	for _, feedConfig := range feedConfigs {
		syncTask := NewSyncSubscriptionTask(feedConfig.Name, feedConfig, s.subRepo)
		if err := s.EnqueueTask(syncTask); err != nil {
			slog.Warn("Failed to enqueue SyncSubscriptionTask", "subscription", feedConfig.Name, "error", err)
			continue
		}

		if !feedConfig.Settings.Enabled {
			slog.Debug("Subscription disabled, skipping ImportFeedTask", "subscription", feedConfig.Name)
			continue
		}

		if !feedConfig.Settings.FetchOnStartup {
			continue
		}

		importTask := NewImportFeedTask(feedConfig.Name, feedConfig, s.importer)
		if err := s.EnqueueTask(importTask); err != nil {
			slog.Warn("Failed to enqueue ImportFeedTask", "subscription", feedConfig.Name, "error", err)
		}
	}
}

func (s *Scheduler) enqueueTasks() {
	feedConfigs := s.configCache.GetEnabledConfigs()
	if len(feedConfigs) == 0 {
		slog.Debug("No enabled subscription configurations found")
		return
	}

	slog.Debug("Checking enabled subscriptions for due imports", "count", len(feedConfigs))

	for _, feedConfig := range feedConfigs {
		refreshInterval := feedConfig.Settings.GetRefreshInterval()
		if refreshInterval == 0 {
			slog.Debug("Subscription has no refresh interval, manual import only", "subscription", feedConfig.Name)
			continue
		}

		subscription, err := s.subRepo.GetSubscription(feedConfig.Name)
		if err != nil {
			slog.Warn("Failed to get subscription from database, skipping", "subscription", feedConfig.Name, "error", err)
			continue
		}
		if subscription == nil {
			slog.Warn("Subscription not found in database, skipping", "subscription", feedConfig.Name)
			continue
		}

		now := time.Now().UTC()
		if subscription.LastRunAt != nil && subscription.LastRunAt.Add(refreshInterval).After(now) {
			slog.Debug("Subscription not due for refresh yet", "subscription", feedConfig.Name, "last_run_at", subscription.LastRunAt)
			continue
		}

		importTask := NewImportFeedTask(feedConfig.Name, feedConfig, s.importer)
		if err := s.EnqueueTask(importTask); err != nil {
			slog.Warn("Failed to enqueue ImportFeedTask", "subscription", feedConfig.Name, "error", err)
		}
	}
}

func (s *Scheduler) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case task, ok := <-s.taskQueue:
			if !ok {
				return
			}
			s.executeTask(id, task)

		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Scheduler) executeTask(workerID int, task TaskInterface) {
	task.Start()

	taskCtx, cancel := context.WithTimeout(s.ctx, 5*time.Minute)
	defer cancel()

	err := task.Execute(taskCtx)

	if err != nil {
		slog.Error("Worker task execution failed", "worker_id", workerID, "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", err)

		if task.CanRetry() {
			task.IncrementRetryCount()
			retryDelay := time.Duration(1<<uint(task.GetRetryCount()-1)) * time.Second
			if retryDelay > 30*time.Second {
				retryDelay = 30 * time.Second
			}

			slog.Warn("Task retry scheduled", "type", string(task.GetType()), "subscription", task.GetSubscriptionName(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "delay", retryDelay.String())

			go func() {
				time.Sleep(retryDelay)
				select {
				case <-s.ctx.Done():
					slog.Debug("Scheduler stopped, skipping task retry", "type", string(task.GetType()), "id", task.GetID())
					return
				default:
					if retryErr := s.EnqueueTask(task); retryErr != nil {
						slog.Error("Failed to re-enqueue task for retry", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", retryErr)
					}
				}
			}()
		} else {
			slog.Error("Task failed after maximum retries", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "last_error", err)
		}
	}
}
