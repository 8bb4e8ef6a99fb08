package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/feedmark/feedmark/app/database"
	"github.com/feedmark/feedmark/app/feed"
	"github.com/feedmark/feedmark/app/tasks"
)

func NewHandler(configCache *feed.ConfigCache, subRepo database.SubscriptionRepository,
	postRepo database.PostRepository, importer *feed.Importer,
	scheduler tasks.TaskSchedulerInterface) *Handler {
	return &Handler{
		subRepo:     subRepo,
		postRepo:    postRepo,
		configCache: configCache,
		importer:    importer,
		scheduler:   scheduler,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if subscriptionCount, err := h.subRepo.GetSubscriptionCount(); err == nil {
		health["subscriptions"] = subscriptionCount
	}

	health["loaded_configurations"] = h.configCache.GetConfigCount()

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	configs := h.configCache.GetConfigs()

	subscriptions := make([]map[string]interface{}, 0, len(configs))

	for _, feedConfig := range configs {
		info := map[string]interface{}{
			"name":             feedConfig.Name,
			"url":              feedConfig.URL,
			"title":            "",
			"enabled":          feedConfig.Settings.Enabled,
			"refresh_interval": feedConfig.Settings.GetRefreshInterval().String(),
		}

		if subscription, err := h.subRepo.GetSubscription(feedConfig.Name); err == nil && subscription != nil {
			info["title"] = subscription.Title
			info["watermark_ms"] = subscription.WatermarkMs
			info["last_run_at"] = subscription.LastRunAt
			info["last_imported"] = subscription.LastImported
			info["last_skipped"] = subscription.LastSkipped
		}

		if postCount, err := h.postRepo.GetPostCount(feedConfig.Name); err == nil {
			info["imported_posts"] = postCount
		}

		subscriptions = append(subscriptions, info)
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"subscriptions": subscriptions,
		"total":         len(subscriptions),
	})
}

func (h *Handler) APIImport(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing subscription name parameter"})
		return
	}

	feedConfig, err := h.configCache.GetConfig(name)
	if err != nil {
		slog.Error("Subscription configuration not found", "subscription", name, "error", err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Subscription configuration not found"})
		return
	}

	syncTask := tasks.NewSyncSubscriptionTask(name, feedConfig, h.subRepo)
	if err := h.scheduler.EnqueueTask(syncTask); err != nil {
		slog.Error("Error enqueueing sync task", "subscription", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to enqueue sync task",
			"details": err.Error(),
		})
		return
	}

	importTask := tasks.NewImportFeedTask(name, feedConfig, h.importer)
	if err := h.scheduler.EnqueueTask(importTask); err != nil {
		slog.Error("Error enqueueing import task", "subscription", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to enqueue import task",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Import task enqueued successfully",
		"subscription": gin.H{
			"name": name,
			"url":  feedConfig.URL,
		},
		"tasks": []gin.H{
			{
				"id":   syncTask.ID,
				"type": syncTask.Type,
			},
			{
				"id":   importTask.ID,
				"type": importTask.Type,
			},
		},
	})
}

func (h *Handler) APIResetWatermark(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing subscription name parameter"})
		return
	}

	if _, err := h.configCache.GetConfig(name); err != nil {
		slog.Error("Subscription configuration not found", "subscription", name, "error", err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Subscription configuration not found"})
		return
	}

	if err := h.subRepo.ResetWatermark(name); err != nil {
		slog.Error("Error resetting watermark", "subscription", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to reset watermark",
			"details": err.Error(),
		})
		return
	}

	slog.Info("Watermark reset", "subscription", name)

	// Notes created by previous runs stay on disk, so the next import reports
	// per-item failures for anything that still exists.
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "Watermark reset, next import will cover the full feed",
		"subscription": name,
	})
}
