package api

import (
	"github.com/feedmark/feedmark/app/database"
	"github.com/feedmark/feedmark/app/feed"
	"github.com/feedmark/feedmark/app/tasks"
)

type Handler struct {
	subRepo     database.SubscriptionRepository
	postRepo    database.PostRepository
	configCache *feed.ConfigCache
	importer    *feed.Importer
	scheduler   tasks.TaskSchedulerInterface
}
