// Package notify delivers fire-and-forget user notices. The importer reports
// run summaries and run-fatal failures through it without blocking on
// delivery.
package notify

import (
	"log/slog"
)

type Notifier interface {
	Notify(message string)
}

// LogNotifier surfaces notices through the structured log.
type LogNotifier struct{}

var _ Notifier = (*LogNotifier)(nil)

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Notify(message string) {
	slog.Info("Notice", "message", message)
}
