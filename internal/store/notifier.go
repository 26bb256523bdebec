package store

import (
	"otakumart/internal/logger"
)

// Notifier is the user-facing notification channel the stores report
// mutations through. The presentation layer decides how notifications are
// rendered; the stores only supply kind, title and description.
type Notifier interface {
	Success(title, description string)
	Error(title, description string)
	Info(title, description string)
}

// LogNotifier routes notifications to the application log.
type LogNotifier struct{}

func (LogNotifier) Success(title, description string) {
	logger.Info("notify", "kind", "success", "title", title, "description", description)
}

func (LogNotifier) Error(title, description string) {
	logger.Info("notify", "kind", "error", "title", title, "description", description)
}

func (LogNotifier) Info(title, description string) {
	logger.Info("notify", "kind", "info", "title", title, "description", description)
}

// NopNotifier discards notifications. Used in tests.
type NopNotifier struct{}

func (NopNotifier) Success(title, description string) {}
func (NopNotifier) Error(title, description string)   {}
func (NopNotifier) Info(title, description string)    {}
