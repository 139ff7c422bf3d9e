// Package notify carries user-facing notifications out of the client. The
// host application decides how to render them (toast, status bar, stderr);
// the client only guarantees what fires and when. In particular the gateway
// fires exactly one Error per failed request.
package notify

import "log/slog"

// Notifier receives user-visible notifications.
type Notifier interface {
	Success(message string)
	Error(message, description string)
}

// SlogNotifier logs notifications instead of rendering them; the default when
// a host supplies nothing.
type SlogNotifier struct {
	logger *slog.Logger
}

func NewSlogNotifier(logger *slog.Logger) *SlogNotifier {
	return &SlogNotifier{logger: logger}
}

func (n *SlogNotifier) Success(message string) {
	n.logger.Info("notification", "level", "success", "message", message)
}

func (n *SlogNotifier) Error(message, description string) {
	n.logger.Warn("notification", "level", "error", "message", message, "description", description)
}
