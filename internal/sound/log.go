package sound

import (
	"github.com/bunbaker/bunbakery/internal/domain"
	"github.com/bunbaker/bunbakery/internal/logger"
)

// Compile-time interface check.
var _ domain.Notifier = (*LogNotifier)(nil)

// LogNotifier records events in the log instead of playing audio. Used
// under -mute, in tests, and as the fallback when audio init fails.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier creates a log-only notifier.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// Notify logs the event.
func (n *LogNotifier) Notify(ev domain.Event) {
	n.log.Debug("sound: %s", ev)
}
