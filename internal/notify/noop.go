package notify

import (
	"context"
	"log/slog"

	"github.com/donaldgifford/card-market/pkg/logger"
	domain "github.com/donaldgifford/card-market/pkg/types"
)

// NoOpNotifier implements Notifier by logging discarded notifications. It is
// used when no webhook is configured.
type NoOpNotifier struct {
	log *slog.Logger
}

// NewNoOpNotifier creates a notifier that discards notifications with a log
// message.
func NewNoOpNotifier(log *slog.Logger) *NoOpNotifier {
	return &NoOpNotifier{log: logger.Component(log, "notify")}
}

// NotifyNewCards logs and discards the notification.
func (n *NoOpNotifier) NotifyNewCards(_ context.Context, owner string, cards []domain.Card) error {
	n.log.Debug("notification discarded (no backend configured)",
		"owner", owner,
		"count", len(cards),
	)
	return nil
}
