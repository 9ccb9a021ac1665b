// Package events delivers entry lifecycle notifications to downstream
// subsystems. Delivery is best-effort: a failed or disabled sink never blocks
// or rolls back the transition that triggered it.
package events

import (
	"context"
	"log/slog"

	"github.com/posthog/posthog-go"

	"github.com/finbooks/ledger_engine/internal/core/domain"
	portssvc "github.com/finbooks/ledger_engine/internal/core/ports/services"
	"github.com/finbooks/ledger_engine/internal/middleware"
)

const statusChangeEvent = "journal_entry_status_changed"

// PostHogNotifier publishes posted/cancelled entry transitions as PostHog
// events and always logs them. With an empty API key it degrades to
// log-only.
type PostHogNotifier struct {
	client posthog.Client
	logger *slog.Logger
}

// NewPostHogNotifier creates the notifier. An empty apiKey disables the
// PostHog sink without disabling logging.
func NewPostHogNotifier(apiKey, endpoint string, logger *slog.Logger) *PostHogNotifier {
	n := &PostHogNotifier{logger: logger}
	if apiKey == "" {
		logger.Warn("PostHog API key is empty, entry notifications will only be logged.")
		return n
	}
	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: endpoint})
	if err != nil {
		logger.Error("Failed to create PostHog client, entry notifications will only be logged.",
			slog.String("endpoint", endpoint), slog.String("error", err.Error()))
		return n
	}
	n.client = client
	return n
}

var _ portssvc.EntryNotifier = (*PostHogNotifier)(nil)

// NotifyStatusChange publishes one POSTED/CANCELLED transition.
func (n *PostHogNotifier) NotifyStatusChange(ctx context.Context, change domain.StatusChange) {
	logger := middleware.GetLoggerFromCtx(ctx)
	logger.Info("Entry status notification",
		slog.String("entry_id", change.EntryID),
		slog.String("old_status", string(change.OldStatus)),
		slog.String("new_status", string(change.NewStatus)),
	)

	if n.client == nil {
		return
	}
	err := n.client.Enqueue(posthog.Capture{
		DistinctId: change.EntryID,
		Event:      statusChangeEvent,
		Properties: map[string]interface{}{
			"old_status": string(change.OldStatus),
			"new_status": string(change.NewStatus),
			"changed_at": change.ChangedAt,
		},
	})
	if err != nil {
		logger.Warn("Failed to enqueue entry notification", slog.String("entry_id", change.EntryID), slog.String("error", err.Error()))
	}
}

// Close flushes and shuts down the PostHog client.
func (n *PostHogNotifier) Close() {
	if n.client == nil {
		return
	}
	n.client.Close()
}
