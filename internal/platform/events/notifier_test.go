package events_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbooks/ledger_engine/internal/core/domain"
	"github.com/finbooks/ledger_engine/internal/platform/events"
)

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, nil)), &buf
}

func TestNewPostHogNotifier_EmptyKeyIsLogOnly(t *testing.T) {
	logger, buf := bufferLogger()

	n := events.NewPostHogNotifier("", "https://us.i.posthog.com", logger)
	require.NotNil(t, n)
	assert.Contains(t, buf.String(), "PostHog API key is empty")

	// The log-only notifier must stay usable end to end.
	n.NotifyStatusChange(context.Background(), domain.StatusChange{
		EntryID:   "entry-1",
		OldStatus: domain.StatusApproved,
		NewStatus: domain.StatusPosted,
		ChangedAt: time.Now().UTC(),
	})
	n.Close()
}

func TestNotifyStatusChange_LogsTransition(t *testing.T) {
	logger, buf := bufferLogger()
	slog.SetDefault(logger)

	n := events.NewPostHogNotifier("", "https://us.i.posthog.com", logger)
	n.NotifyStatusChange(context.Background(), domain.StatusChange{
		EntryID:   "entry-2",
		OldStatus: domain.StatusPosted,
		NewStatus: domain.StatusCancelled,
		ChangedAt: time.Now().UTC(),
	})

	out := buf.String()
	assert.Contains(t, out, "entry-2")
	assert.Contains(t, out, "POSTED")
	assert.Contains(t, out, "CANCELLED")
}
