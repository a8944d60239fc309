package notifications_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/notifications"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSink captures delivered notifications and can be configured to
// fail a number of times before succeeding.
type recordingSink struct {
	mu        sync.Mutex
	delivered []ports.Notification
	failures  int
	attempts  int
}

func (s *recordingSink) Send(_ context.Context, notification ports.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.attempts++
	if s.attempts <= s.failures {
		return errors.New("sink unavailable")
	}

	s.delivered = append(s.delivered, notification)
	return nil
}

func (s *recordingSink) deliveredCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.delivered)
}

func testNotification() ports.Notification {
	return ports.Notification{
		RecipientID:       kernel.NewUUID(),
		Category:          ports.NotificationDeliveryCreated,
		Message:           "a new delivery is waiting to be claimed",
		RelatedDeliveryID: kernel.NewUUID(),
	}
}

func TestDispatcher_DeliversEnqueuedNotifications(t *testing.T) {
	sink := &recordingSink{}
	dispatcher := notifications.NewDispatcher(sink, slog.Default())

	for i := 0; i < 5; i++ {
		require.NoError(t, dispatcher.Send(context.Background(), testNotification()))
	}

	dispatcher.Close()

	assert.Equal(t, 5, sink.deliveredCount())
}

func TestDispatcher_RetriesTransientFailures(t *testing.T) {
	sink := &recordingSink{failures: 2}
	dispatcher := notifications.NewDispatcher(sink, slog.Default())

	require.NoError(t, dispatcher.Send(context.Background(), testNotification()))
	dispatcher.Close()

	assert.Equal(t, 1, sink.deliveredCount())
}

// TestDispatcher_SinkFailureNeverPropagates verifies that a permanently
// failing sink does not surface errors to the caller: the notification is
// dropped and Send still reports success.
func TestDispatcher_SinkFailureNeverPropagates(t *testing.T) {
	sink := &recordingSink{failures: 1000}
	dispatcher := notifications.NewDispatcher(sink, slog.Default())

	require.NoError(t, dispatcher.Send(context.Background(), testNotification()))
	dispatcher.Close()

	assert.Equal(t, 0, sink.deliveredCount())
}

func TestDispatcher_SendAfterCloseIsDropped(t *testing.T) {
	sink := &recordingSink{}
	dispatcher := notifications.NewDispatcher(sink, slog.Default())
	dispatcher.Close()

	require.NoError(t, dispatcher.Send(context.Background(), testNotification()))

	assert.Equal(t, 0, sink.deliveredCount())
}
