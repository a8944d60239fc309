// Package notifications provides asynchronous, best-effort delivery of
// notifications produced by business operations.
//
// The Dispatcher decouples command handlers from the underlying sink: Send
// only enqueues, a background worker performs the actual delivery with
// bounded retries, and failures are logged and dropped. A notification
// failure is never allowed to fail or delay the business operation that
// produced it.
package notifications

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"parceltrack/internal/core/ports"
)

const (
	defaultQueueSize = 256
	deliveryAttempts = 3
	retryBackoff     = 100 * time.Millisecond
	deliveryTimeout  = 5 * time.Second
)

// Dispatcher is an asynchronous NotificationSink adapter.
// It buffers notifications in a channel and delivers them through the wrapped
// sink from a single worker goroutine. When the buffer is full, or when all
// delivery attempts fail, the notification is dropped with a log record.
type Dispatcher struct {
	sink   ports.NotificationSink
	logger *slog.Logger

	queue chan ports.Notification
	done  chan struct{}
	wg    sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewDispatcher creates a dispatcher delivering to the given sink and starts
// its worker. Callers must Close the dispatcher to drain the queue on shutdown.
func NewDispatcher(sink ports.NotificationSink, logger *slog.Logger) *Dispatcher {
	d := &Dispatcher{
		sink:   sink,
		logger: logger.With("component", "notification_dispatcher"),
		queue:  make(chan ports.Notification, defaultQueueSize),
		done:   make(chan struct{}),
	}

	d.wg.Add(1)
	go d.run()

	return d
}

// Send enqueues a notification for background delivery. It never blocks on a
// full queue and never returns a delivery failure; the only possible error is
// none, which keeps callers from ever treating notification problems as
// business failures.
func (d *Dispatcher) Send(ctx context.Context, notification ports.Notification) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		d.logger.WarnContext(ctx, "Notification dropped, dispatcher is closed",
			"recipient", notification.RecipientID.String(),
			"category", string(notification.Category))
		return nil
	}

	select {
	case d.queue <- notification:
	default:
		d.logger.WarnContext(ctx, "Notification dropped, queue is full",
			"recipient", notification.RecipientID.String(),
			"category", string(notification.Category))
	}

	return nil
}

// Close stops accepting new notifications and waits for the worker to drain
// the queue.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	d.mu.Unlock()

	close(d.done)
	d.wg.Wait()
}

// run delivers queued notifications until Close is called, then drains
// whatever is left in the queue.
func (d *Dispatcher) run() {
	defer d.wg.Done()

	for {
		select {
		case notification := <-d.queue:
			d.deliver(notification)
		case <-d.done:
			for {
				select {
				case notification := <-d.queue:
					d.deliver(notification)
				default:
					return
				}
			}
		}
	}
}

// deliver attempts to hand one notification to the sink, retrying with a
// short backoff. After the final attempt the notification is dropped.
func (d *Dispatcher) deliver(notification ports.Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
	defer cancel()

	var lastErr error
	for attempt := 1; attempt <= deliveryAttempts; attempt++ {
		lastErr = d.sink.Send(ctx, notification)
		if lastErr == nil {
			return
		}
		if attempt < deliveryAttempts {
			time.Sleep(retryBackoff)
		}
	}

	d.logger.ErrorContext(ctx, "Notification dropped after delivery attempts failed",
		"recipient", notification.RecipientID.String(),
		"category", string(notification.Category),
		"attempts", deliveryAttempts,
		"error", lastErr)
}
