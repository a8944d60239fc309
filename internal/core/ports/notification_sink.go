package ports

import (
	"context"

	"parceltrack/internal/core/domain/model/kernel"
)

// NotificationCategory labels what a notification is about so clients can
// filter and render them.
type NotificationCategory string

const (
	NotificationDeliveryCreated    NotificationCategory = "delivery_created"
	NotificationDeliveryAssigned   NotificationCategory = "delivery_assigned"
	NotificationStatusChanged      NotificationCategory = "status_changed"
	NotificationDeliveryCancelled  NotificationCategory = "delivery_cancelled"
	NotificationPendingReminder    NotificationCategory = "pending_reminder"
)

// Notification is one message addressed to a single recipient.
type Notification struct {
	RecipientID       kernel.UUID
	Category          NotificationCategory
	Message           string
	RelatedDeliveryID kernel.UUID
}

// NotificationSink accepts notifications for delivery to recipients.
//
// Notification delivery is best-effort: implementations may retry or drop
// messages, and callers never treat a sink failure as a failure of the
// business operation that produced the notification.
type NotificationSink interface {
	// Send enqueues a notification for the recipient.
	Send(ctx context.Context, notification Notification) error
}
