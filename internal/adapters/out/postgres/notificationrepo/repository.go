// Package notificationrepo persists notifications so clients can fetch them
// later. It is the durable sink behind the asynchronous dispatcher.
package notificationrepo

import (
	"context"
	"time"

	"parceltrack/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationDTO represents the database structure for stored notifications.
type NotificationDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	RecipientID       uuid.UUID `gorm:"type:uuid;index"`
	Category          string
	Message           string
	RelatedDeliveryID uuid.UUID `gorm:"type:uuid;index"`
	Read              bool      `gorm:"default:false"`
	CreatedAt         time.Time
}

// TableName specifies the database table name for notifications.
func (NotificationDTO) TableName() string {
	return "notifications"
}

// GormNotificationSink implements NotificationSink by writing notification
// rows to PostgreSQL.
type GormNotificationSink struct {
	db *gorm.DB
}

// NewGormNotificationSink creates a new GORM notification sink.
func NewGormNotificationSink(db *gorm.DB) *GormNotificationSink {
	return &GormNotificationSink{db: db}
}

// Send stores one notification row.
func (s *GormNotificationSink) Send(ctx context.Context, notification ports.Notification) error {
	dto := NotificationDTO{
		ID:                uuid.New(),
		RecipientID:       notification.RecipientID.Bytes(),
		Category:          string(notification.Category),
		Message:           notification.Message,
		RelatedDeliveryID: notification.RelatedDeliveryID.Bytes(),
		CreatedAt:         time.Now().UTC(),
	}

	return s.db.WithContext(ctx).Create(&dto).Error
}
