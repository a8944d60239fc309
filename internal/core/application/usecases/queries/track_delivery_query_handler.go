package queries

import (
	"context"
	"database/sql"
	"errors"

	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TrackDeliveryQueryHandler serves public tracking lookups from the database.
type TrackDeliveryQueryHandler struct {
	db *gorm.DB
}

// NewTrackDeliveryQueryHandler creates a handler for public tracking lookups.
func NewTrackDeliveryQueryHandler(db *gorm.DB) TrackDeliveryQueryHandler {
	return TrackDeliveryQueryHandler{db: db}
}

// Handle returns the public view of one delivery, including its status
// timeline ordered oldest first. Returns ObjectNotFoundError when no delivery
// carries the tracking identifier.
func (h TrackDeliveryQueryHandler) Handle(
	ctx context.Context,
	query TrackDeliveryQuery,
) (TrackDeliveryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return TrackDeliveryQueryResponse{}, err
	}

	var resp TrackDeliveryQueryResponse
	var id uuid.UUID
	var status int

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			tracking_id,
			status,
			pickup_text,
			dropoff_text,
			delivery_date,
			created_at,
			updated_at
		FROM deliveries
		WHERE tracking_id = ?
	`, query.TrackingID().String()).Row()

	err := row.Scan(
		&id,
		&resp.TrackingID,
		&status,
		&resp.PickupText,
		&resp.DropoffText,
		&resp.DeliveryDate,
		&resp.CreatedAt,
		&resp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return TrackDeliveryQueryResponse{}, errs.NewObjectNotFoundError(
				"trackingId", query.TrackingID().String())
		}
		return TrackDeliveryQueryResponse{}, err
	}

	deliveryID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return TrackDeliveryQueryResponse{}, err
	}
	resp.ID = deliveryID
	resp.Status = delivery.Status(status)

	timeline, err := h.loadTimeline(ctx, id)
	if err != nil {
		return TrackDeliveryQueryResponse{}, err
	}
	resp.Timeline = timeline

	return resp, nil
}

func (h TrackDeliveryQueryHandler) loadTimeline(
	ctx context.Context,
	deliveryID uuid.UUID,
) ([]TrackDeliveryTimelineEntry, error) {
	timeline := make([]TrackDeliveryTimelineEntry, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT status, occurred_at
		FROM delivery_status_history
		WHERE delivery_id = ?
		ORDER BY occurred_at ASC, id ASC
	`, deliveryID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry TrackDeliveryTimelineEntry
		var status int

		if err = rows.Scan(&status, &entry.OccurredAt); err != nil {
			return nil, err
		}
		entry.Status = delivery.Status(status)

		timeline = append(timeline, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return timeline, nil
}
