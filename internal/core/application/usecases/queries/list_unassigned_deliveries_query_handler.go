package queries

import (
	"context"

	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListUnassignedDeliveriesQueryHandler reads the unassigned feed from the database.
type ListUnassignedDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewListUnassignedDeliveriesQueryHandler creates a handler for the unassigned feed.
func NewListUnassignedDeliveriesQueryHandler(db *gorm.DB) ListUnassignedDeliveriesQueryHandler {
	return ListUnassignedDeliveriesQueryHandler{db: db}
}

// Handle returns all pending, unassigned deliveries, newest first.
func (h ListUnassignedDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query ListUnassignedDeliveriesQuery,
) ([]ListUnassignedDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	deliveries := make([]ListUnassignedDeliveriesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			tracking_id,
			pickup_text,
			dropoff_text,
			parcel_description,
			delivery_date,
			price_amount,
			created_at
		FROM deliveries
		WHERE status = ? AND assigned_agent_id IS NULL
		ORDER BY created_at DESC
	`, int(delivery.Pending)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp ListUnassignedDeliveriesQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&resp.TrackingID,
			&resp.PickupText,
			&resp.DropoffText,
			&resp.ParcelDescription,
			&resp.DeliveryDate,
			&resp.PriceAmount,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		deliveryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = deliveryID

		deliveries = append(deliveries, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}
