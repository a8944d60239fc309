package queries

import (
	"context"

	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListDeliveriesForOwnerQueryHandler reads an owner's deliveries from the database.
type ListDeliveriesForOwnerQueryHandler struct {
	db *gorm.DB
}

// NewListDeliveriesForOwnerQueryHandler creates a handler for owner delivery queries.
func NewListDeliveriesForOwnerQueryHandler(db *gorm.DB) ListDeliveriesForOwnerQueryHandler {
	return ListDeliveriesForOwnerQueryHandler{db: db}
}

// Handle returns all deliveries requested by the owner, newest first.
func (h ListDeliveriesForOwnerQueryHandler) Handle(
	ctx context.Context,
	query ListDeliveriesForOwnerQuery,
) ([]ListDeliveriesForOwnerQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	deliveries := make([]ListDeliveriesForOwnerQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			tracking_id,
			status,
			dropoff_text,
			assigned_agent_id,
			delivery_date,
			created_at,
			updated_at
		FROM deliveries
		WHERE owner_id = ?
		ORDER BY created_at DESC
	`, query.OwnerID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp ListDeliveriesForOwnerQueryResponse
		var id uuid.UUID
		var status int
		var agentID uuid.NullUUID

		err = rows.Scan(
			&id,
			&resp.TrackingID,
			&status,
			&resp.DropoffText,
			&agentID,
			&resp.DeliveryDate,
			&resp.CreatedAt,
			&resp.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		deliveryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = deliveryID
		resp.Status = delivery.Status(status)

		if agentID.Valid {
			aID, agentErr := kernel.UUIDFromBytes(agentID.UUID[:])
			if agentErr != nil {
				return nil, agentErr
			}
			resp.AssignedAgentID = &aID
		}

		deliveries = append(deliveries, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}
