package queries

import (
	"context"

	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListDeliveriesForAgentQueryHandler reads an agent's worklist from the database.
type ListDeliveriesForAgentQueryHandler struct {
	db *gorm.DB
}

// NewListDeliveriesForAgentQueryHandler creates a handler for agent worklist queries.
func NewListDeliveriesForAgentQueryHandler(db *gorm.DB) ListDeliveriesForAgentQueryHandler {
	return ListDeliveriesForAgentQueryHandler{db: db}
}

// Handle returns all deliveries assigned to the agent, newest first.
// Includes cancelled deliveries the agent was bound to, for their records.
func (h ListDeliveriesForAgentQueryHandler) Handle(
	ctx context.Context,
	query ListDeliveriesForAgentQuery,
) ([]ListDeliveriesForAgentQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	deliveries := make([]ListDeliveriesForAgentQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			tracking_id,
			status,
			pickup_text,
			dropoff_text,
			contact_number,
			delivery_date,
			updated_at
		FROM deliveries
		WHERE assigned_agent_id = ?
		ORDER BY created_at DESC
	`, query.AgentID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp ListDeliveriesForAgentQueryResponse
		var id uuid.UUID
		var status int

		err = rows.Scan(
			&id,
			&resp.TrackingID,
			&status,
			&resp.PickupText,
			&resp.DropoffText,
			&resp.ContactNumber,
			&resp.DeliveryDate,
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

		deliveries = append(deliveries, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}
