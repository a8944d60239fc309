// Package deliveryrepo provides data transfer objects and mapping functions
// for delivery persistence. It implements the repository pattern for the
// delivery aggregate, handling conversion between domain entities and their
// relational representation across the deliveries and delivery_status_history
// tables.
package deliveryrepo

import (
	"time"

	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryDTO represents the database structure for persisting delivery aggregates.
// The tracking identifier carries a unique index so an insert collision can be
// detected and retried with a fresh identifier. Status and agent columns are
// indexed to serve the unassigned, per-agent and per-owner listings.
type DeliveryDTO struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TrackingID        string     `gorm:"uniqueIndex;size:20"`
	OwnerID           uuid.UUID  `gorm:"type:uuid;index"`
	Pickup            AddressDTO `gorm:"embedded;embeddedPrefix:pickup_"`
	Dropoff           AddressDTO `gorm:"embedded;embeddedPrefix:dropoff_"`
	ParcelDescription string
	ContactNumber     string
	DeliveryDate      time.Time
	PriceAmount       int64
	AssignedAgentID   *uuid.UUID `gorm:"type:uuid;index"`
	Status            int        `gorm:"index"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
	AssignedAt        *time.Time
}

// TableName specifies the database table name for delivery entities.
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// AddressDTO represents an embedded address within the deliveries table.
type AddressDTO struct {
	Text      string
	Latitude  float64
	Longitude float64
}

// HistoryEntryDTO represents one row of a delivery's append-only status history.
// Rows are only ever inserted, in the same transaction as the delivery write
// that produced them.
type HistoryEntryDTO struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	DeliveryID uuid.UUID `gorm:"type:uuid;index"`
	Status     int
	OccurredAt time.Time
	ActorID    uuid.UUID `gorm:"type:uuid"`
}

// TableName specifies the database table name for history entries.
func (HistoryEntryDTO) TableName() string {
	return "delivery_status_history"
}

// fromDomain converts a delivery domain aggregate to its database representation.
// History rows are mapped separately because they are append-only.
func fromDomain(aggregate *delivery.Delivery) DeliveryDTO {
	var agentID *uuid.UUID
	if id := aggregate.AssignedAgentID(); id != nil {
		raw := id.Bytes()
		agentID = &raw
	}

	return DeliveryDTO{
		ID:         aggregate.ID().Bytes(),
		TrackingID: aggregate.TrackingID().String(),
		OwnerID:    aggregate.OwnerID().Bytes(),
		Pickup: AddressDTO{
			Text:      aggregate.Pickup().Text(),
			Latitude:  aggregate.Pickup().Latitude(),
			Longitude: aggregate.Pickup().Longitude(),
		},
		Dropoff: AddressDTO{
			Text:      aggregate.Dropoff().Text(),
			Latitude:  aggregate.Dropoff().Latitude(),
			Longitude: aggregate.Dropoff().Longitude(),
		},
		ParcelDescription: aggregate.ParcelDescription(),
		ContactNumber:     aggregate.ContactNumber(),
		DeliveryDate:      aggregate.DeliveryDate(),
		PriceAmount:       aggregate.PriceAmount(),
		AssignedAgentID:   agentID,
		Status:            int(aggregate.Status()),
		CreatedAt:         aggregate.CreatedAt(),
		UpdatedAt:         aggregate.UpdatedAt(),
		AssignedAt:        aggregate.AssignedAt(),
	}
}

// historyEntryFromDomain converts one history entry to its database representation.
func historyEntryFromDomain(deliveryID kernel.UUID, entry delivery.HistoryEntry) HistoryEntryDTO {
	return HistoryEntryDTO{
		DeliveryID: deliveryID.Bytes(),
		Status:     int(entry.Status()),
		OccurredAt: entry.OccurredAt(),
		ActorID:    entry.ActorID().Bytes(),
	}
}

// toDomain converts database rows to a delivery domain aggregate.
// Reconstructs the complete aggregate including its status history using
// RestoreDelivery, which re-validates the cross-field invariants.
func toDomain(dto DeliveryDTO, historyDTOs []HistoryEntryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	trackingID, err := delivery.TrackingIDFromString(dto.TrackingID)
	if err != nil {
		return nil, err
	}

	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	pickup, err := kernel.NewAddress(dto.Pickup.Text, dto.Pickup.Latitude, dto.Pickup.Longitude)
	if err != nil {
		return nil, err
	}

	dropoff, err := kernel.NewAddress(dto.Dropoff.Text, dto.Dropoff.Latitude, dto.Dropoff.Longitude)
	if err != nil {
		return nil, err
	}

	var agentID *kernel.UUID
	if dto.AssignedAgentID != nil {
		aID, agentErr := kernel.UUIDFromBytes((*dto.AssignedAgentID)[:])
		if agentErr != nil {
			return nil, agentErr
		}

		agentID = &aID
	}

	history := make([]delivery.HistoryEntry, 0, len(historyDTOs))
	for _, h := range historyDTOs {
		actorID, actorErr := kernel.UUIDFromBytes(h.ActorID[:])
		if actorErr != nil {
			return nil, actorErr
		}

		entry, entryErr := delivery.NewHistoryEntry(delivery.Status(h.Status), h.OccurredAt, actorID)
		if entryErr != nil {
			return nil, entryErr
		}
		history = append(history, entry)
	}

	return delivery.RestoreDelivery(
		id,
		trackingID,
		ownerID,
		pickup,
		dropoff,
		dto.ParcelDescription,
		dto.ContactNumber,
		dto.DeliveryDate,
		dto.PriceAmount,
		agentID,
		delivery.Status(dto.Status),
		history,
		dto.CreatedAt,
		dto.UpdatedAt,
		dto.AssignedAt,
	)
}
