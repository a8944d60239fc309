package deliveryrepo

import (
	"context"
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// GormDeliveryRepository implements DeliveryRepository using GORM.
//
// All writes after the initial insert are conditional updates: the WHERE
// clause re-checks the state the caller loaded, so a write that lost a race
// affects zero rows and is reported as a conflict instead of silently
// overwriting the winner.
type GormDeliveryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDeliveryRepository creates a new GORM delivery repository.
func NewGormDeliveryRepository(db *gorm.DB, tracker aggregateTracker) *GormDeliveryRepository {
	return &GormDeliveryRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new delivery and its initial history entry to the database.
// A unique-key collision on the tracking identifier is reported as an
// ObjectAlreadyExistsError so the caller can regenerate the identifier.
func (r *GormDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isUniqueViolation(err) {
			return errs.NewObjectAlreadyExistsError("trackingId", aggregate.TrackingID().String(), err)
		}
		return err
	}

	for _, entry := range aggregate.History() {
		historyDTO := historyEntryFromDomain(aggregate.ID(), entry)
		if err := r.db.WithContext(ctx).Create(&historyDTO).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves a status transition, guarded on the status the aggregate was
// loaded with. The newly appended history entry is written in the same
// transaction. A guard miss means another writer changed the row first.
func (r *GormDeliveryRepository) Update(
	ctx context.Context,
	aggregate *delivery.Delivery,
	loadedStatus delivery.Status,
) error {
	if err := errors.Join(aggregate.Validate(), loadedStatus.Validate()); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&DeliveryDTO{}).
		Where("id = ? AND status = ?", dto.ID, int(loadedStatus)).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConcurrentConflictError("delivery", aggregate.ID().String())
	}

	return r.appendLastHistoryEntry(ctx, aggregate)
}

// AssignIfPending saves an assignment if and only if the stored row is still
// pending and unassigned. Exactly one concurrent caller observes a row hit;
// everyone else gets an AlreadyAssignedError and the row stays untouched.
func (r *GormDeliveryRepository) AssignIfPending(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&DeliveryDTO{}).
		Where("id = ? AND status = ? AND assigned_agent_id IS NULL", dto.ID, int(delivery.Pending)).
		Updates(map[string]any{
			"status":            dto.Status,
			"assigned_agent_id": dto.AssignedAgentID,
			"assigned_at":       dto.AssignedAt,
			"updated_at":        dto.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewAlreadyAssignedError(aggregate.ID().String())
	}

	return r.appendLastHistoryEntry(ctx, aggregate)
}

// Get retrieves a delivery by ID, including its full status history.
func (r *GormDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", id.String())
		}
		return nil, err
	}

	return r.loadWithHistory(ctx, dto)
}

// GetByTrackingID retrieves a delivery by its public tracking identifier,
// including its full status history.
func (r *GormDeliveryRepository) GetByTrackingID(
	ctx context.Context,
	trackingID delivery.TrackingID,
) (*delivery.Delivery, error) {
	if err := trackingID.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	if err := r.db.WithContext(ctx).First(&dto, "tracking_id = ?", trackingID.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("trackingId", trackingID.String())
		}
		return nil, err
	}

	return r.loadWithHistory(ctx, dto)
}

// FindStalePending retrieves all deliveries still waiting for an agent that
// were created before the given instant, oldest first.
func (r *GormDeliveryRepository) FindStalePending(
	ctx context.Context,
	before time.Time,
) ([]*delivery.Delivery, error) {
	var dtos []DeliveryDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND assigned_agent_id IS NULL AND created_at < ?", int(delivery.Pending), before).
		Order("created_at ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	aggregates := make([]*delivery.Delivery, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := r.loadWithHistory(ctx, dto)
		if err != nil {
			return nil, err
		}
		aggregates = append(aggregates, aggregate)
	}

	return aggregates, nil
}

// loadWithHistory fetches the history rows for a delivery row and maps both
// to the domain aggregate. History is ordered oldest first.
func (r *GormDeliveryRepository) loadWithHistory(
	ctx context.Context,
	dto DeliveryDTO,
) (*delivery.Delivery, error) {
	var historyDTOs []HistoryEntryDTO
	err := r.db.WithContext(ctx).
		Where("delivery_id = ?", dto.ID).
		Order("occurred_at ASC, id ASC").
		Find(&historyDTOs).Error
	if err != nil {
		return nil, err
	}

	return toDomain(dto, historyDTOs)
}

// appendLastHistoryEntry inserts the most recent history entry of the aggregate.
func (r *GormDeliveryRepository) appendLastHistoryEntry(
	ctx context.Context,
	aggregate *delivery.Delivery,
) error {
	historyDTO := historyEntryFromDomain(aggregate.ID(), aggregate.LastHistoryEntry())
	if err := r.db.WithContext(ctx).Create(&historyDTO).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
