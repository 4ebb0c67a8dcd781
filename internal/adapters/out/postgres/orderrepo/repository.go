package orderrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolationCode = "23505"

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order and its initial audit row.
// A code collision surfaces as ports.ErrDuplicateOrderCode.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	// The order row and its history rows must land together even on the
	// auto-commit path, so the write always runs inside a transaction; when
	// the repository is already bound to one this nests as a savepoint.
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&dto).Error; err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: %s", ports.ErrDuplicateOrderCode, aggregate.Code())
			}
			return err
		}
		return appendPendingChanges(tx, aggregate)
	})
	if err != nil {
		return err
	}

	aggregate.ClearPendingChanges()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order and appends its pending audit rows.
// The write is guarded by the version the aggregate was loaded with; when
// another transaction got there first, nothing is written and
// ports.ErrConcurrentModification is returned.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	loadedVersion := aggregate.Version()
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&OrderDTO{}).
			Where("id = ? AND version = ?", dto.ID, loadedVersion).
			Updates(map[string]any{
				"status":             dto.Status,
				"payment_state":      dto.PaymentState,
				"fulfillment_status": dto.FulfillmentStatus,
				"carrier":            dto.Carrier,
				"tracking_code":      dto.TrackingCode,
				"transaction_ref":    dto.TransactionRef,
				"cancel_reason":      dto.CancelReason,
				"version":            loadedVersion + 1,
				"updated_at":         dto.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: order %s version %d",
				ports.ErrConcurrentModification, aggregate.ID(), loadedVersion)
		}
		return appendPendingChanges(tx, aggregate)
	})
	if err != nil {
		return err
	}

	aggregate.ClearPendingChanges()
	aggregate.CommitVersion()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByCode retrieves an order by its human-facing code.
func (r *GormOrderRepository) GetByCode(ctx context.Context, code string) (*order.Order, error) {
	if code == "" {
		return nil, errs.NewValueIsRequiredError("code")
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", code)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetStaleInStatus retrieves orders sitting in the given status since before
// the cutoff, oldest first.
func (r *GormOrderRepository) GetStaleInStatus(
	ctx context.Context, status order.Status, before time.Time,
) ([]*order.Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND updated_at < ?", int(status), before).
		Order("updated_at ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// appendPendingChanges writes the aggregate's queued audit rows inside the
// given transaction, so the order row and its history rows commit together.
// The caller clears the queue once the transaction function returns nil.
func appendPendingChanges(tx *gorm.DB, aggregate *order.Order) error {
	pending := aggregate.PendingChanges()
	if len(pending) == 0 {
		return nil
	}

	dtos := make([]StatusChangeDTO, 0, len(pending))
	for _, change := range pending {
		dtos = append(dtos, changeFromDomain(aggregate.ID(), change))
	}

	return tx.Create(&dtos).Error
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
