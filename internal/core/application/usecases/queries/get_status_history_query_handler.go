package queries

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetStatusHistoryQueryHandler reads the append-only audit trail of an
// order, newest entries first.
type GetStatusHistoryQueryHandler struct {
	db *gorm.DB
}

func NewGetStatusHistoryQueryHandler(db *gorm.DB) (GetStatusHistoryQueryHandler, error) {
	if db == nil {
		return GetStatusHistoryQueryHandler{}, errs.NewValueIsRequiredError("db")
	}

	return GetStatusHistoryQueryHandler{db: db}, nil
}

type statusChangeRow struct {
	ID           uuid.UUID
	FromStatus   *int
	ToStatus     int
	ActorName    string
	Forced       bool
	NoteInternal string
	NoteCustomer string
	CreatedAt    time.Time
}

func (h GetStatusHistoryQueryHandler) Handle(
	ctx context.Context, query GetStatusHistoryQuery,
) (GetStatusHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetStatusHistoryQueryResponse{}, err
	}

	var exists int
	result := h.db.WithContext(ctx).Raw(
		"SELECT 1 FROM orders WHERE id = ?", query.OrderID().Bytes(),
	).Scan(&exists)
	if result.Error != nil {
		return GetStatusHistoryQueryResponse{}, result.Error
	}
	if result.RowsAffected == 0 {
		return GetStatusHistoryQueryResponse{}, errs.NewObjectNotFoundError(
			"orderID", query.OrderID().Bytes())
	}

	var rows []statusChangeRow
	result = h.db.WithContext(ctx).Raw(`
		SELECT id, from_status, to_status, actor_name, forced,
		       note_internal, note_customer, created_at
		FROM order_status_changes
		WHERE order_id = ?
		ORDER BY seq DESC`,
		query.OrderID().Bytes(),
	).Scan(&rows)
	if result.Error != nil {
		return GetStatusHistoryQueryResponse{}, result.Error
	}

	resp := GetStatusHistoryQueryResponse{
		Changes: make([]StatusChangeResponse, 0, len(rows)),
	}
	for _, row := range rows {
		id, err := kernel.UUIDFromBytes(row.ID[:])
		if err != nil {
			return GetStatusHistoryQueryResponse{}, err
		}

		change := StatusChangeResponse{
			ID:           id,
			ToStatus:     order.Status(row.ToStatus).String(),
			ActorName:    row.ActorName,
			Forced:       row.Forced,
			NoteInternal: row.NoteInternal,
			NoteCustomer: row.NoteCustomer,
			CreatedAt:    row.CreatedAt,
		}
		if row.FromStatus != nil {
			change.FromStatus = order.Status(*row.FromStatus).String()
		}

		resp.Changes = append(resp.Changes, change)
	}

	return resp, nil
}
