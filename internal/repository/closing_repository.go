package repository

import (
	"context"
	"time"

	"github.com/nexusretail/nexus-backend/internal/domain"
)

type ClosingRepository interface {
	// GetByLojaAndDate returns the live (non soft-deleted) closing for a
	// store/date, or domain.ErrNotFound.
	GetByLojaAndDate(ctx context.Context, empresaID, lojaID int64, data time.Time) (*domain.ClosingRecord, error)

	// Upsert inserts the record or updates it in place on (loja_id, data).
	Upsert(ctx context.Context, rec *domain.ClosingRecord) error

	// SetStatus moves a closing to a new lifecycle status.
	SetStatus(ctx context.Context, empresaID, lojaID int64, data time.Time, status domain.ClosingStatus) error

	// SoftDelete marks the record deleted; it disappears from every query.
	SoftDelete(ctx context.Context, empresaID, lojaID int64, data time.Time) error

	// ListByLojaAndMonth returns the store's closings for a month, oldest first.
	ListByLojaAndMonth(ctx context.Context, empresaID, lojaID int64, year int, month time.Month) ([]*domain.ClosingRecord, error)

	// MonthlySummary aggregates the store's month for the dashboard.
	MonthlySummary(ctx context.Context, empresaID, lojaID int64, year int, month time.Month) (*domain.ClosingMonthlySummary, error)
}
