package repository

import (
	"context"
	"time"

	"github.com/nexusretail/nexus-backend/internal/domain"
)

type ReconciliationRepository interface {
	// Insert appends one reconciliation record. There is deliberately no
	// upsert: repeated runs for the same store/date keep their history.
	Insert(ctx context.Context, rec *domain.ReconciliationRecord) error

	// ListByLojaAndDate returns all attempts for a store/date, newest first.
	ListByLojaAndDate(ctx context.Context, empresaID, lojaID int64, data time.Time) ([]*domain.ReconciliationRecord, error)

	// LatestByLojaAndDate returns the most recent attempt, or
	// domain.ErrNotFound. "Current status" is always derived this way,
	// never stored.
	LatestByLojaAndDate(ctx context.Context, empresaID, lojaID int64, data time.Time) (*domain.ReconciliationRecord, error)
}
