package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/nexusretail/nexus-backend/internal/cache"
	"github.com/nexusretail/nexus-backend/internal/closing"
	"github.com/nexusretail/nexus-backend/internal/domain"
	"github.com/nexusretail/nexus-backend/internal/repository"
)

// ClosingService runs the daily cash-closing workflow: saves, closes,
// reopens and the monthly dashboard aggregate.
type ClosingService struct {
	closings repository.ClosingRepository
	summary  cache.SummaryCache
}

func NewClosingService(closings repository.ClosingRepository, summary cache.SummaryCache) *ClosingService {
	return &ClosingService{closings: closings, summary: summary}
}

// Save applies one save or close to the store's closing of the day,
// creating the record on first write. The engine rejects locked records
// before anything touches the database.
func (s *ClosingService) Save(ctx context.Context, actor domain.Actor, lojaID int64, data time.Time, raw map[string]any, action closing.Action) (*domain.ClosingRecord, error) {
	if !actor.CanCloseCashRegister() {
		return nil, domain.ErrForbidden
	}

	now := time.Now()

	rec, err := s.closings.GetByLojaAndDate(ctx, actor.EmpresaID, lojaID, data)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		rec = closing.NewRecord(actor.EmpresaID, lojaID, data, now)
	case err != nil:
		return nil, fmt.Errorf("load closing: %w", err)
	}

	in := closing.InputFromRaw(raw)
	if err := closing.Apply(rec, in, action, actor, now); err != nil {
		return nil, err
	}

	if err := s.closings.Upsert(ctx, rec); err != nil {
		return nil, fmt.Errorf("persist closing: %w", err)
	}

	if err := s.summary.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate summary cache")
	}

	return rec, nil
}

// Get returns one day's closing.
func (s *ClosingService) Get(ctx context.Context, actor domain.Actor, lojaID int64, data time.Time) (*domain.ClosingRecord, error) {
	return s.closings.GetByLojaAndDate(ctx, actor.EmpresaID, lojaID, data)
}

// ListMonth returns the store's closings for a month, oldest first.
func (s *ClosingService) ListMonth(ctx context.Context, actor domain.Actor, lojaID int64, year int, month time.Month) ([]*domain.ClosingRecord, error) {
	return s.closings.ListByLojaAndMonth(ctx, actor.EmpresaID, lojaID, year, month)
}

// Reopen moves a closed or reconciled day back to REABERTO so the store
// can correct it. Restricted to the financial roles.
func (s *ClosingService) Reopen(ctx context.Context, actor domain.Actor, lojaID int64, data time.Time) (*domain.ClosingRecord, error) {
	if !actor.CanReconcile() {
		return nil, domain.ErrForbidden
	}

	rec, err := s.closings.GetByLojaAndDate(ctx, actor.EmpresaID, lojaID, data)
	if err != nil {
		return nil, err
	}
	if rec.Status.Editable() {
		return nil, fmt.Errorf("%w: closing is not locked", domain.ErrValidation)
	}

	if err := s.closings.SetStatus(ctx, actor.EmpresaID, lojaID, data, domain.StatusReaberto); err != nil {
		return nil, fmt.Errorf("reopen closing: %w", err)
	}

	rec.Status = domain.StatusReaberto
	return rec, nil
}

// Delete soft-deletes a day's closing. Admin only; the record vanishes
// from every query but stays in the table.
func (s *ClosingService) Delete(ctx context.Context, actor domain.Actor, lojaID int64, data time.Time) error {
	if !actor.HasRole(domain.RoleAdmin) {
		return domain.ErrForbidden
	}

	if err := s.closings.SoftDelete(ctx, actor.EmpresaID, lojaID, data); err != nil {
		return err
	}

	if err := s.summary.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate summary cache")
	}

	return nil
}

// MonthlySummary aggregates one store's month, cache-first.
func (s *ClosingService) MonthlySummary(ctx context.Context, actor domain.Actor, lojaID int64, year int, month time.Month) (*domain.ClosingMonthlySummary, error) {
	mes := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")

	cached, hit, err := s.summary.GetSummary(ctx, actor.EmpresaID, lojaID, mes)
	if err != nil {
		log.Warn().Err(err).Msg("summary cache read failed")
	}
	if hit {
		return cached, nil
	}

	summary, err := s.closings.MonthlySummary(ctx, actor.EmpresaID, lojaID, year, month)
	if err != nil {
		return nil, err
	}

	if err := s.summary.SetSummary(ctx, actor.EmpresaID, lojaID, mes, summary); err != nil {
		log.Warn().Err(err).Msg("summary cache write failed")
	}

	return summary, nil
}
