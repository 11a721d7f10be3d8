package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/nexusretail/nexus-backend/internal/closing"
	"github.com/nexusretail/nexus-backend/internal/domain"
	"github.com/nexusretail/nexus-backend/internal/importer"
	"github.com/nexusretail/nexus-backend/internal/repository"
	"github.com/nexusretail/nexus-backend/internal/storage"
)

// ReconciliationService compares a PDV export against a store's closing.
type ReconciliationService struct {
	closings repository.ClosingRepository
	recons   repository.ReconciliationRepository
	archive  storage.ObjectStorage
}

func NewReconciliationService(
	closings repository.ClosingRepository,
	recons repository.ReconciliationRepository,
	archive storage.ObjectStorage,
) *ReconciliationService {
	return &ReconciliationService{
		closings: closings,
		recons:   recons,
		archive:  archive,
	}
}

// Reconcile parses the uploaded PDV export, sums the chosen value column
// and appends a reconciliation record for the store/date. The closing is
// left untouched: reconciliation observes, it does not transition. A day
// with no closing reconciles against zero.
func (s *ReconciliationService) Reconcile(ctx context.Context, actor domain.Actor, lojaID int64, data time.Time, filename string, file io.Reader, valueColumn string) (*domain.ReconciliationRecord, error) {
	if !actor.CanReconcile() {
		return nil, domain.ErrForbidden
	}
	if valueColumn == "" {
		return nil, fmt.Errorf("%w: value column is required", domain.ErrValidation)
	}

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read pdv export: %w", err)
	}

	rows, err := importer.ReadFile(filename, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: pdv export has no data rows", domain.ErrValidation)
	}

	current, err := s.closings.GetByLojaAndDate(ctx, actor.EmpresaID, lojaID, data)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("load closing: %w", err)
	}

	rec := closing.Reconcile(actor.EmpresaID, lojaID, data, current, rows, valueColumn, filename, time.Now())

	if err := s.recons.Insert(ctx, &rec); err != nil {
		return nil, fmt.Errorf("persist reconciliation: %w", err)
	}

	key := fmt.Sprintf("pdv/%d/%d/%s/%s", actor.EmpresaID, lojaID, data.Format("2006-01-02"), filename)
	if err := s.archive.UploadObject(ctx, key, raw); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to archive pdv export")
	}

	log.Info().
		Int64("loja_id", lojaID).
		Str("data", data.Format("2006-01-02")).
		Str("status", string(rec.Status)).
		Str("diferenca", rec.Diferenca.String()).
		Msg("reconciliation recorded")

	return &rec, nil
}

// Review stamps the latest reconciliation outcome onto the closing. Only
// a day sitting in FECHADO_PENDENTE_CONCILIACAO can be reviewed.
func (s *ReconciliationService) Review(ctx context.Context, actor domain.Actor, lojaID int64, data time.Time) (*domain.ClosingRecord, error) {
	if !actor.CanReconcile() {
		return nil, domain.ErrForbidden
	}

	rec, err := s.closings.GetByLojaAndDate(ctx, actor.EmpresaID, lojaID, data)
	if err != nil {
		return nil, err
	}
	if rec.Status != domain.StatusFechadoPendente {
		return nil, fmt.Errorf("%w: closing is not pending reconciliation", domain.ErrValidation)
	}

	latest, err := s.recons.LatestByLojaAndDate(ctx, actor.EmpresaID, lojaID, data)
	if err != nil {
		return nil, err
	}

	status := domain.StatusConciliadoDivergente
	if latest.Status == domain.ReconciliationOK {
		status = domain.StatusConciliadoOK
	}

	if err := s.closings.SetStatus(ctx, actor.EmpresaID, lojaID, data, status); err != nil {
		return nil, fmt.Errorf("review closing: %w", err)
	}

	rec.Status = status
	return rec, nil
}

// History returns every reconciliation attempt for a store/date.
func (s *ReconciliationService) History(ctx context.Context, actor domain.Actor, lojaID int64, data time.Time) ([]*domain.ReconciliationRecord, error) {
	return s.recons.ListByLojaAndDate(ctx, actor.EmpresaID, lojaID, data)
}

// Latest returns the most recent attempt; the displayed "current" status
// is always derived from it.
func (s *ReconciliationService) Latest(ctx context.Context, actor domain.Actor, lojaID int64, data time.Time) (*domain.ReconciliationRecord, error) {
	return s.recons.LatestByLojaAndDate(ctx, actor.EmpresaID, lojaID, data)
}
