package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/nexusretail/nexus-backend/internal/domain"
	"github.com/nexusretail/nexus-backend/internal/importer"
	"github.com/nexusretail/nexus-backend/internal/parse"
	"github.com/nexusretail/nexus-backend/internal/repository"
	"github.com/nexusretail/nexus-backend/internal/storage"
)

// ImportService turns uploaded spreadsheets into finance records.
type ImportService struct {
	finance repository.FinanceRepository
	lookups repository.LookupRepository
	archive storage.ObjectStorage
	locale  parse.DateLocale
}

func NewImportService(
	finance repository.FinanceRepository,
	lookups repository.LookupRepository,
	archive storage.ObjectStorage,
	locale parse.DateLocale,
) *ImportService {
	return &ImportService{
		finance: finance,
		lookups: lookups,
		archive: archive,
		locale:  locale,
	}
}

// ImportFile normalizes one spreadsheet for the given entity and persists
// every row that survives normalization. Rows that fail to insert are
// logged and skipped; a bad row never aborts the batch.
func (s *ImportService) ImportFile(ctx context.Context, actor domain.Actor, entity, filename string, file io.Reader) (*domain.ImportResult, error) {
	if !actor.CanReconcile() {
		return nil, domain.ErrForbidden
	}

	mapper, ok := importer.MapperFor(entity, actor.EmpresaID)
	if !ok {
		return nil, fmt.Errorf("%w: unknown import entity %q", domain.ErrValidation, entity)
	}

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	rows, err := importer.ReadFile(filename, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: spreadsheet has no data rows", domain.ErrValidation)
	}

	lojas, err := s.lookups.LojasByEmpresa(ctx, actor.EmpresaID)
	if err != nil {
		return nil, fmt.Errorf("load stores: %w", err)
	}

	batch := importer.NormalizeBatch(rows, mapper, importer.Lookups{Lojas: lojas}, s.locale)

	batchID := uuid.NewString()
	imported := 0
	for _, rec := range batch.Records {
		if err := s.insertRecord(ctx, batchID, rec); err != nil {
			log.Warn().Err(err).Str("entity", entity).Str("batch_id", batchID).Msg("record insert failed, skipping")
			continue
		}
		imported++
	}

	key := fmt.Sprintf("imports/%d/%s/%s/%s", actor.EmpresaID, entity, time.Now().Format("2006-01-02"), filename)
	if err := s.archive.UploadObject(ctx, key, raw); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to archive import file")
	}

	log.Info().
		Str("entity", entity).
		Str("batch_id", batchID).
		Int("imported", imported).
		Int("total", batch.TotalCount).
		Msg("import finished")

	return &domain.ImportResult{
		BatchID:       batchID,
		Entity:        entity,
		ImportedCount: imported,
		TotalCount:    batch.TotalCount,
	}, nil
}

func (s *ImportService) insertRecord(ctx context.Context, batchID string, rec any) error {
	switch r := rec.(type) {
	case domain.ContaPagar:
		return s.finance.InsertContaPagar(ctx, batchID, r)
	case domain.ContaReceber:
		return s.finance.InsertContaReceber(ctx, batchID, r)
	case domain.Funcionario:
		return s.finance.InsertFuncionario(ctx, batchID, r)
	case domain.Meta:
		return s.finance.InsertMeta(ctx, batchID, r)
	case domain.Auditoria:
		return s.finance.InsertAuditoria(ctx, batchID, r)
	case domain.Manutencao:
		return s.finance.InsertManutencao(ctx, batchID, r)
	case domain.Campanha:
		return s.finance.InsertCampanha(ctx, batchID, r)
	default:
		return fmt.Errorf("unsupported record type %T", rec)
	}
}
