package repository

import (
	"context"

	"github.com/nexusretail/nexus-backend/internal/domain"
)

// FinanceRepository persists the spreadsheet-import targets. Each insert
// stands alone so a batch can make partial progress.
type FinanceRepository interface {
	InsertContaPagar(ctx context.Context, batchID string, rec domain.ContaPagar) error
	InsertContaReceber(ctx context.Context, batchID string, rec domain.ContaReceber) error
	InsertFuncionario(ctx context.Context, batchID string, rec domain.Funcionario) error
	InsertMeta(ctx context.Context, batchID string, rec domain.Meta) error
	InsertAuditoria(ctx context.Context, batchID string, rec domain.Auditoria) error
	InsertManutencao(ctx context.Context, batchID string, rec domain.Manutencao) error
	InsertCampanha(ctx context.Context, batchID string, rec domain.Campanha) error
}

// LookupRepository loads the reference data imports resolve names against.
type LookupRepository interface {
	LojasByEmpresa(ctx context.Context, empresaID int64) ([]domain.NamedRef, error)
}
