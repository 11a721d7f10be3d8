package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/nexusretail/nexus-backend/internal/domain"
)

type reconciliationRepository struct {
	db *DB
}

func NewReconciliationRepository(db *DB) *reconciliationRepository {
	return &reconciliationRepository{db: db}
}

func (r *reconciliationRepository) Insert(ctx context.Context, rec *domain.ReconciliationRecord) error {
	query := `
		INSERT INTO conciliacoes (
			id, empresa_id, loja_id, data,
			valor_pdv, valor_caixa, diferenca, status, source_file, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.EmpresaID, rec.LojaID, dateOnly(rec.Data),
		rec.ValorPDV, rec.ValorCaixa, rec.Diferenca, rec.Status, rec.SourceFile, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert reconciliation: %w", err)
	}

	return nil
}

func (r *reconciliationRepository) ListByLojaAndDate(ctx context.Context, empresaID, lojaID int64, data time.Time) ([]*domain.ReconciliationRecord, error) {
	query := `
		SELECT id, empresa_id, loja_id, data, valor_pdv, valor_caixa, diferenca, status, source_file, created_at
		FROM conciliacoes
		WHERE empresa_id = $1 AND loja_id = $2 AND data = $3
		ORDER BY created_at DESC
	`

	var records []*domain.ReconciliationRecord
	if err := sqlx.SelectContext(ctx, r.db, &records, query, empresaID, lojaID, dateOnly(data)); err != nil {
		return nil, fmt.Errorf("failed to list reconciliations: %w", err)
	}

	return records, nil
}

func (r *reconciliationRepository) LatestByLojaAndDate(ctx context.Context, empresaID, lojaID int64, data time.Time) (*domain.ReconciliationRecord, error) {
	query := `
		SELECT id, empresa_id, loja_id, data, valor_pdv, valor_caixa, diferenca, status, source_file, created_at
		FROM conciliacoes
		WHERE empresa_id = $1 AND loja_id = $2 AND data = $3
		ORDER BY created_at DESC
		LIMIT 1
	`

	var rec domain.ReconciliationRecord
	err := sqlx.GetContext(ctx, r.db, &rec, query, empresaID, lojaID, dateOnly(data))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest reconciliation: %w", err)
	}

	return &rec, nil
}
