package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/nexusretail/nexus-backend/internal/domain"
)

type closingRepository struct {
	db *DB
}

func NewClosingRepository(db *DB) *closingRepository {
	return &closingRepository{db: db}
}

const closingColumns = `
	id, empresa_id, loja_id, data,
	saldo_inicial, dinheiro, pix, cartao, sangrias, suprimentos, saidas,
	total_entradas, saldo_final, valor_caixa_declarado,
	status, responsavel_usuario_id, responsavel_nome,
	deleted_at, created_at, updated_at
`

func (r *closingRepository) GetByLojaAndDate(ctx context.Context, empresaID, lojaID int64, data time.Time) (*domain.ClosingRecord, error) {
	query := `
		SELECT ` + closingColumns + `
		FROM fechamentos
		WHERE empresa_id = $1 AND loja_id = $2 AND data = $3 AND deleted_at IS NULL
	`

	var rec domain.ClosingRecord
	err := sqlx.GetContext(ctx, r.db, &rec, query, empresaID, lojaID, dateOnly(data))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get closing: %w", err)
	}

	return &rec, nil
}

func (r *closingRepository) Upsert(ctx context.Context, rec *domain.ClosingRecord) error {
	query := `
		INSERT INTO fechamentos (
			empresa_id, loja_id, data,
			saldo_inicial, dinheiro, pix, cartao, sangrias, suprimentos, saidas,
			total_entradas, saldo_final, valor_caixa_declarado,
			status, responsavel_usuario_id, responsavel_nome,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW(), NOW())
		ON CONFLICT (loja_id, data)
		DO UPDATE SET
			saldo_inicial = EXCLUDED.saldo_inicial,
			dinheiro = EXCLUDED.dinheiro,
			pix = EXCLUDED.pix,
			cartao = EXCLUDED.cartao,
			sangrias = EXCLUDED.sangrias,
			suprimentos = EXCLUDED.suprimentos,
			saidas = EXCLUDED.saidas,
			total_entradas = EXCLUDED.total_entradas,
			saldo_final = EXCLUDED.saldo_final,
			valor_caixa_declarado = EXCLUDED.valor_caixa_declarado,
			status = EXCLUDED.status,
			responsavel_usuario_id = EXCLUDED.responsavel_usuario_id,
			responsavel_nome = EXCLUDED.responsavel_nome,
			updated_at = NOW()
		WHERE fechamentos.deleted_at IS NULL
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		rec.EmpresaID, rec.LojaID, dateOnly(rec.Data),
		rec.SaldoInicial, rec.Dinheiro, rec.Pix, rec.Cartao,
		rec.Sangrias, rec.Suprimentos, rec.Saidas,
		rec.TotalEntradas, rec.SaldoFinal, rec.ValorCaixaDeclarado,
		rec.Status, rec.ResponsavelUsuarioID, rec.ResponsavelNome,
	).Scan(&rec.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert closing: %w", err)
	}

	return nil
}

func (r *closingRepository) SetStatus(ctx context.Context, empresaID, lojaID int64, data time.Time, status domain.ClosingStatus) error {
	query := `
		UPDATE fechamentos
		SET status = $4, updated_at = NOW()
		WHERE empresa_id = $1 AND loja_id = $2 AND data = $3 AND deleted_at IS NULL
	`

	res, err := r.db.ExecContext(ctx, query, empresaID, lojaID, dateOnly(data), status)
	if err != nil {
		return fmt.Errorf("failed to set closing status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *closingRepository) SoftDelete(ctx context.Context, empresaID, lojaID int64, data time.Time) error {
	query := `
		UPDATE fechamentos
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE empresa_id = $1 AND loja_id = $2 AND data = $3 AND deleted_at IS NULL
	`

	res, err := r.db.ExecContext(ctx, query, empresaID, lojaID, dateOnly(data))
	if err != nil {
		return fmt.Errorf("failed to soft-delete closing: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *closingRepository) ListByLojaAndMonth(ctx context.Context, empresaID, lojaID int64, year int, month time.Month) ([]*domain.ClosingRecord, error) {
	query := `
		SELECT ` + closingColumns + `
		FROM fechamentos
		WHERE empresa_id = $1 AND loja_id = $2
		  AND data >= $3 AND data < $4
		  AND deleted_at IS NULL
		ORDER BY data ASC
	`

	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	var records []*domain.ClosingRecord
	if err := sqlx.SelectContext(ctx, r.db, &records, query, empresaID, lojaID, from, to); err != nil {
		return nil, fmt.Errorf("failed to list closings: %w", err)
	}

	return records, nil
}

func (r *closingRepository) MonthlySummary(ctx context.Context, empresaID, lojaID int64, year int, month time.Month) (*domain.ClosingMonthlySummary, error) {
	query := `
		SELECT
			f.loja_id,
			COALESCE(SUM(f.total_entradas), 0) AS total_entradas,
			COALESCE(SUM(f.sangrias), 0) AS total_sangrias,
			COALESCE(SUM(f.saidas), 0) AS total_saidas,
			COUNT(*) FILTER (WHERE f.status <> 'ABERTO') AS dias_fechados,
			COUNT(*) FILTER (WHERE f.status = 'CONCILIADO_DIVERGENCIA') AS dias_divergentes
		FROM fechamentos f
		WHERE f.empresa_id = $1 AND f.loja_id = $2
		  AND f.data >= $3 AND f.data < $4
		  AND f.deleted_at IS NULL
		GROUP BY f.loja_id
	`

	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	var summary domain.ClosingMonthlySummary
	err := sqlx.GetContext(ctx, r.db, &summary, query, empresaID, lojaID, from, to)
	if errors.Is(err, sql.ErrNoRows) {
		return &domain.ClosingMonthlySummary{
			LojaID:        lojaID,
			Mes:           from.Format("2006-01"),
			TotalEntradas: decimal.Zero,
			TotalSangrias: decimal.Zero,
			TotalSaidas:   decimal.Zero,
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate monthly summary: %w", err)
	}

	summary.Mes = from.Format("2006-01")
	return &summary, nil
}

// dateOnly truncates to the calendar day; closings key on the date, not
// the wall-clock instant.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
