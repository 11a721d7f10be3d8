package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/nexusretail/nexus-backend/internal/domain"
)

type financeRepository struct {
	db *DB
}

func NewFinanceRepository(db *DB) *financeRepository {
	return &financeRepository{db: db}
}

func (r *financeRepository) InsertContaPagar(ctx context.Context, batchID string, rec domain.ContaPagar) error {
	query := `
		INSERT INTO contas_pagar (
			empresa_id, loja_id, fornecedor, descricao, valor, vencimento, status, import_batch_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
	`
	_, err := r.db.ExecContext(ctx, query,
		rec.EmpresaID, rec.LojaID, rec.Fornecedor, rec.Descricao,
		rec.Valor, rec.Vencimento, rec.Status, batchID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert conta a pagar: %w", err)
	}
	return nil
}

func (r *financeRepository) InsertContaReceber(ctx context.Context, batchID string, rec domain.ContaReceber) error {
	query := `
		INSERT INTO contas_receber (
			empresa_id, loja_id, cliente, descricao, valor, vencimento, status, import_batch_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
	`
	_, err := r.db.ExecContext(ctx, query,
		rec.EmpresaID, rec.LojaID, rec.Cliente, rec.Descricao,
		rec.Valor, rec.Vencimento, rec.Status, batchID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert conta a receber: %w", err)
	}
	return nil
}

func (r *financeRepository) InsertFuncionario(ctx context.Context, batchID string, rec domain.Funcionario) error {
	query := `
		INSERT INTO funcionarios (
			empresa_id, loja_id, nome, cargo, salario, data_admissao, import_batch_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`
	_, err := r.db.ExecContext(ctx, query,
		rec.EmpresaID, rec.LojaID, rec.Nome, rec.Cargo, rec.Salario, rec.DataAdmissao, batchID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert funcionario: %w", err)
	}
	return nil
}

func (r *financeRepository) InsertMeta(ctx context.Context, batchID string, rec domain.Meta) error {
	query := `
		INSERT INTO metas (
			empresa_id, loja_id, mes, valor_meta, import_batch_id, created_at
		) VALUES ($1, $2, $3, $4, $5, NOW())
	`
	_, err := r.db.ExecContext(ctx, query,
		rec.EmpresaID, rec.LojaID, rec.Mes, rec.ValorMeta, batchID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert meta: %w", err)
	}
	return nil
}

func (r *financeRepository) InsertAuditoria(ctx context.Context, batchID string, rec domain.Auditoria) error {
	query := `
		INSERT INTO auditorias (
			empresa_id, loja_id, data, nota, observacoes, import_batch_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`
	_, err := r.db.ExecContext(ctx, query,
		rec.EmpresaID, rec.LojaID, rec.Data, rec.Nota, rec.Observacoes, batchID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert auditoria: %w", err)
	}
	return nil
}

func (r *financeRepository) InsertManutencao(ctx context.Context, batchID string, rec domain.Manutencao) error {
	query := `
		INSERT INTO manutencoes (
			empresa_id, loja_id, titulo, prioridade, status, data_abertura, import_batch_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`
	_, err := r.db.ExecContext(ctx, query,
		rec.EmpresaID, rec.LojaID, rec.Titulo, rec.Prioridade, rec.Status, rec.DataAbertura, batchID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert manutencao: %w", err)
	}
	return nil
}

func (r *financeRepository) InsertCampanha(ctx context.Context, batchID string, rec domain.Campanha) error {
	query := `
		INSERT INTO campanhas (
			empresa_id, nome, inicio, fim, desconto_pct, status, import_batch_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`
	_, err := r.db.ExecContext(ctx, query,
		rec.EmpresaID, rec.Nome, rec.Inicio, rec.Fim, rec.DescontoPct, rec.Status, batchID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert campanha: %w", err)
	}
	return nil
}

type lookupRepository struct {
	db *DB
}

func NewLookupRepository(db *DB) *lookupRepository {
	return &lookupRepository{db: db}
}

func (r *lookupRepository) LojasByEmpresa(ctx context.Context, empresaID int64) ([]domain.NamedRef, error) {
	query := `
		SELECT id, nome
		FROM lojas
		WHERE empresa_id = $1
		ORDER BY nome
	`

	var refs []domain.NamedRef
	if err := sqlx.SelectContext(ctx, r.db, &refs, query, empresaID); err != nil {
		return nil, fmt.Errorf("failed to list lojas: %w", err)
	}

	return refs, nil
}
