package main

import (
	"fmt"
	"log"

	"github.com/urfave/cli/v2"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS empresas (
		id BIGSERIAL PRIMARY KEY,
		nome TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS lojas (
		id BIGSERIAL PRIMARY KEY,
		empresa_id BIGINT NOT NULL REFERENCES empresas(id),
		nome TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS usuarios (
		id TEXT PRIMARY KEY,
		empresa_id BIGINT NOT NULL REFERENCES empresas(id),
		nome TEXT NOT NULL,
		roles TEXT NOT NULL DEFAULT 'LOJA',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS fechamentos (
		id BIGSERIAL PRIMARY KEY,
		empresa_id BIGINT NOT NULL REFERENCES empresas(id),
		loja_id BIGINT NOT NULL REFERENCES lojas(id),
		data DATE NOT NULL,
		saldo_inicial NUMERIC(14,2) NOT NULL DEFAULT 0,
		dinheiro NUMERIC(14,2) NOT NULL DEFAULT 0,
		pix NUMERIC(14,2) NOT NULL DEFAULT 0,
		cartao NUMERIC(14,2) NOT NULL DEFAULT 0,
		sangrias NUMERIC(14,2) NOT NULL DEFAULT 0,
		suprimentos NUMERIC(14,2) NOT NULL DEFAULT 0,
		saidas NUMERIC(14,2) NOT NULL DEFAULT 0,
		total_entradas NUMERIC(14,2) NOT NULL DEFAULT 0,
		saldo_final NUMERIC(14,2) NOT NULL DEFAULT 0,
		valor_caixa_declarado NUMERIC(14,2),
		status TEXT NOT NULL DEFAULT 'ABERTO',
		responsavel_usuario_id TEXT,
		responsavel_nome TEXT,
		deleted_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (loja_id, data)
	)`,
	`CREATE TABLE IF NOT EXISTS conciliacoes (
		id UUID PRIMARY KEY,
		empresa_id BIGINT NOT NULL REFERENCES empresas(id),
		loja_id BIGINT NOT NULL REFERENCES lojas(id),
		data DATE NOT NULL,
		valor_pdv NUMERIC(14,2) NOT NULL DEFAULT 0,
		valor_caixa NUMERIC(14,2) NOT NULL DEFAULT 0,
		diferenca NUMERIC(14,2) NOT NULL DEFAULT 0,
		status TEXT NOT NULL,
		source_file TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_conciliacoes_loja_data
		ON conciliacoes (loja_id, data, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS contas_pagar (
		id BIGSERIAL PRIMARY KEY,
		empresa_id BIGINT NOT NULL REFERENCES empresas(id),
		loja_id BIGINT REFERENCES lojas(id),
		fornecedor TEXT NOT NULL,
		descricao TEXT NOT NULL DEFAULT '',
		valor NUMERIC(14,2) NOT NULL DEFAULT 0,
		vencimento DATE NOT NULL,
		status TEXT NOT NULL DEFAULT 'PENDENTE',
		import_batch_id UUID,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS contas_receber (
		id BIGSERIAL PRIMARY KEY,
		empresa_id BIGINT NOT NULL REFERENCES empresas(id),
		loja_id BIGINT REFERENCES lojas(id),
		cliente TEXT NOT NULL,
		descricao TEXT NOT NULL DEFAULT '',
		valor NUMERIC(14,2) NOT NULL DEFAULT 0,
		vencimento DATE NOT NULL,
		status TEXT NOT NULL DEFAULT 'PENDENTE',
		import_batch_id UUID,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS funcionarios (
		id BIGSERIAL PRIMARY KEY,
		empresa_id BIGINT NOT NULL REFERENCES empresas(id),
		loja_id BIGINT NOT NULL REFERENCES lojas(id),
		nome TEXT NOT NULL,
		cargo TEXT NOT NULL DEFAULT '',
		salario NUMERIC(14,2) NOT NULL DEFAULT 0,
		data_admissao DATE,
		import_batch_id UUID,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS metas (
		id BIGSERIAL PRIMARY KEY,
		empresa_id BIGINT NOT NULL REFERENCES empresas(id),
		loja_id BIGINT NOT NULL REFERENCES lojas(id),
		mes DATE NOT NULL,
		valor_meta NUMERIC(14,2) NOT NULL DEFAULT 0,
		import_batch_id UUID,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS auditorias (
		id BIGSERIAL PRIMARY KEY,
		empresa_id BIGINT NOT NULL REFERENCES empresas(id),
		loja_id BIGINT NOT NULL REFERENCES lojas(id),
		data DATE NOT NULL,
		nota NUMERIC(14,2) NOT NULL DEFAULT 0,
		observacoes TEXT NOT NULL DEFAULT '',
		import_batch_id UUID,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS manutencoes (
		id BIGSERIAL PRIMARY KEY,
		empresa_id BIGINT NOT NULL REFERENCES empresas(id),
		loja_id BIGINT NOT NULL REFERENCES lojas(id),
		titulo TEXT NOT NULL,
		prioridade TEXT NOT NULL DEFAULT 'MEDIA',
		status TEXT NOT NULL DEFAULT 'ABERTO',
		data_abertura DATE,
		import_batch_id UUID,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS campanhas (
		id BIGSERIAL PRIMARY KEY,
		empresa_id BIGINT NOT NULL REFERENCES empresas(id),
		nome TEXT NOT NULL,
		inicio DATE NOT NULL,
		fim DATE NOT NULL,
		desconto_pct NUMERIC(6,2) NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'ATIVA',
		import_batch_id UUID,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

func runSchema(c *cli.Context) error {
	db, err := dbFrom(c)
	if err != nil {
		return err
	}

	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(c.Context, stmt); err != nil {
			return fmt.Errorf("failed to run schema statement: %w", err)
		}
	}

	log.Println("schema created")
	return nil
}
