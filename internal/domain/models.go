package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Empresa is the tenant. Every record in the system is scoped to one.
type Empresa struct {
	ID        int64     `json:"id" db:"id"`
	Nome      string    `json:"nome" db:"nome"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Loja is a store belonging to an Empresa.
type Loja struct {
	ID        int64     `json:"id" db:"id"`
	EmpresaID int64     `json:"empresa_id" db:"empresa_id"`
	Nome      string    `json:"nome" db:"nome"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ClosingRecord is the daily cash-register summary for one store.
// Identity is (loja_id, data); there is at most one live record per day.
type ClosingRecord struct {
	ID        int64     `json:"id" db:"id"`
	EmpresaID int64     `json:"empresa_id" db:"empresa_id"`
	LojaID    int64     `json:"loja_id" db:"loja_id"`
	Data      time.Time `json:"data" db:"data"`

	SaldoInicial decimal.Decimal `json:"saldo_inicial" db:"saldo_inicial"`
	Dinheiro     decimal.Decimal `json:"dinheiro" db:"dinheiro"`
	Pix          decimal.Decimal `json:"pix" db:"pix"`
	Cartao       decimal.Decimal `json:"cartao" db:"cartao"`
	Sangrias     decimal.Decimal `json:"sangrias" db:"sangrias"`
	Suprimentos  decimal.Decimal `json:"suprimentos" db:"suprimentos"`
	Saidas       decimal.Decimal `json:"saidas" db:"saidas"`

	TotalEntradas decimal.Decimal `json:"total_entradas" db:"total_entradas"`
	SaldoFinal    decimal.Decimal `json:"saldo_final" db:"saldo_final"`

	// ValorCaixaDeclarado is the manually counted cash drawer, kept only
	// for audit comparison against the computed totals.
	ValorCaixaDeclarado *decimal.Decimal `json:"valor_caixa_declarado,omitempty" db:"valor_caixa_declarado"`

	Status ClosingStatus `json:"status" db:"status"`

	// Snapshot of the user that closed the day. Immutable after CLOSE even
	// if the user later renames their profile.
	ResponsavelUsuarioID *string `json:"responsavel_usuario_id,omitempty" db:"responsavel_usuario_id"`
	ResponsavelNome      *string `json:"responsavel_nome,omitempty" db:"responsavel_nome"`

	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

// ReconciliationRecord compares a store's closing total against the PDV
// export for the same day. History is append-only: re-running the
// reconciliation adds a record, it never overwrites one.
type ReconciliationRecord struct {
	ID         string               `json:"id" db:"id"`
	EmpresaID  int64                `json:"empresa_id" db:"empresa_id"`
	LojaID     int64                `json:"loja_id" db:"loja_id"`
	Data       time.Time            `json:"data" db:"data"`
	ValorPDV   decimal.Decimal      `json:"valor_pdv" db:"valor_pdv"`
	ValorCaixa decimal.Decimal      `json:"valor_caixa" db:"valor_caixa"`
	Diferenca  decimal.Decimal      `json:"diferenca" db:"diferenca"`
	Status     ReconciliationStatus `json:"status" db:"status"`
	SourceFile string               `json:"source_file" db:"source_file"`
	CreatedAt  time.Time            `json:"created_at" db:"created_at"`
}

// ContaPagar is one accounts-payable title, usually created from a
// spreadsheet import.
type ContaPagar struct {
	ID            int64           `json:"id" db:"id"`
	EmpresaID     int64           `json:"empresa_id" db:"empresa_id"`
	LojaID        *int64          `json:"loja_id,omitempty" db:"loja_id"`
	Fornecedor    string          `json:"fornecedor" db:"fornecedor"`
	Descricao     string          `json:"descricao" db:"descricao"`
	Valor         decimal.Decimal `json:"valor" db:"valor"`
	Vencimento    time.Time       `json:"vencimento" db:"vencimento"`
	Status        string          `json:"status" db:"status"`
	ImportBatchID *string         `json:"import_batch_id,omitempty" db:"import_batch_id"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}

// ContaReceber is one accounts-receivable title.
type ContaReceber struct {
	ID            int64           `json:"id" db:"id"`
	EmpresaID     int64           `json:"empresa_id" db:"empresa_id"`
	LojaID        *int64          `json:"loja_id,omitempty" db:"loja_id"`
	Cliente       string          `json:"cliente" db:"cliente"`
	Descricao     string          `json:"descricao" db:"descricao"`
	Valor         decimal.Decimal `json:"valor" db:"valor"`
	Vencimento    time.Time       `json:"vencimento" db:"vencimento"`
	Status        string          `json:"status" db:"status"`
	ImportBatchID *string         `json:"import_batch_id,omitempty" db:"import_batch_id"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}

// Funcionario is a payroll employee record.
type Funcionario struct {
	ID            int64           `json:"id" db:"id"`
	EmpresaID     int64           `json:"empresa_id" db:"empresa_id"`
	LojaID        int64           `json:"loja_id" db:"loja_id"`
	Nome          string          `json:"nome" db:"nome"`
	Cargo         string          `json:"cargo" db:"cargo"`
	Salario       decimal.Decimal `json:"salario" db:"salario"`
	DataAdmissao  *time.Time      `json:"data_admissao,omitempty" db:"data_admissao"`
	ImportBatchID *string         `json:"import_batch_id,omitempty" db:"import_batch_id"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}

// Meta is a monthly sales goal for one store.
type Meta struct {
	ID            int64           `json:"id" db:"id"`
	EmpresaID     int64           `json:"empresa_id" db:"empresa_id"`
	LojaID        int64           `json:"loja_id" db:"loja_id"`
	Mes           time.Time       `json:"mes" db:"mes"`
	ValorMeta     decimal.Decimal `json:"valor_meta" db:"valor_meta"`
	ImportBatchID *string         `json:"import_batch_id,omitempty" db:"import_batch_id"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}

// Auditoria is a store audit visit score.
type Auditoria struct {
	ID            int64           `json:"id" db:"id"`
	EmpresaID     int64           `json:"empresa_id" db:"empresa_id"`
	LojaID        int64           `json:"loja_id" db:"loja_id"`
	Data          time.Time       `json:"data" db:"data"`
	Nota          decimal.Decimal `json:"nota" db:"nota"`
	Observacoes   string          `json:"observacoes" db:"observacoes"`
	ImportBatchID *string         `json:"import_batch_id,omitempty" db:"import_batch_id"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}

// Manutencao is a store maintenance ticket.
type Manutencao struct {
	ID            int64     `json:"id" db:"id"`
	EmpresaID     int64     `json:"empresa_id" db:"empresa_id"`
	LojaID        int64     `json:"loja_id" db:"loja_id"`
	Titulo        string    `json:"titulo" db:"titulo"`
	Prioridade    string    `json:"prioridade" db:"prioridade"`
	Status        string    `json:"status" db:"status"`
	DataAbertura  time.Time `json:"data_abertura" db:"data_abertura"`
	ImportBatchID *string   `json:"import_batch_id,omitempty" db:"import_batch_id"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// Campanha is a sales campaign.
type Campanha struct {
	ID            int64           `json:"id" db:"id"`
	EmpresaID     int64           `json:"empresa_id" db:"empresa_id"`
	Nome          string          `json:"nome" db:"nome"`
	Inicio        time.Time       `json:"inicio" db:"inicio"`
	Fim           time.Time       `json:"fim" db:"fim"`
	DescontoPct   decimal.Decimal `json:"desconto_pct" db:"desconto_pct"`
	Status        string          `json:"status" db:"status"`
	ImportBatchID *string         `json:"import_batch_id,omitempty" db:"import_batch_id"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}

// ImportResult is what the user sees after a batch import: how many rows
// made it in out of how many the file contained. Failed rows are skipped,
// never reported individually.
type ImportResult struct {
	BatchID       string `json:"batch_id"`
	Entity        string `json:"entity"`
	ImportedCount int    `json:"imported_count"`
	TotalCount    int    `json:"total_count"`
}

// ClosingMonthlySummary aggregates one store's closings for a month.
type ClosingMonthlySummary struct {
	LojaID          int64           `json:"loja_id" db:"loja_id"`
	Mes             string          `json:"mes" db:"mes"`
	TotalEntradas   decimal.Decimal `json:"total_entradas" db:"total_entradas"`
	TotalSangrias   decimal.Decimal `json:"total_sangrias" db:"total_sangrias"`
	TotalSaidas     decimal.Decimal `json:"total_saidas" db:"total_saidas"`
	DiasFechados    int             `json:"dias_fechados" db:"dias_fechados"`
	DiasDivergentes int             `json:"dias_divergentes" db:"dias_divergentes"`
}

// NamedRef is minimal reference data used to resolve foreign keys by name
// during spreadsheet imports.
type NamedRef struct {
	ID   int64  `json:"id" db:"id"`
	Nome string `json:"nome" db:"nome"`
}
