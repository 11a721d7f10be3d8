// Package closing implements the daily cash-closing lifecycle: derived
// totals, the save/close state machine and PDV reconciliation.
package closing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nexusretail/nexus-backend/internal/domain"
	"github.com/nexusretail/nexus-backend/internal/parse"
)

// Action is what the store user pressed: keep editing or close the day.
type Action string

const (
	ActionSave  Action = "SAVE"
	ActionClose Action = "CLOSE"
)

// ParseAction maps a request label to an Action.
func ParseAction(label string) (Action, bool) {
	switch Action(label) {
	case ActionSave:
		return ActionSave, true
	case ActionClose:
		return ActionClose, true
	}
	return "", false
}

// Input carries the seven monetary fields of a closing form.
type Input struct {
	SaldoInicial decimal.Decimal
	Dinheiro     decimal.Decimal
	Pix          decimal.Decimal
	Cartao       decimal.Decimal
	Sangrias     decimal.Decimal
	Suprimentos  decimal.Decimal
	Saidas       decimal.Decimal

	ValorCaixaDeclarado *decimal.Decimal
}

// InputFromRaw builds an Input from loosely-typed form values. Blank or
// unparseable cells become zero so a half-filled form can always be saved.
func InputFromRaw(raw map[string]any) Input {
	in := Input{
		SaldoInicial: parse.Currency(raw["saldo_inicial"]),
		Dinheiro:     parse.Currency(raw["dinheiro"]),
		Pix:          parse.Currency(raw["pix"]),
		Cartao:       parse.Currency(raw["cartao"]),
		Sangrias:     parse.Currency(raw["sangrias"]),
		Suprimentos:  parse.Currency(raw["suprimentos"]),
		Saidas:       parse.Currency(raw["saidas"]),
	}
	if v, ok := raw["valor_caixa_declarado"]; ok && v != nil && v != "" {
		d := parse.Currency(v)
		in.ValorCaixaDeclarado = &d
	}
	return in
}

// Validate rejects negative amounts. Zero is always acceptable.
func (in Input) Validate() error {
	fields := map[string]decimal.Decimal{
		"saldo_inicial": in.SaldoInicial,
		"dinheiro":      in.Dinheiro,
		"pix":           in.Pix,
		"cartao":        in.Cartao,
		"sangrias":      in.Sangrias,
		"suprimentos":   in.Suprimentos,
		"saidas":        in.Saidas,
	}
	for name, v := range fields {
		if v.IsNegative() {
			return fmt.Errorf("%w: %s must not be negative", domain.ErrValidation, name)
		}
	}
	return nil
}

// Totals are the derived closing figures.
type Totals struct {
	TotalEntradas decimal.Decimal `json:"total_entradas"`
	SaldoFinal    decimal.Decimal `json:"saldo_final"`
}

// ComputeTotals derives the closing figures:
//
//	total_entradas = dinheiro + pix + cartao
//	saldo_final    = saldo_inicial + total_entradas + suprimentos - sangrias - saidas
func ComputeTotals(in Input) Totals {
	entradas := in.Dinheiro.Add(in.Pix).Add(in.Cartao)
	final := in.SaldoInicial.
		Add(entradas).
		Add(in.Suprimentos).
		Sub(in.Sangrias).
		Sub(in.Saidas)
	return Totals{TotalEntradas: entradas, SaldoFinal: final}
}

// NewRecord creates the implicit first record of the day, in ABERTO.
func NewRecord(empresaID, lojaID int64, data time.Time, now time.Time) *domain.ClosingRecord {
	return &domain.ClosingRecord{
		EmpresaID: empresaID,
		LojaID:    lojaID,
		Data:      data,
		Status:    domain.StatusAberto,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Apply runs one save or close against a record. The lock check comes
// before anything else: a record outside ABERTO/REABERTO is never touched.
func Apply(rec *domain.ClosingRecord, in Input, action Action, actor domain.Actor, now time.Time) error {
	if !rec.Status.Editable() {
		return fmt.Errorf("%w: status is %s", domain.ErrRecordLocked, rec.Status)
	}
	if err := in.Validate(); err != nil {
		return err
	}

	totals := ComputeTotals(in)

	rec.SaldoInicial = in.SaldoInicial
	rec.Dinheiro = in.Dinheiro
	rec.Pix = in.Pix
	rec.Cartao = in.Cartao
	rec.Sangrias = in.Sangrias
	rec.Suprimentos = in.Suprimentos
	rec.Saidas = in.Saidas
	rec.ValorCaixaDeclarado = in.ValorCaixaDeclarado
	rec.TotalEntradas = totals.TotalEntradas
	rec.SaldoFinal = totals.SaldoFinal
	rec.UpdatedAt = now

	if action == ActionClose {
		rec.Status = domain.StatusFechadoPendente
		userID := actor.UserID
		nome := actor.Nome
		rec.ResponsavelUsuarioID = &userID
		rec.ResponsavelNome = &nome
	}

	return nil
}

// Reconcile sums the chosen value column of the PDV rows and compares it
// against the closing's total_entradas. A nil closing means the store
// never closed its cash that day; the comparison still runs against zero,
// which records the divergence instead of hiding it. Each call produces a
// fresh record: reconciliation history is append-only.
func Reconcile(empresaID, lojaID int64, data time.Time, closing *domain.ClosingRecord, rows []map[string]any, valueColumn, sourceFile string, now time.Time) domain.ReconciliationRecord {
	valorPDV := decimal.Zero
	for _, row := range rows {
		valorPDV = valorPDV.Add(parse.Currency(row[valueColumn]))
	}

	valorCaixa := decimal.Zero
	if closing != nil {
		valorCaixa = closing.TotalEntradas
	}

	diferenca := valorPDV.Sub(valorCaixa)
	status := domain.ReconciliationDivergencia
	if diferenca.IsZero() {
		status = domain.ReconciliationOK
	}

	return domain.ReconciliationRecord{
		ID:         uuid.NewString(),
		EmpresaID:  empresaID,
		LojaID:     lojaID,
		Data:       data,
		ValorPDV:   valorPDV,
		ValorCaixa: valorCaixa,
		Diferenca:  diferenca,
		Status:     status,
		SourceFile: sourceFile,
		CreatedAt:  now,
	}
}
