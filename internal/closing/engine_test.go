package closing

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nexusretail/nexus-backend/internal/domain"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func sampleInput() Input {
	return Input{
		SaldoInicial: dec("20"),
		Dinheiro:     dec("100"),
		Pix:          dec("50"),
		Cartao:       dec("30"),
		Sangrias:     dec("10"),
		Suprimentos:  dec("0"),
		Saidas:       dec("5"),
	}
}

func testActor() domain.Actor {
	return domain.Actor{
		UserID:    "user-1",
		Nome:      "Maria Souza",
		EmpresaID: 1,
		Roles:     []domain.Role{domain.RoleLoja},
	}
}

func TestComputeTotals(t *testing.T) {
	got := ComputeTotals(sampleInput())

	if !got.TotalEntradas.Equal(dec("180")) {
		t.Errorf("total_entradas = %s, want 180", got.TotalEntradas)
	}
	if !got.SaldoFinal.Equal(dec("185")) {
		t.Errorf("saldo_final = %s, want 185", got.SaldoFinal)
	}
}

func TestComputeTotals_AllZero(t *testing.T) {
	got := ComputeTotals(Input{})
	if !got.TotalEntradas.IsZero() || !got.SaldoFinal.IsZero() {
		t.Errorf("zero input should derive zero totals, got %+v", got)
	}
}

func TestInputFromRaw_NeverBlocksDataEntry(t *testing.T) {
	in := InputFromRaw(map[string]any{
		"dinheiro":      "R$ 1.234,56",
		"pix":           "",
		"cartao":        "abc",
		"saldo_inicial": 20,
	})

	if !in.Dinheiro.Equal(dec("1234.56")) {
		t.Errorf("dinheiro = %s", in.Dinheiro)
	}
	if !in.Pix.IsZero() || !in.Cartao.IsZero() {
		t.Error("blank and invalid cells must parse to zero, not fail")
	}
	if !in.SaldoInicial.Equal(dec("20")) {
		t.Errorf("saldo_inicial = %s", in.SaldoInicial)
	}
	if in.ValorCaixaDeclarado != nil {
		t.Error("absent declared value should stay nil")
	}
}

func TestApply_SaveKeepsStatus(t *testing.T) {
	now := time.Now()
	rec := NewRecord(1, 10, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), now)

	if err := Apply(rec, sampleInput(), ActionSave, testActor(), now); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if rec.Status != domain.StatusAberto {
		t.Errorf("status = %s, want ABERTO", rec.Status)
	}
	if rec.ResponsavelNome != nil {
		t.Error("save must not snapshot the responsible user")
	}
}

func TestApply_CloseTransitionsAndSnapshotsActor(t *testing.T) {
	now := time.Now()
	rec := NewRecord(1, 10, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), now)

	if err := Apply(rec, sampleInput(), ActionClose, testActor(), now); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if rec.Status != domain.StatusFechadoPendente {
		t.Errorf("status = %s, want FECHADO_PENDENTE_CONCILIACAO", rec.Status)
	}
	if rec.ResponsavelUsuarioID == nil || *rec.ResponsavelUsuarioID != "user-1" {
		t.Error("responsavel_usuario_id not snapshotted")
	}
	if rec.ResponsavelNome == nil || *rec.ResponsavelNome != "Maria Souza" {
		t.Error("responsavel_nome not snapshotted")
	}
	if !rec.TotalEntradas.Equal(dec("180")) || !rec.SaldoFinal.Equal(dec("185")) {
		t.Errorf("totals not recomputed on close: %s / %s", rec.TotalEntradas, rec.SaldoFinal)
	}
}

func TestApply_LockedStatusesRejectAnyAction(t *testing.T) {
	locked := []domain.ClosingStatus{
		domain.StatusFechadoPendente,
		domain.StatusConciliadoOK,
		domain.StatusConciliadoDivergente,
	}
	for _, status := range locked {
		for _, action := range []Action{ActionSave, ActionClose} {
			rec := NewRecord(1, 10, time.Now(), time.Now())
			rec.Status = status
			rec.Dinheiro = dec("999")

			err := Apply(rec, sampleInput(), action, testActor(), time.Now())
			if !errors.Is(err, domain.ErrRecordLocked) {
				t.Fatalf("status %s action %s: err = %v, want ErrRecordLocked", status, action, err)
			}
			if !rec.Dinheiro.Equal(dec("999")) {
				t.Errorf("status %s: locked record was mutated", status)
			}
		}
	}
}

func TestApply_ReabertoBehavesLikeAberto(t *testing.T) {
	rec := NewRecord(1, 10, time.Now(), time.Now())
	rec.Status = domain.StatusReaberto

	if err := Apply(rec, sampleInput(), ActionClose, testActor(), time.Now()); err != nil {
		t.Fatalf("close on REABERTO failed: %v", err)
	}
	if rec.Status != domain.StatusFechadoPendente {
		t.Errorf("status = %s, want FECHADO_PENDENTE_CONCILIACAO", rec.Status)
	}
}

func TestApply_NegativeAmountIsValidationError(t *testing.T) {
	rec := NewRecord(1, 10, time.Now(), time.Now())
	in := sampleInput()
	in.Sangrias = dec("-1")

	err := Apply(rec, in, ActionSave, testActor(), time.Now())
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestReconcile_ExactMatchIsOK(t *testing.T) {
	data := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	rec := NewRecord(1, 10, data, time.Now())
	if err := Apply(rec, sampleInput(), ActionClose, testActor(), time.Now()); err != nil {
		t.Fatal(err)
	}

	rows := []map[string]any{
		{"Valor": "R$ 100,00"},
		{"Valor": "50"},
		{"Valor": 30},
	}
	got := Reconcile(1, 10, data, rec, rows, "Valor", "pdv.csv", time.Now())

	if !got.ValorPDV.Equal(dec("180")) {
		t.Errorf("valor_pdv = %s, want 180", got.ValorPDV)
	}
	if !got.ValorCaixa.Equal(dec("180")) {
		t.Errorf("valor_caixa = %s, want 180", got.ValorCaixa)
	}
	if !got.Diferenca.IsZero() {
		t.Errorf("diferenca = %s, want 0", got.Diferenca)
	}
	if got.Status != domain.ReconciliationOK {
		t.Errorf("status = %s, want OK", got.Status)
	}
	if got.ID == "" {
		t.Error("record must carry a fresh id")
	}
}

func TestReconcile_SignedDifference(t *testing.T) {
	data := time.Now()
	closingRec := NewRecord(1, 10, data, time.Now())
	closingRec.TotalEntradas = dec("200")

	got := Reconcile(1, 10, data, closingRec, []map[string]any{{"v": "150"}}, "v", "pdv.csv", time.Now())
	if !got.Diferenca.Equal(dec("-50")) {
		t.Errorf("diferenca = %s, want -50", got.Diferenca)
	}
	if got.Status != domain.ReconciliationDivergencia {
		t.Errorf("status = %s, want DIVERGENCIA", got.Status)
	}

	got = Reconcile(1, 10, data, closingRec, []map[string]any{{"v": "250"}}, "v", "pdv.csv", time.Now())
	if !got.Diferenca.Equal(dec("50")) {
		t.Errorf("diferenca = %s, want 50", got.Diferenca)
	}
}

func TestReconcile_MissingClosingComparesAgainstZero(t *testing.T) {
	got := Reconcile(1, 10, time.Now(), nil, []map[string]any{{"v": "80"}}, "v", "pdv.csv", time.Now())

	if !got.ValorCaixa.IsZero() {
		t.Errorf("valor_caixa = %s, want 0", got.ValorCaixa)
	}
	if !got.Diferenca.Equal(dec("80")) {
		t.Errorf("diferenca = %s, want 80", got.Diferenca)
	}
	if got.Status != domain.ReconciliationDivergencia {
		t.Errorf("status = %s, want DIVERGENCIA", got.Status)
	}
}

func TestReconcile_UnparseableCellsContributeZero(t *testing.T) {
	rows := []map[string]any{
		{"v": "100"},
		{"v": "n/a"},
		{"outra": "50"},
	}
	got := Reconcile(1, 10, time.Now(), nil, rows, "v", "pdv.csv", time.Now())
	if !got.ValorPDV.Equal(dec("100")) {
		t.Errorf("valor_pdv = %s, want 100", got.ValorPDV)
	}
}

func TestScenario_CloseThenSaveIsLocked(t *testing.T) {
	now := time.Now()
	rec := NewRecord(1, 10, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), now)

	if err := Apply(rec, sampleInput(), ActionClose, testActor(), now); err != nil {
		t.Fatal(err)
	}

	err := Apply(rec, sampleInput(), ActionSave, testActor(), now)
	if !errors.Is(err, domain.ErrRecordLocked) {
		t.Fatalf("save after close: err = %v, want ErrRecordLocked", err)
	}
}
