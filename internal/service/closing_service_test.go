package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nexusretail/nexus-backend/internal/closing"
	"github.com/nexusretail/nexus-backend/internal/domain"
)

var testDay = time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

func TestClosingServiceSaveCreatesRecord(t *testing.T) {
	repo := newFakeClosingRepo()
	svc := NewClosingService(repo, newFakeSummaryCache())

	raw := map[string]any{
		"saldo_inicial": "100,00",
		"dinheiro":      "50,00",
		"pix":           "100,00",
		"cartao":        "30,00",
		"sangrias":      "20,00",
		"suprimentos":   "10,00",
		"saidas":        "15,00",
	}

	rec, err := svc.Save(context.Background(), storeActor(), 7, testDay, raw, closing.ActionSave)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if rec.Status != domain.StatusAberto {
		t.Errorf("status = %s, want ABERTO after save", rec.Status)
	}
	if rec.TotalEntradas.StringFixed(2) != "180.00" {
		t.Errorf("total_entradas = %s, want 180.00", rec.TotalEntradas)
	}
	if rec.SaldoFinal.StringFixed(2) != "255.00" {
		t.Errorf("saldo_final = %s, want 255.00", rec.SaldoFinal)
	}
	if repo.upserts != 1 {
		t.Errorf("upserts = %d, want 1", repo.upserts)
	}
}

func TestClosingServiceCloseTransitionsAndSnapshots(t *testing.T) {
	repo := newFakeClosingRepo()
	cache := newFakeSummaryCache()
	svc := NewClosingService(repo, cache)

	actor := storeActor()
	rec, err := svc.Save(context.Background(), actor, 7, testDay, map[string]any{"dinheiro": "80"}, closing.ActionClose)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if rec.Status != domain.StatusFechadoPendente {
		t.Errorf("status = %s, want FECHADO_PENDENTE_CONCILIACAO", rec.Status)
	}
	if rec.ResponsavelUsuarioID == nil || *rec.ResponsavelUsuarioID != actor.UserID {
		t.Errorf("responsavel_usuario_id not snapshotted")
	}
	if rec.ResponsavelNome == nil || *rec.ResponsavelNome != actor.Nome {
		t.Errorf("responsavel_nome not snapshotted")
	}
	if cache.invalidations != 1 {
		t.Errorf("cache invalidations = %d, want 1", cache.invalidations)
	}
}

func TestClosingServiceSaveLockedPersistsNothing(t *testing.T) {
	repo := newFakeClosingRepo()
	svc := NewClosingService(repo, newFakeSummaryCache())

	locked := closing.NewRecord(1, 7, testDay, time.Now())
	locked.Status = domain.StatusConciliadoOK
	repo.records[closingKey(1, 7, testDay)] = locked

	_, err := svc.Save(context.Background(), storeActor(), 7, testDay, map[string]any{"dinheiro": "999"}, closing.ActionSave)
	if !errors.Is(err, domain.ErrRecordLocked) {
		t.Fatalf("err = %v, want ErrRecordLocked", err)
	}
	if repo.upserts != 0 {
		t.Errorf("upserts = %d, want 0 for a locked record", repo.upserts)
	}
	if !locked.Dinheiro.IsZero() {
		t.Errorf("locked record was mutated: dinheiro = %s", locked.Dinheiro)
	}
}

func TestClosingServiceSaveForbiddenRole(t *testing.T) {
	svc := NewClosingService(newFakeClosingRepo(), newFakeSummaryCache())

	_, err := svc.Save(context.Background(), boardActor(), 7, testDay, map[string]any{}, closing.ActionSave)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestClosingServiceReopen(t *testing.T) {
	tests := []struct {
		name    string
		status  domain.ClosingStatus
		actor   domain.Actor
		wantErr error
	}{
		{"locked day reopens", domain.StatusConciliadoDivergente, financeActor(), nil},
		{"pending day reopens", domain.StatusFechadoPendente, financeActor(), nil},
		{"open day rejects", domain.StatusAberto, financeActor(), domain.ErrValidation},
		{"store role rejected", domain.StatusConciliadoOK, storeActor(), domain.ErrForbidden},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeClosingRepo()
			rec := closing.NewRecord(1, 7, testDay, time.Now())
			rec.Status = tc.status
			repo.records[closingKey(1, 7, testDay)] = rec

			got, err := NewClosingService(repo, newFakeSummaryCache()).Reopen(context.Background(), tc.actor, 7, testDay)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("err = %v, want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Reopen: %v", err)
			}
			if got.Status != domain.StatusReaberto {
				t.Errorf("status = %s, want REABERTO", got.Status)
			}
		})
	}
}

func TestClosingServiceReopenedDayAcceptsSave(t *testing.T) {
	repo := newFakeClosingRepo()
	svc := NewClosingService(repo, newFakeSummaryCache())

	rec := closing.NewRecord(1, 7, testDay, time.Now())
	rec.Status = domain.StatusReaberto
	repo.records[closingKey(1, 7, testDay)] = rec

	got, err := svc.Save(context.Background(), storeActor(), 7, testDay, map[string]any{"dinheiro": "42"}, closing.ActionSave)
	if err != nil {
		t.Fatalf("Save on REABERTO: %v", err)
	}
	if got.Status != domain.StatusReaberto {
		t.Errorf("status = %s, want REABERTO preserved by save", got.Status)
	}
}

func TestClosingServiceDeleteIsAdminOnly(t *testing.T) {
	repo := newFakeClosingRepo()
	rec := closing.NewRecord(1, 7, testDay, time.Now())
	repo.records[closingKey(1, 7, testDay)] = rec
	svc := NewClosingService(repo, newFakeSummaryCache())

	err := svc.Delete(context.Background(), financeActor(), 7, testDay)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden for non-admin", err)
	}

	admin := domain.Actor{UserID: "u-0", Nome: "Root", EmpresaID: 1, Roles: []domain.Role{domain.RoleAdmin}}
	if err := svc.Delete(context.Background(), admin, 7, testDay); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(context.Background(), admin, 7, testDay); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("deleted closing still readable, err = %v", err)
	}
}

func TestClosingServiceMonthlySummaryCacheFirst(t *testing.T) {
	repo := newFakeClosingRepo()
	cache := newFakeSummaryCache()
	svc := NewClosingService(repo, cache)

	first, err := svc.MonthlySummary(context.Background(), financeActor(), 7, 2025, time.March)
	if err != nil {
		t.Fatalf("MonthlySummary: %v", err)
	}
	if first.Mes != "2025-03" {
		t.Errorf("mes = %s, want 2025-03", first.Mes)
	}
	if len(cache.stored) != 1 {
		t.Errorf("cache entries = %d, want 1 after miss", len(cache.stored))
	}

	second, err := svc.MonthlySummary(context.Background(), financeActor(), 7, 2025, time.March)
	if err != nil {
		t.Fatalf("MonthlySummary (cached): %v", err)
	}
	if second != first {
		t.Errorf("second call did not come from cache")
	}
}
