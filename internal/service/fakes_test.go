package service

import (
	"context"
	"fmt"
	"time"

	"github.com/nexusretail/nexus-backend/internal/domain"
)

func closingKey(empresaID, lojaID int64, data time.Time) string {
	return fmt.Sprintf("%d:%d:%s", empresaID, lojaID, data.Format("2006-01-02"))
}

type fakeClosingRepo struct {
	records map[string]*domain.ClosingRecord
	upserts int
}

func newFakeClosingRepo() *fakeClosingRepo {
	return &fakeClosingRepo{records: make(map[string]*domain.ClosingRecord)}
}

func (r *fakeClosingRepo) GetByLojaAndDate(ctx context.Context, empresaID, lojaID int64, data time.Time) (*domain.ClosingRecord, error) {
	rec, ok := r.records[closingKey(empresaID, lojaID, data)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return rec, nil
}

func (r *fakeClosingRepo) Upsert(ctx context.Context, rec *domain.ClosingRecord) error {
	r.upserts++
	r.records[closingKey(rec.EmpresaID, rec.LojaID, rec.Data)] = rec
	return nil
}

func (r *fakeClosingRepo) SetStatus(ctx context.Context, empresaID, lojaID int64, data time.Time, status domain.ClosingStatus) error {
	rec, ok := r.records[closingKey(empresaID, lojaID, data)]
	if !ok {
		return domain.ErrNotFound
	}
	rec.Status = status
	return nil
}

func (r *fakeClosingRepo) SoftDelete(ctx context.Context, empresaID, lojaID int64, data time.Time) error {
	key := closingKey(empresaID, lojaID, data)
	if _, ok := r.records[key]; !ok {
		return domain.ErrNotFound
	}
	delete(r.records, key)
	return nil
}

func (r *fakeClosingRepo) ListByLojaAndMonth(ctx context.Context, empresaID, lojaID int64, year int, month time.Month) ([]*domain.ClosingRecord, error) {
	var out []*domain.ClosingRecord
	for _, rec := range r.records {
		if rec.EmpresaID == empresaID && rec.LojaID == lojaID && rec.Data.Year() == year && rec.Data.Month() == month {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeClosingRepo) MonthlySummary(ctx context.Context, empresaID, lojaID int64, year int, month time.Month) (*domain.ClosingMonthlySummary, error) {
	return &domain.ClosingMonthlySummary{
		LojaID: lojaID,
		Mes:    time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01"),
	}, nil
}

type fakeSummaryCache struct {
	stored        map[string]*domain.ClosingMonthlySummary
	invalidations int
}

func newFakeSummaryCache() *fakeSummaryCache {
	return &fakeSummaryCache{stored: make(map[string]*domain.ClosingMonthlySummary)}
}

func (c *fakeSummaryCache) GetSummary(ctx context.Context, empresaID, lojaID int64, mes string) (*domain.ClosingMonthlySummary, bool, error) {
	s, ok := c.stored[fmt.Sprintf("%d:%d:%s", empresaID, lojaID, mes)]
	return s, ok, nil
}

func (c *fakeSummaryCache) SetSummary(ctx context.Context, empresaID, lojaID int64, mes string, summary *domain.ClosingMonthlySummary) error {
	c.stored[fmt.Sprintf("%d:%d:%s", empresaID, lojaID, mes)] = summary
	return nil
}

func (c *fakeSummaryCache) InvalidateAll(ctx context.Context) error {
	c.invalidations++
	c.stored = make(map[string]*domain.ClosingMonthlySummary)
	return nil
}

type fakeReconRepo struct {
	records []*domain.ReconciliationRecord
}

func (r *fakeReconRepo) Insert(ctx context.Context, rec *domain.ReconciliationRecord) error {
	r.records = append(r.records, rec)
	return nil
}

func (r *fakeReconRepo) ListByLojaAndDate(ctx context.Context, empresaID, lojaID int64, data time.Time) ([]*domain.ReconciliationRecord, error) {
	var out []*domain.ReconciliationRecord
	for i := len(r.records) - 1; i >= 0; i-- {
		rec := r.records[i]
		if rec.EmpresaID == empresaID && rec.LojaID == lojaID && rec.Data.Equal(data) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeReconRepo) LatestByLojaAndDate(ctx context.Context, empresaID, lojaID int64, data time.Time) (*domain.ReconciliationRecord, error) {
	list, _ := r.ListByLojaAndDate(ctx, empresaID, lojaID, data)
	if len(list) == 0 {
		return nil, domain.ErrNotFound
	}
	return list[0], nil
}

type fakeFinanceRepo struct {
	inserted []any
	batchIDs []string
	failOn   int // 1-based call index that fails; 0 never fails
	calls    int
}

func (r *fakeFinanceRepo) insert(batchID string, rec any) error {
	r.calls++
	if r.failOn != 0 && r.calls == r.failOn {
		return fmt.Errorf("simulated insert failure")
	}
	r.inserted = append(r.inserted, rec)
	r.batchIDs = append(r.batchIDs, batchID)
	return nil
}

func (r *fakeFinanceRepo) InsertContaPagar(ctx context.Context, batchID string, rec domain.ContaPagar) error {
	return r.insert(batchID, rec)
}

func (r *fakeFinanceRepo) InsertContaReceber(ctx context.Context, batchID string, rec domain.ContaReceber) error {
	return r.insert(batchID, rec)
}

func (r *fakeFinanceRepo) InsertFuncionario(ctx context.Context, batchID string, rec domain.Funcionario) error {
	return r.insert(batchID, rec)
}

func (r *fakeFinanceRepo) InsertMeta(ctx context.Context, batchID string, rec domain.Meta) error {
	return r.insert(batchID, rec)
}

func (r *fakeFinanceRepo) InsertAuditoria(ctx context.Context, batchID string, rec domain.Auditoria) error {
	return r.insert(batchID, rec)
}

func (r *fakeFinanceRepo) InsertManutencao(ctx context.Context, batchID string, rec domain.Manutencao) error {
	return r.insert(batchID, rec)
}

func (r *fakeFinanceRepo) InsertCampanha(ctx context.Context, batchID string, rec domain.Campanha) error {
	return r.insert(batchID, rec)
}

type fakeLookupRepo struct {
	lojas []domain.NamedRef
}

func (r *fakeLookupRepo) LojasByEmpresa(ctx context.Context, empresaID int64) ([]domain.NamedRef, error) {
	return r.lojas, nil
}

type fakeArchive struct {
	keys []string
}

func (a *fakeArchive) UploadObject(ctx context.Context, key string, data []byte) error {
	a.keys = append(a.keys, key)
	return nil
}

func financeActor() domain.Actor {
	return domain.Actor{UserID: "u-1", Nome: "Ana", EmpresaID: 1, Roles: []domain.Role{domain.RoleFinanceiro}}
}

func storeActor() domain.Actor {
	return domain.Actor{UserID: "u-2", Nome: "Bruno", EmpresaID: 1, Roles: []domain.Role{domain.RoleLoja}}
}

func boardActor() domain.Actor {
	return domain.Actor{UserID: "u-3", Nome: "Clara", EmpresaID: 1, Roles: []domain.Role{domain.RoleDiretoria}}
}
