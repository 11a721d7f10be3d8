package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/nexusretail/nexus-backend/internal/domain"
	"github.com/nexusretail/nexus-backend/internal/importer"
	"github.com/nexusretail/nexus-backend/internal/parse"
	"github.com/nexusretail/nexus-backend/internal/storage"
)

func newImportService(finance *fakeFinanceRepo, archive storage.ObjectStorage) *ImportService {
	lookups := &fakeLookupRepo{lojas: []domain.NamedRef{
		{ID: 7, Nome: "Loja Centro"},
		{ID: 8, Nome: "Loja Shopping Norte"},
	}}
	return NewImportService(finance, lookups, archive, parse.LocaleBR)
}

func TestImportFilePersistsNormalizedRows(t *testing.T) {
	finance := &fakeFinanceRepo{}
	svc := newImportService(finance, storage.Noop{})

	csv := "Fornecedor;Valor;Vencimento;Loja\n" +
		"Distribuidora Alfa;R$ 1.200,00;15/03/2025;Centro\n" +
		"Beta Limpeza;350,50;20/03/2025;Shopping Norte\n"

	res, err := svc.ImportFile(context.Background(), financeActor(), importer.EntityContasPagar, "contas.csv", strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if res.ImportedCount != 2 || res.TotalCount != 2 {
		t.Errorf("imported %d/%d, want 2/2", res.ImportedCount, res.TotalCount)
	}
	if res.BatchID == "" {
		t.Errorf("batch id is empty")
	}
	if len(finance.inserted) != 2 {
		t.Fatalf("inserted = %d records, want 2", len(finance.inserted))
	}
	for _, id := range finance.batchIDs {
		if id != res.BatchID {
			t.Errorf("record batch id %s differs from result %s", id, res.BatchID)
		}
	}
	first, ok := finance.inserted[0].(domain.ContaPagar)
	if !ok {
		t.Fatalf("inserted[0] is %T, want ContaPagar", finance.inserted[0])
	}
	if first.Valor.StringFixed(2) != "1200.00" {
		t.Errorf("valor = %s, want 1200.00", first.Valor)
	}
	if first.LojaID == nil || *first.LojaID != 7 {
		t.Errorf("loja not resolved to Centro")
	}
}

func TestImportFileFailedInsertDoesNotStopBatch(t *testing.T) {
	finance := &fakeFinanceRepo{failOn: 2}
	svc := newImportService(finance, storage.Noop{})

	csv := "Fornecedor;Valor;Vencimento\n" +
		"A;10,00;01/03/2025\n" +
		"B;20,00;02/03/2025\n" +
		"C;30,00;03/03/2025\n"

	res, err := svc.ImportFile(context.Background(), financeActor(), importer.EntityContasPagar, "contas.csv", strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if res.ImportedCount != 2 {
		t.Errorf("imported = %d, want 2 when one insert fails", res.ImportedCount)
	}
	if res.TotalCount != 3 {
		t.Errorf("total = %d, want 3", res.TotalCount)
	}
}

func TestImportFileCountsSkippedRows(t *testing.T) {
	finance := &fakeFinanceRepo{}
	svc := newImportService(finance, storage.Noop{})

	// Second row has no supplier, so normalization drops it.
	csv := "Fornecedor;Valor;Vencimento\n" +
		"A;10,00;01/03/2025\n" +
		";20,00;02/03/2025\n"

	res, err := svc.ImportFile(context.Background(), financeActor(), importer.EntityContasPagar, "contas.csv", strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if res.ImportedCount != 1 || res.TotalCount != 2 {
		t.Errorf("imported %d/%d, want 1/2", res.ImportedCount, res.TotalCount)
	}
}

func TestImportFileUnknownEntity(t *testing.T) {
	svc := newImportService(&fakeFinanceRepo{}, storage.Noop{})

	_, err := svc.ImportFile(context.Background(), financeActor(), "estoque", "x.csv", strings.NewReader("a\n1\n"))
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation for unknown entity", err)
	}
}

func TestImportFileEmptySpreadsheet(t *testing.T) {
	svc := newImportService(&fakeFinanceRepo{}, storage.Noop{})

	_, err := svc.ImportFile(context.Background(), financeActor(), importer.EntityContasPagar, "x.csv", strings.NewReader("Fornecedor;Valor;Vencimento\n"))
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation for header-only file", err)
	}
}

func TestImportFileRoleGate(t *testing.T) {
	svc := newImportService(&fakeFinanceRepo{}, storage.Noop{})

	_, err := svc.ImportFile(context.Background(), storeActor(), importer.EntityContasPagar, "x.csv", strings.NewReader("a\n1\n"))
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden for store role", err)
	}
}

func TestImportFileArchivesUpload(t *testing.T) {
	archive := &fakeArchive{}
	svc := newImportService(&fakeFinanceRepo{}, archive)

	csv := "Fornecedor;Valor;Vencimento\nA;10,00;01/03/2025\n"
	if _, err := svc.ImportFile(context.Background(), financeActor(), importer.EntityContasPagar, "contas.csv", strings.NewReader(csv)); err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if len(archive.keys) != 1 || !strings.Contains(archive.keys[0], importer.EntityContasPagar) {
		t.Errorf("archive keys = %v, want one key containing the entity", archive.keys)
	}
}
