package domain

import "strings"

// ClosingStatus is the lifecycle state of a ClosingRecord.
type ClosingStatus string

const (
	StatusAberto               ClosingStatus = "ABERTO"
	StatusFechadoPendente      ClosingStatus = "FECHADO_PENDENTE_CONCILIACAO"
	StatusConciliadoOK         ClosingStatus = "CONCILIADO_OK"
	StatusConciliadoDivergente ClosingStatus = "CONCILIADO_DIVERGENCIA"
	StatusReaberto             ClosingStatus = "REABERTO"
)

var closingStatuses = map[string]ClosingStatus{
	"ABERTO":                       StatusAberto,
	"FECHADO_PENDENTE_CONCILIACAO": StatusFechadoPendente,
	"CONCILIADO_OK":                StatusConciliadoOK,
	"CONCILIADO_DIVERGENCIA":       StatusConciliadoDivergente,
	"REABERTO":                     StatusReaberto,
}

// ParseClosingStatus returns the status for a given label (case-insensitive).
func ParseClosingStatus(label string) (ClosingStatus, bool) {
	s, ok := closingStatuses[strings.ToUpper(strings.TrimSpace(label))]
	return s, ok
}

// Editable reports whether a record in this status still accepts saves.
// Only open and reopened days are editable; everything after CLOSE is locked.
func (s ClosingStatus) Editable() bool {
	return s == StatusAberto || s == StatusReaberto
}

// ReconciliationStatus is the outcome of comparing the PDV export against
// the closing total.
type ReconciliationStatus string

const (
	ReconciliationOK          ReconciliationStatus = "OK"
	ReconciliationDivergencia ReconciliationStatus = "DIVERGENCIA"
)
