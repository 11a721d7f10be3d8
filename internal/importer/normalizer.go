package importer

import (
	"fmt"
	"strings"

	"github.com/nexusretail/nexus-backend/internal/domain"
	"github.com/nexusretail/nexus-backend/internal/parse"
)

// Kind selects the typed parser applied to an extracted cell.
type Kind int

const (
	KindText Kind = iota
	KindCurrency
	KindDate
	KindStatus
)

// Field describes one column an entity mapper wants: the canonical name,
// the raw header aliases tried in order, and how to type the value.
type Field struct {
	Name     string
	Aliases  []string
	Required bool
	Kind     Kind

	// Allowed/Default apply to KindStatus fields.
	Allowed []string
	Default string

	// Locale overrides the batch date locale for KindDate fields. The
	// accounts-payable import keeps the legacy first-component guess here
	// while everything else reads day-first.
	Locale *parse.DateLocale
}

// Lookups is the reference data used to resolve foreign keys by name.
type Lookups struct {
	Lojas []domain.NamedRef
}

// ResolveLoja matches a store name cell against known stores. Matching is
// case-insensitive and tolerant of partial entry: the cell may contain the
// store name or be contained by it.
func (l Lookups) ResolveLoja(name string) (int64, bool) {
	return resolveRef(name, l.Lojas)
}

func resolveRef(name string, refs []domain.NamedRef) (int64, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return 0, false
	}
	for _, ref := range refs {
		known := strings.ToLower(strings.TrimSpace(ref.Nome))
		if known == "" {
			continue
		}
		if strings.Contains(known, needle) || strings.Contains(needle, known) {
			return ref.ID, true
		}
	}
	return 0, false
}

// Mapper describes how one entity type is built from a row. Build gets the
// typed values keyed by Field.Name and returns the record, or false to
// skip the row (e.g. an unresolvable store name).
type Mapper struct {
	Entity string
	Fields []Field
	Build  func(vals map[string]any, lk Lookups) (any, bool)
}

// BatchResult is the outcome of normalizing one file.
type BatchResult struct {
	Records    []any
	TotalCount int
}

// NormalizeBatch processes rows in order, independently. A row missing a
// required field or failing its Build is skipped, never aborting the
// batch; each input row contributes at most one record.
func NormalizeBatch(rows []Row, m Mapper, lk Lookups, locale parse.DateLocale) BatchResult {
	res := BatchResult{TotalCount: len(rows)}

	for _, row := range rows {
		vals, ok := extract(row, m.Fields, locale)
		if !ok {
			continue
		}
		rec, ok := m.Build(vals, lk)
		if !ok {
			continue
		}
		res.Records = append(res.Records, rec)
	}

	return res
}

// extract pulls each field out of the raw row. Aliases are tried in order
// and the first non-empty cell wins. Returns false when a required field
// is missing or untypeable.
func extract(row Row, fields []Field, locale parse.DateLocale) (map[string]any, bool) {
	vals := make(map[string]any, len(fields))

	for _, f := range fields {
		raw, found := firstNonEmpty(row, f.Aliases)
		if !found {
			if f.Required {
				return nil, false
			}
			continue
		}

		switch f.Kind {
		case KindCurrency:
			vals[f.Name] = parse.Currency(raw)
		case KindDate:
			loc := locale
			if f.Locale != nil {
				loc = *f.Locale
			}
			t, ok := parse.Date(raw, loc)
			if !ok {
				if f.Required {
					return nil, false
				}
				continue
			}
			vals[f.Name] = t
		case KindStatus:
			vals[f.Name] = parse.Status(fmt.Sprint(raw), f.Allowed, f.Default)
		default:
			vals[f.Name] = strings.TrimSpace(fmt.Sprint(raw))
		}
	}

	return vals, true
}

func firstNonEmpty(row Row, aliases []string) (any, bool) {
	for _, alias := range aliases {
		v, ok := row[alias]
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			continue
		}
		return v, true
	}
	return nil, false
}
