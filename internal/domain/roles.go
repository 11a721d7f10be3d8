package domain

import "strings"

// Role is the coarse access level carried by the identity provider.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleDiretoria  Role = "DIRETORIA"
	RoleFinanceiro Role = "FINANCEIRO"
	RoleLoja       Role = "LOJA"
)

// ParseRole returns the role for a given label (case-insensitive).
func ParseRole(label string) (Role, bool) {
	switch Role(strings.ToUpper(strings.TrimSpace(label))) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleDiretoria:
		return RoleDiretoria, true
	case RoleFinanceiro:
		return RoleFinanceiro, true
	case RoleLoja:
		return RoleLoja, true
	}
	return "", false
}

// Actor is the acting user, passed explicitly into every operation instead
// of living in ambient session state.
type Actor struct {
	UserID    string `json:"user_id"`
	Nome      string `json:"nome"`
	EmpresaID int64  `json:"empresa_id"`
	Roles     []Role `json:"roles"`
}

// HasRole reports whether the actor carries any of the given roles.
func (a Actor) HasRole(roles ...Role) bool {
	for _, want := range roles {
		for _, have := range a.Roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

// CanCloseCashRegister reports whether the actor may save or close a
// store's daily closing.
func (a Actor) CanCloseCashRegister() bool {
	return a.HasRole(RoleLoja, RoleFinanceiro, RoleAdmin)
}

// CanReconcile reports whether the actor may run the financial workflows:
// PDV reconciliation, spreadsheet imports and reopening closed days.
func (a Actor) CanReconcile() bool {
	return a.HasRole(RoleFinanceiro, RoleAdmin)
}

// CanViewReports reports whether the actor may request executive reports.
func (a Actor) CanViewReports() bool {
	return a.HasRole(RoleDiretoria, RoleFinanceiro, RoleAdmin)
}
