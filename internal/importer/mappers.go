package importer

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nexusretail/nexus-backend/internal/domain"
	"github.com/nexusretail/nexus-backend/internal/parse"
)

// Entity names accepted by the import endpoint.
const (
	EntityContasPagar   = "contas-pagar"
	EntityContasReceber = "contas-receber"
	EntityFuncionarios  = "funcionarios"
	EntityMetas         = "metas"
	EntityAuditorias    = "auditorias"
	EntityManutencoes   = "manutencoes"
	EntityCampanhas     = "campanhas"
)

// MapperFor returns the mapper for an entity label.
func MapperFor(entity string, empresaID int64) (Mapper, bool) {
	switch entity {
	case EntityContasPagar:
		return contasPagarMapper(empresaID), true
	case EntityContasReceber:
		return contasReceberMapper(empresaID), true
	case EntityFuncionarios:
		return funcionariosMapper(empresaID), true
	case EntityMetas:
		return metasMapper(empresaID), true
	case EntityAuditorias:
		return auditoriasMapper(empresaID), true
	case EntityManutencoes:
		return manutencoesMapper(empresaID), true
	case EntityCampanhas:
		return campanhasMapper(empresaID), true
	}
	return Mapper{}, false
}

// heuristicLocale keeps the legacy payable-import date guess alive. Every
// other entity reads dates with the batch locale.
var heuristicLocale = parse.LocaleHeuristic

func contasPagarMapper(empresaID int64) Mapper {
	return Mapper{
		Entity: EntityContasPagar,
		Fields: []Field{
			{Name: "fornecedor", Aliases: []string{"Fornecedor", "fornecedor", "FORNECEDOR"}, Required: true},
			{Name: "descricao", Aliases: []string{"Descrição", "Descricao", "descrição", "descricao"}},
			{Name: "valor", Aliases: []string{"Valor", "valor", "VALOR", "Valor (R$)"}, Required: true, Kind: KindCurrency},
			{Name: "vencimento", Aliases: []string{"Vencimento", "vencimento", "Data de Vencimento", "Data Vencimento"}, Required: true, Kind: KindDate, Locale: &heuristicLocale},
			{Name: "status", Aliases: []string{"Status", "status", "Situação", "Situacao"}, Kind: KindStatus, Allowed: []string{"PENDENTE", "PAGO", "ATRASADO"}, Default: "PENDENTE"},
			{Name: "loja", Aliases: []string{"Loja", "loja", "LOJA", "Unidade"}},
		},
		Build: func(vals map[string]any, lk Lookups) (any, bool) {
			rec := domain.ContaPagar{
				EmpresaID:  empresaID,
				Fornecedor: text(vals, "fornecedor"),
				Descricao:  text(vals, "descricao"),
				Valor:      money(vals, "valor"),
				Vencimento: date(vals, "vencimento"),
				Status:     textOr(vals, "status", "PENDENTE"),
			}
			if name := text(vals, "loja"); name != "" {
				id, ok := lk.ResolveLoja(name)
				if !ok {
					return nil, false
				}
				rec.LojaID = &id
			}
			return rec, true
		},
	}
}

func contasReceberMapper(empresaID int64) Mapper {
	return Mapper{
		Entity: EntityContasReceber,
		Fields: []Field{
			{Name: "cliente", Aliases: []string{"Cliente", "cliente", "CLIENTE"}, Required: true},
			{Name: "descricao", Aliases: []string{"Descrição", "Descricao", "descrição", "descricao"}},
			{Name: "valor", Aliases: []string{"Valor", "valor", "VALOR", "Valor (R$)"}, Required: true, Kind: KindCurrency},
			{Name: "vencimento", Aliases: []string{"Vencimento", "vencimento", "Data de Vencimento"}, Required: true, Kind: KindDate},
			{Name: "status", Aliases: []string{"Status", "status"}, Kind: KindStatus, Allowed: []string{"PENDENTE", "RECEBIDO", "ATRASADO"}, Default: "PENDENTE"},
			{Name: "loja", Aliases: []string{"Loja", "loja", "Unidade"}},
		},
		Build: func(vals map[string]any, lk Lookups) (any, bool) {
			rec := domain.ContaReceber{
				EmpresaID:  empresaID,
				Cliente:    text(vals, "cliente"),
				Descricao:  text(vals, "descricao"),
				Valor:      money(vals, "valor"),
				Vencimento: date(vals, "vencimento"),
				Status:     textOr(vals, "status", "PENDENTE"),
			}
			if name := text(vals, "loja"); name != "" {
				id, ok := lk.ResolveLoja(name)
				if !ok {
					return nil, false
				}
				rec.LojaID = &id
			}
			return rec, true
		},
	}
}

func funcionariosMapper(empresaID int64) Mapper {
	return Mapper{
		Entity: EntityFuncionarios,
		Fields: []Field{
			{Name: "nome", Aliases: []string{"Nome", "nome", "NOME", "Funcionário", "Funcionario"}, Required: true},
			{Name: "cargo", Aliases: []string{"Cargo", "cargo", "Função", "Funcao"}},
			{Name: "salario", Aliases: []string{"Salário", "Salario", "salário", "salario"}, Required: true, Kind: KindCurrency},
			{Name: "loja", Aliases: []string{"Loja", "loja", "LOJA", "Unidade"}, Required: true},
			{Name: "admissao", Aliases: []string{"Admissão", "Admissao", "Data de Admissão", "Data Admissao"}, Kind: KindDate},
		},
		Build: func(vals map[string]any, lk Lookups) (any, bool) {
			lojaID, ok := lk.ResolveLoja(text(vals, "loja"))
			if !ok {
				return nil, false
			}
			rec := domain.Funcionario{
				EmpresaID: empresaID,
				LojaID:    lojaID,
				Nome:      text(vals, "nome"),
				Cargo:     text(vals, "cargo"),
				Salario:   money(vals, "salario"),
			}
			if t, found := vals["admissao"].(time.Time); found {
				rec.DataAdmissao = &t
			}
			return rec, true
		},
	}
}

func metasMapper(empresaID int64) Mapper {
	return Mapper{
		Entity: EntityMetas,
		Fields: []Field{
			{Name: "loja", Aliases: []string{"Loja", "loja", "LOJA", "Unidade"}, Required: true},
			{Name: "mes", Aliases: []string{"Mês", "Mes", "mês", "mes", "Competência", "Competencia"}, Required: true, Kind: KindDate},
			{Name: "valor", Aliases: []string{"Meta", "meta", "Valor", "valor", "Valor Meta"}, Required: true, Kind: KindCurrency},
		},
		Build: func(vals map[string]any, lk Lookups) (any, bool) {
			lojaID, ok := lk.ResolveLoja(text(vals, "loja"))
			if !ok {
				return nil, false
			}
			return domain.Meta{
				EmpresaID: empresaID,
				LojaID:    lojaID,
				Mes:       date(vals, "mes"),
				ValorMeta: money(vals, "valor"),
			}, true
		},
	}
}

func auditoriasMapper(empresaID int64) Mapper {
	return Mapper{
		Entity: EntityAuditorias,
		Fields: []Field{
			{Name: "loja", Aliases: []string{"Loja", "loja", "LOJA", "Unidade"}, Required: true},
			{Name: "data", Aliases: []string{"Data", "data", "DATA"}, Required: true, Kind: KindDate},
			{Name: "nota", Aliases: []string{"Nota", "nota", "Pontuação", "Pontuacao"}, Kind: KindCurrency},
			{Name: "observacoes", Aliases: []string{"Observações", "Observacoes", "observações", "observacoes", "Obs"}},
		},
		Build: func(vals map[string]any, lk Lookups) (any, bool) {
			lojaID, ok := lk.ResolveLoja(text(vals, "loja"))
			if !ok {
				return nil, false
			}
			return domain.Auditoria{
				EmpresaID:   empresaID,
				LojaID:      lojaID,
				Data:        date(vals, "data"),
				Nota:        money(vals, "nota"),
				Observacoes: text(vals, "observacoes"),
			}, true
		},
	}
}

func manutencoesMapper(empresaID int64) Mapper {
	return Mapper{
		Entity: EntityManutencoes,
		Fields: []Field{
			{Name: "loja", Aliases: []string{"Loja", "loja", "LOJA", "Unidade"}, Required: true},
			{Name: "titulo", Aliases: []string{"Título", "Titulo", "título", "titulo", "Descrição", "Descricao"}, Required: true},
			{Name: "prioridade", Aliases: []string{"Prioridade", "prioridade"}, Kind: KindStatus, Allowed: []string{"BAIXA", "MEDIA", "ALTA"}, Default: "MEDIA"},
			{Name: "status", Aliases: []string{"Status", "status"}, Kind: KindStatus, Allowed: []string{"ABERTO", "EM_ANDAMENTO", "CONCLUIDO"}, Default: "ABERTO"},
			{Name: "abertura", Aliases: []string{"Abertura", "abertura", "Data de Abertura", "Data Abertura"}, Kind: KindDate},
		},
		Build: func(vals map[string]any, lk Lookups) (any, bool) {
			lojaID, ok := lk.ResolveLoja(text(vals, "loja"))
			if !ok {
				return nil, false
			}
			rec := domain.Manutencao{
				EmpresaID:  empresaID,
				LojaID:     lojaID,
				Titulo:     text(vals, "titulo"),
				Prioridade: textOr(vals, "prioridade", "MEDIA"),
				Status:     textOr(vals, "status", "ABERTO"),
			}
			if t, found := vals["abertura"].(time.Time); found {
				rec.DataAbertura = t
			}
			return rec, true
		},
	}
}

func campanhasMapper(empresaID int64) Mapper {
	return Mapper{
		Entity: EntityCampanhas,
		Fields: []Field{
			{Name: "nome", Aliases: []string{"Nome", "nome", "NOME", "Campanha", "campanha"}, Required: true},
			{Name: "inicio", Aliases: []string{"Início", "Inicio", "início", "inicio"}, Required: true, Kind: KindDate},
			{Name: "fim", Aliases: []string{"Fim", "fim", "Término", "Termino"}, Required: true, Kind: KindDate},
			{Name: "desconto", Aliases: []string{"Desconto", "desconto", "Desconto (%)"}, Kind: KindCurrency},
			{Name: "status", Aliases: []string{"Status", "status"}, Kind: KindStatus, Allowed: []string{"ATIVA", "ENCERRADA", "PLANEJADA"}, Default: "ATIVA"},
		},
		Build: func(vals map[string]any, lk Lookups) (any, bool) {
			return domain.Campanha{
				EmpresaID:   empresaID,
				Nome:        text(vals, "nome"),
				Inicio:      date(vals, "inicio"),
				Fim:         date(vals, "fim"),
				DescontoPct: money(vals, "desconto"),
				Status:      textOr(vals, "status", "ATIVA"),
			}, true
		},
	}
}

func text(vals map[string]any, name string) string {
	s, _ := vals[name].(string)
	return s
}

func textOr(vals map[string]any, name, def string) string {
	if s, ok := vals[name].(string); ok && s != "" {
		return s
	}
	return def
}

func money(vals map[string]any, name string) decimal.Decimal {
	d, ok := vals[name].(decimal.Decimal)
	if !ok {
		return decimal.Zero
	}
	return d
}

func date(vals map[string]any, name string) time.Time {
	t, _ := vals[name].(time.Time)
	return t
}
