package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
)

var demoLojaNames = []string{
	"Loja Centro",
	"Loja Shopping Norte",
	"Loja Avenida Paulista",
	"Loja Zona Sul",
	"Loja Galeria",
}

// runDemo seeds one company with stores, one user per role and two weeks
// of closings so the dashboard has something to show out of the box.
func runDemo(c *cli.Context) error {
	db, err := dbFrom(c)
	if err != nil {
		return err
	}

	empresaName := c.String("empresa")
	lojaCount := c.Int("lojas")
	if lojaCount < 1 {
		lojaCount = 1
	}
	if lojaCount > len(demoLojaNames) {
		lojaCount = len(demoLojaNames)
	}

	var empresaID int64
	err = db.QueryRowContext(c.Context,
		`INSERT INTO empresas (nome) VALUES ($1) RETURNING id`, empresaName,
	).Scan(&empresaID)
	if err != nil {
		return fmt.Errorf("failed to seed empresa: %w", err)
	}

	lojaIDs := make([]int64, 0, lojaCount)
	for i := 0; i < lojaCount; i++ {
		var lojaID int64
		err = db.QueryRowContext(c.Context,
			`INSERT INTO lojas (empresa_id, nome) VALUES ($1, $2) RETURNING id`,
			empresaID, demoLojaNames[i],
		).Scan(&lojaID)
		if err != nil {
			return fmt.Errorf("failed to seed loja: %w", err)
		}
		lojaIDs = append(lojaIDs, lojaID)
	}

	users := []struct {
		nome  string
		roles string
	}{
		{"Admin Demo", "ADMIN"},
		{"Diretoria Demo", "DIRETORIA"},
		{"Financeiro Demo", "FINANCEIRO"},
		{"Operador Loja Demo", "LOJA"},
	}
	for _, u := range users {
		_, err = db.ExecContext(c.Context,
			`INSERT INTO usuarios (id, empresa_id, nome, roles) VALUES ($1, $2, $3, $4)`,
			uuid.NewString(), empresaID, u.nome, u.roles,
		)
		if err != nil {
			return fmt.Errorf("failed to seed usuario: %w", err)
		}
	}

	if err := seedDemoClosings(db, c, empresaID, lojaIDs); err != nil {
		return err
	}

	log.Printf("seeded empresa %q (id %d) with %d lojas", empresaName, empresaID, len(lojaIDs))
	return nil
}

func seedDemoClosings(db *sql.DB, c *cli.Context, empresaID int64, lojaIDs []int64) error {
	today := time.Now().UTC().Truncate(24 * time.Hour)

	for _, lojaID := range lojaIDs {
		for daysAgo := 14; daysAgo >= 1; daysAgo-- {
			data := today.AddDate(0, 0, -daysAgo)

			// Deterministic but varied demo figures.
			dinheiro := float64(200 + (daysAgo*37+int(lojaID)*11)%300)
			pix := float64(150 + (daysAgo*53)%250)
			cartao := float64(300 + (daysAgo*29)%400)
			sangrias := float64((daysAgo * 13) % 80)
			totalEntradas := dinheiro + pix + cartao
			saldoFinal := 100 + totalEntradas - sangrias

			status := "CONCILIADO_OK"
			if daysAgo%5 == 0 {
				status = "CONCILIADO_DIVERGENCIA"
			}
			if daysAgo <= 2 {
				status = "FECHADO_PENDENTE_CONCILIACAO"
			}

			_, err := db.ExecContext(c.Context, `
				INSERT INTO fechamentos (
					empresa_id, loja_id, data,
					saldo_inicial, dinheiro, pix, cartao, sangrias, suprimentos, saidas,
					total_entradas, saldo_final, status, responsavel_nome
				) VALUES ($1, $2, $3, 100, $4, $5, $6, $7, 0, 0, $8, $9, $10, 'Operador Loja Demo')
				ON CONFLICT (loja_id, data) DO NOTHING
			`, empresaID, lojaID, data, dinheiro, pix, cartao, sangrias, totalEntradas, saldoFinal, status)
			if err != nil {
				return fmt.Errorf("failed to seed fechamento: %w", err)
			}
		}
	}

	return nil
}
