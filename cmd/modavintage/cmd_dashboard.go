package main

import (
	"context"
	"fmt"
)

// cmdDashboard prints the two monthly report tables the backend
// aggregates: stock entries vs sales, and revenue vs gross profit.
func (a *app) cmdDashboard(ctx context.Context) error {
	fluxo, err := a.dashboard.FluxoEstoque(ctx)
	if err != nil {
		return err
	}
	lucro, err := a.dashboard.Lucratividade(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Fluxo de estoque por mês")
	if len(fluxo.Periodos) == 0 {
		fmt.Fprintln(a.out, "Sem movimentação registrada.")
	} else {
		rows := make([][]string, 0, len(fluxo.Periodos))
		for i := range fluxo.Periodos {
			rows = append(rows, []string{
				fluxo.Labels[i],
				"R$ " + fluxo.Entradas[i].StringFixed(2),
				"R$ " + fluxo.Saidas[i].StringFixed(2),
			})
		}
		a.table([]string{"MÊS", "ENTRADAS", "SAÍDAS"}, rows)
	}

	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "Lucratividade por mês")
	if len(lucro.Periodos) == 0 {
		fmt.Fprintln(a.out, "Sem vendas registradas.")
		return nil
	}
	rows := make([][]string, 0, len(lucro.Periodos))
	for i := range lucro.Periodos {
		rows = append(rows, []string{
			lucro.Labels[i],
			"R$ " + lucro.Receitas[i].StringFixed(2),
			"R$ " + lucro.Lucros[i].StringFixed(2),
		})
	}
	a.table([]string{"MÊS", "RECEITA", "LUCRO BRUTO"}, rows)
	return nil
}
