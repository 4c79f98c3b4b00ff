// Package report turns the backend's monthly aggregate rows into
// aligned, label-ready series. Rendering (charts on mobile, tables on
// the CLI) is the caller's concern; this package only prepares data.
package report

import (
	"context"
	"sort"
	"strings"

	"modavintage/internal/service"

	"github.com/shopspring/decimal"
)

var mesesAbreviados = map[string]string{
	"01": "Jan", "02": "Fev", "03": "Mar", "04": "Abr",
	"05": "Mai", "06": "Jun", "07": "Jul", "08": "Ago",
	"09": "Set", "10": "Out", "11": "Nov", "12": "Dez",
}

// MonthLabel formats "YYYY-MM" as a short pt-BR label ("Jan/26").
// Unrecognized input is returned unchanged.
func MonthLabel(mesAno string) string {
	parts := strings.SplitN(mesAno, "-", 2)
	if len(parts) != 2 || len(parts[0]) != 4 {
		return mesAno
	}
	mes, ok := mesesAbreviados[parts[1]]
	if !ok {
		mes = parts[1]
	}
	return mes + "/" + parts[0][2:]
}

// FluxoEstoque aligns stock-entry value and sales value per month.
// Every period that appears in either source appears once, ascending;
// months missing from one source read as zero there.
type FluxoEstoque struct {
	Periodos []string // "YYYY-MM", sorted ascending
	Labels   []string
	Entradas []decimal.Decimal // stock entry value per period
	Saidas   []decimal.Decimal // sales total per period
}

// Lucratividade carries the monthly revenue/gross-profit series.
type Lucratividade struct {
	Periodos []string
	Labels   []string
	Receitas []decimal.Decimal
	Lucros   []decimal.Decimal
}

type Dashboard struct {
	relatorios service.RelatorioService
}

func NewDashboard(relatorios service.RelatorioService) *Dashboard {
	return &Dashboard{relatorios: relatorios}
}

// FluxoEstoque fetches both monthly series and merges them by mesAno.
func (d *Dashboard) FluxoEstoque(ctx context.Context) (FluxoEstoque, error) {
	var out FluxoEstoque

	vendas, err := d.relatorios.TotalMensal(ctx)
	if err != nil {
		return out, err
	}
	entradas, err := d.relatorios.ValorEntradaEstoqueMensal(ctx)
	if err != nil {
		return out, err
	}

	saidaPor := map[string]decimal.Decimal{}
	for _, row := range vendas {
		if row.TotalVendido != nil {
			saidaPor[row.MesAno] = *row.TotalVendido
		}
	}
	entradaPor := map[string]decimal.Decimal{}
	for _, row := range entradas {
		if row.Valor != nil {
			entradaPor[row.MesAno] = *row.Valor
		}
	}

	seen := map[string]bool{}
	for _, row := range vendas {
		seen[row.MesAno] = true
	}
	for _, row := range entradas {
		seen[row.MesAno] = true
	}
	for periodo := range seen {
		out.Periodos = append(out.Periodos, periodo)
	}
	sort.Strings(out.Periodos) // "YYYY-MM" sorts chronologically

	for _, periodo := range out.Periodos {
		out.Labels = append(out.Labels, MonthLabel(periodo))
		out.Entradas = append(out.Entradas, entradaPor[periodo])
		out.Saidas = append(out.Saidas, saidaPor[periodo])
	}
	return out, nil
}

// Lucratividade fetches the profitability report as aligned series.
func (d *Dashboard) Lucratividade(ctx context.Context) (Lucratividade, error) {
	var out Lucratividade

	rows, err := d.relatorios.LucratividadeMensal(ctx)
	if err != nil {
		return out, err
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Periodo < rows[j].Periodo })

	for _, row := range rows {
		out.Periodos = append(out.Periodos, row.Periodo)
		out.Labels = append(out.Labels, MonthLabel(row.Periodo))
		out.Receitas = append(out.Receitas, row.TotalReceita)
		out.Lucros = append(out.Lucros, row.TotalLucroBruto)
	}
	return out, nil
}
