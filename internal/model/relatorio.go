package model

import "github.com/shopspring/decimal"

// RelatorioMensal is one row of the monthly aggregate reports, keyed
// by MesAno ("YYYY-MM"). The sales report fills TotalVendido, the
// stock-entry report fills Valor.
type RelatorioMensal struct {
	MesAno       string           `json:"mesAno"`
	Valor        *decimal.Decimal `json:"valor,omitempty"`
	TotalVendido *decimal.Decimal `json:"totalVendido,omitempty"`
}

// RelatorioLucratividade is one row of the monthly profitability
// report. CMV (cost of goods sold) is optional on the API.
type RelatorioLucratividade struct {
	Periodo         string           `json:"periodo"`
	TotalReceita    decimal.Decimal  `json:"totalReceita"`
	CMV             *decimal.Decimal `json:"cmv,omitempty"`
	TotalLucroBruto decimal.Decimal  `json:"totalLucroBruto"`
}
