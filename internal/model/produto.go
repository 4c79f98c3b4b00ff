package model

import "github.com/shopspring/decimal"

// Produto is a merchandise record. Preco is the sale price; Estoque is
// the server-authoritative sellable unit count — every client-side
// check against it is advisory only.
type Produto struct {
	ID           int64            `json:"id,omitempty"`
	Nome         string           `json:"nome"`
	PrecoCusto   *decimal.Decimal `json:"precoCusto,omitempty"`
	Preco        decimal.Decimal  `json:"preco"`
	Estoque      int              `json:"estoque"`
	Tamanho      string           `json:"tamanho,omitempty"`
	Categoria    string           `json:"categoria,omitempty"`
	DataCadastro string           `json:"dataCadastro,omitempty"`
}

// Disponivel reports whether the product has sellable stock.
func (p Produto) Disponivel() bool { return p.Estoque > 0 }
