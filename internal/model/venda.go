package model

import "github.com/shopspring/decimal"

// ProdutoRef is the snapshot-side reference to a product inside a sale.
// The live product may have been edited or deactivated since.
type ProdutoRef struct {
	ID    int64  `json:"id"`
	Nome  string `json:"nome,omitempty"`
	Ativo *bool  `json:"ativo,omitempty"`
}

// ClienteRef mirrors ProdutoRef for the sale's customer.
type ClienteRef struct {
	ID    int64  `json:"id"`
	Nome  string `json:"nome,omitempty"`
	Ativo *bool  `json:"ativo,omitempty"`
}

// ItemVenda is one sold line as the server recorded it, snapshot
// fields included.
type ItemVenda struct {
	ID                    int64           `json:"id"`
	Produto               *ProdutoRef     `json:"produto"`
	QuantidadeVendida     int             `json:"quantidadeVendida"`
	Quantidade            int             `json:"quantidade"`
	PrecoUnitarioSnapshot decimal.Decimal `json:"precoUnitarioSnapshot"`
	NomeProdutoSnapshot   string          `json:"nomeProdutoSnapshot"`
	TamanhoSnapshot       string          `json:"tamanhoSnapshot,omitempty"`
	CategoriaSnapshot     string          `json:"categoriaSnapshot,omitempty"`
}

// Venda is the read side of a registered sale. Entirely
// server-computed; the client only displays it and issues cancels.
type Venda struct {
	ID                      int64           `json:"id"`
	Cliente                 *ClienteRef     `json:"cliente"`
	Itens                   []ItemVenda     `json:"itens"`
	TotalVenda              decimal.Decimal `json:"totalVenda"`
	DataVenda               string          `json:"dataVenda"`
	NomeClienteSnapshot     string          `json:"nomeClienteSnapshot"`
	EmailClienteSnapshot    string          `json:"emailClienteSnapshot,omitempty"`
	TelefoneClienteSnapshot string          `json:"telefoneClienteSnapshot,omitempty"`
}

// NomeCliente resolves the display name of the sale's customer,
// preferring the snapshot taken at sale time.
func (v Venda) NomeCliente() string {
	if v.NomeClienteSnapshot != "" {
		return v.NomeClienteSnapshot
	}
	if v.Cliente != nil && v.Cliente.Nome != "" {
		return v.Cliente.Nome
	}
	return "Sem cliente"
}

// ── Submission payload ────────────────────────────────────────────────────────
// Unit prices are deliberately absent: the server re-derives current
// pricing and records its own snapshots at commit time.

type VendaItemInput struct {
	Produto    struct {
		ID int64 `json:"id"`
	} `json:"produto"`
	Quantidade int `json:"quantidade"`
}

type VendaInput struct {
	Cliente *struct {
		ID int64 `json:"id"`
	} `json:"cliente"`
	Itens []VendaItemInput `json:"itens"`
}
