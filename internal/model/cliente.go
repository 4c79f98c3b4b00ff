package model

// Cliente is a customer record. Telefone and Email are optional on the
// backend and omitted from payloads when empty.
type Cliente struct {
	ID       int64  `json:"id,omitempty"`
	Nome     string `json:"nome"`
	Telefone string `json:"telefone,omitempty"`
	Email    string `json:"email,omitempty"`
}

// Fornecedor is a supplier record.
type Fornecedor struct {
	ID      int64  `json:"id,omitempty"`
	Nome    string `json:"nome"`
	CNPJ    string `json:"cnpj,omitempty"`
	Contato string `json:"contato,omitempty"`
}
