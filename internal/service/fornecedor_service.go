package service

import (
	"context"
	"fmt"
	"strings"

	"modavintage/internal/httpclient"
	"modavintage/internal/model"
)

// FornecedorInput is the create/update payload for a supplier. CNPJ is
// accepted with or without punctuation; only length is checked here.
type FornecedorInput struct {
	Nome    string `json:"nome"              validate:"required"`
	CNPJ    string `json:"cnpj,omitempty"    validate:"omitempty,min=14,max=18"`
	Contato string `json:"contato,omitempty"`
}

type FornecedorService interface {
	List(ctx context.Context, page, size int, nome string) (model.Page[model.Fornecedor], error)
	ListAll(ctx context.Context) ([]model.Fornecedor, error)
	Get(ctx context.Context, id int64) (model.Fornecedor, error)
	Create(ctx context.Context, in FornecedorInput) (model.Fornecedor, error)
	Update(ctx context.Context, id int64, in FornecedorInput) (model.Fornecedor, error)
	Delete(ctx context.Context, id int64) error
}

type fornecedorService struct {
	client *httpclient.Client
}

func NewFornecedorService(client *httpclient.Client) FornecedorService {
	return &fornecedorService{client: client}
}

func (s *fornecedorService) List(ctx context.Context, page, size int, nome string) (model.Page[model.Fornecedor], error) {
	q := pageQuery(page, size, "nome,asc")
	if strings.TrimSpace(nome) != "" {
		q.Set("nome", strings.TrimSpace(nome))
	}
	var out model.Page[model.Fornecedor]
	err := s.client.Get(ctx, "/fornecedores", q, &out)
	return out, err
}

func (s *fornecedorService) ListAll(ctx context.Context) ([]model.Fornecedor, error) {
	var out []model.Fornecedor
	if err := s.client.Get(ctx, "/fornecedores/todos", nil, &out); err != nil {
		return nil, err
	}
	sortByNome(out, func(f model.Fornecedor) string { return f.Nome })
	return out, nil
}

func (s *fornecedorService) Get(ctx context.Context, id int64) (model.Fornecedor, error) {
	var out model.Fornecedor
	err := s.client.Get(ctx, fmt.Sprintf("/fornecedores/%d", id), nil, &out)
	return out, err
}

func (s *fornecedorService) Create(ctx context.Context, in FornecedorInput) (model.Fornecedor, error) {
	var out model.Fornecedor
	if err := checkPayload(in); err != nil {
		return out, err
	}
	err := s.client.Post(ctx, "/fornecedores", in, &out)
	return out, err
}

func (s *fornecedorService) Update(ctx context.Context, id int64, in FornecedorInput) (model.Fornecedor, error) {
	var out model.Fornecedor
	if err := checkPayload(in); err != nil {
		return out, err
	}
	err := s.client.Put(ctx, fmt.Sprintf("/fornecedores/%d", id), in, &out)
	return out, err
}

func (s *fornecedorService) Delete(ctx context.Context, id int64) error {
	return s.client.Delete(ctx, fmt.Sprintf("/fornecedores/%d", id))
}
