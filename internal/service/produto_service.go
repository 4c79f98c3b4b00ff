package service

import (
	"context"
	"fmt"
	"strings"

	"modavintage/internal/httpclient"
	"modavintage/internal/model"

	"github.com/shopspring/decimal"
)

// ProdutoInput is the create/update payload for merchandise.
type ProdutoInput struct {
	Nome       string           `json:"nome"                 validate:"required"`
	PrecoCusto *decimal.Decimal `json:"precoCusto,omitempty" validate:"omitempty,min=0"`
	Preco      decimal.Decimal  `json:"preco"                validate:"gt=0"`
	Estoque    int              `json:"estoque"              validate:"min=0"`
	Tamanho    string           `json:"tamanho,omitempty"`
	Categoria  string           `json:"categoria,omitempty"`
}

type ProdutoService interface {
	List(ctx context.Context, page, size int, nome string) (model.Page[model.Produto], error)
	// ListAllAvailable returns every active product with stock, name
	// sorted — the selection list for the sale-registration flow.
	ListAllAvailable(ctx context.Context) ([]model.Produto, error)
	Get(ctx context.Context, id int64) (model.Produto, error)
	Create(ctx context.Context, in ProdutoInput) (model.Produto, error)
	Update(ctx context.Context, id int64, in ProdutoInput) (model.Produto, error)
	Delete(ctx context.Context, id int64) error
}

type produtoService struct {
	client *httpclient.Client
}

func NewProdutoService(client *httpclient.Client) ProdutoService {
	return &produtoService{client: client}
}

func (s *produtoService) List(ctx context.Context, page, size int, nome string) (model.Page[model.Produto], error) {
	q := pageQuery(page, size, "nome,asc")
	if strings.TrimSpace(nome) != "" {
		q.Set("nome", strings.TrimSpace(nome))
	}
	var out model.Page[model.Produto]
	err := s.client.Get(ctx, "/produtos", q, &out)
	return out, err
}

func (s *produtoService) ListAllAvailable(ctx context.Context) ([]model.Produto, error) {
	var all []model.Produto
	if err := s.client.Get(ctx, "/produtos/todos", nil, &all); err != nil {
		return nil, err
	}
	available := make([]model.Produto, 0, len(all))
	for _, p := range all {
		if p.Disponivel() {
			available = append(available, p)
		}
	}
	sortByNome(available, func(p model.Produto) string { return p.Nome })
	return available, nil
}

func (s *produtoService) Get(ctx context.Context, id int64) (model.Produto, error) {
	var out model.Produto
	err := s.client.Get(ctx, fmt.Sprintf("/produtos/%d", id), nil, &out)
	return out, err
}

func (s *produtoService) Create(ctx context.Context, in ProdutoInput) (model.Produto, error) {
	var out model.Produto
	if err := checkPayload(in); err != nil {
		return out, err
	}
	err := s.client.Post(ctx, "/produtos", in, &out)
	return out, err
}

func (s *produtoService) Update(ctx context.Context, id int64, in ProdutoInput) (model.Produto, error) {
	var out model.Produto
	if err := checkPayload(in); err != nil {
		return out, err
	}
	err := s.client.Put(ctx, fmt.Sprintf("/produtos/%d", id), in, &out)
	return out, err
}

func (s *produtoService) Delete(ctx context.Context, id int64) error {
	return s.client.Delete(ctx, fmt.Sprintf("/produtos/%d", id))
}
