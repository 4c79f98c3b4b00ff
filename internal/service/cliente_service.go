package service

import (
	"context"
	"fmt"
	"strings"

	"modavintage/internal/httpclient"
	"modavintage/internal/model"
)

// ClienteInput is the create/update payload for a customer.
type ClienteInput struct {
	Nome     string `json:"nome"               validate:"required"`
	Telefone string `json:"telefone,omitempty" validate:"omitempty,min=8"`
	Email    string `json:"email,omitempty"    validate:"omitempty,email"`
}

type ClienteService interface {
	List(ctx context.Context, page, size int, nome string) (model.Page[model.Cliente], error)
	ListAll(ctx context.Context) ([]model.Cliente, error)
	Get(ctx context.Context, id int64) (model.Cliente, error)
	Create(ctx context.Context, in ClienteInput) (model.Cliente, error)
	Update(ctx context.Context, id int64, in ClienteInput) (model.Cliente, error)
	Delete(ctx context.Context, id int64) error
}

type clienteService struct {
	client *httpclient.Client
}

func NewClienteService(client *httpclient.Client) ClienteService {
	return &clienteService{client: client}
}

func (s *clienteService) List(ctx context.Context, page, size int, nome string) (model.Page[model.Cliente], error) {
	q := pageQuery(page, size, "nome,asc")
	if strings.TrimSpace(nome) != "" {
		q.Set("nome", strings.TrimSpace(nome))
	}
	var out model.Page[model.Cliente]
	err := s.client.Get(ctx, "/clientes", q, &out)
	return out, err
}

func (s *clienteService) ListAll(ctx context.Context) ([]model.Cliente, error) {
	var out []model.Cliente
	if err := s.client.Get(ctx, "/clientes/todos", nil, &out); err != nil {
		return nil, err
	}
	sortByNome(out, func(c model.Cliente) string { return c.Nome })
	return out, nil
}

func (s *clienteService) Get(ctx context.Context, id int64) (model.Cliente, error) {
	var out model.Cliente
	err := s.client.Get(ctx, fmt.Sprintf("/clientes/%d", id), nil, &out)
	return out, err
}

func (s *clienteService) Create(ctx context.Context, in ClienteInput) (model.Cliente, error) {
	var out model.Cliente
	if err := checkPayload(in); err != nil {
		return out, err
	}
	err := s.client.Post(ctx, "/clientes", in, &out)
	return out, err
}

func (s *clienteService) Update(ctx context.Context, id int64, in ClienteInput) (model.Cliente, error) {
	var out model.Cliente
	if err := checkPayload(in); err != nil {
		return out, err
	}
	err := s.client.Put(ctx, fmt.Sprintf("/clientes/%d", id), in, &out)
	return out, err
}

func (s *clienteService) Delete(ctx context.Context, id int64) error {
	return s.client.Delete(ctx, fmt.Sprintf("/clientes/%d", id))
}
