package service

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"modavintage/internal/apierror"
	"modavintage/internal/httpclient"
	"modavintage/internal/model"
)

const dateLayout = "2006-01-02"

type VendaService interface {
	// List returns the paginated sales history, newest first.
	List(ctx context.Context, page, size int) (model.Page[model.Venda], error)
	// ListByCliente returns every sale of one customer (unpaginated
	// backend endpoint).
	ListByCliente(ctx context.Context, clienteID int64) ([]model.Venda, error)
	// ListByPeriod returns sales between two dates, inclusive,
	// formatted YYYY-MM-DD.
	ListByPeriod(ctx context.Context, dataInicio, dataFim string) ([]model.Venda, error)
	// Register submits an assembled sale. The server snapshots prices
	// and names, computes the total and decrements stock.
	Register(ctx context.Context, in model.VendaInput) (model.Venda, error)
	// Cancel deletes the sale; the server restocks its items.
	Cancel(ctx context.Context, id int64) error
}

type vendaService struct {
	client *httpclient.Client
}

func NewVendaService(client *httpclient.Client) VendaService {
	return &vendaService{client: client}
}

func (s *vendaService) List(ctx context.Context, page, size int) (model.Page[model.Venda], error) {
	var out model.Page[model.Venda]
	err := s.client.Get(ctx, "/vendas", pageQuery(page, size, "dataVenda,desc"), &out)
	return out, err
}

func (s *vendaService) ListByCliente(ctx context.Context, clienteID int64) ([]model.Venda, error) {
	var out []model.Venda
	err := s.client.Get(ctx, fmt.Sprintf("/vendas/cliente/%d", clienteID), nil, &out)
	return out, err
}

func (s *vendaService) ListByPeriod(ctx context.Context, dataInicio, dataFim string) ([]model.Venda, error) {
	inicio, err := time.Parse(dateLayout, dataInicio)
	if err != nil {
		return nil, apierror.New(apierror.KindValidation, "Data inicial inválida (use AAAA-MM-DD).")
	}
	fim, err := time.Parse(dateLayout, dataFim)
	if err != nil {
		return nil, apierror.New(apierror.KindValidation, "Data final inválida (use AAAA-MM-DD).")
	}
	if fim.Before(inicio) {
		return nil, apierror.New(apierror.KindValidation, "A data final é anterior à data inicial.")
	}

	q := url.Values{}
	q.Set("dataInicio", dataInicio)
	q.Set("dataFim", dataFim)
	var out []model.Venda
	err = s.client.Get(ctx, "/vendas/data", q, &out)
	return out, err
}

func (s *vendaService) Register(ctx context.Context, in model.VendaInput) (model.Venda, error) {
	var out model.Venda
	if len(in.Itens) == 0 {
		return out, apierror.New(apierror.KindValidation, "Adicione pelo menos um produto à venda.")
	}
	err := s.client.Post(ctx, "/vendas", in, &out)
	return out, err
}

func (s *vendaService) Cancel(ctx context.Context, id int64) error {
	return s.client.Delete(ctx, fmt.Sprintf("/vendas/%d", id))
}
