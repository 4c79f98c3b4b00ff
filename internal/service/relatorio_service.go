package service

import (
	"context"

	"modavintage/internal/httpclient"
	"modavintage/internal/model"
)

// RelatorioService exposes the monthly aggregate report endpoints the
// dashboard consumes. All computation happens server-side.
type RelatorioService interface {
	TotalMensal(ctx context.Context) ([]model.RelatorioMensal, error)
	ValorEntradaEstoqueMensal(ctx context.Context) ([]model.RelatorioMensal, error)
	LucratividadeMensal(ctx context.Context) ([]model.RelatorioLucratividade, error)
}

type relatorioService struct {
	client *httpclient.Client
}

func NewRelatorioService(client *httpclient.Client) RelatorioService {
	return &relatorioService{client: client}
}

func (s *relatorioService) TotalMensal(ctx context.Context) ([]model.RelatorioMensal, error) {
	var out []model.RelatorioMensal
	err := s.client.Get(ctx, "/vendas/relatorio/total-mensal", nil, &out)
	return out, err
}

func (s *relatorioService) ValorEntradaEstoqueMensal(ctx context.Context) ([]model.RelatorioMensal, error) {
	var out []model.RelatorioMensal
	err := s.client.Get(ctx, "/produtos/relatorio/valor-entrada-estoque-mensal", nil, &out)
	return out, err
}

func (s *relatorioService) LucratividadeMensal(ctx context.Context) ([]model.RelatorioLucratividade, error) {
	var out []model.RelatorioLucratividade
	err := s.client.Get(ctx, "/vendas/relatorio/lucratividade-mensal", nil, &out)
	return out, err
}
