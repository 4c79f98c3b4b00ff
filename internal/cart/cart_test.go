package cart

import (
	"context"
	"errors"
	"testing"

	"modavintage/internal/apierror"
	"modavintage/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubVendaService captures the submitted payload and answers with a
// canned result.
type stubVendaService struct {
	registered []model.VendaInput
	result     model.Venda
	err        error
}

func (s *stubVendaService) List(_ context.Context, _, _ int) (model.Page[model.Venda], error) {
	return model.Page[model.Venda]{}, nil
}
func (s *stubVendaService) ListByCliente(_ context.Context, _ int64) ([]model.Venda, error) {
	return nil, nil
}
func (s *stubVendaService) ListByPeriod(_ context.Context, _, _ string) ([]model.Venda, error) {
	return nil, nil
}
func (s *stubVendaService) Register(_ context.Context, in model.VendaInput) (model.Venda, error) {
	s.registered = append(s.registered, in)
	if s.err != nil {
		return model.Venda{}, s.err
	}
	return s.result, nil
}
func (s *stubVendaService) Cancel(_ context.Context, _ int64) error { return nil }

func produto(id int64, nome string, preco float64, estoque int) model.Produto {
	return model.Produto{ID: id, Nome: nome, Preco: decimal.NewFromFloat(preco), Estoque: estoque}
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestAddItem_MesclaLinhaExistente(t *testing.T) {
	c := New(&stubVendaService{})
	camisa := produto(1, "Camisa Vintage", 80, 10)

	require.NoError(t, c.AddItem(camisa, 2))
	require.NoError(t, c.AddItem(camisa, 3))

	itens := c.Items()
	require.Len(t, itens, 1)
	assert.Equal(t, 5, itens[0].Quantidade)
}

func TestAddItem_EstoqueInsuficiente(t *testing.T) {
	c := New(&stubVendaService{})
	jaqueta := produto(7, "Jaqueta Jeans", 150, 3)

	require.NoError(t, c.AddItem(jaqueta, 2))
	err := c.AddItem(jaqueta, 2) // 2+2 > 3

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Jaqueta Jeans", stockErr.Produto)
	assert.Equal(t, 3, stockErr.Disponivel)
	assert.Equal(t, 2, stockErr.EmCarrinho)

	// Rejection leaves the cart untouched.
	itens := c.Items()
	require.Len(t, itens, 1)
	assert.Equal(t, 2, itens[0].Quantidade)
}

func TestAddItem_QuantidadeInvalida(t *testing.T) {
	c := New(&stubVendaService{})
	p := produto(1, "Saia", 60, 5)

	assert.ErrorIs(t, c.AddItem(p, 0), ErrQuantidadeInvalida)
	assert.ErrorIs(t, c.AddItem(p, -1), ErrQuantidadeInvalida)
	assert.True(t, c.IsEmpty())
}

func TestAddItem_CongelaPrecoNoMomentoDaAdicao(t *testing.T) {
	c := New(&stubVendaService{})
	vestido := produto(3, "Vestido Anos 70", 120, 5)
	require.NoError(t, c.AddItem(vestido, 1))

	// A price edit elsewhere must not move the captured line price.
	vestido.Preco = decimal.NewFromFloat(999)

	itens := c.Items()
	require.Len(t, itens, 1)
	assert.Equal(t, "120", itens[0].PrecoUnitario.String())
	assert.Equal(t, "120", c.Total().String())
}

func TestSetQuantity_AbsolutaContraEstoque(t *testing.T) {
	c := New(&stubVendaService{})
	bolsa := produto(4, "Bolsa Couro", 200, 3)
	require.NoError(t, c.AddItem(bolsa, 1))

	require.NoError(t, c.SetQuantity(4, 3))
	assert.Equal(t, 3, c.Items()[0].Quantidade)

	err := c.SetQuantity(4, 4)
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 3, c.Items()[0].Quantidade)

	assert.Error(t, c.SetQuantity(99, 1)) // not on the sale
}

func TestRemoveItem_AusenteEhNoOp(t *testing.T) {
	c := New(&stubVendaService{})
	require.NoError(t, c.AddItem(produto(1, "Cinto", 25, 9), 1))

	c.RemoveItem(42)
	assert.Len(t, c.Items(), 1)

	c.RemoveItem(1)
	assert.True(t, c.IsEmpty())
}

func TestTotal_SomaSubtotais(t *testing.T) {
	c := New(&stubVendaService{})
	require.NoError(t, c.AddItem(produto(1, "Camisa", 80.50, 10), 2))
	require.NoError(t, c.AddItem(produto(2, "Calça", 99.90, 10), 1))

	assert.Equal(t, "260.90", c.Total().StringFixed(2))
}

func TestBuildPayload_SemPrecosComCliente(t *testing.T) {
	c := New(&stubVendaService{})
	c.SelectCustomer(&model.Cliente{ID: 55, Nome: "Maria"})
	require.NoError(t, c.AddItem(produto(1, "Camisa", 80, 10), 2))
	require.NoError(t, c.AddItem(produto(2, "Calça", 99, 10), 1))

	in := c.BuildPayload()
	require.NotNil(t, in.Cliente)
	assert.Equal(t, int64(55), in.Cliente.ID)
	require.Len(t, in.Itens, 2)
	assert.Equal(t, int64(1), in.Itens[0].Produto.ID)
	assert.Equal(t, 2, in.Itens[0].Quantidade)
	assert.Equal(t, int64(2), in.Itens[1].Produto.ID)
	assert.Equal(t, 1, in.Itens[1].Quantidade)
}

func TestBuildPayload_SemCliente(t *testing.T) {
	c := New(&stubVendaService{})
	require.NoError(t, c.AddItem(produto(1, "Camisa", 80, 10), 1))

	assert.Nil(t, c.BuildPayload().Cliente)
}

func TestSubmit_VaziaEhErroDeValidacao(t *testing.T) {
	svc := &stubVendaService{}
	c := New(svc)

	_, err := c.Submit(context.Background())
	assert.Equal(t, apierror.KindValidation, apierror.KindOf(err))
	assert.Empty(t, svc.registered)
}

func TestSubmit_SucessoLimpaCarrinho(t *testing.T) {
	svc := &stubVendaService{result: model.Venda{ID: 10, TotalVenda: decimal.NewFromInt(160)}}
	c := New(svc)
	c.SelectCustomer(&model.Cliente{ID: 1, Nome: "Ana"})
	require.NoError(t, c.AddItem(produto(1, "Camisa", 80, 10), 2))

	venda, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(10), venda.ID)

	assert.True(t, c.IsEmpty())
	assert.Nil(t, c.Customer())
	require.Len(t, svc.registered, 1)
}

func TestSubmit_FalhaPreservaCarrinho(t *testing.T) {
	svc := &stubVendaService{err: errors.New("estoque alterado no servidor")}
	c := New(svc)
	require.NoError(t, c.AddItem(produto(1, "Camisa", 80, 10), 2))

	_, err := c.Submit(context.Background())
	require.Error(t, err)

	// The user can fix the sale and retry; nothing was discarded.
	assert.Len(t, c.Items(), 1)
}
