// Package cart accumulates an in-progress sale: the optional customer,
// one line per product with a price snapshot taken at add time, and
// stock-ceiling checks. The checks are advisory UX — the server is
// authoritative and may still reject the submitted sale.
package cart

import (
	"context"
	"fmt"
	"sync"

	"modavintage/internal/apierror"
	"modavintage/internal/model"
	"modavintage/internal/service"

	"github.com/shopspring/decimal"
)

// InsufficientStockError names the product and the stock ceiling the
// requested quantity would break.
type InsufficientStockError struct {
	Produto    string
	Disponivel int
	EmCarrinho int // units already on the line, 0 for a first add
}

func (e *InsufficientStockError) Error() string {
	if e.EmCarrinho > 0 {
		return fmt.Sprintf("estoque insuficiente para %q: disponível %d, já há %d no carrinho", e.Produto, e.Disponivel, e.EmCarrinho)
	}
	return fmt.Sprintf("estoque insuficiente para %q: disponível %d", e.Produto, e.Disponivel)
}

// ErrQuantidadeInvalida rejects zero or negative quantities.
var ErrQuantidadeInvalida = fmt.Errorf("quantidade inválida: informe um inteiro maior que zero")

// Line is one product on the in-progress sale. PrecoUnitario is the
// sale price snapshotted when the product was first added — later
// price edits on the product do not move it.
type Line struct {
	Produto       model.Produto
	Quantidade    int
	PrecoUnitario decimal.Decimal
}

// Subtotal is PrecoUnitario × Quantidade.
func (l Line) Subtotal() decimal.Decimal {
	return l.PrecoUnitario.Mul(decimal.NewFromInt(int64(l.Quantidade)))
}

// Cart is safe for concurrent use.
type Cart struct {
	mu      sync.Mutex
	cliente *model.Cliente
	lines   []Line
	vendas  service.VendaService
}

// New returns an empty cart submitting through vendas.
func New(vendas service.VendaService) *Cart {
	return &Cart{vendas: vendas}
}

// SelectCustomer sets (or clears, with nil) the sale's customer.
// The customer is optional; no further validation happens client-side.
func (c *Cart) SelectCustomer(cliente *model.Cliente) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cliente = cliente
}

// Customer returns the selected customer, nil when none.
func (c *Cart) Customer() *model.Cliente {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cliente
}

// AddItem adds quantidade units of produto, merging into the existing
// line when the product is already on the sale. The combined quantity
// must fit the product's last-known stock; on rejection the cart is
// unchanged.
func (c *Cart) AddItem(produto model.Produto, quantidade int) error {
	if quantidade <= 0 {
		return ErrQuantidadeInvalida
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(produto.ID); i >= 0 {
		novaQtd := c.lines[i].Quantidade + quantidade
		if novaQtd > c.lines[i].Produto.Estoque {
			return &InsufficientStockError{
				Produto:    c.lines[i].Produto.Nome,
				Disponivel: c.lines[i].Produto.Estoque,
				EmCarrinho: c.lines[i].Quantidade,
			}
		}
		c.lines[i].Quantidade = novaQtd
		return nil
	}

	if quantidade > produto.Estoque {
		return &InsufficientStockError{Produto: produto.Nome, Disponivel: produto.Estoque}
	}
	c.lines = append(c.lines, Line{
		Produto:       produto,
		Quantidade:    quantidade,
		PrecoUnitario: produto.Preco,
	})
	return nil
}

// SetQuantity replaces (absolute set, not increment) the quantity of
// the line holding produtoID, checked against the product reference
// captured when the line was created.
func (c *Cart) SetQuantity(produtoID int64, quantidade int) error {
	if quantidade <= 0 {
		return ErrQuantidadeInvalida
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(produtoID)
	if i < 0 {
		return fmt.Errorf("produto %d não está na venda", produtoID)
	}
	if quantidade > c.lines[i].Produto.Estoque {
		return &InsufficientStockError{
			Produto:    c.lines[i].Produto.Nome,
			Disponivel: c.lines[i].Produto.Estoque,
		}
	}
	c.lines[i].Quantidade = quantidade
	return nil
}

// RemoveItem drops the line for produtoID. Removing an absent product
// is a no-op.
func (c *Cart) RemoveItem(produtoID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.indexOf(produtoID); i >= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}
}

// Items returns a copy of the current lines in insertion order.
func (c *Cart) Items() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Total is Σ(precoUnitario × quantidade) over the current lines.
// Display-only: the server recomputes the authoritative total.
func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// IsEmpty reports whether the sale has no lines.
func (c *Cart) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines) == 0
}

// Clear resets the cart to its initial state.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cliente = nil
	c.lines = nil
}

// BuildPayload assembles the submission body. Unit prices are not
// sent: the server re-derives current pricing and records its own
// snapshots at commit time.
func (c *Cart) BuildPayload() model.VendaInput {
	c.mu.Lock()
	defer c.mu.Unlock()

	var in model.VendaInput
	if c.cliente != nil {
		in.Cliente = &struct {
			ID int64 `json:"id"`
		}{ID: c.cliente.ID}
	}
	in.Itens = make([]model.VendaItemInput, 0, len(c.lines))
	for _, l := range c.lines {
		item := model.VendaItemInput{Quantidade: l.Quantidade}
		item.Produto.ID = l.Produto.ID
		in.Itens = append(in.Itens, item)
	}
	return in
}

// Submit posts the sale. An empty cart is a validation error. On
// success the cart is cleared — the next sale starts fresh. A stock
// race lost between add-to-cart and commit comes back as an ordinary
// validation failure from the server.
func (c *Cart) Submit(ctx context.Context) (model.Venda, error) {
	if c.IsEmpty() {
		return model.Venda{}, apierror.New(apierror.KindValidation, "Adicione pelo menos um produto à venda.")
	}
	venda, err := c.vendas.Register(ctx, c.BuildPayload())
	if err != nil {
		return model.Venda{}, err
	}
	c.Clear()
	return venda, nil
}

// indexOf must be called under c.mu.
func (c *Cart) indexOf(produtoID int64) int {
	for i := range c.lines {
		if c.lines[i].Produto.ID == produtoID {
			return i
		}
	}
	return -1
}
