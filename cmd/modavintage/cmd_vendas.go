package main

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"modavintage/internal/apierror"
	"modavintage/internal/cart"
	"modavintage/internal/model"
)

var vendaHeader = []string{"ID", "DATA", "CLIENTE", "ITENS", "TOTAL"}

func vendaRow(v model.Venda) []string {
	itens := 0
	for _, item := range v.Itens {
		itens += itemQuantidade(item)
	}
	return []string{
		strconv.FormatInt(v.ID, 10),
		v.DataVenda,
		v.NomeCliente(),
		strconv.Itoa(itens),
		"R$ " + v.TotalVenda.StringFixed(2),
	}
}

// itemQuantidade tolerates both field names the backend has used for
// the sold quantity.
func itemQuantidade(item model.ItemVenda) int {
	if item.QuantidadeVendida > 0 {
		return item.QuantidadeVendida
	}
	return item.Quantidade
}

func (a *app) cmdVendas(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("uso: vendas list|por-cliente|por-periodo|registrar|cancelar")
	}
	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("vendas list", flag.ContinueOnError)
		all := fs.Bool("all", false, "carrega todas as páginas")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		fetch := func(ctx context.Context, page, size int, _ string) (model.Page[model.Venda], error) {
			return a.vendas.List(ctx, page, size)
		}
		return runList(a, ctx, fetch, "", *all, vendaHeader, vendaRow)

	case "por-cliente":
		id, err := idArg(args[1:])
		if err != nil {
			return err
		}
		vendas, err := a.vendas.ListByCliente(ctx, id)
		if err != nil {
			return err
		}
		a.printVendas(vendas)
		return nil

	case "por-periodo":
		fs := flag.NewFlagSet("vendas por-periodo", flag.ContinueOnError)
		inicio := fs.String("inicio", "", "data inicial (AAAA-MM-DD)")
		fim := fs.String("fim", "", "data final (AAAA-MM-DD)")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		vendas, err := a.vendas.ListByPeriod(ctx, *inicio, *fim)
		if err != nil {
			return err
		}
		a.printVendas(vendas)
		return nil

	case "registrar":
		return a.registrarVenda(ctx)

	case "cancelar":
		id, err := idArg(args[1:])
		if err != nil {
			return err
		}
		if err := a.vendas.Cancel(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Venda #%d cancelada; o estoque dos itens foi devolvido.\n", id)
		return nil

	default:
		return fmt.Errorf("subcomando desconhecido: vendas %s", args[0])
	}
}

func (a *app) printVendas(vendas []model.Venda) {
	if len(vendas) == 0 {
		fmt.Fprintln(a.out, "Nenhuma venda encontrada.")
		return
	}
	rows := make([][]string, 0, len(vendas))
	for _, v := range vendas {
		rows = append(rows, vendaRow(v))
	}
	a.table(vendaHeader, rows)
}

const registrarAjuda = `Comandos:
  produtos            lista as mercadorias disponíveis
  cliente <id>        seleciona o cliente da venda (opcional)
  cliente -           remove o cliente selecionado
  add <id> <qtd>      adiciona qtd unidades da mercadoria
  qtd <id> <n>        ajusta a quantidade de um item já na venda
  rm <id>             remove um item da venda
  itens               mostra a venda em andamento
  ok                  registra a venda
  sair                abandona sem registrar`

// registrarVenda drives the interactive sale assembly loop.
func (a *app) registrarVenda(ctx context.Context) error {
	produtos, err := a.produtos.ListAllAvailable(ctx)
	if err != nil {
		return err
	}
	if len(produtos) == 0 {
		return fmt.Errorf("nenhuma mercadoria com estoque disponível")
	}
	porID := make(map[int64]model.Produto, len(produtos))
	for _, p := range produtos {
		porID[p.ID] = p
	}

	carrinho := cart.New(a.vendas)
	fmt.Fprintln(a.out, "Nova venda. Digite `produtos` para ver o catálogo, `ok` para registrar.")

	for {
		line := a.prompt("venda> ")
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "produtos":
			rows := make([][]string, 0, len(produtos))
			for _, p := range produtos {
				rows = append(rows, produtoRow(p))
			}
			a.table(produtoHeader, rows)

		case "cliente":
			if len(fields) != 2 {
				fmt.Fprintln(a.out, "uso: cliente <id> | cliente -")
				continue
			}
			if fields[1] == "-" {
				carrinho.SelectCustomer(nil)
				fmt.Fprintln(a.out, "Cliente removido; a venda será registrada sem cliente.")
				continue
			}
			id, err := strconv.ParseInt(fields[1], 10, 64)
			if err != nil {
				fmt.Fprintln(a.out, "id inválido:", fields[1])
				continue
			}
			cliente, err := a.clientes.Get(ctx, id)
			if err != nil {
				fmt.Fprintln(a.out, userMessage(err))
				continue
			}
			carrinho.SelectCustomer(&cliente)
			fmt.Fprintf(a.out, "Cliente: %s\n", cliente.Nome)

		case "add":
			id, qtd, ok := parseIDQtd(a, fields, "uso: add <id> <qtd>")
			if !ok {
				continue
			}
			p, found := porID[id]
			if !found {
				fmt.Fprintln(a.out, "mercadoria não encontrada ou sem estoque:", id)
				continue
			}
			if err := carrinho.AddItem(p, qtd); err != nil {
				fmt.Fprintln(a.out, err.Error())
				continue
			}
			fmt.Fprintf(a.out, "%d× %s — total parcial R$ %s\n", qtd, p.Nome, carrinho.Total().StringFixed(2))

		case "qtd":
			id, qtd, ok := parseIDQtd(a, fields, "uso: qtd <id> <n>")
			if !ok {
				continue
			}
			if err := carrinho.SetQuantity(id, qtd); err != nil {
				fmt.Fprintln(a.out, err.Error())
				continue
			}
			fmt.Fprintf(a.out, "Quantidade ajustada — total parcial R$ %s\n", carrinho.Total().StringFixed(2))

		case "rm":
			if len(fields) != 2 {
				fmt.Fprintln(a.out, "uso: rm <id>")
				continue
			}
			id, err := strconv.ParseInt(fields[1], 10, 64)
			if err != nil {
				fmt.Fprintln(a.out, "id inválido:", fields[1])
				continue
			}
			carrinho.RemoveItem(id)
			fmt.Fprintf(a.out, "Total parcial R$ %s\n", carrinho.Total().StringFixed(2))

		case "itens":
			a.printCarrinho(carrinho)

		case "ok":
			venda, err := carrinho.Submit(ctx)
			if err != nil {
				if apierror.IsSessionInvalid(err) {
					// The logout hook already told the user; exit hands
					// the error up without a second alert.
					return err
				}
				fmt.Fprintln(a.out, userMessage(err))
				continue
			}
			fmt.Fprintf(a.out, "Venda #%d registrada — total R$ %s.\n", venda.ID, venda.TotalVenda.StringFixed(2))
			return nil

		case "sair":
			fmt.Fprintln(a.out, "Venda abandonada.")
			return nil

		case "ajuda", "help", "?":
			fmt.Fprintln(a.out, registrarAjuda)

		default:
			fmt.Fprintf(a.out, "comando desconhecido: %s (digite `ajuda`)\n", fields[0])
		}
	}
}

func (a *app) printCarrinho(carrinho *cart.Cart) {
	if cliente := carrinho.Customer(); cliente != nil {
		fmt.Fprintf(a.out, "Cliente: %s\n", cliente.Nome)
	} else {
		fmt.Fprintln(a.out, "Cliente: (nenhum)")
	}
	itens := carrinho.Items()
	if len(itens) == 0 {
		fmt.Fprintln(a.out, "Nenhum item na venda.")
		return
	}
	rows := make([][]string, 0, len(itens))
	for _, l := range itens {
		rows = append(rows, []string{
			strconv.FormatInt(l.Produto.ID, 10),
			l.Produto.Nome,
			strconv.Itoa(l.Quantidade),
			"R$ " + l.PrecoUnitario.StringFixed(2),
			"R$ " + l.Subtotal().StringFixed(2),
		})
	}
	a.table([]string{"ID", "MERCADORIA", "QTD", "UNITÁRIO", "SUBTOTAL"}, rows)
	fmt.Fprintf(a.out, "Total: R$ %s\n", carrinho.Total().StringFixed(2))
}

func parseIDQtd(a *app, fields []string, uso string) (int64, int, bool) {
	if len(fields) != 3 {
		fmt.Fprintln(a.out, uso)
		return 0, 0, false
	}
	id, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "id inválido:", fields[1])
		return 0, 0, false
	}
	qtd, err := strconv.Atoi(fields[2])
	if err != nil {
		fmt.Fprintln(a.out, "quantidade inválida:", fields[2])
		return 0, 0, false
	}
	return id, qtd, true
}
