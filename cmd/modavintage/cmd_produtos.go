package main

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"modavintage/internal/model"
	"modavintage/internal/service"

	"github.com/shopspring/decimal"
)

func produtoRow(p model.Produto) []string {
	custo := "—"
	if p.PrecoCusto != nil {
		custo = "R$ " + p.PrecoCusto.StringFixed(2)
	}
	status := "Disponível"
	if !p.Disponivel() {
		status = "Sem estoque"
	}
	return []string{
		strconv.FormatInt(p.ID, 10),
		p.Nome,
		orDash(p.Tamanho),
		orDash(p.Categoria),
		custo,
		"R$ " + p.Preco.StringFixed(2),
		strconv.Itoa(p.Estoque),
		status,
	}
}

var produtoHeader = []string{"ID", "NOME", "TAMANHO", "CATEGORIA", "CUSTO", "VENDA", "ESTOQUE", "STATUS"}

func (a *app) cmdProdutos(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("uso: produtos list|todos|get|add|edit|rm")
	}
	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("produtos list", flag.ContinueOnError)
		busca := fs.String("busca", "", "filtro por nome")
		all := fs.Bool("all", false, "carrega todas as páginas")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		return runList(a, ctx, a.produtos.List, *busca, *all, produtoHeader, produtoRow)

	case "todos":
		// Only products with stock — the same list the sale flow offers.
		produtos, err := a.produtos.ListAllAvailable(ctx)
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(produtos))
		for _, p := range produtos {
			rows = append(rows, produtoRow(p))
		}
		a.table(produtoHeader, rows)
		return nil

	case "get":
		id, err := idArg(args[1:])
		if err != nil {
			return err
		}
		p, err := a.produtos.Get(ctx, id)
		if err != nil {
			return err
		}
		a.table(produtoHeader, [][]string{produtoRow(p)})
		return nil

	case "add":
		in, err := parseProdutoFlags("produtos add", args[1:])
		if err != nil {
			return err
		}
		p, err := a.produtos.Create(ctx, in)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Mercadoria #%d cadastrada.\n", p.ID)
		return nil

	case "edit":
		fs := flag.NewFlagSet("produtos edit", flag.ContinueOnError)
		id := fs.Int64("id", 0, "id da mercadoria (obrigatório)")
		nome := fs.String("nome", "", "novo nome")
		preco := fs.String("preco", "", "novo preço de venda")
		precoCusto := fs.String("preco-custo", "", "novo preço de custo")
		estoque := fs.Int("estoque", -1, "novo estoque")
		tamanho := fs.String("tamanho", "", "novo tamanho")
		categoria := fs.String("categoria", "", "nova categoria")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *id == 0 {
			return fmt.Errorf("informe -id")
		}
		atual, err := a.produtos.Get(ctx, *id)
		if err != nil {
			return err
		}
		in := service.ProdutoInput{
			Nome:       atual.Nome,
			PrecoCusto: atual.PrecoCusto,
			Preco:      atual.Preco,
			Estoque:    atual.Estoque,
			Tamanho:    atual.Tamanho,
			Categoria:  atual.Categoria,
		}
		if *nome != "" {
			in.Nome = *nome
		}
		if *preco != "" {
			v, err := decimal.NewFromString(*preco)
			if err != nil {
				return fmt.Errorf("preço inválido: %s", *preco)
			}
			in.Preco = v
		}
		if *precoCusto != "" {
			v, err := decimal.NewFromString(*precoCusto)
			if err != nil {
				return fmt.Errorf("preço de custo inválido: %s", *precoCusto)
			}
			in.PrecoCusto = &v
		}
		if *estoque >= 0 {
			in.Estoque = *estoque
		}
		if *tamanho != "" {
			in.Tamanho = *tamanho
		}
		if *categoria != "" {
			in.Categoria = *categoria
		}
		if _, err := a.produtos.Update(ctx, *id, in); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Mercadoria #%d atualizada.\n", *id)
		return nil

	case "rm":
		id, err := idArg(args[1:])
		if err != nil {
			return err
		}
		if err := a.produtos.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Mercadoria #%d removida.\n", id)
		return nil

	default:
		return fmt.Errorf("subcomando desconhecido: produtos %s", args[0])
	}
}

func parseProdutoFlags(name string, args []string) (service.ProdutoInput, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	nome := fs.String("nome", "", "nome (obrigatório)")
	preco := fs.String("preco", "", "preço de venda (obrigatório)")
	precoCusto := fs.String("preco-custo", "", "preço de custo")
	estoque := fs.Int("estoque", 0, "quantidade em estoque")
	tamanho := fs.String("tamanho", "", "tamanho")
	categoria := fs.String("categoria", "", "categoria")
	if err := fs.Parse(args); err != nil {
		return service.ProdutoInput{}, err
	}

	in := service.ProdutoInput{
		Nome:      *nome,
		Estoque:   *estoque,
		Tamanho:   *tamanho,
		Categoria: *categoria,
	}
	if *preco != "" {
		v, err := decimal.NewFromString(*preco)
		if err != nil {
			return in, fmt.Errorf("preço inválido: %s", *preco)
		}
		in.Preco = v
	}
	if *precoCusto != "" {
		v, err := decimal.NewFromString(*precoCusto)
		if err != nil {
			return in, fmt.Errorf("preço de custo inválido: %s", *precoCusto)
		}
		in.PrecoCusto = &v
	}
	return in, nil
}
