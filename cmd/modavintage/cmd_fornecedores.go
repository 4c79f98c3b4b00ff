package main

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"modavintage/internal/model"
	"modavintage/internal/service"
)

func (a *app) cmdFornecedores(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("uso: fornecedores list|todos|get|add|edit|rm")
	}
	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("fornecedores list", flag.ContinueOnError)
		busca := fs.String("busca", "", "filtro por nome")
		all := fs.Bool("all", false, "carrega todas as páginas")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		return runList(a, ctx, a.fornecedores.List, *busca, *all,
			[]string{"ID", "NOME", "CNPJ", "CONTATO"},
			func(f model.Fornecedor) []string {
				return []string{strconv.FormatInt(f.ID, 10), f.Nome, orDash(f.CNPJ), orDash(f.Contato)}
			})

	case "todos":
		fornecedores, err := a.fornecedores.ListAll(ctx)
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(fornecedores))
		for _, f := range fornecedores {
			rows = append(rows, []string{strconv.FormatInt(f.ID, 10), f.Nome, orDash(f.CNPJ), orDash(f.Contato)})
		}
		a.table([]string{"ID", "NOME", "CNPJ", "CONTATO"}, rows)
		return nil

	case "get":
		id, err := idArg(args[1:])
		if err != nil {
			return err
		}
		f, err := a.fornecedores.Get(ctx, id)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "#%d  %s\nCNPJ: %s\nContato: %s\n", f.ID, f.Nome, orDash(f.CNPJ), orDash(f.Contato))
		return nil

	case "add":
		fs := flag.NewFlagSet("fornecedores add", flag.ContinueOnError)
		nome := fs.String("nome", "", "nome (obrigatório)")
		cnpj := fs.String("cnpj", "", "CNPJ")
		contato := fs.String("contato", "", "contato")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		f, err := a.fornecedores.Create(ctx, service.FornecedorInput{Nome: *nome, CNPJ: *cnpj, Contato: *contato})
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Fornecedor #%d cadastrado.\n", f.ID)
		return nil

	case "edit":
		fs := flag.NewFlagSet("fornecedores edit", flag.ContinueOnError)
		id := fs.Int64("id", 0, "id do fornecedor (obrigatório)")
		nome := fs.String("nome", "", "novo nome")
		cnpj := fs.String("cnpj", "", "novo CNPJ")
		contato := fs.String("contato", "", "novo contato")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *id == 0 {
			return fmt.Errorf("informe -id")
		}
		atual, err := a.fornecedores.Get(ctx, *id)
		if err != nil {
			return err
		}
		in := service.FornecedorInput{Nome: atual.Nome, CNPJ: atual.CNPJ, Contato: atual.Contato}
		if *nome != "" {
			in.Nome = *nome
		}
		if *cnpj != "" {
			in.CNPJ = *cnpj
		}
		if *contato != "" {
			in.Contato = *contato
		}
		if _, err := a.fornecedores.Update(ctx, *id, in); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Fornecedor #%d atualizado.\n", *id)
		return nil

	case "rm":
		id, err := idArg(args[1:])
		if err != nil {
			return err
		}
		if err := a.fornecedores.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Fornecedor #%d removido.\n", id)
		return nil

	default:
		return fmt.Errorf("subcomando desconhecido: fornecedores %s", args[0])
	}
}
