package main

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"modavintage/internal/model"
	"modavintage/internal/service"
)

func (a *app) cmdClientes(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("uso: clientes list|todos|get|add|edit|rm")
	}
	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("clientes list", flag.ContinueOnError)
		busca := fs.String("busca", "", "filtro por nome")
		all := fs.Bool("all", false, "carrega todas as páginas")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		return runList(a, ctx, a.clientes.List, *busca, *all,
			[]string{"ID", "NOME", "TELEFONE", "EMAIL"},
			func(c model.Cliente) []string {
				return []string{strconv.FormatInt(c.ID, 10), c.Nome, c.Telefone, c.Email}
			})

	case "todos":
		clientes, err := a.clientes.ListAll(ctx)
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(clientes))
		for _, c := range clientes {
			rows = append(rows, []string{strconv.FormatInt(c.ID, 10), c.Nome, c.Telefone, c.Email})
		}
		a.table([]string{"ID", "NOME", "TELEFONE", "EMAIL"}, rows)
		return nil

	case "get":
		id, err := idArg(args[1:])
		if err != nil {
			return err
		}
		c, err := a.clientes.Get(ctx, id)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "#%d  %s\nTelefone: %s\nE-mail: %s\n", c.ID, c.Nome, orDash(c.Telefone), orDash(c.Email))
		return nil

	case "add":
		fs := flag.NewFlagSet("clientes add", flag.ContinueOnError)
		nome := fs.String("nome", "", "nome (obrigatório)")
		telefone := fs.String("telefone", "", "telefone")
		email := fs.String("email", "", "e-mail")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		c, err := a.clientes.Create(ctx, service.ClienteInput{Nome: *nome, Telefone: *telefone, Email: *email})
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Cliente #%d cadastrado.\n", c.ID)
		return nil

	case "edit":
		fs := flag.NewFlagSet("clientes edit", flag.ContinueOnError)
		id := fs.Int64("id", 0, "id do cliente (obrigatório)")
		nome := fs.String("nome", "", "novo nome")
		telefone := fs.String("telefone", "", "novo telefone")
		email := fs.String("email", "", "novo e-mail")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *id == 0 {
			return fmt.Errorf("informe -id")
		}
		atual, err := a.clientes.Get(ctx, *id)
		if err != nil {
			return err
		}
		in := service.ClienteInput{Nome: atual.Nome, Telefone: atual.Telefone, Email: atual.Email}
		if *nome != "" {
			in.Nome = *nome
		}
		if *telefone != "" {
			in.Telefone = *telefone
		}
		if *email != "" {
			in.Email = *email
		}
		if _, err := a.clientes.Update(ctx, *id, in); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Cliente #%d atualizado.\n", *id)
		return nil

	case "rm":
		id, err := idArg(args[1:])
		if err != nil {
			return err
		}
		if err := a.clientes.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Cliente #%d removido.\n", id)
		return nil

	default:
		return fmt.Errorf("subcomando desconhecido: clientes %s", args[0])
	}
}

// idArg parses the single positional/flag id every get/rm subcommand takes.
func idArg(args []string) (int64, error) {
	fs := flag.NewFlagSet("id", flag.ContinueOnError)
	id := fs.Int64("id", 0, "id do registro")
	if err := fs.Parse(args); err != nil {
		return 0, err
	}
	if *id == 0 && fs.NArg() > 0 {
		if v, err := strconv.ParseInt(fs.Arg(0), 10, 64); err == nil {
			return v, nil
		}
	}
	if *id == 0 {
		return 0, fmt.Errorf("informe o id (-id N)")
	}
	return *id, nil
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
