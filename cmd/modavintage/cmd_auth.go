package main

import (
	"context"
	"flag"
	"fmt"

	"modavintage/internal/session"
)

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "e-mail cadastrado")
	senha := fs.String("senha", "", "senha (solicitada no terminal quando omitida)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *email == "" {
		*email = a.prompt("E-mail: ")
	}
	if *senha == "" {
		*senha = a.prompt("Senha: ")
	}

	if err := a.boot.Login(ctx, *email, *senha); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Login realizado com sucesso!")
	return nil
}

func (a *app) cmdLogout() error {
	a.boot.Logout()
	fmt.Fprintln(a.out, "Sessão encerrada.")
	return nil
}

func (a *app) cmdStatus(ctx context.Context) error {
	switch a.boot.Bootstrap(ctx) {
	case session.StateAuthenticated:
		fmt.Fprintln(a.out, "Autenticado.")
	default:
		fmt.Fprintln(a.out, "Não autenticado.")
	}
	return nil
}

func (a *app) cmdResetSenha(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("uso: reset-senha solicitar|confirmar")
	}
	switch args[0] {
	case "solicitar":
		fs := flag.NewFlagSet("reset-senha solicitar", flag.ContinueOnError)
		email := fs.String("email", "", "e-mail cadastrado")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *email == "" {
			*email = a.prompt("E-mail: ")
		}
		msg, err := a.boot.RequestPasswordReset(ctx, *email)
		if err != nil {
			return err
		}
		if msg == "" {
			msg = "Código de recuperação enviado por e-mail."
		}
		fmt.Fprintln(a.out, msg)
		return nil
	case "confirmar":
		fs := flag.NewFlagSet("reset-senha confirmar", flag.ContinueOnError)
		codigo := fs.String("codigo", "", "código de 6 dígitos recebido por e-mail")
		senha := fs.String("senha", "", "nova senha")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *codigo == "" {
			*codigo = a.prompt("Código: ")
		}
		if *senha == "" {
			*senha = a.prompt("Nova senha: ")
		}
		msg, err := a.boot.ResetPassword(ctx, *codigo, *senha)
		if err != nil {
			return err
		}
		if msg == "" {
			msg = "Senha redefinida com sucesso."
		}
		fmt.Fprintln(a.out, msg)
		return nil
	default:
		return fmt.Errorf("subcomando desconhecido: reset-senha %s", args[0])
	}
}
