package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"modavintage/internal/apierror"
	"modavintage/internal/config"
	"modavintage/internal/httpclient"
	"modavintage/internal/report"
	"modavintage/internal/service"
	"modavintage/internal/session"
)

// app is the composition root: every service shares one HTTP client,
// one token store and one session bootstrapper.
type app struct {
	cfg  *config.Config
	out  io.Writer
	errw io.Writer
	in   *bufio.Reader

	boot         *session.Bootstrapper
	clientes     service.ClienteService
	fornecedores service.FornecedorService
	produtos     service.ProdutoService
	vendas       service.VendaService
	dashboard    *report.Dashboard
}

func newApp(cfg *config.Config) *app {
	store := session.NewFileStore(cfg.TokenFile)

	// The logout hook closes over boot, which is assigned right after
	// the client exists; the hook cannot fire before the first request.
	var boot *session.Bootstrapper
	client := httpclient.New(
		cfg.APIBaseURL,
		time.Duration(cfg.HTTPTimeoutSeconds)*time.Second,
		store,
		func() {
			boot.Logout()
			fmt.Fprintln(os.Stderr, "Sessão inválida ou expirada — faça login novamente.")
		},
	)
	boot = session.NewBootstrapper(store, client)

	return &app{
		cfg:          cfg,
		out:          os.Stdout,
		errw:         os.Stderr,
		in:           bufio.NewReader(os.Stdin),
		boot:         boot,
		clientes:     service.NewClienteService(client),
		fornecedores: service.NewFornecedorService(client),
		produtos:     service.NewProdutoService(client),
		vendas:       service.NewVendaService(client),
		dashboard:    report.NewDashboard(service.NewRelatorioService(client)),
	}
}

func (a *app) run(args []string) int {
	ctx := context.Background()

	var err error
	switch args[0] {
	case "login":
		err = a.cmdLogin(ctx, args[1:])
	case "logout":
		err = a.cmdLogout()
	case "status":
		err = a.cmdStatus(ctx)
	case "reset-senha":
		err = a.cmdResetSenha(ctx, args[1:])
	case "clientes":
		err = a.withAuth(ctx, func() error { return a.cmdClientes(ctx, args[1:]) })
	case "fornecedores":
		err = a.withAuth(ctx, func() error { return a.cmdFornecedores(ctx, args[1:]) })
	case "produtos":
		err = a.withAuth(ctx, func() error { return a.cmdProdutos(ctx, args[1:]) })
	case "vendas":
		err = a.withAuth(ctx, func() error { return a.cmdVendas(ctx, args[1:]) })
	case "dashboard":
		err = a.withAuth(ctx, func() error { return a.cmdDashboard(ctx) })
	default:
		fmt.Fprintf(a.errw, "comando desconhecido: %s\n\n%s", args[0], usage)
		return 2
	}

	return a.exit(err)
}

// exit converts a command error into the process exit code. Invalid
// session failures exit silently: the logout hook already produced the
// user-facing message.
func (a *app) exit(err error) int {
	if err == nil {
		return 0
	}
	if !apierror.IsSessionInvalid(err) {
		fmt.Fprintln(a.errw, "Erro:", userMessage(err))
	}
	return 1
}

// withAuth bootstraps the session once and refuses to run the command
// unauthenticated.
func (a *app) withAuth(ctx context.Context, fn func() error) error {
	if a.boot.Bootstrap(ctx) != session.StateAuthenticated {
		return fmt.Errorf("não autenticado — execute `modavintage login`")
	}
	return fn()
}

// table renders rows through a tabwriter.
func (a *app) table(header []string, rows [][]string) {
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()
}

// userMessage prefers the API layer's user-facing message and falls
// back to the error's own text.
func userMessage(err error) string {
	var e *apierror.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// prompt reads one trimmed line from stdin.
func (a *app) prompt(label string) string {
	fmt.Fprint(a.out, label)
	line, _ := a.in.ReadString('\n')
	return strings.TrimSpace(line)
}
