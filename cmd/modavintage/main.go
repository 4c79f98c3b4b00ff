package main

import (
	"fmt"
	"os"
	"time"

	"modavintage/internal/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const usage = `modavintage — cliente do sistema Moda Vintage

Uso: modavintage <comando> [subcomando] [opções]

Comandos:
  login          autentica e guarda a sessão
  logout         encerra a sessão local
  status         mostra o estado da sessão
  reset-senha    solicitar | confirmar — recuperação de senha
  clientes       list | todos | get | add | edit | rm
  fornecedores   list | todos | get | add | edit | rm
  produtos       list | todos | get | add | edit | rm
  vendas         list | por-cliente | por-periodo | registrar | cancelar
  dashboard      relatórios mensais (entradas/saídas e lucratividade)
`

func main() {
	// Structured logger — diagnostics go to stderr, command output to stdout
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	args := os.Args[1:]
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Print(usage)
		return
	}

	app := newApp(cfg)
	os.Exit(app.run(args))
}
