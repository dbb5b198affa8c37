package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/openmotive/carmd-go/internal/app"
	"github.com/openmotive/carmd-go/internal/config"
	"github.com/openmotive/carmd-go/internal/logger"
)

const usage = `usage: carmd <command> [arguments]

Commands:
  decode <vin>            decode a VIN
  decode -f <file>        decode every VIN in a YAML batch file
  makes                   list vehicle makes
  years <make>            list model years for a make
  models <year> <make>    list models for a year and make
  maint <vin> <mileage>   next scheduled maintenance
  recalls <vehicleID>     safety recalls
  warranty <vehicleID>    warranty coverage
  repairs -vehicle <id>   predicted repair report (-tag and -fleet also accepted)

Credentials are read from CARMD_KEY and CARMD_SECRET (or configs/.env).
`

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "carmd: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	args := os.Args[1:]
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("no command given")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cli, err := app.NewCLI(cfg, log)
	if err != nil {
		return err
	}

	return cli.Run(ctx, args)
}
