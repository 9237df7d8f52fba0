package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/spxp-cli/internal/client/cli"
	"github.com/dmitrijs2005/spxp-cli/internal/client/client"
	"github.com/dmitrijs2005/spxp-cli/internal/client/config"
	"github.com/dmitrijs2005/spxp-cli/internal/client/repositories/identities"
	"github.com/dmitrijs2005/spxp-cli/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, args, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "spxp: %v\n", err)
		return cli.ExitUsage
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logging.New(cfg.LogLevel, os.Stderr)
	log.Debug(ctx, "starting", "identitiesDir", cfg.IdentitiesDir, "timeout", cfg.RequestTimeout)

	app := cli.NewApp(cfg, log, client.NewHTTPClient(cfg.RequestTimeout), identities.NewFSRepository(cfg.IdentitiesDir))
	return app.Run(ctx, args)
}
