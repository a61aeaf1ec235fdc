package main

import (
	"context"
	"log"
	"os"

	"github.com/hhsksonu/kpcli/internal/buildinfo"
	"github.com/hhsksonu/kpcli/internal/client/cli"
	"github.com/hhsksonu/kpcli/internal/client/config"
	"github.com/hhsksonu/kpcli/internal/logging"
)

func main() {

	buildinfo.Print(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewDefault(os.Stderr, cfg.LogLevel)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
