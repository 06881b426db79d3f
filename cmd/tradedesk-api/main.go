package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/zsmartex/tradedesk/config"
	"github.com/zsmartex/tradedesk/jobs/cron"
	"github.com/zsmartex/tradedesk/routes"
	"github.com/zsmartex/tradedesk/server"
	"github.com/zsmartex/tradedesk/workers/daemons"
)

func main() {
	configPath := flag.String("config", "config/tradedesk.yml", "path to the config file")
	migrate := flag.Bool("migrate", false, "create the schema and seed an empty database before serving")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
	logger := config.NewLoggerService(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := server.New(ctx, cfg)
	if err != nil {
		logger.Fatalf("failed to start: %v", err)
	}
	defer app.Close()

	if *migrate {
		if err := app.Migrate(ctx); err != nil {
			logger.Fatalf("failed to migrate: %v", err)
		}
	}

	app.Prices.Start(ctx)

	sweeper := daemons.NewCronJob(cfg.App.SandboxSweepInterval, &cron.SandboxSweepJob{
		Sandboxes: app.Mock,
		Idle:      cfg.App.SandboxTTL,
	})
	go func() {
		if err := sweeper.Start(ctx); err != nil {
			logger.WithError(err).Error("sandbox sweeper stopped")
		}
	}()

	r := routes.SetupRouter(app)
	go func() {
		<-ctx.Done()
		if err := r.Shutdown(); err != nil {
			logger.WithError(err).Error("failed to shut down http server")
		}
	}()

	logger.WithField("listen", cfg.Server.Listen).Info("starting tradedesk-api")
	if err := r.Listen(cfg.Server.Listen); err != nil {
		logger.WithError(err).Error("http server stopped")
	}
}
