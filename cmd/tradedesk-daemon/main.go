package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/zsmartex/tradedesk/config"
	"github.com/zsmartex/tradedesk/jobs/cron"
	"github.com/zsmartex/tradedesk/server"
	"github.com/zsmartex/tradedesk/services/price_service"
	"github.com/zsmartex/tradedesk/workers/daemons"
)

func CreateWorker(id string, app *server.App) daemons.Worker {
	cfg := app.Config

	switch id {
	case "cron_job":
		if app.Remote == nil {
			return nil
		}
		return daemons.NewCronJob(cfg.Prices.SnapshotInterval, &cron.AssetSnapshotJob{Backend: app.Remote})
	case "price_stream":
		if app.Remote == nil || len(cfg.Stream.URL) == 0 {
			return nil
		}
		worker := daemons.NewPriceStream(cfg.Stream.URL, cfg.Stream.Symbols, app.Remote, app.Prices)
		if app.Influx != nil {
			worker.Recorder = price_service.NewInfluxRecorder(app.Influx, cfg.InfluxDB.Database)
		}
		return worker
	default:
		return nil
	}
}

func main() {
	configPath := flag.String("config", "config/tradedesk.yml", "path to the config file")
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

	var wg sync.WaitGroup
	for _, id := range flag.Args() {
		worker := CreateWorker(id, app)
		if worker == nil {
			logger.Errorf("worker %s is unknown or not configured", id)
			continue
		}

		logger.Info("Start tradedesk-daemon: " + id)

		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			if err := worker.Start(ctx); err != nil {
				logger.WithError(err).Errorf("worker %s stopped", id)
			}
		}(id)
	}

	wg.Wait()
}
