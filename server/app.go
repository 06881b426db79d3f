// Package server assembles the application components from configuration.
package server

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	client "github.com/influxdata/influxdb1-client/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/zsmartex/tradedesk/config"
	"github.com/zsmartex/tradedesk/mq_client"
	"github.com/zsmartex/tradedesk/services/api_service"
	"github.com/zsmartex/tradedesk/services/kv_service"
	"github.com/zsmartex/tradedesk/services/mock_service"
	"github.com/zsmartex/tradedesk/services/price_service"
	"github.com/zsmartex/tradedesk/services/remote_service"
	"github.com/zsmartex/tradedesk/services/session_service"
	"github.com/zsmartex/tradedesk/services/settings_service"
	"github.com/zsmartex/tradedesk/services/token_sale_service"
)

type App struct {
	Config *config.Config

	DB     *gorm.DB
	Redis  *redis.Client
	Influx client.Client
	Events *mq_client.Publisher

	Store     kv_service.Store
	Mock      *mock_service.Backend
	Remote    *remote_service.Backend
	Prices    *price_service.Service
	API       *api_service.API
	Sessions  *session_service.Holder
	Settings  *settings_service.Service
	TokenSale *token_sale_service.Service

	stopBroadcast func()
	logger        *logrus.Entry
}

// New connects every configured dependency. Redis, InfluxDB and AMQP are
// optional; without a database the app runs on the mock backend only.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	app := &App{
		Config: cfg,
		Mock:   mock_service.New(),
		logger: config.Logger.WithField("component", "server"),
	}

	if cfg.Redis.Enabled() {
		rdb, err := config.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to connect redis: %w", err)
		}
		app.Redis = rdb
		app.Store = kv_service.NewRedisStore(rdb, cfg.App.Name)
	} else {
		app.Store = kv_service.NewMemoryStore()
	}

	var remote api_service.Backend
	var auth session_service.AuthClient = mock_service.NewAuthClient()

	if cfg.Database.Enabled() {
		db, err := config.NewDatabase(cfg.Database)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to connect database: %w", err)
		}
		app.DB = db
		app.Remote = remote_service.New(db, remote_service.WithAssetCache(app.Store, cfg.Prices.SnapshotInterval))
		remote = app.Remote
		auth = remote_service.NewAuthClient(db)
	}

	priceOpts := []price_service.Option{
		price_service.WithInterval(cfg.Prices.Interval),
		price_service.WithJitter(cfg.Prices.Jitter),
	}
	if len(cfg.InfluxDB.URL) > 0 {
		influx, err := config.NewInfluxDB(cfg.InfluxDB)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to create influxdb client: %w", err)
		}
		app.Influx = influx
		priceOpts = append(priceOpts, price_service.WithRecorder(price_service.NewInfluxRecorder(influx, cfg.InfluxDB.Database)))
	}
	app.Prices = price_service.New(app.Mock, priceOpts...)

	apiOpts := api_service.Options{
		DemoMode: cfg.App.DemoMode,
	}
	if len(cfg.AMQP.URL) > 0 {
		publisher, err := mq_client.Connect(cfg.AMQP)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to connect amqp: %w", err)
		}
		app.Events = publisher
		apiOpts.Events = publisher
	}

	app.API = api_service.New(remote, app.Mock, apiOpts)
	app.stopBroadcast = app.API.BroadcastPrices(app.Prices)
	app.Sessions = session_service.NewHolder(auth, app.Store, cfg.Auth.JWTSecret, cfg.Auth.SessionTTL,
		session_service.WithSandbox(app.Mock))
	app.Settings = settings_service.New(app.Store)
	app.TokenSale = token_sale_service.New(app.API.TokenSale, app.Store, token_sale_service.WithDelay(cfg.TokenSale.Delay))

	return app, nil
}

// Migrate creates the schema and seeds an empty database. It is a no-op
// without a database.
func (a *App) Migrate(ctx context.Context) error {
	if a.DB == nil {
		return nil
	}

	if err := remote_service.Migrate(a.DB); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	return remote_service.Seed(ctx, a.DB, time.Now())
}

func (a *App) Close() {
	if a.stopBroadcast != nil {
		a.stopBroadcast()
	}
	if a.Prices != nil {
		a.Prices.Stop()
	}
	if a.Events != nil {
		if err := a.Events.Close(); err != nil {
			a.logger.WithError(err).Warn("failed to close amqp publisher")
		}
	}
	if a.Influx != nil {
		a.Influx.Close()
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}
}
