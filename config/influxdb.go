package config

import (
	client "github.com/influxdata/influxdb1-client/v2"
)

func NewInfluxDB(cfg InfluxDBConfig) (client.Client, error) {
	return client.NewHTTPClient(client.HTTPConfig{
		Addr: cfg.URL,
	})
}
