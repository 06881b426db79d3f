package price_service

import (
	"context"

	client "github.com/influxdata/influxdb1-client/v2"
)

const Measurement = "asset_prices"

// InfluxRecorder writes each tick as one batch of points.
type InfluxRecorder struct {
	client   client.Client
	database string
}

func NewInfluxRecorder(c client.Client, database string) *InfluxRecorder {
	return &InfluxRecorder{client: c, database: database}
}

func (r *InfluxRecorder) Points(updates Updates) (client.BatchPoints, error) {
	bp, err := client.NewBatchPoints(client.BatchPointsConfig{
		Database:  r.database,
		Precision: "ms",
	})
	if err != nil {
		return nil, err
	}

	for _, u := range updates {
		tags := map[string]string{
			"asset_id": u.AssetID,
			"symbol":   u.Symbol,
		}
		fields := map[string]interface{}{
			"price":      u.Price.InexactFloat64(),
			"change_24h": u.Change24h.InexactFloat64(),
		}

		point, err := client.NewPoint(Measurement, tags, fields, u.At)
		if err != nil {
			return nil, err
		}
		bp.AddPoint(point)
	}

	return bp, nil
}

func (r *InfluxRecorder) Record(ctx context.Context, updates Updates) error {
	bp, err := r.Points(updates)
	if err != nil {
		return err
	}

	return r.client.Write(bp)
}
