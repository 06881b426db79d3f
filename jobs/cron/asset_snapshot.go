package cron

import (
	"context"

	"github.com/zsmartex/tradedesk/config"
	"github.com/zsmartex/tradedesk/models"
)

type SnapshotRefresher interface {
	RefreshAssetSnapshot(ctx context.Context) ([]*models.Asset, error)
}

// AssetSnapshotJob reloads the cached asset list from the database so that
// readers see prices written by other processes.
type AssetSnapshotJob struct {
	Backend SnapshotRefresher
}

func (j *AssetSnapshotJob) Name() string {
	return "asset_snapshot"
}

func (j *AssetSnapshotJob) Process(ctx context.Context) error {
	assets, err := j.Backend.RefreshAssetSnapshot(ctx)
	if err != nil {
		return err
	}

	config.Logger.WithField("job", j.Name()).Debugf("asset snapshot refreshed with %d assets", len(assets))

	return nil
}
