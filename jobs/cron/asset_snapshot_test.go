package cron

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zsmartex/tradedesk/models"
)

type refresher struct {
	calls int
	err   error
}

func (r *refresher) RefreshAssetSnapshot(ctx context.Context) ([]*models.Asset, error) {
	r.calls++
	return []*models.Asset{{ID: "1", Symbol: "BTC"}}, r.err
}

func TestAssetSnapshotJob(t *testing.T) {
	r := &refresher{}
	job := &AssetSnapshotJob{Backend: r}

	assert.Equal(t, "asset_snapshot", job.Name())
	assert.NoError(t, job.Process(context.Background()))
	assert.Equal(t, 1, r.calls)

	r.err = errors.New("connection refused")
	assert.EqualError(t, job.Process(context.Background()), "connection refused")
}
