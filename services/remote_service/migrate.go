package remote_service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/zsmartex/tradedesk/config"
	"github.com/zsmartex/tradedesk/models"
	"github.com/zsmartex/tradedesk/services/mock_service"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(models.All()...)
}

// Seed fills an empty datastore with the listed assets and the token sale.
// Existing rows are left untouched.
func Seed(ctx context.Context, db *gorm.DB, now time.Time) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Asset{}).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			if err := tx.Create(mock_service.SeedAssets(now)).Error; err != nil {
				return err
			}
			config.Logger.Info("seeded assets")
		}

		if err := tx.Model(&models.TokenSale{}).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			sale := mock_service.SeedTokenSale(now)
			sale.ID = 0
			for i := range sale.Allocations {
				sale.Allocations[i].ID = 0
				sale.Allocations[i].TokenSaleID = 0
			}

			if err := tx.Create(sale).Error; err != nil {
				return err
			}
			config.Logger.Info("seeded token sale")
		}

		return nil
	})
}
