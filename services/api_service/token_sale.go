package api_service

import (
	"context"

	"github.com/zsmartex/tradedesk/models"
)

type TokenSaleAPI struct {
	api *API
}

// Sale returns the current token sale. user may be nil for public reads.
func (s *TokenSaleAPI) Sale(ctx context.Context, user *models.Profile) (*models.TokenSale, error) {
	return s.api.backend(user).TokenSale(ctx)
}

func (s *TokenSaleAPI) RecordPurchase(ctx context.Context, user *models.Profile, purchase *models.TokenPurchase) error {
	if err := requireUser("token_sale.record_purchase", user); err != nil {
		return err
	}

	purchase.UserID = user.ID
	if err := s.api.backend(user).InsertTokenPurchase(ctx, purchase); err != nil {
		return err
	}

	s.api.publish(user, "token_purchase", purchase.ToJSON())

	return nil
}

func (s *TokenSaleAPI) Purchases(ctx context.Context, user *models.Profile) ([]*models.TokenPurchase, error) {
	if err := requireUser("token_sale.purchases", user); err != nil {
		return nil, err
	}

	return s.api.backend(user).TokenPurchases(ctx, user.ID)
}
