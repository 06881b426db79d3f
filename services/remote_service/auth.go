package remote_service

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/zsmartex/tradedesk/models"
	"github.com/zsmartex/tradedesk/services/session_service"
)

var _ session_service.AuthClient = (*AuthClient)(nil)

type AuthClient struct {
	db   *gorm.DB
	cost int
}

func NewAuthClient(db *gorm.DB) *AuthClient {
	return &AuthClient{db: db, cost: bcrypt.DefaultCost}
}

// SignUp creates the profile together with an empty main portfolio.
func (c *AuthClient) SignUp(ctx context.Context, email, password string, username null.String) (*models.Profile, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	digest, err := bcrypt.GenerateFromPassword([]byte(password), c.cost)
	if err != nil {
		return nil, err
	}

	profile := &models.Profile{
		Email:          email,
		Username:       username,
		PasswordDigest: string(digest),
		Role:           models.RoleMember,
	}

	err = c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Profile{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return session_service.ErrEmailTaken
		}

		if err := tx.Create(profile).Error; err != nil {
			return err
		}

		return tx.Create(&models.Portfolio{
			ID:               profile.ID + ":main",
			UserID:           profile.ID,
			Name:             "Main Portfolio",
			CashBalance:      decimal.Zero,
			AvailableBalance: decimal.Zero,
		}).Error
	})
	if err != nil {
		if !errors.Is(err, session_service.ErrEmailTaken) {
			err = classify("sign_up", err)
		}
		return nil, err
	}

	return profile, nil
}

func (c *AuthClient) SignIn(ctx context.Context, email, password string) (*models.Profile, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var profile models.Profile
	if err := c.db.WithContext(ctx).Where("email = ?", email).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, session_service.ErrInvalidCredentials
		}
		return nil, classify("sign_in", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordDigest), []byte(password)); err != nil {
		return nil, session_service.ErrInvalidCredentials
	}

	return &profile, nil
}

func (c *AuthClient) Profile(ctx context.Context, id string) (*models.Profile, error) {
	var profile models.Profile
	if err := c.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, session_service.ErrUserNotFound
		}
		return nil, classify("profile", err)
	}

	return &profile, nil
}
