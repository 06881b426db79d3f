// Package token_sale_service runs the token sale storefront: wallet
// connection and purchases are simulated, nothing touches a chain.
package token_sale_service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/volatiletech/null"

	"github.com/zsmartex/tradedesk/config"
	"github.com/zsmartex/tradedesk/models"
	"github.com/zsmartex/tradedesk/services/kv_service"
	"github.com/zsmartex/tradedesk/types"
)

var (
	ErrWalletNotConnected = errors.New("token_sale.wallet_not_connected")
	ErrSaleNotActive      = errors.New("token_sale.not_active")
	ErrNonPositive        = errors.New("token_sale.non_positive_contribution")
	ErrBelowMinimum       = errors.New("token_sale.below_min_contribution")
	ErrLimitExceeded      = models.ErrLimitPerUserExceeded
	ErrSoldOut            = errors.New("token_sale.sold_out")
)

const (
	DefaultDelay = 1500 * time.Millisecond
	network      = "ethereum"
)

// SaleBackend is the token-sale part of the API facade.
type SaleBackend interface {
	Sale(ctx context.Context, user *models.Profile) (*models.TokenSale, error)
	RecordPurchase(ctx context.Context, user *models.Profile, purchase *models.TokenPurchase) error
	Purchases(ctx context.Context, user *models.Profile) ([]*models.TokenPurchase, error)
}

type Service struct {
	backend SaleBackend
	wallets kv_service.Store
	delay   time.Duration
	now     func() time.Time
	entropy io.Reader
	logger  *logrus.Entry
}

type Option func(s *Service)

// WithDelay sets the simulated confirmation latency of wallet and chain calls.
func WithDelay(delay time.Duration) Option {
	return func(s *Service) {
		s.delay = delay
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func New(backend SaleBackend, wallets kv_service.Store, opts ...Option) *Service {
	s := &Service{
		backend: backend,
		wallets: wallets,
		delay:   DefaultDelay,
		now:     time.Now,
		entropy: rand.Reader,
		logger:  config.Logger.WithField("component", "token_sale"),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func walletKey(userID string) string {
	return "wallet:" + userID
}

func (s *Service) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(s.entropy, buf); err != nil {
		return "", err
	}

	return "0x" + hex.EncodeToString(buf), nil
}

// Wallet returns the user's wallet, or nil if none was ever connected.
func (s *Service) Wallet(ctx context.Context, user *models.Profile) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := s.wallets.Get(ctx, walletKey(user.ID), &wallet); err != nil {
		if errors.Is(err, kv_service.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &wallet, nil
}

// ConnectWallet simulates the wallet handshake and stores a fabricated address.
// An already connected wallet is returned as is.
func (s *Service) ConnectWallet(ctx context.Context, user *models.Profile) (*models.Wallet, error) {
	wallet, err := s.Wallet(ctx, user)
	if err != nil {
		return nil, err
	}
	if wallet.IsConnected() {
		return wallet, nil
	}

	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	address, err := s.randomHex(20)
	if err != nil {
		return nil, err
	}

	wallet = &models.Wallet{
		UserID:      user.ID,
		Address:     address,
		Network:     network,
		ConnectedAt: s.now(),
	}
	if err := s.wallets.Set(ctx, walletKey(user.ID), wallet, 0); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{"uid": user.ID, "address": address}).Info("wallet connected")

	return wallet, nil
}

func (s *Service) DisconnectWallet(ctx context.Context, user *models.Profile) error {
	wallet, err := s.Wallet(ctx, user)
	if err != nil {
		return err
	}
	if !wallet.IsConnected() {
		return ErrWalletNotConnected
	}

	wallet.DisconnectedAt = null.TimeFrom(s.now())

	return s.wallets.Set(ctx, walletKey(user.ID), wallet, 0)
}

// BuyTokens checks the contribution against the sale rules, simulates the
// on-chain transfer and records the purchase.
func (s *Service) BuyTokens(ctx context.Context, user *models.Profile, contribution decimal.Decimal) (*models.TokenPurchase, error) {
	wallet, err := s.Wallet(ctx, user)
	if err != nil {
		return nil, err
	}
	if !wallet.IsConnected() {
		return nil, ErrWalletNotConnected
	}

	sale, err := s.backend.Sale(ctx, user)
	if err != nil {
		return nil, err
	}

	if !sale.IsActive(s.now()) {
		return nil, ErrSaleNotActive
	}
	if !contribution.IsPositive() {
		return nil, ErrNonPositive
	}
	if contribution.LessThan(sale.MinContribution) {
		return nil, ErrBelowMinimum
	}

	if sale.LimitPerUser.IsPositive() {
		purchases, err := s.backend.Purchases(ctx, user)
		if err != nil {
			return nil, err
		}

		spent := decimal.Zero
		for _, p := range purchases {
			spent = spent.Add(p.Contribution)
		}
		// Checked again by the backend when the purchase is stored.
		if sale.ExceedsUserLimit(spent, contribution) {
			return nil, ErrLimitExceeded
		}
	}

	tokens, err := TokensFor(sale, contribution)
	if err != nil {
		return nil, err
	}
	if tokens.GreaterThan(sale.Remaining()) {
		return nil, ErrSoldOut
	}

	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	txHash, err := s.randomHex(32)
	if err != nil {
		return nil, err
	}

	purchase := &models.TokenPurchase{
		TokenSaleID:   sale.ID,
		UserID:        user.ID,
		WalletAddress: wallet.Address,
		Contribution:  contribution,
		Tokens:        tokens,
		TxHash:        txHash,
		State:         types.PurchaseStateConfirmed,
	}

	if err := s.backend.RecordPurchase(ctx, user, purchase); err != nil {
		return nil, fmt.Errorf("record purchase: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"uid":    user.ID,
		"tokens": tokens.String(),
		"tx":     txHash,
	}).Info("token purchase recorded")

	return purchase, nil
}
