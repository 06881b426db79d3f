package mock_service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null"
	"golang.org/x/crypto/bcrypt"

	"github.com/zsmartex/tradedesk/models"
	"github.com/zsmartex/tradedesk/services/session_service"
)

var _ session_service.AuthClient = (*AuthClient)(nil)

// AuthClient keeps accounts in memory. Digests use bcrypt's minimum cost.
type AuthClient struct {
	mu       sync.RWMutex
	profiles map[string]*models.Profile
	byEmail  map[string]string
}

func NewAuthClient() *AuthClient {
	return &AuthClient{
		profiles: make(map[string]*models.Profile),
		byEmail:  make(map[string]string),
	}
}

func (c *AuthClient) SignUp(ctx context.Context, email, password string, username null.String) (*models.Profile, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.byEmail[email]; ok {
		return nil, session_service.ErrEmailTaken
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	profile := &models.Profile{
		ID:             uuid.NewString(),
		Email:          email,
		Username:       username,
		PasswordDigest: string(digest),
		Role:           models.RoleMember,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	c.profiles[profile.ID] = profile
	c.byEmail[email] = profile.ID

	p := *profile
	return &p, nil
}

func (c *AuthClient) SignIn(ctx context.Context, email, password string) (*models.Profile, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	c.mu.RLock()
	defer c.mu.RUnlock()

	id, ok := c.byEmail[email]
	if !ok {
		return nil, session_service.ErrInvalidCredentials
	}

	profile := c.profiles[id]
	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordDigest), []byte(password)); err != nil {
		return nil, session_service.ErrInvalidCredentials
	}

	p := *profile
	return &p, nil
}

func (c *AuthClient) Profile(ctx context.Context, id string) (*models.Profile, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	profile, ok := c.profiles[id]
	if !ok {
		return nil, session_service.ErrUserNotFound
	}

	p := *profile
	return &p, nil
}
