package session_service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/volatiletech/null"

	"github.com/zsmartex/tradedesk/config"
	"github.com/zsmartex/tradedesk/controllers/entities"
	"github.com/zsmartex/tradedesk/models"
	"github.com/zsmartex/tradedesk/services/kv_service"
)

var (
	ErrInvalidCredentials = errors.New("identity.session.invalid_credentials")
	ErrEmailTaken         = errors.New("identity.user.email_taken")
	ErrUserNotFound       = errors.New("identity.user.not_found")
	ErrInvalidSession     = errors.New("authz.invalid_session")
)

const (
	demoUserPrefix       = "demo_user:"
	revokedSessionPrefix = "revoked_session:"
	defaultTTL           = 24 * time.Hour
)

// AuthClient is the identity backend behind the holder.
type AuthClient interface {
	SignUp(ctx context.Context, email, password string, username null.String) (*models.Profile, error)
	SignIn(ctx context.Context, email, password string) (*models.Profile, error)
	Profile(ctx context.Context, id string) (*models.Profile, error)
}

// Sandbox holds per-user demo data that outlives nothing but the session.
type Sandbox interface {
	Forget(userID string)
}

type Claims struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Demo  bool   `json:"demo,omitempty"`

	jwt.StandardClaims
}

type Session struct {
	User      *models.Profile
	Token     string
	ExpiresAt time.Time
}

func (s *Session) ToJSON() entities.SessionEntity {
	return entities.SessionEntity{
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt,
		User:      s.User.ToJSON(),
	}
}

type Holder struct {
	client  AuthClient
	store   kv_service.Store
	secret  []byte
	ttl     time.Duration
	sandbox Sandbox
	now     func() time.Time
	logger  *logrus.Entry
}

type Option func(h *Holder)

func WithClock(now func() time.Time) Option {
	return func(h *Holder) {
		h.now = now
	}
}

// WithSandbox makes sign-out of a demo session drop its sandbox.
func WithSandbox(sandbox Sandbox) Option {
	return func(h *Holder) {
		h.sandbox = sandbox
	}
}

func NewHolder(client AuthClient, store kv_service.Store, secret string, ttl time.Duration, opts ...Option) *Holder {
	if ttl <= 0 {
		ttl = defaultTTL
	}

	h := &Holder{
		client: client,
		store:  store,
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
		logger: config.Logger.WithField("component", "session"),
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

func (h *Holder) SignUp(ctx context.Context, email, password string, username null.String) (*Session, error) {
	profile, err := h.client.SignUp(ctx, email, password, username)
	if err != nil {
		return nil, err
	}

	h.logger.WithField("uid", profile.ID).Info("user signed up")

	return h.issue(profile)
}

func (h *Holder) SignIn(ctx context.Context, email, password string) (*Session, error) {
	profile, err := h.client.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}

	return h.issue(profile)
}

// EnterDemo creates a synthetic demo profile, keeps it in the store for the
// session lifetime and issues a demo token for it.
func (h *Holder) EnterDemo(ctx context.Context) (*Session, error) {
	profile := &models.Profile{
		ID:        "demo-" + uuid.NewString(),
		Email:     "demo@tradedesk.local",
		Username:  null.StringFrom("Demo Trader"),
		Role:      models.RoleDemo,
		Demo:      true,
		CreatedAt: h.now(),
	}

	if err := h.store.Set(ctx, demoUserPrefix+profile.ID, profile, h.ttl); err != nil {
		return nil, fmt.Errorf("store demo user: %w", err)
	}

	return h.issue(profile)
}

// SignOut revokes the token until it would have expired anyway.
func (h *Holder) SignOut(ctx context.Context, token string) error {
	claims, err := h.parse(token)
	if err != nil {
		return err
	}

	remaining := time.Unix(claims.ExpiresAt, 0).Sub(h.now())
	if remaining <= 0 {
		return nil
	}

	if err := h.store.Set(ctx, revokedSessionPrefix+claims.Id, true, remaining); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}

	if claims.Demo {
		if err := h.store.Delete(ctx, demoUserPrefix+claims.UID); err != nil {
			return fmt.Errorf("delete demo user: %w", err)
		}
		if h.sandbox != nil {
			h.sandbox.Forget(claims.UID)
		}
	}

	return nil
}

// Authenticate resolves a bearer token to the current user.
func (h *Holder) Authenticate(ctx context.Context, token string) (*models.Profile, error) {
	claims, err := h.parse(token)
	if err != nil {
		return nil, err
	}

	revoked, err := h.store.Exists(ctx, revokedSessionPrefix+claims.Id)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrInvalidSession
	}

	if claims.Demo {
		var profile models.Profile
		if err := h.store.Get(ctx, demoUserPrefix+claims.UID, &profile); err != nil {
			if errors.Is(err, kv_service.ErrNotFound) {
				return nil, ErrInvalidSession
			}
			return nil, err
		}
		profile.Demo = true

		return &profile, nil
	}

	profile, err := h.client.Profile(ctx, claims.UID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}

	return profile, nil
}

func (h *Holder) issue(profile *models.Profile) (*Session, error) {
	now := h.now()
	expiresAt := now.Add(h.ttl)

	claims := Claims{
		UID:   profile.ID,
		Email: profile.Email,
		Role:  profile.Role,
		Demo:  profile.IsDemo(),
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.NewString(),
			Subject:   "session",
			IssuedAt:  now.Unix(),
			ExpiresAt: expiresAt.Unix(),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.secret)
	if err != nil {
		return nil, err
	}

	return &Session{
		User:      profile,
		Token:     token,
		ExpiresAt: time.Unix(expiresAt.Unix(), 0),
	}, nil
}

func (h *Holder) parse(token string) (*Claims, error) {
	var claims Claims

	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return h.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidSession
	}

	return &claims, nil
}
