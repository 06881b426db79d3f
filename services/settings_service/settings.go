// Package settings_service keeps per-user preferences as a versioned JSON
// document. Older documents are migrated forward on load and import.
package settings_service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gookit/validate"

	"github.com/zsmartex/tradedesk/services/kv_service"
	"github.com/zsmartex/tradedesk/types"
)

const CurrentVersion = 2

var ErrUnsupportedVersion = errors.New("settings.unsupported_version")

type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "invalid settings: " + strings.Join(e.Errors, ", ")
}

type ProfileSettings struct {
	DisplayName string `json:"display_name" validate:"maxLen:64"`
	Language    string `json:"language" validate:"required|in:en,es,fr,de,ja,zh,vi"`
	Timezone    string `json:"timezone" validate:"required"`
}

func (ProfileSettings) Messages() map[string]string {
	return messages
}

type SecuritySettings struct {
	TwoFactorEnabled      bool `json:"two_factor_enabled"`
	LoginAlerts           bool `json:"login_alerts"`
	SessionTimeoutMinutes int  `json:"session_timeout_minutes" validate:"min:5|max:1440"`
}

func (SecuritySettings) Messages() map[string]string {
	return messages
}

type TradingSettings struct {
	DefaultOrderType   types.OrderType   `json:"default_order_type" validate:"required|in:market,limit,stop_loss,take_profit,stop_limit"`
	DefaultTimeInForce types.TimeInForce `json:"default_time_in_force" validate:"required|in:GTC,IOC,FOK"`
	ConfirmOrders      bool              `json:"confirm_orders"`
}

func (TradingSettings) Messages() map[string]string {
	return messages
}

type AppearanceSettings struct {
	Theme       string `json:"theme" validate:"required|in:light,dark,system"`
	ChartStyle  string `json:"chart_style" validate:"required|in:candles,line,area"`
	CompactMode bool   `json:"compact_mode"`
}

func (AppearanceSettings) Messages() map[string]string {
	return messages
}

type NotificationSettings struct {
	Email        bool `json:"email"`
	Push         bool `json:"push"`
	PriceAlerts  bool `json:"price_alerts"`
	OrderUpdates bool `json:"order_updates"`
}

type Settings struct {
	Version       int                  `json:"version"`
	Profile       ProfileSettings      `json:"profile"`
	Security      SecuritySettings     `json:"security"`
	Trading       TradingSettings      `json:"trading"`
	Appearance    AppearanceSettings   `json:"appearance"`
	Notifications NotificationSettings `json:"notifications"`
}

var messages = validate.MS{
	"required": "settings.missing_{field}",
	"in":       "settings.invalid_{field}",
	"min":      "settings.{field}_out_of_range",
	"max":      "settings.{field}_out_of_range",
	"maxLen":   "settings.{field}_too_long",
}

func Defaults() Settings {
	return Settings{
		Version: CurrentVersion,
		Profile: ProfileSettings{
			Language: "en",
			Timezone: "UTC",
		},
		Security: SecuritySettings{
			LoginAlerts:           true,
			SessionTimeoutMinutes: 30,
		},
		Trading: TradingSettings{
			DefaultOrderType:   types.TypeMarket,
			DefaultTimeInForce: types.TimeInForceGTC,
			ConfirmOrders:      true,
		},
		Appearance: AppearanceSettings{
			Theme:      "system",
			ChartStyle: "candles",
		},
		Notifications: NotificationSettings{
			Email:        true,
			PriceAlerts:  true,
			OrderUpdates: true,
		},
	}
}

func (s Settings) Validate() error {
	var errs []string

	if s.Version != CurrentVersion {
		errs = append(errs, "settings.invalid_version")
	}

	for _, section := range []interface{}{s.Profile, s.Security, s.Trading, s.Appearance} {
		v := validate.Struct(section)
		if v.Validate() {
			continue
		}
		for _, fieldErrs := range v.Errors.All() {
			for _, msg := range fieldErrs {
				errs = append(errs, msg)
			}
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}

	return nil
}

// Export writes s as indented JSON.
func Export(s Settings, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(s)
}

// Import reads a settings document of any supported version, migrates it to
// the current version and validates it.
func Import(r io.Reader) (Settings, error) {
	var doc map[string]interface{}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}

	return fromDocument(doc)
}

func fromDocument(doc map[string]interface{}) (Settings, error) {
	doc, err := Migrate(doc)
	if err != nil {
		return Settings{}, err
	}

	buf, err := json.Marshal(doc)
	if err != nil {
		return Settings{}, err
	}

	s := Defaults()
	if err := json.Unmarshal(buf, &s); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}

	return s, nil
}

type Service struct {
	store kv_service.Store
}

func New(store kv_service.Store) *Service {
	return &Service{store: store}
}

func key(userID string) string {
	return "settings:" + userID
}

// Load returns the user's stored settings, or the defaults when none exist.
func (s *Service) Load(ctx context.Context, userID string) (Settings, error) {
	var doc map[string]interface{}
	if err := s.store.Get(ctx, key(userID), &doc); err != nil {
		if errors.Is(err, kv_service.ErrNotFound) {
			return Defaults(), nil
		}
		return Settings{}, err
	}

	return fromDocument(doc)
}

func (s *Service) Save(ctx context.Context, userID string, settings Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	return s.store.Set(ctx, key(userID), settings, 0)
}
